package driver

import (
	"testing"

	"loom/internal/project"
	"loom/internal/source"
	"loom/internal/vm"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id := fs.AddVirtual("main.lm", []byte("6 * 7"))
	out := Run(fs, id, ModeEval)
	if out.Failed() {
		t.Fatalf("run failed: %v %v", out.Err, out.Fault)
	}

	key := cacheKey(fs.Get(id).Hash)
	if err := cache.Put(key, out); err != nil {
		t.Fatal(err)
	}

	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("cache miss after put")
	}
	if !got.Cached {
		t.Error("replayed outcome not marked cached")
	}
	if got.Type != "Int" || got.Value.String() != "42" {
		t.Errorf("replayed = %q : %q", got.Value, got.Type)
	}
}

func TestDiskCacheFault(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	key := project.Sum([]byte("faulting"))
	if err := cache.Put(key, Outcome{Type: "Int", Fault: &vm.Fault{Msg: "division by zero"}}); err != nil {
		t.Fatal(err)
	}

	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("cache miss after put")
	}
	if got.Fault == nil || got.Fault.Msg != "division by zero" {
		t.Errorf("fault = %v", got.Fault)
	}
}

func TestDiskCacheSkipsErrorsAndClosures(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.lm", []byte("1 + true"))
	out := Run(fs, id, ModeEval)
	key := cacheKey(fs.Get(id).Hash)
	if err := cache.Put(key, out); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(key); ok {
		t.Error("error outcome was cached")
	}

	id = fs.AddVirtual("closure.lm", []byte("fn inc(x: Int): Int do x + 1 end"))
	out = Run(fs, id, ModeEval)
	key = cacheKey(fs.Get(id).Hash)
	if err := cache.Put(key, out); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(key); ok {
		t.Error("closure outcome was cached")
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(project.Sum([]byte("absent"))); ok {
		t.Error("hit on an empty cache")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := project.Sum([]byte("x"))
	if err := cache.Put(key, Outcome{Type: "Int", Fault: &vm.Fault{Msg: "boom"}}); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(key); ok {
		t.Error("hit after DropAll")
	}
}

func TestNilCache(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(project.Sum([]byte("x")), Outcome{}); err != nil {
		t.Error(err)
	}
	if _, ok := cache.Get(project.Sum([]byte("x"))); ok {
		t.Error("nil cache hit")
	}
	if err := cache.DropAll(); err != nil {
		t.Error(err)
	}
}
