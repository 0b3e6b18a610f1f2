package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.lm", "2")
	a := writeFile(t, dir, "a.lm", "1")
	writeFile(t, dir, "notes.txt", "skip me")
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	c := writeFile(t, sub, "c.lm", "3")

	files, err := ExpandPaths([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{a, b, c}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.lm", "1 + 2"),
		writeFile(t, dir, "b.lm", "1 + true"),
		writeFile(t, dir, "c.lm", "1 / 0"),
	}

	_, outcomes, err := RunFiles(context.Background(), paths, Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3", len(outcomes))
	}
	if outcomes[0].Failed() || outcomes[0].Value.String() != "3" {
		t.Errorf("a.lm = %+v", outcomes[0])
	}
	if outcomes[1].Err == nil {
		t.Errorf("b.lm should fail the type check")
	}
	if outcomes[2].Fault == nil {
		t.Errorf("c.lm should fault")
	}
}

func TestRunFilesEvents(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.lm", "1"),
		writeFile(t, dir, "b.lm", "2"),
	}

	var mu sync.Mutex
	done := 0
	_, _, err := RunFiles(context.Background(), paths, Options{
		Jobs: 1,
		OnEvent: func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			if ev.Total != 2 {
				t.Errorf("total = %d, want 2", ev.Total)
			}
			if ev.Outcome != nil {
				done++
			}
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if done != 2 {
		t.Errorf("completion events = %d, want 2", done)
	}
}

func TestRunFilesUsesCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	paths := []string{writeFile(t, dir, "a.lm", "40 + 2")}
	opts := Options{Cache: cache}

	_, first, err := RunFiles(context.Background(), paths, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Cached {
		t.Error("first run should miss the cache")
	}

	_, second, err := RunFiles(context.Background(), paths, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].Cached {
		t.Error("second run should hit the cache")
	}
	if second[0].Value.String() != "42" || second[0].Type != "Int" {
		t.Errorf("replayed = %+v", second[0])
	}
}

func TestRunFilesLoadError(t *testing.T) {
	_, _, err := RunFiles(context.Background(), []string{"/nonexistent/missing.lm"}, Options{})
	if err == nil {
		t.Fatal("load error not surfaced")
	}
}
