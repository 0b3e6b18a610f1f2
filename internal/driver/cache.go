package driver

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"loom/internal/ast"
	"loom/internal/project"
	"loom/internal/vm"
)

// Bump when the payload layout changes; stale entries are ignored.
const cacheSchemaVersion uint16 = 1

// DiskCache stores terminal evaluation results keyed by source digest.
// Evaluation is deterministic, so a hit replays the recorded result
// without running the pipeline. Only literal results and faults are
// cached; errors and closure results are recomputed. Safe for
// concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is the serialized form of a terminal outcome.
type cachePayload struct {
	Schema uint16

	Type string

	Faulted  bool
	FaultMsg string

	LitKind uint8
	Bool    bool
	Num     string
}

// OpenDiskCache initializes the cache at the standard user location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes the cache at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "runs", hexKey+".mp")
}

// Put records an outcome. Outcomes that are not cacheable are silently
// skipped.
func (c *DiskCache) Put(key project.Digest, out Outcome) error {
	if c == nil {
		return nil
	}
	payload, ok := toPayload(out)
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace.
	return os.Rename(f.Name(), p)
}

// Get replays a recorded outcome. The second return is false on a
// miss, a schema mismatch or a corrupt entry.
func (c *DiskCache) Get(key project.Digest) (Outcome, bool) {
	if c == nil {
		return Outcome{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return Outcome{}, false
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return Outcome{}, false
	}
	if payload.Schema != cacheSchemaVersion {
		return Outcome{}, false
	}
	return fromPayload(payload)
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "runs"))
}

func toPayload(out Outcome) (cachePayload, bool) {
	if out.Err != nil {
		return cachePayload{}, false
	}
	payload := cachePayload{Schema: cacheSchemaVersion, Type: out.Type}
	if out.Fault != nil {
		payload.Faulted = true
		payload.FaultMsg = out.Fault.Msg
		return payload, true
	}
	lit, ok := out.Value.(vm.LitValue)
	if !ok {
		return cachePayload{}, false
	}
	payload.LitKind = uint8(lit.Lit.Kind)
	switch lit.Lit.Kind {
	case ast.LitBool:
		payload.Bool = lit.Lit.Bool
	case ast.LitNumber:
		payload.Num = lit.Lit.Num.String()
	}
	return payload, true
}

func fromPayload(payload cachePayload) (Outcome, bool) {
	out := Outcome{Type: payload.Type, Cached: true}
	if payload.Faulted {
		out.Fault = &vm.Fault{Msg: payload.FaultMsg}
		return out, true
	}
	switch ast.LitKind(payload.LitKind) {
	case ast.LitBool:
		out.Value = vm.LitValue{Lit: ast.BoolLit(payload.Bool)}
	case ast.LitUnit:
		out.Value = vm.LitValue{Lit: ast.UnitLit()}
	case ast.LitNumber:
		num, ok := new(big.Int).SetString(payload.Num, 10)
		if !ok {
			return Outcome{}, false
		}
		out.Value = vm.LitValue{Lit: ast.NumberLit(num)}
	default:
		return Outcome{}, false
	}
	return out, true
}

// cacheKey derives the cache key for a file's content digest.
func cacheKey(hash [32]byte) project.Digest {
	var mode project.Digest
	copy(mode[:], fmt.Sprintf("loom-run-v%d", cacheSchemaVersion))
	return project.Combine(project.Digest(hash), mode)
}
