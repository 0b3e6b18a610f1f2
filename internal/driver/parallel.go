package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"loom/internal/source"
)

// Event reports progress of a multi-file run. Outcome is nil when the
// file is picked up and set when it finishes.
type Event struct {
	Path    string
	Index   int
	Total   int
	Outcome *Outcome
}

// Options configures a multi-file run.
type Options struct {
	Mode Mode
	// Jobs caps worker goroutines; zero or negative means GOMAXPROCS.
	Jobs  int
	Cache *DiskCache
	// OnEvent, when set, receives progress events. It may be called
	// from several goroutines at once.
	OnEvent func(Event)
}

// ExpandPaths resolves a mix of files and directories into a sorted
// list of source files. Directories are walked for *.lm files.
func ExpandPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".lm") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Deterministic run order.
	sort.Strings(files)
	return files, nil
}

// RunFiles loads and runs every path, up to opts.Jobs files at a time.
// The returned outcomes are in path order regardless of completion
// order. A load failure fails the whole run; pipeline failures land in
// the per-file outcome instead.
func RunFiles(ctx context.Context, paths []string, opts Options) (*source.FileSet, []Outcome, error) {
	fileSet := source.NewFileSet()
	ids := make([]source.FileID, len(paths))
	for i, path := range paths {
		id, err := fileSet.Load(path)
		if err != nil {
			return nil, nil, err
		}
		ids[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if opts.OnEvent != nil {
				opts.OnEvent(Event{Path: path, Index: i, Total: len(paths)})
			}

			out := runCached(fileSet, ids[i], opts)
			// Each goroutine owns its slot.
			outcomes[i] = out

			if opts.OnEvent != nil {
				opts.OnEvent(Event{Path: path, Index: i, Total: len(paths), Outcome: &outcomes[i]})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, outcomes, err
	}
	return fileSet, outcomes, nil
}

// runCached consults the result cache around Run. Check-only runs
// bypass the cache: they are cheap and their value is the diagnostics.
func runCached(fileSet *source.FileSet, id source.FileID, opts Options) Outcome {
	file := fileSet.Get(id)
	if opts.Mode == ModeEval && opts.Cache != nil {
		key := cacheKey(file.Hash)
		if out, ok := opts.Cache.Get(key); ok {
			out.Path = file.Path
			out.FileID = id
			return out
		}
		out := Run(fileSet, id, opts.Mode)
		// Best effort; a write failure never fails the run.
		_ = opts.Cache.Put(key, out)
		return out
	}
	return Run(fileSet, id, opts.Mode)
}
