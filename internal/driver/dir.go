package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// listFIRFiles returns the sorted list of *.fir files under dir.
func listFIRFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".fir") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Sorted for a deterministic result order.
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every *.fir file under dir, opts.Jobs files at a
// time. Results come back in sorted path order regardless of which
// worker finished first.
func CompileDir(ctx context.Context, dir string, opts Options) ([]*CompileResult, error) {
	files, err := listFIRFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*CompileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			// Each worker compiles whole files; module-level
			// parallelism inside Compile is disabled to avoid
			// oversubscription.
			fileOpts := opts
			fileOpts.Jobs = 1
			fileOpts.Timer = nil
			res, err := Compile(gctx, path, fileOpts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
