// Package driver orchestrates the compile flow used by the CLI:
// load a file, parse it, run the pass pipeline and print the result,
// with an optional content-addressed disk cache in front.
package driver

import (
	"context"
	"fmt"
	"os"

	"github.com/Dobios/circt/internal/diag"
	"github.com/Dobios/circt/internal/fir"
	"github.com/Dobios/circt/internal/observ"
	"github.com/Dobios/circt/internal/parser"
	"github.com/Dobios/circt/internal/passmgr"
	"github.com/Dobios/circt/internal/source"
)

// Options configures a compile.
type Options struct {
	// Passes, in pipeline order. An empty list means parse-and-print.
	Passes []string
	// MaxDiagnostics caps the diagnostics collected per file.
	MaxDiagnostics int
	// Cache, when non-nil, short-circuits compiles of unchanged input.
	Cache *DiskCache
	// Jobs bounds parallelism across the modules of one circuit and
	// across files in directory mode. 0 means GOMAXPROCS.
	Jobs int
	// Timer, when non-nil, collects phase timings.
	Timer *observ.Timer
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

// ParseResult is the output of parsing one file without running passes.
type ParseResult struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Circuit *fir.Circuit
	Bag     *diag.Bag
}

// CompileResult is the output of compiling one file.
// FileSet is nil for cache hits, which carry no diagnostics.
type CompileResult struct {
	Path    string
	Output  string
	Bag     *diag.Bag
	FileSet *source.FileSet
	Cached  bool
}

// Parse loads and parses a single file.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	bag := diag.NewBag(maxDiagnostics)
	circuit := parser.ParseFile(fileSet.Get(fileID), diag.NewBagReporter(bag))
	bag.Sort()
	return &ParseResult{
		Path:    path,
		FileSet: fileSet,
		FileID:  fileID,
		Circuit: circuit,
		Bag:     bag,
	}, nil
}

// Compile runs the full flow on one file. Parse errors suppress pass
// execution; the diagnostics still come back in the result.
func Compile(ctx context.Context, path string, opts Options) (*CompileResult, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	file := fileSet.Get(fileID)

	key := cacheKey(file.Content, opts.Passes)
	var cached CachePayload
	if hit, err := opts.Cache.Get(key, &cached); err == nil && hit && !cached.HadErrors {
		return &CompileResult{
			Path:   path,
			Output: cached.Output,
			Bag:    diag.NewBag(opts.maxDiagnostics()),
			Cached: true,
		}, nil
	}

	bag := diag.NewBag(opts.maxDiagnostics())
	reporter := diag.NewBagReporter(bag)

	var parsePhase int
	if opts.Timer != nil {
		parsePhase = opts.Timer.Begin("parse")
	}
	circuit := parser.ParseFile(file, reporter)
	if opts.Timer != nil {
		opts.Timer.End(parsePhase, path)
	}

	result := &CompileResult{Path: path, Bag: bag, FileSet: fileSet}
	if circuit == nil || bag.HasErrors() {
		bag.Sort()
		return result, nil
	}

	pipeline, err := passmgr.New(opts.Passes)
	if err != nil {
		return nil, err
	}
	if err := pipeline.RunCircuit(ctx, circuit, bag, opts.Timer, opts.Jobs); err != nil {
		return nil, err
	}
	bag.Sort()

	result.Output = fir.Print(circuit)
	if putErr := opts.Cache.Put(key, &CachePayload{
		Schema:    diskCacheSchemaVersion,
		Output:    result.Output,
		HadErrors: bag.HasErrors(),
	}); putErr != nil {
		// A broken cache must not fail the compile.
		fmt.Fprintf(os.Stderr, "cache: put failed: %v\n", putErr)
	}
	return result, nil
}
