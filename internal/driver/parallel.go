package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"decay/internal/buildpipeline"
	"decay/internal/diag"
	"decay/internal/source"
	"decay/internal/trace"
)

// ParseDir parses every .decay file under dir concurrently.
func ParseDir(ctx context.Context, dir string, opts ParseOptions) (*source.FileSet, []*ParseResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return ParseFiles(ctx, dir, files, opts)
}

// ParseFiles parses files with at most opts.Jobs workers. results[i]
// always belongs to files[i], whatever order the workers finish in. Only
// cancellation is returned as an error; per-file failures stay in the
// results.
func ParseFiles(ctx context.Context, baseDir string, files []string, opts ParseOptions) (*source.FileSet, []*ParseResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	defer trace.Pulse(ctx, opts.Heartbeat)()

	names := make([]string, len(files))
	for i, path := range files {
		names[i] = DisplayPath(path, baseDir)
	}
	buildpipeline.EmitQueued(opts.Progress, names)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*ParseResult, len(files)) // каждый воркер пишет только свой индекс

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id, err := fileSet.Load(files[i])
			if err != nil {
				results[i] = loadFailure(fileSet, names[i], err, opts)
				return nil
			}
			results[i] = parseFile(gctx, fileSet, fileSet.Get(id), names[i], opts)
			return nil
		})
	}
	return fileSet, results, g.Wait()
}

// loadFailure is the result for a file that could not be read.
func loadFailure(fileSet *source.FileSet, name string, err error, opts ParseOptions) *ParseResult {
	wrapped := wrapErr(name, err)
	bag := diag.NewBag(opts.MaxDiagnostics)
	reportErr(bag, fmt.Errorf("failed to load file: %w", wrapped))
	buildpipeline.Emit(opts.Progress, buildpipeline.Event{
		File:   name,
		Stage:  buildpipeline.StageLoad,
		Status: buildpipeline.StatusError,
		Err:    wrapped,
	})
	return &ParseResult{Path: name, FileSet: fileSet, Bag: bag, Err: wrapped}
}
