package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"hilite/internal/registry"
	"hilite/internal/source"
	"hilite/internal/trace"
)

// TokenizeFiles tokenizes several files in parallel. Results come back in
// the order of paths; a file that cannot be read or has no definition gets
// its Err set instead of failing the whole batch.
func TokenizeFiles(ctx context.Context, reg *registry.Registry, paths []string, opts Options) (*source.FileSet, []TokenizeResult, error) {
	fileSet := source.NewFileSet()
	results := make([]TokenizeResult, len(paths))

	// FileSet не потокобезопасен, поэтому файлы грузим заранее
	fileIDs := make([]source.FileID, len(paths))
	for i, path := range paths {
		results[i].Path = path
		id, err := fileSet.Load(path)
		if err != nil {
			results[i].Err = err
			continue
		}
		fileIDs[i] = id
		def, err := pickDefinition(reg, path, opts)
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].Def = def
	}
	for _, res := range results {
		if res.Err != nil {
			opts.emit(Event{Path: res.Path, Status: StatusError, Err: res.Err})
		} else {
			opts.emit(Event{Path: res.Path, Status: StatusQueued})
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i := range paths {
		if results[i].Err != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.emit(Event{Path: paths[i], Status: StatusWorking})
			span := trace.Begin(tracer, trace.ScopeDocument, "tokenize", parent).
				WithExtra("path", paths[i])
			// индекс i уникален, мьютекс не нужен
			results[i] = *tokenizeFile(fileSet.Get(fileIDs[i]), results[i].Def, opts)
			span.End(fmt.Sprintf("%d tokens", len(results[i].Tokens)))
			opts.emit(Event{Path: paths[i], Status: StatusDone, Tokens: len(results[i].Tokens)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}
