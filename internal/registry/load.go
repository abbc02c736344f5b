package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"hilite/internal/diag"
	"hilite/internal/langdef"
	"hilite/internal/trace"
)

// decodeFile reads one definition file. Bundles may hold several specs.
func decodeFile(path string) ([]langdef.Spec, error) {
	format := langdef.FormatFromPath(path)
	if format == langdef.FormatUnknown {
		return nil, langdef.NewLoadError(path, diag.LoadUnknownFormat,
			fmt.Errorf("%w: %s", langdef.ErrUnknownFormat, filepath.Ext(path)))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, langdef.NewLoadError(path, diag.LoadRead, err)
	}
	if format == langdef.FormatBundle {
		b, err := langdef.DecodeBundle(data)
		if err != nil {
			return nil, langdef.NewLoadError(path, diag.LoadDecode, err)
		}
		return b.Definitions, nil
	}
	spec, err := langdef.Decode(data, format)
	if err != nil {
		return nil, langdef.NewLoadError(path, diag.LoadDecode, err)
	}
	return []langdef.Spec{spec}, nil
}

// LoadFile decodes and registers the definitions in path. Files may shadow
// built-in definitions but not definitions loaded from other files. The ids
// registered before the first failure are returned.
func (r *Registry) LoadFile(path string) ([]string, error) {
	specs, err := decodeFile(path)
	if err != nil {
		trace.Error(r.tracer, trace.ScopeRegistry, "load", err)
		return nil, err
	}
	return r.registerAll(path, specs)
}

func (r *Registry) registerAll(origin string, specs []langdef.Spec) ([]string, error) {
	ids := make([]string, 0, len(specs))
	var errs []error
	for _, spec := range specs {
		def, err := r.put(spec, origin, putFile)
		if err != nil {
			trace.Error(r.tracer, trace.ScopeRegistry, "load", err)
			errs = append(errs, err)
			continue
		}
		ids = append(ids, def.ID())
		trace.Point(r.tracer, trace.ScopeRegistry, "registered", def.ID()+" from "+origin)
	}
	return ids, errors.Join(errs...)
}

// IsDefinitionFile reports whether path has an extension LoadFile accepts.
func IsDefinitionFile(path string) bool {
	return langdef.FormatFromPath(path) != langdef.FormatUnknown
}

// LoadDir loads every definition file under dir. Files are decoded in
// parallel by at most jobs workers (GOMAXPROCS when jobs <= 0) and then
// registered in sorted path order, so the outcome does not depend on
// scheduling. A broken file does not prevent the others from loading; all
// failures are joined into the returned error.
func (r *Registry) LoadDir(ctx context.Context, dir string, jobs int) ([]string, error) {
	span := trace.Begin(r.tracer, trace.ScopeRegistry, "load-dir", trace.CurrentSpan(ctx).SpanID).
		WithExtra("dir", dir)

	var files []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsDefinitionFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		span.End("walk failed")
		return nil, fmt.Errorf("scan %s: %w", dir, walkErr)
	}
	slices.Sort(files)

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	decoded := make([][]langdef.Spec, len(files))
	failures := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decoded[i], failures[i] = decodeFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("cancelled")
		return nil, err
	}

	var (
		ids  []string
		errs []error
	)
	for i, path := range files {
		if failures[i] != nil {
			trace.Error(r.tracer, trace.ScopeRegistry, "load", failures[i])
			errs = append(errs, failures[i])
			continue
		}
		got, err := r.registerAll(path, decoded[i])
		ids = append(ids, got...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	span.WithExtra("files", fmt.Sprint(len(files))).
		WithExtra("definitions", fmt.Sprint(len(ids))).
		End(fmt.Sprintf("%d failed", len(errs)))
	return ids, errors.Join(errs...)
}

// DefinitionErrors flattens an error returned by the load functions into
// the definition errors it carries.
func DefinitionErrors(err error) []*langdef.DefinitionError {
	if err == nil {
		return nil
	}
	var out []*langdef.DefinitionError
	var walk func(error)
	walk = func(e error) {
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var de *langdef.DefinitionError
		if errors.As(e, &de) {
			out = append(out, de)
		}
	}
	walk(err)
	return out
}
