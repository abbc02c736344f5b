package registry

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"hilite/internal/langdef"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

// BuiltinSpecs decodes the embedded definitions in file-name order.
func BuiltinSpecs() ([]langdef.Spec, error) {
	names, err := fs.Glob(builtinFS, "builtin/*.toml")
	if err != nil {
		return nil, err
	}
	specs := make([]langdef.Spec, 0, len(names))
	for _, name := range names {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		spec, err := langdef.Decode(data, langdef.FormatTOML)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", path.Base(name), err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// LoadBuiltins registers the embedded definitions. Files loaded later may
// replace them; once such a file is deleted the built-in comes back.
func (r *Registry) LoadBuiltins() error {
	specs, err := BuiltinSpecs()
	if err != nil {
		return err
	}
	for _, spec := range specs {
		def, err := r.put(spec, "builtin:"+spec.ID, putStrict)
		if err != nil {
			return err
		}
		r.mu.Lock()
		r.builtin[def.ID()] = true
		r.embedded[def.ID()] = spec
		r.mu.Unlock()
	}
	return nil
}

// NewWithBuiltins returns a registry preloaded with the embedded definitions.
func NewWithBuiltins(opts ...Option) (*Registry, error) {
	r := New(opts...)
	if err := r.LoadBuiltins(); err != nil {
		return nil, err
	}
	return r, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry holding the built-in
// definitions. Hosts that load their own files should use New instead.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewWithBuiltins()
		if err != nil {
			panic(fmt.Sprintf("registry: embedded definitions are invalid: %v", err))
		}
		defaultReg = r
	})
	return defaultReg
}
