// Package registry owns the loaded language definitions. Definitions are
// compiled once, stored immutably and handed out as shared pointers; the
// registry only guards its own id map.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"hilite/internal/complete"
	"hilite/internal/langdef"
	"hilite/internal/trace"
)

// DefaultFallback is the definition used for files with unknown extensions.
const DefaultFallback = "conf"

// Registry maps definition ids to compiled definitions.
type Registry struct {
	mu       sync.RWMutex
	defs     map[string]*langdef.Definition
	origins  map[string]string // id -> file it was loaded from
	builtin  map[string]bool
	embedded map[string]langdef.Spec // built-in payloads, kept to undo shadowing
	exts     map[string]string       // extension -> id, first claimant wins
	override map[string]string       // extension -> id from project config
	fallback string
	lookback int // > 0 overrides completion.max_lookback

	cache  *complete.Cache
	tracer trace.Tracer
}

// Option configures a Registry.
type Option func(*Registry)

// WithTracer reports loading and reloading through t.
func WithTracer(t trace.Tracer) Option {
	return func(r *Registry) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithFallback sets the definition used by Detect for unknown extensions.
func WithFallback(id string) Option {
	return func(r *Registry) { r.fallback = id }
}

// WithFileTypes overrides extension detection; keys are extensions with or
// without the leading dot.
func WithFileTypes(m map[string]string) Option {
	return func(r *Registry) {
		for ext, id := range m {
			r.override[normalizeExt(ext)] = id
		}
	}
}

// WithMaxLookback forces the completion look-back window of every
// definition registered afterwards. Non-positive values are ignored.
func WithMaxLookback(n int) Option {
	return func(r *Registry) { r.lookback = max(n, 0) }
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		defs:     make(map[string]*langdef.Definition),
		origins:  make(map[string]string),
		builtin:  make(map[string]bool),
		embedded: make(map[string]langdef.Spec),
		exts:     make(map[string]string),
		override: make(map[string]string),
		fallback: DefaultFallback,
		cache:    complete.NewCache(),
		tracer:   trace.Nop,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register compiles spec and stores it. It fails with a
// *langdef.DefinitionError when the payload is invalid or the id is taken;
// nothing is stored on failure.
func (r *Registry) Register(spec langdef.Spec) error {
	_, err := r.put(spec, "", putStrict)
	return err
}

// Replace compiles spec and stores it in place of any definition with the
// same id. The cached completion index of the old definition is dropped.
// On failure the previous definition stays registered.
func (r *Registry) Replace(spec langdef.Spec) error {
	_, err := r.put(spec, "", putReplace)
	return err
}

type putMode uint8

const (
	putStrict  putMode = iota
	putReplace         // always swap
	putFile            // files may shadow built-ins, not each other
)

func (r *Registry) put(spec langdef.Spec, origin string, mode putMode) (*langdef.Definition, error) {
	def, err := langdef.CompileFrom(r.adjust(spec), origin)
	if err != nil {
		return nil, err
	}
	id := def.ID()

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.defs[id]
	if exists {
		switch mode {
		case putStrict:
			return nil, langdef.NewDuplicateError(id, origin)
		case putFile:
			if !r.builtin[id] && r.origins[id] != origin {
				return nil, langdef.NewDuplicateError(id, origin)
			}
		}
		r.unclaim(prev)
		r.cache.Forget(id)
		delete(r.builtin, id)
		trace.Point(r.tracer, trace.ScopeRegistry, "replace", id)
	}
	r.defs[id] = def
	r.origins[id] = origin
	for _, ext := range def.Extensions() {
		if _, taken := r.exts[ext]; !taken {
			r.exts[ext] = id
		}
	}
	return def, nil
}

func (r *Registry) unclaim(def *langdef.Definition) {
	for _, ext := range def.Extensions() {
		if r.exts[ext] == def.ID() {
			delete(r.exts, ext)
		}
	}
}

// Remove drops a definition. It reports whether the id was registered.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.defs[id]
	if !ok {
		return false
	}
	r.unclaim(def)
	delete(r.defs, id)
	delete(r.origins, id)
	delete(r.builtin, id)
	r.cache.Forget(id)
	return true
}

// release drops the definition a file provided under id. When the file had
// shadowed a built-in, the built-in is registered again and release reports
// true.
func (r *Registry) release(id string) bool {
	r.mu.RLock()
	spec, ok := r.embedded[id]
	r.mu.RUnlock()
	if ok {
		if _, err := r.put(spec, "builtin:"+id, putReplace); err == nil {
			r.mu.Lock()
			r.builtin[id] = true
			r.mu.Unlock()
			trace.Point(r.tracer, trace.ScopeRegistry, "restore", id)
			return true
		}
	}
	r.Remove(id)
	return false
}

// Get returns the definition registered under id.
func (r *Registry) Get(id string) (*langdef.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	return def, ok
}

// MustGet is Get for ids known to be registered, such as built-ins.
func (r *Registry) MustGet(id string) *langdef.Definition {
	def, ok := r.Get(id)
	if !ok {
		panic(fmt.Sprintf("registry: definition %q is not registered", id))
	}
	return def
}

// ErrNotFound is returned when a lookup names an unregistered definition.
var ErrNotFound = errors.New("definition not registered")

// Lookup is Get with an error suitable for CLI output.
func (r *Registry) Lookup(id string) (*langdef.Definition, error) {
	def, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("%q: %w (known: %s)", id, ErrNotFound, strings.Join(r.IDs(), ", "))
	}
	return def, nil
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Origin returns the file a definition was loaded from; empty for
// definitions registered from memory.
func (r *Registry) Origin(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.origins[id]
}

// IsBuiltin reports whether id still refers to an embedded definition.
func (r *Registry) IsBuiltin(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.builtin[id]
}

// Detect picks a definition for a file name: project overrides first, then
// extensions claimed by definitions, then the fallback.
func (r *Registry) Detect(filename string) (*langdef.Definition, bool) {
	ext := normalizeExt(filepath.Ext(filename))

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range []string{r.override[ext], r.exts[ext], r.fallback} {
		if id == "" {
			continue
		}
		if def, ok := r.defs[id]; ok {
			return def, true
		}
	}
	return nil, false
}

// Index returns the cached completion index of a definition.
func (r *Registry) Index(id string) (*complete.Index, bool) {
	def, ok := r.Get(id)
	if !ok {
		return nil, false
	}
	return r.cache.Index(def), true
}

// Resolver returns a completion resolver bound to the current definition.
func (r *Registry) Resolver(id string) (*complete.Resolver, bool) {
	def, ok := r.Get(id)
	if !ok {
		return nil, false
	}
	return complete.NewResolver(def, r.cache.Index(def)), true
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// check validates spec the way a file load would, without storing it.
func (r *Registry) check(spec langdef.Spec, origin string) (*langdef.Definition, error) {
	def, err := langdef.CompileFrom(r.adjust(spec), origin)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id := def.ID()
	if _, exists := r.defs[id]; exists && !r.builtin[id] && r.origins[id] != origin {
		return nil, langdef.NewDuplicateError(id, origin)
	}
	return def, nil
}

// adjust applies registry-wide overrides to a payload before compiling.
func (r *Registry) adjust(spec langdef.Spec) langdef.Spec {
	if r.lookback > 0 {
		spec.Completion.MaxLookback = r.lookback
	}
	return spec
}
