package style

import (
	"hilite/internal/langdef"
	"hilite/internal/token"
)

// Theme overrides definition styles by style key ("keyword.types",
// "comment", "default").
type Theme map[string]Descriptor

// Styler maps tokens to descriptors for one definition. It is pure and
// safe for concurrent use.
type Styler struct {
	def      *langdef.Definition
	theme    Theme
	fallback Descriptor
}

// New returns a styler reading the definition's style map.
func New(def *langdef.Definition) *Styler {
	return &Styler{def: def, fallback: Default}
}

// WithTheme returns a copy of s whose lookups consult theme first at every level.
func (s *Styler) WithTheme(theme Theme) *Styler {
	out := *s
	out.theme = theme
	return &out
}

// WithFallback returns a copy of s with a different last-resort descriptor.
func (s *Styler) WithFallback(d Descriptor) *Styler {
	out := *s
	out.fallback = d
	return &out
}

// Style returns the descriptor of a token. It never fails.
func (s *Styler) Style(tok token.Token) Descriptor {
	return s.ForClass(tok.Class)
}

// ForClass resolves "kind.name", then "kind", then "default", then the
// fallback descriptor.
func (s *Styler) ForClass(c token.Class) Descriptor {
	keys := [3]string{c.StyleKey(), c.Kind.String(), "default"}
	for _, key := range keys {
		if d, ok := s.theme[key]; ok {
			return d
		}
		if s.def != nil {
			if d, ok := s.def.Style(key); ok {
				return Descriptor(d)
			}
		}
	}
	return s.fallback
}
