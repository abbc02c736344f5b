package style

import (
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hilite/internal/token"
)

// ANSI renders token streams with terminal escape sequences.
type ANSI struct {
	renderer *lipgloss.Renderer
	styler   *Styler
	cache    map[Descriptor]*lipgloss.Style
}

// NewANSI binds a styler to a lipgloss renderer; the renderer decides the
// color profile (use SetColorProfile to force one).
func NewANSI(r *lipgloss.Renderer, s *Styler) *ANSI {
	return &ANSI{renderer: r, styler: s, cache: make(map[Descriptor]*lipgloss.Style)}
}

// Render writes every token of the stream.
func (a *ANSI) Render(w io.Writer, toks iter.Seq[token.Token]) error {
	var b strings.Builder
	for tok := range toks {
		a.writeToken(&b, tok)
		if b.Len() >= 32<<10 {
			if _, err := io.WriteString(w, b.String()); err != nil {
				return err
			}
			b.Reset()
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// String renders a single token.
func (a *ANSI) String(tok token.Token) string {
	var b strings.Builder
	a.writeToken(&b, tok)
	return b.String()
}

func (a *ANSI) writeToken(b *strings.Builder, tok token.Token) {
	st := a.styleFor(a.styler.Style(tok))
	if st == nil {
		b.WriteString(tok.Text)
		return
	}
	// lipgloss выравнивает многострочный текст, поэтому красим построчно
	for i, line := range strings.Split(tok.Text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != "" {
			b.WriteString(st.Render(line))
		}
	}
}

func (a *ANSI) styleFor(d Descriptor) *lipgloss.Style {
	if st, ok := a.cache[d]; ok {
		return st
	}
	p := d.Props()
	var st *lipgloss.Style
	if !p.Zero() {
		s := a.renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
		if p.Color != "" {
			s = s.Foreground(lipgloss.Color(p.Color))
		}
		if p.Background != "" {
			s = s.Background(lipgloss.Color(p.Background))
		}
		s = s.Bold(p.Bold).Italic(p.Italic).Underline(p.Underline)
		st = &s
	}
	a.cache[d] = st
	return st
}
