package chromalex

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"hilite/internal/langdef"
	"hilite/internal/style"
	"hilite/internal/token"
)

// Style converts the styles of def, as resolved by s, into a chroma style
// so chroma formatters render the definition's own colours. Descriptors
// using ANSI palette indexes have no chroma equivalent and are skipped.
func Style(def *langdef.Definition, s *style.Styler) (*chroma.Style, error) {
	b := chroma.NewStyleBuilder("hilite-" + def.ID())
	if entry := entryString(s.ForClass(token.PlainClass).Props()); entry != "" {
		b.Add(chroma.Background, entry)
	}
	for _, c := range def.Classes() {
		if c.Kind == token.Plain {
			continue
		}
		if entry := entryString(s.ForClass(c).Props()); entry != "" {
			b.Add(TypeOf(c), entry)
		}
	}
	return b.Build()
}

func entryString(p style.Props) string {
	var parts []string
	if strings.HasPrefix(p.Color, "#") {
		parts = append(parts, p.Color)
	}
	if strings.HasPrefix(p.Background, "#") {
		parts = append(parts, "bg:"+p.Background)
	}
	if p.Bold {
		parts = append(parts, "bold")
	}
	if p.Italic {
		parts = append(parts, "italic")
	}
	if p.Underline {
		parts = append(parts, "underline")
	}
	return strings.Join(parts, " ")
}

// Theme builds a style.Theme for def from a named chroma style, so the
// native renderers can use chroma's palettes. ok is false for unknown names.
func Theme(name string, def *langdef.Definition) (style.Theme, bool) {
	cs, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return ThemeFrom(cs, def), true
}

// ThemeFrom maps every class of def to the chroma style entry of its type.
func ThemeFrom(cs *chroma.Style, def *langdef.Definition) style.Theme {
	theme := style.Theme{}
	theme["default"] = descriptor(cs.Get(chroma.Text))
	for _, c := range def.Classes() {
		if c.Kind == token.Plain {
			continue
		}
		theme[c.StyleKey()] = descriptor(cs.Get(TypeOf(c)))
	}
	return theme
}

func descriptor(e chroma.StyleEntry) style.Descriptor {
	p := style.Props{
		Bold:      e.Bold == chroma.Yes,
		Italic:    e.Italic == chroma.Yes,
		Underline: e.Underline == chroma.Yes,
	}
	if e.Colour.IsSet() {
		p.Color = e.Colour.String()
	}
	if e.Background.IsSet() {
		p.Background = e.Background.String()
	}
	return style.Descriptor(p.CSS())
}

// StyleNames lists the chroma styles available to Theme.
func StyleNames() []string { return styles.Names() }
