package style

import (
	"strconv"
	"strings"
)

// Descriptor is an opaque presentation description.
type Descriptor string

// Default is returned when nothing in the style map applies.
const Default Descriptor = ""

// Props is the renderer-facing view of a descriptor.
type Props struct {
	Color      string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
}

// Zero reports whether the props carry no styling at all.
func (p Props) Zero() bool { return p == Props{} }

// Props parses the CSS declarations the renderers support. Unknown
// properties and malformed declarations are ignored.
func (d Descriptor) Props() Props {
	var p Props
	for _, decl := range strings.Split(string(d), ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		switch name {
		case "color":
			p.Color = normalizeColor(value)
		case "background", "background-color":
			p.Background = normalizeColor(value)
		case "font-weight":
			p.Bold = value == "bold" || value == "bolder" || weightAtLeast(value, 600)
		case "font-style":
			p.Italic = value == "italic" || value == "oblique"
		case "text-decoration", "text-decoration-line":
			p.Underline = strings.Contains(value, "underline")
		}
	}
	return p
}

// CSS renders props back into a canonical declaration list.
func (p Props) CSS() string {
	var decls []string
	if p.Color != "" {
		decls = append(decls, "color:"+p.Color)
	}
	if p.Background != "" {
		decls = append(decls, "background-color:"+p.Background)
	}
	if p.Bold {
		decls = append(decls, "font-weight:bold")
	}
	if p.Italic {
		decls = append(decls, "font-style:italic")
	}
	if p.Underline {
		decls = append(decls, "text-decoration:underline")
	}
	return strings.Join(decls, ";")
}

// normalizeColor expands #rgb to #rrggbb and lowercases hex digits.
// Anything that is not a hex color or an ANSI palette index is dropped.
func normalizeColor(v string) string {
	v = strings.ToLower(v)
	if n, err := strconv.Atoi(v); err == nil {
		if n >= 0 && n <= 255 {
			return v
		}
		return ""
	}
	if !strings.HasPrefix(v, "#") {
		return ""
	}
	hex := v[1:]
	for _, c := range hex {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return ""
		}
	}
	switch len(hex) {
	case 3:
		return "#" + string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
		return v
	}
	return ""
}

func weightAtLeast(v string, min int) bool {
	n, err := strconv.Atoi(v)
	return err == nil && n >= min
}
