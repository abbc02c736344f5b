package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"hilite/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого diag печатает:
//
//	<origin>: <SEV> <CODE> <field>: <Message>
//	    note: <field>: <msg>
//
// Порядок сохраняется: сортировка остаётся за вызывающим (Bag.Sort).
func Pretty(w io.Writer, diags []diag.Diagnostic, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	shown := diags
	if opts.Max > 0 && len(shown) > opts.Max {
		shown = shown[:opts.Max]
	}
	for _, d := range shown {
		var b strings.Builder
		if origin := formatPath(d.Origin, opts.PathMode, opts.BaseDir); origin != "" {
			b.WriteString(pal.path.Sprint(origin))
			b.WriteString(": ")
		}
		b.WriteString(pal.severity(d.Severity).Sprint(d.Severity.String()))
		b.WriteByte(' ')
		b.WriteString(pal.code.Sprint(d.Code.ID()))
		if d.Field != "" {
			b.WriteByte(' ')
			b.WriteString(d.Field)
		}
		b.WriteString(": ")
		b.WriteString(d.Message)
		b.WriteByte('\n')
		if opts.ShowNotes {
			for _, n := range d.Notes {
				b.WriteString("    ")
				b.WriteString(pal.note.Sprint("note"))
				b.WriteString(": ")
				if n.Field != "" {
					b.WriteString(n.Field)
					b.WriteString(": ")
				}
				b.WriteString(n.Msg)
				b.WriteByte('\n')
			}
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	if hidden := len(diags) - len(shown); hidden > 0 {
		if _, err := fmt.Fprintf(w, "... and %d more\n", hidden); err != nil {
			return err
		}
	}
	return nil
}

type palette struct {
	path, code, note *color.Color
	err, warn, info  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path: color.New(color.Bold),
		code: color.New(color.FgCyan),
		note: color.New(color.FgBlue, color.Bold),
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.path, p.code, p.note, p.err, p.warn, p.info} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}
