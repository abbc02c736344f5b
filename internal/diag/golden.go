package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FormatShort renders diagnostics into a stable, single-line-per-entry form
// used by the CLI and golden tests:
//
//	error DEF1003 java.toml custom_rules[0].pattern: message
//
// Origins are reduced to their base name. Notes follow their diagnostic with
// the "note" label when includeNotes is set. Output is sorted and has no
// trailing newline.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i], sorted[j]
		if di.Origin != dj.Origin {
			return di.Origin < dj.Origin
		}
		if di.Field != dj.Field {
			return di.Field < dj.Field
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})

	lines := make([]string, 0, len(sorted))
	for _, d := range sorted {
		lines = append(lines, formatLine(severityLabel(d.Severity), d.Code, d.Origin, d.Field, d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, formatLine("note", d.Code, d.Origin, n.Field, n.Msg))
		}
	}
	return strings.Join(lines, "\n")
}

func formatLine(label string, code Code, origin, field, msg string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", label, code.ID())
	if origin != "" {
		b.WriteByte(' ')
		b.WriteString(filepath.Base(origin))
	}
	if field != "" {
		b.WriteByte(' ')
		b.WriteString(field)
	}
	b.WriteString(": ")
	b.WriteString(singleLine(msg))
	return b.String()
}

func severityLabel(sev Severity) string {
	return strings.ToLower(sev.String())
}

func singleLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
