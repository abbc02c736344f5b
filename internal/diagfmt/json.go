package diagfmt

import (
	"encoding/json"
	"io"

	"hilite/internal/diag"
)

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Origin   string     `json:"origin,omitempty"`
	Field    string     `json:"field,omitempty"`
	Message  string     `json:"message"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// Errors и Warnings считаются по всему входу, даже если Max обрезал список.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(diags))}
	for i, d := range diags {
		switch d.Severity {
		case diag.SevError:
			out.Errors++
		case diag.SevWarning:
			out.Warnings++
		}
		if opts.Max > 0 && i >= opts.Max {
			continue
		}
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Origin:   formatPath(d.Origin, opts.PathMode, opts.BaseDir),
			Field:    d.Field,
			Message:  d.Message,
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, n := range d.Notes {
				dj.Notes[j] = NoteJSON{Field: n.Field, Message: n.Msg}
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, diags []diag.Diagnostic, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(diags, opts))
}
