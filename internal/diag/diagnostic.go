package diag

// Note is secondary context attached to a diagnostic.
type Note struct {
	Field string
	Msg   string
}

// Diagnostic is a single finding about a definition payload.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Origin   string
	Field    string
	Message  string
	Notes    []Note
}

// New builds a diagnostic without notes.
func New(sev Severity, code Code, field, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Field:    field,
		Message:  msg,
	}
}

// NewError is a shortcut for SevError diagnostics.
func NewError(code Code, field, msg string) Diagnostic {
	return New(SevError, code, field, msg)
}

// WithNote returns a copy of d with an extra note.
func (d Diagnostic) WithNote(field, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Field: field, Msg: msg})
	return d
}

// WithOrigin returns a copy of d attributed to the given file.
func (d Diagnostic) WithOrigin(origin string) Diagnostic {
	d.Origin = origin
	return d
}
