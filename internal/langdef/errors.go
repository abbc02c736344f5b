package langdef

import (
	"fmt"
	"strings"

	"hilite/internal/diag"
)

// DefinitionError reports why a definition was rejected. It is only ever
// produced at registration time; a rejected definition leaves no trace.
type DefinitionError struct {
	ID          string
	Origin      string
	Diagnostics []diag.Diagnostic

	cause error
}

// Unwrap returns the I/O or decoding error behind a load failure.
func (e *DefinitionError) Unwrap() error { return e.cause }

func (e *DefinitionError) Error() string {
	var b strings.Builder
	if e.ID != "" {
		fmt.Fprintf(&b, "definition %q", e.ID)
	} else {
		b.WriteString("definition")
	}
	if e.Origin != "" {
		fmt.Fprintf(&b, " (%s)", e.Origin)
	}
	errs := e.errors()
	if len(errs) == 0 {
		b.WriteString(": invalid")
		return b.String()
	}
	first := errs[0]
	fmt.Fprintf(&b, ": %s", first.Code.ID())
	if first.Field != "" {
		fmt.Fprintf(&b, " %s", first.Field)
	}
	fmt.Fprintf(&b, ": %s", first.Message)
	if len(errs) > 1 {
		fmt.Fprintf(&b, " (and %d more)", len(errs)-1)
	}
	return b.String()
}

// Has reports whether any error-level diagnostic carries the given code.
func (e *DefinitionError) Has(code diag.Code) bool {
	for _, d := range e.errors() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func (e *DefinitionError) errors() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range e.Diagnostics {
		if d.Severity >= diag.SevError {
			out = append(out, d)
		}
	}
	return out
}

// NewDuplicateError builds the error returned when id is already registered.
func NewDuplicateError(id, origin string) *DefinitionError {
	d := diag.NewError(diag.DefDuplicateID, "id", fmt.Sprintf("definition %q is already registered", id)).WithOrigin(origin)
	return &DefinitionError{ID: id, Origin: origin, Diagnostics: []diag.Diagnostic{d}}
}

// NewLoadError wraps a failure that happened before compilation, while a
// definition file was read or decoded.
func NewLoadError(origin string, code diag.Code, err error) *DefinitionError {
	d := diag.NewError(code, "", err.Error()).WithOrigin(origin)
	return &DefinitionError{Origin: origin, Diagnostics: []diag.Diagnostic{d}, cause: err}
}
