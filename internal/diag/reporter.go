package diag

// Reporter: минимальный контракт получения диагностик от валидатора.
// Реализации: BagReporter (кладёт в Bag).
type Reporter interface {
	Report(code Code, sev Severity, field, msg string, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, field, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, field, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, field, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, field, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, field, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, field, msg)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(field, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(field, msg)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Field, b.diag.Message, b.diag.Notes)
	}
	b.emitted = true
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter: адаптер, который пишет в *Bag. Origin проставляется всем записям.
type BagReporter struct {
	Bag    *Bag
	Origin string
}

func (r BagReporter) Report(code Code, sev Severity, field, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Origin: r.Origin,
		Field: field, Message: msg, Notes: notes,
	})
}
