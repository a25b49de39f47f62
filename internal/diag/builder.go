package diag

import "seqgen/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// NewError builds an error diagnostic regardless of the code's usual severity.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Builder collects notes for one diagnostic before it goes to a Reporter.
type Builder struct {
	r       Reporter
	d       Diagnostic
	emitted bool
}

// Report starts a diagnostic for code at primary, with the severity the code
// carries (see Code.Severity). Nothing reaches r until Emit.
func Report(r Reporter, code Code, primary source.Span, msg string) *Builder {
	return &Builder{r: r, d: New(code.Severity(), code, primary, msg)}
}

func (b *Builder) WithNote(sp source.Span, msg string) *Builder {
	b.d = b.d.WithNote(sp, msg)
	return b
}

// Emit hands the diagnostic to the reporter; later calls do nothing.
func (b *Builder) Emit() {
	if b.emitted || b.r == nil {
		return
	}
	b.emitted = true
	b.r.Report(b.d)
}
