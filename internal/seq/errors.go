package seq

import (
	"seqgen/internal/diag"
	"seqgen/internal/source"
)

// Error is the located error returned by the parser and the expander.
type Error = diag.Error

func errorf(code diag.Code, sp source.Span, format string, args ...any) *Error {
	return diag.Errorf(code, sp, format, args...)
}

// Report emits err through r, see diag.ReportErr.
func Report(r diag.Reporter, err error, fallback source.Span) {
	diag.ReportErr(r, err, fallback)
}
