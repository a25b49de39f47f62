package diag

import (
	"errors"
	"fmt"

	"seqgen/internal/source"
)

// Error is a located failure returned by pure phases (seq!, derive!) that do
// not hold a Reporter. Callers turn it into a Diagnostic with ReportErr.
type Error struct {
	Code Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

// Errorf builds a located error.
func Errorf(code Code, sp source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

// ReportErr emits err through r as an error, whatever its code. Errors
// without location are reported with UnknownCode at fallback.
func ReportErr(r Reporter, err error, fallback source.Span) {
	if err == nil {
		return
	}
	var le *Error
	if errors.As(err, &le) {
		r.Report(NewError(le.Code, le.Span, le.Msg))
		return
	}
	r.Report(NewError(UnknownCode, fallback, err.Error()))
}
