package lexer

import (
	"seqgen/internal/diag"
	"seqgen/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
}

// report sends a diagnostic with the severity its code carries.
func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	diag.Report(lx.opts.Reporter, code, sp, msg).Emit()
}
