package derive

import (
	"fmt"
	"strings"
)

// codeWriter accumulates indented Go source.
type codeWriter struct {
	sb     strings.Builder
	indent int
}

// Linef writes one indented line.
func (w *codeWriter) Linef(format string, args ...any) {
	if format == "" {
		w.sb.WriteByte('\n')
		return
	}
	w.sb.WriteString(strings.Repeat("\t", w.indent))
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
}

// Blank writes an empty line.
func (w *codeWriter) Blank() { w.sb.WriteByte('\n') }

func (w *codeWriter) Indent() { w.indent++ }

func (w *codeWriter) Dedent() {
	if w.indent > 0 {
		w.indent--
	}
}

func (w *codeWriter) String() string { return w.sb.String() }
