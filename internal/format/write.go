package format

import (
	"bytes"
	"strings"

	"seqgen/internal/source"
)

// Writer builds an expanded file. Template text is copied through in order
// with CopyTo; SkipTo drops the text of an invocation, and expansions are
// written in its place.
type Writer struct {
	src []byte // текст шаблона, nil для Print
	pos int    // сколько src уже пройдено
	buf []byte
	opt Options

	// начало строки продолжения: prefix, затем depth уровней отступа
	prefix string
	depth  int
	bol    bool
}

// NewWriter starts a writer over the template sf; sf may be nil when only
// token streams are printed.
func NewWriter(sf *source.File, opt Options) *Writer {
	w := &Writer{opt: opt.withDefaults()}
	if sf != nil {
		w.src = sf.Content
		w.buf = make([]byte, 0, len(sf.Content)+len(sf.Content)/2)
	}
	return w
}

func (w *Writer) Bytes() []byte  { return w.buf }
func (w *Writer) String() string { return string(w.buf) }

// CopyTo copies template text from the current position up to off.
// Offsets at or behind the position copy nothing.
func (w *Writer) CopyTo(off uint32) { w.copyTo(int(off)) }

func (w *Writer) copyTo(off int) {
	end := min(off, len(w.src))
	if end <= w.pos {
		return
	}
	w.buf = append(w.buf, w.src[w.pos:end]...)
	w.bol = w.src[end-1] == '\n'
	w.pos = end
}

// SkipTo moves the position to off without copying.
func (w *Writer) SkipTo(off uint32) {
	w.pos = max(w.pos, min(int(off), len(w.src)))
}

// Finish copies the rest of the template and returns the output.
func (w *Writer) Finish() []byte {
	w.copyTo(len(w.src))
	return w.buf
}

func (w *Writer) indent() {
	if !w.bol {
		return
	}
	w.buf = append(w.buf, w.prefix...)
	if w.opt.UseTabs {
		w.buf = append(w.buf, strings.Repeat("\t", w.depth)...)
	} else {
		w.buf = append(w.buf, strings.Repeat(" ", w.depth*w.opt.IndentWidth)...)
	}
	w.bol = false
}

// WriteString writes generated text; a pending line start is indented first.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.indent()
	w.buf = append(w.buf, s...)
	w.bol = s[len(s)-1] == '\n'
}

// Space separates tokens unless the output already ends in whitespace.
func (w *Writer) Space() {
	if n := len(w.buf); n > 0 && !isSpace(w.buf[n-1]) {
		w.buf = append(w.buf, ' ')
	}
}

// Newline ends the line unless it is already ended; the next write is
// indented.
func (w *Writer) Newline() {
	if n := len(w.buf); n == 0 || w.buf[n-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.bol = true
}

// SetIndent sets the nesting depth of following lines.
func (w *Writer) SetIndent(depth int) {
	w.depth = max(depth, 0)
}

// lineIndent returns the leading blanks of the line being written.
func (w *Writer) lineIndent() string {
	line := w.buf[bytes.LastIndexByte(w.buf, '\n')+1:]
	n := 0
	for n < len(line) && isSpace(line[n]) && line[n] != '\n' {
		n++
	}
	return string(line[:n])
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' }
