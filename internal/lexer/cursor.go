package lexer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"seqgen/internal/source"
)

// Cursor is a byte position in one template.
type Cursor struct {
	File *source.File
	Off  uint32
	end  uint32
}

func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("%s: file too large for uint32 offsets: %w", f.Path, err))
	}
	return Cursor{File: f, end: end}
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.end
}

// PeekAt returns the byte n positions ahead of the cursor, or 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if n >= c.end-min(c.Off, c.end) {
		return 0
	}
	return c.File.Content[c.Off+n]
}

func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// Prev returns the byte before the cursor, or 0 at the start of the file.
func (c *Cursor) Prev() byte {
	if c.Off == 0 {
		return 0
	}
	return c.File.Content[c.Off-1]
}

// Bump consumes one byte and returns it; at EOF it returns 0 and stays put.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// EatString consumes s if the input continues with it: "//", "*/", "..=".
func (c *Cursor) EatString(s string) bool {
	if c.EOF() || !bytes.HasPrefix(c.File.Content[c.Off:c.end], []byte(s)) {
		return false
	}
	c.advance(len(s))
	return true
}

func (c *Cursor) advance(n int) {
	un, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("cursor advance overflow: %w", err))
	}
	c.Off += un
}

// BumpWhile consumes bytes while pred holds and returns how many it took.
func (c *Cursor) BumpWhile(pred func(byte) bool) int {
	n := 0
	for !c.EOF() && pred(c.File.Content[c.Off]) {
		c.Off++
		n++
	}
	return n
}

// Rune decodes the rune at the cursor. size is 0 at EOF; invalid UTF-8
// yields utf8.RuneError with size 1.
func (c *Cursor) Rune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.File.Content[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.end])
}

// BumpRune consumes the rune at the cursor.
func (c *Cursor) BumpRune() rune {
	r, size := c.Rune()
	c.advance(size)
	return r
}

// Mark is a saved offset; SpanFrom turns it into the span of what was read
// since.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset rewinds to m.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
