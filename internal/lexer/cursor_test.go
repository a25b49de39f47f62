package lexer

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"seqgen/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.go.seq", []byte(content))
	return fs.Get(id)
}

func TestCursorWalk(t *testing.T) {
	file := createFile("x~N")
	c := NewCursor(file)

	var got []byte
	for !c.EOF() {
		if p := c.Peek(); p != file.Content[c.Off] {
			t.Fatalf("Peek at %d = %q", c.Off, p)
		}
		got = append(got, c.Bump())
	}
	if string(got) != "x~N" {
		t.Fatalf("read %q", got)
	}
	if c.Peek() != 0 || c.Bump() != 0 {
		t.Fatal("Peek/Bump past EOF must return 0")
	}
	if c.Off != 3 {
		t.Fatalf("Bump past EOF moved the cursor to %d", c.Off)
	}
}

func TestCursorPeekAt(t *testing.T) {
	c := NewCursor(createFile("..="))
	if c.PeekAt(0) != '.' || c.PeekAt(2) != '=' || c.PeekAt(3) != 0 {
		t.Fatalf("PeekAt from 0: %q %q %q", c.PeekAt(0), c.PeekAt(2), c.PeekAt(3))
	}
	c.Off = 2
	if c.PeekAt(0) != '=' || c.PeekAt(1) != 0 {
		t.Fatalf("PeekAt from 2: %q %q", c.PeekAt(0), c.PeekAt(1))
	}
	c.Off = 3
	if c.Peek() != 0 || c.PeekAt(1<<31) != 0 {
		t.Fatal("PeekAt past EOF must return 0")
	}
}

func TestCursorEatString(t *testing.T) {
	c := NewCursor(createFile("/* x */y"))
	if !c.EatString("/*") || c.Off != 2 {
		t.Fatalf("EatString(/*) off=%d", c.Off)
	}
	if c.EatString("*/") {
		t.Fatal("EatString matched at the wrong place")
	}
	c.BumpWhile(func(b byte) bool { return b != '*' })
	if !c.EatString("*/") || c.Peek() != 'y' {
		t.Fatalf("after */ peek=%q", c.Peek())
	}
	if c.EatString("yz") || c.Off != 7 {
		t.Fatal("EatString must not consume a partial match")
	}
}

func TestCursorBumpWhile(t *testing.T) {
	c := NewCursor(createFile("  \t\nx"))
	if n := c.BumpWhile(isBlank); n != 3 {
		t.Fatalf("BumpWhile(isBlank) = %d", n)
	}
	if n := c.BumpWhile(isBlank); n != 0 || c.Peek() != '\n' {
		t.Fatalf("second BumpWhile = %d at %q", n, c.Peek())
	}
	c.Off = 5
	if n := c.BumpWhile(func(byte) bool { return true }); n != 0 || !c.EOF() {
		t.Fatal("BumpWhile at EOF")
	}
}

func TestCursorRunes(t *testing.T) {
	c := NewCursor(createFile("aπ\xff"))
	want := []struct {
		r    rune
		size int
	}{{'a', 1}, {'π', 2}, {utf8.RuneError, 1}, {utf8.RuneError, 0}}
	for i, w := range want {
		r, size := c.Rune()
		if r != w.r || size != w.size {
			t.Fatalf("rune %d = %q/%d, want %q/%d", i, r, size, w.r, w.size)
		}
		c.BumpRune()
	}
	if c.Off != 4 {
		t.Fatalf("BumpRune walked to %d", c.Off)
	}
}

func TestCursorSpanFromResolve(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("span.go.seq", []byte("package p\n\nseq!(N in 0..3 {})\n"))
	c := NewCursor(fs.Get(id))

	// перематываем до "seq"
	for c.Peek() != 's' || c.Prev() != '\n' {
		c.Bump()
	}
	m := c.Mark()
	c.Bump()
	c.Bump()
	c.Bump()

	sp := c.SpanFrom(m)
	if sp.File != id || sp.End-sp.Start != 3 {
		t.Fatalf("span = %+v", sp)
	}
	start, end := fs.Resolve(sp)
	if start != (source.LineCol{Line: 3, Col: 1}) || end != (source.LineCol{Line: 3, Col: 4}) {
		t.Fatalf("Resolve = %+v..%+v", start, end)
	}
}

func TestCursorCRLFNormalised(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.go.seq")
	if err := os.WriteFile(path, []byte("a\r\nb"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	file := fs.Get(id)
	if file.Flags&source.FileNormalizedCRLF == 0 {
		t.Fatal("CRLF flag not set")
	}
	c := NewCursor(file)
	c.Bump()
	if !c.Eat('\n') {
		t.Fatalf("expected \\n after normalisation, got %q", c.Peek())
	}
	if c.Eat('\n') || c.Peek() != 'b' {
		t.Fatalf("Eat consumed the wrong byte, at %q", c.Peek())
	}
}

func TestCursorMarkReset(t *testing.T) {
	c := NewCursor(createFile("0x1f"))
	m := c.Mark()
	c.Bump()
	c.Bump()
	if c.Prev() != 'x' {
		t.Fatalf("Prev = %q", c.Prev())
	}
	c.Reset(m)
	if c.Off != 0 || c.Prev() != 0 || c.Peek() != '0' {
		t.Fatalf("after Reset: off=%d prev=%q peek=%q", c.Off, c.Prev(), c.Peek())
	}
}
