package format_test

import (
	"testing"

	"seqgen/internal/format"
	"seqgen/internal/seq"
	"seqgen/internal/source"
	"seqgen/internal/tokentree"
)

func parse(t *testing.T, src string) (tokentree.Stream, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("print.go.seq", []byte(src)))
	stream, ok := tokentree.Parse(file, nil)
	if !ok {
		t.Fatalf("parse %q failed", src)
	}
	return stream, file
}

func TestPrintSpacing(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{src: "a  b", want: "a b"},
		{src: "x := f ( a , b )", want: "x := f(a, b)"},
		{src: "fmt . Println ( \"hi\" )", want: "fmt.Println(\"hi\")"},
		{src: "a [ 0 ] = - 1", want: "a[0] = - 1"},
		{src: "for i := 0 ; i < 3 ; i ++ { }", want: "for i := 0; i < 3; i ++ {}"},
		{src: "ch <- v", want: "ch <- v"},
		{src: "f(a...)", want: "f(a...)"},
		{src: "return (x)", want: "return (x)"},
		{src: "func (r T) M ( )", want: "func (r T) M()"},
		{src: "x = (y)", want: "x = (y)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stream, _ := parse(t, tt.src)
			if got := format.Print(stream, format.GoOptions()); got != tt.want {
				t.Fatalf("Print = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintLineStructure(t *testing.T) {
	src := "\ntype T struct {\n\ta int\n\tb string\n}\nvar x = 1"
	stream, _ := parse(t, src)
	want := "type T struct {\n\ta int\n\tb string\n}\nvar x = 1"
	if got := format.Print(stream, format.GoOptions()); got != want {
		t.Fatalf("Print:\n%q\nwant:\n%q", got, want)
	}
}

func TestPrintInvisibleGroups(t *testing.T) {
	src := "N in 0..3 {\nconst (\n\t#(\n\tC~N = N\n\t)*\n)\n}"
	input, _ := parse(t, src)
	eoi := input[len(input)-1].Span.AtEnd()
	out, err := seq.ExpandStream(input, eoi, seq.Options{})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	want := "const (\n\tC0 = 0\n\tC1 = 1\n\tC2 = 2\n)"
	if got := format.Print(out, format.GoOptions()); got != want {
		t.Fatalf("Print:\n%q\nwant:\n%q", got, want)
	}
}

func TestPrintEmptyInvisibleCarriesNewline(t *testing.T) {
	src := "N in 0..0 {\na\n#( b )*\nc\n}"
	input, _ := parse(t, src)
	out, err := seq.ExpandStream(input, input[len(input)-1].Span.AtEnd(), seq.Options{})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got := format.Print(out, format.GoOptions()); got != "a\nc" {
		t.Fatalf("Print = %q", got)
	}
}

func TestWriterSplicesWithLineIndent(t *testing.T) {
	src := "func f() {\n\tseq!(N in 0..2 {\n\t\tx~N()\n\t})\n}\n"
	_, file := parse(t, src)

	body, _ := parse(t, "x0()\nx1()")
	w := format.NewWriter(file, format.GoOptions())
	w.CopyTo(12) // "func f() {\n\t"
	w.WriteStream(body)
	w.SkipTo(uint32(len(src) - 3))

	want := "func f() {\n\tx0()\n\tx1()\n}\n"
	if got := string(w.Finish()); got != want {
		t.Fatalf("spliced:\n%q\nwant:\n%q", got, want)
	}
}

func TestWriterCopySkip(t *testing.T) {
	_, file := parse(t, "keep DROP keep2\n")
	w := format.NewWriter(file, format.GoOptions())
	w.CopyTo(5)
	w.SkipTo(10)
	w.CopyTo(3) // позади позиции: ничего
	w.WriteString("NEW ")
	w.SkipTo(8) // назад не двигается
	if got := string(w.Finish()); got != "keep NEW keep2\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriterIndentsGeneratedLines(t *testing.T) {
	w := format.NewWriter(nil, format.Options{IndentWidth: 2})
	w.WriteString("a {")
	w.Newline()
	w.SetIndent(2)
	w.WriteString("b")
	w.Space()
	w.Space()
	w.WriteString("c\n")
	w.SetIndent(-1)
	w.WriteString("}")
	if got := w.String(); got != "a {\n    b c\n}" {
		t.Fatalf("got %q", got)
	}
}
