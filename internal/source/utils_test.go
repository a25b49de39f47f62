package source

import (
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{name: "no carriage returns", in: "a\nb\n", want: "a\nb\n", changed: false},
		{name: "crlf pairs", in: "a\r\nb\r\n", want: "a\nb\n", changed: true},
		{name: "lone cr kept", in: "a\rb\r\n", want: "a\rb\n", changed: true},
		{name: "trailing cr kept", in: "a\r", want: "a\r", changed: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.in))
			if string(got) != tt.want {
				t.Errorf("normalizeCRLF(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if changed != tt.changed {
				t.Errorf("normalizeCRLF(%q) changed = %v, want %v", tt.in, changed, tt.changed)
			}
		})
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncd\n\nx")
	idx := buildLineIndex(content)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{off: 0, want: LineCol{Line: 1, Col: 1}},
		{off: 2, want: LineCol{Line: 1, Col: 3}}, // the '\n' belongs to line 1
		{off: 3, want: LineCol{Line: 2, Col: 1}},
		{off: 6, want: LineCol{Line: 3, Col: 1}},
		{off: 7, want: LineCol{Line: 4, Col: 1}},
		{off: 8, want: LineCol{Line: 4, Col: 2}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath("a/./b/../c.seq"); got != "a/c.seq" {
		t.Fatalf("normalizePath = %q, want %q", got, "a/c.seq")
	}
}
