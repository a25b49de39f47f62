package tokentree

import (
	"fmt"
	"strings"
)

// String renders the stream on one line: tokens separated by single spaces,
// groups with their delimiters, Invisible groups as ⟦ ... ⟧.
func (s Stream) String() string {
	var b strings.Builder
	writeCompact(&b, s)
	return b.String()
}

func writeCompact(b *strings.Builder, s Stream) {
	for i := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		n := &s[i]
		if n.Kind != KindGroup {
			b.WriteString(n.Text)
			continue
		}
		open, closing := n.Delim.Open(), n.Delim.Close()
		if n.Delim == Invisible {
			open, closing = "⟦", "⟧"
		}
		b.WriteString(open)
		if len(n.Children) > 0 {
			b.WriteByte(' ')
			writeCompact(b, n.Children)
			b.WriteByte(' ')
		}
		b.WriteString(closing)
	}
}

// Dump renders an indented debug view, one node per line.
func Dump(s Stream) string {
	var b strings.Builder
	dump(&b, s, 0)
	return b.String()
}

func dump(b *strings.Builder, s Stream, depth int) {
	indent := strings.Repeat("  ", depth)
	for i := range s {
		n := &s[i]
		nl := ""
		if n.NewlineBefore {
			nl = " nl"
		}
		switch n.Kind {
		case KindIdent:
			fmt.Fprintf(b, "%sIdent %s [%d..%d]%s\n", indent, n.Text, n.Span.Start, n.Span.End, nl)
		case KindLiteral:
			fmt.Fprintf(b, "%sLiteral(%s) %s [%d..%d]%s\n", indent, n.Lit, n.Text, n.Span.Start, n.Span.End, nl)
		case KindPunct:
			spacing := "alone"
			if n.Spacing == Joint {
				spacing = "joint"
			}
			fmt.Fprintf(b, "%sPunct %s %s [%d..%d]%s\n", indent, n.Text, spacing, n.Span.Start, n.Span.End, nl)
		case KindGroup:
			delim := n.Delim.Open() + n.Delim.Close()
			if n.Delim == Invisible {
				delim = "invisible"
			}
			fmt.Fprintf(b, "%sGroup %s [%d..%d]%s\n", indent, delim, n.Span.Start, n.Span.End, nl)
			dump(b, n.Children, depth+1)
		}
	}
}
