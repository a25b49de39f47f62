package tokentree

import (
	"seqgen/internal/diag"
	"seqgen/internal/lexer"
	"seqgen/internal/source"
	"seqgen/internal/token"
)

type frame struct {
	open     token.Token
	children Stream
}

// Build turns flat lexer tokens into a Stream, matching (), {} and [].
// Unexpected closers are reported and skipped; unclosed openers are reported
// and closed at the end of input. The boolean is false when anything was reported.
// Invalid tokens are dropped since the lexer already reported them.
func Build(toks []token.Token, r diag.Reporter) (Stream, bool) {
	ok := true
	stack := []frame{{}}

	for i := range toks {
		tok := toks[i]
		top := &stack[len(stack)-1]

		switch {
		case tok.Kind == token.Invalid || tok.Kind == token.EOF:
			continue

		case tok.Kind.IsOpen():
			stack = append(stack, frame{open: tok})

		case tok.Kind.IsClose():
			if len(stack) == 1 || top.open.Kind.Closer() != tok.Kind {
				ok = false
				b := diag.Report(r, diag.SynUnexpectedCloser, tok.Span, "unexpected '"+tok.Text+"'")
				if len(stack) > 1 {
					b.WithNote(top.open.Span, "unclosed '"+top.open.Text+"' opened here")
				}
				b.Emit()
				continue
			}
			g := NewGroup(delimiterOf(top.open.Kind), top.children, top.open.Span.Cover(tok.Span))
			g.NewlineBefore = top.open.NewlineBefore()
			g.CloseNewline = tok.NewlineBefore()
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.children = append(parent.children, g)

		default:
			n := leaf(tok)
			if n.Kind == KindPunct && i+1 < len(toks) {
				next := toks[i+1]
				if next.Kind == token.Punct && next.Adjacent() {
					n.Spacing = Joint
				}
			}
			top.children = append(top.children, n)
		}
	}

	for len(stack) > 1 {
		ok = false
		top := stack[len(stack)-1]
		diag.Report(r, diag.SynUnclosedDelimiter, top.open.Span, "unclosed '"+top.open.Text+"'").Emit()
		g := NewGroup(delimiterOf(top.open.Kind), top.children, top.open.Span)
		g.NewlineBefore = top.open.NewlineBefore()
		stack = stack[:len(stack)-1]
		parent := &stack[len(stack)-1]
		parent.children = append(parent.children, g)
	}

	return stack[0].children, ok
}

func leaf(tok token.Token) Node {
	var n Node
	switch {
	case tok.Kind == token.Ident:
		n = NewIdent(tok.Text, tok.Span)
	case tok.IsLiteral():
		n = NewLiteral(tok.Kind, tok.Text, tok.Span)
	default:
		n = NewPunct(tok.Text[0], Alone, tok.Span)
	}
	n.NewlineBefore = tok.NewlineBefore()
	return n
}

// Parse lexes file and builds its token tree.
// The boolean is false when the lexer or the builder reported an error.
func Parse(file *source.File, r diag.Reporter) (Stream, bool) {
	lexOK := true
	lr := diag.ReporterFunc(func(d diag.Diagnostic) {
		if d.Severity == diag.SevError {
			lexOK = false
		}
		if r != nil {
			r.Report(d)
		}
	})
	toks := lexer.New(file, lexer.Options{Reporter: lr}).All()
	stream, ok := Build(toks, r)
	return stream, ok && lexOK
}
