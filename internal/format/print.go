package format

import (
	"seqgen/internal/token"
	"seqgen/internal/tokentree"
)

// Print renders s as source text.
func Print(s tokentree.Stream, opt Options) string {
	w := NewWriter(nil, opt)
	w.WriteStream(s)
	return w.String()
}

// WriteStream prints s at the current position. Continuation lines start with
// the indentation of the line the stream begins on.
func (w *Writer) WriteStream(s tokentree.Stream) {
	savedPrefix, savedDepth := w.prefix, w.depth
	w.prefix = w.lineIndent()
	w.depth = 0

	p := streamPrinter{w: w}
	p.stream(s, 0)

	w.prefix, w.depth = savedPrefix, savedDepth
}

type lastToken struct {
	kind  tokentree.Kind
	text  string
	joint bool
	open  bool // opening delimiter
	close bool // closing delimiter
}

type streamPrinter struct {
	w         *Writer
	started   bool
	pendingNL bool
	last      lastToken
}

func (p *streamPrinter) stream(s tokentree.Stream, depth int) {
	for i := range s {
		p.node(&s[i], depth)
	}
}

func (p *streamPrinter) node(n *tokentree.Node, depth int) {
	if n.IsGroup(tokentree.Invisible) {
		// разделители не печатаются, перевод строки переносится на первый токен
		if n.NewlineBefore {
			p.pendingNL = true
		}
		p.stream(n.Children, depth)
		return
	}

	p.separate(n, depth)

	if n.Kind != tokentree.KindGroup {
		p.w.WriteString(n.Text)
		p.last = lastToken{kind: n.Kind, text: n.Text, joint: n.Spacing == tokentree.Joint}
		return
	}

	p.w.WriteString(n.Delim.Open())
	p.last = lastToken{kind: tokentree.KindGroup, open: true}
	p.stream(n.Children, depth+1)

	if n.CloseNewline || p.pendingNL {
		p.pendingNL = false
		p.newline(depth)
	}
	p.w.WriteString(n.Delim.Close())
	p.last = lastToken{kind: tokentree.KindGroup, close: true}
}

func (p *streamPrinter) separate(n *tokentree.Node, depth int) {
	nl := n.NewlineBefore || p.pendingNL
	p.pendingNL = false
	if !p.started {
		p.started = true
		return
	}
	if nl {
		p.newline(depth)
		return
	}
	if p.needSpace(n) {
		p.w.Space()
	}
}

func (p *streamPrinter) newline(depth int) {
	p.w.Newline()
	p.w.SetIndent(depth)
}

func (p *streamPrinter) needSpace(n *tokentree.Node) bool {
	last := p.last
	switch {
	case last.open:
		return false
	case last.kind == tokentree.KindPunct && (last.joint || last.text == "."):
		return false
	case n.IsPunct(',') || n.IsPunct(';') || n.IsPunct('.'):
		return false
	case n.IsGroup(tokentree.Parenthesis) || n.IsGroup(tokentree.Bracket):
		// вызовы и индексы: f(x), a[i], f(x)(y); после ключевых слов пробел остаётся
		if last.kind == tokentree.KindIdent {
			return token.IsKeyword(last.text)
		}
		return !(last.kind == tokentree.KindLiteral || last.close)
	}
	return true
}
