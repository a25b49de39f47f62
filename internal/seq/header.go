package seq

import (
	"errors"
	"iter"
	"math"
	"strconv"

	"seqgen/internal/diag"
	"seqgen/internal/source"
	"seqgen/internal/tokentree"
)

// Invocation is a parsed seq! header with its unexpanded body.
type Invocation struct {
	Var       string
	VarSpan   source.Span
	Start     uint64
	End       uint64
	Inclusive bool
	Body      tokentree.Stream
	Span      source.Span
}

// ParseInvocation parses "<ident> in <start>..[=]<end> { body }".
// eoi locates errors that happen at the end of input (usually the closing
// delimiter of the invocation).
func ParseInvocation(input tokentree.Stream, eoi source.Span) (Invocation, error) {
	p := headerParser{in: input, eoi: eoi}
	var inv Invocation

	v, ok := p.peek()
	if !ok || v.Kind != tokentree.KindIdent {
		return inv, p.fail(diag.SynExpectLoopVar, "expected loop variable")
	}
	inv.Var, inv.VarSpan = v.Text, v.Span
	p.pos++

	if in, ok := p.peek(); !ok || !in.IsIdent("in") {
		return inv, p.fail(diag.SynExpectIn, "expected 'in'")
	}
	p.pos++

	start, err := p.uint()
	if err != nil {
		return inv, err
	}
	inv.Start = start

	inclusive, err := p.rangeOp()
	if err != nil {
		return inv, err
	}
	inv.Inclusive = inclusive

	end, err := p.uint()
	if err != nil {
		return inv, err
	}
	inv.End = end

	body, ok := p.peek()
	if !ok || !body.IsGroup(tokentree.Brace) {
		return inv, p.fail(diag.SynExpectBody, "expected '{'")
	}
	inv.Body = body.Children
	p.pos++

	if _, ok := p.peek(); ok {
		return inv, p.fail(diag.SynTrailingTokens, "unexpected token after body")
	}

	inv.Span = input[0].Span.Cover(body.Span)
	return inv, nil
}

type headerParser struct {
	in  tokentree.Stream
	pos int
	eoi source.Span
}

func (p *headerParser) peek() (*tokentree.Node, bool) {
	if p.pos >= len(p.in) {
		return nil, false
	}
	return &p.in[p.pos], true
}

func (p *headerParser) fail(code diag.Code, msg string) *Error {
	sp := p.eoi
	if n, ok := p.peek(); ok {
		sp = n.Span
	}
	return errorf(code, sp, "%s", msg)
}

func (p *headerParser) uint() (uint64, error) {
	n, ok := p.peek()
	if !ok || !n.IsIntLiteral() {
		return 0, p.fail(diag.SynExpectUintLit, "expected unsigned integer literal")
	}
	v, err := n.Uint()
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errorf(diag.RngLitOutOfRange, n.Span, "integer literal %s does not fit in 64 bits", n.Text)
		}
		return 0, errorf(diag.SynExpectUintLit, n.Span, "malformed integer literal %s", n.Text)
	}
	p.pos++
	return v, nil
}

// rangeOp accepts ".." or "..=", written without spaces.
func (p *headerParser) rangeOp() (inclusive bool, err error) {
	first, ok := p.peek()
	if !ok || !first.IsPunct('.') || first.Spacing != tokentree.Joint ||
		p.pos+1 >= len(p.in) || !p.in[p.pos+1].IsPunct('.') {
		return false, p.fail(diag.SynExpectRangeOp, "expected '..' or '..='")
	}
	second := &p.in[p.pos+1]
	p.pos += 2
	if second.Spacing == tokentree.Joint {
		if eq, ok := p.peek(); ok && eq.IsPunct('=') {
			p.pos++
			return true, nil
		}
	}
	return false, nil
}

// Empty reports whether the range yields no index.
func (inv *Invocation) Empty() bool {
	return inv.Start > inv.End || (!inv.Inclusive && inv.Start == inv.End)
}

// Count returns the number of indices. full is true only for the inclusive
// range 0..=MaxUint64 whose size does not fit in uint64.
func (inv *Invocation) Count() (n uint64, full bool) {
	if inv.Empty() {
		return 0, false
	}
	n = inv.End - inv.Start
	if !inv.Inclusive {
		return n, false
	}
	if n == math.MaxUint64 {
		return 0, true
	}
	return n + 1, false
}

// Indices yields every index of the range in ascending order.
// The counter never overflows, even for ..=MaxUint64.
func (inv *Invocation) Indices() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		if inv.Empty() {
			return
		}
		last := inv.End
		if !inv.Inclusive {
			last--
		}
		for i := inv.Start; ; i++ {
			if !yield(i) || i == last {
				return
			}
		}
	}
}
