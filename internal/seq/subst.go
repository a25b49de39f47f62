package seq

import (
	"strconv"

	"seqgen/internal/tokentree"
)

// Substitute rewrites one copy of s for the given index:
//
//	A ~ var  ->  A<index>
//	var      ->  <index> as an unsuffixed integer literal
//
// Groups are rebuilt with substituted children. The splice is tried before the
// bare replacement, and consumed tokens are never matched again.
func Substitute(varName string, index uint64, s tokentree.Stream) tokentree.Stream {
	suffix := strconv.FormatUint(index, 10)
	return tokentree.Map(s, func(s tokentree.Stream, i int) (tokentree.Stream, int, bool) {
		head := &s[i]
		if head.Kind == tokentree.KindIdent && i+2 < len(s) &&
			s[i+1].IsPunct('~') && s[i+2].IsIdent(varName) {
			id := tokentree.NewIdent(head.Text+suffix, head.Span.Cover(s[i+2].Span))
			id.NewlineBefore = head.NewlineBefore
			return tokentree.Stream{id}, 3, true
		}
		if head.IsIdent(varName) {
			lit := tokentree.NewIntLiteral(index, head.Span)
			lit.NewlineBefore = head.NewlineBefore
			return tokentree.Stream{lit}, 1, true
		}
		return nil, 0, false
	})
}
