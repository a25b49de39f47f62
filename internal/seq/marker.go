package seq

import "seqgen/internal/tokentree"

// isMarker matches the run '#' (group) '*' starting at s[i].
func isMarker(s tokentree.Stream, i int) bool {
	return i+2 < len(s) &&
		s[i].IsPunct('#') &&
		s[i+1].IsGroup(tokentree.Parenthesis) &&
		s[i+2].IsPunct('*')
}

// ContainsMarker reports whether a repetition region "#( ... )*" appears
// anywhere in s, at any depth.
func ContainsMarker(s tokentree.Stream) bool {
	return tokentree.Find(s, isMarker)
}
