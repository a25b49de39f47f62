package tokentree

// Find reports whether pred holds at some position of s or of any nested group.
// Siblings are tested before descending, and the search stops at the first hit.
func Find(s Stream, pred func(s Stream, i int) bool) bool {
	for i := range s {
		if pred(s, i) {
			return true
		}
	}
	for i := range s {
		if s[i].Kind == KindGroup && Find(s[i].Children, pred) {
			return true
		}
	}
	return false
}

// Rewrite inspects the window starting at s[i]. When ok is true the first
// consumed nodes are replaced by repl; consumed must be positive.
type Rewrite func(s Stream, i int) (repl Stream, consumed int, ok bool)

// Map applies fn left to right over s and every nested group. Replaced windows
// never overlap and their replacements are not revisited. Groups that fn does
// not consume are rebuilt with mapped children; leaves are copied.
func Map(s Stream, fn Rewrite) Stream {
	out := make(Stream, 0, len(s))
	for i := 0; i < len(s); {
		if repl, n, ok := fn(s, i); ok && n > 0 {
			out = append(out, repl...)
			i += n
			continue
		}
		node := s[i]
		if node.Kind == KindGroup {
			node.Children = Map(node.Children, fn)
		}
		out = append(out, node)
		i++
	}
	return out
}

// Clone returns a deep copy of s.
func Clone(s Stream) Stream {
	return Map(s, func(Stream, int) (Stream, int, bool) { return nil, 0, false })
}
