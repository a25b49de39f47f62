// Package testkit holds checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"seqgen/internal/source"
	"seqgen/internal/tokentree"
)

// CheckTreeInvariants runs the span invariants of a token tree built from sf:
// 1) every span points into sf and lies within its content
// 2) siblings are ordered and do not overlap
// 3) group children lie strictly between the group's delimiters
// 4) parsed trees carry no Invisible groups and punct text matches the source
func CheckTreeInvariants(s tokentree.Stream, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkStream(s, sf, source.Span{File: sf.ID, Start: 0, End: lenContent}, 0)
}

func checkStream(s tokentree.Stream, sf *source.File, bounds source.Span, inset uint32) error {
	prevEnd := bounds.Start + inset
	for i := range s {
		n := &s[i]
		sp := n.Span
		if sp.File != sf.ID {
			return fmt.Errorf("node %d (%s) span file mismatch: got=%d want=%d", i, n.Kind, sp.File, sf.ID)
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("node %d (%s) has empty span %v", i, n.Kind, sp)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("node %d (%s) span %v overlaps the previous node ending at %d", i, n.Kind, sp, prevEnd)
		}
		if sp.End > bounds.End-inset {
			return fmt.Errorf("node %d (%s) span %v is outside %v", i, n.Kind, sp, bounds)
		}
		prevEnd = sp.End

		switch n.Kind {
		case tokentree.KindGroup:
			if n.Delim == tokentree.Invisible {
				return fmt.Errorf("parsed tree has an Invisible group at %v", sp)
			}
			if sp.End-sp.Start < 2 {
				return fmt.Errorf("group span %v cannot hold both delimiters", sp)
			}
			if err := checkStream(n.Children, sf, sp, 1); err != nil {
				return err
			}
		case tokentree.KindPunct:
			if got := string(sf.Content[sp.Start:sp.End]); got != n.Text {
				return fmt.Errorf("punct %q at %v reads %q in the source", n.Text, sp, got)
			}
		}
	}
	return nil
}
