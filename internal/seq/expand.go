package seq

import (
	"seqgen/internal/diag"
	"seqgen/internal/source"
	"seqgen/internal/tokentree"
)

// Options tune expansion.
type Options struct {
	// MaxIterations rejects ranges with more indices. Zero means unlimited.
	MaxIterations uint64
}

// Mode tells how the body is repeated.
type Mode uint8

const (
	// WholeBody repeats the entire body once per index.
	WholeBody Mode = iota
	// MarkedRegions repeats only "#( ... )*" regions.
	MarkedRegions
)

func (m Mode) String() string {
	if m == MarkedRegions {
		return "marked-regions"
	}
	return "whole-body"
}

// ModeOf selects the expansion mode for a body.
func ModeOf(body tokentree.Stream) Mode {
	if ContainsMarker(body) {
		return MarkedRegions
	}
	return WholeBody
}

// Expand produces the output stream for inv.
func Expand(inv Invocation, opts Options) (tokentree.Stream, error) {
	if opts.MaxIterations > 0 {
		if n, full := inv.Count(); full || n > opts.MaxIterations {
			return nil, errorf(diag.RngTooManyRepeats, inv.Span,
				"range too large: more than %d repetitions", opts.MaxIterations)
		}
	}

	if ModeOf(inv.Body) == WholeBody {
		var out tokentree.Stream
		for i := range inv.Indices() {
			out = append(out, Substitute(inv.Var, i, inv.Body)...)
		}
		if out == nil {
			out = tokentree.Stream{}
		}
		return out, nil
	}

	return expandMarkers(&inv, inv.Body), nil
}

// expandMarkers replaces every marker in s with an Invisible group of
// repetitions. Markers inside a marker's interior are expanded first, so
// each region repeats over the range on its own.
func expandMarkers(inv *Invocation, s tokentree.Stream) tokentree.Stream {
	return tokentree.Map(s, func(s tokentree.Stream, i int) (tokentree.Stream, int, bool) {
		if !isMarker(s, i) {
			return nil, 0, false
		}
		inner := s[i+1].Children
		if ContainsMarker(inner) {
			inner = expandMarkers(inv, inner)
		}
		var repeated tokentree.Stream
		for idx := range inv.Indices() {
			repeated = append(repeated, Substitute(inv.Var, idx, inner)...)
		}
		g := tokentree.NewGroup(tokentree.Invisible, repeated, s[i].Span.Cover(s[i+2].Span))
		g.NewlineBefore = s[i].NewlineBefore
		return tokentree.Stream{g}, 3, true
	})
}

// ExpandStream parses the header in input and expands it.
func ExpandStream(input tokentree.Stream, eoi source.Span, opts Options) (tokentree.Stream, error) {
	inv, err := ParseInvocation(input, eoi)
	if err != nil {
		return nil, err
	}
	return Expand(inv, opts)
}
