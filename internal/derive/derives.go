package derive

import (
	"slices"

	"seqgen/internal/diag"
	"seqgen/internal/source"
	"seqgen/internal/tokentree"
)

// Kind names one generator.
type Kind uint8

const (
	Builder Kind = iota + 1
	Debug
)

var kindNames = map[string]Kind{
	"Builder": Builder,
	"Debug":   Debug,
}

func (k Kind) String() string {
	switch k {
	case Builder:
		return "Builder"
	case Debug:
		return "Debug"
	default:
		return "Kind(?)"
	}
}

// ParseDerives reads the comma separated generator names of derive!(...).
// Repeated names are kept once, in first-seen order.
func ParseDerives(args tokentree.Stream, eoi source.Span) ([]Kind, error) {
	var kinds []Kind
	expectName := true
	for i := range args {
		n := &args[i]
		if expectName {
			if n.Kind != tokentree.KindIdent {
				return nil, diag.Errorf(diag.SynExpectMacroArgs, n.Span, "expected derive name, got %s", n.Kind)
			}
			k, ok := kindNames[n.Text]
			if !ok {
				return nil, diag.Errorf(diag.DrvUnknownDerive, n.Span, "unknown derive %q (known: Builder, Debug)", n.Text)
			}
			if !slices.Contains(kinds, k) {
				kinds = append(kinds, k)
			}
			expectName = false
			continue
		}
		if !n.IsPunct(',') {
			return nil, diag.Errorf(diag.SynExpectMacroArgs, n.Span, "expected ',' between derive names")
		}
		expectName = true
	}
	if len(kinds) == 0 {
		return nil, diag.Errorf(diag.SynExpectMacroArgs, eoi, "derive! needs at least one name")
	}
	return kinds, nil
}
