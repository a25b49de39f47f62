package tokentree

import (
	"fmt"
	"strconv"

	"seqgen/internal/source"
	"seqgen/internal/token"
)

// Kind discriminates the node variants.
type Kind uint8

const (
	KindIdent Kind = iota
	KindLiteral
	KindPunct
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "Ident"
	case KindLiteral:
		return "Literal"
	case KindPunct:
		return "Punct"
	case KindGroup:
		return "Group"
	}
	return "Kind(?)"
}

// Delimiter is the bracket pair of a group.
type Delimiter uint8

const (
	Parenthesis Delimiter = iota
	Brace
	Bracket
	Invisible
)

// Open returns the opening character, or "" for Invisible.
func (d Delimiter) Open() string {
	switch d {
	case Parenthesis:
		return "("
	case Brace:
		return "{"
	case Bracket:
		return "["
	}
	return ""
}

// Close returns the closing character, or "" for Invisible.
func (d Delimiter) Close() string {
	switch d {
	case Parenthesis:
		return ")"
	case Brace:
		return "}"
	case Bracket:
		return "]"
	}
	return ""
}

func delimiterOf(k token.Kind) Delimiter {
	switch k {
	case token.LBrace:
		return Brace
	case token.LBracket:
		return Bracket
	default:
		return Parenthesis
	}
}

// Spacing tells whether a punct is immediately followed by another punct.
type Spacing uint8

const (
	Alone Spacing = iota
	Joint
)

// Node is one element of a token tree.
type Node struct {
	Kind Kind
	// Text holds the identifier, the literal as written, or the punct character.
	Text    string
	Lit     token.Kind // literal kind, only for KindLiteral
	Spacing Spacing    // only for KindPunct
	Delim   Delimiter  // only for KindGroup
	// Children belong to this group alone.
	Children Stream
	Span     source.Span

	// NewlineBefore is set when a line break preceded the node in the source.
	NewlineBefore bool
	// CloseNewline is set when a line break preceded the closing delimiter.
	CloseNewline bool
}

// Stream is an ordered sequence of sibling nodes.
type Stream []Node

func NewIdent(text string, sp source.Span) Node {
	return Node{Kind: KindIdent, Text: text, Span: sp}
}

func NewLiteral(kind token.Kind, text string, sp source.Span) Node {
	return Node{Kind: KindLiteral, Lit: kind, Text: text, Span: sp}
}

// NewIntLiteral renders v as an unsuffixed decimal integer literal.
func NewIntLiteral(v uint64, sp source.Span) Node {
	return NewLiteral(token.IntLit, strconv.FormatUint(v, 10), sp)
}

func NewPunct(ch byte, spacing Spacing, sp source.Span) Node {
	return Node{Kind: KindPunct, Text: string([]byte{ch}), Spacing: spacing, Span: sp}
}

func NewGroup(delim Delimiter, children Stream, sp source.Span) Node {
	return Node{Kind: KindGroup, Delim: delim, Children: children, Span: sp}
}

// IsIdent reports whether n is the identifier name. Comparison is exact.
func (n *Node) IsIdent(name string) bool {
	return n.Kind == KindIdent && n.Text == name
}

// IsPunct reports whether n is the punctuation character ch.
func (n *Node) IsPunct(ch byte) bool {
	return n.Kind == KindPunct && len(n.Text) == 1 && n.Text[0] == ch
}

// IsGroup reports whether n is a group with the given delimiter.
func (n *Node) IsGroup(d Delimiter) bool {
	return n.Kind == KindGroup && n.Delim == d
}

// IsIntLiteral reports whether n is an integer literal.
func (n *Node) IsIntLiteral() bool {
	return n.Kind == KindLiteral && n.Lit == token.IntLit
}

// Uint parses an integer literal, honoring 0x/0o/0b prefixes and '_' separators.
// The error wraps strconv.ErrRange when the value does not fit in 64 bits.
func (n *Node) Uint() (uint64, error) {
	if !n.IsIntLiteral() {
		return 0, fmt.Errorf("%s %q is not an integer literal", n.Kind, n.Text)
	}
	v, err := strconv.ParseUint(n.Text, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("integer literal %s: %w", n.Text, err)
	}
	return v, nil
}
