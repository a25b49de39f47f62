package token

import (
	"strings"

	"seqgen/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, rune, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, ImagLit, CharLit, StringLit, RawStringLit:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is a punctuation character or a delimiter.
func (t Token) IsPunct() bool {
	return t.Kind == Punct || t.Kind.IsOpen() || t.Kind.IsClose()
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Is reports whether the token is the punctuation character ch.
func (t Token) Is(ch byte) bool {
	return t.IsPunct() && len(t.Text) == 1 && t.Text[0] == ch
}

// NewlineBefore reports whether a line break separates the token from the previous one.
func (t Token) NewlineBefore() bool {
	for _, tv := range t.Leading {
		switch tv.Kind {
		case TriviaNewline:
			return true
		case TriviaBlockComment:
			if strings.Contains(tv.Text, "\n") {
				return true
			}
		}
	}
	return false
}

// Adjacent reports whether the token directly follows the previous one
// without any whitespace or comments.
func (t Token) Adjacent() bool {
	return len(t.Leading) == 0
}
