package lexer

import (
	"seqgen/internal/diag"
	"seqgen/internal/token"
)

// scanPunct выдаёт один символ пунктуации. Многосимвольные операторы
// ("..=", ":=", "<-") остаются цепочками Punct без trivia между ними.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)

	switch ch {
	case '(':
		return token.Token{Kind: token.LParen, Span: sp, Text: "("}
	case ')':
		return token.Token{Kind: token.RParen, Span: sp, Text: ")"}
	case '{':
		return token.Token{Kind: token.LBrace, Span: sp, Text: "{"}
	case '}':
		return token.Token{Kind: token.RBrace, Span: sp, Text: "}"}
	case '[':
		return token.Token{Kind: token.LBracket, Span: sp, Text: "["}
	case ']':
		return token.Token{Kind: token.RBracket, Span: sp, Text: "]"}
	}

	if isPunctByte(ch) {
		return token.Token{Kind: token.Punct, Span: sp, Text: lx.text(sp)}
	}

	lx.report(diag.LexUnknownChar, sp, "unknown character "+quoteRune(rune(ch)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
