package lexer

import (
	"unicode/utf8"

	"seqgen/internal/diag"
	"seqgen/internal/token"

	"golang.org/x/text/unicode/norm"
)

// scanIdent сканирует [Ident]. Ключевые слова остаются идентификаторами.
// Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.cursor.Rune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if !isIdentStartRune(r) {
		// не буква: символ вне языка
		lx.cursor.BumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnknownChar, sp, "unknown character "+quoteRune(r))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	ascii := true
	for {
		r2, sz2 := lx.cursor.Rune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		if r2 >= utf8.RuneSelf {
			ascii = false
		}
		lx.cursor.BumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	// склейка field~N даёт идентификаторы, которые должны совпадать побайтно
	if !ascii && !norm.NFC.IsNormalString(text) {
		lx.report(diag.LexIdentNotNFC, sp, "identifier "+text+" is not in NFC; spliced names may not match")
	}

	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
