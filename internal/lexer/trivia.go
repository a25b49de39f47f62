package lexer

import (
	"seqgen/internal/diag"
	"seqgen/internal/token"
)

func isBlank(b byte) bool    { return b == ' ' || b == '\t' || b == '\r' }
func isNewline(b byte) bool  { return b == '\n' }
func notNewline(b byte) bool { return b != '\n' }

// collectLeadingTrivia собирает пробелы, переводы строк и комментарии перед
// значимым токеном. Подряд идущие пробелы (и подряд идущие '\n') дают одну
// trivia. Блочные комментарии не вкладываются, как в Go; незакрытый
// репортится и тянется до EOF.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		var kind token.TriviaKind

		switch b := lx.cursor.Peek(); {
		case isBlank(b):
			lx.cursor.BumpWhile(isBlank)
			kind = token.TriviaSpace
		case b == '\n':
			lx.cursor.BumpWhile(isNewline)
			kind = token.TriviaNewline
		case lx.cursor.EatString("//"):
			lx.cursor.BumpWhile(notNewline)
			kind = token.TriviaLineComment
		case lx.cursor.EatString("/*"):
			kind = token.TriviaBlockComment
			for !lx.cursor.EatString("*/") {
				if lx.cursor.EOF() {
					lx.report(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
					break
				}
				lx.cursor.Bump()
			}
		default:
			// одиночный '/' и всё остальное сканируется как токен
			return
		}

		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
	}
}
