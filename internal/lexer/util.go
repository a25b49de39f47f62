package lexer

import (
	"strconv"
	"unicode"
)

// ===== Классификаторы =====

// ASCII fast-path для идентификаторов; Unicode: через isIdentStartRune/Continue.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
func isIdentContinueRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isBin(b byte) bool { return b == '0' || b == '1' }
func isOct(b byte) bool { return b >= '0' && b <= '7' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

// isPunctByte: печатная ASCII пунктуация, кроме кавычек (их разбирают сканеры литералов).
func isPunctByte(b byte) bool {
	switch b {
	case '!', '#', '$', '%', '&', '*', '+', ',', '-', '.', '/', ':', ';',
		'<', '=', '>', '?', '@', '\\', '^', '|', '~':
		return true
	}
	return false
}

// Проверка для кейса ".5": текущая точка, дальше цифра, и это не вторая точка "..5".
func (lx *Lexer) isNumberAfterDot() bool {
	return lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) && lx.cursor.Prev() != '.'
}

func quoteRune(r rune) string {
	return strconv.QuoteRune(r)
}
