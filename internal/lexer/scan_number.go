package lexer

import (
	"seqgen/internal/diag"
	"seqgen/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 017, 1.0, 1e-3, 0x1p-2, суффикс 'i'.
// Точка, за которой идёт ещё одна точка, не входит в число: "0..3" это 0 . . 3.
// Неверные формы: репорт LexBadNumber, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	// ведущая точка: значит формат ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits(isDec)
		return lx.finishNumber(start, kind, true)
	}

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		var digit func(byte) bool
		hex := false
		switch lx.cursor.Peek() {
		case 'b', 'B':
			digit = isBin
		case 'o', 'O':
			digit = isOct
		case 'x', 'X':
			digit, hex = isHex, true
		}
		if digit != nil {
			lx.cursor.Bump()
			if lx.eatDigits(digit) == 0 && !(hex && lx.cursor.Peek() == '.') {
				sp := lx.cursor.SpanFrom(start)
				lx.report(diag.LexBadNumber, sp, "expected digits after base prefix")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
			if hex {
				if lx.isFractionDot() {
					lx.cursor.Bump()
					lx.eatDigits(isHex)
					kind = token.FloatLit
				}
				if b := lx.cursor.Peek(); b == 'p' || b == 'P' {
					kind = token.FloatLit
					if !lx.eatExponent() {
						return lx.badExponent(start)
					}
				}
			}
			return lx.finishNumber(start, kind, false)
		}
	}

	// десятичная целая часть (или остаток после ведущего 0)
	lx.eatDigits(isDec)

	if lx.isFractionDot() {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits(isDec)
	}
	return lx.finishNumber(start, kind, true)
}

func (lx *Lexer) finishNumber(start Mark, kind token.Kind, decimal bool) token.Token {
	if decimal {
		if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
			kind = token.FloatLit
			if !lx.eatExponent() {
				return lx.badExponent(start)
			}
		}
	}
	if lx.cursor.Peek() == 'i' {
		lx.cursor.Bump()
		kind = token.ImagLit
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// eatExponent съедает e/E/p/P, опциональный знак и цифры.
func (lx *Lexer) eatExponent() bool {
	lx.cursor.Bump()
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	return lx.eatDigits(isDec) > 0
}

func (lx *Lexer) badExponent(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexBadNumber, sp, "expected digit after exponent")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// eatDigits съедает цифры и '_' и возвращает число съеденных цифр.
func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			n++
		case b == '_':
		default:
			return n
		}
		lx.cursor.Bump()
	}
}

// isFractionDot: текущая '.' начинает дробную часть, а не '..'/'..='.
func (lx *Lexer) isFractionDot() bool {
	return lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.'
}
