package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexIdentNotNFC              Code = 1006

	// Синтаксические
	SynInfo                Code = 2000
	SynUnclosedDelimiter   Code = 2001
	SynUnexpectedCloser    Code = 2002
	SynExpectLoopVar       Code = 2101
	SynExpectIn            Code = 2102
	SynExpectUintLit       Code = 2103
	SynExpectRangeOp       Code = 2104
	SynExpectBody          Code = 2105
	SynTrailingTokens      Code = 2106
	SynExpectMacroArgs     Code = 2107
	SynExpectTypeDecl      Code = 2108
	SynExpectStructField   Code = 2109
	SynUnexpectedTokenKind Code = 2110

	// Диапазоны
	RngInfo           Code = 3000
	RngLitOutOfRange  Code = 3001
	RngTooManyRepeats Code = 3002

	// derive!
	DrvInfo          Code = 4000
	DrvUnknownDerive Code = 4001
	DrvEmbeddedField Code = 4002
	DrvBadBuilderTag Code = 4003
	DrvMissingFmt    Code = 4004
	DrvEachNotSlice  Code = 4005
	DrvNameConflict  Code = 4006
	DrvBadDebugTag   Code = 4007
	DrvNotTopLevel   Code = 4008

	// Генерация
	GenInfo        Code = 5000
	GenFormatFail  Code = 5001
	GenCacheFailed Code = 5002

	IOInfo          Code = 6000
	IOLoadFileError Code = 6001
	IOWriteError    Code = 6002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number",
		LexUnterminatedChar:         "Unterminated rune literal",
		LexIdentNotNFC:              "Identifier is not in Unicode normal form C",
		SynInfo:                     "Syntax information",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynUnexpectedCloser:         "Unexpected closing delimiter",
		SynExpectLoopVar:            "Expected loop variable",
		SynExpectIn:                 "Expected 'in'",
		SynExpectUintLit:            "Expected unsigned integer literal",
		SynExpectRangeOp:            "Expected '..' or '..='",
		SynExpectBody:               "Expected '{'",
		SynTrailingTokens:           "Unexpected token after body",
		SynExpectMacroArgs:          "Expected macro arguments",
		SynExpectTypeDecl:           "Expected struct type declaration",
		SynExpectStructField:        "Expected struct field",
		SynUnexpectedTokenKind:      "Unexpected token",
		RngInfo:                     "Range information",
		RngLitOutOfRange:            "Integer literal out of range",
		RngTooManyRepeats:           "Range too large",
		DrvInfo:                     "Derive information",
		DrvUnknownDerive:            "Unknown derive",
		DrvEmbeddedField:            "Embedded fields are not supported",
		DrvBadBuilderTag:            "Expected builder:\"each=...\"",
		DrvMissingFmt:               "Generated code uses package fmt",
		DrvEachNotSlice:             "each= requires a slice field",
		DrvNameConflict:             "Generated name conflict",
		DrvBadDebugTag:              "Expected debug:\"%verb\"",
		DrvNotTopLevel:              "derive! must precede a top-level type",
		GenInfo:                     "Generation information",
		GenFormatFail:               "Generated output could not be formatted",
		GenCacheFailed:              "Output cache unavailable",
		IOInfo:                      "I/O information",
		IOLoadFileError:             "I/O load file error",
		IOWriteError:                "I/O write file error",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RNG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("DRV%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
