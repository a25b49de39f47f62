// Package format renders token trees back to source text.
//
// Назначение: печать результата раскрытия seq!/derive! и склейка его с
// исходным текстом шаблона через Writer.
// Не делает: go/format (это делает driver), IO.
// Line breaks follow the NewlineBefore flags of the tree, so Go's automatic
// semicolon insertion sees the same line structure as the template.
// Comments inside an invocation body are not reproduced.
package format
