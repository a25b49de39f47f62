// Package fuzztests houses Go fuzz harnesses for the template pipeline
// (source -> lexer -> token tree -> seq!/derive! expansion). Its goal is to
// smoke test robustness and guard against panics or runaway repetition on
// arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, сборку дерева и раскрытие.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
