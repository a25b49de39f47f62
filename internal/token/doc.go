// Package token defines lexical token kinds and trivia for seqgen templates.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Every punctuation character is its own Punct token; multi-character
//     operators such as ":=" or "..=" are runs of Punct tokens. Whether two
//     punctuation tokens are adjacent is recovered from empty Leading trivia.
//   - Keywords are identifiers. LookupKeyword only answers whether a name is
//     reserved in Go; the lexer never produces keyword kinds.
package token
