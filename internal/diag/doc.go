// Package diag defines the diagnostic model shared by every seqgen phase.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, the token tree builder, the seq!/derive! expanders and the
//     file driver.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// Package diag does not perform formatting or IO beyond the single-line short
// form in golden.go. Rendering lives in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//     Ranges: LEX1xxx lexical, SYN2xxx syntax, RNG3xxx integer ranges,
//     DRV4xxx derive!, GEN5xxx generation, IO6xxx file system.
//   - Message – short and actionable.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans with extra context.
//
// # Emitting diagnostics
//
// Phases take a diag.Reporter. Report returns a Builder which can carry notes
// before Emit; the severity comes from the code, so only the codes listed in
// severity.go are warnings. Failures returned as *Error go through ReportErr
// and are always errors. BagReporter collects into a
// Bag, which supports sorting, deduplication and merging. A Bag is not safe for
// concurrent use; the file driver gives every worker its own.
package diag
