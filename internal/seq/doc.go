// Package seq implements the seq! range expansion engine.
//
// An invocation reads
//
//	N in 0..4 { body }
//
// and produces the body once per index, replacing the loop variable with an
// unsuffixed integer literal and splicing "name~N" into a single identifier
// "name<index>". When the body contains repetition regions "#( ... )*" only
// those regions are repeated and the rest of the body is emitted once.
//
// The engine is pure: it works on tokentree streams and never touches files.
// Errors carry a diag.Code and the span of the offending token.
package seq
