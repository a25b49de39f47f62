// Package derive generates companion declarations for Go struct types.
//
// A template writes
//
//	derive!(Builder, Debug)
//	type Config[T any] struct { ... }
//
// and the struct is kept while the generated declarations are appended after
// it. Builder produces a step-wise constructor with a validating Build method.
// Debug produces a String method with per-field verbs. The generated code
// only depends on package fmt.
package derive
