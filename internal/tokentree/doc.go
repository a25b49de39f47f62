// Package tokentree models template text as an uninterpreted tree of tokens.
//
// A Stream is an ordered list of sibling nodes. A node is an identifier, a
// literal, a single punctuation character or a delimited group owning its
// children. Trees are values: every rewrite (Map) allocates fresh child slices,
// so no two groups ever share a backing array.
//
// Invisible groups never come from source text. The seq! expander produces
// them for repeated regions and the printer renders them without delimiters.
//
// Nodes remember whether a line break preceded them in the source. The flag
// only feeds the printer; matching ignores it.
package tokentree
