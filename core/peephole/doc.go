// Package peephole implements a peephole simplification rule engine for
// 256-bit EVM-style expression trees: pattern matching against a fixed
// catalog of algebraic identities over arithmetic, bitwise, and comparison
// opcodes, folding and rewriting a single expression node at a time.
//
// The engine is purely functional. ExprNode, Pattern, and Binding values
// are immutable once constructed; a RuleCatalog, once built, may be shared
// by reference across goroutines and used to rewrite disjoint expressions
// concurrently with no synchronization.
package peephole
