// Package sema runs the two semantic passes over an ast.Program.
//
// Analyze resolves names: it builds the scope tree, binds every identifier to
// a symbol and rejects duplicates, assignments to immutable bindings and
// returns outside functions. Check infers a type for every node in strict
// post-order and rejects operator, call and annotation mismatches.
//
// Both passes work on a clone of their input, expand embedded blocks first
// and stop at the first error. Errors are *diag.Error values.
package sema
