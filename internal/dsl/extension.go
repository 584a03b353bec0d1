// Package dsl hosts the embedded-block extension registry. An extension turns
// the raw text of an embedded block into an AST subtree and may contribute
// opaque types and builtin functions to every unit it is used in.
package dsl

import (
	"eidos/internal/ast"
)

// Extension materializes embedded blocks of one notation.
type Extension interface {
	Name() string
	Description() string
	// Process inserts the subtree for content into prog and returns its root.
	Process(content string, prog *ast.Program) (ast.NodeID, error)
	// Types lists opaque type names the extension contributes.
	Types() []string
	// Builtins lists functions the extension contributes.
	Builtins() []Builtin
}

// Builtin is a function signature contributed by an extension.
type Builtin struct {
	Name   string
	Params []ast.TypeExpr
	Result *ast.TypeExpr
}
