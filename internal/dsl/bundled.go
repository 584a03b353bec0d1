package dsl

import (
	"errors"
	"strings"

	"eidos/internal/ast"
	"eidos/internal/source"
)

var errEmptyQuery = errors.New("empty query")

// Bundled returns fresh instances of the extensions shipped with the compiler.
func Bundled() []Extension {
	return []Extension{textExtension{}, sqlExtension{}}
}

// textExtension turns the block into a string literal.
type textExtension struct{}

func (textExtension) Name() string        { return "text" }
func (textExtension) Description() string { return "raw text block as a string literal" }
func (textExtension) Types() []string     { return nil }
func (textExtension) Builtins() []Builtin { return nil }

func (textExtension) Process(content string, prog *ast.Program) (ast.NodeID, error) {
	return prog.Insert(source.Location{File: prog.File}, &ast.Literal{Lit: ast.LitString, Str: content}), nil
}

// sqlExtension wraps the block into a call of the query builtin.
type sqlExtension struct{}

func (sqlExtension) Name() string        { return "sql" }
func (sqlExtension) Description() string { return "SQL query block producing a Query value" }
func (sqlExtension) Types() []string     { return []string{"Query"} }

func (sqlExtension) Builtins() []Builtin {
	query := ast.Named("Query")
	return []Builtin{
		{Name: "query", Params: []ast.TypeExpr{*ast.Named("string")}, Result: query},
		{Name: "row_count", Params: []ast.TypeExpr{*query}, Result: ast.Named("int")},
	}
}

func (sqlExtension) Process(content string, prog *ast.Program) (ast.NodeID, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return ast.NoNodeID, errEmptyQuery
	}
	loc := source.Location{File: prog.File}
	callee := prog.Insert(loc, &ast.Ident{Name: "query"})
	arg := prog.Insert(loc, &ast.Literal{Lit: ast.LitString, Str: text})
	return prog.Insert(loc, &ast.Call{Callee: callee, Args: []ast.NodeID{arg}}), nil
}
