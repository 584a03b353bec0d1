package sema

import (
	"testing"

	"eidos/internal/ast"
	"eidos/internal/testkit"
)

// struct Point { x: int, mut y: int }
// fn add(a: int, b: int) -> int { a + b }
// fn main() { let y = add(1, 2); while y < 10 { y = y + 1; } }
func invariantProgram() *ast.Program {
	prog, b := newProgram()
	b.Root(b.Struct("Point", []ast.NodeID{
		b.Field("x", ast.Named("int"), false),
		b.Field("y", ast.Named("int"), true),
	}))
	addProgram(b)
	let := b.Let("y", nil, b.Call(b.Ident("add"), b.Int(1), b.Int(2)))
	step := b.Assign(b.Ident("y"), b.Binary(ast.BinaryAdd, b.Ident("y"), b.Int(1)))
	loop := b.While(b.Binary(ast.BinaryLt, b.Ident("y"), b.Int(10)), b.Block(ast.NoNodeID, step))
	b.Root(b.Func("main", nil, nil, b.Block(ast.NoNodeID, let, loop)))
	return prog
}

func TestAnalyzeKeepsStructuralInvariants(t *testing.T) {
	prog := invariantProgram()
	if err := testkit.CheckTree(prog); err != nil {
		t.Fatalf("input: %v", err)
	}
	res := mustAnalyze(t, prog)
	if err := testkit.CheckTree(res.Program); err != nil {
		t.Fatalf("analyzed: %v", err)
	}
	if err := testkit.CheckBindings(res.Program, res.Table); err != nil {
		t.Fatalf("bindings: %v", err)
	}
}

func TestCheckAnnotatesEveryReachableNode(t *testing.T) {
	res := mustCheck(t, invariantProgram())
	if err := testkit.CheckTree(res.Program); err != nil {
		t.Fatalf("checked: %v", err)
	}
	if err := testkit.CheckAnnotated(res.Program); err != nil {
		t.Fatal(err)
	}
}
