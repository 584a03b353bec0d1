package sema

import (
	"maps"
	"strings"
	"testing"

	"eidos/internal/ast"
	"eidos/internal/diag"
	"eidos/internal/source"
	"eidos/internal/types"
)

func mustCheck(t *testing.T, prog *ast.Program) *CheckResult {
	t.Helper()
	res, err := Check(prog, Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	return res
}

func expectType(t *testing.T, err error, code diag.Code, fragments ...string) *diag.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected type error %s, got nil", code.ID())
	}
	de, ok := diag.As(err)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	if de.Kind != diag.KindType || de.Code != code {
		t.Fatalf("got %s %s, want type %s: %v", de.Kind, de.Code.ID(), code.ID(), err)
	}
	for _, f := range fragments {
		if !strings.Contains(de.Message, f) {
			t.Fatalf("message %q does not mention %q", de.Message, f)
		}
	}
	return de
}

func TestCheckLetAnnotatedAndInferredAgree(t *testing.T) {
	prog, b := newProgram()
	annotated := b.Let("x", ast.Named("Int"), b.Int(5))
	inferred := b.Let("y", nil, b.Int(5))
	b.Root(b.Block(ast.NoNodeID, annotated, inferred))

	res := mustCheck(t, prog)
	xt, yt := res.Declared[annotated], res.Declared[inferred]
	if !res.Env.Equal(xt, yt) || res.Env.Label(xt) != "int" {
		t.Fatalf("x: %s, y: %s; want both int", res.Env.Label(xt), res.Env.Label(yt))
	}
	if got := res.Program.Node(annotated).Type; got.State != ast.TypeExplicit || got.Type != xt {
		t.Fatalf("annotated let TypeInfo = %+v", got)
	}
	if got := res.Program.Node(inferred).Type; got.State != ast.TypeResolved {
		t.Fatalf("inferred let TypeInfo = %+v", got)
	}
	if res.Label(annotated) != "()" {
		t.Fatalf("let node type = %s, want unit", res.Label(annotated))
	}
}

func TestCheckBinaryOperators(t *testing.T) {
	cases := []struct {
		name  string
		build func(b *ast.Builder) ast.NodeID
		want  string // "" means a type error
	}{
		{"int+float", func(b *ast.Builder) ast.NodeID { return b.Binary(ast.BinaryAdd, b.Int(1), b.Float(2)) }, "float"},
		{"int+int", func(b *ast.Builder) ast.NodeID { return b.Binary(ast.BinaryAdd, b.Int(1), b.Int(2)) }, "int"},
		{"string+string", func(b *ast.Builder) ast.NodeID { return b.Binary(ast.BinaryAdd, b.Str("a"), b.Str("b")) }, "string"},
		{"string+char", func(b *ast.Builder) ast.NodeID { return b.Binary(ast.BinaryAdd, b.Str("a"), b.Char('b')) }, "string"},
		{"int+string", func(b *ast.Builder) ast.NodeID { return b.Binary(ast.BinaryAdd, b.Int(1), b.Str("a")) }, ""},
		{"string-string", func(b *ast.Builder) ast.NodeID { return b.Binary(ast.BinarySub, b.Str("a"), b.Str("b")) }, ""},
		{"int<float", func(b *ast.Builder) ast.NodeID { return b.Binary(ast.BinaryLt, b.Int(1), b.Float(2)) }, "bool"},
		{"int==string", func(b *ast.Builder) ast.NodeID { return b.Binary(ast.BinaryEq, b.Int(1), b.Str("1")) }, ""},
		{"bool&&bool", func(b *ast.Builder) ast.NodeID { return b.Binary(ast.BinaryAnd, b.Bool(true), b.Bool(false)) }, "bool"},
		{"int||bool", func(b *ast.Builder) ast.NodeID { return b.Binary(ast.BinaryOr, b.Int(1), b.Bool(false)) }, ""},
		{"-float", func(b *ast.Builder) ast.NodeID { return b.Unary(ast.UnaryNeg, b.Float(1)) }, "float"},
		{"!int", func(b *ast.Builder) ast.NodeID { return b.Unary(ast.UnaryNot, b.Int(1)) }, ""},
	}
	for _, tc := range cases {
		prog, b := newProgram()
		expr := b.Root(tc.build(b))
		res, err := Check(prog, Options{})
		if tc.want == "" {
			if err == nil {
				t.Fatalf("%s: expected type error, got %s", tc.name, res.Label(expr))
			}
			if !diag.IsKind(err, diag.KindType) {
				t.Fatalf("%s: expected type error, got %v", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got := res.Label(expr); got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestCheckBinaryErrorNamesOperands(t *testing.T) {
	prog, b := newProgram()
	b.Root(b.At(2, 7).Binary(ast.BinaryAdd, b.Int(1), b.Str("a")))
	_, err := Check(prog, Options{})
	de := expectType(t, err, diag.TypeBinaryOperands, "'+'", "int", "string")
	if de.Loc.Line != 2 || de.Loc.Col != 7 {
		t.Fatalf("error at %s", de.Loc)
	}
}

func TestCheckConditional(t *testing.T) {
	prog, b := newProgram()
	ok := b.Root(b.If(b.Bool(true), b.Block(b.Int(1)), b.Block(b.Int(2))))
	res := mustCheck(t, prog)
	if res.Label(ok) != "int" {
		t.Fatalf("if type = %s", res.Label(ok))
	}

	prog, b = newProgram()
	b.Root(b.If(b.Bool(true), b.Block(b.Int(1)), b.Block(b.Str("x"))))
	_, err := Check(prog, Options{})
	expectType(t, err, diag.TypeBranchMismatch, "branch type mismatch", "int", "string")

	// [?] and [int] are assignable both ways; the then branch is tried first.
	for _, tc := range []struct {
		emptyFirst bool
		want       string
	}{
		{emptyFirst: true, want: "[?]"},
		{emptyFirst: false, want: "[int]"},
	} {
		prog, b = newProgram()
		empty, full := b.Block(b.Array()), b.Block(b.Array(b.Int(1)))
		then, els := full, empty
		if tc.emptyFirst {
			then, els = empty, full
		}
		cond := b.Root(b.If(b.Bool(true), then, els))
		res = mustCheck(t, prog)
		if got := res.Label(cond); got != tc.want {
			t.Fatalf("if with empty then=%v: type = %s, want %s", tc.emptyFirst, got, tc.want)
		}
	}

	prog, b = newProgram()
	noElse := b.Root(b.If(b.Bool(false), b.Block(b.Int(1)), ast.NoNodeID))
	res = mustCheck(t, prog)
	if res.Label(noElse) != "()" {
		t.Fatalf("if without else = %s, want unit", res.Label(noElse))
	}

	prog, b = newProgram()
	b.Root(b.If(b.At(3, 4).Int(1), b.Block(b.Int(1)), ast.NoNodeID))
	_, err = Check(prog, Options{})
	de := expectType(t, err, diag.TypeConditionNotBool, "int")
	if de.Loc.Line != 3 {
		t.Fatalf("condition error at %s", de.Loc)
	}
}

// add(a: int, b: int) -> int
func addProgram(b *ast.Builder) {
	pa := b.Param("a", ast.Named("int"))
	pb := b.Param("b", ast.Named("int"))
	body := b.Block(b.Binary(ast.BinaryAdd, b.Ident("a"), b.Ident("b")))
	b.Root(b.Func("add", []ast.NodeID{pa, pb}, ast.Named("int"), body))
}

func TestCheckCallArguments(t *testing.T) {
	prog, b := newProgram()
	addProgram(b)
	b.Root(b.At(5, 1).Call(b.Ident("add"), b.Int(1)))
	_, err := Check(prog, Options{})
	expectType(t, err, diag.TypeArgCount, "expects 2", "got 1")

	prog, b = newProgram()
	addProgram(b)
	b.Root(b.Call(b.Ident("add"), b.Int(1), b.At(6, 12).Str("two")))
	_, err = Check(prog, Options{})
	de := expectType(t, err, diag.TypeArgMismatch, "argument 2", "expected int", "got string")
	if de.Loc.Line != 6 || de.Loc.Col != 12 {
		t.Fatalf("argument error at %s, want the argument", de.Loc)
	}

	prog, b = newProgram()
	addProgram(b)
	call := b.Root(b.Call(b.Ident("add"), b.Int(1), b.Int(2)))
	res := mustCheck(t, prog)
	if res.Label(call) != "int" {
		t.Fatalf("call type = %s", res.Label(call))
	}
}

func TestCheckCallBeforeDefinition(t *testing.T) {
	prog, b := newProgram()
	call := b.Root(b.Call(b.Ident("add"), b.Int(1), b.Int(2)))
	addProgram(b)
	res := mustCheck(t, prog)
	if res.Label(call) != "int" {
		t.Fatalf("call type = %s", res.Label(call))
	}
}

func TestCheckMutualRecursion(t *testing.T) {
	prog, b := newProgram()
	for _, pair := range [][2]string{{"even", "odd"}, {"odd", "even"}} {
		p := b.Param("n", ast.Named("int"))
		body := b.Block(b.Call(b.Ident(pair[1]), b.Ident("n")))
		b.Root(b.Func(pair[0], []ast.NodeID{p}, ast.Named("bool"), body))
	}
	res := mustCheck(t, prog)
	for _, root := range res.Program.Roots() {
		if got := res.Label(root); got != "(int) -> bool" {
			t.Fatalf("function type = %s", got)
		}
	}
}

func TestCheckFunctionRules(t *testing.T) {
	prog, b := newProgram()
	p := b.At(1, 8).Param("a", nil)
	b.Root(b.Func("f", []ast.NodeID{p}, nil, b.Block(ast.NoNodeID)))
	_, err := Check(prog, Options{})
	expectType(t, err, diag.TypeParamAnnotation, "'a'", "'f'")

	prog, b = newProgram()
	b.Root(b.Func("g", nil, ast.Named("int"), b.Block(b.Str("no"))))
	_, err = Check(prog, Options{})
	expectType(t, err, diag.TypeReturnMismatch, "'g'", "int", "string")

	// body ending in return is not compared against the result type
	prog, b = newProgram()
	early := b.Root(b.Func("h", nil, ast.Named("int"), b.Block(ast.NoNodeID, b.Return(b.Int(1)))))
	res := mustCheck(t, prog)
	if res.Label(early) != "() -> int" {
		t.Fatalf("h type = %s", res.Label(early))
	}

	prog, b = newProgram()
	b.Root(b.Func("k", nil, ast.Named("int"), b.Block(ast.NoNodeID, b.At(2, 3).Return(b.Bool(true)))))
	_, err = Check(prog, Options{})
	expectType(t, err, diag.TypeReturnMismatch, "int", "bool")

	prog, b = newProgram()
	unit := b.Root(b.Func("u", nil, nil, b.Block(ast.NoNodeID)))
	res = mustCheck(t, prog)
	if fn, _ := res.Env.FnInfo(res.Types[unit]); res.Env.Label(fn.Result) != "()" {
		t.Fatalf("unannotated result should default to unit")
	}
}

func TestCheckArrayLiterals(t *testing.T) {
	prog, b := newProgram()
	arr := b.Root(b.Array(b.Int(1), b.Int(2), b.Int(3)))
	empty := b.Root(b.Array())
	res := mustCheck(t, prog)
	if res.Label(arr) != "[int]" || res.Label(empty) != "[?]" {
		t.Fatalf("arrays: %s, %s", res.Label(arr), res.Label(empty))
	}

	prog, b = newProgram()
	b.Root(b.Array(b.Int(1), b.At(1, 5).Str("x")))
	_, err := Check(prog, Options{})
	de := expectType(t, err, diag.TypeArrayElement, "element 2", "string", "int")
	if de.Loc.Col != 5 {
		t.Fatalf("element error at %s", de.Loc)
	}
}

func TestCheckAssignment(t *testing.T) {
	prog, b := newProgram()
	b.Root(b.Block(ast.NoNodeID,
		b.Let("x", nil, b.Int(1)),
		b.Assign(b.Ident("x"), b.Str("s")),
	))
	_, err := Check(prog, Options{})
	expectType(t, err, diag.TypeMismatch, "string", "int")
}

func TestCheckLetRules(t *testing.T) {
	prog, b := newProgram()
	b.Root(b.Let("x", ast.Named("int"), b.Str("s")))
	_, err := Check(prog, Options{})
	expectType(t, err, diag.TypeMismatch, "'x'", "int", "string")

	prog, b = newProgram()
	b.Root(b.Let("y", nil, ast.NoNodeID))
	_, err = Check(prog, Options{})
	expectType(t, err, diag.TypeUnresolvedDecl, "'y'")

	prog, b = newProgram()
	b.Root(b.Let("z", ast.Named("Missing"), b.Int(1)))
	_, err = Check(prog, Options{})
	expectType(t, err, diag.TypeUnknownTypeName, "Missing")
}

func TestCheckUndefinedBinding(t *testing.T) {
	prog, b := newProgram()
	b.Root(b.At(9, 9).Ident("nowhere"))
	_, err := Check(prog, Options{})
	expectType(t, err, diag.TypeUndefinedBinding, "'nowhere'")
}

func TestCheckLibraryFallback(t *testing.T) {
	prog, b := newProgram()
	sqrt := b.Root(b.Call(b.Ident("math::sqrt"), b.Float(2)))
	length := b.Root(b.Call(b.Ident("length"), b.Str("abc")))
	res := mustCheck(t, prog)
	if res.Label(sqrt) != "float" || res.Label(length) != "int" {
		t.Fatalf("library calls: %s, %s", res.Label(sqrt), res.Label(length))
	}

	// outside callee position library names are not values
	prog, b = newProgram()
	b.Root(b.Let("f", nil, b.Ident("math::sqrt")))
	_, err := Check(prog, Options{})
	expectType(t, err, diag.TypeUndefinedBinding, "math::sqrt")

	prog, b = newProgram()
	b.Root(b.Call(b.Ident("math::sqrt"), b.Str("x")))
	_, err = Check(prog, Options{})
	expectType(t, err, diag.TypeArgMismatch, "argument 1", "float")
}

func TestCheckEmbeddedSQL(t *testing.T) {
	prog, b := newProgram()
	q := b.Let("q", ast.Named("Query"), b.Embedded("sql", "select * from t"))
	n := b.Let("n", nil, b.Call(b.Ident("row_count"), b.Ident("q")))
	b.Root(b.Block(ast.NoNodeID, q, n))
	res := mustCheck(t, prog)
	if got := res.Env.Label(res.Declared[q]); got != "sql:Query" {
		t.Fatalf("q type = %s", got)
	}
	if got := res.Env.Label(res.Declared[n]); got != "int" {
		t.Fatalf("n type = %s", got)
	}
}

func TestCheckUserTypes(t *testing.T) {
	prog, b := newProgram()
	b.Root(b.Struct("Point", []ast.NodeID{
		b.Field("x", ast.Named("float"), false),
		b.Field("next", ast.Named("Link"), false),
	}))
	b.Root(b.Alias("Link", ast.ArrayOf(ast.Named("Point"))))
	color := b.Root(b.Enum("Color", b.Variant("Red"), b.Variant("Rgb", *ast.Named("int"), *ast.Named("int"), *ast.Named("int"))))
	p := b.Param("p", ast.Named("Point"))
	b.Root(b.Func("first", []ast.NodeID{p}, ast.Named("Link"), b.Block(b.Array(b.Ident("p")))))

	res := mustCheck(t, prog)
	pt, ok := res.Env.TypeByName("Point")
	if !ok {
		t.Fatalf("Point not registered")
	}
	if f, ok := res.Env.StructField(pt, "next"); !ok || res.Env.Label(f.Type) != "[Point]" {
		t.Fatalf("Point.next = %+v", f)
	}
	if res.Program.Node(color).Type.State != ast.TypeExplicit {
		t.Fatalf("type definition should be explicit")
	}
	tt, _ := res.Env.Lookup(res.Types[color])
	if tt.Kind != types.KindEnum || len(tt.Variants) != 2 || len(tt.Variants[1].Elems) != 3 {
		t.Fatalf("Color = %+v", tt)
	}

	prog, b = newProgram()
	b.Root(b.At(4, 1).Struct("int", nil))
	_, err := Check(prog, Options{})
	expectType(t, err, diag.TypeDuplicateTypeName, "'int'")
}

func TestCheckGenericParams(t *testing.T) {
	prog, b := newProgram()
	p := b.Param("v", ast.Named("T"))
	fn := &ast.Func{Name: "id", TypeParams: []string{"T"}, Params: []ast.NodeID{p}, Result: ast.Named("T"), Body: b.Block(b.Ident("v"))}
	b.Root(prog.Insert(source.Location{File: prog.File}, fn))
	res := mustCheck(t, prog)
	if got := res.Env.Label(res.Declared[p]); got != "T" {
		t.Fatalf("type parameter resolved to %s", got)
	}
}

func TestCheckFirstErrorWins(t *testing.T) {
	prog, b := newProgram()
	b.Root(b.Block(ast.NoNodeID,
		b.At(1, 1).Let("x", ast.Named("Nope"), b.Int(1)),
		b.At(2, 1).Binary(ast.BinaryAdd, b.Ident("x"), b.Str("s")),
	))
	_, err := Check(prog, Options{})
	de := expectType(t, err, diag.TypeUnknownTypeName, "Nope")
	if de.Loc.Line != 1 {
		t.Fatalf("first error at %s", de.Loc)
	}
}

func TestCheckIdempotent(t *testing.T) {
	prog, b := newProgram()
	addProgram(b)
	b.Root(b.Block(ast.NoNodeID,
		b.Let("s", nil, b.Call(b.Ident("add"), b.Int(1), b.Int(2))),
		b.Let("t", nil, b.Binary(ast.BinaryMul, b.Ident("s"), b.Float(1.5))),
		b.Let("v", nil, b.Array(b.Str("a"), b.Str("b"))),
	))
	first := mustCheck(t, prog)
	second := mustCheck(t, prog)
	if !maps.Equal(first.Types, second.Types) {
		t.Fatalf("type maps differ between runs")
	}
	for id, t1 := range first.Types {
		if first.Env.Label(t1) != second.Env.Label(second.Types[id]) {
			t.Fatalf("node %s: %s vs %s", id, first.Env.Label(t1), second.Env.Label(second.Types[id]))
		}
	}
	for n := range prog.Nodes() {
		if n.Type.State != ast.TypeUnknown {
			t.Fatalf("input node %s was annotated", n.ID)
		}
	}
}

func TestCheckMissingNodeIsInternal(t *testing.T) {
	prog, b := newProgram()
	b.Root(b.Binary(ast.BinaryAdd, b.Int(1), ast.NodeID(77)))
	_, err := Check(prog, Options{})
	if !diag.IsKind(err, diag.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
