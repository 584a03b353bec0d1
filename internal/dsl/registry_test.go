package dsl

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"eidos/internal/ast"
	"eidos/internal/source"
)

type stubExtension struct {
	name string
	fail error
}

func (s stubExtension) Name() string        { return s.name }
func (s stubExtension) Description() string { return "stub " + s.name }
func (s stubExtension) Types() []string     { return nil }
func (s stubExtension) Builtins() []Builtin { return nil }

func (s stubExtension) Process(content string, prog *ast.Program) (ast.NodeID, error) {
	if s.fail != nil {
		return ast.NoNodeID, s.fail
	}
	return prog.Insert(source.Location{}, &ast.Literal{Lit: ast.LitInt, Int: int64(len(content))}), nil
}

func TestRegistryOperations(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(stubExtension{name: "b"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(stubExtension{name: "a"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := r.List(); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("List = %v", got)
	}
	if !r.Has("a") || r.Has("c") {
		t.Fatalf("Has mismatch")
	}
	if !r.Unregister("a") || r.Unregister("a") {
		t.Fatalf("Unregister must succeed exactly once")
	}
	if _, ok := r.Get("a"); ok {
		t.Fatalf("unregistered extension still visible")
	}
	if err := r.Register(stubExtension{}); !errors.Is(err, ErrInvalidExtension) {
		t.Fatalf("expected ErrInvalidExtension, got %v", err)
	}
	if err := r.Register(nil); !errors.Is(err, ErrInvalidExtension) {
		t.Fatalf("expected ErrInvalidExtension for nil, got %v", err)
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.Register(stubExtension{name: fmt.Sprintf("ext%d", i)})
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				_ = r.List()
				_, _ = r.Get("ext0")
			}
		}()
	}
	wg.Wait()
	if len(r.List()) != 8 {
		t.Fatalf("expected 8 extensions, got %v", r.List())
	}
}

func TestExpandSetsLocationAndLink(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(stubExtension{name: "len"})
	prog := ast.NewProgram("main.ei", 0)
	b := ast.NewBuilder(prog)
	emb := b.Root(b.At(4, 9).Embedded("len", "hello"))

	if err := r.Expand(prog, emb); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	n, _ := prog.Get(emb)
	expanded := n.Data.(*ast.Embedded).Expanded
	root, err := prog.Get(expanded)
	if err != nil {
		t.Fatalf("expanded root missing: %v", err)
	}
	if root.Loc != source.At("main.ei", 4, 9) {
		t.Fatalf("expanded root location = %s", root.Loc)
	}
	if lit := root.Data.(*ast.Literal); lit.Int != 5 {
		t.Fatalf("unexpected expansion %+v", lit)
	}
	if got := slices.Collect(prog.PreOrder()); !slices.Equal(got, []ast.NodeID{emb, expanded}) {
		t.Fatalf("expanded subtree must be reachable: %v", got)
	}
}

func TestExpandErrors(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	_ = r.Register(stubExtension{name: "bad", fail: boom})
	prog := ast.NewProgram("main.ei", 0)
	b := ast.NewBuilder(prog)
	unknown := b.Embedded("nope", "")
	failing := b.Embedded("bad", "")
	lit := b.Int(1)

	var ee *ExpandError
	if err := r.Expand(prog, unknown); !errors.Is(err, ErrUnknownExtension) || !errors.As(err, &ee) || ee.Extension != "nope" {
		t.Fatalf("expected unknown extension error, got %v", err)
	}
	if err := r.Expand(prog, failing); !errors.Is(err, boom) {
		t.Fatalf("expected extension failure, got %v", err)
	}
	if err := r.Expand(prog, lit); !errors.Is(err, ErrNotEmbedded) {
		t.Fatalf("expected ErrNotEmbedded, got %v", err)
	}
	if err := r.Expand(prog, 99); !errors.Is(err, ast.ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestBundledSQL(t *testing.T) {
	prog := ast.NewProgram("q.ei", 0)
	b := ast.NewBuilder(prog)
	b.Root(b.Embedded("sql", "  select 1  "))
	n, err := Default.ExpandAll(prog)
	if err != nil || n != 1 {
		t.Fatalf("ExpandAll = %d, %v", n, err)
	}
	var call *ast.Call
	for node := range prog.Nodes() {
		if c, ok := node.Data.(*ast.Call); ok {
			call = c
		}
	}
	if call == nil || len(call.Args) != 1 {
		t.Fatalf("sql block must expand to a call")
	}
	arg := prog.Node(call.Args[0]).Data.(*ast.Literal)
	if arg.Str != "select 1" {
		t.Fatalf("query text = %q", arg.Str)
	}
	if !slices.Equal(Default.List(), []string{"sql", "text"}) {
		t.Fatalf("unexpected bundled extensions %v", Default.List())
	}
}
