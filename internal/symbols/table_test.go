package symbols

import (
	"errors"
	"testing"

	"eidos/internal/source"
)

func TestTableStartsAtGlobalRoot(t *testing.T) {
	table := NewTable(Hints{}, nil)
	root, ok := table.Scope(table.Root())
	if !ok || root.Kind != ScopeGlobal || root.Parent.IsValid() {
		t.Fatalf("expected a parentless global root, got %+v", root)
	}
	if table.Current() != table.Root() {
		t.Fatalf("cursor must start at the root")
	}
	if table.InFunction() {
		t.Fatalf("root is not a function scope")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestExitAtRootFails(t *testing.T) {
	table := NewTable(Hints{}, nil)
	if err := table.Exit(); !errors.Is(err, ErrExitRoot) {
		t.Fatalf("expected ErrExitRoot, got %v", err)
	}
	if table.Current() != table.Root() {
		t.Fatalf("failed exit must not move the cursor")
	}
}

func TestShadowingResolvesToNearest(t *testing.T) {
	table := NewTable(Hints{}, nil)
	outer, err := table.Declare("x", SymbolVariable, 0, source.At("a.ei", 1, 5))
	if err != nil {
		t.Fatalf("declare outer: %v", err)
	}
	table.Enter(ScopeBlock, source.Location{})
	inner, err := table.Declare("x", SymbolVariable, SymbolFlagMutable, source.At("a.ei", 2, 9))
	if err != nil {
		t.Fatalf("shadowing in a nested scope must be legal: %v", err)
	}
	if got, ok := table.Lookup("x"); !ok || got != inner {
		t.Fatalf("lookup inside block = %d, want inner %d", got, inner)
	}
	if err := table.Exit(); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if got, ok := table.Lookup("x"); !ok || got != outer {
		t.Fatalf("lookup after exit = %d, want outer %d", got, outer)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDuplicateInSameScope(t *testing.T) {
	table := NewTable(Hints{}, nil)
	first, _ := table.Declare("x", SymbolVariable, 0, source.Location{})
	prev, err := table.Declare("x", SymbolFunction, 0, source.Location{})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if prev != first {
		t.Fatalf("duplicate error should report the existing symbol")
	}
	if table.Symbols.Len() != 1 {
		t.Fatalf("failed declaration must not allocate a symbol")
	}
}

func TestLookupMissing(t *testing.T) {
	table := NewTable(Hints{}, nil)
	if _, ok := table.Lookup("nope"); ok {
		t.Fatalf("unexpected hit")
	}
	if table.Strings.Has("nope") {
		t.Fatalf("lookup must not intern names")
	}
}

func TestInFunctionTracksPath(t *testing.T) {
	table := NewTable(Hints{}, nil)
	table.Enter(ScopeFunction, source.Location{})
	table.Enter(ScopeBlock, source.Location{})
	if !table.InFunction() {
		t.Fatalf("block nested in a function is inside a function")
	}
	_ = table.Exit()
	_ = table.Exit()
	if table.InFunction() {
		t.Fatalf("left the function scope")
	}
	table.Enter(ScopeBlock, source.Location{})
	if table.InFunction() {
		t.Fatalf("top-level block is not inside a function")
	}
}

func TestIdentitiesAreMonotonic(t *testing.T) {
	table := NewTable(Hints{}, nil)
	var lastScope ScopeID
	var lastSym SymbolID
	for i := range 5 {
		scope := table.Enter(ScopeBlock, source.Location{})
		sym, err := table.Declare("v", SymbolVariable, 0, source.Location{})
		if err != nil {
			t.Fatalf("declare %d: %v", i, err)
		}
		if scope <= lastScope || sym <= lastSym {
			t.Fatalf("identities must grow: scope %d after %d, symbol %d after %d", scope, lastScope, sym, lastSym)
		}
		lastScope, lastSym = scope, sym
	}
}

func TestCreateScopeKeepsCursor(t *testing.T) {
	table := NewTable(Hints{}, nil)
	mod, err := table.CreateScope(ScopeModule, table.Root(), source.Location{})
	if err != nil {
		t.Fatalf("CreateScope: %v", err)
	}
	if table.Current() != table.Root() {
		t.Fatalf("CreateScope must not move the cursor")
	}
	if _, err := table.DeclareIn(mod, "sqrt", SymbolFunction, SymbolFlagBuiltin, source.Location{}, "math"); err != nil {
		t.Fatalf("DeclareIn: %v", err)
	}
	if _, ok := table.Lookup("sqrt"); ok {
		t.Fatalf("module members are not visible from the root")
	}
	if id, ok := table.LookupFrom(mod, "sqrt"); !ok || table.Name(id) != "sqrt" {
		t.Fatalf("LookupFrom module failed")
	}
	if _, err := table.CreateScope(ScopeBlock, ScopeID(99), source.Location{}); !errors.Is(err, ErrNoScope) {
		t.Fatalf("expected ErrNoScope, got %v", err)
	}
}

func TestNFCNamesBindTogether(t *testing.T) {
	table := NewTable(Hints{}, nil)
	id, err := table.Declare("caf\u00e9", SymbolVariable, 0, source.Location{})
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	if got, ok := table.Lookup("cafe\u0301"); !ok || got != id {
		t.Fatalf("decomposed spelling must find the composed declaration")
	}
}

func TestPreludeFirstWins(t *testing.T) {
	table := NewTable(Hints{}, nil)
	n := table.InstallPrelude([]PreludeEntry{
		{Name: "sqrt", Kind: SymbolFunction, Origin: "math"},
		{Name: "len", Kind: SymbolFunction, Origin: "string"},
		{Name: "len", Kind: SymbolFunction, Origin: "collections"},
	})
	if n != 2 {
		t.Fatalf("installed %d entries, want 2", n)
	}
	id, ok := table.Lookup("len")
	if !ok {
		t.Fatalf("len not installed")
	}
	sym, _ := table.Symbol(id)
	if !sym.Builtin() || sym.Origin != "string" {
		t.Fatalf("unexpected prelude symbol %+v", sym)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestUserDeclarationShadowsPrelude(t *testing.T) {
	table := NewTable(Hints{}, nil)
	table.InstallPrelude([]PreludeEntry{{Name: "length", Kind: SymbolFunction, Origin: "string"}})

	user, err := table.Declare("length", SymbolFunction, 0, source.At("a.eidos", 1, 1))
	if err != nil {
		t.Fatalf("user declaration collided with prelude: %v", err)
	}
	got, ok := table.Lookup("length")
	if !ok || got != user {
		t.Fatalf("Lookup(length) = %v, %v; want user symbol %v", got, ok, user)
	}
	if _, err := table.DeclareIn(table.Prelude(), "length", SymbolFunction, 0, source.Location{}, ""); err == nil {
		t.Fatalf("expected duplicate inside prelude scope")
	}
}
