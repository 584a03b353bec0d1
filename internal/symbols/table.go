package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"eidos/internal/source"
)

var (
	// ErrDuplicate is returned when the current scope already holds a name.
	ErrDuplicate = errors.New("duplicate declaration in scope")
	// ErrExitRoot is returned when exiting a scope without parent.
	ErrExitRoot = errors.New("cannot exit the root scope")
	// ErrNoScope is returned for operations on an unknown scope.
	ErrNoScope = errors.New("scope not found")
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and the current-scope cursor.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner

	root    ScopeID
	prelude ScopeID // detached; consulted after the root
	current ScopeID
	fnDepth int // function-kind scopes on the current path
}

// NewTable builds a fresh table with a global root scope as the current
// scope. If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
	t.root = t.Scopes.New(ScopeGlobal, NoScopeID, source.Location{})
	t.current = t.root
	return t
}

// Root returns the global scope.
func (t *Table) Root() ScopeID { return t.root }

// Current returns the scope under the cursor.
func (t *Table) Current() ScopeID { return t.current }

// InFunction reports whether some scope on the current path is function-kind.
func (t *Table) InFunction() bool { return t.fnDepth > 0 }

// CreateScope allocates a scope under parent (NoScopeID for a detached root)
// without moving the cursor.
func (t *Table) CreateScope(kind ScopeKind, parent ScopeID, loc source.Location) (ScopeID, error) {
	if parent.IsValid() && t.Scopes.Get(parent) == nil {
		return NoScopeID, fmt.Errorf("%w: parent %d", ErrNoScope, parent)
	}
	return t.Scopes.New(kind, parent, loc), nil
}

// Enter creates a child of the current scope and makes it current.
func (t *Table) Enter(kind ScopeKind, loc source.Location) ScopeID {
	id := t.Scopes.New(kind, t.current, loc)
	t.current = id
	if kind == ScopeFunction {
		t.fnDepth++
	}
	return id
}

// Exit moves the cursor to the parent of the current scope.
func (t *Table) Exit() error {
	scope := t.Scopes.Get(t.current)
	if scope == nil {
		return fmt.Errorf("%w: current %d", ErrNoScope, t.current)
	}
	if !scope.Parent.IsValid() {
		return fmt.Errorf("%w: scope %d (%s)", ErrExitRoot, scope.ID, scope.Kind)
	}
	if scope.Kind == ScopeFunction {
		t.fnDepth--
	}
	t.current = scope.Parent
	return nil
}

// Declare installs a symbol into the current scope. Shadowing a name declared
// in an enclosing scope is allowed; reusing a name of the current scope fails
// with ErrDuplicate.
func (t *Table) Declare(name string, kind SymbolKind, flags SymbolFlags, loc source.Location) (SymbolID, error) {
	return t.declareIn(t.current, name, kind, flags, loc, "")
}

// DeclareIn is Declare for an explicit scope; the cursor does not move.
func (t *Table) DeclareIn(scopeID ScopeID, name string, kind SymbolKind, flags SymbolFlags, loc source.Location, origin string) (SymbolID, error) {
	return t.declareIn(scopeID, name, kind, flags, loc, origin)
}

func (t *Table) declareIn(scopeID ScopeID, name string, kind SymbolKind, flags SymbolFlags, loc source.Location, origin string) (SymbolID, error) {
	scope := t.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, fmt.Errorf("%w: %d", ErrNoScope, scopeID)
	}
	nameID := t.Strings.Intern(name)
	if prev, ok := scope.NameIndex[nameID]; ok {
		return prev, fmt.Errorf("%w: '%s'", ErrDuplicate, name)
	}
	sym := Symbol{
		Name:   nameID,
		Kind:   kind,
		Scope:  scopeID,
		Loc:    loc,
		Flags:  flags,
		Origin: origin,
	}
	id := t.Symbols.New(&sym)
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[nameID] = id
	return id, nil
}

// Lookup walks the scope chain from the current scope outward and returns
// the nearest declaration of name. The prelude is searched last, so user
// declarations shadow builtins.
func (t *Table) Lookup(name string) (SymbolID, bool) {
	return t.LookupFrom(t.current, name)
}

// LookupFrom is Lookup starting at an explicit scope.
func (t *Table) LookupFrom(scopeID ScopeID, name string) (SymbolID, bool) {
	nameID, ok := t.Strings.Find(name)
	if !ok {
		return NoSymbolID, false
	}
	for scopeID.IsValid() {
		scope := t.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		if id, ok := scope.NameIndex[nameID]; ok {
			return id, true
		}
		scopeID = scope.Parent
	}
	if scope := t.Scopes.Get(t.prelude); scope != nil {
		if id, ok := scope.NameIndex[nameID]; ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

// Prelude returns the builtin scope, or NoScopeID before InstallPrelude.
func (t *Table) Prelude() ScopeID { return t.prelude }

// LookupLocal checks only the current scope.
func (t *Table) LookupLocal(name string) (SymbolID, bool) {
	nameID, ok := t.Strings.Find(name)
	if !ok {
		return NoSymbolID, false
	}
	scope := t.Scopes.Get(t.current)
	if scope == nil {
		return NoSymbolID, false
	}
	id, ok := scope.NameIndex[nameID]
	return id, ok
}

// Symbol fetches a symbol by ID.
func (t *Table) Symbol(id SymbolID) (*Symbol, bool) {
	sym := t.Symbols.Get(id)
	return sym, sym != nil
}

// Scope fetches a scope by ID.
func (t *Table) Scope(id ScopeID) (*Scope, bool) {
	scope := t.Scopes.Get(id)
	return scope, scope != nil
}

// Name returns the spelling of a symbol.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	name, _ := t.Strings.Lookup(sym.Name)
	return name
}
