package symbols

import (
	"eidos/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // root of a compilation unit
	ScopeFunction           // function body scope
	ScopeBlock              // generic block scope
	ScopeModule             // library module namespace
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeModule:
		return "module"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy.
// Names are unique within one scope.
type Scope struct {
	ID        ScopeID
	Kind      ScopeKind
	Parent    ScopeID
	Loc       source.Location
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID // declaration order
	Children  []ScopeID
}
