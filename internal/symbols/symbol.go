package symbols

import (
	"eidos/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVariable
	SymbolFunction
	SymbolParameter
	SymbolType
	SymbolModule
	SymbolEnumVariant
	SymbolField
	SymbolExtension // contributed by an embedded-block extension
)

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagPublic SymbolFlags = 1 << iota
	SymbolFlagMutable
	SymbolFlagBuiltin
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolParameter:
		return "parameter"
	case SymbolType:
		return "type"
	case SymbolModule:
		return "module"
	case SymbolEnumVariant:
		return "enum variant"
	case SymbolField:
		return "field"
	case SymbolExtension:
		return "extension"
	default:
		return "invalid"
	}
}

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 3)
	if f&SymbolFlagPublic != 0 {
		labels = append(labels, "public")
	}
	if f&SymbolFlagMutable != 0 {
		labels = append(labels, "mutable")
	}
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	return labels
}

// Symbol describes a named entity available in a scope. Symbols are never
// modified after declaration.
type Symbol struct {
	ID     SymbolID
	Name   source.StringID
	Kind   SymbolKind
	Scope  ScopeID
	Loc    source.Location
	Flags  SymbolFlags
	Origin string // providing library module or extension, empty for user code
}

func (s *Symbol) Mutable() bool  { return s.Flags&SymbolFlagMutable != 0 }
func (s *Symbol) Exported() bool { return s.Flags&SymbolFlagPublic != 0 }
func (s *Symbol) Builtin() bool  { return s.Flags&SymbolFlagBuiltin != 0 }
