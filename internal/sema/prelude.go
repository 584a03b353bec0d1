package sema

import (
	"strconv"

	"eidos/internal/dsl"
	"eidos/internal/stdlib"
	"eidos/internal/symbols"
)

// preludeEntries lists the names visible before any user declaration:
// library functions (qualified and bare), library types, and whatever the
// registered extensions contribute.
func preludeEntries(cat *stdlib.Catalog, reg *dsl.Registry) []symbols.PreludeEntry {
	out := make([]symbols.PreludeEntry, 0, cat.Len()*2)
	for _, name := range cat.Names() {
		fn, ok := cat.Function(name)
		if !ok {
			continue
		}
		out = append(out, symbols.PreludeEntry{
			Name:   name,
			Kind:   symbols.SymbolFunction,
			Flags:  symbols.SymbolFlagPublic,
			Origin: fn.Module,
		})
	}
	for _, decl := range cat.Types() {
		out = append(out, symbols.PreludeEntry{
			Name:   decl.Name,
			Kind:   symbols.SymbolType,
			Flags:  symbols.SymbolFlagPublic,
			Origin: decl.Module,
		})
	}
	for _, ext := range reg.Extensions() {
		for _, b := range ext.Builtins() {
			out = append(out, symbols.PreludeEntry{Name: b.Name, Kind: symbols.SymbolExtension, Origin: ext.Name()})
		}
		for _, name := range ext.Types() {
			out = append(out, symbols.PreludeEntry{Name: name, Kind: symbols.SymbolType, Origin: ext.Name()})
		}
	}
	return out
}

func itoa(n int) string { return strconv.Itoa(n) }
