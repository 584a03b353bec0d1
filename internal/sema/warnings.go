package sema

import (
	"fmt"
	"strings"

	"eidos/internal/diag"
	"eidos/internal/symbols"
)

// reportUnused warns about variables and parameters nothing refers to.
// Names starting with an underscore are exempt. Functions and types are
// never reported: any of them may be an entry point.
func (a *analyzer) reportUnused() {
	syms := a.table.Symbols.Data()
	for i := range syms {
		sym := &syms[i]
		if sym.Builtin() || a.used[sym.ID] {
			continue
		}
		var what string
		switch sym.Kind {
		case symbols.SymbolVariable:
			what = "variable"
		case symbols.SymbolParameter:
			what = "parameter"
		default:
			continue
		}
		name, _ := a.table.Strings.Lookup(sym.Name)
		if strings.HasPrefix(name, "_") {
			continue
		}
		a.warn(diag.SemaUnusedSymbol, sym.Loc, fmt.Sprintf("unused %s '%s'", what, name))
	}
}
