package symbols

import (
	"errors"
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Validate walks internal arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	if t.Scopes.Get(t.current) == nil {
		errs = append(errs, fmt.Errorf("current scope %d is not allocated", t.current))
	}

	// parent/child backlinks
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		if scope.Parent.IsValid() {
			if int(scope.Parent) >= len(t.Scopes.data) || scope.Parent >= scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
				continue
			}
			if !slices.Contains(t.Scopes.data[scope.Parent].Children, scopeID) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		}
		for _, child := range scope.Children {
			if int(child) >= len(t.Scopes.data) || child == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid child %d", scopeID, child))
				continue
			}
			if t.Scopes.data[child].Parent != scopeID {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", scopeID, child))
			}
		}
	}

	// name index must mirror the declaration list
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scope := t.Scopes.data[idx]
		if len(scope.NameIndex) != len(scope.Symbols) {
			errs = append(errs, fmt.Errorf("scope %d indexes %d names for %d symbols", idx, len(scope.NameIndex), len(scope.Symbols)))
		}
		for name, id := range scope.NameIndex {
			sym := t.Symbols.Get(id)
			if sym == nil || sym.Name != name || int(sym.Scope) != idx {
				errs = append(errs, fmt.Errorf("scope %d name index %d references foreign symbol %d", idx, name, id))
			}
		}
	}

	for idx := 1; idx < len(t.Symbols.data); idx++ {
		symbolID, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		symbol := t.Symbols.data[idx]
		if symbol.ID != symbolID {
			errs = append(errs, fmt.Errorf("symbol %d stored with id %d", symbolID, symbol.ID))
		}
		if !symbol.Scope.IsValid() || int(symbol.Scope) >= len(t.Scopes.data) {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", symbolID, symbol.Scope))
			continue
		}
		if !slices.Contains(t.Scopes.data[symbol.Scope].Symbols, symbolID) {
			errs = append(errs, fmt.Errorf("symbol %d is missing from scope %d list", symbolID, symbol.Scope))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
