package symbols

import (
	"errors"
	"sort"

	"eidos/internal/source"
)

// PreludeEntry describes a builtin symbol visible from every scope.
type PreludeEntry struct {
	Name   string
	Kind   SymbolKind
	Flags  SymbolFlags
	Origin string
}

// InstallPrelude declares entries as builtins in a detached module scope
// that Lookup falls back to after the root. A repeated name keeps its first
// declaration. Entries are installed in name order so symbol IDs do not
// depend on map iteration upstream.
func (t *Table) InstallPrelude(entries []PreludeEntry) int {
	if !t.prelude.IsValid() {
		t.prelude = t.Scopes.New(ScopeModule, NoScopeID, source.Location{File: "<prelude>"})
	}
	sorted := make([]PreludeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	installed := 0
	for _, entry := range sorted {
		flags := entry.Flags | SymbolFlagBuiltin
		_, err := t.declareIn(t.prelude, entry.Name, entry.Kind, flags, source.Location{File: "<prelude>"}, entry.Origin)
		if errors.Is(err, ErrDuplicate) {
			continue
		}
		if err == nil {
			installed++
		}
	}
	return installed
}
