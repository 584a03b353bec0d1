package sema

import (
	"eidos/internal/ast"
	"eidos/internal/diag"
	"eidos/internal/source"
	"eidos/internal/symbols"
	"eidos/internal/trace"
)

// AnalyzeResult is the outcome of a successful name-resolution pass.
type AnalyzeResult struct {
	// Program is the expanded clone; every binding node has Node.Symbol set.
	Program *ast.Program
	Table   *symbols.Table
	// Bindings maps declaring nodes and identifier uses to their symbol.
	Bindings map[ast.NodeID]symbols.SymbolID
	// Warnings are advisory: unused bindings and unreachable statements.
	Warnings []diag.Diagnostic
	// Expanded counts embedded blocks materialized on the clone.
	Expanded int
}

// Symbol returns the symbol bound to node id.
func (r *AnalyzeResult) Symbol(id ast.NodeID) (*symbols.Symbol, bool) {
	symID, ok := r.Bindings[id]
	if !ok {
		return nil, false
	}
	return r.Table.Symbol(symID)
}

type analyzer struct {
	prog     *ast.Program
	table    *symbols.Table
	bindings map[ast.NodeID]symbols.SymbolID
	used     map[symbols.SymbolID]bool
	warnings []diag.Diagnostic
	opts     Options
}

// Analyze resolves names in prog. prog itself is never modified.
func Analyze(prog *ast.Program, opts Options) (*AnalyzeResult, error) {
	if prog == nil {
		return nil, diag.Internal(diag.InternalBadInput, nil, "analyze: nil program")
	}
	opts = opts.withDefaults()
	span := trace.Begin(opts.Tracer, trace.ScopePass, "analyze", opts.ParentSpan)
	defer span.End("")
	opts.ParentSpan = span.ID()

	clone := prog.Clone()
	expanded, err := expand(clone, opts)
	if err != nil {
		return nil, err
	}

	a := &analyzer{
		prog:     clone,
		table:    symbols.NewTable(symbols.Hints{Scopes: 16, Symbols: uint(clone.Len())}, opts.Strings),
		bindings: make(map[ast.NodeID]symbols.SymbolID, clone.Len()),
		used:     make(map[symbols.SymbolID]bool),
		opts:     opts,
	}
	a.table.InstallPrelude(preludeEntries(opts.Catalog, opts.Extensions))

	if err := a.declareTopLevel(); err != nil {
		return nil, err
	}
	for _, root := range clone.Roots() {
		if err := a.visit(root); err != nil {
			return nil, err
		}
	}
	if a.table.Current() != a.table.Root() {
		return nil, diag.Internal(diag.InternalScopeState, nil, "scope cursor at %d after analysis, want root %d", a.table.Current(), a.table.Root())
	}
	if !opts.NoWarnings {
		a.reportUnused()
		for _, w := range a.warnings {
			trace.Point(opts.Tracer, trace.ScopeNode, "warning", w.Code.ID()+" "+w.Message, span.ID())
		}
	}
	span.WithExtra("nodes", itoa(clone.Len())).WithExtra("symbols", itoa(a.table.Symbols.Len()))

	return &AnalyzeResult{
		Program:  clone,
		Table:    a.table,
		Bindings: a.bindings,
		Warnings: a.warnings,
		Expanded: expanded,
	}, nil
}

// declareTopLevel makes root functions and types visible to every other
// root regardless of order.
func (a *analyzer) declareTopLevel() error {
	for _, root := range a.prog.Roots() {
		n, err := a.node(root)
		if err != nil {
			return err
		}
		switch d := n.Data.(type) {
		case *ast.Func:
			if err := a.declare(n, d.Name, symbols.SymbolFunction, exportFlags(d.Exported)); err != nil {
				return err
			}
		case *ast.TypeDef:
			if err := a.declare(n, d.Name, symbols.SymbolType, exportFlags(d.Exported)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *analyzer) node(id ast.NodeID) (*ast.Node, error) {
	n, err := a.prog.Get(id)
	if err != nil {
		return nil, diag.Internal(diag.InternalMissingNode, err, "node %s", id)
	}
	return n, nil
}

// declare puts name into the current scope and binds it to n.
func (a *analyzer) declare(n *ast.Node, name string, kind symbols.SymbolKind, flags symbols.SymbolFlags) error {
	id, err := a.table.Declare(name, kind, flags, n.Loc)
	if err != nil {
		if prev, ok := a.table.Symbol(id); ok {
			return diag.Semantic(diag.SemaDuplicateSymbol, n.Loc, "symbol '%s' is already defined in this scope", name).
				Wrap(err).WithNote(prev.Loc, "previous declaration here")
		}
		return diag.Semantic(diag.SemaDuplicateSymbol, n.Loc, "symbol '%s' is already defined in this scope", name).Wrap(err)
	}
	n.Symbol = id
	a.bindings[n.ID] = id
	return nil
}

func (a *analyzer) exit() error {
	if err := a.table.Exit(); err != nil {
		return diag.Internal(diag.InternalScopeState, err, "leaving scope %d", a.table.Current())
	}
	return nil
}

func (a *analyzer) warn(code diag.Code, loc source.Location, msg string) {
	if a.opts.NoWarnings {
		return
	}
	a.warnings = append(a.warnings, diag.NewWarning(code, loc, msg))
}

func exportFlags(exported bool) symbols.SymbolFlags {
	if exported {
		return symbols.SymbolFlagPublic
	}
	return 0
}
