package sema

import (
	"eidos/internal/ast"
	"eidos/internal/diag"
	"eidos/internal/symbols"
)

// visit is the pre-order dispatch of phase B. A node is handled before its
// children; scope-introducing kinds enter and leave their scope around them.
func (a *analyzer) visit(id ast.NodeID) error {
	n, err := a.node(id)
	if err != nil {
		return err
	}
	switch d := n.Data.(type) {
	case *ast.Ident:
		symID, ok := a.table.Lookup(d.Name)
		if !ok {
			return diag.Semantic(diag.SemaUndefinedIdent, n.Loc, "undefined identifier '%s'", d.Name)
		}
		n.Symbol = symID
		a.bindings[n.ID] = symID
		a.used[symID] = true
		return nil

	case *ast.Let:
		if err := a.declare(n, d.Name, symbols.SymbolVariable, symbols.SymbolFlagMutable); err != nil {
			return err
		}
		return a.visitOpt(d.Init)

	case *ast.Assign:
		if err := a.visit(d.Target); err != nil {
			return err
		}
		if err := a.checkAssignable(n, d.Target); err != nil {
			return err
		}
		return a.visit(d.Value)

	case *ast.Func:
		return a.visitFunc(n, d)

	case *ast.Param:
		// only reachable when a param is a root; functions declare their own
		return a.declare(n, d.Name, symbols.SymbolParameter, 0)

	case *ast.Block:
		a.table.Enter(symbols.ScopeBlock, n.Loc)
		if err := a.visitBlock(d); err != nil {
			return err
		}
		return a.exit()

	case *ast.Return:
		if !a.table.InFunction() {
			return diag.Semantic(diag.SemaReturnOutsideFn, n.Loc, "return outside of function")
		}
		return a.visitOpt(d.Value)

	case *ast.TypeDef:
		return a.visitTypeDef(n, d)

	case *ast.Field:
		return a.declare(n, d.Name, symbols.SymbolField, fieldFlags(d))

	case *ast.Variant:
		return a.declare(n, d.Name, symbols.SymbolEnumVariant, 0)

	case *ast.Embedded:
		if !d.Expanded.IsValid() {
			return diag.Internal(diag.InternalBadInput, nil, "embedded block %s (%s) was not expanded", n.ID, d.Extension)
		}
		return a.visit(d.Expanded)

	default:
		// literal, unary, binary, if, call, while: plain structural recursion
		for _, child := range n.Data.Children() {
			if err := a.visit(child); err != nil {
				return err
			}
		}
		return nil
	}
}

func (a *analyzer) visitOpt(id ast.NodeID) error {
	if !id.IsValid() {
		return nil
	}
	return a.visit(id)
}

// checkAssignable rejects writes through a plain identifier bound to an
// immutable symbol. Other targets are left to later passes.
func (a *analyzer) checkAssignable(assign *ast.Node, target ast.NodeID) error {
	n, err := a.node(target)
	if err != nil {
		return err
	}
	ident, ok := n.Data.(*ast.Ident)
	if !ok {
		return nil
	}
	sym, ok := a.table.Symbol(n.Symbol)
	if !ok {
		return diag.Internal(diag.InternalScopeState, nil, "assignment target %s has no symbol", target)
	}
	if !sym.Mutable() {
		return diag.Semantic(diag.SemaAssignImmutable, assign.Loc, "cannot assign to immutable binding '%s'", ident.Name).
			WithNote(sym.Loc, "declared here")
	}
	return nil
}

func (a *analyzer) visitFunc(n *ast.Node, fn *ast.Func) error {
	if _, declared := a.bindings[n.ID]; !declared {
		if err := a.declare(n, fn.Name, symbols.SymbolFunction, exportFlags(fn.Exported)); err != nil {
			return err
		}
	}
	a.table.Enter(symbols.ScopeFunction, n.Loc)
	for _, pid := range fn.Params {
		pn, err := a.node(pid)
		if err != nil {
			return err
		}
		param, ok := pn.Data.(*ast.Param)
		if !ok {
			return diag.Internal(diag.InternalBadInput, nil, "function '%s' parameter %s is %s", fn.Name, pid, pn.Kind())
		}
		if err := a.declare(pn, param.Name, symbols.SymbolParameter, 0); err != nil {
			return err
		}
	}
	if err := a.visitOpt(fn.Body); err != nil {
		return err
	}
	return a.exit()
}

func (a *analyzer) visitBlock(b *ast.Block) error {
	terminated := false
	for _, stmt := range b.Stmts {
		if terminated {
			a.unreachable(stmt)
			terminated = false // one report per block
		}
		if err := a.visit(stmt); err != nil {
			return err
		}
		if a.isReturn(stmt) {
			terminated = true
		}
	}
	if terminated && b.Tail.IsValid() {
		a.unreachable(b.Tail)
	}
	return a.visitOpt(b.Tail)
}

func (a *analyzer) isReturn(id ast.NodeID) bool {
	n := a.prog.Node(id)
	return n != nil && n.Kind() == ast.KindReturn
}

func (a *analyzer) unreachable(id ast.NodeID) {
	if n := a.prog.Node(id); n != nil {
		a.warn(diag.SemaUnreachableCode, n.Loc, "unreachable code after return")
	}
}

// visitTypeDef declares members and methods in a block scope of their own.
func (a *analyzer) visitTypeDef(n *ast.Node, td *ast.TypeDef) error {
	if _, declared := a.bindings[n.ID]; !declared {
		if err := a.declare(n, td.Name, symbols.SymbolType, exportFlags(td.Exported)); err != nil {
			return err
		}
	}
	if td.Form == ast.TypeAlias {
		return nil
	}
	a.table.Enter(symbols.ScopeBlock, n.Loc)
	for _, member := range td.Members {
		if err := a.visit(member); err != nil {
			return err
		}
	}
	for _, method := range td.Methods {
		if err := a.visit(method); err != nil {
			return err
		}
	}
	return a.exit()
}

func fieldFlags(f *ast.Field) symbols.SymbolFlags {
	flags := exportFlags(f.Exported)
	if f.Mutable {
		flags |= symbols.SymbolFlagMutable
	}
	return flags
}
