// Package testkit holds structural checks shared by package tests.
package testkit

import (
	"errors"
	"fmt"

	"eidos/internal/ast"
	"eidos/internal/symbols"
)

// CheckTree runs the forest invariants on p:
// 1) every root and every child reference points at an existing node
// 2) no node has two parents and no root is also a child
// 3) no node is its own ancestor
func CheckTree(p *ast.Program) error {
	if p == nil {
		return fmt.Errorf("nil program")
	}
	parent := make(map[ast.NodeID]ast.NodeID, p.Len())
	for _, root := range p.Roots() {
		if _, err := p.Get(root); err != nil {
			return fmt.Errorf("root %s: %w", root, err)
		}
	}
	for n := range p.Nodes() {
		for _, child := range n.Data.Children() {
			if !child.IsValid() {
				continue
			}
			if _, err := p.Get(child); err != nil {
				return fmt.Errorf("%s node %s: child %s: %w", n.Kind(), n.ID, child, err)
			}
			if child == n.ID {
				return fmt.Errorf("%s node %s is its own child", n.Kind(), n.ID)
			}
			if prev, ok := parent[child]; ok {
				return fmt.Errorf("node %s has two parents: %s and %s", child, prev, n.ID)
			}
			if p.IsRoot(child) {
				return fmt.Errorf("root %s is also a child of %s", child, n.ID)
			}
			parent[child] = n.ID
		}
	}
	for id := range parent {
		seen := map[ast.NodeID]bool{id: true}
		for up, ok := parent[id]; ok; up, ok = parent[up] {
			if seen[up] {
				return fmt.Errorf("node %s is its own ancestor", id)
			}
			seen[up] = true
		}
	}
	return nil
}

// CheckAnnotated reports every node reachable from a root that has no type.
func CheckAnnotated(p *ast.Program) error {
	var errs []error
	for id := range p.PreOrder() {
		n := p.Node(id)
		if n == nil {
			errs = append(errs, fmt.Errorf("node %s missing", id))
			continue
		}
		if !n.Type.Type.IsValid() {
			errs = append(errs, fmt.Errorf("%s node %s at %s has no type", n.Kind(), id, n.Loc))
		}
	}
	return errors.Join(errs...)
}

// CheckBindings verifies that every reachable identifier is bound to a
// symbol of table and that the table itself is consistent.
func CheckBindings(p *ast.Program, table *symbols.Table) error {
	var errs []error
	for id := range p.PreOrder() {
		n := p.Node(id)
		if n == nil || n.Kind() != ast.KindIdent {
			continue
		}
		if !n.Symbol.IsValid() {
			errs = append(errs, fmt.Errorf("identifier %s at %s is unbound", id, n.Loc))
			continue
		}
		if _, ok := table.Symbol(n.Symbol); !ok {
			errs = append(errs, fmt.Errorf("identifier %s refers to unknown symbol %d", id, n.Symbol))
		}
	}
	if err := table.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
