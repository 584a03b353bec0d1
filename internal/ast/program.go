package ast

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"eidos/internal/source"
)

// ErrNodeNotFound is returned when an ID does not name a node of the program.
var ErrNodeNotFound = errors.New("node not found")

// Program owns every node of a compilation unit and the ordered list of
// top-level roots.
type Program struct {
	File  string
	nodes *Arena[Node]
	roots []NodeID
}

// NewProgram creates an empty program for file.
func NewProgram(file string, capHint uint) *Program {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Program{File: file, nodes: NewArena[Node](capHint)}
}

// Insert stores a node and returns its freshly minted ID.
func (p *Program) Insert(loc source.Location, data Data) NodeID {
	id := NodeID(p.nodes.Allocate(Node{Loc: loc, Data: data}))
	p.nodes.Get(uint32(id)).ID = id
	return id
}

// Get returns the node for id.
func (p *Program) Get(id NodeID) (*Node, error) {
	n := p.nodes.Get(uint32(id))
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return n, nil
}

// Node is Get without the error, for callers that already validated id.
func (p *Program) Node(id NodeID) *Node {
	return p.nodes.Get(uint32(id))
}

// Len reports the number of nodes.
func (p *Program) Len() int { return int(p.nodes.Len()) }

// AddRoot appends a top-level node.
func (p *Program) AddRoot(id NodeID) {
	p.roots = append(p.roots, id)
}

// Roots returns a copy of the top-level node list.
func (p *Program) Roots() []NodeID {
	return slices.Clone(p.roots)
}

// IsRoot reports whether id is a top-level node.
func (p *Program) IsRoot(id NodeID) bool {
	return slices.Contains(p.roots, id)
}

// Clone deep-copies the program. Every NodeID stays valid in the copy and new
// insertions continue the same numbering.
func (p *Program) Clone() *Program {
	out := &Program{
		File:  p.File,
		nodes: p.nodes.Clone(),
		roots: slices.Clone(p.roots),
	}
	data := out.nodes.Slice()
	for i := range data {
		data[i] = data[i].clone()
	}
	return out
}

// Nodes yields every node in ID order.
func (p *Program) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		data := p.nodes.Slice()
		for i := range data {
			if !yield(&data[i]) {
				return
			}
		}
	}
}

// PreOrder yields every node reachable from the roots, parents before
// children, children in field order. IDs that do not resolve are still
// yielded so the consumer can report them.
func (p *Program) PreOrder() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for _, root := range p.roots {
			if !p.preOrder(root, yield) {
				return
			}
		}
	}
}

// PreOrderFrom is PreOrder restricted to the subtree at id.
func (p *Program) PreOrderFrom(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		p.preOrder(id, yield)
	}
}

func (p *Program) preOrder(root NodeID, yield func(NodeID) bool) bool {
	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !yield(id) {
			return false
		}
		n := p.Node(id)
		if n == nil || n.Data == nil {
			continue
		}
		children := n.Data.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return true
}

// PostOrder yields every node reachable from the roots, children before
// parents, children in field order.
func (p *Program) PostOrder() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for _, root := range p.roots {
			if !p.postOrder(root, yield) {
				return
			}
		}
	}
}

// PostOrderFrom is PostOrder restricted to the subtree at id.
func (p *Program) PostOrderFrom(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		p.postOrder(id, yield)
	}
}

type postFrame struct {
	id       NodeID
	children []NodeID
	next     int
}

func (p *Program) postOrder(root NodeID, yield func(NodeID) bool) bool {
	stack := []postFrame{p.frame(root)}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.children) {
			child := top.children[top.next]
			top.next++
			stack = append(stack, p.frame(child))
			continue
		}
		id := top.id
		stack = stack[:len(stack)-1]
		if !yield(id) {
			return false
		}
	}
	return true
}

func (p *Program) frame(id NodeID) postFrame {
	f := postFrame{id: id}
	if n := p.Node(id); n != nil && n.Data != nil {
		f.children = n.Data.Children()
	}
	return f
}
