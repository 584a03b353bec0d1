package dsl

import (
	"errors"
	"fmt"

	"eidos/internal/ast"
)

// ErrNotEmbedded is returned when Expand is called on another node kind.
var ErrNotEmbedded = errors.New("node is not an embedded block")

// maxNesting bounds extensions that emit further embedded blocks.
const maxNesting = 16

// ExpandError attaches the embedded block to an expansion failure.
type ExpandError struct {
	Node      ast.NodeID
	Extension string
	Err       error
}

func (e *ExpandError) Error() string {
	return fmt.Sprintf("embedded block %s (%s): %v", e.Node, e.Extension, e.Err)
}

func (e *ExpandError) Unwrap() error { return e.Err }

// Expand materializes the embedded block id. The produced subtree root takes
// the block's location. Already expanded blocks are left alone.
func (r *Registry) Expand(prog *ast.Program, id ast.NodeID) error {
	n, err := prog.Get(id)
	if err != nil {
		return err
	}
	emb, ok := n.Data.(*ast.Embedded)
	if !ok {
		return fmt.Errorf("%w: %s is %s", ErrNotEmbedded, id, n.Kind())
	}
	if emb.Expanded.IsValid() {
		return nil
	}
	ext, ok := r.Get(emb.Extension)
	if !ok {
		return &ExpandError{Node: id, Extension: emb.Extension, Err: ErrUnknownExtension}
	}
	loc := n.Loc
	root, err := ext.Process(emb.Content, prog)
	if err != nil {
		return &ExpandError{Node: id, Extension: emb.Extension, Err: err}
	}
	rn, err := prog.Get(root)
	if err != nil {
		return &ExpandError{Node: id, Extension: emb.Extension, Err: err}
	}
	rn.Loc = loc
	// the arena may have grown while processing; refetch the block
	prog.Node(id).Data.(*ast.Embedded).Expanded = root
	return nil
}

// ExpandAll expands every reachable embedded block, including blocks produced
// by other expansions, and returns how many were expanded.
func (r *Registry) ExpandAll(prog *ast.Program) (int, error) {
	total := 0
	for range maxNesting {
		pending := pendingBlocks(prog)
		if len(pending) == 0 {
			return total, nil
		}
		for _, id := range pending {
			if err := r.Expand(prog, id); err != nil {
				return total, err
			}
			total++
		}
	}
	if len(pendingBlocks(prog)) > 0 {
		return total, fmt.Errorf("embedded blocks nested deeper than %d levels", maxNesting)
	}
	return total, nil
}

func pendingBlocks(prog *ast.Program) []ast.NodeID {
	var out []ast.NodeID
	for id := range prog.PreOrder() {
		n := prog.Node(id)
		if n == nil {
			continue
		}
		if emb, ok := n.Data.(*ast.Embedded); ok && !emb.Expanded.IsValid() {
			out = append(out, id)
		}
	}
	return out
}
