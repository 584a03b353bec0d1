package sema

import (
	"errors"

	"eidos/internal/ast"
	"eidos/internal/diag"
	"eidos/internal/dsl"
	"eidos/internal/source"
	"eidos/internal/trace"
)

// expand runs every pending embedded block through the registry and turns
// registry failures into diagnostics at the block's location.
func expand(prog *ast.Program, opts Options) (int, error) {
	span := trace.Begin(opts.Tracer, trace.ScopePass, "expand", opts.ParentSpan)
	n, err := opts.Extensions.ExpandAll(prog)
	span.WithExtra("blocks", itoa(n)).End("")
	if err == nil {
		return n, nil
	}
	if errors.Is(err, ast.ErrNodeNotFound) {
		return n, diag.Internal(diag.InternalMissingNode, err, "expanding embedded blocks")
	}
	loc := source.Location{File: prog.File}
	var xe *dsl.ExpandError
	if !errors.As(err, &xe) {
		return n, diag.Semantic(diag.SemaExtensionExpansion, loc, "%v", err).Wrap(err)
	}
	if node := prog.Node(xe.Node); node != nil {
		loc = node.Loc
	}
	if errors.Is(err, dsl.ErrUnknownExtension) {
		return n, diag.Semantic(diag.SemaUnknownExtension, loc, "unknown extension '%s'", xe.Extension).Wrap(err)
	}
	return n, diag.Semantic(diag.SemaExtensionExpansion, loc, "extension '%s' failed: %v", xe.Extension, xe.Err).Wrap(err)
}
