package sema

import (
	"eidos/internal/ast"
	"eidos/internal/diag"
	"eidos/internal/trace"
	"eidos/internal/types"
)

// CheckResult is the outcome of a successful type-checking pass.
type CheckResult struct {
	// Program is the expanded clone with Node.Type filled for every node.
	// Declaring nodes (let, param, field) carry the declared type there.
	Program *ast.Program
	Env     *types.Env
	// Types maps every node to the type of the node itself; a let is unit.
	Types map[ast.NodeID]types.TypeID
	// Declared maps let, param, func and field nodes to the type they bind.
	Declared map[ast.NodeID]types.TypeID
	Expanded int
}

// TypeOf returns the inferred type of node id.
func (r *CheckResult) TypeOf(id ast.NodeID) (types.TypeID, bool) {
	t, ok := r.Types[id]
	return t, ok
}

// Label renders the inferred type of node id, or "" when it has none.
func (r *CheckResult) Label(id ast.NodeID) string {
	t, ok := r.Types[id]
	if !ok {
		return ""
	}
	return r.Env.Label(t)
}

type checker struct {
	prog *ast.Program
	env  *types.Env
	b    types.Builtins
	opts Options

	nodeTypes map[ast.NodeID]types.TypeID
	declared  map[ast.NodeID]types.TypeID

	// filled by collect
	enclosing map[ast.NodeID]ast.NodeID // return -> func
	paramOf   map[ast.NodeID]ast.NodeID // param -> func
	tparams   map[ast.NodeID][]string   // annotated node -> type parameters in scope
	callees   map[ast.NodeID]bool
	funcs     []ast.NodeID
	typeDefs  []ast.NodeID

	defTypes  map[ast.NodeID]types.TypeID // typedef -> registered type
	defErrors map[ast.NodeID]error        // typedef problems surfaced at the node
	library   map[string]types.TypeID     // catalog functions resolved on first use
	builtins  map[string]types.TypeID     // extension builtins
}

// Check infers and checks types in prog. prog itself is never modified.
func Check(prog *ast.Program, opts Options) (*CheckResult, error) {
	if prog == nil {
		return nil, diag.Internal(diag.InternalBadInput, nil, "check: nil program")
	}
	opts = opts.withDefaults()
	span := trace.Begin(opts.Tracer, trace.ScopePass, "check", opts.ParentSpan)
	defer span.End("")
	opts.ParentSpan = span.ID()

	clone := prog.Clone()
	expanded, err := expand(clone, opts)
	if err != nil {
		return nil, err
	}

	env := types.NewEnv()
	c := &checker{
		prog:      clone,
		env:       env,
		b:         env.Builtins(),
		opts:      opts,
		nodeTypes: make(map[ast.NodeID]types.TypeID, clone.Len()),
		declared:  make(map[ast.NodeID]types.TypeID),
		enclosing: make(map[ast.NodeID]ast.NodeID),
		paramOf:   make(map[ast.NodeID]ast.NodeID),
		tparams:   make(map[ast.NodeID][]string),
		callees:   make(map[ast.NodeID]bool),
		defTypes:  make(map[ast.NodeID]types.TypeID),
		defErrors: make(map[ast.NodeID]error),
		library:   make(map[string]types.TypeID),
		builtins:  make(map[string]types.TypeID),
	}

	for _, root := range clone.Roots() {
		if err := c.collect(root, ast.NoNodeID, nil); err != nil {
			return nil, err
		}
	}
	c.registerTypes()
	c.registerFunctions()

	for id := range clone.PostOrder() {
		n, err := clone.Get(id)
		if err != nil {
			return nil, diag.Internal(diag.InternalMissingNode, err, "node %s", id)
		}
		t, err := c.infer(n)
		if err != nil {
			return nil, err
		}
		c.nodeTypes[id] = t
		n.Type = c.typeInfo(n, t)
	}
	span.WithExtra("nodes", itoa(clone.Len())).WithExtra("types", itoa(env.Len()))

	return &CheckResult{
		Program:  clone,
		Env:      env,
		Types:    c.nodeTypes,
		Declared: c.declared,
		Expanded: expanded,
	}, nil
}

// typeInfo picks what the node's annotation slot shows: declarations show
// the bound type and are Explicit when written in source.
func (c *checker) typeInfo(n *ast.Node, t types.TypeID) ast.TypeInfo {
	state := ast.TypeResolved
	switch d := n.Data.(type) {
	case *ast.Let:
		t = c.declared[n.ID]
		if d.Annot != nil {
			state = ast.TypeExplicit
		}
	case *ast.Param:
		t = c.declared[n.ID]
		state = ast.TypeExplicit
	case *ast.Field:
		t = c.declared[n.ID]
		state = ast.TypeExplicit
	case *ast.Func:
		if d.Result != nil {
			state = ast.TypeExplicit
		}
	case *ast.TypeDef:
		state = ast.TypeExplicit
	}
	return ast.TypeInfo{State: state, Type: t}
}

// collect records the structural facts the post-order walk cannot see from a
// single node: enclosing functions, callee positions and type parameters.
func (c *checker) collect(id, fn ast.NodeID, tparams []string) error {
	n, err := c.prog.Get(id)
	if err != nil {
		return diag.Internal(diag.InternalMissingNode, err, "node %s", id)
	}
	switch d := n.Data.(type) {
	case *ast.Func:
		c.funcs = append(c.funcs, id)
		if len(d.TypeParams) > 0 {
			tparams = append(append([]string(nil), tparams...), d.TypeParams...)
		}
		c.tparams[id] = tparams
		for _, p := range d.Params {
			c.paramOf[p] = id
		}
		fn = id
	case *ast.TypeDef:
		c.typeDefs = append(c.typeDefs, id)
		if len(d.TypeParams) > 0 {
			tparams = append(append([]string(nil), tparams...), d.TypeParams...)
		}
		c.tparams[id] = tparams
	case *ast.Return:
		if fn.IsValid() {
			c.enclosing[id] = fn
		}
	case *ast.Call:
		c.callees[d.Callee] = true
	case *ast.Let, *ast.Param, *ast.Field, *ast.Variant:
		if len(tparams) > 0 {
			c.tparams[id] = tparams
		}
	}
	for _, child := range n.Data.Children() {
		if err := c.collect(child, fn, tparams); err != nil {
			return err
		}
	}
	return nil
}
