package sema

import (
	"eidos/internal/ast"
	"eidos/internal/diag"
	"eidos/internal/source"
	"eidos/internal/types"
)

// infer computes the type of n. Children were inferred earlier in the walk,
// so their types are read from nodeTypes.
func (c *checker) infer(n *ast.Node) (types.TypeID, error) {
	switch d := n.Data.(type) {
	case *ast.Literal:
		return c.inferLiteral(n, d)
	case *ast.Ident:
		return c.inferIdent(n, d)
	case *ast.Binary:
		return c.inferBinary(n, d)
	case *ast.Unary:
		return c.inferUnary(n, d)
	case *ast.If:
		return c.inferIf(n, d)
	case *ast.Block:
		if d.Tail.IsValid() {
			return c.typeOf(d.Tail)
		}
		return c.b.Unit, nil
	case *ast.Let:
		return c.inferLet(n, d)
	case *ast.Param:
		return c.inferParam(n, d)
	case *ast.Assign:
		return c.inferAssign(n, d)
	case *ast.Func:
		return c.inferFunc(n, d)
	case *ast.Call:
		return c.inferCall(n, d)
	case *ast.While:
		cond, err := c.typeOf(d.Cond)
		if err != nil {
			return types.NoTypeID, err
		}
		if !c.isBoolish(cond) {
			return types.NoTypeID, diag.Typef(diag.TypeConditionNotBool, n.Loc, "while condition must be bool, got %s", c.env.Label(cond))
		}
		return c.b.Unit, nil
	case *ast.Return:
		return c.inferReturn(n, d)
	case *ast.TypeDef:
		if err := c.defErrors[n.ID]; err != nil {
			return types.NoTypeID, err
		}
		return c.defTypes[n.ID], nil
	case *ast.Field:
		t, err := c.resolveAt(d.Annot, c.tparams[n.ID], n)
		if err != nil {
			return types.NoTypeID, err
		}
		// methods see fields by bare name, as in the analyzer
		c.env.SetBinding(d.Name, t)
		c.declared[n.ID] = t
		return t, nil
	case *ast.Variant:
		if _, bad := c.variantType(d, c.tparams[n.ID]); bad != nil {
			_, err := c.resolveAt(bad, c.tparams[n.ID], n)
			return types.NoTypeID, err
		}
		return c.env.NewUnknown(), nil
	case *ast.Embedded:
		if d.Expanded.IsValid() {
			return c.typeOf(d.Expanded)
		}
		return c.env.NewUnknown(), nil
	default:
		return c.env.NewUnknown(), nil
	}
}

// typeOf returns the already inferred type of a child.
func (c *checker) typeOf(id ast.NodeID) (types.TypeID, error) {
	t, ok := c.nodeTypes[id]
	if !ok {
		return types.NoTypeID, diag.Internal(diag.InternalMissingNode, nil, "node %s has no inferred type", id)
	}
	return t, nil
}

func (c *checker) locOf(id ast.NodeID) source.Location {
	if n := c.prog.Node(id); n != nil {
		return n.Loc
	}
	return source.Location{File: c.prog.File}
}

func (c *checker) poisoned(ids ...types.TypeID) bool {
	for _, t := range ids {
		if c.env.IsError(t) {
			return true
		}
	}
	return false
}

// isBoolish accepts bool and the placeholders.
func (c *checker) isBoolish(t types.TypeID) bool {
	return c.env.IsBool(t) || c.env.Family(t) == types.FamilyPlaceholder
}

func (c *checker) inferLiteral(n *ast.Node, lit *ast.Literal) (types.TypeID, error) {
	switch lit.Lit {
	case ast.LitInt:
		return c.b.Int, nil
	case ast.LitFloat:
		return c.b.Float, nil
	case ast.LitBool:
		return c.b.Bool, nil
	case ast.LitChar:
		return c.b.Char, nil
	case ast.LitString:
		return c.b.String, nil
	case ast.LitUnit:
		return c.b.Unit, nil
	case ast.LitArray:
		if len(lit.Elems) == 0 {
			return c.env.NewArray(c.env.NewUnknown()), nil
		}
		first, err := c.typeOf(lit.Elems[0])
		if err != nil {
			return types.NoTypeID, err
		}
		if c.poisoned(first) {
			return c.env.NewError(), nil
		}
		for i, elem := range lit.Elems[1:] {
			et, err := c.typeOf(elem)
			if err != nil {
				return types.NoTypeID, err
			}
			if !c.env.Assignable(et, first) {
				return types.NoTypeID, diag.Typef(diag.TypeArrayElement, c.locOf(elem),
					"array element %d has type %s, expected %s", i+2, c.env.Label(et), c.env.Label(first))
			}
		}
		return c.env.NewArray(first), nil
	default:
		return c.env.NewUnknown(), nil
	}
}

func (c *checker) inferIdent(n *ast.Node, id *ast.Ident) (types.TypeID, error) {
	if t, ok := c.env.Binding(id.Name); ok {
		return t, nil
	}
	if c.callees[n.ID] {
		t, ok, err := c.libraryFunction(id.Name, n)
		if err != nil {
			return types.NoTypeID, err
		}
		if ok {
			return t, nil
		}
	}
	return types.NoTypeID, diag.Typef(diag.TypeUndefinedBinding, n.Loc, "undefined variable '%s'", id.Name)
}

func (c *checker) inferBinary(n *ast.Node, bin *ast.Binary) (types.TypeID, error) {
	lt, err := c.typeOf(bin.Left)
	if err != nil {
		return types.NoTypeID, err
	}
	rt, err := c.typeOf(bin.Right)
	if err != nil {
		return types.NoTypeID, err
	}
	if c.poisoned(lt, rt) {
		return c.env.NewError(), nil
	}
	switch {
	case bin.Op.IsArithmetic():
		if c.env.IsNumeric(lt) && c.env.IsNumeric(rt) {
			if c.env.IsFloat(lt) || c.env.IsFloat(rt) {
				return c.b.Float, nil
			}
			return c.b.Int, nil
		}
		if bin.Op == ast.BinaryAdd && (c.env.IsString(lt) || c.env.IsString(rt)) && c.concatenable(lt) && c.concatenable(rt) {
			return c.b.String, nil
		}
		if c.env.IsUnknown(lt) || c.env.IsUnknown(rt) {
			return c.env.NewUnknown(), nil
		}
	case bin.Op.IsComparison():
		if c.env.Comparable(lt, rt) {
			return c.b.Bool, nil
		}
	case bin.Op.IsLogical():
		if c.isBoolish(lt) && c.isBoolish(rt) {
			return c.b.Bool, nil
		}
	}
	return types.NoTypeID, diag.Typef(diag.TypeBinaryOperands, n.Loc,
		"operator '%s' cannot be applied to %s and %s", bin.Op, c.env.Label(lt), c.env.Label(rt))
}

// concatenable: string on either side of + accepts a string or char partner.
func (c *checker) concatenable(t types.TypeID) bool {
	f := c.env.Family(t)
	return f == types.FamilyString || f == types.FamilyChar
}

func (c *checker) inferUnary(n *ast.Node, un *ast.Unary) (types.TypeID, error) {
	t, err := c.typeOf(un.Operand)
	if err != nil {
		return types.NoTypeID, err
	}
	if c.poisoned(t) {
		return c.env.NewError(), nil
	}
	switch un.Op {
	case ast.UnaryNeg:
		if c.env.IsNumeric(t) || c.env.IsUnknown(t) {
			return t, nil
		}
	case ast.UnaryNot:
		if c.isBoolish(t) {
			return c.b.Bool, nil
		}
	}
	return types.NoTypeID, diag.Typef(diag.TypeUnaryOperand, n.Loc, "operator '%s' cannot be applied to %s", un.Op, c.env.Label(t))
}

func (c *checker) inferIf(n *ast.Node, cond *ast.If) (types.TypeID, error) {
	ct, err := c.typeOf(cond.Cond)
	if err != nil {
		return types.NoTypeID, err
	}
	if c.poisoned(ct) {
		return c.env.NewError(), nil
	}
	if !c.isBoolish(ct) {
		return types.NoTypeID, diag.Typef(diag.TypeConditionNotBool, c.locOf(cond.Cond), "condition must be bool, got %s", c.env.Label(ct))
	}
	tt, err := c.typeOf(cond.Then)
	if err != nil {
		return types.NoTypeID, err
	}
	if !cond.Else.IsValid() {
		return c.b.Unit, nil
	}
	et, err := c.typeOf(cond.Else)
	if err != nil {
		return types.NoTypeID, err
	}
	if c.poisoned(tt, et) {
		return c.env.NewError(), nil
	}
	// first direction that holds wins; this is not a join
	if c.env.Assignable(tt, et) {
		return tt, nil
	}
	if c.env.Assignable(et, tt) {
		return et, nil
	}
	return types.NoTypeID, diag.Typef(diag.TypeBranchMismatch, n.Loc,
		"branch type mismatch: then branch is %s, else branch is %s", c.env.Label(tt), c.env.Label(et))
}

func (c *checker) inferLet(n *ast.Node, let *ast.Let) (types.TypeID, error) {
	init := c.env.NewUnknown()
	if let.Init.IsValid() {
		t, err := c.typeOf(let.Init)
		if err != nil {
			return types.NoTypeID, err
		}
		init = t
	}
	bound := init
	if let.Annot != nil {
		annot, err := c.resolveAt(let.Annot, c.tparams[n.ID], n)
		if err != nil {
			return types.NoTypeID, err
		}
		if let.Init.IsValid() && !c.env.Assignable(init, annot) {
			return types.NoTypeID, diag.Typef(diag.TypeMismatch, n.Loc,
				"cannot initialize '%s' of type %s with %s", let.Name, c.env.Label(annot), c.env.Label(init))
		}
		bound = annot
	} else if c.env.IsUnknown(init) {
		return types.NoTypeID, diag.Typef(diag.TypeUnresolvedDecl, n.Loc,
			"cannot infer the type of '%s': add an annotation or an initializer", let.Name)
	}
	c.env.SetBinding(let.Name, bound)
	c.declared[n.ID] = bound
	return c.b.Unit, nil
}

func (c *checker) inferParam(n *ast.Node, p *ast.Param) (types.TypeID, error) {
	if p.Annot == nil {
		fnName := "?"
		if fn := c.prog.Node(c.paramOf[n.ID]); fn != nil {
			if f, ok := fn.Data.(*ast.Func); ok {
				fnName = f.Name
			}
		}
		return types.NoTypeID, diag.Typef(diag.TypeParamAnnotation, n.Loc,
			"parameter '%s' of function '%s' needs a type annotation", p.Name, fnName)
	}
	t, err := c.resolveAt(p.Annot, c.tparams[n.ID], n)
	if err != nil {
		return types.NoTypeID, err
	}
	c.env.SetBinding(p.Name, t)
	c.declared[n.ID] = t
	return t, nil
}

func (c *checker) inferAssign(n *ast.Node, as *ast.Assign) (types.TypeID, error) {
	target, err := c.typeOf(as.Target)
	if err != nil {
		return types.NoTypeID, err
	}
	value, err := c.typeOf(as.Value)
	if err != nil {
		return types.NoTypeID, err
	}
	if !c.env.Assignable(value, target) {
		return types.NoTypeID, diag.Typef(diag.TypeMismatch, n.Loc,
			"cannot assign %s to a target of type %s", c.env.Label(value), c.env.Label(target))
	}
	return c.b.Unit, nil
}

func (c *checker) inferFunc(n *ast.Node, fn *ast.Func) (types.TypeID, error) {
	tparams := c.tparams[n.ID]
	result, err := c.resultType(fn, tparams)
	if err != nil {
		return types.NoTypeID, c.annotationError(n, fn.Result, err)
	}
	params := make([]types.TypeID, 0, len(fn.Params))
	for _, pid := range fn.Params {
		pt, err := c.typeOf(pid)
		if err != nil {
			return types.NoTypeID, err
		}
		params = append(params, pt)
	}
	if fn.Body.IsValid() && !c.endsInReturn(fn.Body) {
		body, err := c.typeOf(fn.Body)
		if err != nil {
			return types.NoTypeID, err
		}
		if !c.env.Assignable(body, result) {
			return types.NoTypeID, diag.Typef(diag.TypeReturnMismatch, c.locOf(fn.Body),
				"function '%s' returns %s but its body has type %s", fn.Name, c.env.Label(result), c.env.Label(body))
		}
	}
	t := c.env.NewFn(params, result)
	c.env.SetBinding(fn.Name, t)
	c.declared[n.ID] = t
	return t, nil
}

func (c *checker) annotationError(n *ast.Node, te *ast.TypeExpr, err error) error {
	return diag.Typef(diag.TypeUnknownTypeName, n.Loc, "%s in annotation '%s'", err.Error(), te.String()).Wrap(err)
}

// endsInReturn reports a block whose last statement is a return and which
// has no trailing expression.
func (c *checker) endsInReturn(body ast.NodeID) bool {
	n := c.prog.Node(body)
	if n == nil {
		return false
	}
	b, ok := n.Data.(*ast.Block)
	if !ok || b.Tail.IsValid() || len(b.Stmts) == 0 {
		return false
	}
	last := c.prog.Node(b.Stmts[len(b.Stmts)-1])
	return last != nil && last.Kind() == ast.KindReturn
}

func (c *checker) inferCall(n *ast.Node, call *ast.Call) (types.TypeID, error) {
	ct, err := c.typeOf(call.Callee)
	if err != nil {
		return types.NoTypeID, err
	}
	if c.poisoned(ct) {
		return c.env.NewError(), nil
	}
	info, ok := c.env.FnInfo(ct)
	if !ok {
		if c.env.IsUnknown(ct) {
			return c.env.NewUnknown(), nil
		}
		return types.NoTypeID, diag.Typef(diag.TypeNotCallable, n.Loc, "cannot call a value of type %s", c.env.Label(ct))
	}
	if len(call.Args) != len(info.Params) {
		return types.NoTypeID, diag.Typef(diag.TypeArgCount, n.Loc,
			"function of type %s expects %d argument(s), got %d", c.env.Label(ct), len(info.Params), len(call.Args))
	}
	for i, arg := range call.Args {
		at, err := c.typeOf(arg)
		if err != nil {
			return types.NoTypeID, err
		}
		if !c.env.Assignable(at, info.Params[i]) {
			return types.NoTypeID, diag.Typef(diag.TypeArgMismatch, c.locOf(arg),
				"argument %d: expected %s, got %s", i+1, c.env.Label(info.Params[i]), c.env.Label(at))
		}
	}
	return info.Result, nil
}

func (c *checker) inferReturn(n *ast.Node, ret *ast.Return) (types.TypeID, error) {
	value := c.b.Unit
	if ret.Value.IsValid() {
		t, err := c.typeOf(ret.Value)
		if err != nil {
			return types.NoTypeID, err
		}
		value = t
	}
	fnID, ok := c.enclosing[n.ID]
	if !ok {
		return types.NoTypeID, diag.Typef(diag.TypeReturnOutsideFn, n.Loc, "return outside of function")
	}
	fnNode := c.prog.Node(fnID)
	fn := fnNode.Data.(*ast.Func)
	expected, err := c.resultType(fn, c.tparams[fnID])
	if err != nil {
		return types.NoTypeID, c.annotationError(fnNode, fn.Result, err)
	}
	if !c.env.Assignable(value, expected) {
		return types.NoTypeID, diag.Typef(diag.TypeReturnMismatch, n.Loc,
			"return type mismatch: function '%s' returns %s, got %s", fn.Name, c.env.Label(expected), c.env.Label(value))
	}
	return c.env.NewUnknown(), nil
}
