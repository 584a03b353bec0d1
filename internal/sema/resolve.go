package sema

import (
	"fmt"
	"slices"

	"eidos/internal/ast"
	"eidos/internal/diag"
	"eidos/internal/types"
)

// unknownTypeError names the first annotation component missing from the
// type catalog.
type unknownTypeError struct{ name string }

func (e *unknownTypeError) Error() string { return fmt.Sprintf("unknown type '%s'", e.name) }

// resolve turns a written annotation into a TypeID. Names listed in tparams
// become type parameters; "?" is the inference placeholder.
func (c *checker) resolve(te *ast.TypeExpr, tparams []string) (types.TypeID, error) {
	if te == nil {
		return c.env.NewUnknown(), nil
	}
	switch te.Kind {
	case ast.TypeExprNamed:
		if te.Name == "?" || te.Name == "_" {
			return c.env.NewUnknown(), nil
		}
		if slices.Contains(tparams, te.Name) {
			return c.env.NewParam(te.Name), nil
		}
		id, ok := c.env.TypeByName(te.Name)
		if !ok {
			return types.NoTypeID, &unknownTypeError{name: te.Name}
		}
		// generic arguments are validated but nominal types are compared by name
		for i := range te.Args {
			if _, err := c.resolve(&te.Args[i], tparams); err != nil {
				return types.NoTypeID, err
			}
		}
		return id, nil
	case ast.TypeExprArray:
		elem, err := c.resolve(te.Elem, tparams)
		if err != nil {
			return types.NoTypeID, err
		}
		return c.env.NewArray(elem), nil
	case ast.TypeExprTuple:
		if len(te.Elems) == 0 {
			return c.b.Unit, nil
		}
		elems, err := c.resolveList(te.Elems, tparams)
		if err != nil {
			return types.NoTypeID, err
		}
		return c.env.NewTuple(elems), nil
	case ast.TypeExprFn:
		params, err := c.resolveList(te.Elems, tparams)
		if err != nil {
			return types.NoTypeID, err
		}
		result := c.b.Unit
		if te.Result != nil {
			if result, err = c.resolve(te.Result, tparams); err != nil {
				return types.NoTypeID, err
			}
		}
		return c.env.NewFn(params, result), nil
	default:
		return types.NoTypeID, fmt.Errorf("annotation kind %d", te.Kind)
	}
}

func (c *checker) resolveList(list []ast.TypeExpr, tparams []string) ([]types.TypeID, error) {
	out := make([]types.TypeID, 0, len(list))
	for i := range list {
		t, err := c.resolve(&list[i], tparams)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// resolveAt is resolve with failures reported at n.
func (c *checker) resolveAt(te *ast.TypeExpr, tparams []string, n *ast.Node) (types.TypeID, error) {
	t, err := c.resolve(te, tparams)
	if err != nil {
		return types.NoTypeID, diag.Typef(diag.TypeUnknownTypeName, n.Loc, "%s in annotation '%s'", err.Error(), te.String()).Wrap(err)
	}
	return t, nil
}
