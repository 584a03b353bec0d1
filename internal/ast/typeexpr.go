package ast

import (
	"strings"
)

// TypeExprKind enumerates the forms of a written type annotation.
type TypeExprKind uint8

const (
	TypeExprNamed TypeExprKind = iota // int, Point, Box<T>
	TypeExprArray                     // [T]
	TypeExprTuple                     // (A, B); () is unit
	TypeExprFn                        // (A, B) -> R
)

// TypeExpr is a type annotation as written in source. The checker resolves it
// against the type catalog.
type TypeExpr struct {
	Kind   TypeExprKind `msgpack:"k"`
	Name   string       `msgpack:"n,omitempty"`
	Args   []TypeExpr   `msgpack:"a,omitempty"` // generic arguments of a named type
	Elem   *TypeExpr    `msgpack:"e,omitempty"`
	Elems  []TypeExpr   `msgpack:"es,omitempty"`
	Result *TypeExpr    `msgpack:"r,omitempty"`
}

// Named is a shortcut for a plain named annotation.
func Named(name string, args ...TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: TypeExprNamed, Name: name, Args: args}
}

func ArrayOf(elem *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: TypeExprArray, Elem: elem}
}

func TupleOf(elems ...TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: TypeExprTuple, Elems: elems}
}

func FnOf(params []TypeExpr, result *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: TypeExprFn, Elems: params, Result: result}
}

func (t *TypeExpr) String() string {
	if t == nil {
		return "_"
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *TypeExpr) write(sb *strings.Builder) {
	switch t.Kind {
	case TypeExprNamed:
		sb.WriteString(t.Name)
		if len(t.Args) > 0 {
			sb.WriteByte('<')
			writeTypeList(sb, t.Args)
			sb.WriteByte('>')
		}
	case TypeExprArray:
		sb.WriteByte('[')
		if t.Elem != nil {
			t.Elem.write(sb)
		}
		sb.WriteByte(']')
	case TypeExprTuple, TypeExprFn:
		sb.WriteByte('(')
		writeTypeList(sb, t.Elems)
		sb.WriteByte(')')
		if t.Kind == TypeExprFn {
			sb.WriteString(" -> ")
			sb.WriteString(t.Result.String())
		}
	}
}

func writeTypeList(sb *strings.Builder, list []TypeExpr) {
	for i := range list {
		if i > 0 {
			sb.WriteString(", ")
		}
		list[i].write(sb)
	}
}

// Clone deep-copies the annotation.
func (t *TypeExpr) Clone() *TypeExpr {
	if t == nil {
		return nil
	}
	out := &TypeExpr{Kind: t.Kind, Name: t.Name}
	out.Args = cloneTypeList(t.Args)
	out.Elems = cloneTypeList(t.Elems)
	out.Elem = t.Elem.Clone()
	out.Result = t.Result.Clone()
	return out
}

func cloneTypeList(in []TypeExpr) []TypeExpr {
	if in == nil {
		return nil
	}
	out := make([]TypeExpr, len(in))
	for i := range in {
		out[i] = *in[i].Clone()
	}
	return out
}
