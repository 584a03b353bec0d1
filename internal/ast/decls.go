package ast

import (
	"slices"

	"eidos/internal/types"
)

// Let declares a variable. Variables are always mutable; Annot and Init are
// optional.
type Let struct {
	Name  string    `msgpack:"name"`
	Annot *TypeExpr `msgpack:"annot,omitempty"`
	Init  NodeID    `msgpack:"init,omitempty"`
}

func (*Let) Kind() Kind { return KindLet }
func (l *Let) Children() []NodeID {
	if l.Init.IsValid() {
		return []NodeID{l.Init}
	}
	return nil
}
func (l *Let) clone() Data {
	out := *l
	out.Annot = l.Annot.Clone()
	return &out
}

// Param is a function parameter. It is a node of its own so the function can
// reference it by ID and the checker can visit it before the body.
type Param struct {
	Name  string    `msgpack:"name"`
	Annot *TypeExpr `msgpack:"annot,omitempty"`
}

func (*Param) Kind() Kind         { return KindParam }
func (*Param) Children() []NodeID { return nil }
func (p *Param) clone() Data {
	out := *p
	out.Annot = p.Annot.Clone()
	return &out
}

// Func is a function definition. Result is nil when the return type is
// omitted (unit).
type Func struct {
	Name       string    `msgpack:"name"`
	TypeParams []string  `msgpack:"tparams,omitempty"`
	Params     []NodeID  `msgpack:"params,omitempty"`
	Result     *TypeExpr `msgpack:"result,omitempty"`
	Body       NodeID    `msgpack:"body"`
	Exported   bool      `msgpack:"pub,omitempty"`
}

func (*Func) Kind() Kind { return KindFunc }
func (f *Func) Children() []NodeID {
	out := make([]NodeID, 0, len(f.Params)+1)
	out = append(out, f.Params...)
	if f.Body.IsValid() {
		out = append(out, f.Body)
	}
	return out
}
func (f *Func) clone() Data {
	out := *f
	out.TypeParams = slices.Clone(f.TypeParams)
	out.Params = slices.Clone(f.Params)
	out.Result = f.Result.Clone()
	return &out
}

// TypeForm distinguishes the shapes of a type definition.
type TypeForm uint8

const (
	TypeStruct TypeForm = iota
	TypeEnum
	TypeAlias
)

func (f TypeForm) String() string {
	switch f {
	case TypeStruct:
		return "struct"
	case TypeEnum:
		return "enum"
	case TypeAlias:
		return "alias"
	}
	return "?"
}

// TypeDef is a struct, enum or alias definition. Members are Field nodes for
// structs and Variant nodes for enums; Methods are Func nodes.
type TypeDef struct {
	Form       TypeForm  `msgpack:"form"`
	Name       string    `msgpack:"name"`
	TypeParams []string  `msgpack:"tparams,omitempty"`
	Members    []NodeID  `msgpack:"members,omitempty"`
	Methods    []NodeID  `msgpack:"methods,omitempty"`
	Alias      *TypeExpr `msgpack:"alias,omitempty"`
	Exported   bool      `msgpack:"pub,omitempty"`
}

func (*TypeDef) Kind() Kind { return KindTypeDef }
func (t *TypeDef) Children() []NodeID {
	out := make([]NodeID, 0, len(t.Members)+len(t.Methods))
	out = append(out, t.Members...)
	return append(out, t.Methods...)
}
func (t *TypeDef) clone() Data {
	out := *t
	out.TypeParams = slices.Clone(t.TypeParams)
	out.Members = slices.Clone(t.Members)
	out.Methods = slices.Clone(t.Methods)
	out.Alias = t.Alias.Clone()
	return &out
}

// Field is a struct member.
type Field struct {
	Name     string    `msgpack:"name"`
	Annot    *TypeExpr `msgpack:"annot"`
	Mutable  bool      `msgpack:"mut,omitempty"`
	Exported bool      `msgpack:"pub,omitempty"`
}

func (*Field) Kind() Kind         { return KindField }
func (*Field) Children() []NodeID { return nil }
func (f *Field) clone() Data {
	out := *f
	out.Annot = f.Annot.Clone()
	return &out
}

// FieldSpec is a named element of a struct-like variant payload.
type FieldSpec struct {
	Name string   `msgpack:"name"`
	Type TypeExpr `msgpack:"type"`
}

// Variant is an enum alternative with an optional payload.
type Variant struct {
	Name    string            `msgpack:"name"`
	Payload types.PayloadKind `msgpack:"payload,omitempty"`
	Elems   []TypeExpr        `msgpack:"elems,omitempty"`
	Fields  []FieldSpec       `msgpack:"fields,omitempty"`
}

func (*Variant) Kind() Kind         { return KindVariant }
func (*Variant) Children() []NodeID { return nil }
func (v *Variant) clone() Data {
	out := *v
	out.Elems = cloneTypeList(v.Elems)
	if v.Fields != nil {
		out.Fields = make([]FieldSpec, len(v.Fields))
		for i, f := range v.Fields {
			out.Fields[i] = FieldSpec{Name: f.Name, Type: *f.Type.Clone()}
		}
	}
	return &out
}

// Embedded is an opaque block written in another notation. Expanded is set
// once an extension has materialized the block into a subtree.
type Embedded struct {
	Extension string `msgpack:"ext"`
	Content   string `msgpack:"content"`
	Expanded  NodeID `msgpack:"expanded,omitempty"`
}

func (*Embedded) Kind() Kind { return KindEmbedded }
func (e *Embedded) Children() []NodeID {
	if e.Expanded.IsValid() {
		return []NodeID{e.Expanded}
	}
	return nil
}
func (e *Embedded) clone() Data { out := *e; return &out }
