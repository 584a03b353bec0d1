package ast

import (
	"slices"
)

// LitKind enumerates literal forms.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitChar
	LitString
	LitUnit
	LitArray
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitBool:
		return "bool"
	case LitChar:
		return "char"
	case LitString:
		return "string"
	case LitUnit:
		return "unit"
	case LitArray:
		return "array"
	}
	return "?"
}

// Literal holds a constant value; array literals own their element nodes.
type Literal struct {
	Lit   LitKind  `msgpack:"lit"`
	Int   int64    `msgpack:"i,omitempty"`
	Float float64  `msgpack:"f,omitempty"`
	Bool  bool     `msgpack:"b,omitempty"`
	Char  rune     `msgpack:"c,omitempty"`
	Str   string   `msgpack:"s,omitempty"`
	Elems []NodeID `msgpack:"elems,omitempty"`
}

func (*Literal) Kind() Kind           { return KindLiteral }
func (l *Literal) Children() []NodeID { return l.Elems }
func (l *Literal) clone() Data {
	out := *l
	out.Elems = slices.Clone(l.Elems)
	return &out
}

// Ident is a reference to a named binding.
type Ident struct {
	Name string `msgpack:"name"`
}

func (*Ident) Kind() Kind         { return KindIdent }
func (*Ident) Children() []NodeID { return nil }
func (i *Ident) clone() Data      { out := *i; return &out }

type Unary struct {
	Op      UnaryOp `msgpack:"op"`
	Operand NodeID  `msgpack:"x"`
}

func (*Unary) Kind() Kind           { return KindUnary }
func (u *Unary) Children() []NodeID { return []NodeID{u.Operand} }
func (u *Unary) clone() Data        { out := *u; return &out }

type Binary struct {
	Op    BinaryOp `msgpack:"op"`
	Left  NodeID   `msgpack:"l"`
	Right NodeID   `msgpack:"r"`
}

func (*Binary) Kind() Kind           { return KindBinary }
func (b *Binary) Children() []NodeID { return []NodeID{b.Left, b.Right} }
func (b *Binary) clone() Data        { out := *b; return &out }

// If is a conditional; Else is NoNodeID when absent.
type If struct {
	Cond NodeID `msgpack:"cond"`
	Then NodeID `msgpack:"then"`
	Else NodeID `msgpack:"else,omitempty"`
}

func (*If) Kind() Kind { return KindIf }
func (i *If) Children() []NodeID {
	if i.Else.IsValid() {
		return []NodeID{i.Cond, i.Then, i.Else}
	}
	return []NodeID{i.Cond, i.Then}
}
func (i *If) clone() Data { out := *i; return &out }

// Block is a statement list with an optional trailing expression.
type Block struct {
	Stmts []NodeID `msgpack:"stmts,omitempty"`
	Tail  NodeID   `msgpack:"tail,omitempty"`
}

func (*Block) Kind() Kind { return KindBlock }
func (b *Block) Children() []NodeID {
	out := make([]NodeID, 0, len(b.Stmts)+1)
	out = append(out, b.Stmts...)
	if b.Tail.IsValid() {
		out = append(out, b.Tail)
	}
	return out
}
func (b *Block) clone() Data {
	out := *b
	out.Stmts = slices.Clone(b.Stmts)
	return &out
}

type Call struct {
	Callee NodeID   `msgpack:"callee"`
	Args   []NodeID `msgpack:"args,omitempty"`
}

func (*Call) Kind() Kind { return KindCall }
func (c *Call) Children() []NodeID {
	out := make([]NodeID, 0, len(c.Args)+1)
	out = append(out, c.Callee)
	return append(out, c.Args...)
}
func (c *Call) clone() Data {
	out := *c
	out.Args = slices.Clone(c.Args)
	return &out
}

type Assign struct {
	Target NodeID `msgpack:"target"`
	Value  NodeID `msgpack:"value"`
}

func (*Assign) Kind() Kind           { return KindAssign }
func (a *Assign) Children() []NodeID { return []NodeID{a.Target, a.Value} }
func (a *Assign) clone() Data        { out := *a; return &out }

type While struct {
	Cond NodeID `msgpack:"cond"`
	Body NodeID `msgpack:"body"`
}

func (*While) Kind() Kind           { return KindWhile }
func (w *While) Children() []NodeID { return []NodeID{w.Cond, w.Body} }
func (w *While) clone() Data        { out := *w; return &out }

// Return exits the enclosing function; Value is NoNodeID for a bare return.
type Return struct {
	Value NodeID `msgpack:"value,omitempty"`
}

func (*Return) Kind() Kind { return KindReturn }
func (r *Return) Children() []NodeID {
	if r.Value.IsValid() {
		return []NodeID{r.Value}
	}
	return nil
}
func (r *Return) clone() Data { out := *r; return &out }
