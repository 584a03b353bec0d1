// Package stdlib is the library registry: modules that register function
// signatures and type declarations for the type checker to consult. Nothing
// here executes library code.
package stdlib

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"eidos/internal/ast"
)

// Purity tells whether a library function has side effects.
type Purity uint8

const (
	Pure Purity = iota
	Effectful
)

func (p Purity) String() string {
	if p == Effectful {
		return "effectful"
	}
	return "pure"
}

// Param is a named parameter with its type written as in source.
type Param struct {
	Name string
	Type *ast.TypeExpr
}

// Function is a library function signature.
type Function struct {
	Module string
	Name   string
	Purity Purity
	Params []Param
	Result *ast.TypeExpr // nil means unit
	Doc    string
}

// FullName returns module::name.
func (f *Function) FullName() string {
	if f.Module == "" {
		return f.Name
	}
	return f.Module + "::" + f.Name
}

// Signature renders the function for listings.
func (f *Function) Signature() string {
	var sb strings.Builder
	sb.WriteString(f.FullName())
	sb.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.Type.String())
	}
	sb.WriteString(") -> ")
	if f.Result == nil {
		sb.WriteString("()")
	} else {
		sb.WriteString(f.Result.String())
	}
	return sb.String()
}

// TypeKind enumerates library type declaration forms.
type TypeKind uint8

const (
	TypeOpaque TypeKind = iota
	TypeStruct
	TypeAlias
)

func (k TypeKind) String() string {
	switch k {
	case TypeStruct:
		return "struct"
	case TypeAlias:
		return "alias"
	default:
		return "opaque"
	}
}

// TypeDecl is a library type declaration.
type TypeDecl struct {
	Module string
	Name   string
	Kind   TypeKind
	Fields []Param       // TypeStruct
	Target *ast.TypeExpr // TypeAlias
}

var (
	ErrDuplicateFunction = errors.New("duplicate library function")
	ErrDuplicateType     = errors.New("duplicate library type")
)

// Catalog maps names to library signatures. Each function is reachable by its
// qualified name and, unless another module claimed it first, by its bare
// name. A catalog is filled once and then shared read-only between units.
type Catalog struct {
	functions map[string]*Function // qualified and bare names
	ordered   []*Function          // registration order
	types     map[string]*TypeDecl
	typeOrder []*TypeDecl
}

func NewCatalog() *Catalog {
	return &Catalog{
		functions: make(map[string]*Function),
		types:     make(map[string]*TypeDecl),
	}
}

// Register adds fn. A clash on the qualified name is an error; a clash on the
// bare name keeps the earlier function.
func (c *Catalog) Register(fn Function) error {
	f := &fn
	full := f.FullName()
	if prev, ok := c.functions[full]; ok && prev.FullName() == full {
		return fmt.Errorf("%w: %s", ErrDuplicateFunction, full)
	}
	c.functions[full] = f
	if _, taken := c.functions[f.Name]; !taken {
		c.functions[f.Name] = f
	}
	c.ordered = append(c.ordered, f)
	return nil
}

// RegisterType adds a type declaration under its bare name.
func (c *Catalog) RegisterType(decl TypeDecl) error {
	if _, ok := c.types[decl.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, decl.Name)
	}
	d := &decl
	c.types[decl.Name] = d
	c.typeOrder = append(c.typeOrder, d)
	return nil
}

// Function looks up by qualified or bare name.
func (c *Catalog) Function(name string) (*Function, bool) {
	f, ok := c.functions[name]
	return f, ok
}

// Type looks up a type declaration by name.
func (c *Catalog) Type(name string) (*TypeDecl, bool) {
	d, ok := c.types[name]
	return d, ok
}

// Functions returns all functions sorted by qualified name.
func (c *Catalog) Functions() []*Function {
	out := slices.Clone(c.ordered)
	sort.SliceStable(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out
}

// Types returns type declarations in registration order.
func (c *Catalog) Types() []*TypeDecl {
	return slices.Clone(c.typeOrder)
}

// Names returns every lookup key (qualified and bare), sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.functions))
	for name := range c.functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Module returns the functions of one module sorted by name.
func (c *Catalog) Module(name string) []*Function {
	var out []*Function
	for _, f := range c.ordered {
		if f.Module == name {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Modules returns the distinct module names, sorted.
func (c *Catalog) Modules() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, f := range c.ordered {
		if _, ok := seen[f.Module]; ok || f.Module == "" {
			continue
		}
		seen[f.Module] = struct{}{}
		out = append(out, f.Module)
	}
	slices.Sort(out)
	return out
}

// Len reports the number of distinct functions.
func (c *Catalog) Len() int { return len(c.ordered) }

// Merge copies every entry of other into c, stopping at the first clash.
func (c *Catalog) Merge(other *Catalog) error {
	if other == nil {
		return nil
	}
	for _, d := range other.typeOrder {
		if err := c.RegisterType(*d); err != nil {
			return err
		}
	}
	for _, f := range other.ordered {
		if err := c.Register(*f); err != nil {
			return err
		}
	}
	return nil
}
