package sema

import (
	"eidos/internal/ast"
	"eidos/internal/diag"
	"eidos/internal/stdlib"
	"eidos/internal/types"
)

// registerTypes fills the type-name catalog before the walk so annotations
// may name types declared anywhere in the unit. Order: extension types,
// library types, user structs and enums, then aliases, then member lists.
// Resolution failures are parked in defErrors and raised when the walk
// reaches the offending node.
func (c *checker) registerTypes() {
	for _, ext := range c.opts.Extensions.Extensions() {
		for _, name := range ext.Types() {
			// a name clashing with a builtin is ignored; the builtin stays
			_ = c.env.RegisterType(name, c.env.NewExtension(ext.Name(), name))
		}
	}

	decls := c.opts.Catalog.Types()
	libStructs := make([]types.TypeID, len(decls))
	for i, decl := range decls {
		if decl.Kind == stdlib.TypeAlias {
			continue
		}
		libStructs[i] = c.env.NewStruct(decl.Name, nil, nil)
		c.registerLibraryName(decl, libStructs[i])
	}

	var aliases []ast.NodeID
	for _, id := range c.typeDefs {
		n := c.prog.Node(id)
		td := n.Data.(*ast.TypeDef)
		var t types.TypeID
		switch td.Form {
		case ast.TypeStruct:
			t = c.env.NewStruct(td.Name, nil, td.TypeParams)
		case ast.TypeEnum:
			t = c.env.NewEnum(td.Name, nil, td.TypeParams)
		default:
			aliases = append(aliases, id)
			continue
		}
		c.defTypes[id] = t
		if err := c.env.RegisterType(td.Name, t); err != nil {
			c.defErrors[id] = diag.Typef(diag.TypeDuplicateTypeName, n.Loc, "type name '%s' is reserved for a builtin type", td.Name).Wrap(err)
		}
	}

	for _, decl := range decls {
		if decl.Kind != stdlib.TypeAlias {
			continue
		}
		if t, err := c.resolve(decl.Target, nil); err == nil {
			c.registerLibraryName(decl, t)
		}
	}
	for _, id := range aliases {
		n := c.prog.Node(id)
		td := n.Data.(*ast.TypeDef)
		t, err := c.resolveAt(td.Alias, c.tparams[id], n)
		if err != nil {
			c.defErrors[id] = err
			c.defTypes[id] = c.env.NewError()
			continue
		}
		c.defTypes[id] = t
		if err := c.env.RegisterType(td.Name, t); err != nil {
			c.defErrors[id] = diag.Typef(diag.TypeDuplicateTypeName, n.Loc, "type name '%s' is reserved for a builtin type", td.Name).Wrap(err)
		}
	}

	for i, decl := range decls {
		if decl.Kind != stdlib.TypeStruct {
			continue
		}
		id := libStructs[i]
		fields := make([]types.Field, 0, len(decl.Fields))
		for _, f := range decl.Fields {
			ft, err := c.resolve(f.Type, nil)
			if err != nil {
				ft = c.env.NewError()
			}
			fields = append(fields, types.Field{Name: f.Name, Type: ft})
		}
		c.env.SetStructFields(id, fields)
	}
	for _, id := range c.typeDefs {
		td := c.prog.Node(id).Data.(*ast.TypeDef)
		switch td.Form {
		case ast.TypeStruct:
			c.env.SetStructFields(c.defTypes[id], c.memberFields(td, c.tparams[id]))
		case ast.TypeEnum:
			c.env.SetEnumVariants(c.defTypes[id], c.memberVariants(td, c.tparams[id]))
		}
	}
}

func (c *checker) registerLibraryName(decl *stdlib.TypeDecl, id types.TypeID) {
	_ = c.env.RegisterType(decl.Name, id)
	if decl.Module != "" {
		_ = c.env.RegisterType(decl.Module+"::"+decl.Name, id)
	}
}

// memberFields resolves struct fields leniently; a bad annotation becomes an
// error type here and a diagnostic when the walk reaches the field.
func (c *checker) memberFields(td *ast.TypeDef, tparams []string) []types.Field {
	out := make([]types.Field, 0, len(td.Members))
	for _, m := range td.Members {
		n := c.prog.Node(m)
		if n == nil {
			continue
		}
		f, ok := n.Data.(*ast.Field)
		if !ok {
			continue
		}
		t, err := c.resolve(f.Annot, tparams)
		if err != nil {
			t = c.env.NewError()
		}
		out = append(out, types.Field{Name: f.Name, Type: t})
	}
	return out
}

func (c *checker) memberVariants(td *ast.TypeDef, tparams []string) []types.Variant {
	out := make([]types.Variant, 0, len(td.Members))
	for _, m := range td.Members {
		n := c.prog.Node(m)
		if n == nil {
			continue
		}
		v, ok := n.Data.(*ast.Variant)
		if !ok {
			continue
		}
		tv, _ := c.variantType(v, tparams)
		out = append(out, tv)
	}
	return out
}

// variantType resolves a variant payload; the first failing annotation is
// returned alongside a best-effort variant.
func (c *checker) variantType(v *ast.Variant, tparams []string) (types.Variant, *ast.TypeExpr) {
	tv := types.Variant{Name: v.Name, Payload: v.Payload}
	var bad *ast.TypeExpr
	for i := range v.Elems {
		t, err := c.resolve(&v.Elems[i], tparams)
		if err != nil {
			t = c.env.NewError()
			if bad == nil {
				bad = &v.Elems[i]
			}
		}
		tv.Elems = append(tv.Elems, t)
	}
	for i := range v.Fields {
		t, err := c.resolve(&v.Fields[i].Type, tparams)
		if err != nil {
			t = c.env.NewError()
			if bad == nil {
				bad = &v.Fields[i].Type
			}
		}
		tv.Fields = append(tv.Fields, types.Field{Name: v.Fields[i].Name, Type: t})
	}
	return tv, bad
}

// registerFunctions binds the type of every function whose parameters are
// all annotated, so calls type-check before the definition is walked.
// Functions with unannotated parameters fail later at the parameter.
func (c *checker) registerFunctions() {
	for _, id := range c.funcs {
		n := c.prog.Node(id)
		fn := n.Data.(*ast.Func)
		t, ok := c.signature(fn, c.tparams[id])
		if !ok {
			continue
		}
		c.env.SetBinding(fn.Name, t)
	}
}

// signature builds the function type from annotations only.
func (c *checker) signature(fn *ast.Func, tparams []string) (types.TypeID, bool) {
	params := make([]types.TypeID, 0, len(fn.Params))
	for _, pid := range fn.Params {
		pn := c.prog.Node(pid)
		if pn == nil {
			return types.NoTypeID, false
		}
		p, ok := pn.Data.(*ast.Param)
		if !ok || p.Annot == nil {
			return types.NoTypeID, false
		}
		t, err := c.resolve(p.Annot, tparams)
		if err != nil {
			return types.NoTypeID, false
		}
		params = append(params, t)
	}
	result, err := c.resultType(fn, tparams)
	if err != nil {
		return types.NoTypeID, false
	}
	return c.env.NewFn(params, result), true
}

// resultType is the declared return type; no annotation means unit.
func (c *checker) resultType(fn *ast.Func, tparams []string) (types.TypeID, error) {
	if fn.Result == nil {
		return c.b.Unit, nil
	}
	return c.resolve(fn.Result, tparams)
}

// libraryFunction types a callee that only the library catalog or an
// extension knows about.
func (c *checker) libraryFunction(name string, n *ast.Node) (types.TypeID, bool, error) {
	if t, ok := c.library[name]; ok {
		return t, true, nil
	}
	if fn, ok := c.opts.Catalog.Function(name); ok {
		params := make([]types.TypeID, 0, len(fn.Params))
		for _, p := range fn.Params {
			t, err := c.resolve(p.Type, nil)
			if err != nil {
				return types.NoTypeID, false, c.libraryTypeError(fn.FullName(), n, err)
			}
			params = append(params, t)
		}
		result := c.b.Unit
		if fn.Result != nil {
			t, err := c.resolve(fn.Result, nil)
			if err != nil {
				return types.NoTypeID, false, c.libraryTypeError(fn.FullName(), n, err)
			}
			result = t
		}
		t := c.env.NewFn(params, result)
		c.library[name] = t
		return t, true, nil
	}
	return c.extensionBuiltin(name, n)
}

func (c *checker) extensionBuiltin(name string, n *ast.Node) (types.TypeID, bool, error) {
	if t, ok := c.builtins[name]; ok {
		return t, true, nil
	}
	for _, ext := range c.opts.Extensions.Extensions() {
		for _, b := range ext.Builtins() {
			if b.Name != name {
				continue
			}
			params := make([]types.TypeID, 0, len(b.Params))
			for i := range b.Params {
				t, err := c.resolve(&b.Params[i], nil)
				if err != nil {
					return types.NoTypeID, false, c.libraryTypeError(ext.Name()+"::"+name, n, err)
				}
				params = append(params, t)
			}
			result := c.b.Unit
			if b.Result != nil {
				t, err := c.resolve(b.Result, nil)
				if err != nil {
					return types.NoTypeID, false, c.libraryTypeError(ext.Name()+"::"+name, n, err)
				}
				result = t
			}
			t := c.env.NewFn(params, result)
			c.builtins[name] = t
			return t, true, nil
		}
	}
	return types.NoTypeID, false, nil
}

func (c *checker) libraryTypeError(fn string, n *ast.Node, err error) error {
	return diag.Typef(diag.TypeUnknownTypeName, n.Loc, "signature of '%s': %v", fn, err).Wrap(err)
}
