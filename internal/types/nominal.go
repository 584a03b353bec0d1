package types

import (
	"slices"
)

// NewStruct mints a nominal struct type.
func (env *Env) NewStruct(name string, fields []Field, typeParams []string) TypeID {
	return env.mint(Type{
		Kind:       KindStruct,
		Name:       name,
		Fields:     slices.Clone(fields),
		TypeParams: slices.Clone(typeParams),
	})
}

// SetStructFields replaces the fields of a struct type. Used when fields
// reference types declared later than the struct itself.
func (env *Env) SetStructFields(id TypeID, fields []Field) {
	if tt, ok := env.Lookup(id); ok && tt.Kind == KindStruct {
		tt.Fields = slices.Clone(fields)
	}
}

// StructField looks up a field by name.
func (env *Env) StructField(id TypeID, name string) (Field, bool) {
	tt, ok := env.Lookup(env.Resolve(id))
	if !ok || tt.Kind != KindStruct {
		return Field{}, false
	}
	for _, f := range tt.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// NewEnum mints a nominal enum type.
func (env *Env) NewEnum(name string, variants []Variant, typeParams []string) TypeID {
	return env.mint(Type{
		Kind:       KindEnum,
		Name:       name,
		Variants:   cloneVariants(variants),
		TypeParams: slices.Clone(typeParams),
	})
}

// SetEnumVariants replaces the variants of an enum type.
func (env *Env) SetEnumVariants(id TypeID, variants []Variant) {
	if tt, ok := env.Lookup(id); ok && tt.Kind == KindEnum {
		tt.Variants = cloneVariants(variants)
	}
}

// NewNamed mints an unresolved reference to a type by name.
func (env *Env) NewNamed(name string) TypeID {
	return env.mint(Type{Kind: KindNamed, Name: name})
}

// NewExtension mints an opaque type owned by an embedded-block extension.
func (env *Env) NewExtension(extension, name string) TypeID {
	return env.mint(Type{Kind: KindExtension, Name: name, Extension: extension})
}

// NewUnknown mints an inference placeholder.
func (env *Env) NewUnknown() TypeID {
	return env.mint(Type{Kind: KindUnknown})
}

// NewError mints a poisoned result marker.
func (env *Env) NewError() TypeID {
	return env.mint(Type{Kind: KindError})
}

// NewPrimitive mints a fresh descriptor of a built-in kind. Most callers
// want Builtins() instead.
func (env *Env) NewPrimitive(kind Kind) TypeID {
	if !kind.IsPrimitive() {
		panic("types.NewPrimitive: " + kind.String() + " is not primitive")
	}
	return env.mint(Type{Kind: kind})
}

func cloneVariants(in []Variant) []Variant {
	if len(in) == 0 {
		return nil
	}
	out := make([]Variant, len(in))
	for i, v := range in {
		out[i] = Variant{
			Name:    v.Name,
			Payload: v.Payload,
			Elems:   slices.Clone(v.Elems),
			Fields:  slices.Clone(v.Fields),
		}
	}
	return out
}
