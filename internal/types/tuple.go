package types

import "slices"

// NewTuple mints a tuple type with the given elements.
func (env *Env) NewTuple(elems []TypeID) TypeID {
	return env.mint(Type{Kind: KindTuple, Elems: slices.Clone(elems)})
}

// TupleElems returns a copy of the tuple element types.
func (env *Env) TupleElems(id TypeID) ([]TypeID, bool) {
	tt, ok := env.Lookup(env.Resolve(id))
	if !ok || tt.Kind != KindTuple {
		return nil, false
	}
	return slices.Clone(tt.Elems), true
}
