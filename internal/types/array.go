package types

// NewArray mints an array type of elem.
func (env *Env) NewArray(elem TypeID) TypeID {
	return env.mint(Type{Kind: KindArray, Elem: elem})
}

// ArrayElem returns the element type of an array TypeID.
func (env *Env) ArrayElem(id TypeID) (TypeID, bool) {
	tt, ok := env.Lookup(env.Resolve(id))
	if !ok || tt.Kind != KindArray {
		return NoTypeID, false
	}
	return tt.Elem, true
}
