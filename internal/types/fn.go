package types

import "slices"

// FnInfo stores the signature of a function type.
type FnInfo struct {
	Params []TypeID // Parameter types (in order)
	Result TypeID   // Return type
}

// NewFn mints a function type.
func (env *Env) NewFn(params []TypeID, result TypeID) TypeID {
	return env.mint(Type{Kind: KindFn, Elems: slices.Clone(params), Result: result})
}

// FnInfo retrieves the signature of a function TypeID.
func (env *Env) FnInfo(id TypeID) (FnInfo, bool) {
	tt, ok := env.Lookup(env.Resolve(id))
	if !ok || tt.Kind != KindFn {
		return FnInfo{}, false
	}
	return FnInfo{Params: slices.Clone(tt.Elems), Result: tt.Result}, true
}
