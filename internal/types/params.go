package types

// NewParam mints a bound type parameter.
func (env *Env) NewParam(name string) TypeID {
	return env.mint(Type{Kind: KindParam, Name: name})
}
