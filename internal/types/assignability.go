package types

// Assignable reports whether a value of type actual may be used where
// expected is required. Unknown and Error on either side are accepted so a
// single root cause produces a single diagnostic. The relation is not
// symmetric: function parameters are checked contravariantly.
func (env *Env) Assignable(actual, expected TypeID) bool {
	return env.assignable(actual, expected, 0)
}

func (env *Env) assignable(actual, expected TypeID, depth int) bool {
	if depth > maxDepth {
		return false
	}
	actual = env.Resolve(actual)
	expected = env.Resolve(expected)
	if actual == expected && actual.IsValid() {
		return true
	}
	act, okAct := env.Lookup(actual)
	exp, okExp := env.Lookup(expected)
	if !okAct || !okExp {
		return false
	}
	if isPlaceholder(act.Kind) || isPlaceholder(exp.Kind) {
		return true
	}
	if exp.Kind.IsPrimitive() {
		return act.Kind == exp.Kind
	}
	switch exp.Kind {
	case KindArray:
		return act.Kind == KindArray && env.assignable(act.Elem, exp.Elem, depth+1)
	case KindTuple:
		if act.Kind != KindTuple || len(act.Elems) != len(exp.Elems) {
			return false
		}
		for i := range exp.Elems {
			if !env.assignable(act.Elems[i], exp.Elems[i], depth+1) {
				return false
			}
		}
		return true
	case KindFn:
		if act.Kind != KindFn || len(act.Elems) != len(exp.Elems) {
			return false
		}
		for i := range exp.Elems {
			// a function accepting wider parameters may stand in for a narrower one
			if !env.assignable(exp.Elems[i], act.Elems[i], depth+1) {
				return false
			}
		}
		return env.assignable(act.Result, exp.Result, depth+1)
	case KindStruct, KindEnum:
		return act.Kind == exp.Kind && act.Name == exp.Name && len(act.TypeParams) == len(exp.TypeParams)
	case KindNamed, KindParam:
		return act.Kind == exp.Kind && act.Name == exp.Name
	case KindExtension:
		return act.Kind == KindExtension && act.Name == exp.Name && act.Extension == exp.Extension
	}
	return false
}

// Comparable reports whether a and b may appear on the two sides of a
// comparison operator. Int and float compare with each other.
func (env *Env) Comparable(a, b TypeID) bool {
	fa, fb := env.Family(a), env.Family(b)
	if fa == FamilyPlaceholder || fb == FamilyPlaceholder {
		return true
	}
	if fa&FamilyNumeric != 0 && fb&FamilyNumeric != 0 {
		return true
	}
	if fa&FamilyOrdered != 0 || fb&FamilyOrdered != 0 {
		return fa == fb
	}
	if fa == FamilyFn || fb == FamilyFn {
		return false
	}
	return env.Equal(a, b)
}

// Equal compares two types structurally. Identity is never consulted
// except as a fast path; nominal types compare by name.
func (env *Env) Equal(a, b TypeID) bool {
	return env.equal(a, b, 0)
}

func (env *Env) equal(a, b TypeID, depth int) bool {
	if depth > maxDepth {
		return false
	}
	a = env.Resolve(a)
	b = env.Resolve(b)
	if a == b {
		return a.IsValid()
	}
	ta, okA := env.Lookup(a)
	tb, okB := env.Lookup(b)
	if !okA || !okB || ta.Kind != tb.Kind {
		return false
	}
	switch ta.Kind {
	case KindArray:
		return env.equal(ta.Elem, tb.Elem, depth+1)
	case KindTuple:
		return env.equalList(ta.Elems, tb.Elems, depth)
	case KindFn:
		return env.equalList(ta.Elems, tb.Elems, depth) && env.equal(ta.Result, tb.Result, depth+1)
	case KindStruct, KindEnum:
		return ta.Name == tb.Name && len(ta.TypeParams) == len(tb.TypeParams)
	case KindNamed, KindParam:
		return ta.Name == tb.Name
	case KindExtension:
		return ta.Name == tb.Name && ta.Extension == tb.Extension
	default:
		return true
	}
}

func (env *Env) equalList(a, b []TypeID, depth int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !env.equal(a[i], b[i], depth+1) {
			return false
		}
	}
	return true
}

const maxDepth = 64

func isPlaceholder(k Kind) bool {
	return k == KindUnknown || k == KindError
}
