package types

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint32

const (
	FamilyNone FamilyMask = 0
	FamilyAny  FamilyMask = 1 << iota
	FamilyBool
	FamilyInt
	FamilyFloat
	FamilyChar
	FamilyString
	FamilyUnit
	FamilyArray
	FamilyTuple
	FamilyFn
	FamilyNominal
	FamilyPlaceholder // Unknown or Error: compatible with everything
)

const (
	FamilyNumeric = FamilyInt | FamilyFloat
	// FamilyOrdered are the families comparable with themselves by value.
	FamilyOrdered = FamilyNumeric | FamilyChar | FamilyString | FamilyBool | FamilyUnit
)

// Family classifies id after resolving named references.
func (env *Env) Family(id TypeID) FamilyMask {
	tt, ok := env.Lookup(env.Resolve(id))
	if !ok {
		return FamilyNone
	}
	switch tt.Kind {
	case KindBool:
		return FamilyBool
	case KindInt:
		return FamilyInt
	case KindFloat:
		return FamilyFloat
	case KindChar:
		return FamilyChar
	case KindString:
		return FamilyString
	case KindUnit:
		return FamilyUnit
	case KindArray:
		return FamilyArray
	case KindTuple:
		return FamilyTuple
	case KindFn:
		return FamilyFn
	case KindStruct, KindEnum, KindNamed, KindParam, KindExtension:
		return FamilyNominal
	case KindUnknown, KindError:
		return FamilyPlaceholder
	default:
		return FamilyNone
	}
}

// IsNumeric reports whether id is int or float.
func (env *Env) IsNumeric(id TypeID) bool { return env.Family(id)&FamilyNumeric != 0 }

// IsFloat reports whether id is float.
func (env *Env) IsFloat(id TypeID) bool { return env.Family(id) == FamilyFloat }

// IsBool reports whether id is bool.
func (env *Env) IsBool(id TypeID) bool { return env.Family(id) == FamilyBool }

// IsString reports whether id is string.
func (env *Env) IsString(id TypeID) bool { return env.Family(id) == FamilyString }

// IsUnknown reports whether id is the inference placeholder.
func (env *Env) IsUnknown(id TypeID) bool { return env.Kind(env.Resolve(id)) == KindUnknown }

// IsError reports whether id is the poisoned marker.
func (env *Env) IsError(id TypeID) bool { return env.Kind(env.Resolve(id)) == KindError }
