package types

import "fmt"

// TypeID identifies a type inside an Env.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the ID refers to an allocated type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt
	KindFloat
	KindChar
	KindString
	KindArray
	KindTuple
	KindFn
	KindStruct
	KindEnum
	KindNamed     // unresolved reference to a type by name
	KindParam     // bound type parameter
	KindExtension // opaque type contributed by an embedded-block extension
	KindUnknown   // inference placeholder
	KindError     // poisoned result
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindFn:
		return "fn"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindNamed:
		return "named"
	case KindParam:
		return "param"
	case KindExtension:
		return "extension"
	case KindUnknown:
		return "unknown"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPrimitive reports whether k is one of the six built-in kinds.
func (k Kind) IsPrimitive() bool {
	return k >= KindUnit && k <= KindString
}

// Field is a named member of a struct type or a struct-like enum variant.
type Field struct {
	Name string
	Type TypeID
}

// PayloadKind describes what an enum variant carries.
type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota
	PayloadTuple
	PayloadFields
)

// Variant is a single enum alternative.
type Variant struct {
	Name    string
	Payload PayloadKind
	Elems   []TypeID // PayloadTuple
	Fields  []Field  // PayloadFields
}

// Type is a descriptor for any supported type.
// Only the fields relevant to Kind are populated.
type Type struct {
	ID         TypeID
	Kind       Kind
	Elem       TypeID   // array
	Elems      []TypeID // tuple elements, fn params
	Result     TypeID   // fn
	Name       string   // struct, enum, named, param, extension
	Extension  string   // owning extension for KindExtension
	Fields     []Field
	Variants   []Variant
	TypeParams []string
}
