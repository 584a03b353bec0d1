package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types registered by NewEnv.
type Builtins struct {
	Unit   TypeID
	Bool   TypeID
	Int    TypeID
	Float  TypeID
	Char   TypeID
	String TypeID
}

// Env owns type descriptors and two independent namespaces: the type-name
// catalog and the value-binding map filled by the type checker. A type name
// and a value binding may share a spelling.
type Env struct {
	types    []Type // index 0 reserved for NoTypeID
	byName   map[string]TypeID
	bindings map[string]TypeID
	builtins Builtins
}

// builtinNames maps every accepted spelling of a primitive to its canonical name.
var builtinNames = map[string]string{
	"unit": "unit", "Unit": "unit", "()": "unit",
	"bool": "bool", "Bool": "bool",
	"int": "int", "Int": "int",
	"float": "float", "Float": "float",
	"char": "char", "Char": "char",
	"string": "string", "String": "string",
}

// NewEnv constructs an environment seeded with the built-in primitives.
func NewEnv() *Env {
	env := &Env{
		types:    make([]Type, 1, 64),
		byName:   make(map[string]TypeID, 16),
		bindings: make(map[string]TypeID),
	}
	env.builtins.Unit = env.registerBuiltin("unit", KindUnit)
	env.builtins.Bool = env.registerBuiltin("bool", KindBool)
	env.builtins.Int = env.registerBuiltin("int", KindInt)
	env.builtins.Float = env.registerBuiltin("float", KindFloat)
	env.builtins.Char = env.registerBuiltin("char", KindChar)
	env.builtins.String = env.registerBuiltin("string", KindString)
	return env
}

func (env *Env) registerBuiltin(name string, kind Kind) TypeID {
	id := env.mint(Type{Kind: kind})
	env.byName[name] = id
	return id
}

// Builtins returns TypeIDs for primitive types.
func (env *Env) Builtins() Builtins {
	return env.builtins
}

// mint stores the descriptor under a fresh identity. Structurally identical
// descriptors still receive distinct IDs.
func (env *Env) mint(t Type) TypeID {
	value, err := safecast.Conv[uint32](len(env.types))
	if err != nil {
		panic(fmt.Errorf("types arena overflow: %w", err))
	}
	id := TypeID(value)
	t.ID = id
	env.types = append(env.types, t)
	return id
}

// Len reports the number of minted types.
func (env *Env) Len() int { return len(env.types) - 1 }

// Lookup returns the descriptor for a TypeID.
func (env *Env) Lookup(id TypeID) (*Type, bool) {
	if !id.IsValid() || int(id) >= len(env.types) {
		return nil, false
	}
	return &env.types[id], true
}

// MustLookup panics when id is invalid.
func (env *Env) MustLookup(id TypeID) *Type {
	tt, ok := env.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("types: invalid TypeID %d", id))
	}
	return tt
}

// Kind returns the kind of id, or KindInvalid.
func (env *Env) Kind(id TypeID) Kind {
	if tt, ok := env.Lookup(id); ok {
		return tt.Kind
	}
	return KindInvalid
}

// RegisterType binds name to id in the type-name catalog, replacing any
// previous binding.
func (env *Env) RegisterType(name string, id TypeID) error {
	if _, ok := env.Lookup(id); !ok {
		return fmt.Errorf("register type %q: unknown type id %d", name, id)
	}
	if canonical, ok := builtinNames[name]; ok && env.byName[canonical] != id {
		return fmt.Errorf("register type %q: name is reserved for a builtin", name)
	}
	env.byName[name] = id
	return nil
}

// TypeByName looks up the type-name catalog. Builtins accept both spellings
// (int and Int).
func (env *Env) TypeByName(name string) (TypeID, bool) {
	name = strings.TrimSpace(name)
	if canonical, ok := builtinNames[name]; ok {
		name = canonical
	}
	id, ok := env.byName[name]
	return id, ok
}

// SetBinding records the type of a value binding.
func (env *Env) SetBinding(name string, id TypeID) {
	env.bindings[name] = id
}

// Binding returns the type recorded for a value binding.
func (env *Env) Binding(name string) (TypeID, bool) {
	id, ok := env.bindings[name]
	return id, ok
}

// Resolve follows named references through the catalog. Unresolvable names
// are returned unchanged.
func (env *Env) Resolve(id TypeID) TypeID {
	for depth := 0; depth < 32; depth++ {
		tt, ok := env.Lookup(id)
		if !ok || tt.Kind != KindNamed {
			return id
		}
		target, ok := env.TypeByName(tt.Name)
		if !ok || target == id {
			return id
		}
		id = target
	}
	return id
}
