package types

import "testing"

func TestAssignablePrimitives(t *testing.T) {
	env := NewEnv()
	b := env.Builtins()
	if !env.Assignable(b.Int, env.NewPrimitive(KindInt)) {
		t.Fatalf("int must be assignable to a fresh int")
	}
	if env.Assignable(b.Int, b.Float) {
		t.Fatalf("int must not be assignable to float")
	}
	if env.Assignable(b.String, b.Char) {
		t.Fatalf("string must not be assignable to char")
	}
}

func TestPlaceholdersAreCompatible(t *testing.T) {
	env := NewEnv()
	b := env.Builtins()
	unknown := env.NewUnknown()
	poisoned := env.NewError()
	for _, other := range []TypeID{b.Int, b.String, env.NewArray(b.Bool)} {
		if !env.Assignable(unknown, other) || !env.Assignable(other, unknown) {
			t.Fatalf("Unknown must be assignable both ways with %s", env.Label(other))
		}
		if !env.Assignable(poisoned, other) || !env.Assignable(other, poisoned) {
			t.Fatalf("Error must be assignable both ways with %s", env.Label(other))
		}
		if !env.Comparable(unknown, other) || !env.Comparable(poisoned, other) {
			t.Fatalf("placeholders must be comparable with %s", env.Label(other))
		}
	}
	empty := env.NewArray(env.NewUnknown())
	if !env.Assignable(empty, env.NewArray(b.Int)) {
		t.Fatalf("[?] must be assignable to [int]")
	}
}

func TestAssignableComposites(t *testing.T) {
	env := NewEnv()
	b := env.Builtins()
	pair := env.NewTuple([]TypeID{b.Int, b.String})
	if !env.Assignable(env.NewTuple([]TypeID{b.Int, b.String}), pair) {
		t.Fatalf("identical tuples must be assignable")
	}
	if env.Assignable(env.NewTuple([]TypeID{b.Int}), pair) {
		t.Fatalf("tuples of different arity must not be assignable")
	}
	p1 := env.NewStruct("P", nil, nil)
	p2 := env.NewStruct("P", nil, nil)
	q := env.NewStruct("Q", nil, nil)
	if !env.Assignable(p1, p2) || env.Assignable(p1, q) {
		t.Fatalf("structs compare nominally")
	}
	if env.Assignable(env.NewEnum("P", nil, nil), p1) {
		t.Fatalf("enum and struct with same name must differ")
	}
}

func TestAssignableIsNotSymmetric(t *testing.T) {
	env := NewEnv()
	b := env.Builtins()
	// (?) -> int accepts anything, (int) -> int does not accept strings.
	wide := env.NewFn([]TypeID{env.NewUnknown()}, b.Int)
	narrow := env.NewFn([]TypeID{b.Int}, b.Int)
	if !env.Assignable(wide, narrow) {
		t.Fatalf("wide function must stand in for narrow one")
	}
	str := env.NewFn([]TypeID{b.String}, b.Int)
	if env.Assignable(str, narrow) || env.Assignable(narrow, str) {
		t.Fatalf("functions with unrelated params must not be assignable")
	}
	retUnknown := env.NewFn(nil, env.NewUnknown())
	retInt := env.NewFn(nil, b.Int)
	if !env.Assignable(retInt, retUnknown) {
		t.Fatalf("fn() -> int must be assignable to fn() -> ?")
	}
}

func TestComparable(t *testing.T) {
	env := NewEnv()
	b := env.Builtins()
	tests := []struct {
		name string
		a, b TypeID
		want bool
	}{
		{"int-int", b.Int, b.Int, true},
		{"int-float", b.Int, b.Float, true},
		{"string-string", b.String, b.String, true},
		{"char-char", b.Char, b.Char, true},
		{"bool-bool", b.Bool, b.Bool, true},
		{"int-string", b.Int, b.String, false},
		{"bool-int", b.Bool, b.Int, false},
		{"arrays", env.NewArray(b.Int), env.NewArray(b.Int), true},
		{"arrays-different", env.NewArray(b.Int), env.NewArray(b.String), false},
		{"fns", env.NewFn(nil, b.Int), env.NewFn(nil, b.Int), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := env.Comparable(tt.a, tt.b); got != tt.want {
				t.Fatalf("Comparable(%s, %s) = %v, want %v", env.Label(tt.a), env.Label(tt.b), got, tt.want)
			}
		})
	}
}

func TestFamilies(t *testing.T) {
	env := NewEnv()
	b := env.Builtins()
	if !env.IsNumeric(b.Int) || !env.IsNumeric(b.Float) || env.IsNumeric(b.String) {
		t.Fatalf("numeric family mismatch")
	}
	if !env.IsFloat(b.Float) || env.IsFloat(b.Int) {
		t.Fatalf("float family mismatch")
	}
	if !env.IsUnknown(env.NewUnknown()) || !env.IsError(env.NewError()) {
		t.Fatalf("placeholder predicates mismatch")
	}
	if err := env.RegisterType("Score", b.Int); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	if !env.IsNumeric(env.NewNamed("Score")) {
		t.Fatalf("families must look through named references")
	}
}
