package types

import "testing"

func TestEnvBuiltins(t *testing.T) {
	env := NewEnv()
	b := env.Builtins()
	for name, want := range map[string]TypeID{
		"unit": b.Unit, "bool": b.Bool, "int": b.Int,
		"float": b.Float, "char": b.Char, "string": b.String,
		"Int": b.Int, "String": b.String,
		" Int": b.Int, "int ": b.Int, "\tBool\n": b.Bool,
	} {
		got, ok := env.TypeByName(name)
		if !ok || got != want {
			t.Fatalf("TypeByName(%q) = %d,%v want %d", name, got, ok, want)
		}
	}
	if env.Kind(b.Unit) != KindUnit {
		t.Fatalf("expected unit kind, got %v", env.Kind(b.Unit))
	}
}

func TestConstructionMintsFreshIdentity(t *testing.T) {
	env := NewEnv()
	elem := env.Builtins().String
	arr1 := env.NewArray(elem)
	arr2 := env.NewArray(elem)
	if arr1 == arr2 {
		t.Fatalf("every construction must mint a new identity")
	}
	if !env.Equal(arr1, arr2) {
		t.Fatalf("structurally identical arrays must compare equal")
	}
	if arr2 <= arr1 {
		t.Fatalf("identities must be monotonic: %d then %d", arr1, arr2)
	}
	int1 := env.NewPrimitive(KindInt)
	if int1 == env.Builtins().Int || !env.Equal(int1, env.Builtins().Int) {
		t.Fatalf("fresh int must differ in identity but equal structurally")
	}
}

func TestBindingsAreSeparateFromCatalog(t *testing.T) {
	env := NewEnv()
	b := env.Builtins()
	point := env.NewStruct("Point", []Field{{Name: "x", Type: b.Int}}, nil)
	if err := env.RegisterType("Point", point); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	env.SetBinding("Point", b.String)

	if id, _ := env.TypeByName("Point"); id != point {
		t.Fatalf("catalog lookup returned %d, want %d", id, point)
	}
	if id, _ := env.Binding("Point"); id != b.String {
		t.Fatalf("binding lookup returned %d, want %d", id, b.String)
	}
	if _, ok := env.Binding("missing"); ok {
		t.Fatalf("unexpected binding")
	}
}

func TestRegisterTypeRejectsBuiltinNames(t *testing.T) {
	env := NewEnv()
	s := env.NewStruct("int", nil, nil)
	if err := env.RegisterType("int", s); err == nil {
		t.Fatalf("expected error when shadowing builtin type name")
	}
	if err := env.RegisterType("Ghost", TypeID(9999)); err == nil {
		t.Fatalf("expected error for unknown type id")
	}
}

func TestResolveNamedReference(t *testing.T) {
	env := NewEnv()
	b := env.Builtins()
	if err := env.RegisterType("Meters", b.Float); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	ref := env.NewNamed("Meters")
	if env.Resolve(ref) != b.Float {
		t.Fatalf("named reference must resolve to float")
	}
	dangling := env.NewNamed("Nowhere")
	if env.Resolve(dangling) != dangling {
		t.Fatalf("dangling reference must stay unresolved")
	}
}

func TestLabel(t *testing.T) {
	env := NewEnv()
	b := env.Builtins()
	tests := []struct {
		id   TypeID
		want string
	}{
		{b.Unit, "()"},
		{b.Int, "int"},
		{env.NewArray(b.Int), "[int]"},
		{env.NewTuple([]TypeID{b.Int, b.String}), "(int, string)"},
		{env.NewFn([]TypeID{b.Int}, b.Bool), "(int) -> bool"},
		{env.NewStruct("Box", nil, []string{"T"}), "Box<T>"},
		{env.NewExtension("sql", "Row"), "sql:Row"},
		{env.NewUnknown(), "?"},
		{env.NewError(), "<error>"},
		{env.NewArray(env.NewUnknown()), "[?]"},
	}
	for _, tt := range tests {
		if got := env.Label(tt.id); got != tt.want {
			t.Fatalf("Label(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
