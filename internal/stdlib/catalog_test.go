package stdlib

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestBuiltinModules(t *testing.T) {
	c := Builtin()
	want := []string{"collections", "io", "math", "string", "system", "time"}
	if got := c.Modules(); !slices.Equal(got, want) {
		t.Fatalf("Modules = %v, want %v", got, want)
	}
	for _, name := range []string{"math::sqrt", "sqrt"} {
		fn, ok := c.Function(name)
		if !ok {
			t.Fatalf("%s not registered", name)
		}
		if fn.Signature() != "math::sqrt(value: float) -> float" {
			t.Fatalf("unexpected signature %q", fn.Signature())
		}
	}
	if fn, _ := c.Function("is_empty"); fn.Module != "string" {
		t.Fatalf("bare name must stay with the first module, got %s", fn.Module)
	}
	if fn, ok := c.Function("collections::is_empty"); !ok || fn.Params[0].Type.String() != "[?]" {
		t.Fatalf("qualified lookup of a shadowed bare name failed")
	}
	if fn, _ := c.Function("io::print"); fn.Result != nil || fn.Purity != Effectful {
		t.Fatalf("print must be effectful and return unit")
	}
	if _, ok := c.Type("DateTime"); !ok {
		t.Fatalf("time types missing")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	c := NewCatalog()
	fn := Function{Module: "m", Name: "f"}
	if err := c.Register(fn); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := c.Register(fn); !errors.Is(err, ErrDuplicateFunction) {
		t.Fatalf("expected ErrDuplicateFunction, got %v", err)
	}
	if err := c.RegisterType(TypeDecl{Name: "T"}); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	if err := c.RegisterType(TypeDecl{Name: "T"}); !errors.Is(err, ErrDuplicateType) {
		t.Fatalf("expected ErrDuplicateType, got %v", err)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in, want string
		fail     bool
	}{
		{in: "int", want: "int"},
		{in: "[ string ]", want: "[string]"},
		{in: "(int, bool)", want: "(int, bool)"},
		{in: "()", want: "unit"},
		{in: "(int) -> [bool]", want: "(int) -> [bool]"},
		{in: "Map<string, int>", want: "Map<string, int>"},
		{in: "?", want: "?"},
		{in: "[int", fail: true},
		{in: "int]", fail: true},
		{in: "", fail: true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if tt.fail {
			if err == nil {
				t.Fatalf("ParseType(%q) should fail, got %s", tt.in, got)
			}
			continue
		}
		if err != nil || got.String() != tt.want {
			t.Fatalf("ParseType(%q) = %v, %v; want %s", tt.in, got, err, tt.want)
		}
	}
}

func TestParseParamsWithFunctionType(t *testing.T) {
	params, err := parseParams("f: (int, int) -> bool, xs: [int]")
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	if len(params) != 2 || params[0].Type.String() != "(int, int) -> bool" || params[1].Name != "xs" {
		t.Fatalf("unexpected params %+v", params)
	}
}

const tomlCatalog = `
[[module]]
name = "geo"

[[module.type]]
name = "Point"
kind = "struct"
fields = ["x: float", "y: float"]

[[module.function]]
name = "distance"
params = "a: Point, b: Point"
result = "float"
doc = "euclidean distance"
`

const yamlCatalog = `
modules:
  - name: geo
    types:
      - name: Point
        kind: struct
        fields: ["x: float", "y: float"]
    functions:
      - name: distance
        params: "a: Point, b: Point"
        result: float
        doc: euclidean distance
`

func TestDecodeFormatsAgree(t *testing.T) {
	fromTOML, err := DecodeTOML(strings.NewReader(tomlCatalog))
	if err != nil {
		t.Fatalf("DecodeTOML: %v", err)
	}
	fromYAML, err := DecodeYAML(strings.NewReader(yamlCatalog))
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	for _, c := range []*Catalog{fromTOML, fromYAML} {
		fn, ok := c.Function("geo::distance")
		if !ok || fn.Signature() != "geo::distance(a: Point, b: Point) -> float" {
			t.Fatalf("distance not decoded: %+v", fn)
		}
		point, ok := c.Type("Point")
		if !ok || point.Kind != TypeStruct || len(point.Fields) != 2 {
			t.Fatalf("Point not decoded: %+v", point)
		}
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	if _, err := DecodeTOML(strings.NewReader("[[module]]\nname = \"a\"\ncolour = 1\n")); err == nil {
		t.Fatalf("unknown TOML keys must be rejected")
	}
	if _, err := DecodeYAML(strings.NewReader("modules:\n  - name: a\n    colour: 1\n")); err == nil {
		t.Fatalf("unknown YAML keys must be rejected")
	}
}

func TestLoadFileByExtension(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "geo.toml")
	if err := os.WriteFile(tomlPath, []byte(tomlCatalog), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(tomlPath)
	if err != nil || c.Len() != 1 {
		t.Fatalf("LoadFile = %v, %v", c, err)
	}
	jsonPath := filepath.Join(dir, "geo.json")
	if err := os.WriteFile(jsonPath, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(jsonPath); !errors.Is(err, ErrCatalogFormat) {
		t.Fatalf("expected ErrCatalogFormat, got %v", err)
	}
}

func TestMerge(t *testing.T) {
	extra, err := DecodeTOML(strings.NewReader(tomlCatalog))
	if err != nil {
		t.Fatal(err)
	}
	c := NewCatalog()
	if err := c.Merge(Builtin()); err != nil {
		t.Fatalf("Merge builtin: %v", err)
	}
	if err := c.Merge(extra); err != nil {
		t.Fatalf("Merge extra: %v", err)
	}
	if _, ok := c.Function("distance"); !ok {
		t.Fatalf("merged function missing")
	}
	if err := c.Merge(extra); !errors.Is(err, ErrDuplicateType) {
		t.Fatalf("second merge must clash, got %v", err)
	}
}
