package ast

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"eidos/internal/source"
	"eidos/internal/types"
)

func TestCodecRoundTrip(t *testing.T) {
	p, ids := buildSample()
	b := NewBuilder(p)
	b.Root(b.Enum("Shape", b.Variant("Circle", *Named("float")), b.Variant("Empty")))
	b.Root(b.At(9, 2).Embedded("sql", "select 1"))
	fn, _ := p.Get(ids["fn"])
	fn.Type = TypeInfo{State: TypeExplicit, Type: 7}
	fn.Symbol = 3

	var buf bytes.Buffer
	if err := Encode(&buf, p, nil); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.File != p.File || got.Len() != p.Len() || !slices.Equal(got.Roots(), p.Roots()) {
		t.Fatalf("program shape changed")
	}
	if !slices.Equal(slices.Collect(got.PreOrder()), slices.Collect(p.PreOrder())) {
		t.Fatalf("traversal changed after round trip")
	}
	gfn, _ := got.Get(ids["fn"])
	f := gfn.Data.(*Func)
	if f.Name != "f" || f.Result.String() != "int" || gfn.Type.Type != 7 || gfn.Symbol != 3 {
		t.Fatalf("function payload lost: %+v %+v", f, gfn)
	}
	last := got.Roots()[len(got.Roots())-1]
	emb, _ := got.Get(last)
	if e := emb.Data.(*Embedded); e.Extension != "sql" || e.Content != "select 1" || emb.Loc != source.At("sample.ei", 9, 2) {
		t.Fatalf("embedded payload lost: %+v at %s", e, emb.Loc)
	}
}

type fixedLabels string

func (f fixedLabels) Label(types.TypeID) string { return string(f) }

func TestEncodeWithLabels(t *testing.T) {
	p, ids := buildSample()
	n, _ := p.Get(ids["one"])
	n.Type = TypeInfo{State: TypeResolved, Type: 3}
	var buf bytes.Buffer
	if err := Encode(&buf, p, fixedLabels("label-of-3")); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("label-of-3")) {
		t.Fatalf("label not written")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte{0xc1, 0x00})); !errors.Is(err, ErrBadDump) {
		t.Fatalf("expected ErrBadDump, got %v", err)
	}
}

func TestTypeExprString(t *testing.T) {
	tests := []struct {
		expr *TypeExpr
		want string
	}{
		{Named("int"), "int"},
		{ArrayOf(Named("string")), "[string]"},
		{TupleOf(*Named("int"), *Named("bool")), "(int, bool)"},
		{FnOf([]TypeExpr{*Named("int")}, Named("bool")), "(int) -> bool"},
		{Named("Box", *Named("T")), "Box<T>"},
		{nil, "_"},
	}
	for _, tt := range tests {
		if got := tt.expr.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}
