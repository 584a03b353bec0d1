package diag

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"eidos/internal/source"
)

func TestErrorMessages(t *testing.T) {
	loc := source.At("main.ei", 3, 7)
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"semantic", Semantic(SemaUndefinedIdent, loc, "undefined identifier '%s'", "x"), "semantic error at main.ei:3:7: undefined identifier 'x'"},
		{"type", Typef(TypeMismatch, loc, "expected %s, found %s", "int", "string"), "type error at main.ei:3:7: expected int, found string"},
		{"internal", Internal(InternalMissingNode, nil, "node #4 not found"), "internal error: node #4 not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInternalErrorHasNoLocation(t *testing.T) {
	cause := errors.New("boom")
	err := Internal(InternalMissingNode, cause, "lookup failed")
	if err.Loc.IsKnown() {
		t.Fatalf("internal errors must not carry a location")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause must be reachable through errors.Is")
	}
	if !strings.Contains(err.Message, "boom") {
		t.Fatalf("message should mention the cause: %q", err.Message)
	}
}

func TestAsThroughWrapping(t *testing.T) {
	base := Semantic(SemaAssignImmutable, source.At("a.ei", 1, 1), "cannot assign")
	wrapped := fmt.Errorf("unit a.ei: %w", base)
	de, ok := As(wrapped)
	if !ok || de != base {
		t.Fatalf("As must find the diagnostic error")
	}
	if !IsKind(wrapped, KindSemantic) || IsKind(wrapped, KindType) {
		t.Fatalf("IsKind mismatch")
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(3)
	bag.Add(NewWarning(SemaUnusedSymbol, source.At("b.ei", 1, 1), "w"))
	bag.AddError(Typef(TypeMismatch, source.At("a.ei", 2, 1), "t"))
	bag.AddError(Semantic(SemaUndefinedIdent, source.At("a.ei", 1, 5), "s"))
	if bag.Add(NewWarning(SemaUnusedSymbol, source.At("c.ei", 1, 1), "dropped")) {
		t.Fatalf("bag must refuse entries past its limit")
	}
	bag.Sort()
	items := bag.Items()
	if items[0].Code != SemaUndefinedIdent || items[1].Code != TypeMismatch || items[2].Code != SemaUnusedSymbol {
		t.Fatalf("unexpected order: %v %v %v", items[0].Code, items[1].Code, items[2].Code)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected both errors and warnings")
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(0)
	d := NewWarning(SemaUnreachableCode, source.At("a.ei", 4, 2), "unreachable")
	bag.Add(d)
	bag.Add(d)
	bag.Dedup()
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic after dedup, got %d", bag.Len())
	}
}

func TestCodeKind(t *testing.T) {
	tests := []struct {
		code Code
		want ErrorKind
	}{
		{SemaUndefinedIdent, KindSemantic},
		{SemaUnusedSymbol, KindSemantic},
		{TypeMismatch, KindType},
		{InternalMissingNode, KindInternal},
		{UnknownCode, KindInternal},
	}
	for _, tt := range tests {
		if got := tt.code.Kind(); got != tt.want {
			t.Fatalf("%s.Kind() = %s, want %s", tt.code.ID(), got, tt.want)
		}
	}
}
