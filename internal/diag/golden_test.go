package diag

import (
	"testing"

	"eidos/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	user := "testdata/golden/sample.ei"
	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     TypeBranchMismatch,
			Message:  "first line\nsecond",
			Primary:  source.At(user, 1, 1),
			Notes: []Note{
				{Loc: source.At("stdlib/math.ei", 1, 1), Msg: "skip me"},
				{Loc: source.At(user, 2, 1), Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     SemaUnusedSymbol,
			Message:  "another",
			Primary:  source.At("./"+user, 2, 1),
		},
	}

	expected := "error TYP4007 testdata/golden/sample.ei:1:1 first line second\n" +
		"note TYP4007 testdata/golden/sample.ei:2:1 note line\n" +
		"warning SEM3006 testdata/golden/sample.ei:2:1 another"

	if got := FormatGoldenDiagnostics(diags, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortKeepsInternalErrors(t *testing.T) {
	err := Internal(InternalMissingNode, nil, "node #7 not found")
	got := FormatShortDiagnostics([]Diagnostic{err.Diagnostic()}, false)
	want := "error INT9001 node #7 not found"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
