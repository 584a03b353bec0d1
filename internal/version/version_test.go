package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, msg, date string) {
	t.Helper()
	origV, origC, origM, origD := Version, GitCommit, GitMessage, BuildDate
	Version, GitCommit, GitMessage, BuildDate = v, commit, msg, date
	t.Cleanup(func() {
		Version, GitCommit, GitMessage, BuildDate = origV, origC, origM, origD
	})
}

func TestColoredPlain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	cases := []struct{ in, want string }{
		{"1.2.3", "1.2.3"},
		{"0.3.0-dev", "0.3.0-dev"},
		{"nightly", "nightly"},
	}
	for _, tc := range cases {
		withVersion(t, tc.in, "", "", "")
		if got := Colored(); got != tc.want {
			t.Fatalf("Colored(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBannerFields(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	withVersion(t, "1.0.0", "abcdef0123456789", "fix checker\n\nlong body", "2026-01-15T10:30:00Z")
	got := Banner()
	want := "eidos 1.0.0\ncommit: abcdef012345 (fix checker)\nbuilt:  2026-01-15T10:30:00Z\n"
	if got != want {
		t.Fatalf("Banner() = %q, want %q", got, want)
	}

	withVersion(t, "1.0.0", "", "", "")
	if got := Banner(); got != "eidos 1.0.0\n" {
		t.Fatalf("minimal banner = %q", got)
	}
}
