package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"eidos/internal/driver"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestTable(t *testing.T) {
	got := Table(
		[]string{"NAME", "SIGNATURE"},
		[][]string{
			{"sqrt", "math::sqrt(x: float) -> float"},
			{"length", "string::length(s: string) -> int"},
		},
		0, false,
	)
	want := "NAME    SIGNATURE\n" +
		"sqrt    math::sqrt(x: float) -> float\n" +
		"length  string::length(s: string) -> int\n"
	if got != want {
		t.Fatalf("Table:\n%q\nwant:\n%q", got, want)
	}

	narrow := Table([]string{"NAME", "SIGNATURE"}, [][]string{{"sqrt", "math::sqrt(x: float) -> float"}}, 20, false)
	for _, line := range strings.Split(strings.TrimSuffix(narrow, "\n"), "\n") {
		if len(line) > 20 {
			t.Fatalf("line %q exceeds the width limit", line)
		}
	}
}

func TestProgressModel(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("checking", []string{"a.east", "b.east"}, events).(*progressModel)

	m.Update(eventMsg{Unit: "a.east", Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	if m.items[0].status != "analyzing" || m.finished() != 0 {
		t.Fatalf("after analyze: %+v", m.items[0])
	}
	m.Update(eventMsg{Unit: "a.east", Stage: driver.StageCheck, Status: driver.StatusDone})
	m.Update(eventMsg{Unit: "b.east", Stage: driver.StageLoad, Status: driver.StatusError})
	m.Update(eventMsg{Unit: "unknown.east", Stage: driver.StageLoad, Status: driver.StatusWorking})
	if m.finished() != 2 || m.failures() != 1 || m.percent() != 1.0 {
		t.Fatalf("finished=%d failures=%d percent=%v", m.finished(), m.failures(), m.percent())
	}

	view := m.View()
	for _, want := range []string{"checking (2/2, 1 failed)", "done", "error", "a.east", "b.east"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}

	_, cmd := m.Update(doneMsg{})
	if cmd == nil {
		t.Fatalf("doneMsg must quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("doneMsg did not produce tea.Quit")
	}
}
