package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerAggregatesByName(t *testing.T) {
	timer := NewTimer()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			done := timer.Track("check")
			done("")
		}()
	}
	wg.Wait()
	idx := timer.Begin("encode")
	timer.End(idx, "msgpack")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "check" || report.Phases[0].Count != 4 {
		t.Fatalf("unexpected first phase: %+v", report.Phases[0])
	}
	if report.Phases[1].Note != "msgpack" {
		t.Fatalf("note lost: %+v", report.Phases[1])
	}
	summary := timer.Summary()
	if !strings.Contains(summary, "x4") || !strings.Contains(summary, "total") {
		t.Fatalf("summary missing fields:\n%s", summary)
	}
}

func TestTimerIgnoresBadIndex(t *testing.T) {
	timer := NewTimer()
	timer.End(3, "nope")
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Fatalf("expected empty report, got %+v", got)
	}
	var nilTimer *Timer
	nilTimer.Track("x")("")
}
