package driver

import "time"

// Stage names a step of checking one unit.
type Stage string

const (
	StageLoad    Stage = "load"
	StageAnalyze Stage = "analyze"
	StageCheck   Stage = "check"
	StageEmit    Stage = "emit"
)

// Status reports where a unit is inside its stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a unit (or for the whole run when Unit is empty).
type Event struct {
	Unit    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: units report from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}

func emitStage(sink ProgressSink, unit string, stage Stage, status Status, err error, elapsed time.Duration) {
	sink.OnEvent(Event{Unit: unit, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
