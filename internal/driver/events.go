package driver

import "time"

// Stage is the batch step an Event belongs to.
type Stage string

const (
	StageLoad Stage = "load"
	StageEval Stage = "eval"
)

// Status of a file within its stage. StatusError covers both load failures
// and files with failed lines.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event is a progress update for File; an empty File is about the batch as a
// whole. Lines and Failed are set once the file is finished.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Lines   int
	Failed  int
}

// Final reports whether no more events follow for a file in this status.
func (s Status) Final() bool {
	return s == StatusDone || s == StatusError
}

type ProgressSink interface {
	OnEvent(Event)
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }

// ChannelSink sends every event to Ch, blocking until it is received.
// A nil Ch drops events.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

func emit(sink ProgressSink, ev Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(ev)
}
