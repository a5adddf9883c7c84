// Package observ measures how long the stages of a run take (--timings).
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Stage is one timed section. A nil *Stage ignores Stop, so callers need not
// check whether timings are on.
type Stage struct {
	name  string
	began time.Time

	mu   sync.Mutex
	took time.Duration
	note string
	done bool
}

// Stop records the elapsed time once; later calls are ignored.
func (s *Stage) Stop(note string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.took, s.note, s.done = time.Since(s.began), note, true
}

// Timer collects stages. Batch workers share one Timer.
type Timer struct {
	mu     sync.Mutex
	stages []*Stage
}

func NewTimer() *Timer { return &Timer{} }

// Start opens a stage; on a nil Timer it returns nil.
func (t *Timer) Start(name string) *Stage {
	if t == nil {
		return nil
	}
	s := &Stage{name: name, began: time.Now()}
	t.mu.Lock()
	t.stages = append(t.stages, s)
	t.mu.Unlock()
	return s
}

// Measure times fn; its return value becomes the note. fn runs even on a
// nil Timer.
func (t *Timer) Measure(name string, fn func() string) {
	s := t.Start(name)
	s.Stop(fn())
}

// StageReport is the serialisable view of a Stage.
type StageReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Stages  []StageReport `json:"stages"`
}

func ms(d time.Duration) float64 { return d.Seconds() * 1000 }

// Report lists stopped stages in start order. Stages overlap when files are
// evaluated in parallel, so TotalMS is wall time from the first start to the
// last stop.
func (t *Timer) Report() Report {
	t.mu.Lock()
	stages := append([]*Stage(nil), t.stages...)
	t.mu.Unlock()

	var (
		rep         Report
		first, last time.Time
	)
	for _, s := range stages {
		s.mu.Lock()
		if s.done {
			rep.Stages = append(rep.Stages, StageReport{Name: s.name, DurationMS: ms(s.took), Note: s.note})
			if first.IsZero() || s.began.Before(first) {
				first = s.began
			}
			if end := s.began.Add(s.took); end.After(last) {
				last = end
			}
		}
		s.mu.Unlock()
	}
	if len(rep.Stages) > 0 {
		rep.TotalMS = ms(last.Sub(first))
	}
	return rep
}

// Summary renders Report as the --timings table.
func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	row := func(name string, v float64, note string) {
		fmt.Fprintf(&b, "  %-20s %9.3f ms", name, v)
		if note != "" {
			fmt.Fprintf(&b, "  // %s", note)
		}
		b.WriteByte('\n')
	}
	for _, s := range rep.Stages {
		row(s.Name, s.DurationMS, s.Note)
	}
	row("total", rep.TotalMS, "")
	return b.String()
}
