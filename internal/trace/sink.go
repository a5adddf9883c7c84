package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Tracer receives events. Implementations are safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
}

// Enabled reports whether t records anything at all.
func Enabled(t Tracer) bool {
	return t != nil && t.Level() > LevelOff
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }

// Nop records nothing.
var Nop Tracer = nopTracer{}

// StreamTracer writes each event as soon as it arrives. Write errors are
// dropped so tracing cannot change evaluation results.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	line := ev.Encode(t.format)
	t.mu.Lock()
	_, _ = t.w.Write(line) //nolint:errcheck
	t.mu.Unlock()
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flushLocked()
}

func (t *StreamTracer) flushLocked() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes files it was given; stderr is never closed.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.flushLocked()
	if c, ok := t.w.(io.Closer); ok && t.w != os.Stderr {
		err = errors.Join(err, c.Close())
	}
	return err
}

func (t *StreamTracer) Level() Level { return t.level }

// RingTracer keeps the newest events in a fixed buffer.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	start int // oldest event
	n     int
	level Level
}

// DefaultRingSize is used when the configured size is not positive.
const DefaultRingSize = 4096

func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = *ev
		t.n++
		return
	}
	// полон: затираем самое старое
	t.buf[t.start] = *ev
	t.start = (t.start + 1) % len(t.buf)
}

// Snapshot copies the buffered events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(ev.Encode(format)); err != nil {
			return fmt.Errorf("trace dump: %w", err)
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }
func (t *RingTracer) Level() Level { return t.level }

// MultiTracer sends every event to each child.
type MultiTracer struct {
	children []Tracer
	level    Level
}

func NewMultiTracer(level Level, children ...Tracer) *MultiTracer {
	return &MultiTracer{children: children, level: level}
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, c := range t.children {
		cp := *ev
		c.Emit(&cp)
	}
}

func (t *MultiTracer) each(fn func(Tracer) error) error {
	var err error
	for _, c := range t.children {
		err = errors.Join(err, fn(c))
	}
	return err
}

func (t *MultiTracer) Flush() error { return t.each(Tracer.Flush) }
func (t *MultiTracer) Close() error { return t.each(Tracer.Close) }
func (t *MultiTracer) Level() Level { return t.level }

// Ring returns the first ring child or nil.
func (t *MultiTracer) Ring() *RingTracer {
	for _, c := range t.children {
		if r, ok := c.(*RingTracer); ok {
			return r
		}
	}
	return nil
}

// Config describes the tracer built by New.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format
	Output     io.Writer // wins over OutputPath
	OutputPath string    // "" or "-" is stderr
	RingSize   int
}

// New builds the tracer for cfg; LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format.resolve(cfg.OutputPath)
	stream := func() (Tracer, error) {
		w := cfg.Output
		switch {
		case w != nil:
		case cfg.OutputPath == "" || cfg.OutputPath == "-":
			w = os.Stderr
		default:
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open trace output: %w", err)
			}
			w = f
		}
		return NewStreamTracer(w, cfg.Level, format), nil
	}

	switch cfg.Mode {
	case ModeStream:
		return stream()
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeBoth:
		s, err := stream()
		if err != nil {
			return nil, err
		}
		return NewMultiTracer(cfg.Level, s, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
}
