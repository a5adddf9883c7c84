package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var seq, spanIDs atomic.Uint64

// Span is an open interval of work. A disabled span has ID 0 and all its
// methods are no-ops.
type Span struct {
	t      Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	begun  time.Time
	extra  map[string]string
}

func (s *Span) live() bool { return s != nil && s.id != 0 }

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !Enabled(t) || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	s := &Span{t: t, id: spanIDs.Add(1), parent: parent, scope: scope, name: name, begun: time.Now()}
	t.Emit(s.event(KindSpanBegin, s.name, s.parent, s.begun, ""))
	return s
}

func (s *Span) event(kind Kind, name string, parent uint64, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Seq:      seq.Add(1),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	}
}

// Point records an instant event inside s.
func (s *Span) Point(name, detail string) {
	if s.live() {
		s.t.Emit(s.event(KindPoint, name, s.id, time.Now(), detail))
	}
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = map[string]string{}
	}
	s.extra[key] = value
	return s
}

// End emits the end event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, s.name, s.parent, now, detail)
	ev.Extra = s.extra
	s.t.Emit(ev)
	return now.Sub(s.begun)
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

type (
	tracerKey struct{}
	spanKey   struct{}
)

// WithTracer stores t in ctx; nil stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer in ctx or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// CurrentSpanID is the innermost span opened by StartSpan, or 0.
func CurrentSpanID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(spanKey{}).(uint64)
	return id
}

// StartSpan opens a child of the current span and returns a ctx carrying it.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	sp := Begin(FromContext(ctx), scope, name, CurrentSpanID(ctx))
	if !sp.live() {
		return ctx, sp
	}
	return context.WithValue(ctx, spanKey{}, sp.id), sp
}
