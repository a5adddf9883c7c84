// Package trace records spans of work done by the calculator: the running
// command, each batch file, each evaluated line.
//
// # Usage
//
//	bigcalc batch --trace=- --trace-level=detail sums.calc
//
// # Tracers
//
//   - Nop: tracing off
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events, dumped on exit
//   - MultiTracer: stream + ring
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver spans, LevelDetail adds ScopeFile, LevelDebug
// adds ScopeLine.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "file:"+path)
//	defer span.End("")
package trace
