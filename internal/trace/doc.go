// Package trace records what the generator is doing, for diagnosing slow or
// stuck runs.
//
// # Usage
//
//	seqgen generate --trace=- --trace-level=detail ./templates
//
// # Tracers
//
//   - Nop: disabled tracing, zero overhead
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver and ScopePass spans, LevelDetail adds
// ScopeFile, LevelDebug adds ScopeInvocation. Point events are emitted at
// every level above LevelOff.
//
// # Context propagation
//
// The context carries the tracer and the Parent new spans attach to. A
// template span stamps its display path on everything nested under it, so
// every event of a parallel run can be attributed to its template.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.BeginTemplate(t, "gen/a.go.seq", trace.ParentFrom(ctx))
//	defer span.End("")
//	ctx = trace.WithParent(ctx, span.Parent())
package trace
