// Package trace records what hilite does while it loads definitions,
// serves documents and tokenizes buffers.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	hilite highlight --trace=- --trace-level=detail Main.java
//
// # Tracers
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: keeps the last events in memory
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only failures (rejected definitions, I/O errors)
//   - LevelPhase: command and registry boundaries
//   - LevelDetail: per-document events
//   - LevelDebug: everything including single tokens
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeRegistry, "load-dir", 0)
//	defer span.End("")
package trace
