// Package trace records compiler phase boundaries.
//
// Tracing is off unless requested:
//
//	structura build --trace=- --trace-level=phase hello.struct
//
// A Tracer travels through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// Levels: off, error, phase (driver and passes), detail (per file), debug.
package trace
