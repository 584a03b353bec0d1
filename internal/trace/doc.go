// Package trace records structured events for the eidos front end.
//
// There is no logging library in the tool: everything that looks like a log
// line goes through a Tracer. Passes open spans, the driver opens one span
// per unit, and advisory findings are emitted as point events.
//
//	eidos check --trace=- --trace-level=detail prog.eidos.bin
//
// Levels filter by scope: phase keeps driver and pass spans, detail adds
// per-unit spans, debug keeps node-level points too.
//
//	t := trace.FromContext(ctx)
//	span := trace.Begin(t, trace.ScopePass, "analyze", parent)
//	defer span.End("")
package trace
