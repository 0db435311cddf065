// Package trace is the logging layer of the decay toolchain.
//
// Commands, stages and files open spans; the parser marks every component
// it builds. Events go to a Tracer: Stream writes them as they happen,
// Ring keeps the tail in memory for a dump after a failed command, Tee
// feeds both.
//
//	decay parse --trace=- --trace-level=file ui/
//
// Spans travel in context.Context:
//
//	ctx, span := trace.Start(ctx, trace.ScopeStage, "tokenize")
//	defer span.End("")
//
// Without a tracer in the context every call is a no-op.
package trace
