package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"decay/internal/trace"
)

// traceSession holds the tracer of the running command.
type traceSession struct {
	tracer    trace.Tracer
	span      *trace.Span
	heartbeat time.Duration
}

var activeTrace *traceSession

func registerTraceFlags(root *cobra.Command) {
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr; .ndjson selects NDJSON)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|failure|stage|file|node)")
	root.PersistentFlags().String("trace-mode", "ring", "trace storage (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept in the ring buffer")
	root.PersistentFlags().Duration("trace-heartbeat", 0, "heartbeat interval for long runs (0 disables)")
}

// setupTracing inspects trace-related flags, initializes the tracer and
// attaches it to the command context.
func setupTracing(cmd *cobra.Command) error {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := root.PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает стадии
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelStage
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		activeTrace = nil
		return nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return fmt.Errorf("invalid trace mode: %w", err)
	}
	// явный файл без ring-буфера бесполезен в режиме ring
	if mode == trace.ModeRing && traceOutput != "" {
		mode = trace.ModeBoth
	}
	encoding, err := trace.ParseEncoding(formatStr)
	if err != nil {
		return fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:    level,
		Mode:     mode,
		Encoding: encoding,
		Path:     traceOutput,
		RingSize: ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx, span := trace.Start(trace.WithTracer(cmd.Context(), tracer), trace.ScopeCommand, "decay "+cmd.Name())
	cmd.SetContext(ctx)

	activeTrace = &traceSession{tracer: tracer, span: span, heartbeat: heartbeatInterval}
	return nil
}

// finishTracing closes the command span; on failure it dumps the ring
// buffer to errOut before closing the tracer.
func finishTracing(errOut io.Writer, runErr error) {
	s := activeTrace
	if s == nil {
		return
	}
	activeTrace = nil

	s.span.Fail(runErr)

	if runErr != nil {
		if ring, ok := trace.RingOf(s.tracer); ok {
			fmt.Fprintln(errOut, "trace: last events before failure:")
			if err := ring.Dump(errOut, trace.EncodingText); err != nil {
				fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
			}
		}
	}
	if err := s.tracer.Flush(); err != nil {
		fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
	}
	if err := s.tracer.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err)
	}
}

// heartbeatInterval returns the --trace-heartbeat value of the active session.
func heartbeatInterval() time.Duration {
	if activeTrace == nil {
		return 0
	}
	return activeTrace.heartbeat
}
