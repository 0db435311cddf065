package trace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Tracer consumes events. Emit must be safe for concurrent use.
type Tracer interface {
	Emit(ev Event)
	Level() Level
	Flush() error
	Close() error
}

type nopTracer struct{}

func (nopTracer) Emit(Event) {}
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }

// Nop drops everything.
var Nop Tracer = nopTracer{}

func active(t Tracer, scope Scope) bool {
	return t != nil && t.Level().Allows(scope)
}

// Mode picks where events are kept.
type Mode uint8

const (
	ModeStream Mode = iota + 1
	ModeRing
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	}
	return "unknown"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	}
	return ModeRing, fmt.Errorf("unknown trace mode %q (want stream|ring|both)", s)
}

type Config struct {
	Level    Level
	Mode     Mode
	Encoding Encoding
	// Output wins over Path; Path "-" or "" means stderr.
	Output   io.Writer
	Path     string
	RingSize int
	// Session tags NDJSON lines; a random id is used when empty.
	Session  string
}

const defaultRingSize = 4096

// New builds the tracer described by cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Session == "" {
		cfg.Session = uuid.NewString()
	}
	enc := cfg.Encoding
	if enc == EncodingAuto {
		enc = encodingForPath(cfg.Path)
	}

	if cfg.Mode == ModeRing {
		return NewRing(cfg.RingSize, cfg.Level), nil
	}
	if cfg.Mode != ModeStream && cfg.Mode != ModeBoth {
		return nil, fmt.Errorf("trace: unknown mode %v", cfg.Mode)
	}

	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	stream := NewStream(w, cfg.Level, enc, cfg.Session)
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return NewTee(cfg.Level, stream, NewRing(cfg.RingSize, cfg.Level)), nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.Path == "" || cfg.Path == "-" {
		return keepOpen{os.Stderr}, nil
	}
	f, err := os.Create(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("trace: open output: %w", err)
	}
	return f, nil
}

// keepOpen hides Close so stderr survives Tracer.Close.
type keepOpen struct{ io.Writer }
