package trace

import (
	"strconv"
	"sync/atomic"
	"time"
)

type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindMark
	KindPulse
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindMark:
		return "mark"
	case KindPulse:
		return "pulse"
	}
	return "unknown"
}

// Attr is one key/value pair attached to an event. Order is preserved.
type Attr struct {
	Key   string
	Value string
}

func Str(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

func Int(key string, value int) Attr {
	return Attr{Key: key, Value: strconv.Itoa(value)}
}

// Event is what tracers receive. Seq is unique per process, so events
// fanned out to several sinks keep one order.
type Event struct {
	At     time.Time
	Seq    uint64
	Kind   Kind
	Scope  Scope
	Span   uint64 // 0 for marks and pulses
	Parent uint64
	Name   string // "parse", "file:ui/card.decay"
	Note   string // outcome of a span, detail of a mark
	Attrs  []Attr
}

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func stamp(ev Event) Event {
	ev.Seq = seqCounter.Add(1)
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	return ev
}
