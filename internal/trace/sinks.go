package trace

import (
	"errors"
	"io"
	"sync"
	"time"
)

// Stream writes every event to w as it arrives.
type Stream struct {
	mu      sync.Mutex
	w       io.Writer
	level   Level
	enc     Encoding
	session string
	origin  time.Time
}

func NewStream(w io.Writer, level Level, enc Encoding, session string) *Stream {
	if enc == EncodingAuto {
		enc = EncodingText
	}
	return &Stream{w: w, level: level, enc: enc, session: session, origin: time.Now()}
}

func (s *Stream) Emit(ev Event) {
	if ev.Kind != KindPulse && !s.level.Allows(ev.Scope) {
		return
	}
	line := Encode(ev, s.enc, s.origin, s.session)
	s.mu.Lock()
	defer s.mu.Unlock()
	// трассировка не должна ронять команду
	_, _ = s.w.Write(line)
}

func (s *Stream) Level() Level { return s.level }

func (s *Stream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch w := s.w.(type) {
	case interface{ Flush() error }:
		return w.Flush()
	case interface{ Sync() error }:
		return w.Sync()
	}
	return nil
}

func (s *Stream) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Ring keeps the most recent events in a fixed buffer.
type Ring struct {
	mu     sync.Mutex
	buf    []Event
	next   int
	filled bool
	level  Level
	origin time.Time
}

func NewRing(size int, level Level) *Ring {
	if size <= 0 {
		size = defaultRingSize
	}
	return &Ring{buf: make([]Event, size), level: level, origin: time.Now()}
}

func (r *Ring) Emit(ev Event) {
	if ev.Kind != KindPulse && !r.level.Allows(ev.Scope) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = ev
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.filled = true
	}
}

// Events returns the buffered events oldest first.
func (r *Ring) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.filled {
		return append([]Event(nil), r.buf[:r.next]...)
	}
	out := make([]Event, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}

// Dump writes the buffered events to w.
func (r *Ring) Dump(w io.Writer, enc Encoding) error {
	for _, ev := range r.Events() {
		if _, err := w.Write(Encode(ev, enc, r.origin, "")); err != nil {
			return err
		}
	}
	return nil
}

func (r *Ring) Level() Level { return r.level }
func (r *Ring) Flush() error { return nil }
func (r *Ring) Close() error { return nil }

// Tee forwards every event to all sinks.
type Tee struct {
	level Level
	sinks []Tracer
}

func NewTee(level Level, sinks ...Tracer) *Tee {
	return &Tee{level: level, sinks: sinks}
}

func (t *Tee) Emit(ev Event) {
	for _, s := range t.sinks {
		s.Emit(ev)
	}
}

func (t *Tee) Level() Level { return t.level }

func (t *Tee) Flush() error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, s.Flush())
	}
	return errors.Join(errs...)
}

func (t *Tee) Close() error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

// RingOf finds the ring buffer behind t.
func RingOf(t Tracer) (*Ring, bool) {
	switch v := t.(type) {
	case *Ring:
		return v, true
	case *Tee:
		for _, s := range v.sinks {
			if r, ok := RingOf(s); ok {
				return r, true
			}
		}
	}
	return nil, false
}
