package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Lap is one measured step. Took stays zero until the step is stopped.
type Lap struct {
	Name string
	Took time.Duration
	Note string
}

// Timer collects laps for --timings. Parallel parses share one Timer, so
// laps may overlap and their sum can exceed the wall time.
type Timer struct {
	mu     sync.Mutex
	origin time.Time
	laps   []Lap
}

func NewTimer() *Timer {
	return &Timer{origin: time.Now()}
}

// Begin opens a lap and returns the function that closes it. Calling the
// returned function more than once keeps the first note.
func (t *Timer) Begin(name string) (stop func(note string)) {
	if t == nil {
		return func(string) {}
	}
	started := time.Now()
	t.mu.Lock()
	t.laps = append(t.laps, Lap{Name: name})
	slot := len(t.laps) - 1
	t.mu.Unlock()

	var once sync.Once
	return func(note string) {
		once.Do(func() {
			t.mu.Lock()
			t.laps[slot].Took = time.Since(started)
			t.laps[slot].Note = note
			t.mu.Unlock()
		})
	}
}

// Measure times fn; a failing fn gets the note "failed".
func (t *Timer) Measure(name string, fn func() error) error {
	stop := t.Begin(name)
	err := fn()
	if err != nil {
		stop("failed")
	} else {
		stop("")
	}
	return err
}

// Laps returns a snapshot in start order.
func (t *Timer) Laps() []Lap {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Lap(nil), t.laps...)
}

// Summary renders a table with a "sum" row and a "wall" row.
func (t *Timer) Summary() string {
	if t == nil {
		return ""
	}
	laps := t.Laps()
	width := len("wall")
	for _, l := range laps {
		width = max(width, len(l.Name))
	}

	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, d time.Duration, note string) {
		fmt.Fprintf(&sb, "  %-*s %9s", width, name, millis(d))
		if note != "" {
			sb.WriteString("  // " + note)
		}
		sb.WriteByte('\n')
	}
	var sum time.Duration
	for _, l := range laps {
		sum += l.Took
		row(l.Name, l.Took, l.Note)
	}
	row("sum", sum, "")
	row("wall", time.Since(t.origin), "")
	return sb.String()
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}
