package buildpipeline

import (
	"sync"
)

// ChannelSink feeds the Bubble Tea view. A nil channel drops events.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch != nil {
		s.Ch <- evt
	}
}

// RecordingSink remembers every event, for --timings and tests.
type RecordingSink struct {
	mu  sync.Mutex
	log []Event
}

func (s *RecordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	s.log = append(s.log, evt)
	s.mu.Unlock()
}

func (s *RecordingSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.log...)
}

// Timings adds up Elapsed of every finished or failed stage.
func (s *RecordingSink) Timings() Timings {
	t := Timings{}
	for _, evt := range s.Events() {
		if evt.Status == StatusDone || evt.Status == StatusError {
			t[evt.Stage] += evt.Elapsed
		}
	}
	return t
}

// Emit tolerates a nil sink.
func Emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

// EmitQueued announces files before any worker picks them up.
func EmitQueued(sink ProgressSink, files []string) {
	for _, f := range files {
		Emit(sink, Event{File: f, Stage: StageTokenize, Status: StatusQueued})
	}
}
