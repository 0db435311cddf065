// Package buildpipeline carries per-file progress from the driver to the
// progress view and to --timings.
package buildpipeline

import "time"

type Stage string

const (
	StageLoad     Stage = "load"
	StageCache    Stage = "cache" // поиск или запись в дисковый кэш AST
	StageTokenize Stage = "tokenize"
	StageParse    Stage = "parse"
)

type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event is one transition of one file. Elapsed is set on done and error.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Terminal is true for the last event a file produces: any error, or the
// end of parsing.
func (e Event) Terminal() bool {
	switch e.Status {
	case StatusError:
		return true
	case StatusDone:
		return e.Stage == StageParse
	}
	return false
}

// ProgressSink must be safe for concurrent use; workers emit in parallel.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings is time spent per stage, summed over files. Reads of a nil
// Timings are fine.
type Timings map[Stage]time.Duration

func (t Timings) Has(stage Stage) bool {
	_, ok := t[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration { return t[stage] }

func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, s := range stages {
		total += t[s]
	}
	return total
}
