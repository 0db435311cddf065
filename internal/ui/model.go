// Package ui renders parse progress for `decay parse --ui`.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"decay/internal/buildpipeline"
)

// stageWeight is how far along a file is once a stage started.
var stageWeight = map[buildpipeline.Stage]float64{
	buildpipeline.StageLoad:     0.1,
	buildpipeline.StageCache:    0.1,
	buildpipeline.StageTokenize: 0.3,
	buildpipeline.StageParse:    0.6,
}

var stageVerb = map[buildpipeline.Stage]string{
	buildpipeline.StageLoad:     "loading",
	buildpipeline.StageCache:    "cache",
	buildpipeline.StageTokenize: "tokenizing",
	buildpipeline.StageParse:    "parsing",
}

type fileRow struct {
	path   string
	label  string
	stage  buildpipeline.Stage
	final  bool
	failed bool
	took   time.Duration
}

type progressModel struct {
	title   string
	events  <-chan buildpipeline.Event
	spin    spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int
	drained bool
}

type (
	eventMsg   buildpipeline.Event
	drainedMsg struct{}
)

// NewProgressModel shows one row per file and quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	m := &progressModel{
		title:  title,
		events: events,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("6")))),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:   make([]fileRow, len(files)),
		byPath: make(map[string]int, len(files)),
		width:  80,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f, label: "queued"}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

// next blocks on the event channel inside a tea.Cmd goroutine.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return drainedMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(buildpipeline.Event(msg)), m.next())
	case drainedMsg:
		m.drained = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.drained {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

// applyEvent updates the row of ev.File. Rows that reached a final state
// ignore later events, e.g. a cache store after parse finished.
func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok || m.rows[i].final {
		return nil
	}
	row := &m.rows[i]
	row.stage = ev.Stage
	switch {
	case ev.Terminal():
		row.final = true
		row.failed = ev.Status == buildpipeline.StatusError
		row.took = ev.Elapsed
		row.label = string(ev.Status)
	case ev.Status == buildpipeline.StatusWorking:
		row.label = stageVerb[ev.Stage]
	case ev.Status == buildpipeline.StatusQueued:
		row.label = "queued"
	}
	return m.bar.SetPercent(m.fraction())
}

// fraction is the mean progress over rows; final rows count as 1.
func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		if r.final {
			sum++
		} else {
			sum += stageWeight[r.stage]
		}
	}
	return sum / float64(len(m.rows))
}

// settled returns the number of final rows and how many of them failed.
func (m *progressModel) settled() (n, failed int) {
	for _, r := range m.rows {
		if r.final {
			n++
		}
		if r.failed {
			failed++
		}
	}
	return n, failed
}
