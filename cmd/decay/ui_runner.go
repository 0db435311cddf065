package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"decay/internal/buildpipeline"
	"decay/internal/driver"
	"decay/internal/source"
	"decay/internal/ui"
)

type parseOutcome struct {
	fs      *source.FileSet
	results []*driver.ParseResult
	err     error
}

// uiWanted decides --ui; auto needs both stdout and stderr on a terminal.
func uiWanted(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stdout) && isTerminal(os.Stderr), nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// teeSink fans one event out to several sinks.
type teeSink []buildpipeline.ProgressSink

func (t teeSink) OnEvent(evt buildpipeline.Event) {
	for _, s := range t {
		buildpipeline.Emit(s, evt)
	}
}

// runParseWithUI parses files while a Bubble Tea view renders progress on stderr.
func runParseWithUI(ctx context.Context, title, baseDir string, files []string, opts driver.ParseOptions) (*source.FileSet, []*driver.ParseResult, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan parseOutcome, 1)

	display := make([]string, len(files))
	for i, path := range files {
		display[i] = driver.DisplayPath(path, baseDir)
	}

	go func() {
		optsCopy := opts
		optsCopy.Progress = teeSink{opts.Progress, buildpipeline.ChannelSink{Ch: events}}
		fs, results, err := driver.ParseFiles(ctx, baseDir, files, optsCopy)
		outcomeCh <- parseOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, display, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог выйти раньше (ошибка, Ctrl+C): дочитываем события, иначе воркеры встанут на полном канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
