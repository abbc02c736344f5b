package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"hilite/internal/driver"
	"hilite/internal/registry"
	"hilite/internal/source"
	"hilite/internal/ui"
)

type tokenizeOutcome struct {
	fileSet *source.FileSet
	results []driver.TokenizeResult
	err     error
}

// tokenizeWithUI runs TokenizeFiles while a progress model draws on out.
func tokenizeWithUI(ctx context.Context, out io.Writer, title string, reg *registry.Registry, files []string, opts driver.Options) (*source.FileSet, []driver.TokenizeResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan tokenizeOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(ev driver.Event) { events <- ev }
		fs, res, err := driver.TokenizeFiles(ctx, reg, files, optsCopy)
		outcomeCh <- tokenizeOutcome{fileSet: fs, results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out))
	_, uiErr := program.Run()
	// the UI may quit early (ctrl+c); keep the workers unblocked
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
