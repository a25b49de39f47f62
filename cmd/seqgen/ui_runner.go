package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"seqgen/internal/driver"
	"seqgen/internal/pipeline"
	"seqgen/internal/ui"
)

type generateOutcome struct {
	result *driver.GenerateResult
	err    error
}

// runGenerateWithUI runs GenerateDir in the background and renders its
// progress events until it finishes.
func runGenerateWithUI(ctx context.Context, title string, files, paths []string, opts *driver.GenerateOptions) (*driver.GenerateResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan generateOutcome, 1)

	go func() {
		optsCopy := *opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.GenerateDir(ctx, paths, optsCopy)
		outcomeCh <- generateOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы воркеры не заблокировались
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
