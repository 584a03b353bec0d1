package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"eidos/internal/driver"
	"eidos/internal/ui"
)

type checkOutcome struct {
	results []*driver.UnitResult
	err     error
}

func runCheckWithUI(ctx context.Context, title string, units []string, opts driver.Options) ([]*driver.UnitResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckUnits(ctx, units, opts)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, units, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the producer from blocking on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
