package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cratekit/manifest-format/ui"
	"github.com/cratekit/manifest-format/workspace"
)

type runOutcome struct {
	sum *workspace.Summary
	err error
}

// runWithUI runs the batch under a progress display.  The runner works
// in a goroutine and feeds events to the model; closing the event
// channel ends the program.
func runWithUI(ctx context.Context, runner *workspace.Runner) (*workspace.Summary, error) {
	paths, err := workspace.Discover(runner.Root)
	if err != nil {
		return nil, err
	}
	events := make(chan workspace.Event, 256)
	outcomeCh := make(chan runOutcome, 1)
	runner.Sink = workspace.ChannelSink{Ch: events}

	go func() {
		sum, err := runner.RunPaths(ctx, paths)
		outcomeCh <- runOutcome{sum: sum, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("cargofmt", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		outcome.err = uiErr
	}
	return outcome.sum, outcome.err
}
