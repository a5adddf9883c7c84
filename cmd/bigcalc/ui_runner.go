package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bigcalc/internal/driver"
	"bigcalc/internal/source"
	"bigcalc/internal/ui"
)

type batchOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runBatchWithUI evaluates files while a Bubble Tea program renders progress.
func runBatchWithUI(ctx context.Context, title string, files []string, opts driver.BatchOptions) (*source.FileSet, []driver.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.EvaluateFiles(ctx, files, opts)
		outcomeCh <- batchOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	final, uiErr := program.Run()
	if uiErr != nil || !ui.Finished(final) {
		// прервано пользователем: останавливаем воркеры
		cancel()
	}
	// модель больше не читает канал: досливаем, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
