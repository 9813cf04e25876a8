// Package tui renders interactive terminal views: a live progress display
// for batch runs and a guided wizard that assembles a single operation.
package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"

	"movex/internal/progress"
)

// eventBuffer sizes the sink channel; update events beyond it are dropped
// rather than slowing the worker down.
const eventBuffer = 256

// RunBatch executes run while rendering its progress events interactively.
// run receives the sink it must report through and is responsible for
// emitting the usual Started/Finished framing per item; the view drains
// events until run returns.
func RunBatch(ctx context.Context, total int, run func(ctx context.Context, sink progress.Sink) error) error {
	sink := progress.NewChannelSink(eventBuffer)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer sink.Close()
		return run(ctx, sink)
	})
	g.Go(func() error {
		render(sink.Events(), total)
		return nil
	})
	return g.Wait()
}

func render(events <-chan progress.Event, total int) {
	bar, err := pterm.DefaultProgressbar.WithTotal(total).WithTitle("starting").Start()
	if err != nil {
		// Rendering is cosmetic; keep draining so the worker never blocks.
		for range events {
		}
		return
	}
	defer func() { _, _ = bar.Stop() }()

	for ev := range events {
		name := filepath.Base(ev.Label)
		switch ev.Kind {
		case progress.EventStarted:
			bar.UpdateTitle(name)
		case progress.EventSpinner:
			bar.UpdateTitle(fmt.Sprintf("%s (%s %.0fs)", name, ev.Message, ev.ElapsedSeconds))
		case progress.EventProgress:
			bar.UpdateTitle(fmt.Sprintf("%s %3.0f%%", name, ev.Percent))
		case progress.EventFinished:
			if ev.OK {
				pterm.Success.Println(name + ": " + ev.Message)
			} else {
				pterm.Error.Println(name + ": " + ev.Message)
			}
			bar.Increment()
		}
	}
}
