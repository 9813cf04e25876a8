package main

import (
	"context"
	"log/slog"
	"time"

	"movex/internal/history"
	"movex/internal/plan"
)

// openHistory opens the history store unless disabled. Failures are logged
// and swallowed: history must never block a file operation.
func openHistory() *history.Store {
	if noHistory {
		return nil
	}
	store, err := history.Open(history.DefaultPath())
	if err != nil {
		slog.Warn("history unavailable", "err", err)
		return nil
	}
	return store
}

// recordEntry writes one operation into history. p is nil when planning
// itself failed.
func recordEntry(ctx context.Context, store *history.Store, p *plan.Plan, source, destination string, execErr error, elapsed time.Duration) {
	entry := history.Entry{
		Source:      source,
		Destination: destination,
		OK:          execErr == nil,
		DurationMS:  elapsed.Milliseconds(),
	}
	if p != nil {
		entry.Strategy = p.Strategy.String()
		entry.Backend = string(p.Backend)
	}
	if execErr != nil {
		entry.Error = execErr.Error()
	}
	if err := store.Record(ctx, entry); err != nil {
		slog.Warn("recording history failed", "err", err)
	}
}
