// Package executor carries out a prepared plan against the filesystem. Every
// strategy writes through a temporary file in the destination's directory and
// finishes with an atomic rename, so an interrupted run never leaves a
// partially written destination behind.
package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"movex/internal/plan"
	"movex/internal/probe"
	"movex/internal/progress"
)

// tempPrefix marks the scratch files and directories this package creates
// beside the destination.
const tempPrefix = ".movex-"

// Executor runs plans. It is safe to reuse across plans but not across
// goroutines; batch runs execute sequentially.
type Executor struct {
	prober probe.Prober
	sink   progress.Sink
	log    *slog.Logger

	// stderr receives backend tool stderr as it is produced, so warnings on
	// successful runs still reach the user. The trailing lines are also kept
	// for error reporting.
	stderr io.Writer
}

// New creates an executor reporting through sink. prober may be nil when no
// ffmpeg conversions will run. Tool stderr passes through to the process
// stderr.
func New(prober probe.Prober, sink progress.Sink, log *slog.Logger) *Executor {
	if sink == nil {
		sink = progress.Discard
	}
	if log == nil {
		log = slog.Default()
	}
	return &Executor{prober: prober, sink: sink, log: log, stderr: os.Stderr}
}

// Execute runs p, framing the work with Started and Finished events. The
// event label is the plan's source path.
func (e *Executor) Execute(ctx context.Context, p *plan.Plan, overwrite bool) error {
	label := p.Source
	e.sink.Started(label)
	err := e.run(ctx, p, overwrite)
	if err != nil {
		e.sink.Finished(label, false, err.Error())
		return err
	}
	e.sink.Finished(label, true, fmt.Sprintf("wrote %s", p.Destination))
	return nil
}

func (e *Executor) run(ctx context.Context, p *plan.Plan, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(p.Destination), 0o755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}
	if err := e.prepareDestination(p, overwrite); err != nil {
		return err
	}

	switch p.Strategy {
	case plan.StrategyRename:
		return e.rename(p)
	case plan.StrategyCopy:
		return e.copy(p)
	case plan.StrategyConvert:
		return e.convert(ctx, p)
	default:
		return fmt.Errorf("unknown strategy %q", p.Strategy)
	}
}

// prepareDestination enforces the occupancy rules before any writing starts.
// With backup the existing file is rotated aside immediately; with overwrite
// it stays in place until the final rename replaces it.
func (e *Executor) prepareDestination(p *plan.Plan, overwrite bool) error {
	if _, err := os.Lstat(p.Destination); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking destination: %w", err)
	}
	if p.Backup {
		moved, err := rotateBackup(p.Destination)
		if err != nil {
			return err
		}
		e.log.Info("rotated existing destination", "destination", p.Destination, "backup", moved)
		return nil
	}
	if overwrite {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrDestinationExists, p.Destination)
}

func (e *Executor) rename(p *plan.Plan) error {
	if err := os.Rename(p.Source, p.Destination); err != nil {
		return fmt.Errorf("renaming %s: %w", p.Source, err)
	}
	return nil
}

// copy writes the source into a hidden temporary file beside the destination
// and publishes it with a rename.
func (e *Executor) copy(p *plan.Plan) error {
	src, err := os.Open(p.Source)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.Destination), tempPrefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return fmt.Errorf("copying to %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmpPath, err)
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions on %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, p.Destination); err != nil {
		return fmt.Errorf("finalizing %s: %w", p.Destination, err)
	}
	return nil
}
