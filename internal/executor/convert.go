package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"movex/internal/backend"
	"movex/internal/plan"
	"movex/internal/probe"
	"movex/internal/progress"
)

// convert runs the plan's backend into a scratch directory beside the
// destination, validates the output, then publishes it atomically. The
// source is removed only after the destination is fully in place.
func (e *Executor) convert(ctx context.Context, p *plan.Plan) error {
	if p.Backend == plan.BackendNone {
		return fmt.Errorf("%w: %s -> %s", ErrNoBackend, p.Source, p.Destination)
	}

	tempDir, err := os.MkdirTemp(filepath.Dir(p.Destination), tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	output := filepath.Join(tempDir, "output."+p.DestExt)

	switch p.Backend {
	case plan.BackendImageMagick:
		err = e.runImageMagick(ctx, p, output)
	case plan.BackendFfmpeg:
		err = e.runFfmpeg(ctx, p, output)
	case plan.BackendLibreOffice:
		err = e.runLibreOffice(ctx, p, tempDir, output)
	default:
		err = fmt.Errorf("unknown backend %q", p.Backend)
	}
	if err != nil {
		return err
	}

	if err := ensureNonEmpty(output); err != nil {
		return err
	}
	if err := os.Rename(output, p.Destination); err != nil {
		return fmt.Errorf("finalizing %s: %w", p.Destination, err)
	}
	if p.MoveSource {
		if err := os.Remove(p.Source); err != nil {
			return fmt.Errorf("removing source after conversion: %w", err)
		}
	}
	return nil
}

// runImageMagick tries each candidate binary in order; ImageMagick 7 installs
// "magick" while older packages only ship "convert".
func (e *Executor) runImageMagick(ctx context.Context, p *plan.Plan, output string) error {
	args := backend.ImageMagickArgs(p, output)
	for _, tool := range backend.Candidates(p.Backend) {
		err := e.runSpinning(ctx, p.Source, tool, args)
		if isNotFound(err) {
			e.log.Debug("tool not on PATH, trying next candidate", "tool", tool)
			continue
		}
		return err
	}
	return &ToolMissingError{Tool: backend.DisplayName(p.Backend), Hint: backend.InstallHint(p.Backend)}
}

func (e *Executor) runFfmpeg(ctx context.Context, p *plan.Plan, output string) error {
	var info *probe.MediaInfo
	if e.prober != nil {
		var err error
		info, err = e.prober.Probe(ctx, p.Source)
		if err != nil {
			// Probing is best effort. Without stream info the mode decision
			// falls back to transcoding and progress has no total duration.
			if errors.Is(err, probe.ErrNotFound) {
				e.log.Warn("ffprobe unavailable, proceeding without stream info", "err", err)
			} else {
				e.log.Warn("probe failed, proceeding without stream info", "source", p.Source, "err", err)
			}
			info = nil
		}
	}

	mode := backend.DecideMode(p, info)
	e.log.Debug("resolved ffmpeg mode", "source", p.Source, "mode", mode)

	cmd := exec.CommandContext(ctx, "ffmpeg", backend.FfmpegArgs(p, output, mode)...)
	var tail bytes.Buffer
	cmd.Stderr = io.MultiWriter(e.stderr, &tail)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("creating progress pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		if isNotFound(err) {
			return &ToolMissingError{Tool: "ffmpeg", Hint: backend.InstallHint(plan.BackendFfmpeg)}
		}
		return fmt.Errorf("starting ffmpeg: %w", err)
	}

	var duration float64
	if info != nil {
		duration = info.DurationSeconds
	}
	progress.StreamFfmpeg(stdout, p.Source, duration, e.sink)

	if err := cmd.Wait(); err != nil {
		return wrapToolError("ffmpeg", err, tail.String())
	}
	return nil
}

// runLibreOffice converts into the scratch directory, then moves the
// artifact LibreOffice named after the source stem onto the expected output
// path.
func (e *Executor) runLibreOffice(ctx context.Context, p *plan.Plan, tempDir, output string) error {
	err := e.runSpinning(ctx, p.Source, "soffice", backend.LibreOfficeArgs(p, tempDir))
	if isNotFound(err) {
		return &ToolMissingError{Tool: backend.DisplayName(p.Backend), Hint: backend.InstallHint(p.Backend)}
	}
	if err != nil {
		return err
	}
	artifact := backend.LibreOfficeArtifact(p, tempDir)
	if err := os.Rename(artifact, output); err != nil {
		return fmt.Errorf("collecting LibreOffice output: %w", err)
	}
	return nil
}

// runSpinning runs a tool that reports no progress of its own, emitting
// liveness ticks until it exits. The spinner goroutine is joined before
// returning so no tick can land after the caller's Finished event.
func (e *Executor) runSpinning(ctx context.Context, label, tool string, args []string) error {
	cmd := exec.CommandContext(ctx, tool, args...)
	var tail bytes.Buffer
	cmd.Stderr = io.MultiWriter(e.stderr, &tail)

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		progress.Spin(done, label, tool, e.sink)
	}()
	err := cmd.Run()
	close(done)
	<-stopped

	if err != nil {
		return wrapToolError(tool, err, tail.String())
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}

func wrapToolError(tool string, err error, stderr string) error {
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return &ToolExitError{Tool: tool, Code: exit.ExitCode(), Stderr: stderrTail(stderr)}
	}
	return fmt.Errorf("running %s: %w", tool, err)
}

// stderrTail keeps error messages single-screen: the last few lines of tool
// stderr are where the actionable message lives.
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	if len(lines) > 4 {
		lines = lines[len(lines)-4:]
	}
	return strings.Join(lines, "\n")
}

func ensureNonEmpty(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrEmptyOutput, path)
		}
		return fmt.Errorf("checking output: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyOutput, path)
	}
	return nil
}
