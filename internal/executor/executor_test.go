package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"movex/internal/plan"
	"movex/internal/probe"
	"movex/internal/probe/mocks"
	"movex/internal/progress"
)

// finishSink records terminal events so tests can assert the outcome framing.
type finishSink struct {
	started  []string
	ok       bool
	message  string
	finished bool
}

func (s *finishSink) Started(label string)                  { s.started = append(s.started, label) }
func (s *finishSink) Spinner(string, float64, string)       {}
func (s *finishSink) Progress(string, float64, float64)     {}
func (s *finishSink) Finished(label string, ok bool, m string) {
	s.finished = true
	s.ok = ok
	s.message = m
}

// orderedSink records the arrival order of every event. Spinner delivery is
// deliberately slow so a tick still in flight when the tool exits would land
// after Finished.
type orderedSink struct {
	mu     sync.Mutex
	events []string
}

func (s *orderedSink) record(kind string) {
	s.mu.Lock()
	s.events = append(s.events, kind)
	s.mu.Unlock()
}

func (s *orderedSink) Started(string) { s.record("started") }
func (s *orderedSink) Spinner(string, float64, string) {
	time.Sleep(50 * time.Millisecond)
	s.record("spinner")
}
func (s *orderedSink) Progress(string, float64, float64) { s.record("progress") }
func (s *orderedSink) Finished(string, bool, string)     { s.record("finished") }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// writeStub installs an executable shell script under dir. Tests point PATH
// at dir alone so lookups resolve only to the stubs they install.
func writeStub(t *testing.T, dir, name, script string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+script), 0o755))
}

// stubWritesLastArg produces a script that writes content to its final
// argument, mimicking tools that take the output path last.
func stubWritesLastArg(content string) string {
	return fmt.Sprintf(`for a in "$@"; do out="$a"; done
printf %q > "$out"
`, content)
}

func mustPlan(t *testing.T, source, dest string, move, backup bool, opts plan.Options) *plan.Plan {
	t.Helper()
	p, err := plan.Build(source, dest, move, backup, opts)
	require.NoError(t, err)
	return p
}

func TestExecute_RenameMovesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "payload")

	sink := &finishSink{}
	ex := New(nil, sink, nil)
	p := mustPlan(t, src, dst, true, false, plan.Options{})
	require.Equal(t, plan.StrategyRename, p.Strategy)

	require.NoError(t, ex.Execute(context.Background(), p, false))

	assert.NoFileExists(t, src)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, []string{src}, sink.started)
	assert.True(t, sink.finished)
	assert.True(t, sink.ok)
}

func TestExecute_CopyKeepsSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "sub", "b.txt")
	writeFile(t, src, "payload")

	ex := New(nil, progress.Discard, nil)
	p := mustPlan(t, src, dst, false, false, plan.Options{})
	require.Equal(t, plan.StrategyCopy, p.Strategy)

	require.NoError(t, ex.Execute(context.Background(), p, false))

	assert.FileExists(t, src)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	// No scratch files may survive in the destination directory.
	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestExecute_DestinationOccupied(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	ex := New(nil, progress.Discard, nil)
	p := mustPlan(t, src, dst, false, false, plan.Options{})

	err := ex.Execute(context.Background(), p, false)
	require.ErrorIs(t, err, ErrDestinationExists)

	data, _ := os.ReadFile(dst)
	assert.Equal(t, "old", string(data), "existing destination untouched")
}

func TestExecute_OverwriteReplaces(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	ex := New(nil, progress.Discard, nil)
	p := mustPlan(t, src, dst, false, false, plan.Options{})

	require.NoError(t, ex.Execute(context.Background(), p, true))
	data, _ := os.ReadFile(dst)
	assert.Equal(t, "new", string(data))
}

func TestExecute_BackupRotation(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")
	writeFile(t, dst, "v1")

	ex := New(nil, progress.Discard, nil)
	for i, content := range []string{"v2", "v3"} {
		src := filepath.Join(dir, fmt.Sprintf("in%d.txt", i))
		writeFile(t, src, content)
		p := mustPlan(t, src, dst, false, true, plan.Options{})
		require.NoError(t, ex.Execute(context.Background(), p, false))
	}

	read := func(path string) string {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		return string(data)
	}
	assert.Equal(t, "v3", read(dst))
	assert.Equal(t, "v1", read(dst+".bak"))
	assert.Equal(t, "v2", read(dst+".bak.1"))
}

func TestExecute_ConvertNoBackend(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "text")

	ex := New(nil, progress.Discard, nil)
	p := mustPlan(t, src, filepath.Join(dir, "a.mp3"), false, false, plan.Options{})
	require.Equal(t, plan.BackendNone, p.Backend)

	err := ex.Execute(context.Background(), p, false)
	require.ErrorIs(t, err, ErrNoBackend)
}

func TestExecute_ImageMagickFallsBackToConvert(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "convert", stubWritesLastArg("pngdata"))
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "a.png")
	writeFile(t, src, "jpgdata")

	ex := New(nil, progress.Discard, nil)
	p := mustPlan(t, src, dst, false, false, plan.Options{})
	require.Equal(t, plan.BackendImageMagick, p.Backend)

	require.NoError(t, ex.Execute(context.Background(), p, false))
	data, _ := os.ReadFile(dst)
	assert.Equal(t, "pngdata", string(data))
	assert.FileExists(t, src, "copy conversion keeps the source")
}

func TestExecute_ImageMagickMissingEntirely(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	writeFile(t, src, "jpgdata")

	ex := New(nil, progress.Discard, nil)
	p := mustPlan(t, src, filepath.Join(dir, "a.png"), false, false, plan.Options{})

	err := ex.Execute(context.Background(), p, false)
	var missing *ToolMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ImageMagick", missing.Tool)
}

func TestExecute_ToolExitFailure(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "magick", "echo 'decode error' >&2\nexit 3\n")
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "a.png")
	writeFile(t, src, "jpgdata")

	ex := New(nil, progress.Discard, nil)
	p := mustPlan(t, src, dst, false, false, plan.Options{})

	err := ex.Execute(context.Background(), p, false)
	var exit *ToolExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 3, exit.Code)
	assert.Contains(t, exit.Stderr, "decode error")
	assert.NoFileExists(t, dst)
}

func TestExecute_EmptyOutputRejected(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "magick", stubWritesLastArg(""))
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "a.png")
	writeFile(t, src, "jpgdata")

	ex := New(nil, progress.Discard, nil)
	p := mustPlan(t, src, dst, false, false, plan.Options{})

	err := ex.Execute(context.Background(), p, false)
	require.ErrorIs(t, err, ErrEmptyOutput)
	assert.NoFileExists(t, dst)
}

func TestExecute_FfmpegConvertRemovesSourceLast(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "ffmpeg", `echo "out_time_ms=5000000"
echo "progress=end"
`+stubWritesLastArg("mp4data"))
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.mkv")
	dst := filepath.Join(dir, "a.mp4")
	writeFile(t, src, "mkvdata")

	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	prober.EXPECT().
		Probe(gomock.Any(), src).
		Return(&probe.MediaInfo{DurationSeconds: 10, VideoCodec: "h264", AudioCodec: "aac"}, nil)

	sink := &finishSink{}
	ex := New(prober, sink, nil)
	p := mustPlan(t, src, dst, true, false, plan.Options{})
	require.Equal(t, plan.BackendFfmpeg, p.Backend)

	require.NoError(t, ex.Execute(context.Background(), p, false))

	data, _ := os.ReadFile(dst)
	assert.Equal(t, "mp4data", string(data))
	assert.NoFileExists(t, src, "move conversion removes the source")
	assert.True(t, sink.ok)
}

func TestExecute_FfmpegProbeFailureIsNonFatal(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "ffmpeg", stubWritesLastArg("mp4data"))
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.mkv")
	dst := filepath.Join(dir, "a.mp4")
	writeFile(t, src, "mkvdata")

	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	prober.EXPECT().
		Probe(gomock.Any(), src).
		Return(nil, errors.New("boom"))

	ex := New(prober, progress.Discard, nil)
	p := mustPlan(t, src, dst, false, false, plan.Options{})

	require.NoError(t, ex.Execute(context.Background(), p, false))
	assert.FileExists(t, dst)
}

func TestExecute_LibreOfficeArtifactCollected(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "soffice", `outdir=""
prev=""
src=""
for a in "$@"; do
  if [ "$prev" = "--outdir" ]; then outdir="$a"; fi
  prev="$a"
  src="$a"
done
base=${src##*/}
printf pdfdata > "$outdir/${base%.*}.pdf"
`)
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	src := filepath.Join(dir, "report.docx")
	dst := filepath.Join(dir, "report.pdf")
	writeFile(t, src, "docxdata")

	ex := New(nil, progress.Discard, nil)
	p := mustPlan(t, src, dst, false, false, plan.Options{})
	require.Equal(t, plan.BackendLibreOffice, p.Backend)

	require.NoError(t, ex.Execute(context.Background(), p, false))
	data, _ := os.ReadFile(dst)
	assert.Equal(t, "pdfdata", string(data))
}

func TestExecute_FinishedIsLastEvent(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "magick", "sleep 0.4\n"+stubWritesLastArg("pngdata"))
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "a.png")
	writeFile(t, src, "jpgdata")

	sink := &orderedSink{}
	ex := New(nil, sink, nil)
	p := mustPlan(t, src, dst, false, false, plan.Options{})

	require.NoError(t, ex.Execute(context.Background(), p, false))

	require.NotEmpty(t, sink.events)
	assert.Equal(t, "started", sink.events[0])
	assert.Equal(t, "finished", sink.events[len(sink.events)-1])

	finished := 0
	for _, kind := range sink.events {
		if kind == "finished" {
			finished++
		}
	}
	assert.Equal(t, 1, finished)
}

func TestExecute_ToolStderrPassesThrough(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "magick", "echo 'deprecated delegate' >&2\n"+stubWritesLastArg("pngdata"))
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "a.png")
	writeFile(t, src, "jpgdata")

	var stderr bytes.Buffer
	ex := New(nil, progress.Discard, nil)
	ex.stderr = &stderr
	p := mustPlan(t, src, dst, false, false, plan.Options{})

	require.NoError(t, ex.Execute(context.Background(), p, false))
	assert.Contains(t, stderr.String(), "deprecated delegate",
		"tool warnings on a successful run must reach stderr")
}

func TestExecute_FfmpegStderrPassesThrough(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "ffmpeg", "echo 'timestamps are unset' >&2\n"+stubWritesLastArg("mp4data"))
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.mkv")
	dst := filepath.Join(dir, "a.mp4")
	writeFile(t, src, "mkvdata")

	var stderr bytes.Buffer
	ex := New(nil, progress.Discard, nil)
	ex.stderr = &stderr
	p := mustPlan(t, src, dst, false, false, plan.Options{})

	require.NoError(t, ex.Execute(context.Background(), p, false))
	assert.Contains(t, stderr.String(), "timestamps are unset")
}

func TestExecute_ConvertLeavesNoScratchOnFailure(t *testing.T) {
	bin := t.TempDir()
	writeStub(t, bin, "magick", "exit 1\n")
	t.Setenv("PATH", bin)

	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	writeFile(t, src, "jpgdata")

	ex := New(nil, progress.Discard, nil)
	p := mustPlan(t, src, filepath.Join(dir, "a.png"), false, false, plan.Options{})

	require.Error(t, ex.Execute(context.Background(), p, false))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the source remains")
	assert.Equal(t, "a.jpg", entries[0].Name())
}
