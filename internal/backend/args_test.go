package backend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movex/internal/plan"
)

func TestImageMagickArgs(t *testing.T) {
	quality := 85
	p := mustPlan(t, "photo.png", "photo.jpg", plan.Options{ImageQuality: &quality})

	args := ImageMagickArgs(p, "photo.jpg")
	assert.Equal(t, []string{"photo.png", "-quality", "85", "photo.jpg"}, args)
}

func TestImageMagickArgs_PDFSelectsFirstPage(t *testing.T) {
	p := mustPlan(t, "doc.pdf", "page.png", plan.Options{})
	args := ImageMagickArgs(p, "page.png")
	assert.Equal(t, "doc.pdf[0]", args[0])

	// PDF output keeps the plain source argument.
	p = mustPlan(t, "page.png", "doc.pdf", plan.Options{})
	args = ImageMagickArgs(p, "doc.pdf")
	assert.Equal(t, "page.png", args[0])
}

func TestFfmpegArgs_StreamCopy(t *testing.T) {
	p := mustPlan(t, "in.mp4", "out.mkv", plan.Options{})
	args := FfmpegArgs(p, "out.mkv", ModeStreamCopy)

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-i in.mp4")
	assert.Contains(t, joined, "-c copy")
	assert.Contains(t, joined, "-progress pipe:1")
	assert.Equal(t, "out.mkv", args[len(args)-1])
	assert.NotContains(t, joined, "-c:v", "stream copy must not carry encoder flags")
}

func TestFfmpegArgs_TranscodeVideoDefaults(t *testing.T) {
	p := mustPlan(t, "in.avi", "out.mp4", plan.Options{})
	joined := strings.Join(FfmpegArgs(p, "out.mp4", ModeTranscode), " ")
	assert.Contains(t, joined, "-c:v libx264")
	assert.Contains(t, joined, "-c:a aac")

	p = mustPlan(t, "in.avi", "out.webm", plan.Options{})
	joined = strings.Join(FfmpegArgs(p, "out.webm", ModeTranscode), " ")
	assert.Contains(t, joined, "-c:v libvpx-vp9")
	assert.Contains(t, joined, "-c:a libopus")
}

func TestFfmpegArgs_TranscodeExplicitOptions(t *testing.T) {
	p := mustPlan(t, "in.avi", "out.mp4", plan.Options{
		VideoCodec:   "libx265",
		VideoBitrate: "2500k",
		AudioBitrate: "192k",
		Preset:       "slow",
	})
	joined := strings.Join(FfmpegArgs(p, "out.mp4", ModeTranscode), " ")
	assert.Contains(t, joined, "-c:v libx265")
	assert.Contains(t, joined, "-b:v 2500k")
	assert.Contains(t, joined, "-preset slow")
	assert.Contains(t, joined, "-b:a 192k")
}

func TestFfmpegArgs_AudioDestinations(t *testing.T) {
	tests := map[string]string{
		"out.mp3":  "libmp3lame",
		"out.flac": "flac",
		"out.wav":  "pcm_s16le",
		"out.opus": "libopus",
		"out.ogg":  "libvorbis",
		"out.m4a":  "aac",
	}
	for dest, codec := range tests {
		p := mustPlan(t, "in.wav", dest, plan.Options{})
		if p.Strategy != plan.StrategyConvert {
			// wav -> wav is a copy, swap the source.
			p = mustPlan(t, "in.mp4", dest, plan.Options{})
		}
		joined := strings.Join(FfmpegArgs(p, dest, ModeTranscode), " ")
		assert.Contains(t, joined, "-c:a "+codec, "dest %s", dest)
		assert.NotContains(t, joined, "-c:v", "audio-only output must not set a video codec")
	}
}

func TestLibreOfficeArtifact(t *testing.T) {
	p := mustPlan(t, "/docs/report.docx", "/out/final.pdf", plan.Options{})
	assert.Equal(t, "/tmp/work/report.pdf", LibreOfficeArtifact(p, "/tmp/work"))
}

func TestPreview_MatchesBuilders(t *testing.T) {
	quality := 70
	p := mustPlan(t, "a.png", "b.jpg", plan.Options{ImageQuality: &quality})
	assert.Equal(t, "magick "+strings.Join(ImageMagickArgs(p, "b.jpg"), " "), Preview(p))
}

func TestPreview_AutoShowsBothCandidates(t *testing.T) {
	p := mustPlan(t, "in.mp4", "out.webm", plan.Options{})
	preview := Preview(p)
	assert.Contains(t, preview, "-c copy")
	assert.Contains(t, preview, "-c:v libvpx-vp9")
	assert.Contains(t, preview, "(if compatible), else")
}

func TestPreview_NoBackend(t *testing.T) {
	p := mustPlan(t, "a.docx", "b.png", plan.Options{})
	assert.Empty(t, Preview(p))
}

func TestCandidates(t *testing.T) {
	require.Equal(t, []string{"magick", "convert"}, Candidates(plan.BackendImageMagick))
	require.Equal(t, []string{"ffmpeg"}, Candidates(plan.BackendFfmpeg))
	require.Equal(t, []string{"soffice"}, Candidates(plan.BackendLibreOffice))
	require.Nil(t, Candidates(plan.BackendNone))
}
