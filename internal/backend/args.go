// Package backend builds the argument lists for the external tools movex
// invokes. Both the planner's command preview and the executor's real
// invocation call into this package, so the two can never drift apart.
package backend

import (
	"fmt"
	"path/filepath"
	"strings"

	"movex/internal/plan"
)

// ImageMagickArgs returns the arguments (excluding the executable name) for
// an ImageMagick conversion writing to output. PDF sources rasterize only
// page zero when the output is not itself a PDF.
func ImageMagickArgs(p *plan.Plan, output string) []string {
	source := p.Source
	if plan.NormalizeExt(p.Source) == "pdf" && plan.NormalizeExt(output) != "pdf" {
		source = fmt.Sprintf("%s[0]", p.Source)
	}

	args := []string{source}
	if p.Options.ImageQuality != nil {
		args = append(args, "-quality", fmt.Sprintf("%d", *p.Options.ImageQuality))
	}
	return append(args, output)
}

// FfmpegArgs returns the arguments for an ffmpeg conversion writing to
// output in the given mode. Machine-parseable progress is always requested
// on stdout.
func FfmpegArgs(p *plan.Plan, output string, mode Mode) []string {
	args := []string{
		"-nostdin", "-y", "-hide_banner", "-nostats",
		"-loglevel", "error",
		"-i", p.Source,
	}
	args = append(args, transcodeArgs(p, mode)...)
	args = append(args, "-progress", "pipe:1")
	return append(args, output)
}

// transcodeArgs returns the codec/bitrate/preset arguments for the chosen
// mode: a single "-c copy" for stream copy, explicit options with
// destination-kind defaults otherwise.
func transcodeArgs(p *plan.Plan, mode Mode) []string {
	if mode == ModeStreamCopy {
		return []string{"-c", "copy"}
	}

	var args []string
	opts := p.Options
	switch p.DestKind {
	case plan.KindVideo:
		videoCodec := opts.VideoCodec
		if videoCodec == "" {
			videoCodec = DefaultVideoCodec(p.DestExt)
		}
		if videoCodec != "" {
			args = append(args, "-c:v", videoCodec)
		}
		if opts.VideoBitrate != "" {
			args = append(args, "-b:v", opts.VideoBitrate)
		}
		if opts.Preset != "" {
			args = append(args, "-preset", opts.Preset)
		}
		args = append(args, audioArgs(p)...)
	case plan.KindAudio:
		args = audioArgs(p)
	}
	return args
}

func audioArgs(p *plan.Plan) []string {
	var args []string
	audioCodec := p.Options.AudioCodec
	if audioCodec == "" {
		audioCodec = DefaultAudioCodec(p.DestExt, p.DestKind)
	}
	if audioCodec != "" {
		args = append(args, "-c:a", audioCodec)
	}
	if p.Options.AudioBitrate != "" {
		args = append(args, "-b:a", p.Options.AudioBitrate)
	}
	return args
}

// LibreOfficeArgs returns the arguments for a headless LibreOffice PDF
// conversion. LibreOffice picks the output filename itself (source stem
// plus .pdf) inside outDir; the executor renames the artifact afterwards.
func LibreOfficeArgs(p *plan.Plan, outDir string) []string {
	return []string{"--headless", "--convert-to", "pdf", "--outdir", outDir, p.Source}
}

// LibreOfficeArtifact returns the path LibreOffice will write inside outDir.
func LibreOfficeArtifact(p *plan.Plan, outDir string) string {
	stem := strings.TrimSuffix(filepath.Base(p.Source), filepath.Ext(p.Source))
	return filepath.Join(outDir, stem+".pdf")
}
