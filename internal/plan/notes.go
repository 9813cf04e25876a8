package plan

import (
	"fmt"

	"github.com/hbollon/go-edlib"
)

// Advisory notes attached to a plan. Notes never block execution; they
// exist so a user reviewing a plan sees which settings will be ignored and
// what the executor may do at runtime.
func buildNotes(p *Plan, sourceExt string) []string {
	var notes []string

	if p.Strategy == StrategyConvert {
		if p.Backend == BackendNone {
			notes = append(notes, "no supported backend found for this conversion")
			if suggestion := suggestExt(p.DestExt); suggestion != "" {
				notes = append(notes, fmt.Sprintf("did you mean destination extension %q?", suggestion))
			}
		}
		if p.Backend == BackendFfmpeg {
			notes = append(notes, "ffprobe may be used at runtime to choose stream copy vs transcode")
		}
		if sourceExt == "pdf" && isPDFImagePair(sourceExt, p.DestExt) {
			notes = append(notes, "PDF to image converts the first page only")
		}
	}
	if !p.MoveSource {
		notes = append(notes, "source will be kept")
	}

	return append(notes, optionWarnings(p, sourceExt)...)
}

func optionWarnings(p *Plan, sourceExt string) []string {
	var notes []string
	opts := p.Options
	kind := p.DestKind

	if kind != KindImage && opts.ImageQuality != nil {
		notes = append(notes, "image quality ignored for non-image output")
	}
	if kind == KindDocument && !isPDFImagePair(sourceExt, p.DestExt) && opts.IsSet() {
		notes = append(notes, "media options ignored for document conversions")
	}
	if kind == KindAudio {
		if opts.VideoBitrate != "" {
			notes = append(notes, "video bitrate ignored for audio-only output")
		}
		if opts.Preset != "" {
			notes = append(notes, "preset ignored for audio-only output")
		}
		if opts.VideoCodec != "" {
			notes = append(notes, "video codec ignored for audio-only output")
		}
	}
	if kind == KindImage {
		if opts.VideoBitrate != "" {
			notes = append(notes, "video bitrate ignored for image output")
		}
		if opts.AudioBitrate != "" {
			notes = append(notes, "audio bitrate ignored for image output")
		}
		if opts.VideoCodec != "" {
			notes = append(notes, "video codec ignored for image output")
		}
		if opts.AudioCodec != "" {
			notes = append(notes, "audio codec ignored for image output")
		}
	}
	if p.Backend != BackendFfmpeg && opts.Preference != PreferenceAuto {
		notes = append(notes, "ffmpeg mode preference ignored for non-ffmpeg backend")
	}
	if opts.Preference == PreferenceStreamCopy {
		if opts.VideoBitrate != "" {
			notes = append(notes, "video bitrate ignored when stream copy is forced")
		}
		if opts.AudioBitrate != "" {
			notes = append(notes, "audio bitrate ignored when stream copy is forced")
		}
		if opts.Preset != "" {
			notes = append(notes, "preset ignored when stream copy is forced")
		}
		if opts.VideoCodec != "" {
			notes = append(notes, "video codec ignored when stream copy is forced")
		}
		if opts.AudioCodec != "" {
			notes = append(notes, "audio codec ignored when stream copy is forced")
		}
	}
	return notes
}

// suggestExt returns the closest supported destination extension when the
// requested one looks like a typo, empty otherwise.
func suggestExt(destExt string) string {
	if destExt == "" {
		return ""
	}
	best := ""
	var bestScore float32
	for _, candidate := range supportedDestExts() {
		score := edlib.JaroWinklerSimilarity(destExt, candidate)
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if bestScore < 0.84 {
		return ""
	}
	return best
}
