package backend

import (
	"movex/internal/plan"
	"movex/internal/probe"
)

// Mode is the resolved ffmpeg invocation mode.
type Mode string

const (
	// ModeStreamCopy repackages existing streams into the new container
	// without re-encoding.
	ModeStreamCopy Mode = "stream-copy"
	// ModeTranscode decodes and re-encodes.
	ModeTranscode Mode = "transcode"
)

// Containers and the codecs they can hold without re-encoding.
var (
	mp4Video = map[string]bool{"h264": true, "hevc": true, "mpeg4": true, "av1": true}
	mp4Audio = map[string]bool{"aac": true, "mp3": true, "alac": true}

	webmVideo = map[string]bool{"vp8": true, "vp9": true, "av1": true}
	webmAudio = map[string]bool{"opus": true, "vorbis": true}
)

// DecideMode resolves the ffmpeg mode for a plan. An explicit preference
// short-circuits everything. Otherwise the decision is conservative: any
// missing information (no destination extension, no probe data, no video
// stream) means transcode, since a bad stream copy produces a broken file
// while a redundant transcode merely wastes time.
func DecideMode(p *plan.Plan, info *probe.MediaInfo) Mode {
	switch p.Options.Preference {
	case plan.PreferenceStreamCopy:
		return ModeStreamCopy
	case plan.PreferenceTranscode:
		return ModeTranscode
	}

	// Audio-only outputs always transcode: the source container's audio
	// codec rarely matches what the destination extension implies.
	if p.DestKind == plan.KindAudio {
		return ModeTranscode
	}
	if p.DestExt == "" || info == nil || info.VideoCodec == "" {
		return ModeTranscode
	}

	// mkv holds nearly anything.
	if p.DestExt == "mkv" {
		return ModeStreamCopy
	}

	switch p.DestExt {
	case "mp4", "mov":
		if mp4Video[info.VideoCodec] && (info.AudioCodec == "" || mp4Audio[info.AudioCodec]) {
			return ModeStreamCopy
		}
	case "webm":
		if webmVideo[info.VideoCodec] && (info.AudioCodec == "" || webmAudio[info.AudioCodec]) {
			return ModeStreamCopy
		}
	}
	return ModeTranscode
}
