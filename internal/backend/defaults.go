package backend

import "movex/internal/plan"

// DefaultVideoCodec returns the encoder used when the user supplied none.
func DefaultVideoCodec(destExt string) string {
	switch destExt {
	case "mp4", "mov", "mkv", "avi":
		return "libx264"
	case "webm":
		return "libvpx-vp9"
	}
	return ""
}

// DefaultAudioCodec returns the encoder used when the user supplied none.
// Audio-only destinations map extension to encoder directly; video
// destinations get a container-appropriate default.
func DefaultAudioCodec(destExt string, destKind plan.MediaKind) string {
	if destKind == plan.KindAudio {
		switch destExt {
		case "mp3":
			return "libmp3lame"
		case "flac":
			return "flac"
		case "wav":
			return "pcm_s16le"
		case "opus":
			return "libopus"
		case "ogg":
			return "libvorbis"
		case "m4a", "aac":
			return "aac"
		}
		return ""
	}
	switch destExt {
	case "mp4", "mov", "mkv", "avi":
		return "aac"
	case "webm":
		return "libopus"
	}
	return ""
}
