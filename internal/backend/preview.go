package backend

import (
	"strings"

	"movex/internal/plan"
)

// Preview renders the command line the executor would run for a plan,
// assembled from the same argument builders the executor uses. For the
// ffmpeg auto preference both candidate invocations are shown, since the
// stream-copy vs transcode decision happens at execution time. Returns ""
// when the plan needs no external tool.
func Preview(p *plan.Plan) string {
	switch p.Backend {
	case plan.BackendImageMagick:
		return render("magick", ImageMagickArgs(p, p.Destination))
	case plan.BackendFfmpeg:
		switch p.Options.Preference {
		case plan.PreferenceStreamCopy:
			return render("ffmpeg", FfmpegArgs(p, p.Destination, ModeStreamCopy))
		case plan.PreferenceTranscode:
			return render("ffmpeg", FfmpegArgs(p, p.Destination, ModeTranscode))
		default:
			streamCopy := render("ffmpeg", FfmpegArgs(p, p.Destination, ModeStreamCopy))
			transcode := render("ffmpeg", FfmpegArgs(p, p.Destination, ModeTranscode))
			return streamCopy + " (if compatible), else " + transcode
		}
	case plan.BackendLibreOffice:
		return render("soffice", LibreOfficeArgs(p, "<temp>"))
	}
	return ""
}

func render(executable string, args []string) string {
	return executable + " " + strings.Join(args, " ")
}
