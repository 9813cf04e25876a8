package backend

import "movex/internal/plan"

// Candidates returns the executable names to try for a backend, in order.
// ImageMagick ships as "magick" since version 7 and as "convert" before
// that; the executor tries each until one is present.
func Candidates(b plan.Backend) []string {
	switch b {
	case plan.BackendImageMagick:
		return []string{"magick", "convert"}
	case plan.BackendFfmpeg:
		return []string{"ffmpeg"}
	case plan.BackendLibreOffice:
		return []string{"soffice"}
	}
	return nil
}

// DisplayName returns the tool name used in progress and error messages.
func DisplayName(b plan.Backend) string {
	switch b {
	case plan.BackendImageMagick:
		return "ImageMagick"
	case plan.BackendFfmpeg:
		return "ffmpeg"
	case plan.BackendLibreOffice:
		return "LibreOffice"
	}
	return "unknown"
}

// InstallHint returns the hint attached to a missing-tool error.
func InstallHint(b plan.Backend) string {
	switch b {
	case plan.BackendImageMagick:
		return "install it (e.g., apt install imagemagick)"
	case plan.BackendFfmpeg:
		return "install it (e.g., apt install ffmpeg)"
	case plan.BackendLibreOffice:
		return "install libreoffice (e.g., apt install libreoffice)"
	}
	return "install the required tool"
}
