package probe

import "errors"

var (
	// ErrNotFound indicates the ffprobe binary is not installed.
	ErrNotFound = errors.New("ffprobe not found; install ffmpeg (e.g., apt install ffmpeg)")

	// ErrProbeFailed indicates ffprobe ran but did not produce usable output.
	ErrProbeFailed = errors.New("ffprobe failed")
)
