// Package probe wraps ffprobe to extract the media properties needed when
// choosing between stream copy and transcode. Probing is optional: callers
// treat any error as "no information" and fall back to conservative
// defaults.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

//go:generate mockgen -destination=mocks/prober.go -package=mocks movex/internal/probe Prober

// MediaInfo holds the subset of ffprobe output the mode decision uses.
type MediaInfo struct {
	// DurationSeconds is the container duration; zero or negative means
	// unknown.
	DurationSeconds float64
	// VideoCodec is the codec of the first video stream, empty when the
	// file has no video stream.
	VideoCodec string
	// AudioCodec is the codec of the first audio stream, empty when the
	// file has no audio stream.
	AudioCodec string
}

// Prober inspects a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (*MediaInfo, error)
}

// FFprobe is the real Prober backed by the ffprobe binary.
type FFprobe struct{}

// Probe runs a single ffprobe JSON call against path.
func (FFprobe) Probe(ctx context.Context, path string) (*MediaInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_format", "-show_streams",
		"-print_format", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return nil, ErrNotFound
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: exit status %d", ErrProbeFailed, exitErr.ExitCode())
		}
		return nil, fmt.Errorf("%w: %v", ErrProbeFailed, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a MediaInfo.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*MediaInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse JSON: %v", ErrProbeFailed, err)
	}

	info := &MediaInfo{
		DurationSeconds: parseFloat(raw.Format.Duration),
	}
	for _, s := range raw.Streams {
		switch s.CodecType {
		case "video":
			if info.VideoCodec == "" {
				info.VideoCodec = s.CodecName
			}
		case "audio":
			if info.AudioCodec == "" {
				info.AudioCodec = s.CodecName
			}
		}
	}
	return info, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
}

// ffprobe returns numbers as strings.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
