package plan

import (
	"fmt"
	"strings"
)

// Preference is the requested ffmpeg mode. Auto defers the stream-copy vs
// transcode decision to execution time, when probe data may be available.
type Preference string

const (
	PreferenceAuto       Preference = "auto"
	PreferenceStreamCopy Preference = "stream-copy"
	PreferenceTranscode  Preference = "transcode"
)

// ParsePreference parses a user-supplied preference string.
func ParsePreference(s string) (Preference, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return PreferenceAuto, nil
	case "stream-copy", "stream_copy":
		return PreferenceStreamCopy, nil
	case "transcode":
		return PreferenceTranscode, nil
	}
	return "", fmt.Errorf("%w: invalid ffmpeg preference %q", ErrInvalidOption, s)
}

// Options carries the conversion settings a user may supply. The zero value
// (with Preference normalized to auto) is valid and means "tool defaults".
type Options struct {
	// ImageQuality is the ImageMagick quality, 1-100. Nil means unset.
	ImageQuality *int
	VideoBitrate string
	AudioBitrate string
	Preset       string
	VideoCodec   string
	AudioCodec   string
	Preference   Preference
}

// presets ffmpeg's libx264 family accepts.
var validPresets = map[string]bool{
	"ultrafast": true, "superfast": true, "veryfast": true, "faster": true,
	"fast": true, "medium": true, "slow": true, "slower": true, "veryslow": true,
}

func (o Options) validate() error {
	if o.ImageQuality != nil && (*o.ImageQuality < 1 || *o.ImageQuality > 100) {
		return fmt.Errorf("%w: image quality must be between 1 and 100, got %d", ErrInvalidOption, *o.ImageQuality)
	}
	if o.VideoBitrate != "" {
		if err := validateBitrate(o.VideoBitrate); err != nil {
			return fmt.Errorf("invalid video bitrate: %w", err)
		}
	}
	if o.AudioBitrate != "" {
		if err := validateBitrate(o.AudioBitrate); err != nil {
			return fmt.Errorf("invalid audio bitrate: %w", err)
		}
	}
	if o.Preset != "" && !validPresets[strings.ToLower(o.Preset)] {
		return fmt.Errorf("%w: preset must be one of: ultrafast, superfast, veryfast, faster, fast, medium, slow, slower, veryslow", ErrInvalidOption)
	}
	if err := validateCodec("video codec", o.VideoCodec); err != nil {
		return err
	}
	if err := validateCodec("audio codec", o.AudioCodec); err != nil {
		return err
	}
	switch o.Preference {
	case PreferenceAuto, PreferenceStreamCopy, PreferenceTranscode:
	default:
		return fmt.Errorf("%w: invalid ffmpeg preference %q", ErrInvalidOption, o.Preference)
	}
	return nil
}

// validateBitrate accepts digits with an optional trailing k/K/m/M suffix.
func validateBitrate(bitrate string) error {
	if bitrate == "" {
		return fmt.Errorf("%w: bitrate is empty", ErrInvalidOption)
	}
	digits := bitrate
	switch bitrate[len(bitrate)-1] {
	case 'k', 'K', 'm', 'M':
		digits = bitrate[:len(bitrate)-1]
	}
	if digits == "" {
		return fmt.Errorf("%w: bitrate must be numeric with optional k/m suffix", ErrInvalidOption)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: bitrate must be numeric with optional k/m suffix", ErrInvalidOption)
		}
	}
	return nil
}

func validateCodec(what, codec string) error {
	if codec != "" && strings.TrimSpace(codec) == "" {
		return fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidOption, what)
	}
	return nil
}

// IsSet reports whether any conversion option differs from the defaults.
func (o Options) IsSet() bool {
	return o.ImageQuality != nil || o.VideoBitrate != "" || o.AudioBitrate != "" ||
		o.Preset != "" || o.VideoCodec != "" || o.AudioCodec != ""
}
