package plan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Report is the structured form of a plan, suitable for JSON output. The
// command preview is supplied by the caller so that it comes from the same
// argument construction the executor uses.
type Report struct {
	Source               string         `json:"source"`
	Destination          string         `json:"destination"`
	DetectedMIME         string         `json:"detected_mime,omitempty"`
	DetectedExtension    string         `json:"detected_extension,omitempty"`
	FileMIME             string         `json:"file_mime,omitempty"`
	Strategy             Strategy       `json:"strategy"`
	Backend              string         `json:"backend,omitempty"`
	DestinationKind      MediaKind      `json:"destination_kind"`
	DestinationExtension string         `json:"destination_extension,omitempty"`
	Overwrite            bool           `json:"overwrite"`
	Backup               bool           `json:"backup"`
	Options              reportOptions  `json:"options"`
	Notes                []string       `json:"notes"`
	CommandPreview       string         `json:"command_preview,omitempty"`
}

type reportOptions struct {
	ImageQuality *int       `json:"image_quality,omitempty"`
	VideoBitrate string     `json:"video_bitrate,omitempty"`
	AudioBitrate string     `json:"audio_bitrate,omitempty"`
	Preset       string     `json:"preset,omitempty"`
	VideoCodec   string     `json:"video_codec,omitempty"`
	AudioCodec   string     `json:"audio_codec,omitempty"`
	FfmpegMode   Preference `json:"ffmpeg_mode"`
}

// NewReport assembles the structured report for a plan.
func NewReport(p *Plan, overwrite bool, preview string) Report {
	notes := p.Notes
	if notes == nil {
		notes = []string{}
	}
	return Report{
		Source:               p.Source,
		Destination:          p.Destination,
		DetectedMIME:         p.Detected.MIME,
		DetectedExtension:    p.Detected.ExtHint,
		FileMIME:             p.Detected.FileMIME,
		Strategy:             p.Strategy,
		Backend:              string(p.Backend),
		DestinationKind:      p.DestKind,
		DestinationExtension: p.DestExt,
		Overwrite:            overwrite,
		Backup:               p.Backup,
		Options: reportOptions{
			ImageQuality: p.Options.ImageQuality,
			VideoBitrate: p.Options.VideoBitrate,
			AudioBitrate: p.Options.AudioBitrate,
			Preset:       p.Options.Preset,
			VideoCodec:   p.Options.VideoCodec,
			AudioCodec:   p.Options.AudioCodec,
			FfmpegMode:   p.Options.Preference,
		},
		Notes:          notes,
		CommandPreview: preview,
	}
}

// RenderText renders the human-readable multi-line plan report.
func RenderText(p *Plan, overwrite bool, preview string) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("Source: %s", p.Source)
	add("Destination: %s", p.Destination)
	mime := p.Detected.MIME
	if mime == "" {
		mime = "unknown"
	}
	add("Detected: %s", mime)
	if p.Detected.ExtHint != "" {
		add("Detected extension: %s", p.Detected.ExtHint)
	}
	add("Strategy: %s", p.Strategy)
	if p.DestExt != "" {
		add("Destination extension: %s", p.DestExt)
	}
	if p.Backend != BackendNone {
		add("Backend: %s", p.Backend)
	}
	add("Destination kind: %s", p.DestKind)
	if p.Options.ImageQuality != nil {
		add("Image quality: %d", *p.Options.ImageQuality)
	}
	if p.Options.VideoBitrate != "" {
		add("Video bitrate: %s", p.Options.VideoBitrate)
	}
	if p.Options.AudioBitrate != "" {
		add("Audio bitrate: %s", p.Options.AudioBitrate)
	}
	if p.Options.Preset != "" {
		add("Preset: %s", p.Options.Preset)
	}
	if p.Options.VideoCodec != "" {
		add("Video codec: %s", p.Options.VideoCodec)
	}
	if p.Options.AudioCodec != "" {
		add("Audio codec: %s", p.Options.AudioCodec)
	}
	if p.Backend == BackendFfmpeg {
		add("FFmpeg mode: %s", p.Options.Preference)
	}
	if preview != "" {
		add("Command preview: %s", preview)
	}
	add("Overwrite: %s", yesNo(overwrite))
	add("Backup: %s", yesNo(p.Backup))
	for _, note := range p.Notes {
		add("Note: %s", note)
	}

	return strings.Join(lines, "\n")
}

// RenderJSON renders the structured plan report as indented JSON.
func RenderJSON(p *Plan, overwrite bool, preview string) (string, error) {
	data, err := json.MarshalIndent(NewReport(p, overwrite, preview), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal plan report: %w", err)
	}
	return string(data), nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
