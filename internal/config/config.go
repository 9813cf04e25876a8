// Package config handles TOML configuration loading with environment
// variable substitution. A config file carries a default option set plus
// named profiles that override it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"

	"movex/internal/plan"
)

// File is the root configuration structure.
type File struct {
	Default  Profile            `toml:"default"`
	Profiles map[string]Profile `toml:"profile"`
}

// Profile is one named option set. Zero-valued fields inherit from the
// default profile when the profile is selected by name.
type Profile struct {
	Quality      *int   `toml:"quality"`
	VideoBitrate string `toml:"video_bitrate"`
	AudioBitrate string `toml:"audio_bitrate"`
	Preset       string `toml:"preset"`
	VideoCodec   string `toml:"video_codec"`
	AudioCodec   string `toml:"audio_codec"`
	Ffmpeg       string `toml:"ffmpeg"`
}

// Load reads and parses the configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content := substituteEnvVars(string(data))

	var f File
	if _, err := toml.Decode(content, &f); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &f, nil
}

// LoadOptions resolves plan options from the config file at path, layered
// under the named profile (empty name means the default section alone).
// With an empty path the default location is consulted and a missing file
// simply yields nil options; an explicitly given path must exist.
func LoadOptions(path, profile string) (*plan.Options, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	f, err := Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			if profile != "" {
				return nil, fmt.Errorf("%w: %q (no config file at %s)", ErrUnknownProfile, profile, path)
			}
			return nil, nil
		}
		return nil, err
	}
	return f.Options(profile)
}

// Options converts the file into plan options. A named profile overrides
// the default section field by field.
func (f *File) Options(profile string) (*plan.Options, error) {
	merged := f.Default
	if profile != "" {
		p, ok := f.Profiles[profile]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, profile)
		}
		merged = merge(f.Default, p)
	}
	return merged.planOptions()
}

func merge(base, override Profile) Profile {
	out := base
	if override.Quality != nil {
		out.Quality = override.Quality
	}
	if override.VideoBitrate != "" {
		out.VideoBitrate = override.VideoBitrate
	}
	if override.AudioBitrate != "" {
		out.AudioBitrate = override.AudioBitrate
	}
	if override.Preset != "" {
		out.Preset = override.Preset
	}
	if override.VideoCodec != "" {
		out.VideoCodec = override.VideoCodec
	}
	if override.AudioCodec != "" {
		out.AudioCodec = override.AudioCodec
	}
	if override.Ffmpeg != "" {
		out.Ffmpeg = override.Ffmpeg
	}
	return out
}

func (p Profile) planOptions() (*plan.Options, error) {
	pref, err := plan.ParsePreference(p.Ffmpeg)
	if err != nil {
		return nil, err
	}
	return &plan.Options{
		ImageQuality: p.Quality,
		VideoBitrate: p.VideoBitrate,
		AudioBitrate: p.AudioBitrate,
		Preset:       p.Preset,
		VideoCodec:   p.VideoCodec,
		AudioCodec:   p.AudioCodec,
		Preference:   pref,
	}, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match
	})
}
