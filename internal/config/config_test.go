package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movex/internal/plan"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOptions_DefaultSection(t *testing.T) {
	path := writeConfig(t, `
[default]
quality = 85
preset = "slow"
ffmpeg = "auto"
`)

	opts, err := LoadOptions(path, "")
	require.NoError(t, err)
	require.NotNil(t, opts)

	require.NotNil(t, opts.ImageQuality)
	assert.Equal(t, 85, *opts.ImageQuality)
	assert.Equal(t, "slow", opts.Preset)
	assert.Equal(t, plan.PreferenceAuto, opts.Preference)
}

func TestLoadOptions_ProfileOverridesDefault(t *testing.T) {
	path := writeConfig(t, `
[default]
quality = 85
preset = "slow"

[profile.web]
quality = 60
video_codec = "libvpx-vp9"
ffmpeg = "transcode"
`)

	opts, err := LoadOptions(path, "web")
	require.NoError(t, err)

	assert.Equal(t, 60, *opts.ImageQuality)
	assert.Equal(t, "slow", opts.Preset, "unset profile fields inherit from default")
	assert.Equal(t, "libvpx-vp9", opts.VideoCodec)
	assert.Equal(t, plan.PreferenceTranscode, opts.Preference)
}

func TestLoadOptions_UnknownProfile(t *testing.T) {
	path := writeConfig(t, `
[default]
quality = 85
`)

	_, err := LoadOptions(path, "nope")
	require.ErrorIs(t, err, ErrUnknownProfile)
}

func TestLoadOptions_MissingExplicitPathFails(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "absent.toml"), "")
	require.Error(t, err)
}

func TestLoadOptions_MissingDefaultPathIsSilent(t *testing.T) {
	t.Setenv("MOVEX_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

	opts, err := LoadOptions("", "")
	require.NoError(t, err)
	assert.Nil(t, opts)
}

func TestLoadOptions_MissingDefaultPathWithProfileFails(t *testing.T) {
	t.Setenv("MOVEX_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

	_, err := LoadOptions("", "web")
	require.ErrorIs(t, err, ErrUnknownProfile)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("MOVEX_TEST_PRESET", "veryslow")
	path := writeConfig(t, `
[default]
preset = "${MOVEX_TEST_PRESET}"
`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "veryslow", f.Default.Preset)
}

func TestLoad_UnsetEnvVarLeftIntact(t *testing.T) {
	path := writeConfig(t, `
[default]
preset = "${MOVEX_DEFINITELY_UNSET_VAR}"
`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${MOVEX_DEFINITELY_UNSET_VAR}", f.Default.Preset)
}

func TestLoadOptions_InvalidPreference(t *testing.T) {
	path := writeConfig(t, `
[default]
ffmpeg = "remux"
`)

	_, err := LoadOptions(path, "")
	require.ErrorIs(t, err, plan.ErrInvalidOption)
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("MOVEX_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "movex", "config.toml"), DefaultPath())
}
