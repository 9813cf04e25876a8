package config

import (
	"os"
	"path/filepath"
)

// DefaultPath returns the XDG-compliant default config path. The
// MOVEX_CONFIG environment variable overrides it.
func DefaultPath() string {
	if envPath := os.Getenv("MOVEX_CONFIG"); envPath != "" {
		return envPath
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "movex", "config.toml")
}
