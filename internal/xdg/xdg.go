// Package xdg provides XDG Base Directory paths for tinyapp.
package xdg

import (
	"os"
	"path/filepath"
)

const (
	appName        = "tinyapp"
	configFileName = "config.yaml"
)

// ConfigDir returns the XDG config directory for tinyapp.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// ConfigFile returns the path of the default config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// ExistingConfigFile returns ConfigFile if it exists, or "" otherwise.
func ExistingConfigFile() string {
	path := ConfigFile()
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
