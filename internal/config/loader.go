package config

import (
	"os"
	"path/filepath"
)

// PaletteEnv names the environment variable consulted for the palette when
// no flag is given.
const PaletteEnv = "PIXELPAD_PALETTE"

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load attempts to load the configuration.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil // No config file found, return defaults
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".pixelpadrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	dir := Dir()
	for _, name := range []string{"config.rc", "pixelpad.rc"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// DefaultPath is where a new configuration file is written.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.rc")
}

// Dir returns the per-user configuration directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pixelpad")
}

// PaletteName picks the palette by precedence: flag, then PIXELPAD_PALETTE,
// then the config file.
func (c *Config) PaletteName(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(PaletteEnv); env != "" {
		return env
	}
	return c.Palette
}
