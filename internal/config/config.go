// Package config handles XDG configuration directory and API settings.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "taskdeck"

	// StateDirName is the subdirectory holding durable session state.
	StateDirName = "state"

	// EnvAPIURL is the environment variable overriding the API base URL.
	EnvAPIURL = "TASKDECK_API_URL"

	// DefaultAPIURL is the API base URL used when nothing else is configured.
	DefaultAPIURL = "http://localhost:3000"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the task backend.
	APIURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskdeck or $HOME/.config/taskdeck.
// The API base URL comes from TASKDECK_API_URL when set.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	apiURL := os.Getenv(EnvAPIURL)
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Config{Dir: dir, APIURL: apiURL}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// StateDir returns the directory holding durable session state.
func (c *Config) StateDir() string {
	return filepath.Join(c.Dir, StateDirName)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
