// Package config handles XDG configuration directory and file paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// SettingsFile is the optional YAML settings filename.
	SettingsFile = "config.yaml"

	// StoreFile is the SQLite file, named after the application container.
	StoreFile = "TaskListApp.sqlite"

	// LogFile receives debug logs while the interactive screen owns the terminal.
	LogFile = "tasklist.log"

	// DefaultTitle is the screen title when none is configured.
	DefaultTitle = "Task List"
)

// Settings holds values read from config.yaml.
type Settings struct {
	// Database overrides the SQLite file path.
	Database string `yaml:"database"`

	// Title overrides the screen title.
	Title string `yaml:"title"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Database is the SQLite file path. Empty means StorePath's default.
	Database string

	// Title is the interactive screen title.
	Title string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklist or $HOME/.config/tasklist.
// Settings from config.yaml are applied when the file exists.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, Title: DefaultTitle}

	settings, err := LoadSettings(cfg.SettingsPath())
	if err != nil {
		return nil, err
	}
	if settings.Database != "" {
		cfg.Database = settings.Database
	}
	if settings.Title != "" {
		cfg.Title = settings.Title
	}
	return cfg, nil
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

// LoadSettings reads a YAML settings file.
// A missing file yields zero Settings and no error.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	return s, nil
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// StorePath returns the SQLite file path.
func (c *Config) StorePath() string {
	if c.Database != "" {
		return c.Database
	}
	return filepath.Join(c.Dir, StoreFile)
}

// LogPath returns the path of the debug log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
