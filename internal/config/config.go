// Package config handles timeaxis configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/timeaxis/timeaxis/internal/timeline"
)

// Config is the root configuration structure for timeaxis.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// Database settings
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// Server settings for the events API
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// AI request settings
	AI AIConfig `yaml:"ai" mapstructure:"ai"`

	// TUI settings
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`
}

// GlobalConfig contains global settings.
type GlobalConfig struct {
	// DataDir is where timeaxis stores its data (default: ~/.local/share/timeaxis).
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	// Path is the SQLite database file path.
	Path string `yaml:"path" mapstructure:"path"`

	// BusyTimeoutMs is how long to wait for a locked database (milliseconds).
	BusyTimeoutMs int `yaml:"busy_timeout_ms" mapstructure:"busy_timeout_ms"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path. The TUI always logs to a file
	// because it owns the terminal.
	File string `yaml:"file" mapstructure:"file"`
}

// ServerConfig contains settings for the events API server.
type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// AIConfig contains AI request settings.
type AIConfig struct {
	// RequestTimeout bounds a single backend call.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// TUIConfig contains timeline viewer settings.
type TUIConfig struct {
	// Theme is the visual style (starmap, scroll). Empty means use the
	// persisted setting.
	Theme string `yaml:"theme" mapstructure:"theme"`

	// InitialYear is the center year the timeline opens on.
	InitialYear float64 `yaml:"initial_year" mapstructure:"initial_year"`

	// InitialZoom is the zoom level the timeline opens at.
	InitialZoom int `yaml:"initial_zoom" mapstructure:"initial_zoom"`
}

// DefaultConfig returns a Config populated with built-in defaults.
func DefaultConfig() *Config {
	dataDir := "~/.local/share/timeaxis"
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		dataDir = filepath.Join(xdg, "timeaxis")
	}

	return &Config{
		Global: GlobalConfig{
			DataDir: dataDir,
		},
		Database: DatabaseConfig{
			BusyTimeoutMs: 5000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		AI: AIConfig{
			RequestTimeout: 60 * time.Second,
		},
		TUI: TUIConfig{
			InitialYear: timeline.DefaultCenterYear,
			InitialZoom: timeline.DefaultZoom,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error")
	}

	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535")
	}

	if c.TUI.InitialZoom < 0 || c.TUI.InitialZoom >= len(timeline.Scales) {
		return fmt.Errorf("tui.initial_zoom must be in 0-%d", len(timeline.Scales)-1)
	}

	if c.AI.RequestTimeout <= 0 {
		return fmt.Errorf("ai.request_timeout must be positive")
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Global.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.Global.DataDir, err)
	}
	return nil
}

// DatabasePath returns the full database path.
func (c *Config) DatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(c.Global.DataDir, "timeaxis.db")
}

// ServerAddr returns the host:port address for the events API.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
