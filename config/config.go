// Package config loads the server configuration from YAML.
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Config represents the complete server configuration
type Config struct {
	BaseDir  string         `yaml:"-"` // Directory containing config file, for resolving relative paths
	Server   ServerConfig   `yaml:"server"`
	SQLite   string         `yaml:"sqlite"` // Path to SQLite database file, ":memory:" for none
	Catalogs CatalogsConfig `yaml:"catalogs"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Origins         []string      `yaml:"origins"` // CORS allowed origins
}

// CatalogsConfig selects what is declared before the registry is sealed
type CatalogsConfig struct {
	Builtin bool     `yaml:"builtin"` // metric and customary catalogs
	Files   []string `yaml:"files"`   // catalog documents, .json or .yaml
	Stored  bool     `yaml:"stored"`  // catalogs saved in the database
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	Color  bool   `yaml:"color"`  // colored text output
}

// Defaults returns a Config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			Origins:         []string{"*"},
		},
		SQLite: "units.db",
		Catalogs: CatalogsConfig{
			Builtin: true,
			Stored:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Color:  true,
		},
	}
}

// SlogLevel parses the configured level, defaulting to info.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the logger: tint for text, slog's JSON handler for json.
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: l.SlogLevel()}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      l.SlogLevel(),
		TimeFormat: "15:04:05",
		NoColor:    !l.Color,
	}))
}
