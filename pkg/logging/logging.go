// Package logging builds the service logger from configuration. The
// logging section follows the same defaults, env-override, and
// validation lifecycle as the rest of the service configuration.
package logging

import (
	"fmt"
	"log/slog"
	"os"
)

const (
	// EnvLevel overrides the configured log level.
	EnvLevel = "LOGGING_LEVEL"

	// EnvFormat overrides the configured log format.
	EnvFormat = "LOGGING_FORMAT"
)

// Supported log levels.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the logger settings.
type Config struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Logger constructs the slog.Logger the configuration describes.
func (c *Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.slogLevel()}

	if c.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// Finalize applies defaults, loads environment overrides, and validates the logging configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

func (c *Config) loadDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvLevel); v != "" {
		c.Level = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
}

func (c *Config) validate() error {
	switch c.Level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return fmt.Errorf("invalid level: %q (must be debug, info, warn, or error)", c.Level)
	}

	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid format: %q (must be text or json)", c.Format)
	}
	return nil
}

func (c *Config) slogLevel() slog.Level {
	switch c.Level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
