package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Name is the name of the application that the logger is for.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// name is the name of the application.
	name Name

	// level is the minimum level that the logger will log at.
	level slog.Level
}

// NewConfig creates a new logging configuration.
func NewConfig(name Name) *Config {
	level := slog.LevelInfo
	if env := os.Getenv(EnvLogLevel); env != "" {
		switch strings.ToUpper(env) {
		case "DEBUG":
			level = slog.LevelDebug
		case "WARN":
			level = slog.LevelWarn
		case "ERROR":
			level = slog.LevelError
		}
	}

	return &Config{
		name:  name,
		level: level,
	}
}

// CommonLogger creates the common logger for the application.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, fmt.Errorf("no logging config provided")
	}

	l := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: c.level,
	})).With(
		slog.String(KeyAppName, string(c.name)),
	)

	slog.SetDefault(l)

	return l, nil
}
