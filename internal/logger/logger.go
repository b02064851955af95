// Package logger builds the zerolog loggers used across the tool.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvLevel names the environment variable that overrides the log level.
const EnvLevel = "IMAGE_MOMENTS_LOG_LEVEL"

// New returns a console logger writing to w at the given level
// ("debug", "info", "warn", "error", "disabled"). An empty level means info.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	return NewWithLevel(w, lvl), nil
}

// NewWithLevel is New with an already parsed level.
func NewWithLevel(w io.Writer, level zerolog.Level) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// LevelFromEnv returns the level set in EnvLevel, or fallback when unset.
func LevelFromEnv(fallback string) string {
	if v := os.Getenv(EnvLevel); v != "" {
		return v
	}
	return fallback
}

// Component returns a child logger tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
