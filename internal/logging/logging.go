// Package logging configures the zerolog logger for the pipeline.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New creates a logger writing to stderr. With json set, output is raw
// zerolog JSON for log shippers; otherwise a human console writer is used.
func New(level string, json bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if json {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}

// ResolveLevel picks the effective log level: an explicit flag value wins,
// then the LOG_LEVEL environment variable, then the config file value,
// then info.
func ResolveLevel(flagLevel, configLevel string) string {
	if flagLevel != "" {
		return flagLevel
	}
	if env := strings.TrimSpace(os.Getenv("LOG_LEVEL")); env != "" {
		return env
	}
	if configLevel != "" {
		return configLevel
	}
	return "info"
}
