// Package cli contains the cobra commands of the lotledger binary. Each
// command file exposes one XxxCmd() constructor wired into the root command.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/example/lotledger/internal/config"
	"github.com/example/lotledger/internal/logging"
)

// loadConfig reads the configuration from the user's home directory.
func loadConfig() (*config.Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return config.Load(home)
}

// newLogger builds the command logger, resolving the level from the flag,
// the environment and the config file in that order.
func newLogger(cfg *config.Config, flagLevel string, json bool) zerolog.Logger {
	return logging.New(logging.ResolveLevel(flagLevel, cfg.LogLevel), json)
}
