// Package config loads the lotledger configuration: a JSON file for
// pipeline settings and the environment (optionally via .env) for database
// credentials.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config is the flat lotledger configuration.
type Config struct {
	Version string `json:"version"`

	// Store selects the storage backend: "sqlite" (default) or "postgres".
	Store string `json:"store"`

	// MatchKey selects the lot identity key: "debtor_inn" (default) or
	// "case_number". Historical feeds keyed on either.
	MatchKey string `json:"match_key"`

	// SQLitePath overrides the default database location.
	SQLitePath string `json:"sqlite_path,omitempty"`

	LogLevel string `json:"log_level,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:  "1",
		Store:    StoreSQLite,
		MatchKey: "debtor_inn",
	}
}

// Load reads .lotledger/config.json from the specified directory, falling
// back to defaults when the file is absent. A .env file in the directory is
// loaded into the environment first, so PG_DSN can live next to the config.
func Load(dir string) (*Config, error) {
	// Missing .env is fine; credentials may come from the real environment.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	path := filepath.Join(dir, ".lotledger", "config.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes config.json to the directory.
func Save(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".lotledger")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .lotledger dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// PostgresDSN returns the connection string for the postgres backend.
func PostgresDSN() (string, error) {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		return "", fmt.Errorf("PG_DSN is not set")
	}
	return dsn, nil
}
