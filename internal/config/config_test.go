package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store != StoreSQLite {
		t.Errorf("expected default store %q, got %q", StoreSQLite, cfg.Store)
	}
	if cfg.MatchKey != "debtor_inn" {
		t.Errorf("expected default match key, got %q", cfg.MatchKey)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Store = StorePostgres
	cfg.MatchKey = "case_number"
	cfg.LogLevel = "debug"
	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Store != StorePostgres {
		t.Errorf("expected store %q, got %q", StorePostgres, loaded.Store)
	}
	if loaded.MatchKey != "case_number" {
		t.Errorf("expected match key 'case_number', got %q", loaded.MatchKey)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %q", loaded.LogLevel)
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("PG_DSN=postgres://test\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("PG_DSN", "")
	os.Unsetenv("PG_DSN")

	if _, err := Load(dir); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	dsn, err := PostgresDSN()
	if err != nil {
		t.Fatalf("PostgresDSN failed: %v", err)
	}
	if dsn != "postgres://test" {
		t.Errorf("expected DSN from .env, got %q", dsn)
	}
}
