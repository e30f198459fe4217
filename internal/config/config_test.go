package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DB_PATH", "PORT", "CURRENCY", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "./data/ledger.db" || cfg.Port != 8080 || cfg.Currency != "INR" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("CURRENCY", "EUR") // real env wins over .env

	env := "PORT=9090\nDB_PATH=/tmp/trip.db\nCURRENCY=USD\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv only fills unset variables; t.Setenv("") leaves them set but empty.
	os.Unsetenv("PORT")
	os.Unsetenv("DB_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.DBPath != "/tmp/trip.db" {
		t.Errorf("DBPath = %q, want /tmp/trip.db", cfg.DBPath)
	}
	if cfg.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", cfg.Currency)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "eighty")

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid PORT")
	}
}
