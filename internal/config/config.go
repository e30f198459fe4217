// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the server and the CLI.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string

	// Port is the HTTP listen port of the server.
	Port int

	// Currency is the ISO 4217 code used when formatting amounts.
	Currency string

	// LogLevel and LogFormat configure pkg/logging.
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	// Non-fatal if missing
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:    getEnv("DB_PATH", "./data/ledger.db"),
		Currency:  getEnv("CURRENCY", "INR"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
