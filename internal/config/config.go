// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath     string
	GeminiAPIKey     string
	GeminiModel      string
	SynthesisTimeout time.Duration
	WeightsPath      string
}

// Default values
const (
	defaultSynthesisTimeout = 60 * time.Second
	defaultGeminiModel      = "gemini-2.0-flash"
)

// Load reads configuration from .env files and environment variables.
// No field is strictly required: a missing Gemini key only degrades
// the weekly report's narrative sections.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DatabasePath:     getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		GeminiAPIKey:     getEnvString("GEMINI_API_KEY", ""),
		GeminiModel:      getEnvString("GEMINI_MODEL", defaultGeminiModel),
		SynthesisTimeout: getEnvDuration("SYNTHESIS_TIMEOUT", defaultSynthesisTimeout),
		WeightsPath:      getEnvString("CALIBRATE_WEIGHTS_PATH", ""),
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "calibrate", ".env"),
			filepath.Join(home, ".calibrate", ".env"),
		)
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "calibrate.db"
	}
	return filepath.Join(home, ".config", "calibrate", "calibrate.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
