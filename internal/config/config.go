package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment  string
	LogLevel     slog.Level
	SchematicDir string
	// CatalogPath is empty for the embedded default catalog.
	CatalogPath string
	// RedisURL is empty when unlocks are not persisted.
	RedisURL  string
	UnlockTTL time.Duration
	// Seed is 0 for a time-based seed.
	Seed         uint64
	AbortOnError bool
}

func Load() (*Config, error) {
	seed, err := strconv.ParseUint(getEnv("SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED: %w", err)
	}
	abort, err := strconv.ParseBool(getEnv("ABORT_ON_ERROR", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ABORT_ON_ERROR: %w", err)
	}
	ttl, err := time.ParseDuration(getEnv("UNLOCK_TTL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UNLOCK_TTL: %w", err)
	}

	return &Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		SchematicDir: getEnv("SCHEMATIC_DIR", "./data/schematics"),
		CatalogPath:  os.Getenv("CATALOG_PATH"),
		RedisURL:     os.Getenv("REDIS_URL"),
		UnlockTTL:    ttl,
		Seed:         seed,
		AbortOnError: abort,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
