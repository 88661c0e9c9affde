// Package config holds engine-wide settings loaded from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the tunables of the question pipeline. Zero values are
// never used directly; build instances through Default or FromEnv.
type Config struct {
	// MemoryTTL bounds the hot in-memory question cache.
	MemoryTTL time.Duration

	// OfflineTTL bounds the durable snapshot tier. Same 15 minute
	// default as the memory tier; the tier differs in surviving
	// restarts, not in freshness.
	OfflineTTL time.Duration

	// OfflineCapacity caps the number of stored snapshots.
	OfflineCapacity int

	// SweepInterval is how often expired cache entries are collected.
	SweepInterval time.Duration

	// HistoryWindow is how many recent attempts feed analysis.
	HistoryWindow int

	// BaselineMinAttempts is the sample size below which recommendations
	// stay at the baseline level.
	BaselineMinAttempts int
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		MemoryTTL:           15 * time.Minute,
		OfflineTTL:          15 * time.Minute,
		OfflineCapacity:     50,
		SweepInterval:       5 * time.Minute,
		HistoryWindow:       20,
		BaselineMinAttempts: 5,
	}
}

// FromEnv loads .env (when present) and overlays QUIZFORGE_* variables
// on the defaults.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Default()
	cfg.MemoryTTL = GetEnvDuration("QUIZFORGE_MEMORY_TTL", cfg.MemoryTTL)
	cfg.OfflineTTL = GetEnvDuration("QUIZFORGE_OFFLINE_TTL", cfg.OfflineTTL)
	cfg.OfflineCapacity = GetEnvInt("QUIZFORGE_OFFLINE_CAPACITY", cfg.OfflineCapacity)
	cfg.SweepInterval = GetEnvDuration("QUIZFORGE_SWEEP_INTERVAL", cfg.SweepInterval)
	cfg.HistoryWindow = GetEnvInt("QUIZFORGE_HISTORY_WINDOW", cfg.HistoryWindow)
	cfg.BaselineMinAttempts = GetEnvInt("QUIZFORGE_BASELINE_MIN_ATTEMPTS", cfg.BaselineMinAttempts)
	return cfg
}

// GetEnvOrDefault returns the env value or defaultValue when unset.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt returns the env value parsed as int, or defaultValue.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// GetEnvDuration returns the env value parsed as a duration, or
// defaultValue.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
