// Package config loads the core's environment-driven configuration,
// adapted from the donor's internal/config.Load: same getEnv*/godotenv
// pattern, trimmed to the knobs spec.md §6 actually defines.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all core configuration.
type Config struct {
	App        AppConfig
	Logging    LoggingConfig
	Simulation SimulationConfig
	Entropy    EntropyConfig
	Session    SessionConfig
	Reel       ReelConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Env  string
	Name string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// SimulationConfig holds the three-body simulator's default parameters
// (spec.md §6: duration, timeStep, G, epsilon).
type SimulationConfig struct {
	Duration float64
	TimeStep float64
	G        float64
	Eps      float64
}

// EntropyConfig holds the entropy oracle's cache and hashing settings.
type EntropyConfig struct {
	HashAlgorithm string
	CacheEnabled  bool
	CacheTTL      time.Duration
}

// SessionConfig holds the per-session hash-chain settings.
type SessionConfig struct {
	ChainLength int
}

// ReelConfig holds the reel mapper's default settings.
type ReelConfig struct {
	SymbolsPerReel int
}

// Load loads configuration from environment variables, optionally seeded by
// a .env file outside production (mirrors the donor's APP_ENV gate).
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("Warning: .env file not found, using environment variables")
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getEnv("APP_ENV", "development"),
			Name: getEnv("APP_NAME", "slotcore"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Simulation: SimulationConfig{
			Duration: getEnvAsFloat("SIM_DURATION", 10.0),
			TimeStep: getEnvAsFloat("SIM_TIME_STEP", 0.001),
			G:        getEnvAsFloat("SIM_G", 1.0),
			Eps:      getEnvAsFloat("SIM_EPSILON", 0.01),
		},
		Entropy: EntropyConfig{
			HashAlgorithm: getEnv("ENTROPY_HASH_ALGORITHM", "sha256"),
			CacheEnabled:  getEnvAsBool("ENTROPY_CACHE_ENABLED", true),
			CacheTTL:      getEnvAsDuration("ENTROPY_CACHE_TTL", 60*time.Second),
		},
		Session: SessionConfig{
			ChainLength: getEnvAsInt("SESSION_CHAIN_LENGTH", 1000),
		},
		Reel: ReelConfig{
			SymbolsPerReel: getEnvAsInt("REEL_SYMBOLS_PER_REEL", 20),
		},
	}

	if cfg.Entropy.CacheTTL < 60*time.Second {
		return nil, fmt.Errorf("ENTROPY_CACHE_TTL must be at least 60s, got %s", cfg.Entropy.CacheTTL)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
