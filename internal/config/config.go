// Package config provides configuration for the concierge.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the concierge configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Timeouts
	AgentTimeout time.Duration

	// Session eviction
	SessionTTL    time.Duration
	SweepInterval time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:      getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:   getEnv("DATABASE_URL", "file:concierge.db?cache=shared&mode=rwc"),
		AgentTimeout:  time.Duration(getEnvInt("AGENT_TIMEOUT_MS", 10000)) * time.Millisecond,
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_MIN", 120)) * time.Minute,
		SweepInterval: time.Duration(getEnvInt("SESSION_SWEEP_MIN", 10)) * time.Minute,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
