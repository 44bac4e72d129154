// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting. It is built once at startup and
// passed down explicitly; nothing reads the environment after Load.
type Config struct {
	// Token authenticates GitHub API calls. Optional: without it the
	// dashboard still works against public repositories at the
	// unauthenticated rate limit.
	Token string

	// Addr is the listen address of the dashboard server.
	Addr string

	// CacheTTL is how long a fetched snapshot stays fresh.
	CacheTTL time.Duration

	// LogLevel is a logrus level name such as "info" or "debug".
	LogLevel string
}

// Load reads the configuration from the environment. A missing .env
// file is not an error.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return &Config{
		Token:    getEnv("GITHUB_TOKEN", ""),
		Addr:     getEnv("REPOPULSE_ADDR", ":8080"),
		CacheTTL: getDurationEnv("REPOPULSE_CACHE_TTL", 10*time.Minute),
		LogLevel: getEnv("REPOPULSE_LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
