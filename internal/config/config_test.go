package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearEnv guarantees the variable is unset while still restoring the
// original value after the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "GITHUB_TOKEN", "REPOPULSE_ADDR", "REPOPULSE_CACHE_TTL", "REPOPULSE_LOG_LEVEL")

	cfg := Load()

	assert.Empty(t, cfg.Token)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "secret")
	t.Setenv("REPOPULSE_ADDR", ":9090")
	t.Setenv("REPOPULSE_CACHE_TTL", "5m")
	t.Setenv("REPOPULSE_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("REPOPULSE_CACHE_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
}
