package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 32, cfg.CacheMaxSizeMB)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Zero(t, cfg.AuthDelay)
	assert.Empty(t, cfg.AllowedEmails)
	assert.Empty(t, cfg.TrustedProxies)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_EMAILS", " Owner@Example.com, ,second@example.com ")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("AUTH_DELAY", "1500ms")
	t.Setenv("CACHE_MAX_SIZE_MB", "not-a-number")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"owner@example.com", "second@example.com"}, cfg.AllowedEmails)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 1500*time.Millisecond, cfg.AuthDelay)
	assert.Equal(t, 32, cfg.CacheMaxSizeMB, "invalid numbers fall back to the default")
}
