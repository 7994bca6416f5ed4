package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadSQLite(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("TIME_ZONE", "UTC")
	t.Setenv("DB_BOOTSTRAP", "yes")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.True(t, cfg.DBBootstrap)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Empty(t, cfg.DBHost)
}

func TestLoadDatabaseSkipsPort(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "")

	cfg := LoadDatabase()
	assert.Equal(t, "fyyur.db", cfg.DBPath)
	assert.Empty(t, cfg.Port)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("CACHE_PREFIX", "")

	cfg := LoadCacheConfig("trivia")
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
	assert.Equal(t, time.Minute, cfg.TTL)
	assert.Equal(t, "cache:trivia", cfg.Prefix)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig("booking")
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.Refill)
	assert.Equal(t, 10*time.Second, cfg.TTL)
	assert.True(t, cfg.PerRoute)
	assert.Equal(t, "rl:booking", cfg.Prefix)

	t.Setenv("RATE_LIMIT_REFILL", "-1s")
	t.Setenv("RATE_LIMIT_PER_ROUTE", "off")
	cfg = LoadRateLimitConfig("booking")
	assert.Equal(t, time.Second, cfg.Refill)
	assert.False(t, cfg.PerRoute)
}

func TestEnvHelpersFallBack(t *testing.T) {
	t.Setenv("X_INT", "seven")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_BOOL", "maybe")
	assert.Equal(t, 3, envInt("X_INT", 3))
	assert.Equal(t, time.Minute, envDur("X_DUR", time.Minute))
	assert.True(t, envBool("X_BOOL", true))
	assert.Equal(t, "d", envStr("X_UNSET_FOR_TEST", "d"))
}

func TestLoadAuthConfig(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "false")
	assert.Equal(t, AuthConfig{}, LoadAuthConfig())

	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$04$x")
	t.Setenv("ADMIN_USER", "")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "")
	ac := LoadAuthConfig()
	assert.True(t, ac.Enabled)
	assert.Equal(t, "admin", ac.AdminUser)
	assert.Equal(t, 60, ac.AccessTTLMin)
}

func TestLoadQueueConfigFallback(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://other/")
	t.Setenv("EVENT_LOG_DIR", "")

	qc := LoadQueueConfig()
	assert.False(t, qc.Enabled)
	assert.Equal(t, "amqp://other/", qc.URL)
	assert.Equal(t, "logs", qc.LogDir)
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_ADDR", "ignored:1")
	t.Setenv("REDIS_TLS", "1")

	rc := LoadRedisConfig()
	assert.Equal(t, "cache:6380", rc.Addr)
	assert.True(t, rc.TLS)
}
