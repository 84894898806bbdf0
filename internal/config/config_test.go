package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "CATALOG_SOURCE", "SESSION_TTL_MINUTES", "SESSION_MAX", "CORS_ALLOW_ORIGINS", "LOG_PRETTY"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, CatalogSourceRemote, cfg.CatalogSource)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10000, cfg.MaxSessions)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.LogPretty)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CATALOG_SOURCE", "Postgres")
	t.Setenv("SESSION_TTL_MINUTES", "5")
	t.Setenv("SESSION_MAX", "12")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("LOG_PRETTY", "true")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, CatalogSourcePostgres, cfg.CatalogSource)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 12, cfg.MaxSessions)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.LogPretty)
}

func TestFromEnv_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SESSION_MAX", "lots")
	t.Setenv("SESSION_TTL_MINUTES", "-1")

	cfg := FromEnv()

	assert.Equal(t, 10000, cfg.MaxSessions)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}
