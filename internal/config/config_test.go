package config_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/beacon/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("BEACON_ENV", "local")
	t.Setenv("BEACON_PORT", "9090")
	t.Setenv("BEACON_PROVIDER_TYPE", "google")
	t.Setenv("BEACON_PROVIDER_KEY", "testAPIKey")
	t.Setenv("BEACON_PROVIDER_RATE_LIMIT", "5")
	t.Setenv("BEACON_CACHE_TTL", "2m")
	t.Setenv("BEACON_OVERPASS_ENDPOINTS", "https://a.example/api, https://b.example/api")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "google", cfg.ProviderType)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example/api", "https://b.example/api"}, cfg.Endpoints)
}

func Test_MustLoadDefaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "nominatim", cfg.ProviderType)
	assert.Equal(t, 1, cfg.RateLimit)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.Endpoints)
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("BEACON_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for the API server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_RateLimitError(t *testing.T) {
	t.Setenv("BEACON_PROVIDER_RATE_LIMIT", "error_value")

	assert.PanicsWithValue(t, "failed to parse provider rate limit from configuration, must be an integer", func() {
		config.MustLoad()
	})
}

func TestMustLoad_CacheTTLError(t *testing.T) {
	t.Setenv("BEACON_CACHE_TTL", "error_value")

	assert.PanicsWithValue(t, "failed to parse cache TTL from configuration", func() {
		config.MustLoad()
	})
}
