package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the discovery service.
// It includes the environment, server port, geocoding provider selection,
// the geodata endpoint pool and the result cache TTL.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - Port: The port for the HTTP API and monitoring server.
// - ProviderType: The type of geocoding provider to use (nominatim, google).
// - APIKey: The API key for accessing external services (required for Google).
// - RateLimit: Requests per second allowed against the geocoding provider.
// - Endpoints: The ordered pool of interchangeable geodata endpoints.
// - CacheTTL: How long cached search results stay valid.
type Config struct {
	Env          string        // Env is the current environment: local, dev, prod.
	Port         int           // Port is the API and monitoring server port.
	ProviderType string        // ProviderType specifies which geocoding provider to use.
	APIKey       string        // The API key for accessing external services.
	RateLimit    int           // Requests per second for the geocoding provider.
	Endpoints    []string      // Ordered geodata endpoint pool; empty means built-in defaults.
	CacheTTL     time.Duration // Result cache time-to-live.
}

// MustLoad loads the configuration from the environment and returns a
// Config struct. Malformed numeric or duration values panic; a missing
// .env file is fine.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("BEACON_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for the API server from configuration")
	}

	rateLimit, err := strconv.Atoi(setDefaultEnv("BEACON_PROVIDER_RATE_LIMIT", "1"))
	if err != nil {
		panic("failed to parse provider rate limit from configuration, must be an integer")
	}

	cacheTTL, err := time.ParseDuration(setDefaultEnv("BEACON_CACHE_TTL", "5m"))
	if err != nil {
		panic("failed to parse cache TTL from configuration")
	}

	var endpoints []string
	if raw := os.Getenv("BEACON_OVERPASS_ENDPOINTS"); raw != "" {
		for _, endpoint := range strings.Split(raw, ",") {
			if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
				endpoints = append(endpoints, endpoint)
			}
		}
	}

	return &Config{
		Env:          setDefaultEnv("BEACON_ENV", "production"),
		Port:         port,
		ProviderType: setDefaultEnv("BEACON_PROVIDER_TYPE", "nominatim"),
		APIKey:       os.Getenv("BEACON_PROVIDER_KEY"),
		RateLimit:    rateLimit,
		Endpoints:    endpoints,
		CacheTTL:     cacheTTL,
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
