package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client settings loaded from the environment
type Config struct {
	// Backend
	APIBaseURL     string        // base URL of the vasfood backend, no trailing slash
	RequestTimeout time.Duration // per-request timeout for the HTTP client

	// Session identity
	ProfileTTL time.Duration // staleness window for the cached profile

	// OAuth callback capture
	OAuthListenAddr string // local address for the Google sign-in callback listener
}

const (
	defaultAPIBaseURL      = "http://localhost/vasfood"
	defaultRequestTimeout  = 60 * time.Second
	defaultProfileTTL      = 30 * time.Minute
	defaultOAuthListenAddr = "127.0.0.1:9480"
)

// Load reads configuration from environment variables, applying defaults.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars always win because godotenv
	// does not overwrite existing values.
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:      ensureScheme(getEnv("VASFOOD_API_URL", defaultAPIBaseURL)),
		RequestTimeout:  getEnvDuration("VASFOOD_REQUEST_TIMEOUT", defaultRequestTimeout),
		ProfileTTL:      getEnvDuration("VASFOOD_PROFILE_TTL", defaultProfileTTL),
		OAuthListenAddr: getEnv("VASFOOD_OAUTH_LISTEN_ADDR", defaultOAuthListenAddr),
	}

	if _, err := url.Parse(cfg.APIBaseURL); err != nil {
		return nil, fmt.Errorf("invalid VASFOOD_API_URL: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("VASFOOD_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}

	return cfg, nil
}

// getEnv returns the environment variable value or a default if unset/empty
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvDuration parses a duration env var ("30s", "5m"); bare integers are seconds
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// ensureScheme prepends https:// to bare hosts and strips trailing slashes
func ensureScheme(raw string) string {
	raw = strings.TrimRight(raw, "/")
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}
