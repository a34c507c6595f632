// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the website server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// BaseURL is the public origin of the site, used for sitemap and robots
	// links. Defaults to "http://localhost:8080".
	BaseURL string

	// TicketingAPIURL is the base URL of the upstream ticketing API. Required.
	TicketingAPIURL string

	// TicketingAPIKey authenticates against the ticketing API. Required.
	TicketingAPIKey string

	// ComingSoonWindowDays is the number of days ahead within which an
	// upcoming town is flagged COMING_SOON. Defaults to 28.
	ComingSoonWindowDays int

	// CacheTTL is how long an upstream snapshot is considered fresh.
	// Defaults to 5m.
	CacheTTL time.Duration

	// FetchConcurrency caps parallel per-event fetches against the ticketing
	// API. Defaults to 4.
	FetchConcurrency int

	// CORSOrigins is the list of allowed cross-origin request origins for the
	// towns API. Defaults to ["http://localhost:5173"] (Vite dev server).
	CORSOrigins []string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, and for
// any numeric or duration variable that does not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		BaseURL:     strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var missing []string

	cfg.TicketingAPIURL = os.Getenv("TICKETING_API_URL")
	if cfg.TicketingAPIURL == "" {
		missing = append(missing, "TICKETING_API_URL")
	}
	cfg.TicketingAPIKey = os.Getenv("TICKETING_API_KEY")
	if cfg.TicketingAPIKey == "" {
		missing = append(missing, "TICKETING_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.ComingSoonWindowDays, err = getEnvInt("COMING_SOON_WINDOW_DAYS", 28); err != nil {
		return Config{}, err
	}
	if cfg.ComingSoonWindowDays < 0 {
		return Config{}, fmt.Errorf("COMING_SOON_WINDOW_DAYS must be non-negative, got %d", cfg.ComingSoonWindowDays)
	}
	if cfg.FetchConcurrency, err = getEnvInt("FETCH_CONCURRENCY", 4); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (e.g. \"5m\"), got %q", key, v)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring
// empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
