package config

import (
	"errors"
	"os"
)

// ErrMissingAPIKey is returned when MACKEREL_API_KEY is absent or empty.
// Load fails with it before any network or filesystem activity happens.
var ErrMissingAPIKey = errors.New("MACKEREL_API_KEY is not set")

type Config struct {
	Mackerel MackerelConfig
	Cache    CacheConfig
	Output   OutputConfig
	// Timezone the "previous month" window is computed in. Defaults to the
	// provider-local zone so month boundaries match the Mackerel console.
	Timezone string
}

type MackerelConfig struct {
	APIKey  string
	BaseURL string
}

type CacheConfig struct {
	DSN string
}

type OutputConfig struct {
	Path string
}

// Load reads the configuration from the process environment once, so tests
// can inject values instead of mutating the real environment.
func Load() (*Config, error) {
	key := os.Getenv("MACKEREL_API_KEY")
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &Config{
		Mackerel: MackerelConfig{
			APIKey:  key,
			BaseURL: "https://api.mackerelio.com",
		},
		Cache:    CacheConfig{DSN: "cache/alerts.db"},
		Output:   OutputConfig{Path: "output/external_alerts.csv"},
		Timezone: "Asia/Tokyo",
	}

	if v := os.Getenv("MACKEREL_BASE_URL"); v != "" {
		cfg.Mackerel.BaseURL = v
	}
	if v := os.Getenv("ALERT_EXPORT_CACHE_DSN"); v != "" {
		cfg.Cache.DSN = v
	}
	if v := os.Getenv("ALERT_EXPORT_OUTPUT"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("ALERT_EXPORT_TZ"); v != "" {
		cfg.Timezone = v
	}

	return cfg, nil
}
