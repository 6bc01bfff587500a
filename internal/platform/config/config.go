// Package config loads service settings from environment variables so main
// stays lean.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Addr        string
	DatabaseURL string
	LogLevel    string
	LogFormat   string

	// Enrichment gateway settings. The base URLs exist as override points
	// for tests and private mirrors.
	CountriesBaseURL string
	WeatherBaseURL   string
	EnrichTimeout    time.Duration

	ShutdownTimeout time.Duration
}

// FromEnv builds a Config from environment variables, applying defaults
// where unset. Invalid durations fail startup rather than being silently
// replaced.
func FromEnv() (Config, error) {
	enrichTimeout, err := parseDuration("GEOCATALOG_ENRICH_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := parseDuration("GEOCATALOG_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Addr:             envOrDefault("GEOCATALOG_ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "text"),
		CountriesBaseURL: envOrDefault("COUNTRIES_BASE_URL", "https://restcountries.com"),
		WeatherBaseURL:   envOrDefault("WEATHER_BASE_URL", "https://api.open-meteo.com"),
		EnrichTimeout:    enrichTimeout,
		ShutdownTimeout:  shutdownTimeout,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}
