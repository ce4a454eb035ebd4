// Package config načítá konfiguraci aplikace z proměnných prostředí.
package config

import (
	"os"
	"strconv"

	"github.com/tonnybx78/cz-name-checker/checker"
	"github.com/tonnybx78/cz-name-checker/generator"
	"github.com/tonnybx78/cz-name-checker/registry"
)

// Config konfigurace serveru a pipeline kontroly názvů.
type Config struct {
	// Server
	Port     string
	LogLevel string

	// ARES
	ARESBaseURL    string
	ARESFetchLimit int
	ARESRateLimit  float64

	// Generátor názvů
	OpenAIAPIKey string
	OpenAIModel  string

	// Klasifikace
	HighThreshold   float64
	MediumThreshold float64

	// Souběžnost kontrol
	Workers int
}

// Load načte konfiguraci z prostředí a zvaliduje ji.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("SERVER_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ARESBaseURL:    getEnv("ARES_BASE_URL", registry.DefaultBaseURL),
		ARESFetchLimit: getEnvInt("ARES_FETCH_LIMIT", 60),
		ARESRateLimit:  getEnvFloat("ARES_RATE_LIMIT", 5),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnv("OPENAI_MODEL", generator.DefaultModel),

		HighThreshold:   getEnvFloat("SIMILARITY_HIGH_THRESHOLD", 85),
		MediumThreshold: getEnvFloat("SIMILARITY_MEDIUM_THRESHOLD", 70),

		Workers: getEnvInt("CHECK_WORKERS", 4),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CheckerOptions převede konfiguraci na nastavení pipeline.
func (c *Config) CheckerOptions() checker.Options {
	return checker.Options{
		Thresholds: checker.Thresholds{
			High:   c.HighThreshold,
			Medium: c.MediumThreshold,
		},
		FetchLimit: c.ARESFetchLimit,
		Workers:    c.Workers,
	}
}

// getEnv vrátí hodnotu proměnné prostředí nebo výchozí hodnotu.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt vrátí celočíselnou hodnotu proměnné prostředí nebo výchozí
// hodnotu, pokud proměnná chybí nebo není číslo.
func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvFloat vrátí desetinnou hodnotu proměnné prostředí nebo výchozí
// hodnotu, pokud proměnná chybí nebo není číslo.
func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
