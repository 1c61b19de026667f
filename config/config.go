package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds everything the service needs at runtime. Values come from the
// environment (main honors a .env file first) and the struct is passed down
// explicitly so the engine stays testable without process-wide state.
type Config struct {
	DatabaseURL       string
	GeminiAPIKey      string
	GeminiModel       string
	Port              string
	LowStockThreshold int
	LowStockLimit     int
	// ZeroFillGaps inserts zero-total days into the daily series before the
	// forecast fit. Off by default: absent days compress the time axis,
	// which is the behavior the dashboard has always shown.
	ZeroFillGaps bool
}

// Load reads the configuration from environment variables, applying defaults
// for everything except DATABASE_URL.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		Port:              getEnv("PORT", "8000"),
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 5),
		LowStockLimit:     getEnvInt("LOW_STOCK_LIMIT", 10),
		ZeroFillGaps:      getEnvBool("ZERO_FILL_GAPS", false),
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
