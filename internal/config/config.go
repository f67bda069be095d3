package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the core runtime configuration for the service.
// Values are primarily sourced from environment variables, with
// sensible defaults where appropriate. See .env.example.
type Config struct {
	// DatabaseURL, when set, selects PostgreSQL. Otherwise the service
	// falls back to a local SQLite file at DatabasePath.
	DatabaseURL  string
	DatabasePath string

	ListenAddr string

	// SessionTTL is how long an admin login session remains valid.
	SessionTTL time.Duration
}

// Load reads configuration from environment variables and applies defaults.
func Load() *Config {
	cfg := &Config{
		DatabaseURL:  os.Getenv("APP_DATABASE_URL"),
		DatabasePath: getenv("APP_DATABASE_PATH", "data/stationmap.db"),
		ListenAddr:   getenv("APP_LISTEN_ADDR", ":8080"),
		SessionTTL:   24 * time.Hour,
	}

	if v := os.Getenv("APP_SESSION_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.SessionTTL = time.Duration(hours) * time.Hour
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
