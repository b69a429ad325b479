package config

import (
	"os"
	"time"
)

// Environment variable names understood by the client.
const (
	envAPIEndpointURL       = "STOREFRONT_API_URL"
	envDatabaseDSN          = "STOREFRONT_DB_DSN"
	envSessionCheckInterval = "STOREFRONT_SESSION_CHECK_INTERVAL"
)

// parseEnv overlays cfg with values from the environment. Unset variables
// keep the current values; a malformed duration is ignored.
func parseEnv(cfg *Config) {
	if v := os.Getenv(envAPIEndpointURL); v != "" {
		cfg.APIEndpointURL = v
	}
	if v := os.Getenv(envDatabaseDSN); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv(envSessionCheckInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionCheckInterval = d
		}
	}
}
