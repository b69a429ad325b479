// Package config holds runtime settings for the storefront client and the
// layered loading logic: defaults, then a JSON file, then environment
// variables, then command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the storefront client.
//
// Fields:
//   - APIEndpointURL: base URL of the backend REST API.
//   - DatabaseDSN: path/DSN of the local SQLite database.
//   - SessionCheckInterval: how often the client checks the session token
//     for expiry.
type Config struct {
	APIEndpointURL       string
	DatabaseDSN          string
	SessionCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIEndpointURL = "http://127.0.0.1:5000"
	c.DatabaseDSN = "storefront.db"
	c.SessionCheckInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
