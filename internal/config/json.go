package config

import (
	"encoding/json"
	"os"
	"time"

	"storefront/internal/flagx"
	"storefront/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can specify intervals either as strings like
// "30s" or as integer nanoseconds.
type jsonConfig struct {
	APIEndpointURL       *string         `json:"api_endpoint_url"`
	DatabaseDSN          *string         `json:"database_dsn"`
	SessionCheckInterval *timex.Duration `json:"session_check_interval"`
}

// parseJSON overlays cfg with values loaded from a JSON file named by the
// -c/-config flag. Absent file path means no JSON layer. Fields missing from
// the file keep their current values.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIEndpointURL != nil {
		cfg.APIEndpointURL = *jc.APIEndpointURL
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SessionCheckInterval != nil {
		cfg.SessionCheckInterval = time.Duration(jc.SessionCheckInterval.Duration)
	}
}
