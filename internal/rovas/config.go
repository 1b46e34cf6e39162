package rovas

import "os"

// DefaultEndpoint is the production Rovas rules proxy base URL. A dev
// instance exists at https://dev.rovas.app and can be selected via
// CHRONOMAP_ROVAS_ENDPOINT.
const DefaultEndpoint = "https://rovas.app/rovas/rules"

// Config holds Rovas API client settings.
type Config struct {
	Endpoint string
	LogCalls bool
}

// DefaultConfig returns the production endpoint with call logging off.
func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		LogCalls: false,
	}
}

// LoadConfig reads Rovas client configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("CHRONOMAP_ROVAS_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("CHRONOMAP_ROVAS_LOG_CALLS"); v != "" {
		cfg.LogCalls = v == "1" || v == "true"
	}
	return cfg
}
