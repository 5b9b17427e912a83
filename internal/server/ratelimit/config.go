package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment
// variables.
func LoadConfig() *Config {
	return LoadConfigFrom(os.Getenv)
}

// LoadConfigFrom is LoadConfig with an explicit variable lookup.
func LoadConfigFrom(getenv func(string) string) *Config {
	e := env(getenv)
	if !e.bool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	if fitLimit := e.int("RATE_LIMIT_FIT_LIMIT", 0); fitLimit > 0 {
		for i := range endpoints {
			if endpoints[i].Path == "/fit" {
				endpoints[i].Limit = fitLimit
			}
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    e.int("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   e.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: e.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: endpoints,
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Fitting may drive a headless browser several times per request
		{Path: "/fit", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Single measurements and reductions
		{Path: "/pages", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/reduce", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Session lifecycle
		{Path: "/sessions", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/sessions/", Method: "PUT", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/sessions/", Method: "PATCH", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/sessions/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},

		// Navigation intents and reads use the default limit; health is unlimited
	}
}

// env reads typed values, falling back to a default when a variable is
// unset or malformed.
type env func(string) string

func (e env) int(key string, defaultValue int) int {
	if v, err := strconv.Atoi(e(key)); err == nil {
		return v
	}
	return defaultValue
}

func (e env) bool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(e(key)); err == nil {
		return v
	}
	return defaultValue
}

func (e env) duration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(e(key)); err == nil {
		return v
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
