package ratelimit

import (
	"strings"
)

// unlimited is returned for paths that are never limited.
var unlimited = EndpointConfig{Path: "/health"}

// MatchEndpoint matches a request path and method to an endpoint
// configuration, or returns nil when none applies. Exact paths win over
// prefixes ending in "/", and longer prefixes win over shorter ones.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && (method == "GET" || method == "HEAD") {
		rule := unlimited
		return &rule
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if !strings.EqualFold(config.Method, method) {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if best == nil || len(config.Path) > len(best.Path) {
				best = config
			}
		}
	}
	return best
}
