package ratelimit

import "strings"

// MatchEndpoint resolves the config governing a request. The health check is
// always unlimited; otherwise an exact path+method match wins over prefix
// patterns (a Path ending in "/" covers everything below it, so "/kpis/"
// matches "/kpis/{key}/entries"). Returns nil when only the default applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{} // Limit 0 means unlimited
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if prefixMatch == nil && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			prefixMatch = config
		}
	}
	return prefixMatch
}
