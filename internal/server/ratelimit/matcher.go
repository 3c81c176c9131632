package ratelimit

import (
	"net/http"
	"slices"
	"strings"
)

// MatchEndpoint returns the rule for a request, or nil when the default limit
// applies. Exact paths win over prefix rules. Unlimited GET paths yield a
// rule with Limit 0.
func MatchEndpoint(path, method string, configs []EndpointConfig, unlimited []string) *EndpointConfig {
	if method == http.MethodGet && slices.Contains(unlimited, path) {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
