package ratelimit

import (
	"net/http"
	"strings"
)

var unlimited = EndpointConfig{}

// MatchEndpoint finds the limit for a request. Exact paths win over prefixes,
// and a config naming a method wins over one that matches any method.
// CORS preflight requests are never limited. Returns nil when nothing matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodOptions {
		return &unlimited
	}

	var best *EndpointConfig
	bestScore := 0
	for i := range configs {
		c := &configs[i]
		if c.Method != "" && c.Method != method {
			continue
		}

		score := 0
		switch {
		case c.Path == path:
			score = 4
		case strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path):
			score = 2
		default:
			continue
		}
		if c.Method != "" {
			score++
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}
