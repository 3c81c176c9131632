package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one route. Paths ending in "/" match by prefix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// key identifies the bucket family a rule owns.
func (c EndpointConfig) key() string {
	return c.Method + " " + c.Path
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // Buckets unused for longer are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
	Unlimited       []string // GET paths that are never limited

	// Now replaces the clock in tests.
	Now func() time.Time
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	generateLimit := getEnvInt("RATE_LIMIT_GENERATE_LIMIT", 0)
	generateWindow := getEnvDuration("RATE_LIMIT_GENERATE_WINDOW", 0)
	for i := range endpoints {
		if endpoints[i].Path != "/generate" {
			continue
		}
		if generateLimit > 0 {
			endpoints[i].Limit = generateLimit
		}
		if generateWindow > 0 {
			endpoints[i].Window = generateWindow
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         getEnvDuration("RATE_LIMIT_IDLE_TTL", time.Hour),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: endpoints,
		Unlimited:       DefaultUnlimited(),
	}
}

// DefaultEndpointConfigs returns the per-route limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Generation may call a language model
		{Path: "/generate", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},

		// Cheap writes
		{Path: "/check-domain", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/save_favorite", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/favorites/", Method: http.MethodDelete, Limit: 60, Window: time.Minute, Burst: 10},

		// Reads fall back to the default limit
	}
}

// DefaultUnlimited lists the probe endpoints that are never limited.
func DefaultUnlimited() []string {
	return []string{"/health", "/metrics"}
}

func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
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
