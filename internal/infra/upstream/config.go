// Package upstream implements the feed fetcher: a NewsAPI-style headlines
// client with a fixed fallback dataset, and an RSS adapter for the worker's
// scheduled crawls. The headlines client never fails past its boundary:
// without a credential it serves the fallback dataset directly, and any
// upstream failure substitutes the same dataset instead of an error.
package upstream

import (
	"log/slog"
	"time"

	"newspulse/internal/pkg/config"
)

// Configuration defaults. The page size range mirrors the upstream
// provider's documented limits.
const (
	DefaultBaseURL  = "https://newsapi.org/v2"
	DefaultCountry  = "us"
	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 100
	DefaultTimeout  = 10 * time.Second

	// Rate limiting for outbound headline requests.
	DefaultRequestsPerSecond = 5
	DefaultBurst             = 10
)

// configMetrics is registered once for the upstream component.
var configMetrics = config.NewConfigMetrics("upstream")

// Config holds the headlines client configuration.
type Config struct {
	// APIKey is the upstream access credential. An empty key is not an
	// error: it selects fallback mode, where every fetch serves the fixed
	// dataset without touching the network.
	APIKey string

	BaseURL  string
	Country  string
	PageSize int
	Timeout  time.Duration

	// RequestsPerSecond and Burst bound outbound request rate.
	RequestsPerSecond int
	Burst             int
}

// FallbackMode reports whether the client serves the fixed dataset only.
func (c Config) FallbackMode() bool {
	return c.APIKey == ""
}

// LoadConfigFromEnv loads the headlines client configuration from
// environment variables. Loading never fails: invalid values fall back to
// defaults with logged warnings, and a missing NEWS_API_KEY silently
// selects fallback mode.
//
// Environment variables:
//   - NEWS_API_KEY: upstream access credential (optional)
//   - NEWS_API_BASE_URL: API base URL (default "https://newsapi.org/v2")
//   - NEWS_API_COUNTRY: country filter (default "us")
//   - NEWS_API_PAGE_SIZE: articles per page, 1-100 (default 20)
//   - NEWS_API_TIMEOUT: request timeout (default "10s")
//   - NEWS_API_RATE_LIMIT: outbound requests per second (default 5)
func LoadConfigFromEnv() Config {
	cfg := Config{}
	fallbackApplied := false

	result := config.LoadEnvString("NEWS_API_KEY", "", nil)
	cfg.APIKey = result.Value.(string)

	result = config.LoadEnvString("NEWS_API_BASE_URL", DefaultBaseURL, config.ValidateBaseURL)
	cfg.BaseURL = result.Value.(string)
	fallbackApplied = logWarnings("base_url", result) || fallbackApplied

	result = config.LoadEnvString("NEWS_API_COUNTRY", DefaultCountry, nil)
	cfg.Country = result.Value.(string)

	result = config.LoadEnvInt("NEWS_API_PAGE_SIZE", DefaultPageSize, func(v int) error {
		return config.ValidateIntRange(v, MinPageSize, MaxPageSize)
	})
	cfg.PageSize = result.Value.(int)
	fallbackApplied = logWarnings("page_size", result) || fallbackApplied

	result = config.LoadEnvDuration("NEWS_API_TIMEOUT", DefaultTimeout, config.ValidatePositiveDuration)
	cfg.Timeout = result.Value.(time.Duration)
	fallbackApplied = logWarnings("timeout", result) || fallbackApplied

	result = config.LoadEnvInt("NEWS_API_RATE_LIMIT", DefaultRequestsPerSecond, func(v int) error {
		return config.ValidateIntRange(v, 1, 100)
	})
	cfg.RequestsPerSecond = result.Value.(int)
	cfg.Burst = DefaultBurst
	fallbackApplied = logWarnings("rate_limit", result) || fallbackApplied

	configMetrics.RecordLoadTimestamp()
	configMetrics.SetFallbackActive(fallbackApplied)

	if cfg.FallbackMode() {
		slog.Info("no upstream credential configured, headlines served from fallback dataset")
	}

	return cfg
}

// logWarnings logs a load result's warnings and records fallback metrics.
// It returns whether a fallback was applied.
func logWarnings(field string, result config.ConfigLoadResult) bool {
	for _, w := range result.Warnings {
		slog.Warn("upstream configuration fallback", slog.String("warning", w))
	}
	if result.FallbackApplied {
		configMetrics.RecordFallback(field)
	}
	return result.FallbackApplied
}
