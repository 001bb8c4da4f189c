package fetcher

import (
	"fmt"
	"time"

	"newspulse/internal/pkg/config"
)

// ContentFetchConfig controls the content enhancement feature: fetching
// the full article body from its URL when the feed's own content is too
// short to classify and summarize well.
type ContentFetchConfig struct {
	// Enabled toggles the feature. When false every article keeps its
	// feed content unchanged.
	Enabled bool

	// Threshold is the minimum feed content length in characters. Content
	// at or above the threshold is considered sufficient and no fetch
	// happens for that article.
	Threshold int

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// Parallelism caps concurrent fetches within one batch.
	Parallelism int

	// MaxBodySize caps the response body in bytes, enforced while
	// reading, not from the Content-Length header.
	MaxBodySize int64

	// MaxRedirects caps redirect chains. Every redirect target goes
	// through the same SSRF validation as the original URL.
	MaxRedirects int

	// DenyPrivateIPs rejects URLs resolving to loopback, private, or
	// link-local addresses. Always true in production.
	DenyPrivateIPs bool
}

// DefaultConfig returns production defaults for content fetching.
func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Enabled:        true,
		Threshold:      1500,
		Timeout:        10 * time.Second,
		Parallelism:    10,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks that the configuration is safe to run with.
func (c *ContentFetchConfig) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %d", c.Threshold)
	}

	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}

	if err := config.ValidateIntRange(c.Parallelism, 1, 50); err != nil {
		return fmt.Errorf("parallelism: %w", err)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if err := config.ValidateIntRange(c.MaxRedirects, 0, 10); err != nil {
		return fmt.Errorf("max redirects: %w", err)
	}

	return nil
}

// LoadConfigFromEnv loads the content fetch configuration from environment
// variables. Invalid individual values fall back to defaults with warnings;
// the assembled configuration is then validated as a whole.
//
// Environment variables:
//   - CONTENT_FETCH_ENABLED: "true" or "false" (default: true)
//   - CONTENT_FETCH_THRESHOLD: integer characters (default: 1500)
//   - CONTENT_FETCH_TIMEOUT: duration string (default: "10s")
//   - CONTENT_FETCH_PARALLELISM: integer 1-50 (default: 10)
//   - CONTENT_FETCH_MAX_BODY_SIZE: integer bytes (default: 10485760)
//   - CONTENT_FETCH_MAX_REDIRECTS: integer 0-10 (default: 5)
//   - CONTENT_FETCH_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadConfigFromEnv() (ContentFetchConfig, error) {
	cfg := DefaultConfig()

	result := config.LoadEnvBool("CONTENT_FETCH_ENABLED", cfg.Enabled)
	cfg.Enabled = result.Value.(bool)

	result = config.LoadEnvInt("CONTENT_FETCH_THRESHOLD", cfg.Threshold, func(v int) error {
		if v < 0 {
			return fmt.Errorf("threshold must be non-negative, got %d", v)
		}
		return nil
	})
	cfg.Threshold = result.Value.(int)

	result = config.LoadEnvDuration("CONTENT_FETCH_TIMEOUT", cfg.Timeout, config.ValidatePositiveDuration)
	cfg.Timeout = result.Value.(time.Duration)

	result = config.LoadEnvInt("CONTENT_FETCH_PARALLELISM", cfg.Parallelism, func(v int) error {
		return config.ValidateIntRange(v, 1, 50)
	})
	cfg.Parallelism = result.Value.(int)

	result = config.LoadEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", int(cfg.MaxBodySize), nil)
	cfg.MaxBodySize = int64(result.Value.(int))

	result = config.LoadEnvInt("CONTENT_FETCH_MAX_REDIRECTS", cfg.MaxRedirects, func(v int) error {
		return config.ValidateIntRange(v, 0, 10)
	})
	cfg.MaxRedirects = result.Value.(int)

	result = config.LoadEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)
	cfg.DenyPrivateIPs = result.Value.(bool)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
