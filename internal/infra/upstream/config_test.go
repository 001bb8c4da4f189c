package upstream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	// 何も設定しない場合はフォールバックモード
	cfg := LoadConfigFromEnv()

	assert.True(t, cfg.FallbackMode())
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultCountry, cfg.Country)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultRequestsPerSecond, cfg.RequestsPerSecond)
}

func TestLoadConfigFromEnv_WithCredential(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "live-key")

	cfg := LoadConfigFromEnv()

	assert.False(t, cfg.FallbackMode())
	assert.Equal(t, "live-key", cfg.APIKey)
}

func TestLoadConfigFromEnv_CustomValues(t *testing.T) {
	t.Setenv("NEWS_API_BASE_URL", "https://mirror.example.com/v2")
	t.Setenv("NEWS_API_COUNTRY", "gb")
	t.Setenv("NEWS_API_PAGE_SIZE", "50")
	t.Setenv("NEWS_API_TIMEOUT", "30s")
	t.Setenv("NEWS_API_RATE_LIMIT", "10")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, "https://mirror.example.com/v2", cfg.BaseURL)
	assert.Equal(t, "gb", cfg.Country)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 10, cfg.RequestsPerSecond)
}

func TestLoadConfigFromEnv_InvalidPageSizeFallsBack(t *testing.T) {
	t.Setenv("NEWS_API_PAGE_SIZE", "500")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, DefaultPageSize, cfg.PageSize)
}

func TestLoadConfigFromEnv_InvalidBaseURLFallsBack(t *testing.T) {
	t.Setenv("NEWS_API_BASE_URL", "not a url")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoadConfigFromEnv_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("NEWS_API_TIMEOUT", "-5s")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}
