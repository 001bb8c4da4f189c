package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Test Group 1: ValidateCronSchedule
// ============================================================================

func TestValidateCronSchedule_Valid(t *testing.T) {
	schedules := []string{
		"30 5 * * *",
		"0 */6 * * *",
		"30 9 * * 1-5",
		"*/15 * * * *",
		"0 0 1 * *",
	}

	for _, schedule := range schedules {
		assert.NoError(t, ValidateCronSchedule(schedule), "schedule %q", schedule)
	}
}

func TestValidateCronSchedule_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
	}{
		{"empty", ""},
		{"too few fields", "30 5 * *"},
		{"too many fields", "30 5 * * * *"},
		{"out of range minute", "60 5 * * *"},
		{"not a cron", "every day at noon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid cron schedule")
		})
	}
}

// ============================================================================
// Test Group 2: ValidateTimezone
// ============================================================================

func TestValidateTimezone_Valid(t *testing.T) {
	timezones := []string{
		"UTC",
		"America/New_York",
		"Europe/London",
		"Asia/Tokyo",
	}

	for _, tz := range timezones {
		assert.NoError(t, ValidateTimezone(tz), "timezone %q", tz)
	}
}

func TestValidateTimezone_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
	}{
		{"empty", ""},
		{"unknown zone", "Invalid/Timezone"},
		{"utc offset instead of name", "+09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimezone(tt.timezone)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid timezone")
		})
	}
}

// ============================================================================
// Test Group 3: ValidateBaseURL
// ============================================================================

func TestValidateBaseURL_Valid(t *testing.T) {
	urls := []string{
		"https://newsapi.org/v2",
		"http://localhost:8080",
		"https://example.com",
	}

	for _, u := range urls {
		assert.NoError(t, ValidateBaseURL(u), "url %q", u)
	}
}

func TestValidateBaseURL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "newsapi.org/v2"},
		{"wrong scheme", "ftp://newsapi.org"},
		{"scheme only", "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.url)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid base URL")
		})
	}
}

// ============================================================================
// Test Group 4: ValidateDuration / ValidatePositiveDuration
// ============================================================================

func TestValidateDuration_WithinRange(t *testing.T) {
	assert.NoError(t, ValidateDuration(30*time.Minute, time.Second, time.Hour))
	assert.NoError(t, ValidateDuration(time.Second, time.Second, time.Hour))
	assert.NoError(t, ValidateDuration(time.Hour, time.Second, time.Hour))
}

func TestValidateDuration_OutOfRange(t *testing.T) {
	err := ValidateDuration(500*time.Millisecond, time.Second, time.Hour)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "below minimum")

	err = ValidateDuration(2*time.Hour, time.Second, time.Hour)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestValidateDuration_InvalidRange(t *testing.T) {
	err := ValidateDuration(time.Minute, time.Hour, time.Second)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid range")
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Nanosecond))
	assert.NoError(t, ValidatePositiveDuration(time.Hour))

	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}

// ============================================================================
// Test Group 5: ValidateIntRange
// ============================================================================

func TestValidateIntRange_WithinRange(t *testing.T) {
	assert.NoError(t, ValidateIntRange(20, 1, 100))
	assert.NoError(t, ValidateIntRange(1, 1, 100))
	assert.NoError(t, ValidateIntRange(100, 1, 100))
}

func TestValidateIntRange_OutOfRange(t *testing.T) {
	err := ValidateIntRange(0, 1, 100)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "below minimum")

	err = ValidateIntRange(101, 1, 100)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestValidateIntRange_InvalidRange(t *testing.T) {
	err := ValidateIntRange(5, 10, 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid range")
}
