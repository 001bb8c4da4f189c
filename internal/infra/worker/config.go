// Package worker contains the scheduled feed crawler: its configuration,
// metrics, health endpoints, and the crawl loop that pulls RSS sources,
// enhances their content, and hands batches to the ingestion engine.
package worker

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"newspulse/internal/pkg/config"
)

// WorkerConfig controls the crawl schedule and operational parameters of
// the worker service. All fields have defaults and validation rules so the
// worker can start even with invalid or missing configuration.
type WorkerConfig struct {
	// CronSchedule is the five-field cron expression for crawl runs.
	CronSchedule string

	// Timezone is the IANA timezone name the schedule is evaluated in.
	Timezone string

	// CrawlTimeout bounds a single crawl run. The run's context is
	// cancelled once it elapses.
	CrawlTimeout time.Duration

	// CrawlParallelism is the number of feeds fetched concurrently.
	CrawlParallelism int

	// HealthPort is the port for the worker's health check server.
	HealthPort int

	// SourcesPath points to the YAML file listing categories and their
	// feed URLs.
	SourcesPath string
}

// DefaultConfig returns the production defaults: hourly crawls in UTC with
// a 30 minute budget.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:     "0 * * * *",
		Timezone:         "UTC",
		CrawlTimeout:     30 * time.Minute,
		CrawlParallelism: 4,
		HealthPort:       9091,
		SourcesPath:      "configs/sources.yaml",
	}
}

// Validate checks every field and returns the collected errors.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.CrawlTimeout, 1*time.Minute, 4*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("crawl timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.CrawlParallelism, 1, 32); err != nil {
		errs = append(errs, fmt.Errorf("crawl parallelism: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if c.SourcesPath == "" {
		errs = append(errs, fmt.Errorf("sources path cannot be empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration from environment
// variables. Invalid values fall back to defaults with a warning and a
// metrics increment; the function never fails.
//
// Environment variables:
//   - CRAWL_SCHEDULE: cron expression (default "0 * * * *")
//   - WORKER_TIMEZONE: IANA timezone; an invalid value falls back to TZ
//     before the compiled-in default
//   - CRAWL_TIMEOUT: duration string, 1m-4h (default 30m)
//   - CRAWL_PARALLELISM: integer 1-32 (default 4)
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default 9091)
//   - SOURCES_PATH: path to the sources YAML (default configs/sources.yaml)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	applyFallback := func(field string, result config.ConfigLoadResult) {
		if !result.FallbackApplied {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range result.Warnings {
			logger.Warn("configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvString("CRAWL_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	applyFallback("cron_schedule", result)

	// WORKER_TIMEZONE が不正なら、先にプロセスのTZを試す
	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, os.Getenv("TZ"), config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	applyFallback("timezone", result)

	result = config.LoadEnvDuration("CRAWL_TIMEOUT", cfg.CrawlTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.CrawlTimeout = result.Value.(time.Duration)
	applyFallback("crawl_timeout", result)

	result = config.LoadEnvInt("CRAWL_PARALLELISM", cfg.CrawlParallelism, func(v int) error {
		return config.ValidateIntRange(v, 1, 32)
	})
	cfg.CrawlParallelism = result.Value.(int)
	applyFallback("crawl_parallelism", result)

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	applyFallback("health_port", result)

	result = config.LoadEnvString("SOURCES_PATH", cfg.SourcesPath, nil)
	cfg.SourcesPath = result.Value.(string)

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
