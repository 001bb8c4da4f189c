// Package pagination provides shared offset-based pagination: query
// parameter parsing, offset/page math, and the response envelope used by
// list endpoints.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"

	"newspulse/internal/pkg/config"
)

// Config holds pagination limits.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns the standard pagination configuration:
// page 1, 20 items per page, 100 maximum.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv loads pagination configuration from PAGINATION_DEFAULT_PAGE,
// PAGINATION_DEFAULT_LIMIT, and PAGINATION_MAX_LIMIT. Unset or invalid
// values keep the defaults.
func LoadFromEnv() Config {
	cfg := DefaultConfig()

	result := config.LoadEnvInt("PAGINATION_DEFAULT_PAGE", cfg.DefaultPage, func(v int) error {
		return config.ValidateIntRange(v, 1, 1000000)
	})
	cfg.DefaultPage = result.Value.(int)

	result = config.LoadEnvInt("PAGINATION_DEFAULT_LIMIT", cfg.DefaultLimit, func(v int) error {
		return config.ValidateIntRange(v, 1, 1000)
	})
	cfg.DefaultLimit = result.Value.(int)

	result = config.LoadEnvInt("PAGINATION_MAX_LIMIT", cfg.MaxLimit, func(v int) error {
		return config.ValidateIntRange(v, 1, 1000)
	})
	cfg.MaxLimit = result.Value.(int)

	return cfg
}

// Params are the pagination parameters of one request.
type Params struct {
	Page  int // 1-based
	Limit int
}

// ParseQueryParams reads "page" and "limit" from the request query string.
// Missing parameters take the configured defaults; present but invalid
// parameters return an error.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	params := Params{
		Page:  cfg.DefaultPage,
		Limit: cfg.DefaultLimit,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > cfg.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", cfg.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}

// Validate checks the parameters against the configuration.
func (p Params) Validate(cfg Config) error {
	if p.Page < 1 {
		return fmt.Errorf("page must be a positive integer")
	}
	if p.Limit < 1 || p.Limit > cfg.MaxLimit {
		return fmt.Errorf("limit must be between 1 and %d", cfg.MaxLimit)
	}
	return nil
}

// WithDefaults fills missing or out-of-range values from the configuration.
func (p Params) WithDefaults(cfg Config) Params {
	if p.Page <= 0 {
		p.Page = cfg.DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = cfg.DefaultLimit
	}
	if p.Limit > cfg.MaxLimit {
		p.Limit = cfg.MaxLimit
	}
	return p
}

// Metadata is the pagination block of a list response.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// Response is the envelope for paginated list endpoints.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse wraps data and metadata in a Response.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}

// CalculateOffset converts a 1-based page number to a row offset.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total/limit), with a minimum of 1 so an
// empty result set still renders as one page.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// BuildMetadata assembles response metadata for a query result.
func BuildMetadata(params Params, total int64) Metadata {
	return Metadata{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: CalculateTotalPages(total, params.Limit),
	}
}
