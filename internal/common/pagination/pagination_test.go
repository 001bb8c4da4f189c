package pagination_test

import (
	"net/http/httptest"
	"testing"

	"newspulse/internal/common/pagination"
)

func TestParseQueryParams(t *testing.T) {
	cfg := pagination.DefaultConfig()

	tests := []struct {
		name    string
		target  string
		want    pagination.Params
		wantErr bool
	}{
		{"no params uses defaults", "/articles", pagination.Params{Page: 1, Limit: 20}, false},
		{"explicit page and limit", "/articles?page=3&limit=50", pagination.Params{Page: 3, Limit: 50}, false},
		{"page only", "/articles?page=2", pagination.Params{Page: 2, Limit: 20}, false},
		{"limit only", "/articles?limit=5", pagination.Params{Page: 1, Limit: 5}, false},
		{"zero page", "/articles?page=0", pagination.Params{}, true},
		{"negative page", "/articles?page=-1", pagination.Params{}, true},
		{"non-numeric page", "/articles?page=abc", pagination.Params{}, true},
		{"limit above max", "/articles?limit=101", pagination.Params{}, true},
		{"zero limit", "/articles?limit=0", pagination.Params{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)

			got, err := pagination.ParseQueryParams(r, cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQueryParams() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got != tt.want {
				t.Errorf("ParseQueryParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParams_WithDefaults(t *testing.T) {
	cfg := pagination.DefaultConfig()

	tests := []struct {
		name string
		in   pagination.Params
		want pagination.Params
	}{
		{"zero values", pagination.Params{}, pagination.Params{Page: 1, Limit: 20}},
		{"negative page", pagination.Params{Page: -5, Limit: 10}, pagination.Params{Page: 1, Limit: 10}},
		{"limit capped", pagination.Params{Page: 2, Limit: 500}, pagination.Params{Page: 2, Limit: 100}},
		{"valid untouched", pagination.Params{Page: 3, Limit: 30}, pagination.Params{Page: 3, Limit: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.WithDefaults(cfg); got != tt.want {
				t.Errorf("WithDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateOffset(t *testing.T) {
	tests := []struct {
		page  int
		limit int
		want  int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 10, 20},
		{100, 10, 990},
	}

	for _, tt := range tests {
		if got := pagination.CalculateOffset(tt.page, tt.limit); got != tt.want {
			t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 1},
		{10, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
	}

	for _, tt := range tests {
		if got := pagination.CalculateTotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestBuildMetadata(t *testing.T) {
	got := pagination.BuildMetadata(pagination.Params{Page: 2, Limit: 20}, 45)

	want := pagination.Metadata{Total: 45, Page: 2, Limit: 20, TotalPages: 3}
	if got != want {
		t.Errorf("BuildMetadata() = %+v, want %+v", got, want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAGINATION_DEFAULT_LIMIT", "50")
	t.Setenv("PAGINATION_MAX_LIMIT", "invalid")

	cfg := pagination.LoadFromEnv()

	if cfg.DefaultLimit != 50 {
		t.Errorf("DefaultLimit = %d, want 50", cfg.DefaultLimit)
	}
	if cfg.MaxLimit != 100 {
		t.Errorf("MaxLimit = %d, want 100 (default)", cfg.MaxLimit)
	}
}
