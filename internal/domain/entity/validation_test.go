package entity

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://example.com/article/1", false},
		{"valid http", "http://example.com", false},
		// 構文チェックのみ。名前解決やIP帯の判定は接続する側で行う
		{"ip host", "http://127.0.0.1/feed", false},
		{"empty", "", true},
		{"no scheme", "example.com/article", true},
		{"ftp scheme", "ftp://example.com", true},
		{"no host", "https://", true},
		{"unparseable", "https://exa mple.com/%zz", true},
		{"too long", "https://example.com/" + strings.Repeat("a", maxURLLength), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidationFailed) {
				t.Errorf("ValidateURL(%q) error does not match ErrValidationFailed: %v", tt.url, err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "url", Message: "is required"}
	want := "validation error on field 'url': is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationError_Is(t *testing.T) {
	var err error = &ValidationError{Field: "name", Message: "is required"}
	if !errors.Is(err, ErrValidationFailed) {
		t.Error("expected ValidationError to match ErrValidationFailed")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("ValidationError must not match ErrNotFound")
	}
}
