package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name           string
		code           int
		data           any
		expectedCode   int
		expectedBody   string
		expectedHeader string
	}{
		{
			name:           "success with map",
			code:           http.StatusOK,
			data:           map[string]string{"message": "success"},
			expectedCode:   http.StatusOK,
			expectedBody:   `{"message":"success"}`,
			expectedHeader: "application/json",
		},
		{
			name:           "success with struct",
			code:           http.StatusCreated,
			data:           struct{ ID int }{ID: 123},
			expectedCode:   http.StatusCreated,
			expectedBody:   `{"ID":123}`,
			expectedHeader: "application/json",
		},
		{
			name:           "success with nil",
			code:           http.StatusNoContent,
			data:           nil,
			expectedCode:   http.StatusNoContent,
			expectedBody:   "",
			expectedHeader: "application/json",
		},
		{
			name:           "error status",
			code:           http.StatusBadRequest,
			data:           map[string]string{"error": "bad request"},
			expectedCode:   http.StatusBadRequest,
			expectedBody:   `{"error":"bad request"}`,
			expectedHeader: "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			if w.Code != tt.expectedCode {
				t.Errorf("JSON() code = %d, want %d", w.Code, tt.expectedCode)
			}
			if got := w.Header().Get("Content-Type"); got != tt.expectedHeader {
				t.Errorf("JSON() Content-Type = %q, want %q", got, tt.expectedHeader)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tt.expectedBody {
				t.Errorf("JSON() body = %q, want %q", body, tt.expectedBody)
			}
		})
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusBadRequest, errors.New("category is required"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Error() code = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Error() body is not valid JSON: %v", err)
	}
	if body["error"] != "category is required" {
		t.Errorf("Error() message = %q, want %q", body["error"], "category is required")
	}
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		err          error
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "validation error passes through",
			code:         http.StatusBadRequest,
			err:          errors.New("page must be a positive integer"),
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "page must be a positive integer",
		},
		{
			name:         "not found passes through",
			code:         http.StatusNotFound,
			err:          errors.New("article not found"),
			expectedCode: http.StatusNotFound,
			expectedMsg:  "article not found",
		},
		{
			name:         "internal error is masked",
			code:         http.StatusInternalServerError,
			err:          errors.New("pq: connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "internal server error",
		},
		{
			name:         "safe-sounding message still masked on 5xx",
			code:         http.StatusInternalServerError,
			err:          errors.New("upstream returned invalid payload"),
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "internal server error",
		},
		{
			name:         "unsafe error masked on 4xx",
			code:         http.StatusBadRequest,
			err:          fmt.Errorf("parse dsn postgres://user:secret@db: bad port"),
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "internal server error",
		},
		{
			name:         "app error uses its own code and message",
			code:         http.StatusInternalServerError,
			err:          NewAppError(http.StatusServiceUnavailable, "upstream unavailable", errors.New("dial tcp: i/o timeout")),
			expectedCode: http.StatusServiceUnavailable,
			expectedMsg:  "upstream unavailable",
		},
		{
			name:         "wrapped app error is unwrapped",
			code:         http.StatusInternalServerError,
			err:          fmt.Errorf("handle fetch: %w", NewAppError(http.StatusBadGateway, "upstream error", errors.New("status 500"))),
			expectedCode: http.StatusBadGateway,
			expectedMsg:  "upstream error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SafeError(w, tt.code, tt.err)

			if w.Code != tt.expectedCode {
				t.Errorf("SafeError() code = %d, want %d", w.Code, tt.expectedCode)
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("SafeError() body is not valid JSON: %v", err)
			}
			if body["error"] != tt.expectedMsg {
				t.Errorf("SafeError() message = %q, want %q", body["error"], tt.expectedMsg)
			}
		})
	}
}

func TestSafeError_NilError(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusInternalServerError, nil)

	if w.Code != http.StatusOK {
		t.Errorf("SafeError(nil) wrote status %d, want untouched recorder default %d", w.Code, http.StatusOK)
	}
	if w.Body.Len() != 0 {
		t.Errorf("SafeError(nil) wrote body %q, want empty", w.Body.String())
	}
}

func TestAppError(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	appErr := NewAppError(http.StatusBadGateway, "upstream unavailable", inner)

	if appErr.Error() != inner.Error() {
		t.Errorf("Error() = %q, want %q", appErr.Error(), inner.Error())
	}
	if !errors.Is(appErr, inner) {
		t.Error("errors.Is should match the wrapped error")
	}

	noInner := NewAppError(http.StatusBadRequest, "category is required", nil)
	if noInner.Error() != "category is required" {
		t.Errorf("Error() without inner = %q, want user message", noInner.Error())
	}
}
