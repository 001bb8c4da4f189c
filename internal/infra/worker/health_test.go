package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHealthServer_Liveness(t *testing.T) {
	hs := NewHealthServer(":0", discardLogger())

	rec := httptest.NewRecorder()
	hs.handleLiveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var body healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
}

func TestHealthServer_ReadinessTransitions(t *testing.T) {
	hs := NewHealthServer(":0", discardLogger())

	// 初期状態は not ready
	rec := httptest.NewRecorder()
	hs.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status before SetReady = %d, want 503", rec.Code)
	}

	var body healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Status != "not ready" {
		t.Errorf("status = %q, want 'not ready'", body.Status)
	}

	hs.SetReady(true)

	rec = httptest.NewRecorder()
	hs.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status after SetReady = %d, want 200", rec.Code)
	}

	hs.SetReady(false)

	rec = httptest.NewRecorder()
	hs.handleReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status after SetReady(false) = %d, want 503", rec.Code)
	}
}

func TestHealthServer_StartAndShutdown(t *testing.T) {
	// 空きポートを確保してから一旦閉じる
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	hs := NewHealthServer(addr, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- hs.Start(ctx)
	}()

	// サーバ起動を待つ
	url := fmt.Sprintf("http://%s/health", addr)
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("health server never became reachable: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("liveness status = %d, want 200", resp.StatusCode)
	}

	cancel()

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("Start returned %v, want http.ErrServerClosed", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("health server did not shut down in time")
	}
}
