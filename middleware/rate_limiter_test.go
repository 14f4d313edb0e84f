package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimitMiddlewareThrottlesBurst(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Unique IP so the shared visitor map from other tests doesn't interfere.
	ip := fmt.Sprintf("10.0.0.1-%d", time.Now().UnixNano())

	allowed := 0
	throttled := 0
	for i := 0; i < 40; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		switch rr.Code {
		case http.StatusOK:
			allowed++
		case http.StatusTooManyRequests:
			throttled++
		default:
			t.Fatalf("unexpected status %d", rr.Code)
		}
	}

	// Burst capacity is 30, so a tight loop of 40 must hit the limiter.
	if allowed < 30 {
		t.Errorf("expected at least 30 requests allowed, got %d", allowed)
	}
	if throttled == 0 {
		t.Error("expected the burst to be throttled")
	}
}

func TestRateLimitMiddlewareSeparatesClients(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Exhaust one client's burst.
	first := fmt.Sprintf("10.0.0.2-%d", time.Now().UnixNano())
	for i := 0; i < 40; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges", nil)
		req.Header.Set("X-Forwarded-For", first)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// A different client is unaffected.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges", nil)
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.3-%d", time.Now().UnixNano()))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d for a fresh client, got %d", http.StatusOK, rr.Code)
	}
}
