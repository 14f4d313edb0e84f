package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClerkAuthMiddlewareMissingHeader(t *testing.T) {
	handler := ClerkAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called without an Authorization header")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestClerkAuthMiddlewareMalformedHeader(t *testing.T) {
	handler := ClerkAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called with a malformed Authorization header")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
	req.Header.Set("Authorization", "Token abc123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestOptionalAuthMiddlewareAnonymous(t *testing.T) {
	var called bool
	handler := OptionalAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := GetClerkID(r.Context()); ok {
			t.Error("anonymous request should not carry a clerk id")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !called {
		t.Fatal("anonymous request should reach the handler")
	}
	if rr.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestClerkIDContextRoundTrip(t *testing.T) {
	ctx := WithClerkID(context.Background(), "user_2abc")

	clerkID, ok := GetClerkID(ctx)
	if !ok {
		t.Fatal("expected clerk id in context")
	}
	if clerkID != "user_2abc" {
		t.Errorf("expected clerk id %q, got %q", "user_2abc", clerkID)
	}

	if _, ok := GetClerkID(context.Background()); ok {
		t.Error("empty context should not yield a clerk id")
	}
}
