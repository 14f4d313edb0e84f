package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"dailyGraceAPI/middleware"
)

// Auth and validation failures short-circuit before the service is touched,
// so a handler around a nil service is enough to exercise them.
func newTestChallengeRouter() *mux.Router {
	h := NewChallengeHandler(nil)

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/challenges/{id}/join", h.JoinChallenge).Methods("POST")
	r.HandleFunc("/api/v1/challenges/{id}/complete", h.CompleteTask).Methods("POST")
	r.HandleFunc("/api/v1/challenges/user", h.GetUserChallenges).Methods("GET")
	return r
}

func TestCompleteTaskRequiresAuth(t *testing.T) {
	router := newTestChallengeRouter()

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/challenges/6f1a2b3c-4d5e-4f60-8a9b-0c1d2e3f4a5b/complete",
		strings.NewReader(`{"taskDay": 1}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestCompleteTaskInvalidChallengeID(t *testing.T) {
	router := newTestChallengeRouter()

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/challenges/not-a-uuid/complete",
		strings.NewReader(`{"taskDay": 1}`))
	req = req.WithContext(middleware.WithClerkID(req.Context(), "user_2abc"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestCompleteTaskInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"taskDay": `},
		{"missing task day", `{}`},
		{"zero task day", `{"taskDay": 0}`},
		{"negative task day", `{"taskDay": -3}`},
	}

	router := newTestChallengeRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost,
				"/api/v1/challenges/6f1a2b3c-4d5e-4f60-8a9b-0c1d2e3f4a5b/complete",
				strings.NewReader(tt.body))
			req = req.WithContext(middleware.WithClerkID(req.Context(), "user_2abc"))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
		})
	}
}

func TestJoinChallengeRequiresAuth(t *testing.T) {
	router := newTestChallengeRouter()

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/challenges/6f1a2b3c-4d5e-4f60-8a9b-0c1d2e3f4a5b/join", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestJoinChallengeInvalidChallengeID(t *testing.T) {
	router := newTestChallengeRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/challenges/42/join", nil)
	req = req.WithContext(middleware.WithClerkID(req.Context(), "user_2abc"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestGetUserChallengesRequiresAuth(t *testing.T) {
	router := newTestChallengeRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges/user", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestCreateChallengeValidation(t *testing.T) {
	h := NewChallengeHandler(nil)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing title", `{"description":"d","category":"prayer","difficulty":"easy","duration_days":21,"start_date":"2026-09-01","end_date":"2026-09-21"}`},
		{"zero duration", `{"title":"t","description":"d","category":"prayer","difficulty":"easy","duration_days":0,"start_date":"2026-09-01","end_date":"2026-09-21"}`},
		{"missing dates", `{"title":"t","description":"d","category":"prayer","difficulty":"easy","duration_days":21}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/challenges", strings.NewReader(tt.body))
			req = req.WithContext(middleware.WithClerkID(req.Context(), "user_2abc"))
			rr := httptest.NewRecorder()
			h.CreateChallenge(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
		})
	}
}
