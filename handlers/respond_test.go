package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dailyGraceAPI/services"
)

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"user not found", services.ErrUserNotFound, http.StatusNotFound},
		{"challenge not found", services.ErrChallengeNotFound, http.StatusNotFound},
		{"task not found", services.ErrTaskNotFound, http.StatusNotFound},
		{"not joined", services.ErrNotJoined, http.StatusNotFound},
		{"prayer not found", services.ErrPrayerNotFound, http.StatusNotFound},
		{"entry not found", services.ErrEntryNotFound, http.StatusNotFound},
		{"post not found", services.ErrPostNotFound, http.StatusNotFound},
		{"notification not found", services.ErrNotifNotFound, http.StatusNotFound},
		{"already joined", services.ErrAlreadyJoined, http.StatusBadRequest},
		{"already completed", services.ErrAlreadyCompleted, http.StatusBadRequest},
		{"already amened", services.ErrAlreadyAmened, http.StatusBadRequest},
		{"store error", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			respondServiceError(rr, "TestOp", tt.err)

			if rr.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rr.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not the error envelope: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error message in the envelope")
			}
		})
	}
}

func TestRespondServiceErrorHidesStoreDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	respondServiceError(rr, "TestOp", errors.New("pq: relation users does not exist"))

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %v", err)
	}
	if body["error"] != "Something went wrong" {
		t.Errorf("store error leaked to the client: %q", body["error"])
	}
}

func TestRespondWrappedSentinel(t *testing.T) {
	rr := httptest.NewRecorder()
	respondServiceError(rr, "TestOp", errors.Join(errors.New("ctx"), services.ErrAlreadyCompleted))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("wrapped sentinel should still map, got status %d", rr.Code)
	}
}
