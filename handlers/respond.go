package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"dailyGraceAPI/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondServiceError maps the services' sentinel errors onto HTTP statuses.
// Anything unrecognized is a store error: logged with the operation name and
// returned as a generic 500.
func respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrChallengeNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrNotJoined),
		errors.Is(err, services.ErrPrayerNotFound),
		errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrNotifNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyJoined),
		errors.Is(err, services.ErrAlreadyCompleted),
		errors.Is(err, services.ErrAlreadyAmened):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("%s: %v", op, err)
		respondWithError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
