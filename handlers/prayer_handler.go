package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"dailyGraceAPI/internal/types/prayer"
	"dailyGraceAPI/middleware"
	"dailyGraceAPI/services"
)

type PrayerHandler struct {
	prayerService *services.PrayerService
}

func NewPrayerHandler(prayerService *services.PrayerService) *PrayerHandler {
	return &PrayerHandler{
		prayerService: prayerService,
	}
}

func (h *PrayerHandler) GetPrayers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	prayers, err := h.prayerService.GetPrayers(ctx, clerkID)
	if err != nil {
		respondServiceError(w, "GetPrayers", err)
		return
	}

	respondWithJSON(w, http.StatusOK, prayers)
}

func (h *PrayerHandler) CreatePrayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req prayer.CreatePrayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		respondWithError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	created, err := h.prayerService.CreatePrayer(ctx, clerkID, &req)
	if err != nil {
		respondServiceError(w, "CreatePrayer", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *PrayerHandler) GetPrayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	prayerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid prayer id")
		return
	}

	p, err := h.prayerService.GetPrayer(ctx, clerkID, prayerID)
	if err != nil {
		respondServiceError(w, "GetPrayer", err)
		return
	}

	respondWithJSON(w, http.StatusOK, p)
}

func (h *PrayerHandler) UpdatePrayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	prayerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid prayer id")
		return
	}

	var req prayer.UpdatePrayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.prayerService.UpdatePrayer(ctx, clerkID, prayerID, &req)
	if err != nil {
		respondServiceError(w, "UpdatePrayer", err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *PrayerHandler) DeletePrayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	prayerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid prayer id")
		return
	}

	if err := h.prayerService.DeletePrayer(ctx, clerkID, prayerID); err != nil {
		respondServiceError(w, "DeletePrayer", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Prayer deleted"})
}
