package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"dailyGraceAPI/internal/types/gratitude"
	"dailyGraceAPI/middleware"
	"dailyGraceAPI/services"
)

type GratitudeHandler struct {
	gratitudeService *services.GratitudeService
}

func NewGratitudeHandler(gratitudeService *services.GratitudeService) *GratitudeHandler {
	return &GratitudeHandler{
		gratitudeService: gratitudeService,
	}
}

func (h *GratitudeHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	entries, err := h.gratitudeService.GetEntries(ctx, clerkID)
	if err != nil {
		respondServiceError(w, "GetEntries", err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func (h *GratitudeHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req gratitude.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		respondWithError(w, http.StatusBadRequest, "Content is required")
		return
	}

	created, err := h.gratitudeService.CreateEntry(ctx, clerkID, &req)
	if err != nil {
		respondServiceError(w, "CreateEntry", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *GratitudeHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	entryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	entry, err := h.gratitudeService.GetEntry(ctx, clerkID, entryID)
	if err != nil {
		respondServiceError(w, "GetEntry", err)
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}

func (h *GratitudeHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	entryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	var req gratitude.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.gratitudeService.UpdateEntry(ctx, clerkID, entryID, &req)
	if err != nil {
		respondServiceError(w, "UpdateEntry", err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *GratitudeHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	entryID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	if err := h.gratitudeService.DeleteEntry(ctx, clerkID, entryID); err != nil {
		respondServiceError(w, "DeleteEntry", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Entry deleted"})
}
