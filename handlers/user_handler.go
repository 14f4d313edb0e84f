package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"dailyGraceAPI/internal/types/user"
	"dailyGraceAPI/middleware"
	"dailyGraceAPI/services"
)

type UserHandler struct {
	userService  *services.UserService
	verseService *services.VerseService
}

func NewUserHandler(userService *services.UserService, verseService *services.VerseService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		verseService: verseService,
	}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	profile, err := h.userService.GetProfile(ctx, clerkID)
	if err != nil {
		respondServiceError(w, "GetProfile", err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req user.OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		respondWithError(w, http.StatusBadRequest, "Username is required")
		return
	}

	profile, err := h.userService.CompleteOnboarding(ctx, clerkID, &req)
	if err != nil {
		respondServiceError(w, "CompleteOnboarding", err)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) GetDenominations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	denominations, err := h.userService.GetDenominations(ctx)
	if err != nil {
		respondServiceError(w, "GetDenominations", err)
		return
	}

	respondWithJSON(w, http.StatusOK, denominations)
}

func (h *UserHandler) GetDailyVerse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	respondWithJSON(w, http.StatusOK, h.verseService.GetDailyVerse(ctx))
}
