package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"dailyGraceAPI/internal/types/board"
	"dailyGraceAPI/middleware"
	"dailyGraceAPI/services"
)

type BoardHandler struct {
	boardService *services.BoardService
}

func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

func (h *BoardHandler) GetPublicPosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, _ := middleware.GetClerkID(ctx)

	posts, err := h.boardService.GetPublicPosts(ctx, clerkID)
	if err != nil {
		respondServiceError(w, "GetPublicPosts", err)
		return
	}

	respondWithJSON(w, http.StatusOK, posts)
}

func (h *BoardHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req board.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		respondWithError(w, http.StatusBadRequest, "Content is required")
		return
	}

	created, err := h.boardService.CreatePost(ctx, clerkID, &req)
	if err != nil {
		respondServiceError(w, "CreatePost", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *BoardHandler) Amen(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	postID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	result, err := h.boardService.Amen(ctx, clerkID, postID)
	if err != nil {
		respondServiceError(w, "Amen", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
