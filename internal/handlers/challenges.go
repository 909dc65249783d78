package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ubuntoo-net/ubuntoo/internal/store"
	"github.com/ubuntoo-net/ubuntoo/types"
)

// ChallengeHandler serves the community challenge endpoints.
type ChallengeHandler struct {
	store *store.Memory
}

// ChallengeRouter registers challenge routes on the given (authorized)
// router.
func ChallengeRouter(r chi.Router, st *store.Memory) {
	handler := &ChallengeHandler{store: st}

	r.Post("/", handler.Create)
	r.Get("/", handler.List)
	r.Post("/{id}/join", handler.Join)
}

// Create proposes a challenge owned by the authenticated user.
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	creator, err := currentUser(r.Context(), h.store)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return
	}

	var req types.ChallengeCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if req.Category == "" {
		req.Category = types.CategoryInnovation
	}

	challenge, err := h.store.CreateChallenge(r.Context(), types.Challenge{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		Rewards:         req.Rewards,
		CreatedBy:       creator.ID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create challenge")
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

// List returns challenges newest first. Inactive challenges are
// hidden unless is_active=false is passed.
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("is_active") != "false"
	challenges, err := h.store.ListChallenges(r.Context(), activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list challenges")
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

// Join registers the authenticated user as a participant, enforcing
// the one-join and capacity guards.
func (h *ChallengeHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.store)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return
	}

	challenge, err := h.store.GetChallenge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Challenge not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load challenge")
		return
	}

	if challenge.HasParticipant(user.ID) {
		writeError(w, http.StatusBadRequest, "You are already participating in this challenge")
		return
	}
	if challenge.IsFull() {
		writeError(w, http.StatusBadRequest, "Challenge is full")
		return
	}

	challenge.Participants = append(challenge.Participants, user.ID)
	if _, err := h.store.UpdateChallenge(r.Context(), challenge); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to join challenge")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Successfully joined challenge",
	})
}
