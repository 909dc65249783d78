package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ubuntoo-net/ubuntoo/internal/store"
	"github.com/ubuntoo-net/ubuntoo/types"
)

// communityValidationThreshold is the number of favorable votes that
// promotes a pending badge to validated.
const communityValidationThreshold = 5

// BadgeHandler serves the badge nomination and voting endpoints.
type BadgeHandler struct {
	store *store.Memory
}

// BadgeRouter registers badge routes on the given (authorized) router.
func BadgeRouter(r chi.Router, st *store.Memory) {
	handler := &BadgeHandler{store: st}

	r.Post("/", handler.Nominate)
	r.Get("/", handler.List)
	r.Post("/{id}/vote", handler.Vote)
}

// Nominate submits a badge for community validation. It starts
// pending with empty tallies.
func (h *BadgeHandler) Nominate(w http.ResponseWriter, r *http.Request) {
	var req types.BadgeCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.UserID == "" || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if !req.BadgeType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid badge type")
		return
	}

	badge, err := h.store.CreateBadge(r.Context(), types.Badge{
		UserID:      req.UserID,
		BadgeType:   req.BadgeType,
		Title:       req.Title,
		Description: req.Description,
		EvidenceURL: req.EvidenceURL,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create badge")
		return
	}
	writeJSON(w, http.StatusOK, badge)
}

// List returns badges, filtered by user_id and status query params.
func (h *BadgeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	status := types.BadgeStatus(r.URL.Query().Get("status"))

	badges, err := h.store.ListBadges(r.Context(), userID, status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list badges")
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

// Vote records a community vote. Each user votes at most once per
// badge; reaching the favorable-vote threshold validates the badge
// and appends its type to the owner's profile.
func (h *BadgeHandler) Vote(w http.ResponseWriter, r *http.Request) {
	voter, err := currentUser(r.Context(), h.store)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return
	}

	badge, err := h.store.GetBadge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Badge not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load badge")
		return
	}

	for _, id := range badge.Voters {
		if id == voter.ID {
			writeError(w, http.StatusBadRequest, "You have already voted on this badge")
			return
		}
	}

	badge.Voters = append(badge.Voters, voter.ID)
	if r.URL.Query().Get("vote") == "true" {
		badge.VotesFor++
	} else {
		badge.VotesAgainst++
	}

	if badge.VotesFor >= communityValidationThreshold && badge.Status == types.BadgePending {
		now := time.Now().UTC()
		badge.Status = types.BadgeValidated
		badge.ValidatedAt = &now
		badge.AwardedBy = "community"

		if owner, err := h.store.GetUserByID(r.Context(), badge.UserID); err == nil {
			if !containsString(owner.Badges, string(badge.BadgeType)) {
				owner.Badges = append(owner.Badges, string(badge.BadgeType))
				if _, err := h.store.UpdateUser(r.Context(), owner); err != nil {
					writeError(w, http.StatusInternalServerError, "failed to award badge")
					return
				}
			}
		}
	}

	if _, err := h.store.UpdateBadge(r.Context(), badge); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record vote")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Vote recorded",
	})
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
