package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ubuntoo-net/ubuntoo/internal/store"
	"github.com/ubuntoo-net/ubuntoo/types"
)

// UserHandler serves profile endpoints.
type UserHandler struct {
	store *store.Memory
}

// UserRouter registers user routes on the given (authorized) router.
func UserRouter(r chi.Router, st *store.Memory) {
	handler := &UserHandler{store: st}

	r.Get("/me", handler.Me)
	r.Put("/me", handler.UpdateMe)
	r.Get("/", handler.List)
	r.Get("/{id}", handler.Get)
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.store)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateMe applies a partial profile update and returns the full
// updated profile. Absent fields are left untouched.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), h.store)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return
	}

	var update types.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.JobTitle != nil {
		user.JobTitle = *update.JobTitle
	}
	if update.Location != nil {
		user.Location = *update.Location
	}
	if update.SoftSkills != nil {
		user.SoftSkills = *update.SoftSkills
	}
	if update.PersonalValues != nil {
		user.PersonalValues = *update.PersonalValues
	}
	if update.Engagements != nil {
		user.Engagements = *update.Engagements
	}

	updated, err := h.store.UpdateUser(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// List returns every member profile.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get returns one member profile by id.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
