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

// PostHandler serves the community feed endpoints.
type PostHandler struct {
	store *store.Memory
}

// PostRouter registers post routes on the given (authorized) router.
func PostRouter(r chi.Router, st *store.Memory) {
	handler := &PostHandler{store: st}

	r.Post("/", handler.Create)
	r.Get("/", handler.List)
	r.Get("/{id}", handler.Get)
}

// Create publishes a post and bumps the author's post counter.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	author, err := currentUser(r.Context(), h.store)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return
	}

	var req types.PostCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if !req.PostType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid post type")
		return
	}

	post, err := h.store.CreatePost(r.Context(), types.Post{
		UserID:   author.ID,
		Content:  req.Content,
		PostType: req.PostType,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create post")
		return
	}

	author.PostsCount++
	if _, err := h.store.UpdateUser(r.Context(), author); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update author")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// List returns the feed newest first, each post carrying an author
// snapshot taken at read time.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	for i := range posts {
		posts[i].User = h.authorSnapshot(r, posts[i].UserID)
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get returns one post with its author snapshot.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.store.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load post")
		return
	}
	post.User = h.authorSnapshot(r, post.UserID)
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) authorSnapshot(r *http.Request, userID string) *types.PostAuthor {
	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		return nil
	}
	return &types.PostAuthor{
		ID:           user.ID,
		Username:     user.Username,
		FullName:     user.FullName,
		ProfileImage: user.ProfileImage,
		JobTitle:     user.JobTitle,
	}
}
