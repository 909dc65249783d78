package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ubuntoo-net/ubuntoo/internal/store"
	"github.com/ubuntoo-net/ubuntoo/types"
)

type contextKey string

const contextSubjectKey contextKey = "sub"

// ErrorResponse is the error body shape clients parse.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func userIDFromContext(ctx context.Context) (string, error) {
	subject, ok := ctx.Value(contextSubjectKey).(string)
	if !ok || subject == "" {
		return "", errors.New("missing subject")
	}
	return subject, nil
}

// currentUser resolves the authenticated user behind the request.
func currentUser(ctx context.Context, st *store.Memory) (types.User, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return types.User{}, err
	}
	return st.GetUserByID(ctx, userID)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

// Healthz is the liveness probe.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Health reports API health under the API prefix.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "UBUNTOO API",
	})
}
