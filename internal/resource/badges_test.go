package resource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ubuntoo-net/ubuntoo/internal/api"
	"github.com/ubuntoo-net/ubuntoo/types"
)

func TestNominateTargetsWallOwner(t *testing.T) {
	var received types.BadgeCreate
	mux := http.NewServeMux()
	mux.HandleFunc("/badges", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&received)
		}
		_ = json.NewEncoder(w).Encode([]types.Badge{})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	wall := NewBadgeWall(api.NewClient(ts.URL, 5*time.Second), "owner-1")
	err := wall.Nominate(context.Background(), types.BadgeCreate{
		UserID:      "someone-else",
		BadgeType:   types.BadgeEmpathy,
		Title:       "Always listens",
		Description: "Mentored three newcomers",
	})
	if err != nil {
		t.Fatalf("nominate: %v", err)
	}
	if received.UserID != "owner-1" {
		t.Fatalf("nomination user_id = %q, want the wall owner", received.UserID)
	}
}

func TestVoteQueryEncodesDirection(t *testing.T) {
	var votes []string
	mux := http.NewServeMux()
	mux.HandleFunc("/badges", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]types.Badge{})
	})
	mux.HandleFunc("/badges/b1/vote", func(w http.ResponseWriter, r *http.Request) {
		votes = append(votes, r.URL.Query().Get("vote"))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	wall := NewBadgeWall(api.NewClient(ts.URL, 5*time.Second), "owner-1")
	ctx := context.Background()
	if err := wall.Vote(ctx, "b1", true); err != nil {
		t.Fatalf("vote for: %v", err)
	}
	if err := wall.Vote(ctx, "b1", false); err != nil {
		t.Fatalf("vote against: %v", err)
	}
	if len(votes) != 2 || votes[0] != "true" || votes[1] != "false" {
		t.Fatalf("votes = %v", votes)
	}
}
