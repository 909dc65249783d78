package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ubuntoo-net/ubuntoo/internal/api"
	"github.com/ubuntoo-net/ubuntoo/types"
)

func newTestSession(t *testing.T, handler http.Handler, storedToken string) (*Session, *MemoryStore) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	creds := NewMemoryStore(storedToken)
	client := api.NewClient(ts.URL, 5*time.Second)
	return New(client, creds), creds
}

func writeUser(w http.ResponseWriter, user types.User) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func TestInitializeWithoutCredential(t *testing.T) {
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		hits++
		writeUser(w, types.User{ID: "u1"})
	})

	sess, _ := newTestSession(t, mux, "")
	sess.Initialize(context.Background())

	if got := sess.Status(); got != StatusUnauthenticated {
		t.Fatalf("status = %s, want unauthenticated", got)
	}
	if hits != 0 {
		t.Fatalf("resolve request issued with no credential")
	}
}

func TestInitializeWithRejectedCredential(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusUnauthorized, "Invalid token")
	})

	sess, creds := newTestSession(t, mux, "expired")
	sess.Initialize(context.Background())

	if got := sess.Status(); got != StatusUnauthenticated {
		t.Fatalf("status = %s, want unauthenticated", got)
	}
	if tok, _ := creds.Load(); tok != "" {
		t.Fatalf("rejected credential not cleared, still %q", tok)
	}
	if sess.Token() != "" {
		t.Fatalf("session still holds a token after failed resolve")
	}
}

func TestInitializeResolvesIdentity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer stored" {
			t.Errorf("Authorization = %q, want Bearer stored", got)
		}
		writeUser(w, types.User{ID: "u1", FullName: "Ana"})
	})

	sess, _ := newTestSession(t, mux, "stored")
	sess.Initialize(context.Background())

	if got := sess.Status(); got != StatusAuthenticated {
		t.Fatalf("status = %s, want authenticated", got)
	}
	user, ok := sess.CurrentUser()
	if !ok || user.ID != "u1" {
		t.Fatalf("current user = %+v, want u1", user)
	}
}

func TestLoginSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "a@x.com" || req.Password != "secret" {
			writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		_ = json.NewEncoder(w).Encode(types.AuthResponse{
			AccessToken: "t1",
			User:        types.User{ID: "u1", FullName: "Ana"},
		})
	})

	sess, creds := newTestSession(t, mux, "")
	if err := sess.Login(context.Background(), "a@x.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if got := sess.Status(); got != StatusAuthenticated {
		t.Fatalf("status = %s, want authenticated", got)
	}
	user, _ := sess.CurrentUser()
	if user.ID != "u1" || user.FullName != "Ana" {
		t.Fatalf("current user = %+v", user)
	}
	if tok, _ := creds.Load(); tok != "t1" {
		t.Fatalf("persisted credential = %q, want t1", tok)
	}
}

func TestLoginFailureLeavesSessionUnchanged(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
	})

	sess, creds := newTestSession(t, mux, "")
	err := sess.Login(context.Background(), "a@x.com", "wrong")
	if err == nil {
		t.Fatal("expected login error")
	}
	if got := api.Message(err); got != "Invalid credentials" {
		t.Fatalf("message = %q, want server detail", got)
	}
	if got := sess.Status(); got != StatusUnauthenticated {
		t.Fatalf("status = %s, want unauthenticated", got)
	}
	if tok, _ := creds.Load(); tok != "" {
		t.Fatalf("credential persisted on failed login: %q", tok)
	}
}

// TestCredentialRotation checks that no request issued after a logout
// ever carries a credential issued before it.
func TestCredentialRotation(t *testing.T) {
	issued := 0
	var seen []string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		issued++
		token := "t" + strings.Repeat("x", issued)
		_ = json.NewEncoder(w).Encode(types.AuthResponse{
			AccessToken: token,
			User:        types.User{ID: "u1"},
		})
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		writeUser(w, types.User{ID: "u1"})
	})

	sess, _ := newTestSession(t, mux, "")
	ctx := context.Background()

	if err := sess.Login(ctx, "a@x.com", "secret"); err != nil {
		t.Fatalf("first login: %v", err)
	}
	first := sess.Token()

	var user types.User
	_ = sess.API().Get(ctx, "/users/me", &user)

	sess.Logout()
	if sess.Token() != "" {
		t.Fatal("token survives logout")
	}

	if err := sess.Login(ctx, "a@x.com", "secret"); err != nil {
		t.Fatalf("second login: %v", err)
	}
	_ = sess.API().Get(ctx, "/users/me", &user)

	if len(seen) != 2 {
		t.Fatalf("resolve requests = %d, want 2", len(seen))
	}
	if seen[1] == "Bearer "+first {
		t.Fatalf("request after logout reused pre-logout credential %q", first)
	}
}

func TestUnauthorizedResponseForcesLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.AuthResponse{
			AccessToken: "t1",
			User:        types.User{ID: "u1"},
		})
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusUnauthorized, "Invalid token")
	})

	sess, creds := newTestSession(t, mux, "")
	ctx := context.Background()
	if err := sess.Login(ctx, "a@x.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	err := sess.UpdateProfile(ctx, types.UserUpdate{})
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	if !api.IsUnauthorized(err) {
		t.Fatalf("error kind = %v, want unauthorized", err)
	}
	if got := sess.Status(); got != StatusUnauthenticated {
		t.Fatalf("status = %s, want unauthenticated after forced logout", got)
	}
	if tok, _ := creds.Load(); tok != "" {
		t.Fatalf("credential not cleared on forced logout: %q", tok)
	}
}

func TestUpdateProfileTakesServerRepresentation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.AuthResponse{
			AccessToken: "t1",
			User:        types.User{ID: "u1", PostsCount: 2},
		})
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		// Server-computed counters in the response differ from
		// anything the client sent.
		writeUser(w, types.User{ID: "u1", Bio: "updated", PostsCount: 7})
	})

	sess, _ := newTestSession(t, mux, "")
	ctx := context.Background()
	if err := sess.Login(ctx, "a@x.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	bio := "updated"
	if err := sess.UpdateProfile(ctx, types.UserUpdate{Bio: &bio}); err != nil {
		t.Fatalf("update: %v", err)
	}

	user, _ := sess.CurrentUser()
	if user.PostsCount != 7 {
		t.Fatalf("posts count = %d, want server value 7", user.PostsCount)
	}
	if user.Bio != "updated" {
		t.Fatalf("bio = %q", user.Bio)
	}
}

func TestSkillIdempotence(t *testing.T) {
	puts := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.AuthResponse{
			AccessToken: "t1",
			User:        types.User{ID: "u1", SoftSkills: []string{"Empathy"}},
		})
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			writeUser(w, types.User{ID: "u1", SoftSkills: []string{"Empathy"}})
			return
		}
		puts++
		var update types.UserUpdate
		_ = json.NewDecoder(r.Body).Decode(&update)
		writeUser(w, types.User{ID: "u1", SoftSkills: *update.SoftSkills})
	})

	sess, _ := newTestSession(t, mux, "")
	ctx := context.Background()
	if err := sess.Login(ctx, "a@x.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Adding a present skill and removing an absent one are no-ops
	// and issue no request.
	if err := sess.AddSkill(ctx, "Empathy"); err != nil {
		t.Fatalf("add existing: %v", err)
	}
	if err := sess.RemoveSkill(ctx, "Leadership"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if puts != 0 {
		t.Fatalf("no-op skill edits issued %d requests", puts)
	}

	if err := sess.AddSkill(ctx, "Leadership"); err != nil {
		t.Fatalf("add new: %v", err)
	}
	if puts != 1 {
		t.Fatalf("puts = %d, want 1", puts)
	}
	user, _ := sess.CurrentUser()
	if len(user.SoftSkills) != 2 || user.SoftSkills[1] != "Leadership" {
		t.Fatalf("skills = %v, want insertion order preserved", user.SoftSkills)
	}

	if err := sess.RemoveSkill(ctx, "Empathy"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	user, _ = sess.CurrentUser()
	if len(user.SoftSkills) != 1 || user.SoftSkills[0] != "Leadership" {
		t.Fatalf("skills = %v after removal", user.SoftSkills)
	}
}

func TestLogoutDiscardsInFlightResolve(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		writeUser(w, types.User{ID: "u1"})
	})

	sess, _ := newTestSession(t, mux, "stored")

	done := make(chan struct{})
	go func() {
		sess.Initialize(context.Background())
		close(done)
	}()

	<-started
	sess.Logout()
	close(release)
	<-done

	// The resolve succeeded server-side after the logout; its result
	// must not re-establish the session.
	if got := sess.Status(); got != StatusUnauthenticated {
		t.Fatalf("status = %s, want unauthenticated", got)
	}
	if _, ok := sess.CurrentUser(); ok {
		t.Fatal("stale resolve re-established a user")
	}
}
