package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ubuntoo-net/ubuntoo/internal/server"
	"github.com/ubuntoo-net/ubuntoo/internal/store"
	"github.com/ubuntoo-net/ubuntoo/types"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(server.NewRouter(store.NewMemory(), testSecret))
	t.Cleanup(ts.Close)
	return ts
}

// doJSON issues a request with an optional bearer token and decodes
// the response body into out when out is non-nil.
func doJSON(t *testing.T, method, url, token string, body, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func register(t *testing.T, ts *httptest.Server, email, username string) types.AuthResponse {
	t.Helper()
	var auth types.AuthResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", types.RegisterRequest{
		Email:    email,
		Password: "secret123",
		Username: username,
		FullName: "Test " + username,
	}, &auth)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}
	if auth.AccessToken == "" || auth.User.ID == "" {
		t.Fatalf("register %s: incomplete auth response %+v", email, auth)
	}
	return auth
}

func TestRegisterLoginResolve(t *testing.T) {
	ts := newTestServer(t)
	auth := register(t, ts, "ana@ubuntoo.net", "ana")
	if auth.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", auth.TokenType)
	}

	var login types.AuthResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", types.LoginRequest{
		Email:    "ana@ubuntoo.net",
		Password: "secret123",
	}, &login)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}

	var me types.User
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/users/me", login.AccessToken, nil, &me)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: status %d", resp.StatusCode)
	}
	if me.ID != auth.User.ID || me.Username != "ana" {
		t.Fatalf("resolved user = %+v", me)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "ana@ubuntoo.net", "ana")

	var body map[string]string
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", types.RegisterRequest{
		Email: "ana@ubuntoo.net", Password: "x", Username: "other", FullName: "Other",
	}, &body)
	if resp.StatusCode != http.StatusBadRequest || body["detail"] != "Email already registered" {
		t.Fatalf("duplicate email: status %d detail %q", resp.StatusCode, body["detail"])
	}

	body = map[string]string{}
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", types.RegisterRequest{
		Email: "other@ubuntoo.net", Password: "x", Username: "ana", FullName: "Other",
	}, &body)
	if resp.StatusCode != http.StatusBadRequest || body["detail"] != "Username already taken" {
		t.Fatalf("duplicate username: status %d detail %q", resp.StatusCode, body["detail"])
	}
}

func TestLoginBadCredentials(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "ana@ubuntoo.net", "ana")

	var body map[string]string
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", types.LoginRequest{
		Email: "ana@ubuntoo.net", Password: "wrong",
	}, &body)
	if resp.StatusCode != http.StatusUnauthorized || body["detail"] != "Invalid credentials" {
		t.Fatalf("status %d detail %q", resp.StatusCode, body["detail"])
	}
}

func TestRejectsMissingToken(t *testing.T) {
	ts := newTestServer(t)
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/users/me", "", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/users/me", "not-a-jwt", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", resp.StatusCode)
	}
}

func TestPartialProfileUpdate(t *testing.T) {
	ts := newTestServer(t)
	auth := register(t, ts, "ana@ubuntoo.net", "ana")

	bio := "circular economy enthusiast"
	skills := []string{"Empathy", "Facilitation"}
	var updated types.User
	resp := doJSON(t, http.MethodPut, ts.URL+"/api/users/me", auth.AccessToken, types.UserUpdate{
		Bio:        &bio,
		SoftSkills: &skills,
	}, &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status %d", resp.StatusCode)
	}
	if updated.Bio != bio {
		t.Fatalf("bio = %q", updated.Bio)
	}
	if updated.FullName != "Test ana" {
		t.Fatalf("full_name = %q, omitted field was changed", updated.FullName)
	}
	if len(updated.SoftSkills) != 2 || updated.SoftSkills[0] != "Empathy" {
		t.Fatalf("soft_skills = %v, want full replacement in order", updated.SoftSkills)
	}
}

func TestFeedEnrichedNewestFirst(t *testing.T) {
	ts := newTestServer(t)
	auth := register(t, ts, "ana@ubuntoo.net", "ana")

	for _, content := range []string{"first", "second"} {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/posts", auth.AccessToken, types.PostCreate{
			Content: content, PostType: types.PostIdea,
		}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("create post: status %d", resp.StatusCode)
		}
		// Creation timestamps order the feed.
		time.Sleep(5 * time.Millisecond)
	}

	var posts []types.Post
	doJSON(t, http.MethodGet, ts.URL+"/api/posts", auth.AccessToken, nil, &posts)
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	if posts[0].Content != "second" {
		t.Fatalf("feed head = %q, want newest first", posts[0].Content)
	}
	if posts[0].User == nil || posts[0].User.Username != "ana" {
		t.Fatalf("author snapshot = %+v", posts[0].User)
	}

	var me types.User
	doJSON(t, http.MethodGet, ts.URL+"/api/users/me", auth.AccessToken, nil, &me)
	if me.PostsCount != 2 {
		t.Fatalf("posts_count = %d, want 2", me.PostsCount)
	}
}

func TestChallengeJoinGuards(t *testing.T) {
	ts := newTestServer(t)
	ana := register(t, ts, "ana@ubuntoo.net", "ana")
	bob := register(t, ts, "bob@ubuntoo.net", "bob")

	one := 1
	now := time.Now().UTC()
	var created types.Challenge
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/challenges", ana.AccessToken, types.ChallengeCreate{
		Title:           "Zero waste month",
		Description:     "No single-use plastic",
		Category:        types.CategoryEnviron,
		StartDate:       now,
		EndDate:         now.AddDate(0, 0, 30),
		MaxParticipants: &one,
	}, &created)
	if resp.StatusCode != http.StatusOK || created.ID == "" {
		t.Fatalf("create challenge: status %d body %+v", resp.StatusCode, created)
	}

	joinURL := fmt.Sprintf("%s/api/challenges/%s/join", ts.URL, created.ID)
	if resp := doJSON(t, http.MethodPost, joinURL, ana.AccessToken, nil, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("first join: status %d", resp.StatusCode)
	}

	var body map[string]string
	resp = doJSON(t, http.MethodPost, joinURL, ana.AccessToken, nil, &body)
	if resp.StatusCode != http.StatusBadRequest || body["detail"] != "You are already participating in this challenge" {
		t.Fatalf("rejoin: status %d detail %q", resp.StatusCode, body["detail"])
	}

	body = map[string]string{}
	resp = doJSON(t, http.MethodPost, joinURL, bob.AccessToken, nil, &body)
	if resp.StatusCode != http.StatusBadRequest || body["detail"] != "Challenge is full" {
		t.Fatalf("full join: status %d detail %q", resp.StatusCode, body["detail"])
	}
}

func TestBadgeVoteValidation(t *testing.T) {
	ts := newTestServer(t)
	owner := register(t, ts, "ana@ubuntoo.net", "ana")

	var badge types.Badge
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/badges", owner.AccessToken, types.BadgeCreate{
		UserID:      owner.User.ID,
		BadgeType:   types.BadgeEmpathy,
		Title:       "Always listens",
		Description: "Mentored three newcomers through onboarding",
	}, &badge)
	if resp.StatusCode != http.StatusOK || badge.Status != types.BadgePending {
		t.Fatalf("nominate: status %d badge %+v", resp.StatusCode, badge)
	}

	voteURL := fmt.Sprintf("%s/api/badges/%s/vote?vote=true", ts.URL, badge.ID)
	for i := 0; i < 5; i++ {
		voter := register(t, ts,
			fmt.Sprintf("voter%d@ubuntoo.net", i),
			fmt.Sprintf("voter%d", i))
		if resp := doJSON(t, http.MethodPost, voteURL, voter.AccessToken, nil, nil); resp.StatusCode != http.StatusOK {
			t.Fatalf("vote %d: status %d", i, resp.StatusCode)
		}
	}

	var badges []types.Badge
	doJSON(t, http.MethodGet, ts.URL+"/api/badges?user_id="+owner.User.ID, owner.AccessToken, nil, &badges)
	if len(badges) != 1 {
		t.Fatalf("badges = %d, want 1", len(badges))
	}
	got := badges[0]
	if got.Status != types.BadgeValidated || got.VotesFor != 5 {
		t.Fatalf("badge after votes = %+v, want validated at 5", got)
	}
	if got.AwardedBy != "community" || got.ValidatedAt == nil {
		t.Fatalf("validation metadata missing: %+v", got)
	}

	var me types.User
	doJSON(t, http.MethodGet, ts.URL+"/api/users/me", owner.AccessToken, nil, &me)
	found := false
	for _, b := range me.Badges {
		if b == string(types.BadgeEmpathy) {
			found = true
		}
	}
	if !found {
		t.Fatalf("owner badges = %v, validated type not recorded", me.Badges)
	}
}

func TestBadgeDoubleVoteRejected(t *testing.T) {
	ts := newTestServer(t)
	owner := register(t, ts, "ana@ubuntoo.net", "ana")
	voter := register(t, ts, "bob@ubuntoo.net", "bob")

	var badge types.Badge
	doJSON(t, http.MethodPost, ts.URL+"/api/badges", owner.AccessToken, types.BadgeCreate{
		UserID:      owner.User.ID,
		BadgeType:   types.BadgeLeadership,
		Title:       "Steps up",
		Description: "Led the river cleanup",
	}, &badge)

	voteURL := fmt.Sprintf("%s/api/badges/%s/vote?vote=true", ts.URL, badge.ID)
	if resp := doJSON(t, http.MethodPost, voteURL, voter.AccessToken, nil, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("first vote: status %d", resp.StatusCode)
	}

	var body map[string]string
	resp := doJSON(t, http.MethodPost, voteURL, voter.AccessToken, nil, &body)
	if resp.StatusCode != http.StatusBadRequest || body["detail"] != "You have already voted on this badge" {
		t.Fatalf("second vote: status %d detail %q", resp.StatusCode, body["detail"])
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]string
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/health", "", nil, &body)
	if resp.StatusCode != http.StatusOK || body["status"] != "healthy" {
		t.Fatalf("health: status %d body %v", resp.StatusCode, body)
	}
}
