// Package session owns the authentication credential and the current
// user identity. Every other component reads authorization state from
// here and never duplicates it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ubuntoo-net/ubuntoo/internal/api"
	"github.com/ubuntoo-net/ubuntoo/types"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusResolving       Status = "resolving"
	StatusAuthenticated   Status = "authenticated"
)

// ErrNotAuthenticated is returned by operations that require a logged
// in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// Session is the single source of truth for "who is logged in". It is
// constructed explicitly and passed to every dependent; there is no
// package-level state.
type Session struct {
	mu     sync.Mutex
	client *api.Client
	creds  CredentialStore

	status Status
	token  string
	user   *types.User

	// epoch increments on every login and logout. In-flight requests
	// capture it before suspending and discard their result when it
	// has moved on.
	epoch uint64
}

// New wires a Session to its transport. The client derives the
// Authorization header from this session on every request, and an
// unauthorized response on any authorized call forces a logout.
func New(client *api.Client, creds CredentialStore) *Session {
	s := &Session{
		client: client,
		creds:  creds,
		status: StatusUnauthenticated,
	}
	client.SetAuth(s.Token, s.Logout)
	return s
}

// API exposes the authorized transport for resource controllers.
func (s *Session) API() *api.Client { return s.client }

// Token returns the current credential, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CurrentUser returns a copy of the authenticated user's profile.
// The second result is false while unauthenticated.
func (s *Session) CurrentUser() (types.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return types.User{}, false
	}
	return *s.user, true
}

// Initialize restores a persisted credential and resolves the
// identity behind it. It always terminates in authenticated or
// unauthenticated, never in resolving: any failure discards the
// credential and falls back to unauthenticated.
func (s *Session) Initialize(ctx context.Context) {
	tok, err := s.creds.Load()
	if err != nil || tok == "" {
		s.mu.Lock()
		s.status = StatusUnauthenticated
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.status = StatusResolving
	s.token = tok
	epoch := s.epoch
	s.mu.Unlock()

	var user types.User
	err = s.client.Get(ctx, "/users/me", &user)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// A login or logout raced the resolve; its outcome wins.
		return
	}
	if err != nil || user.ID == "" {
		// An unauthorized resolve already cleared the credential via
		// the logout hook; clearing again covers network failures.
		_ = s.creds.Clear()
		s.status = StatusUnauthenticated
		s.token = ""
		s.user = nil
		return
	}
	s.status = StatusAuthenticated
	s.user = &user
}

// Login exchanges credentials for a token. On failure the session is
// left unchanged.
func (s *Session) Login(ctx context.Context, email, password string) error {
	var resp types.AuthResponse
	err := s.client.Post(ctx, "/auth/login", types.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return err
	}
	return s.establish(resp)
}

// Register creates an account. Success implies immediate
// authentication, with the same contract as Login.
func (s *Session) Register(ctx context.Context, req types.RegisterRequest) error {
	var resp types.AuthResponse
	if err := s.client.Post(ctx, "/auth/register", req, &resp); err != nil {
		return err
	}
	return s.establish(resp)
}

func (s *Session) establish(resp types.AuthResponse) error {
	if resp.AccessToken == "" || resp.User.ID == "" {
		return &api.Error{Kind: api.KindValidation, Detail: "malformed authentication response"}
	}
	if err := s.creds.Save(resp.AccessToken); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user := resp.User
	s.token = resp.AccessToken
	s.user = &user
	s.status = StatusAuthenticated
	s.epoch++
	return nil
}

// Logout discards the persisted credential and clears the identity.
// It is safe to call at any time, including while requests are in
// flight; their eventual results are discarded.
func (s *Session) Logout() {
	_ = s.creds.Clear()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.status = StatusUnauthenticated
	s.epoch++
}

// UpdateProfile applies a partial update and replaces the in-memory
// profile with the server's returned representation. The response is
// authoritative: server-computed counters and badge state may differ
// from what was sent, so no client-side merge happens.
func (s *Session) UpdateProfile(ctx context.Context, update types.UserUpdate) error {
	s.mu.Lock()
	if s.status != StatusAuthenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	epoch := s.epoch
	s.mu.Unlock()

	var user types.User
	if err := s.client.Put(ctx, "/users/me", update, &user); err != nil {
		return err
	}
	if user.ID == "" {
		return &api.Error{Kind: api.KindValidation, Detail: "malformed server response"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch == epoch {
		s.user = &user
	}
	return nil
}

// AddSkill adds a skill to the profile's skill set. Adding a skill
// that is already present is a no-op and issues no request.
func (s *Session) AddSkill(ctx context.Context, name string) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	if s.user.HasSkill(name) {
		s.mu.Unlock()
		return nil
	}
	skills := make([]string, 0, len(s.user.SoftSkills)+1)
	skills = append(skills, s.user.SoftSkills...)
	skills = append(skills, name)
	s.mu.Unlock()

	return s.UpdateProfile(ctx, types.UserUpdate{SoftSkills: &skills})
}

// RemoveSkill removes a skill from the profile's skill set. Removing
// a skill that is not present is a no-op and issues no request.
func (s *Session) RemoveSkill(ctx context.Context, name string) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	if !s.user.HasSkill(name) {
		s.mu.Unlock()
		return nil
	}
	skills := make([]string, 0, len(s.user.SoftSkills))
	for _, skill := range s.user.SoftSkills {
		if skill != name {
			skills = append(skills, skill)
		}
	}
	s.mu.Unlock()

	return s.UpdateProfile(ctx, types.UserUpdate{SoftSkills: &skills})
}
