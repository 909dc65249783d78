// Package store holds the in-memory state backing the development
// server. It exists so client tests run against a real HTTP surface
// with no external infrastructure.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ubuntoo-net/ubuntoo/types"
)

// Memory is a mutex-guarded store for users, posts, challenges and
// badges. All methods return copies; callers never alias internals.
type Memory struct {
	mu         sync.RWMutex
	users      map[string]types.User
	posts      map[string]types.Post
	challenges map[string]types.Challenge
	badges     map[string]types.Badge
}

func NewMemory() *Memory {
	return &Memory{
		users:      make(map[string]types.User),
		posts:      make(map[string]types.Post),
		challenges: make(map[string]types.Challenge),
		badges:     make(map[string]types.Badge),
	}
}

// CreateUser inserts a user, assigning its id and defaults.
func (m *Memory) CreateUser(_ context.Context, user types.User) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.IsActive = true
	user.SoftSkills = ensureSlice(user.SoftSkills)
	user.PersonalValues = ensureSlice(user.PersonalValues)
	user.Engagements = ensureSlice(user.Engagements)
	user.Badges = ensureSlice(user.Badges)

	m.users[user.ID] = user
	return user, nil
}

func (m *Memory) GetUserByID(_ context.Context, id string) (types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return types.User{}, ErrNotFound
	}
	return user, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

// UpdateUser replaces the stored user with the same id.
func (m *Memory) UpdateUser(_ context.Context, user types.User) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return types.User{}, ErrNotFound
	}
	m.users[user.ID] = user
	return user, nil
}

// ListUsers returns every user, newest first.
func (m *Memory) ListUsers(_ context.Context) ([]types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]types.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

// CreatePost inserts a post, assigning its id and timestamps.
func (m *Memory) CreatePost(_ context.Context, post types.Post) (types.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	post.ID = uuid.NewString()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.Tags = ensureSlice(post.Tags)
	post.User = nil // author snapshots are attached at read time

	m.posts[post.ID] = post
	return post, nil
}

func (m *Memory) GetPost(_ context.Context, id string) (types.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	post, ok := m.posts[id]
	if !ok {
		return types.Post{}, ErrNotFound
	}
	return post, nil
}

// ListPosts returns every post, newest first.
func (m *Memory) ListPosts(_ context.Context) ([]types.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	posts := make([]types.Post, 0, len(m.posts))
	for _, post := range m.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// CreateChallenge inserts a challenge, assigning its id and defaults.
func (m *Memory) CreateChallenge(_ context.Context, challenge types.Challenge) (types.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	challenge.ID = uuid.NewString()
	challenge.CreatedAt = time.Now().UTC()
	challenge.IsActive = true
	challenge.Participants = ensureSlice(challenge.Participants)
	challenge.Rewards = ensureSlice(challenge.Rewards)

	m.challenges[challenge.ID] = challenge
	return challenge, nil
}

func (m *Memory) GetChallenge(_ context.Context, id string) (types.Challenge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	challenge, ok := m.challenges[id]
	if !ok {
		return types.Challenge{}, ErrNotFound
	}
	return challenge, nil
}

// UpdateChallenge replaces the stored challenge with the same id.
func (m *Memory) UpdateChallenge(_ context.Context, challenge types.Challenge) (types.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.challenges[challenge.ID]; !ok {
		return types.Challenge{}, ErrNotFound
	}
	m.challenges[challenge.ID] = challenge
	return challenge, nil
}

// ListChallenges returns challenges newest first, optionally only the
// active ones.
func (m *Memory) ListChallenges(_ context.Context, activeOnly bool) ([]types.Challenge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	challenges := make([]types.Challenge, 0, len(m.challenges))
	for _, challenge := range m.challenges {
		if activeOnly && !challenge.IsActive {
			continue
		}
		challenges = append(challenges, challenge)
	}
	sort.Slice(challenges, func(i, j int) bool {
		return challenges[i].CreatedAt.After(challenges[j].CreatedAt)
	})
	return challenges, nil
}

// CreateBadge inserts a badge nomination in pending state.
func (m *Memory) CreateBadge(_ context.Context, badge types.Badge) (types.Badge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	badge.ID = uuid.NewString()
	badge.CreatedAt = time.Now().UTC()
	badge.Status = types.BadgePending
	badge.Voters = ensureSlice(badge.Voters)

	m.badges[badge.ID] = badge
	return badge, nil
}

func (m *Memory) GetBadge(_ context.Context, id string) (types.Badge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	badge, ok := m.badges[id]
	if !ok {
		return types.Badge{}, ErrNotFound
	}
	return badge, nil
}

// UpdateBadge replaces the stored badge with the same id.
func (m *Memory) UpdateBadge(_ context.Context, badge types.Badge) (types.Badge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.badges[badge.ID]; !ok {
		return types.Badge{}, ErrNotFound
	}
	m.badges[badge.ID] = badge
	return badge, nil
}

// ListBadges returns badges newest first, filtered by owner and
// status when those are non-empty.
func (m *Memory) ListBadges(_ context.Context, userID string, status types.BadgeStatus) ([]types.Badge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	badges := make([]types.Badge, 0, len(m.badges))
	for _, badge := range m.badges {
		if userID != "" && badge.UserID != userID {
			continue
		}
		if status != "" && badge.Status != status {
			continue
		}
		badges = append(badges, badge)
	}
	sort.Slice(badges, func(i, j int) bool {
		return badges[i].CreatedAt.After(badges[j].CreatedAt)
	})
	return badges, nil
}

func ensureSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
