package types

import (
	"errors"
	"time"
)

// ChallengeCategory groups challenges by theme.
type ChallengeCategory string

const (
	CategoryInnovation ChallengeCategory = "innovation"
	CategoryEnviron    ChallengeCategory = "environment"
	CategoryMutualAid  ChallengeCategory = "mutual-aid"
	CategoryEthics     ChallengeCategory = "ethics"
	CategoryOther      ChallengeCategory = "other"
)

// Join guard errors, reported before a join request is issued and by
// the server when the client's snapshot was stale.
var (
	ErrChallengeEnded = errors.New("challenge has ended")
	ErrChallengeFull  = errors.New("challenge is full")
	ErrAlreadyJoined  = errors.New("already participating in this challenge")
)

// Challenge is a time-boxed community challenge. Participants and the
// active flag are server-owned.
type Challenge struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Category        ChallengeCategory `json:"category"`
	StartDate       time.Time         `json:"start_date"`
	EndDate         time.Time         `json:"end_date"`
	Participants    []string          `json:"participants"`
	MaxParticipants *int              `json:"max_participants"`
	Rewards         []string          `json:"rewards"`
	CreatedBy       string            `json:"created_by"`
	CreatedAt       time.Time         `json:"created_at"`
	IsActive        bool              `json:"is_active"`
}

// DaysLeft returns the number of days until the challenge ends,
// rounded up. Zero or negative means the challenge is over.
func (c Challenge) DaysLeft(now time.Time) int {
	remaining := c.EndDate.Sub(now)
	days := remaining / (24 * time.Hour)
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}

// IsFull reports whether the participant cap has been reached. A
// challenge without a cap is never full.
func (c Challenge) IsFull() bool {
	return c.MaxParticipants != nil && len(c.Participants) >= *c.MaxParticipants
}

// HasParticipant reports whether userID already joined.
func (c Challenge) HasParticipant(userID string) bool {
	for _, id := range c.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Joinable checks whether userID may join at time now. The server
// remains the authoritative rejection path; this only spares a round
// trip when the local snapshot already rules the join out.
func (c Challenge) Joinable(userID string, now time.Time) error {
	if c.DaysLeft(now) <= 0 {
		return ErrChallengeEnded
	}
	if c.HasParticipant(userID) {
		return ErrAlreadyJoined
	}
	if c.IsFull() {
		return ErrChallengeFull
	}
	return nil
}

// ChallengeCreate carries the fields for proposing a challenge.
type ChallengeCreate struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Category        ChallengeCategory `json:"category"`
	StartDate       time.Time         `json:"start_date"`
	EndDate         time.Time         `json:"end_date"`
	MaxParticipants *int              `json:"max_participants,omitempty"`
	Rewards         []string          `json:"rewards"`
}
