package resource

import (
	"context"
	"net/url"
	"time"

	"github.com/ubuntoo-net/ubuntoo/internal/api"
	"github.com/ubuntoo-net/ubuntoo/types"
)

// ChallengeBoard is the controller for the community challenges.
type ChallengeBoard struct {
	*Controller[types.Challenge]
	client *api.Client

	// now is swappable for tests of the date guard.
	now func() time.Time
}

func NewChallengeBoard(client *api.Client) *ChallengeBoard {
	board := &ChallengeBoard{client: client, now: time.Now}
	board.Controller = NewController(func(ctx context.Context) ([]types.Challenge, error) {
		var challenges []types.Challenge
		if err := client.Get(ctx, "/challenges", &challenges); err != nil {
			return nil, err
		}
		return challenges, nil
	})
	return board
}

// Propose creates a challenge and refreshes the board.
func (b *ChallengeBoard) Propose(ctx context.Context, challenge types.ChallengeCreate) error {
	return b.do(ctx, func(ctx context.Context) error {
		return b.client.Post(ctx, "/challenges", challenge, nil)
	})
}

// Join registers userID as a participant. Expired, full and
// already-joined challenges are rejected from the local snapshot
// before any request is issued; the server still has the final word
// when that snapshot was stale. A failed join never shows as joined.
func (b *ChallengeBoard) Join(ctx context.Context, id, userID string) error {
	if challenge, ok := b.find(id); ok {
		if err := challenge.Joinable(userID, b.now()); err != nil {
			return err
		}
	}
	return b.do(ctx, func(ctx context.Context) error {
		return b.client.Post(ctx, "/challenges/"+url.PathEscape(id)+"/join", nil, nil)
	})
}

func (b *ChallengeBoard) find(id string) (types.Challenge, bool) {
	for _, challenge := range b.Items() {
		if challenge.ID == id {
			return challenge, true
		}
	}
	return types.Challenge{}, false
}
