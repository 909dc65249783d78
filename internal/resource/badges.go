package resource

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ubuntoo-net/ubuntoo/internal/api"
	"github.com/ubuntoo-net/ubuntoo/types"
)

// BadgeWall is the controller for one user's badge collection.
type BadgeWall struct {
	*Controller[types.Badge]
	client *api.Client
	userID string
}

// NewBadgeWall builds a controller over the badges owned by userID.
func NewBadgeWall(client *api.Client, userID string) *BadgeWall {
	wall := &BadgeWall{client: client, userID: userID}
	wall.Controller = NewController(func(ctx context.Context) ([]types.Badge, error) {
		var badges []types.Badge
		path := "/badges?user_id=" + url.QueryEscape(userID)
		if err := client.Get(ctx, path, &badges); err != nil {
			return nil, err
		}
		return badges, nil
	})
	return wall
}

// Nominate submits a badge nomination for this wall's owner and
// refreshes the collection. A failed nomination never shows as
// nominated.
func (w *BadgeWall) Nominate(ctx context.Context, nomination types.BadgeCreate) error {
	nomination.UserID = w.userID
	return w.do(ctx, func(ctx context.Context) error {
		return w.client.Post(ctx, "/badges", nomination, nil)
	})
}

// Vote records a community vote on a pending badge. Validation is
// server-owned: the refreshed snapshot carries whatever status and
// tallies the vote produced.
func (w *BadgeWall) Vote(ctx context.Context, badgeID string, inFavor bool) error {
	return w.do(ctx, func(ctx context.Context) error {
		path := fmt.Sprintf("/badges/%s/vote?vote=%t", url.PathEscape(badgeID), inFavor)
		return w.client.Post(ctx, path, nil, nil)
	})
}
