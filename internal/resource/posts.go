package resource

import (
	"context"

	"github.com/ubuntoo-net/ubuntoo/internal/api"
	"github.com/ubuntoo-net/ubuntoo/types"
)

// PostFeed is the controller for the community feed.
type PostFeed struct {
	*Controller[types.Post]
	client *api.Client
}

func NewPostFeed(client *api.Client) *PostFeed {
	feed := &PostFeed{client: client}
	feed.Controller = NewController(func(ctx context.Context) ([]types.Post, error) {
		var posts []types.Post
		if err := client.Get(ctx, "/posts", &posts); err != nil {
			return nil, err
		}
		return posts, nil
	})
	return feed
}

// Publish creates a post and refreshes the feed so the new post is
// visible without further user action.
func (f *PostFeed) Publish(ctx context.Context, post types.PostCreate) error {
	return f.do(ctx, func(ctx context.Context) error {
		return f.client.Post(ctx, "/posts", post, nil)
	})
}
