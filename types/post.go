package types

import "time"

// PostType classifies a publication in the feed.
type PostType string

const (
	PostIdea      PostType = "idea"
	PostAction    PostType = "action"
	PostTestimony PostType = "testimony"
	PostChallenge PostType = "challenge"
	PostSuccess   PostType = "success"
)

// PostTypes lists every valid publication type.
var PostTypes = []PostType{PostIdea, PostAction, PostTestimony, PostChallenge, PostSuccess}

// Valid reports whether t is a known publication type.
func (t PostType) Valid() bool {
	for _, known := range PostTypes {
		if t == known {
			return true
		}
	}
	return false
}

// PostAuthor is the denormalized author snapshot embedded in feed
// responses. It reflects the profile at enrichment time, not a live
// join.
type PostAuthor struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	ProfileImage string `json:"profile_image"`
	JobTitle     string `json:"job_title"`
}

// Post is a publication in the community feed. The likes, comments
// and shares counters are display-only for clients.
type Post struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Content       string      `json:"content"`
	PostType      PostType    `json:"post_type"`
	Tags          []string    `json:"tags"`
	ImageURL      string      `json:"image_url"`
	LikesCount    int         `json:"likes_count"`
	CommentsCount int         `json:"comments_count"`
	SharesCount   int         `json:"shares_count"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	User          *PostAuthor `json:"user,omitempty"`
}

// PostCreate carries the fields for publishing a post.
type PostCreate struct {
	Content  string   `json:"content"`
	PostType PostType `json:"post_type"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"image_url,omitempty"`
}
