package types

import "time"

// User represents a member profile in the community.
// It contains identity, showcase fields, and server-computed counters.
type User struct {
	// ID is the unique identifier of the user.
	ID string `json:"id"`

	// Email is the user's email address, used as the login identifier.
	Email string `json:"email"`

	// Username is the unique handle chosen by the user.
	Username string `json:"username"`

	// FullName is the user's display name.
	FullName string `json:"full_name"`

	// Bio is a free-form self presentation. Optional.
	Bio string `json:"bio"`

	// JobTitle is the user's current position. Optional.
	JobTitle string `json:"job_title"`

	// Location is the user's declared location. Optional.
	Location string `json:"location"`

	// ProfileImage is a URL to the user's avatar. Optional.
	ProfileImage string `json:"profile_image"`

	// SoftSkills is the curated skill set shown on the profile.
	// Display order is insertion order.
	SoftSkills []string `json:"soft_skills"`

	// PersonalValues is the ordered list of values the user declares.
	PersonalValues []string `json:"personal_values"`

	// Engagements is the ordered list of causes the user commits to.
	Engagements []string `json:"engagements"`

	// Badges lists the badge types the community has validated for
	// this user. The server owns this list; clients only read it.
	Badges []string `json:"badges"`

	// FollowersCount, FollowingCount and PostsCount are
	// server-computed counters.
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	PostsCount     int `json:"posts_count"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// IsActive reports whether the account is enabled.
	IsActive bool `json:"is_active"`

	// PasswordHash stores the hashed representation of the user's
	// password. This field is never exposed in API responses.
	PasswordHash string `json:"-"`
}

// HasSkill reports whether name is already in the user's skill set.
func (u User) HasSkill(name string) bool {
	for _, s := range u.SoftSkills {
		if s == name {
			return true
		}
	}
	return false
}

// UserUpdate is a partial profile update. Nil fields are left
// unchanged by the server.
type UserUpdate struct {
	FullName       *string   `json:"full_name,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	JobTitle       *string   `json:"job_title,omitempty"`
	Location       *string   `json:"location,omitempty"`
	SoftSkills     *[]string `json:"soft_skills,omitempty"`
	PersonalValues *[]string `json:"personal_values,omitempty"`
	Engagements    *[]string `json:"engagements,omitempty"`
}

// RegisterRequest carries the fields for account creation.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	JobTitle string `json:"job_title,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// LoginRequest carries the credential-exchange fields.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
