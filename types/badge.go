package types

import "time"

// BadgeType is the fixed taxonomy of peer-nominated badges.
type BadgeType string

const (
	BadgeEmpathy       BadgeType = "empathy"
	BadgeLeadership    BadgeType = "leadership"
	BadgeResilience    BadgeType = "resilience"
	BadgeCreativity    BadgeType = "creativity"
	BadgeCommunication BadgeType = "communication"
	BadgeCollaboration BadgeType = "collaboration"
	BadgeInnovation    BadgeType = "innovation"
)

// BadgeTypes lists every valid badge type.
var BadgeTypes = []BadgeType{
	BadgeEmpathy,
	BadgeLeadership,
	BadgeResilience,
	BadgeCreativity,
	BadgeCommunication,
	BadgeCollaboration,
	BadgeInnovation,
}

// Valid reports whether t is part of the badge taxonomy.
func (t BadgeType) Valid() bool {
	for _, known := range BadgeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// BadgeStatus is the server-owned validation state of a badge.
type BadgeStatus string

const (
	BadgePending   BadgeStatus = "pending"
	BadgeValidated BadgeStatus = "validated"
	BadgeRejected  BadgeStatus = "rejected"
)

// Badge is a community-validated skill badge. Status transitions and
// vote tallies are server-owned; clients display them and submit
// nominations and votes.
type Badge struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	BadgeType    BadgeType   `json:"badge_type"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Status       BadgeStatus `json:"status"`
	AwardedBy    string      `json:"awarded_by,omitempty"`
	EvidenceURL  string      `json:"evidence_url"`
	VotesFor     int         `json:"votes_for"`
	VotesAgainst int         `json:"votes_against"`
	Voters       []string    `json:"voters"`
	CreatedAt    time.Time   `json:"created_at"`
	ValidatedAt  *time.Time  `json:"validated_at,omitempty"`
}

// BadgeCreate carries the fields for nominating a badge.
type BadgeCreate struct {
	UserID      string    `json:"user_id"`
	BadgeType   BadgeType `json:"badge_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EvidenceURL string    `json:"evidence_url,omitempty"`
}
