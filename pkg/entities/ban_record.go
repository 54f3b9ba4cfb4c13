package entities

import "time"

// BanRecord marks a user as banned from creating tickets. It is checked before
// ticket creation and is independent of any ticket record.
type BanRecord struct {
	// UserID is the ID of the banned user.
	UserID string `json:"user_id" bson:"user_id"`

	// Username is the username of the banned user at the time of the ban.
	Username string `json:"username" bson:"username"`

	// Reason is the reason for the ban.
	Reason string `json:"reason" bson:"reason"`

	// Banned is whether the ban is currently active.
	Banned bool `json:"banned" bson:"banned"`

	// CreatedAt is the time that the record was first created.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// UpdatedAt is the time that the record was last updated.
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
