package entities

import (
	"strings"
	"time"
)

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	// TicketStatusOpen is an open ticket with a live channel.
	TicketStatusOpen TicketStatus = "OPEN"

	// TicketStatusRequestClose is a ticket with a pending close request.
	TicketStatusRequestClose TicketStatus = "REQUEST_CLOSE"

	// TicketStatusClosed is a closed ticket. This is terminal.
	TicketStatusClosed TicketStatus = "CLOSED"
)

// MaxChannelNameLength is the length bound applied to derived ticket channel
// names to satisfy the discord naming limit.
const MaxChannelNameLength = 25

// Ticket is a single support request and its associated channel.
type Ticket struct {
	// ID is the ID of the ticket.
	ID string `json:"id" bson:"id"`

	// ChannelID is the ID of the channel that the ticket is in. This is unique
	// amongst tickets that are not closed.
	ChannelID string `json:"channel_id" bson:"channel_id"`

	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id" bson:"guild_id"`

	// OpenerID is the ID of the user that opened the ticket.
	OpenerID string `json:"opener_id" bson:"opener_id"`

	// OpenerName is the username of the user that opened the ticket.
	OpenerName string `json:"opener_name" bson:"opener_name"`

	// Status is the lifecycle state of the ticket.
	Status TicketStatus `json:"status" bson:"status"`

	// ClaimedBy is the ID of the staff member that claimed the ticket. It is set
	// at most once and is immutable thereafter.
	ClaimedBy string `json:"claimed_by" bson:"claimed_by"`

	// Category is the label of the category that the ticket was opened under.
	Category string `json:"category" bson:"category"`

	// Transcript is the captured channel history, set at close time.
	Transcript string `json:"transcript,omitempty" bson:"transcript,omitempty"`

	// ClosedBy is the ID of the user that closed the ticket.
	ClosedBy string `json:"closed_by,omitempty" bson:"closed_by,omitempty"`

	// ClosedAt is the time that the ticket was closed.
	ClosedAt *time.Time `json:"closed_at,omitempty" bson:"closed_at,omitempty"`

	// CreatedAt is the time that the ticket was created.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// IsClosed reports whether the ticket has reached its terminal state.
func (t *Ticket) IsClosed() bool {
	return t.Status == TicketStatusClosed
}

// ChannelName derives the name for a ticket channel from the category label and
// the opener's username. The category is lower-cased, non-alphanumeric
// characters are stripped from the username and the result is truncated to
// MaxChannelNameLength.
func ChannelName(category, username string) string {
	stripped := strings.Builder{}
	for _, r := range username {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			stripped.WriteRune(r)
		}
	}

	name := strings.ToLower(category) + "-" + stripped.String()
	if len(name) > MaxChannelNameLength {
		name = name[:MaxChannelNameLength]
	}
	return name
}
