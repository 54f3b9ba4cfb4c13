package entities

// GuildConfig is the per-guild ticketing configuration. It is created lazily on
// first write; a guild without one uses the zero-value behaviour throughout.
type GuildConfig struct {
	// ID is the ID of the guild.
	ID string `json:"id" bson:"id"`

	// ParentChannelID is the ID of the channel category that new ticket channels
	// are created under.
	ParentChannelID string `json:"parent_channel_id" bson:"parent_channel_id"`

	// SupportRoleID is the ID of the role that handles tickets.
	SupportRoleID string `json:"support_role_id" bson:"support_role_id"`

	// TranscriptChannelID is the ID of the channel that closure summaries and
	// transcripts are posted to.
	TranscriptChannelID string `json:"transcript_channel_id" bson:"transcript_channel_id"`

	// WelcomeMessage is appended to the intro message of new tickets.
	WelcomeMessage string `json:"welcome_message" bson:"welcome_message"`

	// MaxTicketsPerUser caps the number of tickets a user can have open at once.
	// Zero means no cap.
	MaxTicketsPerUser int `json:"max_tickets_per_user" bson:"max_tickets_per_user"`

	// AutoCloseSeconds is the inactivity timeout after which a ticket is eligible
	// for automatic closure. Zero disables auto closing.
	AutoCloseSeconds int `json:"auto_close_seconds" bson:"auto_close_seconds"`

	// FullTranscripts controls transcript capture: when set the complete channel
	// history is paginated, otherwise only the most recent window is captured.
	FullTranscripts bool `json:"full_transcripts" bson:"full_transcripts"`
}
