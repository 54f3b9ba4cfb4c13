package messages

const (
	// ErrUserErrorProcessing is the generic failure notice shown to users when an
	// interaction could not be processed.
	ErrUserErrorProcessing = "❌ An error occurred whilst processing, please try again later."

	// ErrUserNotAdmin is shown when a non-administrator invokes an admin command.
	ErrUserNotAdmin = "You must be an administrator to use this command"

	// ErrUserChannelCreate is shown when the ticket channel could not be created.
	ErrUserChannelCreate = "❌ Failed to create ticket channel. Please contact an admin."

	// ErrUserNotTicketChannel is shown when a ticket command is used outside an open ticket.
	ErrUserNotTicketChannel = "❌ This is not an open ticket channel."

	// UserTicketClosing is the acknowledgment sent before a ticket channel is removed.
	UserTicketClosing = "🔒 Closing ticket..."
)
