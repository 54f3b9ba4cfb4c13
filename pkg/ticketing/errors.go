package ticketing

import (
	"errors"
	"fmt"
)

var (
	// ErrBannedUser is returned when a banned user attempts to open a ticket.
	ErrBannedUser = errors.New("user is banned from creating tickets")

	// ErrAlreadyClaimed is returned when a ticket already has a claimant.
	ErrAlreadyClaimed = errors.New("ticket is already claimed")

	// ErrAlreadyPending is returned when a close request is already pending.
	ErrAlreadyPending = errors.New("close request already pending")

	// ErrAlreadyClosed is returned when closing a ticket that is already closed.
	ErrAlreadyClosed = errors.New("ticket is already closed")

	// ErrChannelCreate is returned when the ticket channel could not be created.
	// No ticket row exists when this is returned.
	ErrChannelCreate = errors.New("failed to create ticket channel")

	// ErrTranscript is returned when channel history could not be captured. It
	// never blocks or reverts a close.
	ErrTranscript = errors.New("failed to capture transcript")

	// ErrPermissionDenied is returned when an actor attempts an action they are
	// not permitted to perform.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTicketLimit is returned when the opener is at the per-user open ticket
	// cap.
	ErrTicketLimit = errors.New("open ticket limit reached")

	// ErrRateLimited is returned when the opener is creating tickets too quickly.
	ErrRateLimited = errors.New("ticket creation rate limited")
)

// BannedUserError carries the ban reason alongside ErrBannedUser so callers can
// surface it to the user.
type BannedUserError struct {
	// Reason is the reason for the ban.
	Reason string
}

func (e *BannedUserError) Error() string {
	if e.Reason == "" {
		return ErrBannedUser.Error()
	}
	return fmt.Sprintf("%s: %s", ErrBannedUser.Error(), e.Reason)
}

func (e *BannedUserError) Is(target error) bool {
	return target == ErrBannedUser
}
