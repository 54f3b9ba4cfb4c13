package ticketing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/fenrir/pkg/entities"
	"github.com/Jacobbrewer1/fenrir/pkg/logging"
	"github.com/Jacobbrewer1/fenrir/pkg/messages"
)

// HandleInteraction is the single entry point of the ticketing core. Every
// inbound interaction is normalized, parsed into a typed event and dispatched.
// Nothing is returned synchronously; all outcomes are observed as side effects
// through the platform client.
func (s *Service) HandleInteraction(ctx context.Context, i *discordgo.InteractionCreate) {
	ev := normalizeEvent(i)
	if ev == nil {
		return
	}

	routed := parseIdentifier(ev)
	if routed == nil {
		// Unmatched identifiers are benign: components from other bots and
		// stale panels land here.
		s.l.Debug("Ignoring unrouted interaction", slog.String(logging.KeyIdentifier, ev.Identifier))
		return
	}

	r := newResponder(s.s, i)

	if err := s.dispatch(ctx, routed, ev, r); err != nil {
		s.l.Error("Error handling interaction",
			slog.String(logging.KeyIdentifier, ev.Identifier),
			slog.String(logging.KeyError, err.Error()),
		)

		// The response channel for an interaction is single-use. If it has
		// already been spent the error can only be logged.
		if r.Sent() {
			return
		}
		if notice := userNotice(err); notice != "" {
			if err := r.Ephemeral(notice); err != nil {
				s.l.Error("Error sending failure notice", slog.String(logging.KeyError, err.Error()))
			}
			return
		}
		if err := r.Ephemeral(messages.ErrUserErrorProcessing); err != nil {
			s.l.Error("Error sending failure notice", slog.String(logging.KeyError, err.Error()))
		}
	}
}

// userNotice degrades a known domain error to a short user-visible notice.
// Unknown errors return an empty string and fall back to the generic notice.
func userNotice(err error) string {
	var banned *BannedUserError

	switch {
	case errors.As(err, &banned):
		reason := banned.Reason
		if reason == "" {
			reason = "No reason"
		}
		return fmt.Sprintf("❌ You are banned from creating tickets.\nReason: %s", reason)
	case errors.Is(err, ErrAlreadyClaimed):
		return "❌ Ticket is already claimed."
	case errors.Is(err, ErrAlreadyPending):
		return "⚠ Close request already pending."
	case errors.Is(err, ErrAlreadyClosed):
		return "This ticket is already closed."
	case errors.Is(err, ErrChannelCreate):
		return messages.ErrUserChannelCreate
	case errors.Is(err, ErrPermissionDenied):
		return "You do not have permission to do that."
	case errors.Is(err, ErrTicketLimit):
		return "❌ You already have the maximum number of open tickets."
	case errors.Is(err, ErrRateLimited):
		return "❌ You are opening tickets too quickly. Please wait a moment."
	default:
		return ""
	}
}

// dispatch routes a typed event to its handler. The variant set is closed; a
// new identifier must be added here to be routed at all.
func (s *Service) dispatch(ctx context.Context, routed routedEvent, ev *Event, r *responder) error {
	switch t := routed.(type) {
	case openTicketEvent:
		return s.handleOpenTicket(r)
	case openCategoryEvent:
		return s.handleOpenCategory(ctx, t, r)
	case ticketModalEvent:
		return s.handleTicketModal(ctx, t, r)
	case closeTicketEvent:
		return s.handleCloseTicket(ctx, r)
	case confirmCloseEvent:
		return s.handleConfirmClose(ctx, r)
	case cancelCloseEvent:
		return s.handleCancelClose(r)
	case claimTicketEvent:
		return s.handleClaimTicket(ctx, r)
	case setupSelectChannelEvent:
		return s.handleSelectChannel(ev, r)
	case setupAddCategoryEvent:
		return s.handleAddCategory(t, r)
	case setupCategoryModalEvent:
		return s.handleCategoryModal(ctx, t, r)
	case setupFinishEvent:
		return s.handleFinish(t, r)
	case commandEvent:
		return s.handleCommand(ctx, t, r)
	default:
		return fmt.Errorf("unhandled routed event %T", routed)
	}
}

// handleOpenTicket presents the default intake form.
func (s *Service) handleOpenTicket(r *responder) error {
	return r.Modal(ticketFormID(nil), "Create Ticket", buildTicketForm(nil))
}

// handleOpenCategory presents the intake form of a category. An absent
// category degrades to the default form rather than failing the press.
func (s *Service) handleOpenCategory(ctx context.Context, ev openCategoryEvent, r *responder) error {
	category, err := s.categories.GetCategory(ctx, ev.CategoryID)
	if err != nil {
		return fmt.Errorf("error getting category: %w", err)
	}
	return r.Modal(ticketFormID(category), "Create Ticket", buildTicketForm(category))
}

// handleTicketModal creates a ticket from a submitted intake form.
func (s *Service) handleTicketModal(ctx context.Context, ev ticketModalEvent, r *responder) error {
	i := r.i
	actor := interactionUser(i)

	var category *entities.TicketCategory
	if ev.CategoryID != "" {
		var err error
		category, err = s.categories.GetCategory(ctx, ev.CategoryID)
		if err != nil {
			return fmt.Errorf("error getting category: %w", err)
		}
	}

	description := extractDescription(i.ModalSubmitData())

	ticket, err := s.createTicket(ctx, i.GuildID, actor, category, description)
	if err != nil {
		return err
	}

	return r.Ephemeral(fmt.Sprintf("✅ Ticket created: <#%s>", ticket.ChannelID))
}

// handleCloseTicket force-closes for staff; for anyone else it presents the
// close confirmation prompt. The close request itself is advisory and not
// persisted, so the prompt can simply be re-presented.
func (s *Service) handleCloseTicket(ctx context.Context, r *responder) error {
	i := r.i

	ticket, err := s.tickets.GetTicketByChannel(ctx, i.GuildID, i.ChannelID)
	if err != nil {
		return fmt.Errorf("error getting ticket: %w", err)
	}
	if ticket == nil {
		// Not a ticket channel; a stale button is not worth a notice.
		return nil
	}

	cfg, err := s.guilds.GetGuildConfig(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}

	supportRole := ""
	if cfg != nil {
		supportRole = cfg.SupportRoleID
	}

	if isStaff(i.Member, supportRole) {
		// Validate before acknowledging; the response is single-use and a
		// failure after it is spent can only be logged.
		if ticket.IsClosed() {
			return ErrAlreadyClosed
		}
		if err := r.Ephemeral(messages.UserTicketClosing); err != nil {
			return err
		}
		return s.closeTicket(ctx, ticket, cfg, interactionUser(i))
	}

	if ticket.IsClosed() {
		return ErrAlreadyClosed
	}
	if ticket.Status == entities.TicketStatusRequestClose {
		return ErrAlreadyPending
	}

	return r.Message("❓ Are you sure you want to close this ticket?", []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Yes, Close",
					Style:    discordgo.DangerButton,
					CustomID: ConfirmCloseID,
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: CancelCloseID,
				},
			},
		},
	})
}

// handleConfirmClose closes the ticket once the confirmation button is
// pressed. Confirmation is bound to the ticket opener or staff; anyone else in
// the channel cannot action the prompt.
func (s *Service) handleConfirmClose(ctx context.Context, r *responder) error {
	i := r.i

	ticket, err := s.tickets.GetTicketByChannel(ctx, i.GuildID, i.ChannelID)
	if err != nil {
		return fmt.Errorf("error getting ticket: %w", err)
	}
	if ticket == nil {
		return nil
	}

	cfg, err := s.guilds.GetGuildConfig(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}

	actor := interactionUser(i)
	supportRole := ""
	if cfg != nil {
		supportRole = cfg.SupportRoleID
	}
	if actor.ID != ticket.OpenerID && !isStaff(i.Member, supportRole) {
		return ErrPermissionDenied
	}

	if err := r.Ephemeral(messages.UserTicketClosing); err != nil {
		return err
	}
	return s.closeTicket(ctx, ticket, cfg, actor)
}

// handleCancelClose dismisses the confirmation prompt. No status changes.
func (s *Service) handleCancelClose(r *responder) error {
	return r.Update("Close request cancelled.", nil)
}

// handleClaimTicket claims the ticket of the current channel for the actor and
// announces the claim.
func (s *Service) handleClaimTicket(ctx context.Context, r *responder) error {
	i := r.i

	ticket, err := s.tickets.GetTicketByChannel(ctx, i.GuildID, i.ChannelID)
	if err != nil {
		return fmt.Errorf("error getting ticket: %w", err)
	}
	if ticket == nil {
		return nil
	}

	actor := interactionUser(i)
	if err := s.claimTicket(ctx, ticket, actor); err != nil {
		return err
	}

	return r.Embed(&discordgo.MessageEmbed{
		Description: fmt.Sprintf("✅ Ticket claimed by %s", actor.Mention()),
		Color:       claimedEmbedColour,
	})
}
