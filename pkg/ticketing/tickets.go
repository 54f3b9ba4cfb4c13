package ticketing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/fenrir/pkg/dataaccess"
	"github.com/Jacobbrewer1/fenrir/pkg/entities"
	"github.com/Jacobbrewer1/fenrir/pkg/logging"
)

const (
	// CloseEmoji is the emoji on the close button. (Padlock)
	CloseEmoji = "\U0001F512"

	// ClaimEmoji is the emoji on the claim button. (Raising hand)
	ClaimEmoji = "\U0001F64B"

	// TicketEmoji is the emoji on open ticket buttons. (Envelope with arrow)
	TicketEmoji = "\U0001F4E9"

	// embedColour is the colour of ticket embeds.
	embedColour = 0x2b2d31

	// closedEmbedColour is the colour of closure summary embeds.
	closedEmbedColour = 0xff0000

	// claimedEmbedColour is the colour of claim announcements.
	claimedEmbedColour = 0x00ff00
)

// defaultCategoryLabel labels tickets opened without a category.
const defaultCategoryLabel = "ticket"

// createTicket runs the full ticket creation flow for an opener: ban check
// before any side effect, per-user cap, rate limit, private channel creation,
// then the ticket row and the intro message. The ticket row is only persisted
// once the channel is confirmed created, so a channel failure cannot leave an
// orphan row.
func (s *Service) createTicket(ctx context.Context, guildID string, opener *discordgo.User, category *entities.TicketCategory, description string) (*entities.Ticket, error) {
	// The ban check happens before any side effect.
	ban, err := s.bans.GetBanRecord(ctx, opener.ID)
	if err != nil {
		return nil, fmt.Errorf("error getting ban record: %w", err)
	}
	if ban != nil && ban.Banned {
		return nil, &BannedUserError{Reason: ban.Reason}
	}

	cfg, err := s.guilds.GetGuildConfig(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("error getting guild config: %w", err)
	}

	if cfg != nil && cfg.MaxTicketsPerUser > 0 {
		open, err := s.tickets.CountOpenTickets(ctx, guildID, opener.ID)
		if err != nil {
			return nil, fmt.Errorf("error counting open tickets: %w", err)
		}
		if open >= int64(cfg.MaxTicketsPerUser) {
			return nil, ErrTicketLimit
		}
	}

	if !s.limiterFor(opener.ID).Allow() {
		return nil, ErrRateLimited
	}

	label := defaultCategoryLabel
	parentID := ""
	if cfg != nil {
		parentID = cfg.ParentChannelID
	}
	if category != nil {
		label = strings.ToLower(category.Name)
		if category.DiscordCategoryID != "" {
			parentID = category.DiscordCategoryID
		}
	}

	overwrites := []*discordgo.PermissionOverwrite{
		// Deny @everyone from seeing the ticket.
		{
			ID:   guildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		// The opener of the ticket can see the ticket.
		{
			ID:    opener.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionAttachFiles,
		},
		// The bot must keep access so the intro post, transcript fetch and
		// channel deletion work without guild-wide admin.
		{
			ID:    s.botID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionManageChannels,
		},
	}
	if cfg != nil && cfg.SupportRoleID != "" {
		// Add the support role.
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    cfg.SupportRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionAttachFiles,
		})
	}

	channel, err := s.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 entities.ChannelName(label, opener.Username),
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("Ticket created by %s", opener.Username),
		ParentID:             parentID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChannelCreate, err)
	}

	ticket := &entities.Ticket{
		ChannelID:  channel.ID,
		GuildID:    guildID,
		OpenerID:   opener.ID,
		OpenerName: opener.Username,
		Status:     entities.TicketStatusOpen,
		Category:   label,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.tickets.CreateTicket(ctx, ticket); err != nil {
		// The row never existed; remove the channel so nothing is orphaned.
		if _, derr := s.s.ChannelDelete(channel.ID); derr != nil {
			s.l.Warn("Error deleting channel after failed ticket save",
				slog.String(logging.KeyChannel, channel.ID),
				slog.String(logging.KeyError, derr.Error()),
			)
		}
		return nil, fmt.Errorf("error saving ticket: %w", err)
	}

	welcome := ""
	if cfg != nil {
		welcome = cfg.WelcomeMessage
	}
	if _, err := s.s.ChannelMessageSendComplex(channel.ID, introMessage(ticket, opener, description, welcome)); err != nil {
		// The ticket exists and is usable; the missing intro only loses the
		// close/claim buttons.
		s.l.Error("Error sending ticket intro message",
			slog.String(logging.KeyTicket, ticket.ID),
			slog.String(logging.KeyError, err.Error()),
		)
	}

	return ticket, nil
}

// introMessage is the first message of a new ticket channel, carrying the
// close and claim actions.
func introMessage(ticket *entities.Ticket, opener *discordgo.User, description, welcome string) *discordgo.MessageSend {
	desc := fmt.Sprintf("**Category:** %s\n**Details:**\n%s\n\nSupport will be with you shortly.", ticket.Category, description)
	if welcome != "" {
		desc += "\n\n" + welcome
	}

	return &discordgo.MessageSend{
		Content: opener.Mention(),
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       fmt.Sprintf("Ticket: %s", opener.Username),
				Description: desc,
				Color:       embedColour,
				Timestamp:   ticket.CreatedAt.Format(time.RFC3339),
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Close",
						Style:    discordgo.DangerButton,
						Emoji:    discordgo.ComponentEmoji{Name: CloseEmoji},
						CustomID: CloseTicketID,
					},
					discordgo.Button{
						Label:    "Claim",
						Style:    discordgo.SecondaryButton,
						Emoji:    discordgo.ComponentEmoji{Name: ClaimEmoji},
						CustomID: ClaimTicketID,
					},
				},
			},
		},
	}
}

// claimTicket sets the ticket's claimant to the actor. The update is a
// conditional set at the store, so exactly one of any concurrent claimants
// succeeds; the rest receive ErrAlreadyClaimed.
func (s *Service) claimTicket(ctx context.Context, ticket *entities.Ticket, actor *discordgo.User) error {
	applied, err := s.tickets.ConditionalSetClaimant(ctx, ticket.ID, actor.ID)
	if err != nil {
		return fmt.Errorf("error claiming ticket: %w", err)
	}
	if !applied {
		return ErrAlreadyClaimed
	}
	return nil
}

// closeTicket closes a ticket: captures the transcript, atomically marks the
// ticket closed, posts the closure summary to the log channel best-effort, and
// schedules the channel deletion after a grace delay. Closing an already
// closed ticket returns ErrAlreadyClosed without side effects, and never
// overwrites the existing transcript.
func (s *Service) closeTicket(ctx context.Context, ticket *entities.Ticket, cfg *entities.GuildConfig, closer *discordgo.User) error {
	if ticket.IsClosed() {
		return ErrAlreadyClosed
	}

	// Transcript failures never block the close.
	transcript, err := s.captureTranscript(ticket, cfg)
	if err != nil {
		s.l.Error("Error capturing transcript",
			slog.String(logging.KeyTicket, ticket.ID),
			slog.String(logging.KeyError, err.Error()),
		)
	}

	closedAt := time.Now().UTC()
	applied, err := s.tickets.ConditionalUpdateStatus(ctx, ticket.ID,
		[]entities.TicketStatus{entities.TicketStatusOpen, entities.TicketStatusRequestClose},
		entities.TicketStatusClosed,
		&dataaccess.CloseFields{
			ClosedBy:   closer.ID,
			ClosedAt:   &closedAt,
			Transcript: transcript,
		},
	)
	if err != nil {
		return fmt.Errorf("error closing ticket: %w", err)
	}
	if !applied {
		// A concurrent close won; their transcript stands.
		return ErrAlreadyClosed
	}

	ticket.Status = entities.TicketStatusClosed
	ticket.ClosedBy = closer.ID
	ticket.ClosedAt = &closedAt
	ticket.Transcript = transcript

	s.deliverTranscript(ticket, cfg, closer)
	s.scheduleChannelDelete(ticket.ChannelID)

	return nil
}

// scheduleChannelDelete removes the ticket channel after the grace delay, so
// the closure acknowledgment is visible before the channel disappears. This is
// fire and forget; deletion failures are logged and not retried.
func (s *Service) scheduleChannelDelete(channelID string) {
	time.AfterFunc(s.deleteGrace, func() {
		if _, err := s.s.ChannelDelete(channelID); err != nil {
			s.l.Warn("Error deleting closed ticket channel",
				slog.String(logging.KeyChannel, channelID),
				slog.String(logging.KeyError, err.Error()),
			)
		}
	})
}
