package ticketing

import (
	"context"
	"fmt"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/fenrir/pkg/entities"
	"github.com/Jacobbrewer1/fenrir/pkg/messages"
)

// handleCommand routes a slash command invocation.
func (s *Service) handleCommand(ctx context.Context, ev commandEvent, r *responder) error {
	switch ev.Name {
	case SetupTicketCmdName:
		return s.handleSetupTicket(r)
	case SetupPanelCmdName:
		return s.handleSetupPanel(r)
	case AddUserCmdName:
		return s.handleAddUser(ctx, r)
	case RemoveUserCmdName:
		return s.handleRemoveUser(ctx, r)
	case BanUserCmdName:
		return s.handleBanUser(ctx, r)
	case UnbanUserCmdName:
		return s.handleUnbanUser(ctx, r)
	default:
		return fmt.Errorf("unhandled command %s", ev.Name)
	}
}

// handleSetupTicket sends the single-button ticket panel to the current
// channel.
func (s *Service) handleSetupTicket(r *responder) error {
	if !isAdmin(r.i.Member) {
		return r.Ephemeral(messages.ErrUserNotAdmin)
	}

	if err := r.Ephemeral("✅ Panel sent!"); err != nil {
		return err
	}

	if _, err := s.s.ChannelMessageSendComplex(r.i.ChannelID, simplePanelMessage()); err != nil {
		return fmt.Errorf("error sending panel: %w", err)
	}
	return nil
}

// handleSetupPanel starts the setup wizard.
func (s *Service) handleSetupPanel(r *responder) error {
	if !isAdmin(r.i.Member) {
		return r.Ephemeral(messages.ErrUserNotAdmin)
	}
	return s.startWizard(r.i.GuildID, r)
}

// openTicketInChannel resolves the open ticket of the current channel,
// responding with a notice when there is none.
func (s *Service) openTicketInChannel(ctx context.Context, r *responder) (*entities.Ticket, error) {
	ticket, err := s.tickets.GetTicketByChannel(ctx, r.i.GuildID, r.i.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}
	if ticket == nil || ticket.IsClosed() {
		return nil, r.Ephemeral(messages.ErrUserNotTicketChannel)
	}
	return ticket, nil
}

// handleAddUser grants a user access to the current ticket channel.
func (s *Service) handleAddUser(ctx context.Context, r *responder) error {
	ticket, err := s.openTicketInChannel(ctx, r)
	if err != nil || ticket == nil {
		return err
	}

	user := commandUserOption(r.i)
	if user == nil {
		return fmt.Errorf("add-user invoked without a user option")
	}

	if err := s.s.ChannelPermissionSet(ticket.ChannelID, user.ID, discordgo.PermissionOverwriteTypeMember,
		discordgo.PermissionViewChannel|discordgo.PermissionSendMessages|discordgo.PermissionReadMessageHistory, 0); err != nil {
		return fmt.Errorf("error granting channel access: %w", err)
	}

	return r.Message(fmt.Sprintf("✅ Added %s to the ticket.", user.Mention()), nil)
}

// handleRemoveUser revokes a user's access to the current ticket channel.
func (s *Service) handleRemoveUser(ctx context.Context, r *responder) error {
	ticket, err := s.openTicketInChannel(ctx, r)
	if err != nil || ticket == nil {
		return err
	}

	user := commandUserOption(r.i)
	if user == nil {
		return fmt.Errorf("remove-user invoked without a user option")
	}

	if err := s.s.ChannelPermissionDelete(ticket.ChannelID, user.ID); err != nil {
		return fmt.Errorf("error revoking channel access: %w", err)
	}

	return r.Message(fmt.Sprintf("✅ Removed %s from the ticket.", user.Mention()), nil)
}

// handleBanUser bans a user from creating tickets.
func (s *Service) handleBanUser(ctx context.Context, r *responder) error {
	if !isAdmin(r.i.Member) {
		return r.Ephemeral(messages.ErrUserNotAdmin)
	}

	user := commandUserOption(r.i)
	if user == nil {
		return fmt.Errorf("ban-user invoked without a user option")
	}
	reason := commandStringOption(r.i, "reason")
	if reason == "" {
		reason = "No reason provided"
	}

	now := time.Now().UTC()
	record, err := s.bans.GetBanRecord(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("error getting ban record: %w", err)
	}
	if record == nil {
		record = &entities.BanRecord{
			UserID:    user.ID,
			Username:  user.Username,
			CreatedAt: now,
		}
	}
	record.Banned = true
	record.Reason = reason
	record.UpdatedAt = now

	if err := s.bans.UpsertBanRecord(ctx, record); err != nil {
		return fmt.Errorf("error saving ban record: %w", err)
	}

	return r.Ephemeral(fmt.Sprintf("🚫 Banned %s from using tickets.\nReason: %s", user.Mention(), reason))
}

// handleUnbanUser lifts a user's ticket ban.
func (s *Service) handleUnbanUser(ctx context.Context, r *responder) error {
	if !isAdmin(r.i.Member) {
		return r.Ephemeral(messages.ErrUserNotAdmin)
	}

	user := commandUserOption(r.i)
	if user == nil {
		return fmt.Errorf("unban-user invoked without a user option")
	}

	record, err := s.bans.GetBanRecord(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("error getting ban record: %w", err)
	}
	if record != nil && record.Banned {
		record.Banned = false
		record.Reason = ""
		record.UpdatedAt = time.Now().UTC()
		if err := s.bans.UpsertBanRecord(ctx, record); err != nil {
			return fmt.Errorf("error saving ban record: %w", err)
		}
	}

	return r.Ephemeral(fmt.Sprintf("✅ Unbanned %s.", user.Mention()))
}

// commandUserOption extracts the first user option of a command invocation.
func commandUserOption(i *discordgo.InteractionCreate) *discordgo.User {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Type == discordgo.ApplicationCommandOptionUser {
			// A nil session resolves to a partial user carrying just the ID,
			// which is all the permission edits and ban records need.
			return opt.UserValue(nil)
		}
	}
	return nil
}

// commandStringOption extracts a named string option of a command invocation.
func commandStringOption(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}
