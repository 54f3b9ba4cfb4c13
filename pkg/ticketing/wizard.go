package ticketing

import (
	"context"
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/fenrir/pkg/entities"
)

const (
	// maxSelectOptions is the platform limit on select menu options.
	maxSelectOptions = 25

	// maxPanelRows and maxPanelRowButtons bound the rendered panel at 5 rows of
	// 5 buttons. Categories beyond the cap stay persisted but are omitted from
	// the panel; this is a display cap, not a data cap.
	maxPanelRows       = 5
	maxPanelRowButtons = 5

	// defaultCategoryEmoji is used when a category declares no emoji.
	defaultCategoryEmoji = TicketEmoji

	// maxButtonLabelLength is the platform limit on button labels.
	maxButtonLabelLength = 80
)

// startWizard is step one of the setup wizard: the administrator picks the
// destination text channel from up to 25 options. Everything a later step
// needs is carried in the component identifiers, never in server-held session
// state.
func (s *Service) startWizard(guildID string, r *responder) error {
	channels, err := s.s.GuildChannels(guildID)
	if err != nil {
		return fmt.Errorf("error getting guild channels: %w", err)
	}

	options := make([]discordgo.SelectMenuOption, 0, maxSelectOptions)
	for _, c := range channels {
		if c.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		options = append(options, discordgo.SelectMenuOption{
			Label: "#" + c.Name,
			Value: c.ID,
		})
		if len(options) == maxSelectOptions {
			break
		}
	}

	return r.EphemeralComponents("Step 1: Where should the ticket panel be sent?", []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    SetupSelectChannelID,
					Placeholder: "Select a channel for the panel",
					Options:     options,
				},
			},
		},
	})
}

// handleSelectChannel records the chosen destination by embedding it in the
// next step's button identifiers.
func (s *Service) handleSelectChannel(ev *Event, r *responder) error {
	values := ev.Interaction.MessageComponentData().Values
	if len(values) == 0 {
		return fmt.Errorf("channel selection carried no values")
	}
	channelID := values[0]

	content := fmt.Sprintf("✅ Channel selected: <#%s>\n\nClick **Add Category** to create a button on the panel (e.g. Support, Billing).\nWhen you are done adding categories, click **Finish Setup**.", channelID)
	return r.Update(content, []discordgo.MessageComponent{wizardButtons(channelID, "Add Category")})
}

// wizardButtons is the add/finish prompt row, with the destination channel
// carried in each identifier.
func wizardButtons(channelID, addLabel string) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    addLabel,
				Style:    discordgo.SuccessButton,
				CustomID: setupAddCategoryPrefix + channelID,
			},
			discordgo.Button{
				Label:    "Finish Setup",
				Style:    discordgo.SecondaryButton,
				CustomID: setupFinishPrefix + channelID,
			},
		},
	}
}

// handleAddCategory presents the category creation form, forwarding the
// destination channel through the form identifier.
func (s *Service) handleAddCategory(ev setupAddCategoryEvent, r *responder) error {
	return r.Modal(setupCategoryModalPrefix+ev.ChannelID, "New Ticket Category", []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID: categoryNameFieldID,
					Label:    "Category Name (e.g. Support)",
					Style:    discordgo.TextInputShort,
					Required: true,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID: categoryEmojiFieldID,
					Label:    "Emoji (e.g. \U0001F4E9)",
					Style:    discordgo.TextInputShort,
					Required: false,
				},
			},
		},
	})
}

// handleCategoryModal creates the submitted category and re-renders the
// complete panel in the destination channel. Category creation is not
// deduplicated by name; repeated identical submissions create distinct rows.
func (s *Service) handleCategoryModal(ctx context.Context, ev setupCategoryModalEvent, r *responder) error {
	i := r.i
	data := i.ModalSubmitData()

	name := formValue(data, categoryNameFieldID)
	emoji := formValue(data, categoryEmojiFieldID)
	if emoji == "" {
		emoji = defaultCategoryEmoji
	}

	// The guild configuration is created lazily on first write.
	cfg, err := s.guilds.GetGuildConfig(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error getting guild config: %w", err)
	}
	if cfg == nil {
		cfg = &entities.GuildConfig{
			ID: i.GuildID,
		}
		if err := s.guilds.UpsertGuildConfig(ctx, cfg); err != nil {
			return fmt.Errorf("error creating guild config: %w", err)
		}
	}

	if err := s.categories.CreateCategory(ctx, &entities.TicketCategory{
		ConfigID: cfg.ID,
		Name:     name,
		Emoji:    emoji,
	}); err != nil {
		return fmt.Errorf("error creating category: %w", err)
	}

	categories, err := s.categories.ListCategories(ctx, cfg.ID)
	if err != nil {
		return fmt.Errorf("error listing categories: %w", err)
	}

	if _, err := s.s.ChannelMessageSendComplex(ev.ChannelID, categoryPanelMessage(categories)); err != nil {
		return fmt.Errorf("error sending panel: %w", err)
	}

	content := fmt.Sprintf("✅ Added category **%s**!\nDo you want to add another one?", name)
	return r.EphemeralComponents(content, []discordgo.MessageComponent{wizardButtons(ev.ChannelID, "Add Another Category")})
}

// handleFinish replaces the wizard prompt with a terminal, component-free
// confirmation.
func (s *Service) handleFinish(ev setupFinishEvent, r *responder) error {
	content := fmt.Sprintf("🎉 **Setup Complete!**\nThe ticket panel has been sent to <#%s>.\nYou can now dismiss this message.", ev.ChannelID)
	return r.Update(content, nil)
}

// categoryPanelMessage renders the complete category panel: one button per
// category, up to 5 rows of 5 buttons.
func categoryPanelMessage(categories []*entities.TicketCategory) *discordgo.MessageSend {
	rows := make([]discordgo.MessageComponent, 0, maxPanelRows)
	row := discordgo.ActionsRow{}

	for _, cat := range categories {
		if len(rows) == maxPanelRows {
			break
		}

		label := cat.Name
		// Truncate on rune boundaries; a byte slice could split a multibyte
		// character and produce an invalid label.
		if runes := []rune(label); len(runes) > maxButtonLabelLength {
			label = string(runes[:maxButtonLabelLength])
		}
		emoji := cat.Emoji
		if emoji == "" {
			emoji = defaultCategoryEmoji
		}

		row.Components = append(row.Components, discordgo.Button{
			Label:    label,
			Style:    discordgo.PrimaryButton,
			Emoji:    discordgo.ComponentEmoji{Name: emoji},
			CustomID: openCategoryPrefix + cat.ID,
		})

		if len(row.Components) == maxPanelRowButtons {
			rows = append(rows, row)
			row = discordgo.ActionsRow{}
		}
	}
	if len(row.Components) > 0 && len(rows) < maxPanelRows {
		rows = append(rows, row)
	}

	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "🎫 Support Tickets",
				Description: "Select a category below to open a ticket.",
				Color:       embedColour,
			},
		},
		Components: rows,
	}
}

// simplePanelMessage is the single-button panel sent by the setup-ticket
// command.
func simplePanelMessage() *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "🎫 Support Tickets",
				Description: "Click the button below to open a support ticket.\n\nOur team will assist you as soon as possible.",
				Color:       embedColour,
			},
		},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Open Ticket",
						Style:    discordgo.PrimaryButton,
						Emoji:    discordgo.ComponentEmoji{Name: TicketEmoji},
						CustomID: OpenTicketID,
					},
				},
			},
		},
	}
}
