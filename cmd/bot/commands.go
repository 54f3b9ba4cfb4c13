package main

import (
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/fenrir/cmd/bot/config"
	"github.com/Jacobbrewer1/fenrir/pkg/ticketing"
)

// slashCommands are the application commands registered in every guild.
var slashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        ticketing.SetupTicketCmdName,
		Description: "Send the simple ticket panel to this channel",
	},
	{
		Name:        ticketing.SetupPanelCmdName,
		Description: "Start the interactive ticket panel setup wizard",
	},
	{
		Name:        ticketing.AddUserCmdName,
		Description: "Add a user to the current ticket",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to add",
				Required:    true,
			},
		},
	},
	{
		Name:        ticketing.RemoveUserCmdName,
		Description: "Remove a user from the current ticket",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to remove",
				Required:    true,
			},
		},
	},
	{
		Name:        ticketing.BanUserCmdName,
		Description: "Ban a user from creating tickets",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to ban",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "The reason for the ban",
				Required:    false,
			},
		},
	},
	{
		Name:        ticketing.UnbanUserCmdName,
		Description: "Unban a user from creating tickets",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to unban",
				Required:    true,
			},
		},
	},
}

func (a *App) registerSlashCommands() error {
	// Get all guilds the bot is in.
	guilds, err := a.GetJoinedGuilds()
	if err != nil {
		return fmt.Errorf("error getting guilds: %w", err)
	}

	// Register slash commands for each guild, keeping the created commands so
	// shutdown can remove them by ID.
	for _, g := range guilds {
		for _, cmd := range slashCommands {
			created, err := a.Session().ApplicationCommandCreate(config.ApplicationId, g.ID, cmd)
			if err != nil {
				return fmt.Errorf("error creating %s command for guild %s: %w", cmd.Name, g.ID, err)
			}

			a.registeredMtx.Lock()
			a.registered[g.ID] = append(a.registered[g.ID], created)
			a.registeredMtx.Unlock()
		}
	}
	return nil
}

func (a *App) unregisterSlashCommands() error {
	a.registeredMtx.Lock()
	defer a.registeredMtx.Unlock()

	for guildID, cmds := range a.registered {
		for _, cmd := range cmds {
			if err := a.s.ApplicationCommandDelete(config.ApplicationId, guildID, cmd.ID); err != nil {
				return fmt.Errorf("error deleting %s command for guild %s: %w", cmd.Name, guildID, err)
			}
		}
		delete(a.registered, guildID)
	}
	return nil
}
