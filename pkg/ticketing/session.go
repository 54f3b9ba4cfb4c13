package ticketing

import (
	"github.com/Jacobbrewer1/discordgo"
)

// Session is the platform client capability the ticketing core is constructed
// with. *discordgo.Session satisfies it; tests substitute a fake.
type Session interface {
	// ChannelMessageSendComplex sends a message to a channel.
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)

	// ChannelMessages fetches up to limit recent messages of a channel.
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)

	// GuildChannelCreateComplex creates a channel with permission grants.
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	// ChannelDelete deletes a channel.
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	// ChannelPermissionSet edits a channel permission grant for a principal.
	ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64, options ...discordgo.RequestOption) error

	// ChannelPermissionDelete removes a channel permission grant for a principal.
	ChannelPermissionDelete(channelID, targetID string, options ...discordgo.RequestOption) error

	// GuildChannels returns the channels of a guild.
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)

	// InteractionRespond acknowledges, updates or replies to an interaction.
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}
