package ticketing

import (
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
)

// responder wraps the single-use response channel of one interaction. The
// router uses Sent to decide whether a failure notice can still be issued once
// a delegate errors.
type responder struct {
	s    Session
	i    *discordgo.InteractionCreate
	sent bool
}

func newResponder(s Session, i *discordgo.InteractionCreate) *responder {
	return &responder{
		s: s,
		i: i,
	}
}

// Sent reports whether a response has been sent for this interaction.
func (r *responder) Sent() bool {
	return r.sent
}

func (r *responder) respond(resp *discordgo.InteractionResponse) error {
	if err := r.s.InteractionRespond(r.i.Interaction, resp); err != nil {
		return fmt.Errorf("error responding to interaction: %w", err)
	}
	r.sent = true
	return nil
}

// Ephemeral replies with a message only the actor can see.
func (r *responder) Ephemeral(content string) error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// EphemeralComponents replies ephemerally with interactive components.
func (r *responder) EphemeralComponents(content string, components []discordgo.MessageComponent) error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Flags:      discordgo.MessageFlagsEphemeral,
			Components: components,
		},
	})
}

// Message replies publicly in the channel, optionally with components.
func (r *responder) Message(content string, components []discordgo.MessageComponent) error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
		},
	})
}

// Embed replies publicly with a single embed.
func (r *responder) Embed(embed *discordgo.MessageEmbed) error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// Update replaces the content and components of the message the interaction
// came from. Passing nil components leaves a terminal, component-free message.
func (r *responder) Update(content string, components []discordgo.MessageComponent) error {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
		},
	})
}

// Modal presents a form to the actor.
func (r *responder) Modal(customID, title string, components []discordgo.MessageComponent) error {
	return r.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
}
