package ticketing

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/fenrir/pkg/entities"
	"github.com/Jacobbrewer1/fenrir/pkg/logging"
)

const (
	// transcriptFetchLimit is the page size of history fetches, and the whole
	// window when full transcripts are disabled.
	transcriptFetchLimit = 100

	// transcriptMaxMessages hard-caps full history pagination.
	transcriptMaxMessages = 10000

	// transcriptDateFormat is the timestamp format used in transcripts.
	transcriptDateFormat = "2006-01-02 15:04:05"
)

// captureTranscript serializes the ticket channel's history into a plain-text
// transcript. The window is a single fetch unless the guild is configured for
// full history, in which case the channel is paginated oldest-first until
// exhausted.
func (s *Service) captureTranscript(ticket *entities.Ticket, cfg *entities.GuildConfig) (string, error) {
	full := cfg != nil && cfg.FullTranscripts

	msgs := make([]*discordgo.Message, 0, transcriptFetchLimit)
	before := ""
	for {
		page, err := s.s.ChannelMessages(ticket.ChannelID, transcriptFetchLimit, before, "", "")
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrTranscript, err)
		}
		msgs = append(msgs, page...)

		if !full || len(page) < transcriptFetchLimit || len(msgs) >= transcriptMaxMessages {
			break
		}
		before = page[len(page)-1].ID
	}

	return formatTranscript(ticket, msgs), nil
}

// formatTranscript renders fetched messages as text. Messages arrive new-old
// and are traversed in reverse for chronological order.
func formatTranscript(ticket *entities.Ticket, msgs []*discordgo.Message) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Transcript of ticket %s (%s), opened by %s at %s.\n\n",
		ticket.ID, ticket.Category, ticket.OpenerName, ticket.CreatedAt.UTC().Format(transcriptDateFormat)))

	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m.Author == nil {
			continue
		}

		buf.WriteString(fmt.Sprintf("[%s] %s (%s): %s",
			m.Timestamp.UTC().Format(transcriptDateFormat), m.Author.Username, m.Author.ID, m.Content))

		for _, att := range m.Attachments {
			buf.WriteString(fmt.Sprintf(" (attachment: %s)", att.Filename))
		}

		buf.WriteRune('\n')
	}

	return buf.String()
}

// deliverTranscript posts the closure summary and transcript file to the
// configured log channel. Delivery is best-effort: failures are logged and
// never block or revert the close.
func (s *Service) deliverTranscript(ticket *entities.Ticket, cfg *entities.GuildConfig, closer *discordgo.User) {
	if cfg == nil || cfg.TranscriptChannelID == "" {
		return
	}

	msg := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title: fmt.Sprintf("\U0001F4C4 Ticket Closed: %s", ticket.ChannelID),
				Color: closedEmbedColour,
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:   "Opener",
						Value:  fmt.Sprintf("<@%s>", ticket.OpenerID),
						Inline: true,
					},
					{
						Name:   "Closed By",
						Value:  fmt.Sprintf("<@%s>", closer.ID),
						Inline: true,
					},
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			},
		},
	}
	if ticket.Transcript != "" {
		msg.Files = []*discordgo.File{
			{
				Name:        fmt.Sprintf("transcript-%s.txt", ticket.ID),
				ContentType: "text/plain",
				Reader:      strings.NewReader(ticket.Transcript),
			},
		}
	}

	if _, err := s.s.ChannelMessageSendComplex(cfg.TranscriptChannelID, msg); err != nil {
		s.l.Error("Error posting transcript to log channel",
			slog.String(logging.KeyTicket, ticket.ID),
			slog.String(logging.KeyChannel, cfg.TranscriptChannelID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
}
