package ticketing

import (
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/fenrir/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestFormatTranscript(t *testing.T) {
	opened := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	ticket := &entities.Ticket{
		ID:         "ticket-1",
		Category:   "support",
		OpenerName: "opener",
		CreatedAt:  opened,
	}

	// History arrives new-old; the transcript reads old-new.
	msgs := []*discordgo.Message{
		{
			ID:        "2",
			Author:    testUser("staff-a"),
			Content:   "on it",
			Timestamp: opened.Add(2 * time.Minute),
		},
		{
			ID:      "system",
			Content: "a message with no author is skipped",
		},
		{
			ID:        "1",
			Author:    testUser("opener"),
			Content:   "it broke",
			Timestamp: opened.Add(time.Minute),
			Attachments: []*discordgo.MessageAttachment{
				{Filename: "screenshot.png"},
			},
		},
	}

	got := formatTranscript(ticket, msgs)
	require.Equal(t, "Transcript of ticket ticket-1 (support), opened by opener at 2024-03-01 09:00:00.\n\n"+
		"[2024-03-01 09:01:00] opener (opener): it broke (attachment: screenshot.png)\n"+
		"[2024-03-01 09:02:00] staff-a (staff-a): on it\n", got)
}

func TestFormatTranscriptEmptyHistory(t *testing.T) {
	ticket := &entities.Ticket{
		ID:         "ticket-1",
		Category:   "support",
		OpenerName: "opener",
		CreatedAt:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	got := formatTranscript(ticket, nil)
	require.Contains(t, got, "Transcript of ticket ticket-1")
}

func TestDeliverTranscriptWithoutLogChannel(t *testing.T) {
	svc, session, _ := newTestService()

	ticket := &entities.Ticket{
		ID:         "ticket-1",
		ChannelID:  "chan-1",
		OpenerID:   "opener",
		Transcript: "something",
	}

	// No config and no configured log channel are both silent no-ops.
	svc.deliverTranscript(ticket, nil, testUser("staff-a"))
	svc.deliverTranscript(ticket, &entities.GuildConfig{ID: "guild-1"}, testUser("staff-a"))

	require.Empty(t, session.sent)
}
