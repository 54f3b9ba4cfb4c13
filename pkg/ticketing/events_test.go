package ticketing

import (
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEvent(t *testing.T) {
	t.Run("command", func(t *testing.T) {
		i := commandInteraction("g", "c", SetupTicketCmdName, testMember(testUser("u"), 0))
		ev := normalizeEvent(i)
		require.NotNil(t, ev)
		require.Equal(t, EventCommand, ev.Kind)
		require.Equal(t, SetupTicketCmdName, ev.Identifier)
	})

	t.Run("button", func(t *testing.T) {
		i := buttonInteraction("g", "c", CloseTicketID, testMember(testUser("u"), 0))
		ev := normalizeEvent(i)
		require.NotNil(t, ev)
		require.Equal(t, EventButton, ev.Kind)
		require.Equal(t, CloseTicketID, ev.Identifier)
	})

	t.Run("select", func(t *testing.T) {
		i := selectInteraction("g", "c", SetupSelectChannelID, testMember(testUser("u"), 0), "chan-a")
		ev := normalizeEvent(i)
		require.NotNil(t, ev)
		require.Equal(t, EventSelect, ev.Kind)
	})

	t.Run("form submit", func(t *testing.T) {
		i := modalInteraction("g", "c", TicketModalID, testMember(testUser("u"), 0), nil)
		ev := normalizeEvent(i)
		require.NotNil(t, ev)
		require.Equal(t, EventFormSubmit, ev.Kind)
	})

	t.Run("unhandled type", func(t *testing.T) {
		i := &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{Type: discordgo.InteractionPing},
		}
		require.Nil(t, normalizeEvent(i))
	})
}

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		kind       EventKind
		identifier string
		want       routedEvent
	}{
		{
			name:       "open ticket",
			kind:       EventButton,
			identifier: "open_ticket",
			want:       openTicketEvent{},
		},
		{
			name:       "close ticket",
			kind:       EventButton,
			identifier: "close_ticket",
			want:       closeTicketEvent{},
		},
		{
			name:       "claim ticket",
			kind:       EventButton,
			identifier: "claim_ticket",
			want:       claimTicketEvent{},
		},
		{
			name:       "confirm close",
			kind:       EventButton,
			identifier: "confirm_close",
			want:       confirmCloseEvent{},
		},
		{
			name:       "cancel close",
			kind:       EventButton,
			identifier: "cancel_close",
			want:       cancelCloseEvent{},
		},
		{
			name:       "select channel",
			kind:       EventSelect,
			identifier: "setup_select_channel",
			want:       setupSelectChannelEvent{},
		},
		{
			name:       "default intake form matches exactly before the prefixed form",
			kind:       EventFormSubmit,
			identifier: "ticket_modal",
			want:       ticketModalEvent{},
		},
		{
			name:       "categorised intake form carries its category",
			kind:       EventFormSubmit,
			identifier: "ticket_modal_65a1",
			want:       ticketModalEvent{CategoryID: "65a1"},
		},
		{
			name:       "category button carries its category",
			kind:       EventButton,
			identifier: "open_cat_65a1",
			want:       openCategoryEvent{CategoryID: "65a1"},
		},
		{
			name:       "finish carries its destination channel",
			kind:       EventButton,
			identifier: "setup_finish_12345",
			want:       setupFinishEvent{ChannelID: "12345"},
		},
		{
			name:       "add category carries its destination channel",
			kind:       EventButton,
			identifier: "setup_add_cat_12345",
			want:       setupAddCategoryEvent{ChannelID: "12345"},
		},
		{
			name:       "category form carries its destination channel",
			kind:       EventFormSubmit,
			identifier: "setup_cat_modal_12345",
			want:       setupCategoryModalEvent{ChannelID: "12345"},
		},
		{
			name:       "known command",
			kind:       EventCommand,
			identifier: "ban-user",
			want:       commandEvent{Name: "ban-user"},
		},
		{
			name:       "unknown command",
			kind:       EventCommand,
			identifier: "other-bots-command",
			want:       nil,
		},
		{
			name:       "unknown component",
			kind:       EventButton,
			identifier: "other_bots_button",
			want:       nil,
		},
		{
			name:       "empty identifier",
			kind:       EventButton,
			identifier: "",
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseIdentifier(&Event{Kind: tt.kind, Identifier: tt.identifier})
			require.Equal(t, tt.want, got)
		})
	}
}
