package ticketing

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/fenrir/pkg/entities"
	"github.com/Jacobbrewer1/fenrir/pkg/messages"
	"github.com/stretchr/testify/require"
)

func TestSetupPanelRequiresAdmin(t *testing.T) {
	svc, session, _ := newTestService()

	member := testMember(testUser("pleb"), 0)
	svc.HandleInteraction(context.Background(), commandInteraction("guild-1", "admin-chan", SetupPanelCmdName, member))

	resp := session.lastResponse()
	require.NotNil(t, resp)
	require.Equal(t, messages.ErrUserNotAdmin, resp.Data.Content)
}

func TestSetupTicketSendsSimplePanel(t *testing.T) {
	svc, session, _ := newTestService()

	admin := testMember(testUser("admin"), discordgo.PermissionAdministrator)
	svc.HandleInteraction(context.Background(), commandInteraction("guild-1", "admin-chan", SetupTicketCmdName, admin))

	sent := session.sentTo("admin-chan")
	require.Len(t, sent, 1)
	require.Len(t, sent[0].Components, 1)

	row, ok := sent[0].Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 1)

	button, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	require.Equal(t, OpenTicketID, button.CustomID)
}

// TestSetupWizardFlow walks the whole wizard: pick a destination channel, add
// two categories, finish. Each step's state travels in the component
// identifiers, so the flow needs no server-held session.
func TestSetupWizardFlow(t *testing.T) {
	svc, session, store := newTestService()
	session.addChannel("dest-chan", "tickets", discordgo.ChannelTypeGuildText)

	admin := testMember(testUser("admin"), discordgo.PermissionAdministrator)
	ctx := context.Background()

	// Step 1: the command responds with the channel select.
	svc.HandleInteraction(ctx, commandInteraction("guild-1", "admin-chan", SetupPanelCmdName, admin))

	resp := session.lastResponse()
	require.NotNil(t, resp)
	require.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	require.Len(t, resp.Data.Components, 1)

	menu := resp.Data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	require.Equal(t, SetupSelectChannelID, menu.CustomID)
	require.Len(t, menu.Options, 1)
	require.Equal(t, "dest-chan", menu.Options[0].Value)

	// Step 2: selecting the channel swaps the prompt for add/finish buttons
	// carrying the channel in their identifiers.
	svc.HandleInteraction(ctx, selectInteraction("guild-1", "admin-chan", SetupSelectChannelID, admin, "dest-chan"))

	resp = session.lastResponse()
	require.Equal(t, discordgo.InteractionResponseUpdateMessage, resp.Type)
	row := resp.Data.Components[0].(discordgo.ActionsRow)
	require.Equal(t, setupAddCategoryPrefix+"dest-chan", row.Components[0].(discordgo.Button).CustomID)
	require.Equal(t, setupFinishPrefix+"dest-chan", row.Components[1].(discordgo.Button).CustomID)

	// Step 3: add category opens the creation form.
	svc.HandleInteraction(ctx, buttonInteraction("guild-1", "admin-chan", setupAddCategoryPrefix+"dest-chan", admin))

	resp = session.lastResponse()
	require.Equal(t, discordgo.InteractionResponseModal, resp.Type)
	require.Equal(t, setupCategoryModalPrefix+"dest-chan", resp.Data.CustomID)

	// Step 4: two category submissions, each re-rendering the panel.
	svc.HandleInteraction(ctx, modalInteraction("guild-1", "admin-chan", setupCategoryModalPrefix+"dest-chan", admin, map[string]string{
		categoryNameFieldID:  "Billing",
		categoryEmojiFieldID: "💳",
	}, categoryNameFieldID, categoryEmojiFieldID))
	svc.HandleInteraction(ctx, modalInteraction("guild-1", "admin-chan", setupCategoryModalPrefix+"dest-chan", admin, map[string]string{
		categoryNameFieldID: "Support",
	}, categoryNameFieldID))

	categories, err := store.ListCategories(ctx, "guild-1")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, "Billing", categories[0].Name)
	require.Equal(t, "Support", categories[1].Name)
	// The omitted emoji falls back to the default.
	require.Equal(t, defaultCategoryEmoji, categories[1].Emoji)

	panels := session.sentTo("dest-chan")
	require.Len(t, panels, 2)

	// The final panel carries exactly one button per category.
	panelRow := panels[1].Components[0].(discordgo.ActionsRow)
	require.Len(t, panelRow.Components, 2)
	require.Equal(t, openCategoryPrefix+categories[0].ID, panelRow.Components[0].(discordgo.Button).CustomID)
	require.Equal(t, openCategoryPrefix+categories[1].ID, panelRow.Components[1].(discordgo.Button).CustomID)

	// Step 5: finish leaves a terminal, component-free confirmation.
	svc.HandleInteraction(ctx, buttonInteraction("guild-1", "admin-chan", setupFinishPrefix+"dest-chan", admin))

	resp = session.lastResponse()
	require.Equal(t, discordgo.InteractionResponseUpdateMessage, resp.Type)
	require.Contains(t, resp.Data.Content, "Setup Complete")
	require.Empty(t, resp.Data.Components)
}

func TestCategoryPanelMessageCapsAtFiveRows(t *testing.T) {
	svc, session, store := newTestService()
	session.addChannel("dest-chan", "tickets", discordgo.ChannelTypeGuildText)

	admin := testMember(testUser("admin"), discordgo.PermissionAdministrator)
	ctx := context.Background()

	// 27 categories persist, but the rendered panel caps at 25 buttons.
	for idx := 0; idx < 27; idx++ {
		svc.HandleInteraction(ctx, modalInteraction("guild-1", "admin-chan", setupCategoryModalPrefix+"dest-chan", admin, map[string]string{
			categoryNameFieldID: "Category",
		}, categoryNameFieldID))
	}

	categories, err := store.ListCategories(ctx, "guild-1")
	require.NoError(t, err)
	require.Len(t, categories, 27)

	panels := session.sentTo("dest-chan")
	require.Len(t, panels, 27)

	last := panels[len(panels)-1]
	require.Len(t, last.Components, maxPanelRows)
	buttons := 0
	for _, c := range last.Components {
		buttons += len(c.(discordgo.ActionsRow).Components)
	}
	require.Equal(t, maxPanelRows*maxPanelRowButtons, buttons)
}

func TestCategoryPanelTruncatesLabelOnRuneBoundary(t *testing.T) {
	// Multibyte runes past the label limit must not be split mid-rune.
	name := strings.Repeat("ü", maxButtonLabelLength+10)
	msg := categoryPanelMessage([]*entities.TicketCategory{{ID: "cat-1", Name: name}})

	require.Len(t, msg.Components, 1)
	row, ok := msg.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 1)
	button, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)

	require.True(t, utf8.ValidString(button.Label))
	require.Equal(t, maxButtonLabelLength, utf8.RuneCountInString(button.Label))
}
