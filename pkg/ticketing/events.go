package ticketing

import (
	"strings"

	"github.com/Jacobbrewer1/discordgo"
)

// Component identifiers. Exact identifiers are matched before prefixed ones.
const (
	// OpenTicketID is the identifier of the open ticket button.
	OpenTicketID = "open_ticket"

	// CloseTicketID is the identifier of the close ticket button.
	CloseTicketID = "close_ticket"

	// ClaimTicketID is the identifier of the claim ticket button.
	ClaimTicketID = "claim_ticket"

	// ConfirmCloseID is the identifier of the close confirmation button.
	ConfirmCloseID = "confirm_close"

	// CancelCloseID is the identifier of the close cancellation button.
	CancelCloseID = "cancel_close"

	// SetupSelectChannelID is the identifier of the wizard channel select menu.
	SetupSelectChannelID = "setup_select_channel"

	// TicketModalID is the identifier of the default ticket intake form.
	TicketModalID = "ticket_modal"

	// setupFinishPrefix carries the destination channel ID of a finished wizard.
	setupFinishPrefix = "setup_finish_"

	// setupAddCategoryPrefix carries the destination channel ID of an add
	// category prompt.
	setupAddCategoryPrefix = "setup_add_cat_"

	// setupCategoryModalPrefix carries the destination channel ID of a category
	// creation form.
	setupCategoryModalPrefix = "setup_cat_modal_"

	// openCategoryPrefix carries the category ID of a category panel button.
	openCategoryPrefix = "open_cat_"

	// ticketModalPrefix carries the category ID of a categorised intake form.
	ticketModalPrefix = "ticket_modal_"
)

// Slash command names.
const (
	// SetupTicketCmdName sends the single-button ticket panel.
	SetupTicketCmdName = "setup-ticket"

	// SetupPanelCmdName starts the interactive panel setup wizard.
	SetupPanelCmdName = "setup-panel"

	// AddUserCmdName adds a user to the current ticket.
	AddUserCmdName = "add-user"

	// RemoveUserCmdName removes a user from the current ticket.
	RemoveUserCmdName = "remove-user"

	// BanUserCmdName bans a user from creating tickets.
	BanUserCmdName = "ban-user"

	// UnbanUserCmdName unbans a user from creating tickets.
	UnbanUserCmdName = "unban-user"
)

// EventKind classifies a normalized inbound event.
type EventKind int

const (
	// EventCommand is a slash command invocation.
	EventCommand EventKind = iota

	// EventButton is a button press.
	EventButton

	// EventSelect is a select menu choice.
	EventSelect

	// EventFormSubmit is a form (modal) submission.
	EventFormSubmit
)

// Event is a normalized inbound interaction.
type Event struct {
	// Kind is the classification of the event.
	Kind EventKind

	// Identifier is the command name or component custom ID.
	Identifier string

	// Interaction is the underlying interaction.
	Interaction *discordgo.InteractionCreate
}

// normalizeEvent classifies an interaction by kind and identifier. It returns
// nil for interaction types the router does not handle.
func normalizeEvent(i *discordgo.InteractionCreate) *Event {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return &Event{
			Kind:        EventCommand,
			Identifier:  i.ApplicationCommandData().Name,
			Interaction: i,
		}
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		kind := EventButton
		if data.ComponentType == discordgo.SelectMenuComponent {
			kind = EventSelect
		}
		return &Event{
			Kind:        kind,
			Identifier:  data.CustomID,
			Interaction: i,
		}
	case discordgo.InteractionModalSubmit:
		return &Event{
			Kind:        EventFormSubmit,
			Identifier:  i.ModalSubmitData().CustomID,
			Interaction: i,
		}
	default:
		return nil
	}
}

// routedEvent is the closed set of events the router dispatches. Parsing the
// identifier once at the boundary means new identifiers cannot silently fall
// through half-routed.
type routedEvent interface {
	isRoutedEvent()
}

type (
	// openTicketEvent opens the default intake form.
	openTicketEvent struct{}

	// closeTicketEvent requests or performs a ticket closure.
	closeTicketEvent struct{}

	// claimTicketEvent claims the ticket of the current channel.
	claimTicketEvent struct{}

	// confirmCloseEvent confirms a pending close request.
	confirmCloseEvent struct{}

	// cancelCloseEvent dismisses a pending close request.
	cancelCloseEvent struct{}

	// setupSelectChannelEvent is the wizard destination channel selection.
	setupSelectChannelEvent struct{}

	// setupFinishEvent terminates the wizard for a destination channel.
	setupFinishEvent struct {
		ChannelID string
	}

	// setupAddCategoryEvent opens the category creation form.
	setupAddCategoryEvent struct {
		ChannelID string
	}

	// setupCategoryModalEvent is a submitted category creation form.
	setupCategoryModalEvent struct {
		ChannelID string
	}

	// openCategoryEvent opens the intake form of a category.
	openCategoryEvent struct {
		CategoryID string
	}

	// ticketModalEvent is a submitted intake form. CategoryID is empty for the
	// default form.
	ticketModalEvent struct {
		CategoryID string
	}

	// commandEvent is a slash command invocation.
	commandEvent struct {
		Name string
	}
)

func (openTicketEvent) isRoutedEvent()         {}
func (closeTicketEvent) isRoutedEvent()        {}
func (claimTicketEvent) isRoutedEvent()        {}
func (confirmCloseEvent) isRoutedEvent()       {}
func (cancelCloseEvent) isRoutedEvent()        {}
func (setupSelectChannelEvent) isRoutedEvent() {}
func (setupFinishEvent) isRoutedEvent()        {}
func (setupAddCategoryEvent) isRoutedEvent()   {}
func (setupCategoryModalEvent) isRoutedEvent() {}
func (openCategoryEvent) isRoutedEvent()       {}
func (ticketModalEvent) isRoutedEvent()        {}
func (commandEvent) isRoutedEvent()            {}

// knownCommands is the closed set of slash commands the router accepts.
var knownCommands = map[string]struct{}{
	SetupTicketCmdName: {},
	SetupPanelCmdName:  {},
	AddUserCmdName:     {},
	RemoveUserCmdName:  {},
	BanUserCmdName:     {},
	UnbanUserCmdName:   {},
}

// parseIdentifier resolves an event's identifier into a typed routed event,
// checking exact identifiers before prefixed ones. An identifier matching
// nothing returns nil and is treated as a benign no-op.
func parseIdentifier(e *Event) routedEvent {
	if e.Kind == EventCommand {
		if _, ok := knownCommands[e.Identifier]; ok {
			return commandEvent{Name: e.Identifier}
		}
		return nil
	}

	// Exact identifiers first.
	switch e.Identifier {
	case OpenTicketID:
		return openTicketEvent{}
	case CloseTicketID:
		return closeTicketEvent{}
	case ClaimTicketID:
		return claimTicketEvent{}
	case ConfirmCloseID:
		return confirmCloseEvent{}
	case CancelCloseID:
		return cancelCloseEvent{}
	case SetupSelectChannelID:
		return setupSelectChannelEvent{}
	case TicketModalID:
		return ticketModalEvent{}
	}

	// Prefixed identifiers carry their step state in the identifier itself; the
	// payload is parsed exactly once, here.
	switch {
	case strings.HasPrefix(e.Identifier, setupFinishPrefix):
		return setupFinishEvent{ChannelID: strings.TrimPrefix(e.Identifier, setupFinishPrefix)}
	case strings.HasPrefix(e.Identifier, setupAddCategoryPrefix):
		return setupAddCategoryEvent{ChannelID: strings.TrimPrefix(e.Identifier, setupAddCategoryPrefix)}
	case strings.HasPrefix(e.Identifier, setupCategoryModalPrefix):
		return setupCategoryModalEvent{ChannelID: strings.TrimPrefix(e.Identifier, setupCategoryModalPrefix)}
	case strings.HasPrefix(e.Identifier, openCategoryPrefix):
		return openCategoryEvent{CategoryID: strings.TrimPrefix(e.Identifier, openCategoryPrefix)}
	case strings.HasPrefix(e.Identifier, ticketModalPrefix):
		return ticketModalEvent{CategoryID: strings.TrimPrefix(e.Identifier, ticketModalPrefix)}
	}

	return nil
}
