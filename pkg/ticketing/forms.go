package ticketing

import (
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/fenrir/pkg/entities"
)

const (
	// ticketReasonFieldID is the well-known field identifier of the default
	// intake question.
	ticketReasonFieldID = "ticket_reason"

	// defaultQuestionLabel is the label of the synthesized default question.
	defaultQuestionLabel = "Reason for ticket"

	// questionFieldPrefix prefixes the indexed field identifiers of custom
	// question schemas.
	questionFieldPrefix = "question_"
)

// Category creation form field identifiers.
const (
	categoryNameFieldID  = "cat_name"
	categoryEmojiFieldID = "cat_emoji"
)

// defaultQuestionMaxLength bounds answers when a question does not declare its
// own maximum.
const defaultQuestionMaxLength = 1000

// ticketFormID derives the intake form identifier for a category. A nil
// category yields the well-known default form.
func ticketFormID(category *entities.TicketCategory) string {
	if category == nil {
		return TicketModalID
	}
	return ticketModalPrefix + category.ID
}

// buildTicketForm renders the intake form of a category as modal components,
// preserving the declared question order. A category with no questions (or no
// category at all) synthesizes the single default question.
func buildTicketForm(category *entities.TicketCategory) []discordgo.MessageComponent {
	var questions []entities.Question
	if category != nil {
		questions = category.Questions
	}

	if len(questions) == 0 {
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID: ticketReasonFieldID,
						Label:    defaultQuestionLabel,
						Style:    discordgo.TextInputParagraph,
						Required: true,
					},
				},
			},
		}
	}

	if len(questions) > entities.MaxQuestions {
		questions = questions[:entities.MaxQuestions]
	}

	components := make([]discordgo.MessageComponent, 0, len(questions))
	for idx, q := range questions {
		style := discordgo.TextInputShort
		if q.Style == entities.QuestionStyleParagraph {
			style = discordgo.TextInputParagraph
		}

		label := q.Label
		if label == "" {
			label = fmt.Sprintf("Question %d", idx+1)
		}

		maxLength := q.MaxLength
		if maxLength == 0 {
			maxLength = defaultQuestionMaxLength
		}

		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    fmt.Sprintf("%s%d", questionFieldPrefix, idx),
					Label:       label,
					Style:       style,
					Placeholder: q.Placeholder,
					Required:    q.Required,
					MinLength:   q.MinLength,
					MaxLength:   maxLength,
				},
			},
		})
	}
	return components
}

// submittedField is a single answered field of a form submission, in its
// original submission order.
type submittedField struct {
	id    string
	value string
}

// submittedFields flattens a form submission into its answered fields.
func submittedFields(data discordgo.ModalSubmitInteractionData) []submittedField {
	fields := make([]submittedField, 0, len(data.Components))
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			input, ok := comp.(*discordgo.TextInput)
			if !ok {
				continue
			}
			fields = append(fields, submittedField{
				id:    input.CustomID,
				value: input.Value,
			})
		}
	}
	return fields
}

// extractDescription composes the ticket's initial content from a form
// submission. The well-known reason field is preferred; otherwise every
// submitted field is concatenated in its original order.
func extractDescription(data discordgo.ModalSubmitInteractionData) string {
	fields := submittedFields(data)

	for _, f := range fields {
		if f.id == ticketReasonFieldID {
			return f.value
		}
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("**%s**: %s", f.id, f.value))
	}
	return strings.Join(lines, "\n")
}

// formValue returns the value of a named field of a form submission.
func formValue(data discordgo.ModalSubmitInteractionData, fieldID string) string {
	for _, f := range submittedFields(data) {
		if f.id == fieldID {
			return f.value
		}
	}
	return ""
}
