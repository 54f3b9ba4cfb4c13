package entities

import "time"

// QuestionStyle is the input style of an intake question.
type QuestionStyle string

const (
	// QuestionStyleShort is a single-line input.
	QuestionStyleShort QuestionStyle = "short"

	// QuestionStyleParagraph is a multi-line input.
	QuestionStyleParagraph QuestionStyle = "paragraph"
)

// MaxQuestions is the maximum number of intake questions a category can present,
// bounded by the discord modal field limit.
const MaxQuestions = 5

// Question is a single intake question on a ticket category.
type Question struct {
	// Label is the prompt shown to the user.
	Label string `json:"label" bson:"label"`

	// Style is the input style of the question.
	Style QuestionStyle `json:"style" bson:"style"`

	// Placeholder is the placeholder text shown in the empty input.
	Placeholder string `json:"placeholder" bson:"placeholder"`

	// Required is whether an answer must be provided.
	Required bool `json:"required" bson:"required"`

	// MinLength is the minimum answer length.
	MinLength int `json:"min_length" bson:"min_length"`

	// MaxLength is the maximum answer length.
	MaxLength int `json:"max_length" bson:"max_length"`
}

// TicketCategory is an administrator-defined ticket type with its own intake
// questions.
type TicketCategory struct {
	// ID is the ID of the category.
	ID string `json:"id" bson:"id"`

	// ConfigID is the ID of the owning guild configuration.
	ConfigID string `json:"config_id" bson:"config_id"`

	// Name is the display name of the category.
	Name string `json:"name" bson:"name"`

	// Emoji is the emoji shown on the category button.
	Emoji string `json:"emoji" bson:"emoji"`

	// Questions is the ordered list of intake questions.
	Questions []Question `json:"questions" bson:"questions"`

	// DiscordCategoryID overrides the guild's parent channel for tickets opened
	// under this category.
	DiscordCategoryID string `json:"discord_category_id" bson:"discord_category_id"`

	// CreatedAt is the time that the category was created. Panels render
	// categories in creation order.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
