package schema

import (
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is one entry of the client-side chat transcript
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn is one entry of a model conversation. The model API only
// distinguishes two conversational roles, RoleUser and RoleModel.
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is a single unit of a turn: either text or an invocation request
type Part struct {
	Text string      `json:"text,omitempty"`
	Call *Invocation `json:"call,omitempty"`
}

// Invocation is a request by the model to run a named operation
type Invocation struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// Transcript roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Model turn roles
const (
	RoleModel = "model"
)

// DefaultHistory is the number of transcript messages submitted to the model
const DefaultHistory = 10

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTextTurn returns a turn with a single text part
func NewTextTurn(role, text string) Turn {
	return Turn{Role: role, Parts: []Part{{Text: text}}}
}

// Turns converts the most recent limit messages into model turns, flattening
// roles with TurnRole. Older messages are dropped. A limit of zero or less
// keeps every message.
func Turns(messages []Message, limit int) []Turn {
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	turns := make([]Turn, 0, len(messages))
	for _, message := range messages {
		turns = append(turns, NewTextTurn(TurnRole(message.Role), message.Content))
	}
	return turns
}

// TurnRole maps a transcript role onto a model turn role. Only "user" (or
// no role at all) is the user; every other role is the model.
func TurnRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", RoleUser:
		return RoleUser
	default:
		return RoleModel
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Text returns the concatenated text parts of the turn
func (t Turn) Text() string {
	var result strings.Builder
	for _, part := range t.Parts {
		result.WriteString(part.Text)
	}
	return result.String()
}

// Calls returns the invocation requests in the turn, in order
func (t Turn) Calls() []Invocation {
	var result []Invocation
	for _, part := range t.Parts {
		if part.Call != nil {
			result = append(result, *part.Call)
		}
	}
	return result
}

// LastContent returns the content of the last message, or an empty string
func LastContent(messages []Message) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[len(messages)-1].Content
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Turn) String() string {
	return types.Stringify(t)
}

func (m Message) String() string {
	return types.Stringify(m)
}
