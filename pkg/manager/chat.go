package manager

import (
	"context"

	// Packages
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Chat answers the conversation for the user. Model failures are returned
// as *assistant.ModelError.
func (m *Manager) Chat(ctx context.Context, user string, messages []schema.Message) (*schema.ChatResponse, error) {
	if m.assistant == nil {
		return nil, weatherdeck.ErrNotConfigured.With("GEMINI_API_KEY missing")
	}
	return m.assistant.Chat(ctx, user, messages)
}
