package httpclient

import (
	"context"
	"fmt"

	// Packages
	client "github.com/mutablelogic/go-client"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Chat sends the conversation to the assistant and returns its reply.
// The caller identifier in the context takes precedence over req.UserID.
func (c *Client) Chat(ctx context.Context, req schema.ChatRequest) (*schema.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("messages cannot be empty")
	}
	if req.UserID == "" {
		req.UserID = weatherdeck.User(ctx)
	}

	// Create request
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	// Perform request
	var response schema.ChatResponse
	if err := c.do(ctx, payload, &response, client.OptPath("ai", "chat"), user(ctx)); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}
