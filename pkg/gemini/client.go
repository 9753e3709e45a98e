/*
gemini implements a client for the Google Gemini generateContent REST API,
sufficient for a single round of function calling.
https://ai.google.dev/gemini-api/docs
*/
package gemini

import (
	// Packages
	client "github.com/mutablelogic/go-client"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

var _ weatherdeck.Generator = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel and DefaultFallbackModel are used when no model is configured
	DefaultModel         = "gemini-2.5-flash"
	DefaultFallbackModel = "gemini-2.5-flash-lite"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new Gemini API client with the given API key. The endpoint
// can be replaced with client.OptEndpoint.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		return nil, weatherdeck.ErrNotConfigured.With("GEMINI_API_KEY missing")
	}
	opts = append([]client.ClientOpt{client.OptEndpoint(endPoint)}, opts...)
	opts = append(opts, client.OptHeader("x-goog-api-key", apiKey))
	if c, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		return &Client{c}, nil
	}
}
