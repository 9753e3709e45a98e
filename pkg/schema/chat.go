package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ChatRequest is the body of a chat request
type ChatRequest struct {
	Messages []Message `json:"messages"`
	UserID   string    `json:"userId,omitempty"`
}

// ChatResponse is the reply to a chat request
type ChatResponse struct {
	Reply     string            `json:"reply"`
	ToolsUsed []string          `json:"toolsUsed"`
	Data      []OperationResult `json:"data,omitzero"`
}

// OperationResult is the outcome of running one operation invocation.
// Args holds the arguments after any repair.
type OperationResult struct {
	Name   string         `json:"name"`
	Args   map[string]any `json:"args,omitempty"`
	OK     bool           `json:"ok"`
	Output any            `json:"output,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// ErrorResponse is the body of a failed chat request
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Health is the body of the health check
type Health struct {
	OK bool `json:"ok"`
}

// WeatherDiag reports whether the weather provider key works
type WeatherDiag struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
	Key    string `json:"key,omitempty"`
	Status int    `json:"status,omitempty"`
	Sample any    `json:"sample,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ModelDiag reports whether the configured model answers
type ModelDiag struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
	Model  string `json:"model,omitempty"`
	Reply  string `json:"reply,omitempty"`
	Error  string `json:"error,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ChatResponse) String() string {
	return types.Stringify(r)
}

func (r OperationResult) String() string {
	return types.Stringify(r)
}
