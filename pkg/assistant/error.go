package assistant

import (
	"errors"
	"net/http"
	"regexp"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ModelError is a failed model round trip. Kind is one of ErrQuotaExceeded,
// ErrModelUnavailable or ErrModelFailed.
type ModelError struct {
	Kind  weatherdeck.Err
	Model string
	Err   error
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	MessageQuotaExceeded    = "AI free-tier quota reached and fallback failed. Weather tools still work."
	MessageModelUnavailable = "AI model unavailable for this project. Please set GEMINI_MODEL to a model your Google Cloud project has access to (e.g., gemini-2.5-flash)."
	MessageModelFailed      = "AI service failed"
)

var (
	reQuota       = regexp.MustCompile(`(?i)too many requests|quota`)
	reUnavailable = regexp.MustCompile(`(?i)not found|was not found|does not have access`)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e *ModelError) Error() string {
	return e.Err.Error()
}

func (e *ModelError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Message returns the message shown to the user
func (e *ModelError) Message() string {
	switch e.Kind {
	case weatherdeck.ErrQuotaExceeded:
		return MessageQuotaExceeded
	case weatherdeck.ErrModelUnavailable:
		return MessageModelUnavailable
	default:
		return MessageModelFailed
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// classify returns the kind of a model call failure from the upstream
// status code and the error text. Quota is checked first.
func classify(err error) weatherdeck.Err {
	var status int
	var code httpresponse.Err
	if errors.As(err, &code) {
		status = int(code)
	}
	msg := err.Error()
	switch {
	case status == http.StatusTooManyRequests || reQuota.MatchString(msg):
		return weatherdeck.ErrQuotaExceeded
	case status == http.StatusNotFound || status == http.StatusForbidden || reUnavailable.MatchString(msg):
		return weatherdeck.ErrModelUnavailable
	default:
		return weatherdeck.ErrModelFailed
	}
}
