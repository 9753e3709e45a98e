package weatherdeck

import (
	"context"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultUser is the caller identifier used when none is supplied
	DefaultUser = "demo-user"

	// UserHeader carries the caller identifier on HTTP requests
	UserHeader = "x-user-id"
)

type userKey struct{}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithUser returns a context carrying the caller identifier
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey{}, strings.TrimSpace(user))
}

// User returns the caller identifier from the context, or DefaultUser
func User(ctx context.Context) string {
	if user, ok := ctx.Value(userKey{}).(string); ok && user != "" {
		return user
	}
	return DefaultUser
}
