package schema

import (
	"context"
)

////////////////////////////////////////////////////////////////////////////////
// INTERFACES

// CityStore persists saved cities, scoped by user identifier
type CityStore interface {
	// CreateCity saves a city with coordinates for the user
	CreateCity(ctx context.Context, user string, meta CityMeta) (*City, error)

	// ListCities returns the user's cities, oldest first
	ListCities(ctx context.Context, user string) ([]*City, error)

	// GetCity returns one of the user's cities by identifier
	GetCity(ctx context.Context, user, id string) (*City, error)

	// DeleteCity removes one of the user's cities and returns it
	DeleteCity(ctx context.Context, user, id string) (*City, error)
}
