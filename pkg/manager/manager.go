/*
manager is the service layer behind the HTTP API. It holds the city
directory, the weather provider and the assistant, and scopes every
directory operation to the caller.
*/
package manager

import (
	"time"

	// Packages
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	assistant "github.com/mutablelogic/go-weatherdeck/pkg/assistant"
	geocache "github.com/mutablelogic/go-weatherdeck/pkg/geocache"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	store "github.com/mutablelogic/go-weatherdeck/pkg/store"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Manager struct {
	store     schema.CityStore
	provider  weatherdeck.WeatherProvider
	weather   weatherdeck.WeatherProvider
	key       string
	ttl       time.Duration
	assistant *assistant.Assistant
	tracer    trace.Tracer
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// MaxPlaces is the most search candidates returned
	MaxPlaces = 5

	// geocacheCap is the initial capacity of the geocoding cache
	geocacheCap = 100
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewManager(opts ...Opt) (*Manager, error) {
	// Create the manager
	m := new(Manager)

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	// Default to in-memory city store if none was provided
	if m.store == nil {
		m.store = store.NewMemoryCityStore()
	}

	// Geocoding goes through the cache, diagnostics go direct
	if m.provider != nil {
		m.weather = geocache.New(m.provider, m.ttl, geocacheCap)
	}

	// Return success
	return m, nil
}
