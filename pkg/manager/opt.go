package manager

import (
	"strings"
	"time"

	// Packages
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	assistant "github.com/mutablelogic/go-weatherdeck/pkg/assistant"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring the manager
type Opt func(*Manager) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithStore sets the city store. If not set, an in-memory store is used.
func WithStore(store schema.CityStore) Opt {
	return func(m *Manager) error {
		if store == nil {
			return weatherdeck.ErrBadParameter.With("city store is required")
		}
		m.store = store
		return nil
	}
}

// WithWeather sets the weather provider and the key it was created with,
// which is reported masked by the diagnostics.
func WithWeather(provider weatherdeck.WeatherProvider, key string) Opt {
	return func(m *Manager) error {
		if provider == nil {
			return weatherdeck.ErrBadParameter.With("weather provider is required")
		}
		m.provider = provider
		m.key = strings.TrimSpace(key)
		return nil
	}
}

// WithGeocodeTTL sets how long geocoding results are cached
func WithGeocodeTTL(ttl time.Duration) Opt {
	return func(m *Manager) error {
		if ttl < 0 {
			return weatherdeck.ErrBadParameter.Withf("invalid geocode ttl %v", ttl)
		}
		m.ttl = ttl
		return nil
	}
}

// WithAssistant sets the chat assistant
func WithAssistant(assistant *assistant.Assistant) Opt {
	return func(m *Manager) error {
		if assistant == nil {
			return weatherdeck.ErrBadParameter.With("assistant is required")
		}
		m.assistant = assistant
		return nil
	}
}

// WithTracer sets the tracer for manager spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(m *Manager) error {
		m.tracer = tracer
		return nil
	}
}
