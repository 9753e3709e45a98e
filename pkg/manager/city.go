package manager

import (
	"context"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateCity saves a city for the user. The fields are trimmed and the
// country defaults to IN.
func (m *Manager) CreateCity(ctx context.Context, user string, meta schema.CityMeta) (result *schema.City, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "CreateCity",
		attribute.String("user", user),
		attribute.String("name", meta.Name),
	)
	defer func() { endSpan(err) }()

	return m.store.CreateCity(ctx, user, meta.Normalise())
}

// ListCities returns the user's cities, oldest first
func (m *Manager) ListCities(ctx context.Context, user string) (result []*schema.City, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "ListCities",
		attribute.String("user", user),
	)
	defer func() { endSpan(err) }()

	cities, err := m.store.ListCities(ctx, user)
	if err != nil {
		return nil, err
	}
	if cities == nil {
		cities = []*schema.City{}
	}
	return cities, nil
}

// GetCity returns one of the user's cities
func (m *Manager) GetCity(ctx context.Context, user, id string) (result *schema.City, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "GetCity",
		attribute.String("user", user),
		attribute.String("id", id),
	)
	defer func() { endSpan(err) }()

	return m.store.GetCity(ctx, user, id)
}

// DeleteCity removes one of the user's cities and returns it
func (m *Manager) DeleteCity(ctx context.Context, user, id string) (result *schema.City, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "DeleteCity",
		attribute.String("user", user),
		attribute.String("id", id),
	)
	defer func() { endSpan(err) }()

	return m.store.DeleteCity(ctx, user, id)
}
