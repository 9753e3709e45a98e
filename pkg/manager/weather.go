package manager

import (
	"context"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SearchPlaces returns up to five geocoding candidates in provider order.
// An empty query returns an empty list without calling the provider.
func (m *Manager) SearchPlaces(ctx context.Context, q string) (result []schema.Place, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "SearchPlaces",
		attribute.String("q", q),
	)
	defer func() { endSpan(err) }()

	q = strings.TrimSpace(q)
	if q == "" {
		return []schema.Place{}, nil
	}
	if m.weather == nil {
		return nil, weatherdeck.ErrNotConfigured.With("OPENWEATHER_API_KEY missing")
	}

	places, err := m.weather.Geocode(ctx, q, MaxPlaces)
	if err != nil {
		return nil, err
	}
	if len(places) > MaxPlaces {
		places = places[:MaxPlaces]
	}
	if places == nil {
		places = []schema.Place{}
	}
	return places, nil
}

// Weather returns the current conditions and forecast for one of the
// user's cities. Both are fetched in parallel.
func (m *Manager) Weather(ctx context.Context, user, id string) (result *schema.Weather, err error) {
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Weather",
		attribute.String("user", user),
		attribute.String("id", id),
	)
	defer func() { endSpan(err) }()

	city, err := m.store.GetCity(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if m.weather == nil {
		return nil, weatherdeck.ErrNotConfigured.With("OPENWEATHER_API_KEY missing")
	}

	weather := &schema.Weather{City: *city}
	wg, ctx := errgroup.WithContext(ctx)
	wg.Go(func() error {
		current, err := m.weather.Current(ctx, city.Lat, city.Lon)
		if err != nil {
			return err
		}
		weather.Current = current
		return nil
	})
	wg.Go(func() error {
		forecast, err := m.weather.Forecast(ctx, city.Lat, city.Lon)
		if err != nil {
			return err
		}
		weather.Forecast = forecast
		return nil
	})
	if err := wg.Wait(); err != nil {
		return nil, err
	}
	if weather.Forecast == nil {
		weather.Forecast = []schema.ForecastItem{}
	}
	return weather, nil
}
