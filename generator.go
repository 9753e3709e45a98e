package weatherdeck

import (
	"context"

	// Packages
	opt "github.com/mutablelogic/go-weatherdeck/pkg/opt"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Generator produces the next model turn for a conversation. Tools and the
// system instruction are passed as options.
type Generator interface {
	Generate(ctx context.Context, model string, turns []schema.Turn, opts ...opt.Opt) (*schema.Turn, error)
}

// WeatherProvider resolves free-text place queries to coordinates, and
// coordinates to current conditions and a multi-day forecast.
type WeatherProvider interface {
	// Geocode returns up to limit candidate places, in provider order
	Geocode(ctx context.Context, query string, limit int) ([]schema.Place, error)

	// Current returns the current conditions at a coordinate
	Current(ctx context.Context, lat, lon float64) (*schema.Current, error)

	// Forecast returns the forecast series at a coordinate
	Forecast(ctx context.Context, lat, lon float64) ([]schema.ForecastItem, error)
}
