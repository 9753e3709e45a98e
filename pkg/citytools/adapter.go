/*
citytools implements the weather operations the assistant can invoke:
searching for places, adding and deleting saved cities, and fetching
weather for a saved city. Operations run against a Directory, normally
the application's own HTTP API, as the caller in the request context.
*/
package citytools

import (
	"context"
	"log/slog"
	"time"

	// Packages
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	lo "github.com/samber/lo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Directory is the city directory and weather surface the operations run
// against. The caller identifier is carried in the context.
type Directory interface {
	SearchPlaces(ctx context.Context, q string) ([]schema.Place, error)
	ListCities(ctx context.Context) ([]*schema.City, error)
	CreateCity(ctx context.Context, meta schema.CityMeta) (*schema.City, error)
	DeleteCity(ctx context.Context, id string) (*schema.City, error)
	Weather(ctx context.Context, cityId string) (*schema.Weather, error)
}

type Adapter struct {
	dir Directory
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	SearchTimeout    = 8 * time.Second
	DirectoryTimeout = 8 * time.Second
	WeatherTimeout   = 10 * time.Second

	// MaxPlaces is the most search candidates returned
	MaxPlaces = 5
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func New(dir Directory) (*Adapter, error) {
	if dir == nil {
		return nil, weatherdeck.ErrBadParameter.With("directory is required")
	}
	return &Adapter{dir: dir}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Search returns up to five places for the query in provider order
func (a *Adapter) Search(ctx context.Context, q string) ([]schema.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, SearchTimeout)
	defer cancel()

	places, err := a.dir.SearchPlaces(ctx, q)
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

// AddCity saves a city for the caller. When coordinates are missing they
// are taken from the first search candidate for the most specific query;
// a failed or empty search is logged and the save is still attempted.
func (a *Adapter) AddCity(ctx context.Context, meta schema.CityMeta) (*schema.City, error) {
	meta = meta.Normalise()
	if !meta.HasCoordinates() {
		query := meta.Query()
		places, err := a.Search(ctx, query)
		switch {
		case err != nil:
			slog.WarnContext(ctx, "geocoding failed, saving without coordinates", "query", query, "error", err)
		case len(places) == 0:
			slog.WarnContext(ctx, "geocoding found no match, saving without coordinates", "query", query)
		default:
			meta = withPlace(meta, places[0])
		}
	}

	ctx, cancel := context.WithTimeout(ctx, DirectoryTimeout)
	defer cancel()
	return a.dir.CreateCity(ctx, meta)
}

// DeleteCityByName removes the first saved city matching the name, and the
// state and country when given. A missing city is reported in the result,
// not as an error.
func (a *Adapter) DeleteCityByName(ctx context.Context, name, state, country string) (*schema.DeleteResult, error) {
	cities, err := a.listCities(ctx)
	if err != nil {
		return nil, err
	}
	target, found := lo.Find(cities, func(c *schema.City) bool {
		return c != nil && c.ID != "" && c.Matches(name, state, country)
	})
	if !found {
		return &schema.DeleteResult{OK: false, Reason: schema.ReasonNotFound}, nil
	}
	if err := a.deleteCity(ctx, target.ID); err != nil {
		return nil, err
	}
	return &schema.DeleteResult{OK: true, Removed: target}, nil
}

// Weather returns current conditions and the forecast for a saved city
func (a *Adapter) Weather(ctx context.Context, cityId string) (*schema.Weather, error) {
	ctx, cancel := context.WithTimeout(ctx, WeatherTimeout)
	defer cancel()
	return a.dir.Weather(ctx, cityId)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// listCities and deleteCity each run under their own directory timeout
func (a *Adapter) listCities(ctx context.Context) ([]*schema.City, error) {
	ctx, cancel := context.WithTimeout(ctx, DirectoryTimeout)
	defer cancel()
	return a.dir.ListCities(ctx)
}

func (a *Adapter) deleteCity(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, DirectoryTimeout)
	defer cancel()
	_, err := a.dir.DeleteCity(ctx, id)
	return err
}

// withPlace sets the coordinates from a place, and the state where the
// city has none
func withPlace(meta schema.CityMeta, place schema.Place) schema.CityMeta {
	lat, lon := place.Lat, place.Lon
	meta.Lat, meta.Lon = &lat, &lon
	if meta.State == "" {
		meta.State = place.State
	}
	return meta
}
