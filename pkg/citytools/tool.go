package citytools

import (
	"context"
	"encoding/json"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	tool "github.com/mutablelogic/go-weatherdeck/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type searchCities struct{ *Adapter }
type addCity struct{ *Adapter }
type deleteCity struct{ *Adapter }
type getWeather struct{ *Adapter }

var _ tool.Tool = (*searchCities)(nil)
var _ tool.Tool = (*addCity)(nil)
var _ tool.Tool = (*deleteCity)(nil)
var _ tool.Tool = (*getWeather)(nil)
var _ tool.Preparer = (*addCity)(nil)
var _ tool.Preparer = (*deleteCity)(nil)

// SearchRequest is the input of searchCities
type SearchRequest struct {
	Query string `json:"q" jsonschema:"Free text place query, for example Ranchi, Jharkhand"`
}

// AddRequest is the input of addCity
type AddRequest struct {
	Name    string  `json:"name" jsonschema:"City name"`
	State   string  `json:"state,omitempty" jsonschema:"State or region"`
	Country string  `json:"country,omitempty" jsonschema:"ISO country code"`
	Lat     float64 `json:"lat,omitempty" jsonschema:"Latitude"`
	Lon     float64 `json:"lon,omitempty" jsonschema:"Longitude"`
}

// DeleteRequest is the input of deleteCity
type DeleteRequest struct {
	Name    string `json:"name" jsonschema:"City name"`
	State   string `json:"state,omitempty" jsonschema:"State or region"`
	Country string `json:"country,omitempty" jsonschema:"ISO country code"`
}

// WeatherRequest is the input of getWeather
type WeatherRequest struct {
	CityID string `json:"cityId" jsonschema:"Identifier of a saved city"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	SearchCities = "searchCities"
	AddCity      = "addCity"
	DeleteCity   = "deleteCity"
	GetWeather   = "getWeather"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Tools returns the four weather operations, in catalog order
func (a *Adapter) Tools() []tool.Tool {
	return []tool.Tool{
		&searchCities{a},
		&addCity{a},
		&deleteCity{a},
		&getWeather{a},
	}
}

// Toolkit returns a toolkit holding the weather operations
func (a *Adapter) Toolkit() (*tool.Toolkit, error) {
	return tool.NewToolkit(a.Tools()...)
}

///////////////////////////////////////////////////////////////////////////////
// SEARCH CITIES

func (*searchCities) Name() string {
	return SearchCities
}

func (*searchCities) Description() string {
	return "Search worldwide cities by text query"
}

func (*searchCities) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[SearchRequest](nil)
}

func (t *searchCities) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req SearchRequest
	if err := unmarshal(input, &req); err != nil {
		return nil, err
	}
	return t.Search(ctx, req.Query)
}

///////////////////////////////////////////////////////////////////////////////
// ADD CITY

func (*addCity) Name() string {
	return AddCity
}

func (*addCity) Description() string {
	return "Add a city to the user's saved list. If lat/lon are omitted, the server will geocode automatically. Default country=IN if not provided."
}

func (*addCity) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[AddRequest](nil)
}

// Prepare defaults the country
func (*addCity) Prepare(_ context.Context, args map[string]any) map[string]any {
	return withDefaultCountry(args)
}

func (t *addCity) Run(ctx context.Context, input json.RawMessage) (any, error) {
	// Coordinates are pointers, so absent and zero are distinct
	var meta schema.CityMeta
	if err := unmarshal(input, &meta); err != nil {
		return nil, err
	}
	if strings.TrimSpace(meta.Name) == "" {
		return nil, weatherdeck.ErrBadParameter.With("name is required")
	}
	return t.AddCity(ctx, meta)
}

///////////////////////////////////////////////////////////////////////////////
// DELETE CITY

func (*deleteCity) Name() string {
	return DeleteCity
}

func (*deleteCity) Description() string {
	return "Delete a saved city by name and optional state/country (default country=IN)."
}

func (*deleteCity) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[DeleteRequest](nil)
}

// Prepare defaults the country
func (*deleteCity) Prepare(_ context.Context, args map[string]any) map[string]any {
	return withDefaultCountry(args)
}

func (t *deleteCity) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req DeleteRequest
	if err := unmarshal(input, &req); err != nil {
		return nil, err
	}
	return t.DeleteCityByName(ctx, req.Name, req.State, req.Country)
}

///////////////////////////////////////////////////////////////////////////////
// GET WEATHER

func (*getWeather) Name() string {
	return GetWeather
}

func (*getWeather) Description() string {
	return "Fetch current weather + 5-day forecast for a saved city"
}

func (*getWeather) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[WeatherRequest](nil)
}

func (t *getWeather) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req WeatherRequest
	if err := unmarshal(input, &req); err != nil {
		return nil, err
	}
	if req.CityID == "" {
		return nil, weatherdeck.ErrBadParameter.With("cityId is required")
	}
	return t.Weather(ctx, req.CityID)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func unmarshal(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	if err := json.Unmarshal(input, v); err != nil {
		return weatherdeck.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
	}
	return nil
}

// withDefaultCountry sets the country when it is absent or blank
func withDefaultCountry(args map[string]any) map[string]any {
	if country, ok := args["country"].(string); !ok || strings.TrimSpace(country) == "" {
		args["country"] = schema.DefaultCountry
	}
	return args
}
