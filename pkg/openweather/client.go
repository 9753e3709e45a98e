/*
openweather implements an API client for the OpenWeather geocoding, current
weather and 5 day forecast endpoints.
https://openweathermap.org/api
*/
package openweather

import (
	"context"
	"net/url"
	"strconv"

	// Packages
	client "github.com/mutablelogic/go-client"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	key string
}

var _ weatherdeck.WeatherProvider = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.openweathermap.org"
	units    = "metric"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. The endpoint can be replaced with client.OptEndpoint.
func New(ApiKey string, opts ...client.ClientOpt) (*Client, error) {
	// Check for missing API key
	if ApiKey == "" {
		return nil, weatherdeck.ErrBadParameter.With("missing OPENWEATHER_API_KEY")
	}

	// Create client
	opts = append([]client.ClientOpt{client.OptEndpoint(endPoint)}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client: client,
		key:    ApiKey,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Geocode returns up to limit places matching a free-text query, in the
// order returned by the provider
func (c *Client) Geocode(ctx context.Context, query string, limit int) ([]schema.Place, error) {
	var response []geoDirect

	// Query parameters
	values := c.values()
	values.Set("q", query)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	// Request -> Response
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("geo", "1.0", "direct"), client.OptQuery(values)); err != nil {
		return nil, err
	}

	// Convert to places
	result := make([]schema.Place, 0, len(response))
	for _, place := range response {
		result = append(result, place.Place())
	}
	return result, nil
}

// Current returns the current conditions at a coordinate
func (c *Client) Current(ctx context.Context, lat, lon float64) (*schema.Current, error) {
	var response currentWeather

	// Request -> Response
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("data", "2.5", "weather"), client.OptQuery(c.coordinates(lat, lon))); err != nil {
		return nil, err
	}

	return response.Current(), nil
}

// Forecast returns the 5 day forecast in 3 hour steps at a coordinate
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]schema.ForecastItem, error) {
	var response forecast

	// Request -> Response
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("data", "2.5", "forecast"), client.OptQuery(c.coordinates(lat, lon))); err != nil {
		return nil, err
	}

	result := make([]schema.ForecastItem, 0, len(response.List))
	for _, item := range response.List {
		result = append(result, item.ForecastItem())
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) values() url.Values {
	values := url.Values{}
	values.Set("appid", c.key)
	return values
}

func (c *Client) coordinates(lat, lon float64) url.Values {
	values := c.values()
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("units", units)
	return values
}
