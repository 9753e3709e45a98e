package httpclient

import (
	"context"
	"fmt"
	"net/url"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SearchPlaces returns up to five geocoding candidates for a free-text
// query. An empty query returns an empty list.
func (c *Client) SearchPlaces(ctx context.Context, q string) ([]schema.Place, error) {
	var response []schema.Place
	if err := c.do(ctx, client.NewRequest(), &response, client.OptPath("search"), client.OptQuery(url.Values{"q": {q}}), user(ctx)); err != nil {
		return nil, err
	}
	return response, nil
}

// Weather returns current conditions and the forecast for a saved city.
func (c *Client) Weather(ctx context.Context, cityId string) (*schema.Weather, error) {
	if cityId == "" {
		return nil, fmt.Errorf("city ID cannot be empty")
	}

	var response schema.Weather
	if err := c.do(ctx, client.NewRequest(), &response, client.OptPath("weather"), client.OptQuery(url.Values{"cityId": {cityId}}), user(ctx)); err != nil {
		return nil, err
	}
	return &response, nil
}

// Health returns the server health.
func (c *Client) Health(ctx context.Context) (*schema.Health, error) {
	var response schema.Health
	if err := c.do(ctx, client.NewRequest(), &response, client.OptPath("health")); err != nil {
		return nil, err
	}
	return &response, nil
}
