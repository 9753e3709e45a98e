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

// ListCities returns the caller's saved cities, oldest first.
func (c *Client) ListCities(ctx context.Context) ([]*schema.City, error) {
	var response []*schema.City
	if err := c.do(ctx, client.NewRequest(), &response, client.OptPath("cities"), user(ctx)); err != nil {
		return nil, err
	}
	return response, nil
}

// GetCity returns one of the caller's saved cities.
func (c *Client) GetCity(ctx context.Context, id string) (*schema.City, error) {
	if id == "" {
		return nil, fmt.Errorf("city ID cannot be empty")
	}

	var response schema.City
	if err := c.do(ctx, client.NewRequest(), &response, client.OptPath("cities", id), user(ctx)); err != nil {
		return nil, err
	}
	return &response, nil
}

// CreateCity saves a city for the caller.
func (c *Client) CreateCity(ctx context.Context, meta schema.CityMeta) (*schema.City, error) {
	req, err := client.NewJSONRequest(meta)
	if err != nil {
		return nil, err
	}

	var response schema.City
	if err := c.do(ctx, req, &response, client.OptPath("cities"), user(ctx)); err != nil {
		return nil, err
	}
	return &response, nil
}

// DeleteCity removes one of the caller's saved cities and returns it.
func (c *Client) DeleteCity(ctx context.Context, id string) (*schema.City, error) {
	if id == "" {
		return nil, fmt.Errorf("city ID cannot be empty")
	}

	var response schema.City
	if err := c.do(ctx, client.MethodDelete, &response, client.OptPath("cities"), client.OptQuery(url.Values{"id": {id}}), user(ctx)); err != nil {
		return nil, err
	}
	return &response, nil
}
