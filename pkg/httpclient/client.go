package httpclient

import (
	"context"
	"errors"

	// Packages
	client "github.com/mutablelogic/go-client"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a WeatherDeck HTTP client that wraps the base HTTP client
// and provides typed methods for interacting with the WeatherDeck API.
// The caller identifier is taken from the request context.
type Client struct {
	*client.Client
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new WeatherDeck HTTP client with the given base URL and
// options. The url parameter should point to the API endpoint, e.g.
// "http://localhost:4000/api".
func New(url string, opts ...client.ClientOpt) (*Client, error) {
	c := new(Client)
	if client, err := client.New(append(opts, client.OptEndpoint(url))...); err != nil {
		return nil, err
	} else {
		c.Client = client
	}
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// user returns the request option which sets the caller identifier
func user(ctx context.Context) client.RequestOpt {
	return client.OptReqHeader(weatherdeck.UserHeader, weatherdeck.User(ctx))
}

// do performs the request, converting JSON error bodies returned by the
// server into httpresponse.Err status codes
func (c *Client) do(ctx context.Context, req client.Payload, out any, opts ...client.RequestOpt) error {
	if err := c.DoWithContext(ctx, req, out, opts...); err != nil {
		return responseErr(err)
	}
	return nil
}

func responseErr(err error) error {
	var resp httpresponse.ErrResponse
	if errors.As(err, &resp) && resp.Code != 0 {
		return httpresponse.Err(resp.Code).With(resp.Reason)
	}
	return err
}
