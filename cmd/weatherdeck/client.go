package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	// Packages
	uuid "github.com/google/uuid"
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	citytools "github.com/mutablelogic/go-weatherdeck/pkg/citytools"
	httpclient "github.com/mutablelogic/go-weatherdeck/pkg/httpclient"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	cacheKeyUser = "uid"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Client returns an httpclient.Client for the configured server
func (g *Globals) Client() (*httpclient.Client, error) {
	endpoint, err := endpoint(g.config.Server.Addr, g.config.Server.Prefix, g.config.Server.TLSName, g.config.Server.TLSCert != "")
	if err != nil {
		return nil, err
	}
	return httpclient.New(endpoint, g.clientOpts()...)
}

// Adapter returns the city operations over the configured server
func (g *Globals) Adapter() (*citytools.Adapter, error) {
	client, err := g.Client()
	if err != nil {
		return nil, err
	}
	return citytools.New(client)
}

// UserContext returns a context carrying the caller identifier: the --user
// flag, or an identifier generated once and kept in the cache
func (g *Globals) UserContext(ctx context.Context) (context.Context, error) {
	user := strings.TrimSpace(g.User)
	if user == "" {
		user = g.cache.GetString(cacheKeyUser)
	}
	if user == "" {
		user = "u_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		if err := g.cache.Set(cacheKeyUser, user); err != nil {
			return nil, err
		}
	}
	return weatherdeck.WithUser(ctx, user), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// clientOpts returns the options for outbound REST clients
func (g *Globals) clientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	if g.HTTP.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.HTTP.Timeout))
	}
	return opts
}

// endpoint returns the API URL for a listen address. An empty host is
// localhost, or the TLS server name when serving TLS.
func endpoint(addr, prefix, tlsName string, secure bool) (string, error) {
	scheme := "http"
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", err
	}

	// Default host to localhost if empty (e.g., ":4000")
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
		if secure && tlsName != "" {
			host = tlsName
		}
	}

	// Parse port
	portn, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return "", err
	}
	if secure || portn == 443 {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, strconv.FormatUint(portn, 10)), types.NormalisePath(prefix)), nil
}
