package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	jsonschema "github.com/mutablelogic/go-server/pkg/jsonschema"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	manager "github.com/mutablelogic/go-weatherdeck/pkg/manager"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Router is satisfied by the go-server httprouter.Router
type Router interface {
	RegisterPath(path string, params *jsonschema.Schema, pathitem httprequest.PathItem) error
}

// route adapts a handler and its OpenAPI description to a path item
type route struct {
	handler http.HandlerFunc
	spec    *openapi.PathItem
}

var _ httprequest.PathItem = (*route)(nil)

// statusWriter records the status code written by a handler
type statusWriter struct {
	http.ResponseWriter
	status int
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultCooldown is the least time between searches by the same caller
	DefaultCooldown = 500 * time.Millisecond
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers registers the API handlers with the router, under the
// router prefix. When logging is true, every request is logged once it
// completes.
func RegisterHandlers(manager *manager.Manager, router Router, logging bool) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, handler http.HandlerFunc, spec *openapi.PathItem) {
		if logging {
			handler = logRequest(handler)
		}
		path = strings.TrimPrefix(path, "/")
		result = errors.Join(result, router.RegisterPath(path, nil, &route{handler, spec}))
	}

	// Register handlers
	register(HealthHandler())
	register(CityHandler(manager))
	register(CityGetHandler(manager))
	register(SearchHandler(manager, DefaultCooldown))
	register(WeatherHandler(manager))
	register(ChatHandler(manager))
	register(DiagWeatherHandler(manager))
	register(DiagModelHandler(manager))

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PATH ITEM

func (r *route) Handler() http.HandlerFunc {
	return r.handler
}

func (r *route) Spec(string, *jsonschema.Schema) *openapi.PathItem {
	return r.spec
}

// WrapHandler wraps the handler when the path item describes the method
func (r *route) WrapHandler(method string, fn func(http.HandlerFunc) http.HandlerFunc) {
	if r.spec == nil || r.operation(method) == nil {
		return
	}
	r.handler = fn(r.handler)
}

func (r *route) operation(method string) *openapi.Operation {
	switch method {
	case http.MethodGet:
		return r.spec.Get
	case http.MethodPost:
		return r.spec.Post
	case http.MethodDelete:
		return r.spec.Delete
	default:
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// caller returns the caller identifier: the x-user-id header, then the
// identifier in the request body, then the demo user
func caller(r *http.Request, body string) string {
	if user := strings.TrimSpace(r.Header.Get(weatherdeck.UserHeader)); user != "" {
		return user
	}
	if user := strings.TrimSpace(body); user != "" {
		return user
	}
	return weatherdeck.DefaultUser
}

// logRequest logs the method, path, status and duration of each request
func logRequest(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		handler(sw, r)
		slog.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
			"user", caller(r, ""),
		)
	}
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// httpErr converts a weatherdeck.Err to an httpresponse.Err, preserving the
// original error message. Unknown error codes map to 500.
func httpErr(err error) error {
	var code weatherdeck.Err
	if !errors.As(err, &code) {
		return err
	}
	switch code {
	case weatherdeck.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case weatherdeck.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case weatherdeck.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case weatherdeck.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	case weatherdeck.ErrTooManyRequests:
		return httpresponse.Err(http.StatusTooManyRequests).With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
