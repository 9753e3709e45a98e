package httphandler

import (
	"context"
	"net/http"
	"sync"
	"time"

	// Packages
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
	manager "github.com/mutablelogic/go-weatherdeck/pkg/manager"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type searchRequest struct {
	Q string `json:"q"`
}

type weatherRequest struct {
	CityID string `json:"cityId"`
}

// cooldown spaces out requests from the same caller
type cooldown struct {
	sync.Mutex
	interval time.Duration
	next     map[string]time.Time
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// cooldownPrune is the number of callers tracked before stale ones are removed
const cooldownPrune = 1024

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /search
func SearchHandler(manager *manager.Manager, interval time.Duration) (string, http.HandlerFunc, *openapi.PathItem) {
	throttle := &cooldown{interval: interval, next: make(map[string]time.Time)}
	return "/search", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				var req searchRequest
				if err := httprequest.Query(r.URL.Query(), &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}
				if err := throttle.wait(r.Context(), caller(r, "")); err != nil {
					_ = httpresponse.Error(w, httpresponse.Err(http.StatusRequestTimeout).With(err))
					return
				}
				resp, err := manager.SearchPlaces(r.Context(), req.Q)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Search for places by name",
			},
		})
}

// Path: /weather
func WeatherHandler(manager *manager.Manager) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/weather", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				var req weatherRequest
				if err := httprequest.Query(r.URL.Query(), &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				} else if req.CityID == "" {
					_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With("cityId is required"))
					return
				}
				resp, err := manager.Weather(r.Context(), caller(r, ""), req.CityID)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Get: &openapi.Operation{
				Description: "Current conditions and forecast for a saved city",
			},
		})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// wait reserves the caller's next slot and blocks until it arrives, or the
// context is done, in which case the reservation is given back
func (c *cooldown) wait(ctx context.Context, user string) error {
	if c.interval <= 0 {
		return nil
	}

	c.Lock()
	now := time.Now()
	if len(c.next) >= cooldownPrune {
		for key, next := range c.next {
			if next.Before(now) {
				delete(c.next, key)
			}
		}
	}
	slot := now
	prev, exists := c.next[user]
	if exists && prev.After(now) {
		slot = prev
	}
	reserved := slot.Add(c.interval)
	c.next[user] = reserved
	c.Unlock()

	// Delay until the slot
	delay := slot.Sub(now)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		c.release(user, reserved, prev, exists)
		return ctx.Err()
	}
}

// release gives back a reservation which was not used, unless a later
// request has already reserved the slot after it
func (c *cooldown) release(user string, reserved, prev time.Time, exists bool) {
	c.Lock()
	defer c.Unlock()
	if next, ok := c.next[user]; !ok || !next.Equal(reserved) {
		return
	}
	if exists {
		c.next[user] = prev
	} else {
		delete(c.next, user)
	}
}
