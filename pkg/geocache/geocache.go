package geocache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	// Packages
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	singleflight "golang.org/x/sync/singleflight"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type placests struct {
	ts     time.Time
	places []schema.Place
}

// Cache holds geocoding results for a fixed time. Current and forecast
// lookups pass through to the provider.
type Cache struct {
	weatherdeck.WeatherProvider
	sync.Mutex
	ttl    time.Duration
	places map[string]placests
	group  singleflight.Group
}

var _ weatherdeck.WeatherProvider = (*Cache)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultTTL = 10 * time.Minute

	// FetchTimeout bounds each upstream geocoding request
	FetchTimeout = 10 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func New(provider weatherdeck.WeatherProvider, ttl time.Duration, cap int) *Cache {
	self := new(Cache)
	self.WeatherProvider = provider

	// Set the TTL for each query
	self.ttl = DefaultTTL
	if ttl > 0 {
		self.ttl = ttl
	}

	// Set cache capacity
	self.places = make(map[string]placests, cap)

	// Return the cache
	return self
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Geocode returns cached places for the query, or fetches them. Concurrent
// lookups of the same query share one upstream request. Errors are not cached.
func (c *Cache) Geocode(ctx context.Context, query string, limit int) ([]schema.Place, error) {
	key := cacheKey(query, limit)

	// Cached places
	if places, ok := c.get(key); ok {
		return places, nil
	}

	// Fetch places. The shared fetch is detached from the caller which
	// started it, and each caller waits only as long as its own context.
	ch := c.group.DoChan(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), FetchTimeout)
		defer cancel()
		places, err := c.WeatherProvider.Geocode(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		c.set(key, places)
		return places, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-ch:
		if result.Err != nil {
			return nil, result.Err
		}
		// Return a copy so callers cannot modify the cached slice
		return clone(result.Val.([]schema.Place)), nil
	}
}

// Len returns the number of live entries, pruning expired ones
func (c *Cache) Len() int {
	c.Lock()
	defer c.Unlock()
	now := time.Now()
	for key, entry := range c.places {
		if now.Sub(entry.ts) >= c.ttl {
			delete(c.places, key)
		}
	}
	return len(c.places)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Cache) get(key string) ([]schema.Place, bool) {
	c.Lock()
	defer c.Unlock()
	entry, ok := c.places[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.ts) >= c.ttl {
		// Expired entry: prune before fetching
		delete(c.places, key)
		return nil, false
	}
	return clone(entry.places), true
}

func (c *Cache) set(key string, places []schema.Place) {
	c.Lock()
	defer c.Unlock()
	c.places[key] = placests{ts: time.Now(), places: clone(places)}
}

func cacheKey(query string, limit int) string {
	return fmt.Sprintf("%d:%s", limit, strings.ToLower(strings.Join(strings.Fields(query), " ")))
}

func clone(places []schema.Place) []schema.Place {
	return append(make([]schema.Place, 0, len(places)), places...)
}
