package store

import (
	"context"
	"sync"

	// Packages
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	lo "github.com/samber/lo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// MemoryCityStore is an in-memory implementation of CityStore.
// It is safe for concurrent use.
type MemoryCityStore struct {
	mu     sync.RWMutex
	cities map[string]*schema.City
}

var _ schema.CityStore = (*MemoryCityStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMemoryCityStore creates a new empty in-memory city store.
func NewMemoryCityStore() *MemoryCityStore {
	return &MemoryCityStore{
		cities: make(map[string]*schema.City),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateCity saves a new city for the user.
func (m *MemoryCityStore) CreateCity(_ context.Context, user string, meta schema.CityMeta) (*schema.City, error) {
	city, err := newCity(user, meta)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkConflict(m.list(city.User), city); err != nil {
		return nil, err
	}
	m.cities[city.ID] = city

	return copyCity(city), nil
}

// ListCities returns the user's cities, oldest first.
func (m *MemoryCityStore) ListCities(_ context.Context, user string) ([]*schema.City, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := lo.Map(m.list(user), func(c *schema.City, _ int) *schema.City {
		return copyCity(c)
	})
	sortCities(result)
	return result, nil
}

// GetCity returns one of the user's cities.
func (m *MemoryCityStore) GetCity(_ context.Context, user, id string) (*schema.City, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	city, ok := m.cities[id]
	if !ok || city.User != user {
		return nil, weatherdeck.ErrNotFound.Withf("city %q", id)
	}
	return copyCity(city), nil
}

// DeleteCity removes one of the user's cities and returns it.
func (m *MemoryCityStore) DeleteCity(_ context.Context, user, id string) (*schema.City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	city, ok := m.cities[id]
	if !ok || city.User != user {
		return nil, weatherdeck.ErrNotFound.Withf("city %q", id)
	}
	delete(m.cities, id)
	return city, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (m *MemoryCityStore) list(user string) []*schema.City {
	return lo.Filter(lo.Values(m.cities), func(c *schema.City, _ int) bool {
		return c.User == user
	})
}

func copyCity(c *schema.City) *schema.City {
	v := *c
	return &v
}
