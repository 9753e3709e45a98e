package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	// Packages
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

func ptr(v float64) *float64 { return &v }

func ranchi() schema.CityMeta {
	return schema.CityMeta{Name: " Ranchi ", State: "Jharkhand", Lat: ptr(23.34), Lon: ptr(85.31)}
}

///////////////////////////////////////////////////////////////////////////////
// SHARED CITY STORE TESTS

type cityStoreTest struct {
	Name string
	Fn   func(*testing.T, schema.CityStore)
}

var cityStoreTests = []cityStoreTest{
	{"CreateSuccess", func(t *testing.T, s schema.CityStore) {
		assert := assert.New(t)
		city, err := s.CreateCity(context.TODO(), "alice", ranchi())
		assert.NoError(err)
		if assert.NotNil(city) {
			assert.NotEmpty(city.ID)
			assert.Equal("alice", city.User)
			assert.Equal("Ranchi", city.Name)
			assert.Equal("IN", city.Country)
			assert.Equal(23.34, city.Lat)
			assert.False(city.Created.IsZero())
		}
	}},
	{"CreateMissingName", func(t *testing.T, s schema.CityStore) {
		assert := assert.New(t)
		_, err := s.CreateCity(context.TODO(), "alice", schema.CityMeta{Name: "  ", Lat: ptr(1), Lon: ptr(1)})
		assert.ErrorIs(err, weatherdeck.ErrBadParameter)
	}},
	{"CreateMissingCoordinates", func(t *testing.T, s schema.CityStore) {
		assert := assert.New(t)
		_, err := s.CreateCity(context.TODO(), "alice", schema.CityMeta{Name: "Atlantis", Lat: ptr(1)})
		assert.ErrorIs(err, weatherdeck.ErrBadParameter)
	}},
	{"CreateConflict", func(t *testing.T, s schema.CityStore) {
		assert := assert.New(t)
		_, err := s.CreateCity(context.TODO(), "alice", ranchi())
		assert.NoError(err)
		meta := ranchi()
		meta.Name = "RANCHI"
		meta.Country = "in"
		_, err = s.CreateCity(context.TODO(), "alice", meta)
		assert.ErrorIs(err, weatherdeck.ErrConflict)

		// Another user may save the same city
		_, err = s.CreateCity(context.TODO(), "bob", ranchi())
		assert.NoError(err)

		// A different state is a different city
		meta = ranchi()
		meta.State = ""
		_, err = s.CreateCity(context.TODO(), "alice", meta)
		assert.NoError(err)
	}},
	{"ListScopedAndOrdered", func(t *testing.T, s schema.CityStore) {
		assert := assert.New(t)
		for _, name := range []string{"Pune", "Delhi", "Agra"} {
			_, err := s.CreateCity(context.TODO(), "alice", schema.CityMeta{Name: name, Lat: ptr(1), Lon: ptr(2)})
			assert.NoError(err)
		}
		_, err := s.CreateCity(context.TODO(), "bob", schema.CityMeta{Name: "Goa", Lat: ptr(1), Lon: ptr(2)})
		assert.NoError(err)

		cities, err := s.ListCities(context.TODO(), "alice")
		assert.NoError(err)
		if assert.Len(cities, 3) {
			for i := 1; i < len(cities); i++ {
				assert.False(cities[i].Created.Before(cities[i-1].Created))
			}
		}
		cities, err = s.ListCities(context.TODO(), "nobody")
		assert.NoError(err)
		assert.NotNil(cities)
		assert.Empty(cities)
	}},
	{"GetAndDelete", func(t *testing.T, s schema.CityStore) {
		assert := assert.New(t)
		city, err := s.CreateCity(context.TODO(), "alice", ranchi())
		if !assert.NoError(err) {
			return
		}
		got, err := s.GetCity(context.TODO(), "alice", city.ID)
		assert.NoError(err)
		assert.Equal(city.Name, got.Name)

		// Other users cannot see or delete it
		_, err = s.GetCity(context.TODO(), "bob", city.ID)
		assert.ErrorIs(err, weatherdeck.ErrNotFound)
		_, err = s.DeleteCity(context.TODO(), "bob", city.ID)
		assert.ErrorIs(err, weatherdeck.ErrNotFound)

		removed, err := s.DeleteCity(context.TODO(), "alice", city.ID)
		assert.NoError(err)
		assert.Equal(city.ID, removed.ID)
		_, err = s.DeleteCity(context.TODO(), "alice", city.ID)
		assert.ErrorIs(err, weatherdeck.ErrNotFound)
		_, err = s.GetCity(context.TODO(), "alice", city.ID)
		assert.ErrorIs(err, weatherdeck.ErrNotFound)
	}},
	{"ConcurrentCreate", func(t *testing.T, s schema.CityStore) {
		assert := assert.New(t)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := s.CreateCity(context.TODO(), "carol", schema.CityMeta{Name: fmt.Sprint("City", i), Lat: ptr(1), Lon: ptr(1)})
				assert.NoError(err)
			}(i)
		}
		wg.Wait()
		cities, err := s.ListCities(context.TODO(), "carol")
		assert.NoError(err)
		assert.Len(cities, 10)
	}},
}

func runCityStoreTests(t *testing.T, factory func() schema.CityStore) {
	for _, test := range cityStoreTests {
		t.Run(test.Name, func(t *testing.T) {
			test.Fn(t, factory())
		})
	}
}
