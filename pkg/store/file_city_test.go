package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	// Packages
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	store "github.com/mutablelogic/go-weatherdeck/pkg/store"
	assert "github.com/stretchr/testify/assert"
)

func Test_file_city_001(t *testing.T) {
	assert := assert.New(t)
	_, err := store.NewFileCityStore("")
	assert.ErrorIs(err, weatherdeck.ErrBadParameter)

	s, err := store.NewFileCityStore(filepath.Join(t.TempDir(), "a", "b"))
	assert.NoError(err)
	assert.NotNil(s)
}

func Test_file_city_002(t *testing.T) {
	runCityStoreTests(t, func() schema.CityStore {
		s, err := store.NewFileCityStore(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		return s
	})
}

func Test_file_city_003(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	s1, err := store.NewFileCityStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	city, err := s1.CreateCity(context.TODO(), "../../etc/passwd", ranchi())
	if !assert.NoError(err) {
		return
	}

	// Documents stay inside the directory
	entries, err := os.ReadDir(dir)
	assert.NoError(err)
	assert.Len(entries, 1)

	// A second store over the same directory sees the city
	s2, err := store.NewFileCityStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	cities, err := s2.ListCities(context.TODO(), "../../etc/passwd")
	assert.NoError(err)
	if assert.Len(cities, 1) {
		assert.Equal(city.ID, cities[0].ID)
		assert.Equal("Jharkhand", cities[0].State)
	}
}
