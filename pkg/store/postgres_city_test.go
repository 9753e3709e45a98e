package store_test

import (
	"context"
	"os"
	"testing"

	// Packages
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	store "github.com/mutablelogic/go-weatherdeck/pkg/store"
	assert "github.com/stretchr/testify/assert"
)

func Test_postgres_city_001(t *testing.T) {
	assert := assert.New(t)
	_, err := store.NewPostgresCityStore(context.TODO(), "")
	assert.ErrorIs(err, weatherdeck.ErrBadParameter)
}

// Runs against a real database when WEATHERDECK_TEST_DATABASE_URL is set.
// The cities table is truncated before each test.
func Test_postgres_city_002(t *testing.T) {
	url := os.Getenv("WEATHERDECK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("WEATHERDECK_TEST_DATABASE_URL not set")
	}
	s, err := store.NewPostgresCityStore(context.TODO(), url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	runCityStoreTests(t, func() schema.CityStore {
		if err := s.Truncate(context.TODO()); err != nil {
			t.Fatal(err)
		}
		return s
	})
}
