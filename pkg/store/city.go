package store

import (
	"sort"
	"strings"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	lo "github.com/samber/lo"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS - CITY UTILITIES

// newCity validates meta and returns a new City with a unique ID and the
// created timestamp set to now. Coordinates are mandatory.
func newCity(user string, meta schema.CityMeta) (*schema.City, error) {
	meta = meta.Normalise()
	if user = strings.TrimSpace(user); user == "" {
		return nil, weatherdeck.ErrBadParameter.With("user is required")
	}
	if meta.Name == "" {
		return nil, weatherdeck.ErrBadParameter.With("name is required")
	}
	if !meta.HasCoordinates() {
		return nil, weatherdeck.ErrBadParameter.Withf("lat and lon are required for %q", meta.Name)
	}
	return &schema.City{
		ID:      uuid.New().String(),
		User:    user,
		Name:    meta.Name,
		State:   meta.State,
		Country: meta.Country,
		Lat:     *meta.Lat,
		Lon:     *meta.Lon,
		Created: time.Now().UTC(),
	}, nil
}

// checkConflict returns ErrConflict when a city with the same name, state
// and country already exists, ignoring case
func checkConflict(cities []*schema.City, city *schema.City) error {
	if lo.ContainsBy(cities, func(other *schema.City) bool {
		return strings.EqualFold(other.Name, city.Name) &&
			strings.EqualFold(other.State, city.State) &&
			strings.EqualFold(other.Country, city.Country)
	}) {
		return weatherdeck.ErrConflict.Withf("%s (%s) already saved", schema.Label(city.Name, city.State), city.Country)
	}
	return nil
}

// sortCities orders cities oldest first, then by identifier
func sortCities(cities []*schema.City) {
	sort.SliceStable(cities, func(i, j int) bool {
		if cities[i].Created.Equal(cities[j].Created) {
			return cities[i].ID < cities[j].ID
		}
		return cities[i].Created.Before(cities[j].Created)
	})
}
