package schema

import (
	"strings"
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// CityMeta is the user-supplied part of a saved city. Coordinates are
// optional on input and resolved by geocoding when absent.
type CityMeta struct {
	Name    string   `json:"name" jsonschema:"City name"`
	State   string   `json:"state,omitempty" jsonschema:"State or region"`
	Country string   `json:"country,omitempty" jsonschema:"ISO country code, default IN"`
	Lat     *float64 `json:"lat,omitempty" jsonschema:"Latitude"`
	Lon     *float64 `json:"lon,omitempty" jsonschema:"Longitude"`
}

// City is a saved city in a user's directory
type City struct {
	ID      string    `json:"_id"`
	User    string    `json:"userId"`
	Name    string    `json:"name"`
	State   string    `json:"state,omitempty"`
	Country string    `json:"country"`
	Lat     float64   `json:"lat"`
	Lon     float64   `json:"lon"`
	Created time.Time `json:"createdAt"`
}

// Place is a geocoding candidate
type Place struct {
	Name    string  `json:"name"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// DeleteResult is the outcome of deleting a city by name. A missing city is
// a normal outcome with OK false and Reason set.
type DeleteResult struct {
	OK      bool   `json:"ok"`
	Reason  string `json:"reason,omitempty"`
	Removed *City  `json:"removed,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultCountry is applied when a city has no country
	DefaultCountry = "IN"

	// ReasonNotFound is the DeleteResult reason when nothing matched
	ReasonNotFound = "not_found"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Normalise trims the fields and applies the default country
func (m CityMeta) Normalise() CityMeta {
	m.Name = strings.TrimSpace(m.Name)
	m.State = strings.TrimSpace(m.State)
	m.Country = strings.TrimSpace(m.Country)
	if m.Country == "" {
		m.Country = DefaultCountry
	}
	return m
}

// HasCoordinates returns true when both latitude and longitude are set
func (m CityMeta) HasCoordinates() bool {
	return m.Lat != nil && m.Lon != nil
}

// Query returns the most specific geocoding query for the city
func (m CityMeta) Query() string {
	var parts []string
	for _, part := range []string{m.Name, m.State, m.Country} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// Matches returns true when the city has the same name, and the same state
// and country where those are given, ignoring case and surrounding space
func (c City) Matches(name, state, country string) bool {
	if !equalFold(c.Name, name) {
		return false
	}
	if strings.TrimSpace(state) != "" && !equalFold(c.State, state) {
		return false
	}
	if strings.TrimSpace(country) != "" && !equalFold(c.Country, country) {
		return false
	}
	return true
}

// Label returns "Name, State" or "Name" when there is no state
func Label(name, state string) string {
	if state = strings.TrimSpace(state); state != "" {
		return name + ", " + state
	}
	return name
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c City) String() string {
	return types.Stringify(c)
}

func (p Place) String() string {
	return types.Stringify(p)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
