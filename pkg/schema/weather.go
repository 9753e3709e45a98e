package schema

import (
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Current is the current conditions at a location, in metric units
type Current struct {
	Time        time.Time `json:"time"`
	Temp        float64   `json:"temp"`
	FeelsLike   float64   `json:"feelsLike"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Humidity    int       `json:"humidity"`
	Pressure    int       `json:"pressure"`
	WindSpeed   float64   `json:"windSpeed"`
	WindDeg     int       `json:"windDeg"`
	Clouds      int       `json:"clouds"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Sunrise     time.Time `json:"sunrise,omitzero"`
	Sunset      time.Time `json:"sunset,omitzero"`
}

// ForecastItem is one step of the forecast series
type ForecastItem struct {
	Time        time.Time `json:"time"`
	Temp        float64   `json:"temp"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Pop         float64   `json:"pop"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
}

// Weather is the current conditions and forecast for a saved city
type Weather struct {
	City     City           `json:"city"`
	Current  *Current       `json:"current"`
	Forecast []ForecastItem `json:"forecast"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (w Weather) String() string {
	return types.Stringify(w)
}
