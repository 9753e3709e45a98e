package openweather

import (
	"time"

	// Packages
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// RESPONSE TYPES

// geoDirect is one result of geo/1.0/direct
type geoDirect struct {
	Name    string  `json:"name"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainValues struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

type clouds struct {
	All int `json:"all"`
}

// currentWeather is the response of data/2.5/weather
type currentWeather struct {
	Weather []condition `json:"weather"`
	Main    mainValues  `json:"main"`
	Wind    wind        `json:"wind"`
	Clouds  clouds      `json:"clouds"`
	Dt      int64       `json:"dt"`
	Sys     struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Name string `json:"name"`
}

// forecast is the response of data/2.5/forecast
type forecast struct {
	Count int            `json:"cnt"`
	List  []forecastItem `json:"list"`
}

type forecastItem struct {
	Dt      int64       `json:"dt"`
	Main    mainValues  `json:"main"`
	Weather []condition `json:"weather"`
	Wind    wind        `json:"wind"`
	Pop     float64     `json:"pop"`
}

///////////////////////////////////////////////////////////////////////////////
// CONVERSION

func (g geoDirect) Place() schema.Place {
	return schema.Place{
		Name:    g.Name,
		State:   g.State,
		Country: g.Country,
		Lat:     g.Lat,
		Lon:     g.Lon,
	}
}

func (w currentWeather) Current() *schema.Current {
	current := &schema.Current{
		Time:      unixTime(w.Dt),
		Temp:      w.Main.Temp,
		FeelsLike: w.Main.FeelsLike,
		TempMin:   w.Main.TempMin,
		TempMax:   w.Main.TempMax,
		Humidity:  w.Main.Humidity,
		Pressure:  w.Main.Pressure,
		WindSpeed: w.Wind.Speed,
		WindDeg:   w.Wind.Deg,
		Clouds:    w.Clouds.All,
		Sunrise:   unixTime(w.Sys.Sunrise),
		Sunset:    unixTime(w.Sys.Sunset),
	}
	if len(w.Weather) > 0 {
		current.Description = w.Weather[0].Description
		current.Icon = w.Weather[0].Icon
	}
	return current
}

func (f forecastItem) ForecastItem() schema.ForecastItem {
	item := schema.ForecastItem{
		Time:      unixTime(f.Dt),
		Temp:      f.Main.Temp,
		TempMin:   f.Main.TempMin,
		TempMax:   f.Main.TempMax,
		Humidity:  f.Main.Humidity,
		WindSpeed: f.Wind.Speed,
		Pop:       f.Pop,
	}
	if len(f.Weather) > 0 {
		item.Description = f.Weather[0].Description
		item.Icon = f.Weather[0].Icon
	}
	return item
}

// unixTime returns the zero time for a zero timestamp
func unixTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
