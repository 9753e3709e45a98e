package main

import (
	"errors"
	"fmt"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	version "github.com/mutablelogic/go-weatherdeck/pkg/version"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type CityCommands struct {
	Cities  ListCitiesCommand `cmd:"" name:"cities" help:"List saved cities." group:"CITIES"`
	Add     AddCityCommand    `cmd:"" name:"add" help:"Save a city, geocoding it if no coordinates are given." group:"CITIES"`
	Delete  DeleteCityCommand `cmd:"" name:"delete" help:"Remove a saved city by identifier or name." group:"CITIES"`
	Search  SearchCommand     `cmd:"" name:"search" help:"Search for places by name." group:"CITIES"`
	Weather WeatherCommand    `cmd:"" name:"weather" help:"Show current weather and forecast for a saved city." group:"CITIES"`
	Health  HealthCommand     `cmd:"" name:"health" help:"Check the server is running." group:"CITIES"`
	Version VersionCommand    `cmd:"" name:"version" help:"Print version information."`
}

type ListCitiesCommand struct{}

type AddCityCommand struct {
	Name    string   `arg:"" help:"City name"`
	State   string   `name:"state" help:"State or region"`
	Country string   `name:"country" help:"Country code"`
	Lat     *float64 `name:"lat" help:"Latitude"`
	Lon     *float64 `name:"lon" help:"Longitude"`
}

type DeleteCityCommand struct {
	City    string `arg:"" help:"City identifier or name"`
	State   string `name:"state" help:"State or region, when deleting by name"`
	Country string `name:"country" help:"Country code, when deleting by name"`
}

type SearchCommand struct {
	Query string `arg:"" help:"Place name"`
}

type WeatherCommand struct {
	City string `arg:"" help:"City identifier or name"`
}

type HealthCommand struct{}

type VersionCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListCitiesCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	parent, err := ctx.UserContext(ctx.ctx)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, parent, "ListCitiesCommand")
	defer func() { endSpan(err) }()

	cities, err := client.ListCities(parent)
	if err != nil {
		return err
	}
	for _, city := range cities {
		fmt.Println(city)
	}
	return nil
}

func (cmd *AddCityCommand) Run(ctx *Globals) (err error) {
	adapter, err := ctx.Adapter()
	if err != nil {
		return err
	}
	parent, err := ctx.UserContext(ctx.ctx)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, parent, "AddCityCommand",
		attribute.String("name", cmd.Name),
	)
	defer func() { endSpan(err) }()

	city, err := adapter.AddCity(parent, schema.CityMeta{
		Name:    cmd.Name,
		State:   cmd.State,
		Country: cmd.Country,
		Lat:     cmd.Lat,
		Lon:     cmd.Lon,
	})
	if err != nil {
		return err
	}
	fmt.Println(city)
	return nil
}

func (cmd *DeleteCityCommand) Run(ctx *Globals) (err error) {
	adapter, err := ctx.Adapter()
	if err != nil {
		return err
	}
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	parent, err := ctx.UserContext(ctx.ctx)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, parent, "DeleteCityCommand",
		attribute.String("city", cmd.City),
	)
	defer func() { endSpan(err) }()

	// Try by name first, then as an identifier
	result, err := adapter.DeleteCityByName(parent, cmd.City, cmd.State, cmd.Country)
	if err != nil {
		return err
	} else if result.OK {
		fmt.Println(result.Removed)
		return nil
	}
	city, err := client.DeleteCity(parent, cmd.City)
	if err != nil {
		return err
	}
	fmt.Println(city)
	return nil
}

func (cmd *SearchCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	parent, err := ctx.UserContext(ctx.ctx)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, parent, "SearchCommand",
		attribute.String("q", cmd.Query),
	)
	defer func() { endSpan(err) }()

	places, err := client.SearchPlaces(parent, cmd.Query)
	if err != nil {
		return err
	}
	for _, place := range places {
		fmt.Println(place)
	}
	return nil
}

func (cmd *WeatherCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	parent, err := ctx.UserContext(ctx.ctx)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, parent, "WeatherCommand",
		attribute.String("city", cmd.City),
	)
	defer func() { endSpan(err) }()

	// Resolve a name to the identifier of a saved city
	cityId := cmd.City
	if cities, err := client.ListCities(parent); err != nil {
		return err
	} else if city := findCity(cities, cmd.City); city != nil {
		cityId = city.ID
	}

	weather, err := client.Weather(parent, cityId)
	if err != nil {
		return err
	}
	fmt.Println(weather)
	return nil
}

func (cmd *HealthCommand) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	health, err := client.Health(ctx.ctx)
	if err != nil {
		return err
	} else if !health.OK {
		return errors.New("server is not healthy")
	}
	fmt.Println("ok")
	return nil
}

func (cmd *VersionCommand) Run(ctx *Globals) error {
	fmt.Println(version.Get(ctx.execName))
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// findCity returns the city with the identifier, or the first city whose
// name matches
func findCity(cities []*schema.City, value string) *schema.City {
	value = strings.TrimSpace(value)
	for _, city := range cities {
		if city.ID == value {
			return city
		}
	}
	for _, city := range cities {
		if city.Matches(value, "", "") {
			return city
		}
	}
	return nil
}
