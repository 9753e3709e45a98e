package assistant

import (
	"context"
	"fmt"

	// Packages
	citytools "github.com/mutablelogic/go-weatherdeck/pkg/citytools"
	intent "github.com/mutablelogic/go-weatherdeck/pkg/intent"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// fastPath answers the add, delete and weather lookup phrasings without
// the model. It returns false when the text has none of them.
func (a *Assistant) fastPath(ctx context.Context, text string) (*schema.ChatResponse, bool, error) {
	switch in := intent.Detect(text); in.Kind {
	case intent.Add:
		response, err := a.fastAdd(ctx, in)
		return response, true, err
	case intent.Delete:
		response, err := a.fastDelete(ctx, in)
		return response, true, err
	case intent.WeatherQuery:
		response, err := a.fastWeather(ctx, in)
		return response, true, err
	default:
		return nil, false, nil
	}
}

func (a *Assistant) fastAdd(ctx context.Context, in intent.Intent) (*schema.ChatResponse, error) {
	city, err := a.adapter.AddCity(ctx, schema.CityMeta{
		Name:    in.Name,
		State:   in.State,
		Country: in.Country,
	})
	if err != nil {
		return nil, err
	}
	return &schema.ChatResponse{
		Reply:     fmt.Sprintf("Added %s (%s).", bold(city.Name, city.State), city.Country),
		ToolsUsed: []string{citytools.AddCity},
		Data: []schema.OperationResult{
			{Name: citytools.AddCity, OK: true, Output: city},
		},
	}, nil
}

func (a *Assistant) fastDelete(ctx context.Context, in intent.Intent) (*schema.ChatResponse, error) {
	result, err := a.adapter.DeleteCityByName(ctx, in.Name, in.State, in.Country)
	if err != nil {
		return nil, err
	}
	response := &schema.ChatResponse{
		ToolsUsed: []string{citytools.DeleteCity},
		Data: []schema.OperationResult{
			{Name: citytools.DeleteCity, OK: result.OK, Output: result},
		},
	}
	if result.OK && result.Removed != nil {
		response.Reply = fmt.Sprintf("Deleted %s (%s).", bold(result.Removed.Name, result.Removed.State), result.Removed.Country)
	} else {
		response.Reply = fmt.Sprintf("I couldn't find %s in your list.", bold(in.Name, in.State))
	}
	return response, nil
}

func (a *Assistant) fastWeather(ctx context.Context, in intent.Intent) (*schema.ChatResponse, error) {
	places, err := a.adapter.Search(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return &schema.ChatResponse{
			Reply:     fmt.Sprintf("I couldn't find \"%s\". Try with state name too.", in.Name),
			ToolsUsed: []string{citytools.SearchCities},
		}, nil
	}
	top := places[0]
	return &schema.ChatResponse{
		Reply:     fmt.Sprintf("Found %s (%s). You can say \"Add city: %s\".", bold(top.Name, top.State), top.Country, schema.Label(top.Name, top.State)),
		ToolsUsed: []string{citytools.SearchCities},
		Data: []schema.OperationResult{
			{Name: citytools.SearchCities, OK: true, Output: places},
		},
	}, nil
}

// bold returns the name in bold followed by the state, if any
func bold(name, state string) string {
	return schema.Label("**"+name+"**", state)
}
