package manager_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	assistant "github.com/mutablelogic/go-weatherdeck/pkg/assistant"
	citytools "github.com/mutablelogic/go-weatherdeck/pkg/citytools"
	manager "github.com/mutablelogic/go-weatherdeck/pkg/manager"
	opt "github.com/mutablelogic/go-weatherdeck/pkg/opt"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK TYPES

type mockProvider struct {
	sync.Mutex
	places   []schema.Place
	err      error
	geocodes int
}

func (p *mockProvider) Geocode(_ context.Context, query string, limit int) ([]schema.Place, error) {
	p.Lock()
	defer p.Unlock()
	p.geocodes++
	if p.err != nil {
		return nil, p.err
	}
	if len(p.places) > limit {
		return p.places[:limit], nil
	}
	return p.places, nil
}

func (p *mockProvider) Current(_ context.Context, lat, lon float64) (*schema.Current, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &schema.Current{Temp: lat, Description: "clear sky"}, nil
}

func (p *mockProvider) Forecast(_ context.Context, lat, lon float64) ([]schema.ForecastItem, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []schema.ForecastItem{{Temp: lon}, {Temp: lon + 1}}, nil
}

type mockGenerator struct {
	reply string
	err   error
}

func (g *mockGenerator) Generate(context.Context, string, []schema.Turn, ...opt.Opt) (*schema.Turn, error) {
	if g.err != nil {
		return nil, g.err
	}
	turn := schema.NewTextTurn(schema.RoleModel, g.reply)
	return &turn, nil
}

// mockDirectory is never reached by the tests below
type mockDirectory struct {
	citytools.Directory
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

func coordinates(lat, lon float64) (*float64, *float64) {
	return &lat, &lon
}

func newAssistant(t *testing.T, g weatherdeck.Generator) *assistant.Assistant {
	t.Helper()
	adapter, err := citytools.New(mockDirectory{})
	if err != nil {
		t.Fatal(err)
	}
	a, err := assistant.New(g, adapter, assistant.Config{Model: "test-model"})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

///////////////////////////////////////////////////////////////////////////////
// CITIES

// Test create trims fields and applies the default country
func Test_city_001(t *testing.T) {
	assert := assert.New(t)
	m, err := manager.NewManager()
	if !assert.NoError(err) {
		return
	}

	lat, lon := coordinates(23.34, 85.31)
	city, err := m.CreateCity(context.TODO(), "alice", schema.CityMeta{Name: "  Ranchi ", State: "Jharkhand", Lat: lat, Lon: lon})
	if !assert.NoError(err) {
		return
	}
	assert.NotEmpty(city.ID)
	assert.Equal("Ranchi", city.Name)
	assert.Equal("IN", city.Country)
	assert.Equal("alice", city.User)
}

// Test list is scoped to the user and never nil
func Test_city_002(t *testing.T) {
	assert := assert.New(t)
	m, err := manager.NewManager()
	if !assert.NoError(err) {
		return
	}

	cities, err := m.ListCities(context.TODO(), "nobody")
	assert.NoError(err)
	assert.NotNil(cities)
	assert.Empty(cities)

	lat, lon := coordinates(48.85, 2.35)
	city, err := m.CreateCity(context.TODO(), "alice", schema.CityMeta{Name: "Paris", Country: "FR", Lat: lat, Lon: lon})
	if !assert.NoError(err) {
		return
	}

	cities, err = m.ListCities(context.TODO(), "alice")
	assert.NoError(err)
	assert.Len(cities, 1)

	_, err = m.GetCity(context.TODO(), "bob", city.ID)
	assert.ErrorIs(err, weatherdeck.ErrNotFound)

	removed, err := m.DeleteCity(context.TODO(), "alice", city.ID)
	assert.NoError(err)
	assert.Equal(city.ID, removed.ID)

	_, err = m.DeleteCity(context.TODO(), "alice", city.ID)
	assert.ErrorIs(err, weatherdeck.ErrNotFound)
}

// Test create without coordinates and duplicates are rejected
func Test_city_003(t *testing.T) {
	assert := assert.New(t)
	m, err := manager.NewManager()
	if !assert.NoError(err) {
		return
	}

	_, err = m.CreateCity(context.TODO(), "alice", schema.CityMeta{Name: "Ranchi"})
	assert.ErrorIs(err, weatherdeck.ErrBadParameter)

	lat, lon := coordinates(23.34, 85.31)
	_, err = m.CreateCity(context.TODO(), "alice", schema.CityMeta{Name: "Ranchi", Lat: lat, Lon: lon})
	assert.NoError(err)
	_, err = m.CreateCity(context.TODO(), "alice", schema.CityMeta{Name: "RANCHI", Country: "in", Lat: lat, Lon: lon})
	assert.ErrorIs(err, weatherdeck.ErrConflict)
}

// Test options reject nil values
func Test_city_004(t *testing.T) {
	assert := assert.New(t)
	_, err := manager.NewManager(manager.WithStore(nil))
	assert.ErrorIs(err, weatherdeck.ErrBadParameter)
	_, err = manager.NewManager(manager.WithWeather(nil, "key"))
	assert.ErrorIs(err, weatherdeck.ErrBadParameter)
	_, err = manager.NewManager(manager.WithAssistant(nil))
	assert.ErrorIs(err, weatherdeck.ErrBadParameter)
}

///////////////////////////////////////////////////////////////////////////////
// SEARCH AND WEATHER

// Test empty query does not reach the provider
func Test_weather_001(t *testing.T) {
	assert := assert.New(t)
	provider := &mockProvider{places: []schema.Place{{Name: "Paris", Country: "FR"}}}
	m, err := manager.NewManager(manager.WithWeather(provider, "key"))
	if !assert.NoError(err) {
		return
	}

	places, err := m.SearchPlaces(context.TODO(), "   ")
	assert.NoError(err)
	assert.NotNil(places)
	assert.Empty(places)
	assert.Zero(provider.geocodes)
}

// Test search returns at most five places and caches results
func Test_weather_002(t *testing.T) {
	assert := assert.New(t)
	provider := &mockProvider{}
	for i := 0; i < 8; i++ {
		provider.places = append(provider.places, schema.Place{Name: "Springfield", Country: "US"})
	}
	m, err := manager.NewManager(manager.WithWeather(provider, "key"))
	if !assert.NoError(err) {
		return
	}

	places, err := m.SearchPlaces(context.TODO(), "Springfield")
	assert.NoError(err)
	assert.Len(places, 5)

	places, err = m.SearchPlaces(context.TODO(), "springfield ")
	assert.NoError(err)
	assert.Len(places, 5)
	assert.Equal(1, provider.geocodes)
}

// Test search without a provider
func Test_weather_003(t *testing.T) {
	assert := assert.New(t)
	m, err := manager.NewManager()
	if !assert.NoError(err) {
		return
	}
	_, err = m.SearchPlaces(context.TODO(), "Paris")
	assert.ErrorIs(err, weatherdeck.ErrNotConfigured)
}

// Test weather for a saved city
func Test_weather_004(t *testing.T) {
	assert := assert.New(t)
	provider := &mockProvider{}
	m, err := manager.NewManager(manager.WithWeather(provider, "key"))
	if !assert.NoError(err) {
		return
	}

	lat, lon := coordinates(23.34, 85.31)
	city, err := m.CreateCity(context.TODO(), "alice", schema.CityMeta{Name: "Ranchi", Lat: lat, Lon: lon})
	if !assert.NoError(err) {
		return
	}

	weather, err := m.Weather(context.TODO(), "alice", city.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(city.ID, weather.City.ID)
	if assert.NotNil(weather.Current) {
		assert.Equal(23.34, weather.Current.Temp)
	}
	assert.Len(weather.Forecast, 2)

	_, err = m.Weather(context.TODO(), "bob", city.ID)
	assert.ErrorIs(err, weatherdeck.ErrNotFound)
}

// Test provider errors are returned
func Test_weather_005(t *testing.T) {
	assert := assert.New(t)
	provider := &mockProvider{}
	m, err := manager.NewManager(manager.WithWeather(provider, "key"))
	if !assert.NoError(err) {
		return
	}

	lat, lon := coordinates(23.34, 85.31)
	city, err := m.CreateCity(context.TODO(), "alice", schema.CityMeta{Name: "Ranchi", Lat: lat, Lon: lon})
	if !assert.NoError(err) {
		return
	}

	provider.err = httpresponse.Err(http.StatusUnauthorized)
	_, err = m.Weather(context.TODO(), "alice", city.ID)
	var code httpresponse.Err
	if assert.True(errors.As(err, &code)) {
		assert.Equal(http.StatusUnauthorized, int(code))
	}
}

///////////////////////////////////////////////////////////////////////////////
// CHAT AND DIAGNOSTICS

// Test chat without an assistant
func Test_chat_001(t *testing.T) {
	assert := assert.New(t)
	m, err := manager.NewManager()
	if !assert.NoError(err) {
		return
	}
	_, err = m.Chat(context.TODO(), "alice", []schema.Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(err, weatherdeck.ErrNotConfigured)
}

// Test chat is answered by the assistant
func Test_chat_002(t *testing.T) {
	assert := assert.New(t)
	m, err := manager.NewManager(manager.WithAssistant(newAssistant(t, &mockGenerator{reply: "Hello!"})))
	if !assert.NoError(err) {
		return
	}
	response, err := m.Chat(context.TODO(), "alice", []schema.Message{{Role: "user", Content: "hi"}})
	if assert.NoError(err) {
		assert.Equal("Hello!", response.Reply)
	}
}

// Test weather diagnostics
func Test_diag_001(t *testing.T) {
	assert := assert.New(t)

	m, err := manager.NewManager()
	if !assert.NoError(err) {
		return
	}
	diag := m.DiagWeather(context.TODO())
	assert.False(diag.OK)
	assert.Equal("no_openweather_key", diag.Reason)

	provider := &mockProvider{places: []schema.Place{{Name: "Paris", Country: "FR"}}}
	m, err = manager.NewManager(manager.WithWeather(provider, "abcd1234efgh"))
	if !assert.NoError(err) {
		return
	}
	diag = m.DiagWeather(context.TODO())
	assert.True(diag.OK)
	assert.Equal("abcd...efgh", diag.Key)
	assert.NotNil(diag.Sample)

	// Diagnostics bypass the cache
	m.DiagWeather(context.TODO())
	assert.Equal(2, provider.geocodes)

	provider.err = httpresponse.Err(http.StatusUnauthorized)
	diag = m.DiagWeather(context.TODO())
	assert.False(diag.OK)
	assert.Equal(http.StatusUnauthorized, diag.Status)
	assert.NotEmpty(diag.Error)
}

// Test short keys are not revealed
func Test_diag_002(t *testing.T) {
	assert := assert.New(t)
	m, err := manager.NewManager(manager.WithWeather(&mockProvider{}, "abc"))
	if !assert.NoError(err) {
		return
	}
	assert.Equal("short", m.DiagWeather(context.TODO()).Key)
}

// Test model diagnostics
func Test_diag_003(t *testing.T) {
	assert := assert.New(t)

	m, err := manager.NewManager()
	if !assert.NoError(err) {
		return
	}
	assert.Equal("no_gemini_key", m.DiagModel(context.TODO()).Reason)

	m, err = manager.NewManager(manager.WithAssistant(newAssistant(t, nil)))
	if !assert.NoError(err) {
		return
	}
	assert.Equal("no_gemini_key", m.DiagModel(context.TODO()).Reason)

	m, err = manager.NewManager(manager.WithAssistant(newAssistant(t, &mockGenerator{reply: "OK"})))
	if !assert.NoError(err) {
		return
	}
	diag := m.DiagModel(context.TODO())
	assert.True(diag.OK)
	assert.Equal("test-model", diag.Model)
	assert.Equal("OK", diag.Reply)

	m, err = manager.NewManager(manager.WithAssistant(newAssistant(t, &mockGenerator{err: errors.New("denied")})))
	if !assert.NoError(err) {
		return
	}
	diag = m.DiagModel(context.TODO())
	assert.False(diag.OK)
	assert.Equal("denied", diag.Error)
}
