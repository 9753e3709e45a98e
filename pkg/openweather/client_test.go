package openweather_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-client"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	openweather "github.com/mutablelogic/go-weatherdeck/pkg/openweather"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

const (
	geoResponse = `[
		{"name":"Ranchi","lat":23.3441,"lon":85.3096,"country":"IN","state":"Jharkhand"},
		{"name":"Ranchi","lat":23.35,"lon":85.33,"country":"IN"}
	]`
	currentResponse = `{
		"weather":[{"main":"Clouds","description":"broken clouds","icon":"04d"}],
		"main":{"temp":27.5,"feels_like":29.1,"temp_min":26,"temp_max":28,"pressure":1008,"humidity":70},
		"wind":{"speed":3.1,"deg":220},
		"clouds":{"all":75},
		"dt":1760500000,
		"sys":{"country":"IN","sunrise":1760487000,"sunset":1760529000},
		"name":"Ranchi"
	}`
	forecastResponse = `{"cnt":2,"list":[
		{"dt":1760508000,"main":{"temp":26,"temp_min":25,"temp_max":27,"humidity":72},"weather":[{"description":"light rain","icon":"10d"}],"wind":{"speed":2.5},"pop":0.4},
		{"dt":1760518800,"main":{"temp":24,"temp_min":24,"temp_max":24,"humidity":80},"weather":[],"wind":{"speed":1.5},"pop":0}
	]}`
)

func newTestClient(t *testing.T) (*openweather.Client, *[]url.URL) {
	t.Helper()
	var requests []url.URL
	mux := http.NewServeMux()
	respond := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			requests = append(requests, *r.URL)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/geo/1.0/direct", respond(geoResponse))
	mux.HandleFunc("/data/2.5/weather", respond(currentResponse))
	mux.HandleFunc("/data/2.5/forecast", respond(forecastResponse))
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	c, err := openweather.New("secret", client.OptEndpoint(ts.URL))
	if err != nil {
		t.Fatal(err)
	}
	return c, &requests
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_client_001(t *testing.T) {
	assert := assert.New(t)
	_, err := openweather.New("")
	assert.ErrorIs(err, weatherdeck.ErrBadParameter)
}

func Test_client_002(t *testing.T) {
	assert := assert.New(t)
	c, requests := newTestClient(t)

	places, err := c.Geocode(context.Background(), "Ranchi, Jharkhand, IN", 5)
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(places, 2) {
		assert.Equal("Ranchi", places[0].Name)
		assert.Equal("Jharkhand", places[0].State)
		assert.Equal(23.3441, places[0].Lat)
		assert.Empty(places[1].State)
	}
	if assert.Len(*requests, 1) {
		q := (*requests)[0].Query()
		assert.Equal("Ranchi, Jharkhand, IN", q.Get("q"))
		assert.Equal("5", q.Get("limit"))
		assert.Equal("secret", q.Get("appid"))
	}
}

func Test_client_003(t *testing.T) {
	assert := assert.New(t)
	c, requests := newTestClient(t)

	current, err := c.Current(context.Background(), 23.3441, 85.3096)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(27.5, current.Temp)
	assert.Equal(29.1, current.FeelsLike)
	assert.Equal(70, current.Humidity)
	assert.Equal("broken clouds", current.Description)
	assert.Equal(int64(1760500000), current.Time.Unix())
	if assert.Len(*requests, 1) {
		q := (*requests)[0].Query()
		assert.Equal("metric", q.Get("units"))
		assert.Equal("23.3441", q.Get("lat"))
		assert.Equal("85.3096", q.Get("lon"))
	}
}

func Test_client_004(t *testing.T) {
	assert := assert.New(t)
	c, _ := newTestClient(t)

	items, err := c.Forecast(context.Background(), 23.3441, 85.3096)
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(items, 2) {
		assert.Equal("light rain", items[0].Description)
		assert.Equal(0.4, items[0].Pop)
		assert.Empty(items[1].Description)
	}
}

func Test_client_005(t *testing.T) {
	assert := assert.New(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key."}`))
	}))
	defer ts.Close()

	c, err := openweather.New("bad", client.OptEndpoint(ts.URL))
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Geocode(context.Background(), "Paris", 1)
	var status httpresponse.Err
	if assert.True(errors.As(err, &status)) {
		assert.Equal(http.StatusUnauthorized, int(status))
	}
}
