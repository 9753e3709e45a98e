package intent_test

import (
	"testing"

	// Packages
	intent "github.com/mutablelogic/go-weatherdeck/pkg/intent"
	assert "github.com/stretchr/testify/assert"
)

func TestDetectAdd(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		in   string
		want intent.Intent
	}{
		{"Add city: Ranchi, Jharkhand", intent.Intent{Kind: intent.Add, Name: "Ranchi", State: "Jharkhand", Country: "IN"}},
		{"add Pune", intent.Intent{Kind: intent.Add, Name: "Pune", Country: "IN"}},
		{"  ADD CITY - Goa", intent.Intent{Kind: intent.Add, Name: "Goa", Country: "IN"}},
		{"add city:, Mysuru ,Karnataka, IN", intent.Intent{Kind: intent.Add, Name: "Mysuru", State: "Karnataka", Country: "IN"}},
	}
	for _, test := range tests {
		assert.Equal(test.want, intent.Detect(test.in), test.in)
	}
}

func TestDetectDelete(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		in   string
		want intent.Intent
	}{
		{"Delete city: Pune", intent.Intent{Kind: intent.Delete, Name: "Pune", Country: "IN"}},
		{"remove Ranchi, Jharkhand", intent.Intent{Kind: intent.Delete, Name: "Ranchi", State: "Jharkhand", Country: "IN"}},
		{"delete: Delhi", intent.Intent{Kind: intent.Delete, Name: "Delhi", Country: "IN"}},
	}
	for _, test := range tests {
		assert.Equal(test.want, intent.Detect(test.in), test.in)
	}
}

func TestDetectWeather(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		in   string
		want string
	}{
		{"weather for Paris", "Paris"},
		{"Show weather for Ranchi, Jharkhand", "Ranchi"},
		{"what's the forecast for New York please", "New York please"},
		{"Weather   for  Tokyo", "Tokyo"},
	}
	for _, test := range tests {
		got := intent.Detect(test.in)
		assert.Equal(intent.WeatherQuery, got.Kind, test.in)
		assert.Equal(test.want, got.Name, test.in)
		assert.Empty(got.State)
		assert.Empty(got.Country)
	}
}

func TestDetectNone(t *testing.T) {
	assert := assert.New(t)
	for _, in := range []string{
		"",
		"   ",
		"What is the capital of France?",
		"Write a hello world in Go",
		"weather for ,",
		"add",
		"add city:",
		"delete city: ,",
	} {
		assert.Equal(intent.Intent{Kind: intent.None}, intent.Detect(in), in)
	}
}

func TestDetectPriority(t *testing.T) {
	assert := assert.New(t)

	// Add wins over the weather rule
	got := intent.Detect("add weather for Paris")
	assert.Equal(intent.Add, got.Kind)
	assert.Equal("weather for Paris", got.Name)

	// Delete wins over the weather rule
	got = intent.Detect("remove forecast for Lyon")
	assert.Equal(intent.Delete, got.Kind)
	assert.Equal("forecast for Lyon", got.Name)

	// Empty fields are skipped before the name is taken
	got = intent.Detect("add , show weather for Oslo")
	assert.Equal(intent.Add, got.Kind)
	assert.Equal("show weather for Oslo", got.Name)
}

func TestKindString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("none", intent.None.String())
	assert.Equal("add", intent.Add.String())
	assert.Equal("delete", intent.Delete.String())
	assert.Equal("weather_query_name", intent.WeatherQuery.String())
}
