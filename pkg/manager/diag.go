package manager

import (
	"context"
	"errors"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	diagTimeout = 8 * time.Second
	diagQuery   = "Paris"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// DiagWeather checks the weather key with an uncached geocoding lookup
func (m *Manager) DiagWeather(ctx context.Context) *schema.WeatherDiag {
	var err error
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "DiagWeather")
	defer func() { endSpan(err) }()

	if m.provider == nil || m.key == "" {
		return &schema.WeatherDiag{Reason: "no_openweather_key"}
	}
	diag := &schema.WeatherDiag{Key: mask(m.key)}

	ctx, cancel := context.WithTimeout(ctx, diagTimeout)
	defer cancel()
	places, err := m.provider.Geocode(ctx, diagQuery, 1)
	if err != nil {
		var code httpresponse.Err
		if errors.As(err, &code) {
			diag.Status = int(code)
		}
		diag.Error = err.Error()
		return diag
	}

	diag.OK = true
	diag.Sample = places
	return diag
}

// DiagModel checks the model key with a short prompt to the primary model
func (m *Manager) DiagModel(ctx context.Context) *schema.ModelDiag {
	var err error
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "DiagModel")
	defer func() { endSpan(err) }()

	if m.assistant == nil {
		return &schema.ModelDiag{Reason: "no_gemini_key"}
	}
	model, reply, err := m.assistant.Ping(ctx)
	if errors.Is(err, weatherdeck.ErrNotConfigured) {
		return &schema.ModelDiag{Reason: "no_gemini_key"}
	} else if err != nil {
		return &schema.ModelDiag{Model: model, Error: err.Error()}
	}
	return &schema.ModelDiag{OK: true, Model: model, Reply: reply}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// mask returns the first and last four characters of a key
func mask(key string) string {
	if len(key) < 8 {
		return "short"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
