/*
config holds the server configuration, read from an optional YAML file
over the defaults. Command-line flags are applied by the caller before
the configuration is validated.
*/
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	// Packages
	validator "github.com/go-playground/validator/v10"
	assistant "github.com/mutablelogic/go-weatherdeck/pkg/assistant"
	gemini "github.com/mutablelogic/go-weatherdeck/pkg/gemini"
	geocache "github.com/mutablelogic/go-weatherdeck/pkg/geocache"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	oops "github.com/samber/oops"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Config struct {
	Server      Server      `yaml:"server"`
	Store       Store       `yaml:"store"`
	Gemini      Gemini      `yaml:"gemini"`
	OpenWeather OpenWeather `yaml:"openweather"`
	Log         Log         `yaml:"log"`
}

type Server struct {
	// Listen address
	Addr string `yaml:"addr" example:":4000" validate:"required"`
	// Path prefix for the API
	Prefix string `yaml:"prefix" example:"/api" validate:"required,startswith=/"`
	// Allowed CORS origin
	Origin string `yaml:"origin" example:"*"`
	// TLS server name, certificate and key files
	TLSName string `yaml:"tls_name"`
	TLSCert string `yaml:"tls_cert" validate:"required_with=TLSKey"`
	TLSKey  string `yaml:"tls_key" validate:"required_with=TLSCert"`
}

type Store struct {
	// Store backend
	Type string `yaml:"type" example:"memory" validate:"required,oneof=memory file postgres"`
	// Directory for the file store
	Dir string `yaml:"dir" validate:"required_if=Type file"`
	// Connection string for the postgres store
	DatabaseURL string `yaml:"database_url" example:"postgres://postgres@localhost:5432/weatherdeck?sslmode=disable" validate:"required_if=Type postgres"`
}

type Gemini struct {
	// API key; chat is disabled without one
	Key string `yaml:"key"`
	// Primary and fallback models
	Model         string `yaml:"model" example:"gemini-2.5-flash" validate:"required"`
	FallbackModel string `yaml:"fallback_model" example:"gemini-2.5-flash-lite" validate:"required"`
	// Timeout for each model call
	Timeout time.Duration `yaml:"timeout" example:"30s" validate:"gt=0"`
	// Number of transcript messages sent to the model
	History int `yaml:"history" example:"10" validate:"gt=0"`
	// Sampling temperature
	Temperature *float64 `yaml:"temperature" validate:"omitempty,gte=0,lte=2"`
	// Maximum output tokens per model call, zero for the model default
	MaxTokens uint `yaml:"max_tokens" example:"1024"`
}

type OpenWeather struct {
	// API key; search and weather are disabled without one
	Key string `yaml:"key"`
	// How long geocoding results are cached
	GeocodeTTL time.Duration `yaml:"geocode_ttl" example:"10m" validate:"gte=0"`
}

type Log struct {
	// Log debug messages
	Debug bool `yaml:"debug"`
	// Also write JSON logs to this file
	File string `yaml:"file"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultAddr   = ":4000"
	DefaultPrefix = "/api"
	DefaultOrigin = "*"
	DefaultStore  = "memory"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Default returns the configuration used when there is no file
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:   DefaultAddr,
			Prefix: DefaultPrefix,
			Origin: DefaultOrigin,
		},
		Store: Store{
			Type: DefaultStore,
		},
		Gemini: Gemini{
			Model:         gemini.DefaultModel,
			FallbackModel: gemini.DefaultFallbackModel,
			Timeout:       assistant.DefaultTimeout,
			History:       schema.DefaultHistory,
		},
		OpenWeather: OpenWeather{
			GeocodeTTL: geocache.DefaultTTL,
		},
	}
}

// Load reads the YAML file over the defaults and validates the result. A
// missing file is an error.
func Load(path string) (*Config, error) {
	result := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Validate trims the configuration and checks it
func (c *Config) Validate() error {
	c.Server.Prefix = "/" + strings.Trim(strings.TrimSpace(c.Server.Prefix), "/")
	c.Store.Type = strings.ToLower(strings.TrimSpace(c.Store.Type))
	c.Gemini.Key = strings.TrimSpace(c.Gemini.Key)
	c.OpenWeather.Key = strings.TrimSpace(c.OpenWeather.Key)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			return oops.With("field", errs[0].Namespace()).Errorf("failed to validate config: %w", err)
		}
		return oops.Errorf("failed to validate config: %w", err)
	}
	return nil
}

// Assistant returns the assistant configuration
func (c *Config) Assistant() assistant.Config {
	return assistant.Config{
		Model:         c.Gemini.Model,
		FallbackModel: c.Gemini.FallbackModel,
		History:       c.Gemini.History,
		Timeout:       c.Gemini.Timeout,
		Temperature:   c.Gemini.Temperature,
		MaxTokens:     c.Gemini.MaxTokens,
	}
}
