package opt

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which can set options on a generate request
type Opt func(*Options) error

// Options is a set of applied options. Scalar values are held as strings,
// other values by key.
type Options struct {
	url.Values
	any map[string]any
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	SystemPromptKey = "system_prompt"
	TemperatureKey  = "temperature"
	MaxTokensKey    = "max_tokens"
	ToolkitKey      = "toolkit"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns a structure of applied options
func Apply(o ...Opt) (*Options, error) {
	opts := &Options{Values: make(url.Values), any: make(map[string]any)}
	for _, opt := range o {
		if opt == nil {
			continue
		}
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetString returns the trimmed value for key, or empty string if not set
func (o *Options) GetString(key string) string {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// GetFloat64 returns the float64 value for key, or 0 if not set or invalid
func (o *Options) GetFloat64(key string) float64 {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64); err == nil {
			return v
		}
	}
	return 0
}

// GetUint returns the uint value for key, or 0 if not set or invalid
func (o *Options) GetUint(key string) uint {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseUint(strings.TrimSpace(values[0]), 10, 64); err == nil {
			return uint(v)
		}
	}
	return 0
}

// Has returns true if the key exists
func (o *Options) Has(key string) bool {
	if _, ok := o.Values[key]; ok {
		return true
	}
	_, ok := o.any[key]
	return ok
}

// Get returns an arbitrary value for key, or nil
func (o *Options) Get(key string) any {
	return o.any[key]
}

// Set stores an arbitrary value for key. A nil value removes the key.
func (o *Options) Set(key string, value any) {
	if value == nil {
		delete(o.any, key)
	} else {
		o.any[key] = value
	}
}

// GetToolkit returns the toolkit value, or nil
func (o *Options) GetToolkit() any {
	return o.Get(ToolkitKey)
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// Error returns an option that always returns an error
func Error(err error) Opt {
	return func(o *Options) error {
		return err
	}
}

// SetString replaces the values for key
func SetString(key string, value string) Opt {
	return func(o *Options) error {
		o.Values.Set(key, value)
		return nil
	}
}

// SetUint replaces the values for key
func SetUint(key string, value uint) Opt {
	return func(o *Options) error {
		o.Values.Set(key, fmt.Sprintf("%d", value))
		return nil
	}
}

// SetFloat64 replaces the values for key
func SetFloat64(key string, value float64) Opt {
	return func(o *Options) error {
		o.Values.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
		return nil
	}
}

// SetAny stores an arbitrary value for key
func SetAny(key string, value any) Opt {
	return func(o *Options) error {
		o.Set(key, value)
		return nil
	}
}

// WithSystemPrompt sets the system instruction for generation
func WithSystemPrompt(value string) Opt {
	if value = strings.TrimSpace(value); value == "" {
		return nil
	}
	return SetString(SystemPromptKey, value)
}

// WithTemperature sets the sampling temperature, which must be between 0 and 2
func WithTemperature(value float64) Opt {
	if value < 0 || value > 2 {
		return Error(fmt.Errorf("temperature out of range: %v", value))
	}
	return SetFloat64(TemperatureKey, value)
}

// WithMaxTokens sets the maximum number of output tokens
func WithMaxTokens(value uint) Opt {
	return SetUint(MaxTokensKey, value)
}

// WithToolkit declares a set of tools the model may invoke
func WithToolkit(toolkit any) Opt {
	return SetAny(ToolkitKey, toolkit)
}
