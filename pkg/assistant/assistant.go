/*
assistant answers chat turns. Common phrasings for adding, deleting and
looking up cities are handled locally; anything else goes to the model with
the weather operations declared, and any operations the model requests are
run once before a follow-up call produces the reply.
*/
package assistant

import (
	"context"
	"log/slog"
	"strings"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	citytools "github.com/mutablelogic/go-weatherdeck/pkg/citytools"
	gemini "github.com/mutablelogic/go-weatherdeck/pkg/gemini"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	tool "github.com/mutablelogic/go-weatherdeck/pkg/tool"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config is fixed at construction
type Config struct {
	Model         string        `json:"model" yaml:"model"`
	FallbackModel string        `json:"fallback_model" yaml:"fallback_model"`
	SystemPrompt  string        `json:"system_prompt,omitempty" yaml:"system_prompt"`
	History       int           `json:"history" yaml:"history"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`
	Temperature   *float64      `json:"temperature,omitempty" yaml:"temperature"`
	MaxTokens     uint          `json:"max_tokens,omitempty" yaml:"max_tokens"`
}

type Assistant struct {
	generator weatherdeck.Generator
	adapter   *citytools.Adapter
	toolkit   *tool.Toolkit
	config    Config
	tracer    trace.Tracer
}

// Opt is a functional option for the assistant
type Opt func(*Assistant) error

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultTimeout = 30 * time.Second

	// DefaultSystemPrompt is the system instruction sent with every model call
	DefaultSystemPrompt = "You are WeatherDeck Assistant. You can answer ANY general question (science, math, history, writing, " +
		"and coding in ANY language including C++, Java, JavaScript, Python, Go, Rust, etc.). " +
		"You ALSO have tools for weather: add/delete cities and fetch weather. " +
		"Default country is India (IN) if country is not specified. " +
		"Call tools ONLY when the user asks about weather or managing cities; otherwise answer directly. " +
		"When returning code, always use proper markdown fences with the correct language tag (```cpp, ```java, ```js, etc.). " +
		"Never claim you are restricted to Python or any single library, you are not. " +
		"Use concise answers unless the user asks for more detail. Use metric (°C) for weather."

	// replyDefault is the reply when the model returns no text
	replyDefault = "OK"
	pingPrompt   = "Say OK"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates an assistant. The generator may be nil, in which case every
// chat fails with ErrNotConfigured.
func New(generator weatherdeck.Generator, adapter *citytools.Adapter, config Config, opts ...Opt) (*Assistant, error) {
	self := new(Assistant)
	if adapter == nil {
		return nil, weatherdeck.ErrBadParameter.With("adapter is required")
	}
	self.generator = generator
	self.adapter = adapter
	self.config = config.withDefaults()

	// Toolkit of weather operations
	if toolkit, err := adapter.Toolkit(); err != nil {
		return nil, err
	} else {
		self.toolkit = toolkit
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(self); err != nil {
			return nil, err
		}
	}

	return self, nil
}

// WithTracer sets the tracer for chat, model and tool spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(a *Assistant) error {
		a.tracer = tracer
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Config returns the configuration in use
func (a *Assistant) Config() Config {
	return a.config
}

// Chat answers the last message of the conversation for the user. Model
// failures are returned as *ModelError. Other errors come from the local
// fast path or from invalid input.
func (a *Assistant) Chat(ctx context.Context, user string, messages []schema.Message) (_ *schema.ChatResponse, err error) {
	ctx = weatherdeck.WithUser(ctx, user)
	ctx, endSpan := otel.StartSpan(a.tracer, ctx, "Chat",
		attribute.String("user", weatherdeck.User(ctx)),
		attribute.Int("messages", len(messages)),
	)
	defer func() { endSpan(err) }()

	// The model key is checked before anything else
	if a.generator == nil {
		return nil, weatherdeck.ErrNotConfigured.With("GEMINI_API_KEY missing")
	}
	if len(messages) == 0 {
		return nil, weatherdeck.ErrBadParameter.With("messages are required")
	}

	// Local fast path
	if response, handled, err := a.fastPath(ctx, schema.LastContent(messages)); handled {
		return response, err
	}

	// Model path, with one retry on the fallback model for quota errors
	response, err := a.run(ctx, a.config.Model, messages)
	if err == nil {
		return response, nil
	}
	kind := classify(err)
	if kind != weatherdeck.ErrQuotaExceeded {
		return nil, &ModelError{Kind: kind, Model: a.config.Model, Err: err}
	}
	slog.WarnContext(ctx, "model quota reached, trying fallback", "model", a.config.Model, "fallback", a.config.FallbackModel, "error", err)
	if response, err := a.run(ctx, a.config.FallbackModel, messages); err != nil {
		return nil, &ModelError{Kind: weatherdeck.ErrQuotaExceeded, Model: a.config.FallbackModel, Err: err}
	} else {
		return response, nil
	}
}

// Ping asks the primary model for a short reply, to check the key and
// model are usable. It returns the model name and its reply.
func (a *Assistant) Ping(ctx context.Context) (string, string, error) {
	if a.generator == nil {
		return a.config.Model, "", weatherdeck.ErrNotConfigured.With("GEMINI_API_KEY missing")
	}
	turn, err := a.generate(ctx, a.config.Model, []schema.Turn{
		schema.NewTextTurn(schema.RoleUser, pingPrompt),
	})
	if err != nil {
		return a.config.Model, "", err
	}
	return a.config.Model, turn.Text(), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c Config) withDefaults() Config {
	if c.Model = strings.TrimSpace(c.Model); c.Model == "" {
		c.Model = gemini.DefaultModel
	}
	if c.FallbackModel = strings.TrimSpace(c.FallbackModel); c.FallbackModel == "" {
		c.FallbackModel = gemini.DefaultFallbackModel
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	if c.History <= 0 {
		c.History = schema.DefaultHistory
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
