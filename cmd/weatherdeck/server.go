package main

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	// Packages
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	assistant "github.com/mutablelogic/go-weatherdeck/pkg/assistant"
	citytools "github.com/mutablelogic/go-weatherdeck/pkg/citytools"
	config "github.com/mutablelogic/go-weatherdeck/pkg/config"
	gemini "github.com/mutablelogic/go-weatherdeck/pkg/gemini"
	httpclient "github.com/mutablelogic/go-weatherdeck/pkg/httpclient"
	httphandler "github.com/mutablelogic/go-weatherdeck/pkg/httphandler"
	manager "github.com/mutablelogic/go-weatherdeck/pkg/manager"
	openweather "github.com/mutablelogic/go-weatherdeck/pkg/openweather"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
	store "github.com/mutablelogic/go-weatherdeck/pkg/store"
	version "github.com/mutablelogic/go-weatherdeck/pkg/version"
)

type ServerCommands struct {
	// Commands
	RunServer RunServer `cmd:"" name:"run" help:"Run server." group:"SERVER"`
}

type RunServer struct {
	// API Keys
	GeminiAPIKey      string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Google Gemini API key"`
	OpenWeatherAPIKey string `name:"openweather-api-key" env:"OPENWEATHER_API_KEY" help:"OpenWeather API key"`

	// Models
	Model         string `name:"model" env:"GEMINI_MODEL" help:"Primary model"`
	FallbackModel string `name:"fallback-model" env:"GEMINI_FALLBACK_MODEL" help:"Model used when the primary model is unavailable"`

	// CORS
	Origin string `name:"origin" env:"CORS_ORIGIN" help:"Allowed cross-origin requests"`

	// City store
	Store       string `name:"store" env:"WEATHERDECK_STORE" help:"City store (memory, file or postgres)"`
	StoreDir    string `name:"store-dir" env:"WEATHERDECK_STORE_DIR" help:"Directory for the file store"`
	DatabaseURL string `name:"database-url" env:"DATABASE_URL" help:"Connection string for the postgres store"`

	// TLS server options
	TLS struct {
		ServerName string `name:"name" help:"TLS server name"`
		CertFile   string `name:"cert" help:"TLS certificate file"`
		KeyFile    string `name:"key" help:"TLS key file"`
	} `embed:"" prefix:"tls."`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunServer) Run(ctx *Globals) error {
	cfg, err := cmd.Config(ctx)
	if err != nil {
		return err
	}
	return cmd.WithManager(ctx, cfg, func(manager *manager.Manager) error {
		// Start the HTTP server and wait for shutdown
		return cmd.Serve(ctx, cfg, manager, version.Version())
	})
}

// Config applies the command flags over the configuration and validates it
func (cmd *RunServer) Config(ctx *Globals) (*config.Config, error) {
	cfg := *ctx.config
	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	set(&cfg.Gemini.Key, cmd.GeminiAPIKey)
	set(&cfg.Gemini.Model, cmd.Model)
	set(&cfg.Gemini.FallbackModel, cmd.FallbackModel)
	set(&cfg.OpenWeather.Key, cmd.OpenWeatherAPIKey)
	set(&cfg.Server.Origin, cmd.Origin)
	set(&cfg.Server.TLSName, cmd.TLS.ServerName)
	set(&cfg.Server.TLSCert, cmd.TLS.CertFile)
	set(&cfg.Server.TLSKey, cmd.TLS.KeyFile)
	set(&cfg.Store.Type, cmd.Store)
	set(&cfg.Store.Dir, cmd.StoreDir)
	set(&cfg.Store.DatabaseURL, cmd.DatabaseURL)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WithManager creates the city store, the upstream clients, the assistant
// and the manager, invokes fn, then releases the store.
func (cmd *RunServer) WithManager(ctx *Globals, cfg *config.Config, fn func(*manager.Manager) error) error {
	clientOpts := ctx.clientOpts()
	opts := []manager.Opt{
		manager.WithTracer(ctx.tracer),
		manager.WithGeocodeTTL(cfg.OpenWeather.GeocodeTTL),
	}

	// City store
	cities, closeStore, err := cmd.CityStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()
	opts = append(opts, manager.WithStore(cities))

	// OpenWeather client
	if cfg.OpenWeather.Key != "" {
		client, err := openweather.New(cfg.OpenWeather.Key, clientOpts...)
		if err != nil {
			return fmt.Errorf("failed to create OpenWeather client: %w", err)
		}
		opts = append(opts, manager.WithWeather(client, cfg.OpenWeather.Key))
	} else {
		slog.WarnContext(ctx.ctx, "OPENWEATHER_API_KEY missing, search and weather are disabled")
	}

	// Gemini client
	var generator weatherdeck.Generator
	if cfg.Gemini.Key != "" {
		client, err := gemini.New(cfg.Gemini.Key, clientOpts...)
		if err != nil {
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		generator = client
	} else {
		slog.WarnContext(ctx.ctx, "GEMINI_API_KEY missing, chat is limited to quick commands")
	}

	// The assistant operates on cities through this server's own API
	url, err := endpoint(cfg.Server.Addr, cfg.Server.Prefix, cfg.Server.TLSName, cfg.Server.TLSCert != "")
	if err != nil {
		return fmt.Errorf("failed to determine server endpoint: %w", err)
	}
	self, err := httpclient.New(url, clientOpts...)
	if err != nil {
		return err
	}
	adapter, err := citytools.New(self)
	if err != nil {
		return err
	}
	assistant, err := assistant.New(generator, adapter, cfg.Assistant(), assistant.WithTracer(ctx.tracer))
	if err != nil {
		return err
	}
	opts = append(opts, manager.WithAssistant(assistant))

	// Create the manager
	manager, err := manager.NewManager(opts...)
	if err != nil {
		return err
	}

	// Run the server with the manager
	return fn(manager)
}

// CityStore returns the configured city store and a function to release it
func (cmd *RunServer) CityStore(ctx *Globals, cfg config.Store) (schema.CityStore, func() error, error) {
	nop := func() error { return nil }
	switch cfg.Type {
	case "file":
		store, err := store.NewFileCityStore(cfg.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create file store: %w", err)
		}
		return store, nop, nil
	case "postgres":
		store, err := store.NewPostgresCityStore(ctx.ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return store, store.Close, nil
	default:
		return store.NewMemoryCityStore(), nop, nil
	}
}

// Serve creates the httpserver instance, logs the startup banner, and
// blocks until context cancellation (e.g. SIGINT).
func (cmd *RunServer) Serve(ctx *Globals, cfg *config.Config, manager *manager.Manager, versionTag string) error {
	// Create the TLS config if TLS options are provided
	var tlsConfig *tls.Config
	if cfg.Server.TLSCert != "" {
		var pemData [][]byte
		for _, path := range []string{cfg.Server.TLSCert, cfg.Server.TLSKey} {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read TLS file: %w", err)
			}
			pemData = append(pemData, data)
		}
		var err error
		tlsConfig, err = httpserver.TLSConfig(cfg.Server.TLSName, false, pemData...)
		if err != nil {
			return fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	// Create the server
	httpserver, err := httpserver.New(cfg.Server.Addr, tlsConfig)
	if err != nil {
		return err
	}

	// Create the HTTP router, which applies the CORS policy before its own mux
	router, err := httprouter.NewRouter(ctx.ctx, http.NewServeMux(), cfg.Server.Prefix, cfg.Server.Origin, "WeatherDeck", versionTag)
	if err != nil {
		return err
	} else if err := httphandler.RegisterHandlers(manager, router, true); err != nil {
		return err
	} else if err := router.RegisterCatchAll("/", false); err != nil {
		return err
	}
	httpserver.Router().Handle("/", router)

	// Run the server
	slog.InfoContext(ctx.ctx, "started", "name", ctx.execName, "version", versionTag, "addr", cfg.Server.Addr, "store", cfg.Store.Type)
	if err := httpserver.Run(ctx.ctx); err != nil {
		return err
	}

	// Return success
	slog.InfoContext(ctx.ctx, "stopped", "name", ctx.execName, "version", versionTag)
	return nil
}
