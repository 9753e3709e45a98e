package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	godotenv "github.com/joho/godotenv"
	config "github.com/mutablelogic/go-weatherdeck/pkg/config"
	logger "github.com/mutablelogic/go-weatherdeck/pkg/logger"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Configuration
	Config  string `name:"config" env:"WEATHERDECK_CONFIG" help:"YAML configuration file" optional:""`
	LogFile string `name:"log-file" env:"WEATHERDECK_LOG" help:"Also write JSON logs to this file" optional:""`
	User    string `name:"user" env:"WEATHERDECK_USER" help:"Caller identifier (defaults to a stored random identifier)" optional:""`

	// HTTP server and client
	HTTP struct {
		Addr    string        `name:"addr" env:"WEATHERDECK_ADDR" help:"Server listen address (default :4000)" optional:""`
		Prefix  string        `name:"prefix" help:"Server path prefix (default /api)" optional:""`
		Timeout time.Duration `name:"timeout" help:"Client request timeout" optional:""`
	} `embed:"" prefix:"http."`

	// Context
	ctx      context.Context
	config   *config.Config
	tracer   trace.Tracer
	cache    *Cache
	execName string
}

type CLI struct {
	Globals
	ServerCommands
	CityCommands
	ChatCommands
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Environment from .env, if present
	_ = godotenv.Load()

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("WeatherDeck server and command line client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	cli.Globals.execName = execName()

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Read the configuration, flags override the file
	cfg, err := cli.Globals.loadConfig()
	cmd.FatalIfErrorf(err)
	cli.Globals.config = cfg

	// Logger
	log, closeLog, err := logger.New(logger.WithDebug(cfg.Log.Debug), logger.WithFile(cfg.Log.File))
	cmd.FatalIfErrorf(err)
	defer closeLog()
	slog.SetDefault(log)

	// Tracer from the global provider
	cli.Globals.tracer = otel.Tracer(cli.Globals.execName)

	// Local cache for the caller identifier and chat transcript
	cache, err := NewCache(cli.Globals.cachePath())
	cmd.FatalIfErrorf(err)
	cli.Globals.cache = cache

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

// loadConfig returns the file configuration, or the defaults, with the
// global flags applied
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if g.Config != "" {
		if file, err := config.Load(g.Config); err != nil {
			return nil, err
		} else {
			cfg = file
		}
	}
	if g.HTTP.Addr != "" {
		cfg.Server.Addr = g.HTTP.Addr
	}
	if g.HTTP.Prefix != "" {
		cfg.Server.Prefix = g.HTTP.Prefix
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	if g.Debug {
		cfg.Log.Debug = true
	}
	return cfg, cfg.Validate()
}

// cachePath returns the path of the local cache file
func (g *Globals) cachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, g.execName, "cache.json")
}
