/*
logger builds the process logger: a human-readable console handler, fanned
out to a JSON file handler when a log file is set.
*/
package logger

import (
	"io"
	"log/slog"
	"os"

	// Packages
	console "github.com/phsym/console-slog"
	oops "github.com/samber/oops"
	slogmulti "github.com/samber/slog-multi"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*opts) error

type opts struct {
	level   slog.Level
	source  bool
	console io.Writer
	file    string
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a logger and a function which closes the log file, if any
func New(opt ...Opt) (*slog.Logger, func() error, error) {
	o := opts{level: slog.LevelInfo, console: os.Stderr}
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return nil, nil, err
		}
	}

	handlers := []slog.Handler{
		console.NewHandler(o.console, &console.HandlerOptions{
			AddSource: o.source,
			Level:     o.level,
		}),
	}
	closer := func() error { return nil }

	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, oops.Errorf("failed to open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			AddSource: o.source,
			Level:     o.level,
		}))
		closer = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithDebug logs debug messages with their source location
func WithDebug(debug bool) Opt {
	return func(o *opts) error {
		if debug {
			o.level = slog.LevelDebug
			o.source = true
		}
		return nil
	}
}

// WithConsole sets the console writer, which is stderr by default
func WithConsole(w io.Writer) Opt {
	return func(o *opts) error {
		if w == nil {
			return oops.Errorf("console writer is required")
		}
		o.console = w
		return nil
	}
}

// WithFile also writes JSON logs to the file
func WithFile(path string) Opt {
	return func(o *opts) error {
		o.file = path
		return nil
	}
}
