package logger

import (
	"io"
	"log/slog"
	"os"
)

type options struct {
	output  io.Writer
	level   slog.Leveler
	json    bool
	appName string
}

// Option configures the logger built by New.
type Option func(*options)

// WithOutput directs log records to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithLevel sets the minimum record level.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithJSONFormatter switches to the JSON handler for machine-readable
// output.
func WithJSONFormatter() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithDevelopment configures human-readable debug logging tagged with the
// application name, the usual setup for local runs.
func WithDevelopment(appName string) Option {
	return func(o *options) {
		o.level = slog.LevelDebug
		o.json = false
		o.appName = appName
	}
}

// WithProduction configures JSON info-level logging tagged with the
// application name.
func WithProduction(appName string) Option {
	return func(o *options) {
		o.level = slog.LevelInfo
		o.json = true
		o.appName = appName
	}
}

// New builds an slog.Logger. Defaults to text records at info level on
// stderr; options adjust handler, level, destination and the app
// attribute.
func New(opts ...Option) *slog.Logger {
	o := &options{
		output: os.Stderr,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}

	handlerOpts := &slog.HandlerOptions{Level: o.level}
	var handler slog.Handler
	if o.json {
		handler = slog.NewJSONHandler(o.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(o.output, handlerOpts)
	}

	log := slog.New(handler)
	if o.appName != "" {
		log = log.With(slog.String("app", o.appName))
	}
	return log
}
