// Package logger owns the process zerolog root and the fields carried on a
// context: request_id for API calls, run_id and day for tally runs.
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"dltally/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Options shapes the root logger. Format is "console" or "json".
type Options struct {
	Level       string
	Format      string
	Service     string
	Component   string
	Writer      io.Writer
	WithCaller  bool
	SampleEvery int
	// Fields are stamped on every line, e.g. build or region
	Fields map[string]string
}

// FromEnv reads LOG_* through the raw config view, which does not log
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "debug"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	initOnce sync.Once
	root     atomic.Pointer[Logger]
)

// Init builds the root logger. Only the first call in a process counts.
func Init(opt Options) {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

// Get returns the root logger, initialising it from the environment when
// nothing called Init first
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Named is a child of the root tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}

func build(opt Options) Logger {
	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	with := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		with = with.Str("go_version", bi.GoVersion)
	}
	for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
		if v != "" {
			with = with.Str(k, v)
		}
	}
	for k, v := range opt.Fields {
		with = with.Str(k, v)
	}
	if opt.WithCaller {
		with = with.Caller()
	}

	l := with.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// parseLevel accepts zerolog's names plus "warning"; anything else is debug
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type scopeKey struct{}

// scope is the set of ids a context carries into its log lines
type scope struct {
	requestID string
	runID     string
	day       string
}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// WithRequest tags ctx with an API request id; "" leaves ctx as is
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	s := scopeOf(ctx)
	s.requestID = reqID
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithRun tags ctx with the tally run id and the day it is for
func WithRun(ctx context.Context, runID, day string) context.Context {
	s := scopeOf(ctx)
	if runID != "" {
		s.runID = runID
	}
	if day != "" {
		s.day = day
	}
	return context.WithValue(ctx, scopeKey{}, s)
}

// C is the root logger plus whatever ids ctx carries
func C(ctx context.Context) *Logger {
	s := scopeOf(ctx)
	with := Get().With()
	for _, f := range [...]struct{ k, v string }{
		{"request_id", s.requestID},
		{"run_id", s.runID},
		{"day", s.day},
	} {
		if f.v != "" {
			with = with.Str(f.k, f.v)
		}
	}
	l := with.Logger()
	return &l
}
