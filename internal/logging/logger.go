// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level, output format and decoration of the process logger.
type Config struct {
	Level     string    // trace..panic, or "disabled"
	Format    string    // "json" or "console"
	Caller    bool      // add file:line
	Timestamp bool      // add an RFC3339 "time" field
	Output    io.Writer // nil means stderr
}

// DefaultConfig is the configuration in effect before Init runs.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Timestamp: true, Output: os.Stderr}
}

var (
	mu   sync.RWMutex
	root zerolog.Logger
)

//nolint:gochecknoinits // package-level helpers are usable before Init
func init() {
	root = build(DefaultConfig())
}

// Init replaces the process logger. Calling it again reconfigures.
func Init(cfg Config) {
	l := build(cfg)
	mu.Lock()
	root = l
	mu.Unlock()
}

func build(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

var levelNames = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"disabled": zerolog.Disabled,
}

// parseLevel maps a level name to zerolog, falling back to info.
func parseLevel(name string) zerolog.Level {
	if lvl, ok := levelNames[strings.ToLower(name)]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}

func current() *zerolog.Logger {
	mu.RLock()
	l := root
	mu.RUnlock()
	return &l
}

// Logger returns a copy of the process logger.
func Logger() zerolog.Logger { return *current() }

// SetLogger installs l as the process logger.
//
//nolint:gocritic // zerolog.Logger is passed by value by design of the library
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	root = l
	mu.Unlock()
}

// With derives a child context, e.g.
//
//	engineLog := logging.With().Str("component", "engine").Logger()
func With() zerolog.Context { return current().With() }

func Debug() *zerolog.Event { return current().Debug() }
func Info() *zerolog.Event  { return current().Info() }
func Warn() *zerolog.Event  { return current().Warn() }
func Error() *zerolog.Event { return current().Error() }

// Fatal exits the process with status 1 once the event is sent.
func Fatal() *zerolog.Event { return current().Fatal() }

// Err is Error with err attached, or Info when err is nil.
func Err(err error) *zerolog.Event { return current().Err(err) }

// SetLevelString changes the global threshold at runtime.
func SetLevelString(level string) { zerolog.SetGlobalLevel(parseLevel(level)) }

// IsLevelEnabled reports whether events at level pass the global threshold.
func IsLevelEnabled(level zerolog.Level) bool { return zerolog.GlobalLevel() <= level }

// NewTestLogger writes timestamped JSON lines to w; pair it with SetLogger
// to capture output in tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
