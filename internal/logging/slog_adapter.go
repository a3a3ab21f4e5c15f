// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// SlogHandler lets slog-only libraries, sutureslog in particular, write
// into the zerolog stream. Groups flatten into dotted keys.
type SlogHandler struct {
	logger zerolog.Logger
	prefix string
}

// NewSlogHandler writes through a snapshot of the process logger.
func NewSlogHandler() *SlogHandler {
	return NewSlogHandlerWithLogger(Logger())
}

//nolint:gocritic // zerolog.Logger is a value type
func NewSlogHandlerWithLogger(logger zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// NewSlogLogger is the *slog.Logger handed to the supervisor tree. Its
// lines carry component=supervisor.
func NewSlogLogger() *slog.Logger {
	return slog.New(NewSlogHandlerWithLogger(WithComponent("supervisor")))
}

func zerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l >= slog.LevelError:
		return zerolog.ErrorLevel
	case l >= slog.LevelWarn:
		return zerolog.WarnLevel
	case l >= slog.LevelInfo:
		return zerolog.InfoLevel
	case l >= slog.LevelDebug:
		return zerolog.DebugLevel
	}
	return zerolog.TraceLevel
}

func (h *SlogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return zerologLevel(l) >= h.logger.GetLevel()
}

// Handle adds the request, session and correlation IDs found in ctx.
//
//nolint:gocritic // slog.Handler passes the record by value
func (h *SlogHandler) Handle(ctx context.Context, r slog.Record) error {
	ev := h.logger.WithLevel(zerologLevel(r.Level))
	if ctx != nil {
		for _, f := range idFields {
			if id := stringFrom(ctx, f.key); id != "" {
				ev = ev.Str(f.field, id)
			}
		}
	}

	fields := make([]interface{}, 0, 2*r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		fields = flattenAttr(fields, h.prefix, a)
		return true
	})
	ev.Fields(fields).Msg(r.Message)
	return nil
}

// WithAttrs bakes attrs into the underlying logger under the current group.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var fields []interface{}
	for _, a := range attrs {
		fields = flattenAttr(fields, h.prefix, a)
	}
	return &SlogHandler{logger: h.logger.With().Fields(fields).Logger(), prefix: h.prefix}
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &SlogHandler{logger: h.logger, prefix: h.prefix + name + "."}
}

// flattenAttr appends key/value pairs for a, descending into groups.
// Empty keys are dropped except on groups, which are inlined.
func flattenAttr(dst []interface{}, prefix string, a slog.Attr) []interface{} {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range v.Group() {
			dst = flattenAttr(dst, prefix, ga)
		}
		return dst
	}
	if a.Key == "" {
		return dst
	}
	return append(dst, prefix+a.Key, v.Any())
}
