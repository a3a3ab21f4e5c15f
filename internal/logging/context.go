// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ctxKey int

const (
	correlationIDKey ctxKey = iota
	requestIDKey
	sessionIDKey
	loggerKey
)

// idFields lists the context IDs Ctx copies onto log lines, with their
// field names.
var idFields = []struct {
	key   ctxKey
	field string
}{
	{correlationIDKey, "correlation_id"},
	{requestIDKey, "request_id"},
	{sessionIDKey, "session_id"},
}

func stringFrom(ctx context.Context, k ctxKey) string {
	s, _ := ctx.Value(k).(string)
	return s
}

// GenerateCorrelationID returns a short ID for grepping logs: the first
// 8 hex digits of a random UUID.
func GenerateCorrelationID() string { return uuid.NewString()[:8] }

// GenerateRequestID returns a random UUID.
func GenerateRequestID() string { return uuid.NewString() }

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func CorrelationIDFromContext(ctx context.Context) string { return stringFrom(ctx, correlationIDKey) }

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string { return stringFrom(ctx, requestIDKey) }

// ContextWithSessionID records which loaded session served the request.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

func SessionIDFromContext(ctx context.Context) string { return stringFrom(ctx, sessionIDKey) }

// ContextWithLogger attaches a request-scoped base logger.
//
//nolint:gocritic // zerolog.Logger is a value type
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext falls back to the process logger.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return l
	}
	return Logger()
}

// CtxWith starts a child context of the request logger with every ID
// present in ctx already set.
func CtxWith(ctx context.Context) zerolog.Context {
	base := LoggerFromContext(ctx)
	lc := base.With()
	for _, f := range idFields {
		if id := stringFrom(ctx, f.key); id != "" {
			lc = lc.Str(f.field, id)
		}
	}
	return lc
}

// Ctx is the usual entry point inside handlers:
//
//	logging.Ctx(r.Context()).Info().Str("metric", name).Msg("Query served")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := CtxWith(ctx).Logger()
	return &l
}

// WithComponent tags a long-lived logger, typically one per service.
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
