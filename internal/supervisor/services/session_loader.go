// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gridlens/internal/cache"
	"github.com/tomtom215/gridlens/internal/engine"
	"github.com/tomtom215/gridlens/internal/logging"
)

// SessionLoader builds a fresh analysis session.
type SessionLoader func(ctx context.Context) (*engine.Session, error)

// SessionLoaderService loads the analysis session into a holder and keeps
// it there until shutdown. Reload swaps in a newly loaded session and
// drops the cached responses of the one it replaces.
//
// A failed initial load is returned to the supervisor, which retries with
// backoff. A failed reload keeps the current session.
type SessionLoaderService struct {
	load   SessionLoader
	holder *engine.Holder
	cache  cache.Store
	reload chan struct{}
	name   string
	logger zerolog.Logger
}

// NewSessionLoaderService creates the service. responseCache may be nil.
func NewSessionLoaderService(load SessionLoader, holder *engine.Holder, responseCache cache.Store) *SessionLoaderService {
	return &SessionLoaderService{
		load:   load,
		holder: holder,
		cache:  responseCache,
		reload: make(chan struct{}, 1),
		name:   "session-loader",
		logger: logging.WithComponent("session-loader"),
	}
}

// Reload asks the running service to load the session again. Requests
// made while a reload is pending are coalesced.
func (s *SessionLoaderService) Reload() {
	select {
	case s.reload <- struct{}{}:
	default:
	}
}

// Serve implements suture.Service.
func (s *SessionLoaderService) Serve(ctx context.Context) error {
	// A restart after a crash keeps serving the session already loaded.
	if s.holder.Load() == nil {
		if err := s.swap(ctx); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.reload:
			if err := s.swap(ctx); err != nil {
				s.logger.Error().Err(err).Msg("session reload failed, keeping current session")
			}
		}
	}
}

func (s *SessionLoaderService) swap(ctx context.Context) error {
	next, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	prev := s.holder.Load()
	s.holder.Store(next)

	if prev != nil && s.cache != nil {
		s.cache.DropSession(prev.ID())
	}

	ev := s.logger.Info().Str("session_id", next.ID()).Str("scenario", next.ScenarioName())
	if prev != nil {
		ev = ev.Str("previous_session_id", prev.ID())
	}
	ev.Msg("session installed")
	return nil
}

// String names the service in supervisor events.
func (s *SessionLoaderService) String() string {
	return s.name
}
