// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/gridlens/internal/api"
	"github.com/tomtom215/gridlens/internal/config"
	"github.com/tomtom215/gridlens/internal/database"
	"github.com/tomtom215/gridlens/internal/engine"
	"github.com/tomtom215/gridlens/internal/logging"
	"github.com/tomtom215/gridlens/internal/metrics"
	"github.com/tomtom215/gridlens/internal/middleware"
	"github.com/tomtom215/gridlens/internal/supervisor"
	"github.com/tomtom215/gridlens/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	metrics.RecordBuildInfo(version)
	logging.Info().
		Str("version", version).
		Str("source_path", cfg.Engine.SourcePath).
		Str("result_path", cfg.Engine.ResultPath).
		Str("result_format", cfg.Engine.ResultFormat).
		Msg("Starting gridlens with supervisor tree")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	rc, err := initCache(&cfg.Cache)
	if err != nil {
		return err
	}
	defer rc.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	// Data layer: the session and the cache behind it.
	holder := &engine.Holder{}
	loader := services.NewSessionLoaderService(func(ctx context.Context) (*engine.Session, error) {
		return engine.FromConfig(ctx, cfg.Engine, db)
	}, holder, rc.store)
	tree.AddDataService(loader)
	rc.supervise(tree, &cfg.Cache)

	// API layer.
	handler := api.NewHandler(api.HandlerDeps{
		Holder:      holder,
		DB:          db,
		Cache:       rc.store,
		Performance: middleware.NewPerformanceMonitor(1000, time.Second),
	})
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromServer(&cfg.Server))
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// SIGHUP reloads the session; SIGINT and SIGTERM stop the tree.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				if sig == syscall.SIGHUP {
					logging.Info().Msg("Received SIGHUP, reloading session")
					loader.Reload()
					continue
				}
				logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
				cancel()
				return
			}
		}
	}()

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}
	return nil
}
