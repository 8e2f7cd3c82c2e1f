// Command server hosts the project tracker over HTTP. It loads the profile's
// configuration, builds the object graph in a samber/do container, and
// serves until SIGINT or SIGTERM, then drains requests and flushes telemetry.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/project-tracker/internal/adapters/http"
	"github.com/jsamuelsen11/project-tracker/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/project-tracker/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/project-tracker/internal/app"
	"github.com/jsamuelsen11/project-tracker/internal/app/board"
	"github.com/jsamuelsen11/project-tracker/internal/app/eventloop"
	"github.com/jsamuelsen11/project-tracker/internal/platform/config"
	"github.com/jsamuelsen11/project-tracker/internal/platform/health"
	"github.com/jsamuelsen11/project-tracker/internal/platform/logging"
	"github.com/jsamuelsen11/project-tracker/internal/platform/telemetry"
	"github.com/jsamuelsen11/project-tracker/internal/ports"
)

// telemetryFlushTimeout bounds exporter flushing after the server stops.
const telemetryFlushTimeout = 5 * time.Second

var errNoProfile = errors.New("APP_PROFILE is not set; use one of local, dev, qa, prod")

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "project-tracker:", err)
		os.Exit(1)
	}
}

func run() error {
	profile, ok := os.LookupEnv("APP_PROFILE")
	if !ok || profile == "" {
		return errNoProfile
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("config for profile %q: %w", profile, err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Exporter:    cfg.Telemetry.Exporter,
		Endpoint:    cfg.Telemetry.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer flushTelemetry(providers, logger)

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, providers.Metrics)
	registerDependencies(injector, cfg, logger)

	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("wiring server: %w", err)
	}

	logger.Info("project tracker ready",
		slog.String("profile", profile),
		slog.String("addr", server.Addr()),
		slog.Int("id_attempts", cfg.Tracker.IDAttempts),
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		return fmt.Errorf("serving: %w", err)
	}
	logger.Info("server drained", slog.String("profile", profile))
	return nil
}

// flushTelemetry exports buffered spans and metric points. It runs after the
// signal context is done, so it gets a fresh deadline.
func flushTelemetry(providers *telemetry.Providers, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
	defer cancel()

	if err := providers.Shutdown(ctx); err != nil {
		logger.Error("telemetry flush failed", slog.Any("error", err))
	}
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	// Project core: one store, one event loop, one board. Every handler
	// drives the core through the loop.
	do.Provide(injector, func(_ do.Injector) (*eventloop.Loop, error) {
		return eventloop.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.ProjectStore, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewProjectStore(
			app.WithIDAttempts(cfg.Tracker.IDAttempts),
			app.WithLogger(logger),
			app.WithMetrics(metrics),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ProjectStore, error) {
		return do.MustInvoke[*app.ProjectStore](i), nil
	})

	do.Provide(injector, func(i do.Injector) (*board.Board, error) {
		store := do.MustInvoke[ports.ProjectStore](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return board.New(store, logger, metrics), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.IntakeService, error) {
		store := do.MustInvoke[ports.ProjectStore](i)
		return app.NewIntakeService(store, cfg.Tracker.Rules.ProjectRules(), logger), nil
	})

	// Readiness fails while the event loop cannot be entered.
	do.Provide(injector, func(i do.Injector) (ports.HealthRegistry, error) {
		registry := health.New()
		registry.Register(do.MustInvoke[*eventloop.Loop](i))
		return registry, nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ProjectHandler, error) {
		loop := do.MustInvoke[*eventloop.Loop](i)
		store := do.MustInvoke[ports.ProjectStore](i)
		intake := do.MustInvoke[ports.IntakeService](i)
		return handlers.NewProjectHandler(loop, store, intake), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.BucketHandler, error) {
		loop := do.MustInvoke[*eventloop.Loop](i)
		b := do.MustInvoke[*board.Board](i)
		return handlers.NewBucketHandler(loop, b), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		projH := do.MustInvoke[*handlers.ProjectHandler](i)
		bucketH := do.MustInvoke[*handlers.BucketHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(projH, bucketH, healthH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
