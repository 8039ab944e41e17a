// Package main runs the dashboard as a local JSON API in front of YouQuote.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/quotedash/internal/adapters/clients"
	"github.com/jsamuelsen/quotedash/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotedash/internal/adapters/credentials"
	"github.com/jsamuelsen/quotedash/internal/adapters/http"
	"github.com/jsamuelsen/quotedash/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotedash/internal/app"
	"github.com/jsamuelsen/quotedash/internal/platform/config"
	"github.com/jsamuelsen/quotedash/internal/platform/logging"
	"github.com/jsamuelsen/quotedash/internal/platform/telemetry"
	"github.com/jsamuelsen/quotedash/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("remote", cfg.API.BaseURL),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		Insecure:     cfg.Telemetry.Insecure,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	store, err := credentials.Open(credentials.Options{
		Path:     cfg.Session.StorePath,
		InMemory: cfg.Session.InMemory,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("credential store close error", slog.Any("error", closeErr))
		}
	}()

	creds := app.NewCredentials(store, logger)
	if err := creds.Restore(ctx); err != nil {
		logger.Warn("previous session could not be restored", slog.Any("error", err))
	}

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.API.BaseURL,
		ServiceName: cfg.API.Name,
		Timeout:     cfg.Client.Timeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc:    acl.BearerAuth(creds),
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	remote := acl.NewYouQuote(acl.NewGateway(httpClient, creds, logger), logger)

	dash := app.NewDashboard(remote, creds, app.DashboardConfig{
		PopularLimit: cfg.Dashboard.PopularLimit,
		LongestLimit: cfg.Dashboard.LongestLimit,
		LoadTimeout:  cfg.Dashboard.LoadTimeout,
		Logger:       logger,
	})

	healthRegistry := ports.NewHealthRegistry()
	for _, checker := range []ports.HealthChecker{httpClient, store} {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering health check: %w", err)
		}
	}

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:        logger,
		ServiceName:   cfg.App.Name,
		Dashboard:     dash,
		HealthHandler: handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(cfg.App.Name, Version, Commit, BuildTime)),
		Timeout:       cfg.Server.RequestTimeout,
	})

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a signal or a server error, then drains
// in-flight requests.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}

		return nil

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
