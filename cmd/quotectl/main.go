// Package main is the interactive terminal client of the dashboard.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jsamuelsen/quotedash/internal/adapters/clients"
	"github.com/jsamuelsen/quotedash/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotedash/internal/adapters/credentials"
	"github.com/jsamuelsen/quotedash/internal/app"
	"github.com/jsamuelsen/quotedash/internal/cli"
	"github.com/jsamuelsen/quotedash/internal/platform/config"
	"github.com/jsamuelsen/quotedash/internal/platform/logging"
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

	// The prompt owns the terminal; only warnings reach stderr unless a
	// file log is configured.
	level := cfg.Log.Level
	if !cfg.Log.File.Enabled && (level == "debug" || level == "info") {
		level = "warn"
	}

	logger := logging.New(&logging.Config{
		Level:   level,
		Format:  "pretty",
		Service: "quotectl",
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

	store, err := credentials.Open(credentials.Options{
		Path:     cfg.Session.StorePath,
		InMemory: cfg.Session.InMemory,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	creds := app.NewCredentials(store, logger)
	if err := creds.Restore(ctx); err != nil {
		logger.Warn("previous session could not be restored", "error", err)
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

	dash := app.NewDashboard(acl.NewYouQuote(acl.NewGateway(httpClient, creds, logger), logger), creds, app.DashboardConfig{
		PopularLimit: cfg.Dashboard.PopularLimit,
		LongestLimit: cfg.Dashboard.LongestLimit,
		LoadTimeout:  cfg.Dashboard.LoadTimeout,
		Logger:       logger,
	})

	return cli.New(dash, os.Stdin, os.Stdout, cli.WithLogger(logger)).Run(ctx)
}
