// Package main is the entry point for the quote consumer service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-consumer/internal/adapters/clients"
	"github.com/jsamuelsen/quote-consumer/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-consumer/internal/adapters/http"
	"github.com/jsamuelsen/quote-consumer/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-consumer/internal/app"
	"github.com/jsamuelsen/quote-consumer/internal/platform/config"
	"github.com/jsamuelsen/quote-consumer/internal/platform/logging"
	"github.com/jsamuelsen/quote-consumer/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-consumer/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
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

	// 1. Pick up a local .env before anything reads the environment
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
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
		slog.String("quote_service_url", cfg.Services.Quote.BaseURL),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, telemetry.NewConfig(cfg.App, cfg.Telemetry))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create the shared upstream HTTP client
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Client.Timeout,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	// 6. Create quote client adapter (ACL pattern)
	quoteClient := acl.NewQuoteClient(acl.QuoteClientConfig{
		Client:     httpClient,
		RandomPath: cfg.Services.Quote.RandomPath,
		Logger:     logger,
	})

	healthRegistry := ports.NewHealthRegistry(cfg.Client.Timeout)
	if err := healthRegistry.Register(quoteClient); err != nil {
		return fmt.Errorf("registering quote client health check: %w", err)
	}

	// 7. Create quote service (application layer)
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		QuoteClient: quoteClient,
		Metrics:     app.NewMetrics(prometheus.DefaultRegisterer),
		Logger:      logger,
	})

	// 8. Fetch one quote before listening; failure is logged, not fatal
	if cfg.Startup.ProbeEnabled {
		_, probeErr := app.RunStartupProbe(ctx, app.ProbeConfig{
			Service: quoteService,
			Timeout: cfg.Client.Timeout,
			Out:     os.Stdout,
			Logger:  logger,
		})
		if probeErr != nil {
			logger.Warn("startup probe failed, continuing", slog.Any("error", probeErr))
		}
	}

	// 9. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo, prometheus.DefaultGatherer)
	quoteHandler := handlers.NewQuoteHandler(quoteService)

	// 10. Create HTTP server and router
	server := http.New(&cfg.Server, logger)

	routerCfg := http.NewDefaultRouterConfig(logger, &cfg.App, healthHandler, quoteHandler)
	routerCfg.Timeout = cfg.Server.RequestTimeout
	http.SetupRouter(server.Engine(), routerCfg)

	// 11. Bind and serve in the background
	serverErr, err := server.Start()
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	// 12. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}

		return errors.New("server stopped unexpectedly")

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
