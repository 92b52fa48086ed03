package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/crimealert/beacon/internal/config"
	"github.com/crimealert/beacon/internal/geocode"
	"github.com/crimealert/beacon/internal/mailer"
	"github.com/crimealert/beacon/internal/match"
	"github.com/crimealert/beacon/internal/metrics"
	"github.com/crimealert/beacon/internal/repository"
	"github.com/crimealert/beacon/internal/server"
	"github.com/crimealert/beacon/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize the database connection.
	dtb, err := repository.NewDatabase(
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	// Create a new repository instance using the database connection.
	repo := repository.NewRepository(dtb, logger)

	// Create the mail gateway using the factory pattern based on configuration.
	// This allows runtime selection between a real SMTP relay and a dry-run log gateway.
	gateway, err := mailer.NewGateway(mailer.GatewayConfig{
		Type:          mailer.GatewayType(cfg.Mail.Provider),
		Host:          cfg.Mail.Host,
		Port:          cfg.Mail.Port,
		Username:      cfg.Mail.Username,
		Password:      cfg.Mail.Password,
		From:          cfg.Mail.From,
		FromName:      cfg.Mail.FromName,
		RatePerSecond: cfg.Mail.RatePerSecond,
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("Failed to create mail gateway: %v", err)
	}

	logger.InfoContext(ctx, "Mail gateway initialized", "type", cfg.Mail.Provider)

	composer := mailer.NewComposer()
	if cfg.Mail.TemplatePath != "" {
		composer, err = mailer.NewComposerFromFile(cfg.Mail.TemplatePath)
		if err != nil {
			log.Fatalf("Failed to load mail template: %v", err)
		}
	}

	// The reverse geocoder only enriches alert bodies with a display address,
	// so it is optional: an empty type disables it.
	var geocoder geocode.Provider
	if cfg.Geocoder.Type != "" {
		rateLimit := 50
		geocoder, err = geocode.NewProvider(geocode.ProviderConfig{
			Type:      geocode.ProviderType(cfg.Geocoder.Type),
			APIKey:    cfg.Geocoder.APIKey,
			RateLimit: rateLimit / cfg.Workers,
			Logger:    logger,
		})
		if err != nil {
			log.Fatalf("Failed to create reverse geocoding provider: %v", err)
		}

		logger.InfoContext(ctx, "Reverse geocoding provider initialized", "type", cfg.Geocoder.Type)
	}

	// Init the notifier with both matchers backed by the repository.
	notifier := service.NewNotifier(
		logger,
		match.NewGeoMatcher(repo, logger),
		match.NewZoneMatcher(repo, logger),
		gateway,
		cfg.Mail.Provider, // Gateway name for metrics
		composer,
		geocoder,
		appMetrics,
		cfg.Workers,
		cfg.RadiusKm,
		cfg.DispatchTimeout,
	)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	srv := server.New(logger, notifier, dtb, reg)
	if err = srv.Run(ctx, cfg.Port); err != nil {
		logger.ErrorContext(ctx, "HTTP server failed", "error", err)
	}

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
