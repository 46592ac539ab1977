// Offer storefront - sells pre-priced offers against a headless
// commerce backend. Designed for Cloud Run deployment with stateless
// operation.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"offer-storefront/internal/apl"
	"offer-storefront/internal/checkout"
	"offer-storefront/internal/config"
	"offer-storefront/internal/handler"
	"offer-storefront/internal/metrics"
	"offer-storefront/internal/middleware"
	"offer-storefront/internal/saleor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := initLogger()

	// Load configuration
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("configuration loaded",
		slog.String("api_url", cfg.APIURL),
		slog.String("channel", cfg.Channel),
		slog.String("apl", cfg.APLKind),
		slog.String("environment", cfg.Environment),
	)

	// Create the credential store and verify the backend is registered.
	// A missing registration means every request would fail, so treat
	// it as fatal at startup.
	store, err := createAPL(cfg)
	if err != nil {
		return fmt.Errorf("creating APL: %w", err)
	}
	if _, err := store.Get(ctx, cfg.APIURL); err != nil {
		if errors.Is(err, apl.ErrNoAuthData) {
			return fmt.Errorf("no credentials registered for %s", cfg.APIURL)
		}
		return fmt.Errorf("checking credentials: %w", err)
	}

	m := metrics.New()

	// Commerce backend client
	backend, err := saleor.New(saleor.Config{
		APIURL:  cfg.APIURL,
		Channel: cfg.Channel,
		Tokens:  apl.NewTokenSource(store, cfg.APIURL),
		Timeout: cfg.BackendTimeout,
		Observe: m.ObserveBackend,
	})
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}

	// Checkout workflow orchestrating the purchase sequence
	workflow := checkout.New(checkout.Config{
		Backend: backend,
		Channel: cfg.Channel,
		Buyer:   cfg.Buyer,
		Logger:  logger,
		Observe: m.ObserveStep,
	})

	h := handler.New(workflow, backend, logger,
		handler.WithPurchaseObserver(m.ObservePurchase),
	)

	// Setup routes
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	mux.Handle("GET /metrics", m.Handler())

	// Apply middleware chain: recovery → request id → logging → handler
	// Recovery must be outermost to catch panics from logging middleware
	httpHandler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logging(logger),
	)(mux)

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Channel for server errors
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			slog.String("port", cfg.Port),
			slog.String("addr", server.Addr),
		)
		serverErr <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give outstanding requests time to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			// Force close if graceful shutdown fails
			server.Close()
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// createAPL creates the credential store named by configuration.
func createAPL(cfg *config.Config) (apl.APL, error) {
	switch cfg.APLKind {
	case config.APLStatic:
		return &apl.Static{Data: apl.AuthData{APIURL: cfg.APIURL, Token: cfg.APLToken}}, nil
	case config.APLFile:
		return &apl.File{Path: cfg.APLFile}, nil
	case config.APLSecretManager:
		return &apl.SecretManager{Project: cfg.GCPProject}, nil
	default:
		return nil, fmt.Errorf("unsupported APL kind: %s", cfg.APLKind)
	}
}

// initLogger creates a structured logger configured for the environment.
// Production uses JSON format for GCP Cloud Logging compatibility.
// Development uses text format for readability.
func initLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		// Add source location in debug mode
		AddSource: level == slog.LevelDebug,
	}

	// JSON for production (Cloud Logging compatible), text for development
	if os.Getenv("ENVIRONMENT") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
