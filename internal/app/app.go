// Package app wires the HTTP API server: configuration, logging,
// observability, middleware chain and routes.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"misoreports/internal/client"
	"misoreports/internal/config"
	apperrors "misoreports/internal/errors"
	"misoreports/internal/infrastructure"
	custommw "misoreports/internal/middleware"
	handlers "misoreports/internal/transport/http"
)

// Application is the assembled server.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Providers *infrastructure.OTelProviders
	Client    *client.Client
	Router    chi.Router
	Server    *http.Server
}

// NewApplication loads configuration and assembles every component.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("initializing otel: %w", err)
	}

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		Providers: providers,
		Client: client.New(
			client.WithHTTPClient(&http.Client{Timeout: cfg.Client.Timeout}),
			client.WithUserAgent(cfg.Client.UserAgent),
			client.WithLogger(logger),
		),
	}
	if err := app.setupRouter(); err != nil {
		return nil, err
	}

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)

	otelMW, err := custommw.NewOTel(a.Providers)
	if err != nil {
		return fmt.Errorf("creating otel middleware: %w", err)
	}
	r.Use(otelMW.Handler)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.Compress(5))

	errorHandler := apperrors.NewHandler(a.Logger)
	reportHandler := handlers.NewReportHandler(a.Client, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler()

	rateLimiter := custommw.NewRateLimiter(
		a.Config.Server.RateLimitRPS, a.Config.Server.RateLimitBurst, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(rateLimiter.Handler)
		r.Use(custommw.Timeout(a.Config.Server.WriteTimeout, a.Logger))

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.Version)
		r.Mount("/reports", reportHandler.Routes())
	})

	if a.Providers.PrometheusHTTP != nil {
		r.Handle("/metrics", a.Providers.PrometheusHTTP)
	}

	a.Router = r
	return nil
}

// Run starts the server and blocks until a termination signal, then shuts
// down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := a.Providers.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("otel shutdown failed", slog.String("error", err.Error()))
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	return nil
}
