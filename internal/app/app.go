package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/config"
	httpcontroller "github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/controller/http"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/normalizer"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/policy"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/domain/analytics/service"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/httpx/response"
	"github.com/naouslk/Instagram-Analytics-Dashboard-with-n8n-Integration/internal/httpx/upstream/n8n"
)

// App is the main application container
type App struct {
	cfg        config.Config
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger

	webhook *n8n.Client

	// Domain policies (interfaces for HTTP handlers)
	analyticsPolicy *policy.Policy
}

// Option configures an App
type Option func(*App)

// WithLogger replaces the default JSON logger on stdout
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates and initializes the application
func NewApp(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	app := &App{
		cfg: cfg,
		logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		})),
	}
	for _, opt := range opts {
		opt(app)
	}

	// Initialize router with middleware
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	app.router = r

	// Initialize infrastructure
	if err := app.initInfrastructure(ctx); err != nil {
		return nil, fmt.Errorf("initializing infrastructure: %w", err)
	}

	// Initialize domain layers
	if err := app.initDomains(ctx); err != nil {
		return nil, fmt.Errorf("initializing domains: %w", err)
	}

	// Register routes
	if err := app.registerRoutes(); err != nil {
		return nil, fmt.Errorf("registering routes: %w", err)
	}

	// Initialize HTTP server
	app.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// initInfrastructure initializes upstream clients
func (a *App) initInfrastructure(ctx context.Context) error {
	a.webhook = n8n.New(
		n8n.WithURL(a.cfg.Webhook.URL),
		n8n.WithTimeout(a.cfg.Webhook.Timeout),
	)

	if !a.webhook.Configured() {
		a.logger.Warn("N8N_WEBHOOK_URL is empty, only demo usernames will resolve")
	}
	if a.cfg.Server.RequestTimeout <= a.cfg.Webhook.Timeout {
		a.logger.Warn("request timeout does not exceed webhook timeout",
			"request_timeout", a.cfg.Server.RequestTimeout.String(),
			"webhook_timeout", a.cfg.Webhook.Timeout.String(),
		)
	}

	return nil
}

// initDomains initializes domain layers (Normalizer, Service, Policy)
func (a *App) initDomains(ctx context.Context) error {
	norm := normalizer.New(normalizer.WithLogger(a.logger.With("component", "normalizer")))

	analyticsService := service.New(a.webhook, norm)

	a.analyticsPolicy = policy.New(analyticsService,
		policy.WithDemoUsernames(a.cfg.Demo.Usernames...),
		policy.WithFallbackOnError(a.cfg.Demo.FallbackOnError),
		policy.WithLogger(a.logger.With("component", "analytics")),
	)

	return nil
}

// registerRoutes registers all HTTP routes
func (a *App) registerRoutes() error {
	// Health check
	a.router.Get("/healthz", a.healthHandler)
	a.router.Get("/readyz", a.readyHandler)

	// Swagger UI documentation
	swaggerHandler, err := httpcontroller.NewSwaggerHandler("Instagram Analytics API", OpenAPISpec)
	if err != nil {
		return err
	}
	swaggerHandler.RegisterRoutes(a.router)

	// API v1
	a.router.Route("/api/v1", func(r chi.Router) {
		analyticsHandler := httpcontroller.NewAnalyticsHandler(a.analyticsPolicy)
		analyticsHandler.RegisterRoutes(r)
	})

	return nil
}

// Handler returns the root HTTP handler
func (a *App) Handler() http.Handler {
	return a.router
}

// healthHandler handles health check requests
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

// readyHandler handles readiness check requests
func (a *App) readyHandler(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"status":             "ready",
		"webhook_configured": a.webhook.Configured(),
	})
}

// Run starts the application and blocks until shutdown signal
func (a *App) Run(ctx context.Context) error {
	// Channel to receive errors from server
	errCh := make(chan error, 1)

	// Start HTTP server in goroutine
	go func() {
		a.logger.Info("starting HTTP server", "addr", a.cfg.Server.Address())
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		a.logger.Info("context cancelled")
	}

	// Graceful shutdown
	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down...")

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}

	a.logger.Info("shutdown complete")
	return nil
}
