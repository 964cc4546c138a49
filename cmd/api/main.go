package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lofty-lead-relay/internal/api/router"
	appconfig "lofty-lead-relay/internal/config"
	"lofty-lead-relay/internal/intake"
	"lofty-lead-relay/internal/lofty"
	"lofty-lead-relay/internal/observability/metrics"
	"lofty-lead-relay/pkg/logging"
)

func main() {
	// .env is optional; real environments configure through the process env.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lofty-lead-relay API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.LoftyAPIKey == "" {
		// Keep serving so the misconfiguration surfaces as a 500 per request
		// instead of a crash loop, but make it loud at startup.
		logger.Error("LOFTY_API_KEY is not set; submissions will be rejected")
	}

	registry := prometheus.NewRegistry()
	intakeMetrics := metrics.NewIntakeMetrics(registry)

	client := lofty.NewClient(cfg.LoftyAPIKey, logger,
		lofty.WithBaseURL(cfg.LoftyBaseURL),
		lofty.WithTimeout(cfg.LoftyTimeout),
	)

	handler := intake.NewHandler(client, intake.Options{
		APIKeyConfigured: cfg.LoftyAPIKey != "",
		DefaultSource:    cfg.DefaultSource,
		DefaultTags:      cfg.DefaultTags,
		AssigneeID:       cfg.AssigneeID,
		AssigneeKeyStyle: cfg.AssigneeKeyStyle,
	}, logger, intakeMetrics)

	r := router.New(&router.Config{
		Logger:             logger,
		IntakeHandler:      handler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
