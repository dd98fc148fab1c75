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

	"github.com/turbopyme/landing-telemetry/internal/api/router"
	"github.com/turbopyme/landing-telemetry/internal/collector"
	appconfig "github.com/turbopyme/landing-telemetry/internal/config"
	"github.com/turbopyme/landing-telemetry/internal/notify"
	"github.com/turbopyme/landing-telemetry/internal/observability/metrics"
	"github.com/turbopyme/landing-telemetry/pkg/logging"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting landing telemetry collector",
		"env", cfg.Env,
		"port", cfg.Port,
		"site", cfg.SiteID,
	)

	// Initialize stores and services
	leadStore := collector.NewInMemoryLeadStore()
	eventStore := collector.NewInMemoryEventStore(cfg.EventBufferSize)

	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		emailSender = sg
	} else {
		emailSender = notify.NewStubEmailSender(logger)
		logger.Warn("sendgrid not configured, lead notifications are stubbed")
	}

	// NewLeadNotifier returns nil when no recipient is configured; the
	// collector handler treats a nil notifier as disabled.
	notifier := notify.NewLeadNotifier(emailSender, cfg.LeadNotifyEmail, logger)

	registry := prometheus.NewRegistry()
	collectorMetrics := metrics.NewCollectorMetrics(registry)

	handler := collector.NewHandler(leadStore, eventStore, notifierOrNil(notifier), collectorMetrics, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		CollectorHandler:   handler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
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

// notifierOrNil flattens a typed-nil *notify.LeadNotifier into a nil
// interface so the handler's nil check works.
func notifierOrNil(n *notify.LeadNotifier) collector.Notifier {
	if n == nil {
		return nil
	}
	return n
}
