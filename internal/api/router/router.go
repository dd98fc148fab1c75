package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/turbopyme/landing-telemetry/internal/collector"
	httpmiddleware "github.com/turbopyme/landing-telemetry/internal/http/middleware"
	"github.com/turbopyme/landing-telemetry/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger           *logging.Logger
	CollectorHandler *collector.Handler
	MetricsHandler   http.Handler

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.CollectorHandler.HealthCheck)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public collector endpoints, rate limited per IP.
	r.Group(func(public chi.Router) {
		if cfg.RateLimitRPS > 0 {
			public.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		}
		public.Post("/api/analytics/track/{site}", cfg.CollectorHandler.TrackEvent)
		public.Post("/api/leads/contact/{site}", cfg.CollectorHandler.CreateLead)
	})

	return r
}
