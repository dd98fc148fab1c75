// Command smoketest drives the landing SDK end to end against a running
// collector: one page view, one full contact form cycle. Useful for manually
// verifying a deployment.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/turbopyme/landing-telemetry/internal/analytics"
	appconfig "github.com/turbopyme/landing-telemetry/internal/config"
	"github.com/turbopyme/landing-telemetry/internal/contactform"
	"github.com/turbopyme/landing-telemetry/internal/leads"
	"github.com/turbopyme/landing-telemetry/pkg/logging"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := appconfig.Load()
	if cfg.TrackingURL == "" || cfg.LeadsURL == "" {
		log.Fatal("TRACKING_URL and LEADS_URL must be set")
	}

	logger := logging.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tracker := analytics.New(analytics.Config{
		TrackingURL: cfg.TrackingURL,
		Debug:       cfg.AnalyticsDebug,
		Environment: cfg.Env,
		Logger:      logger,
		Context: func() analytics.PageContext {
			return analytics.PageContext{
				URL:       "https://turbopyme.com/",
				Path:      "/",
				Title:     "TurboPyme smoketest",
				UserAgent: "landing-telemetry-smoketest/0.1",
				Screen:    analytics.Dimensions{Width: 1920, Height: 1080},
				Viewport:  analytics.Dimensions{Width: 1440, Height: 900},
			}
		},
	})

	submitter := leads.New(leads.Config{
		SubmitURL: cfg.LeadsURL,
		Timeout:   cfg.LeadTimeout,
		Logger:    logger,
	})

	fmt.Println("[1] Tracking page view...")
	if ok := tracker.TrackPageView(ctx, "/"); !ok && tracker.IsTrackingEnabled() {
		fmt.Println("    page view NOT accepted")
		os.Exit(1)
	}
	fmt.Println("    ok")

	fmt.Println("[2] Validating sample lead...")
	sample := leads.Lead{
		FirstName: "Smoke",
		LastName:  "Test",
		Email:     "smoketest@turbopyme.com",
		Message:   "Mensaje de prueba del smoketest, ignorar.",
	}
	if v := submitter.ValidateLead(sample); !v.IsValid {
		fmt.Printf("    validation failed: %v\n", v.Errors)
		os.Exit(1)
	}
	fmt.Println("    ok")

	fmt.Println("[3] Running contact form cycle...")
	form := contactform.New(tracker, submitter, contactform.WithLogger(logger))
	form.ApplyPlan("Pro")
	fields := contactform.Fields{
		FirstName: sample.FirstName,
		LastName:  sample.LastName,
		Email:     sample.Email,
		Message:   form.Fields().Message,
	}
	form.SetFields(fields)

	status := form.Submit(ctx)
	switch status.Kind {
	case contactform.StatusSuccess:
		fmt.Printf("    success: %s\n", status.Message)
	default:
		fmt.Printf("    FAILED: %s\n", status.Message)
		os.Exit(1)
	}
}
