package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/turbopyme/landing-telemetry/internal/observability/metrics"
	"github.com/turbopyme/landing-telemetry/pkg/logging"
)

// EventData carries caller-supplied key/value pairs that are merged into the
// event envelope before transmission.
type EventData map[string]any

// Dimensions holds a width/height pair in CSS pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PageContext is the page state stamped onto every event at send time. The
// embedding application supplies it through Config.Context; a nil provider
// yields an empty context.
type PageContext struct {
	URL       string
	Path      string
	Title     string
	Referrer  string
	UserAgent string
	Screen    Dimensions
	Viewport  Dimensions
}

// ContextFunc supplies the page context captured alongside each event.
type ContextFunc func() PageContext

// Config controls how the analytics client behaves.
type Config struct {
	TrackingURL string
	// Debug keeps tracking enabled in the development environment and turns
	// on per-event debug logging.
	Debug       bool
	Environment string
	HTTPClient  *http.Client
	Logger      *logging.Logger
	Metrics     *metrics.ClientMetrics
	Context     ContextFunc
}

// Client emits best-effort telemetry. Track never returns an error and never
// panics into caller code; every failure is logged and reported as false.
type Client struct {
	trackingURL string
	debug       bool
	httpClient  *http.Client
	logger      *logging.Logger
	metrics     *metrics.ClientMetrics
	pageContext ContextFunc
	enabled     atomic.Bool

	nowFunc func() time.Time
}

// New creates an analytics client. Tracking starts disabled when the
// environment is "development" and the debug override is off.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// No timeout: analytics sends are fire-and-forget and their latency
		// is never awaited by callers.
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	pageContext := cfg.Context
	if pageContext == nil {
		pageContext = func() PageContext { return PageContext{} }
	}
	c := &Client{
		trackingURL: strings.TrimSpace(cfg.TrackingURL),
		debug:       cfg.Debug,
		httpClient:  httpClient,
		logger:      logger,
		metrics:     cfg.Metrics,
		pageContext: pageContext,
		nowFunc:     time.Now,
	}
	c.enabled.Store(!(strings.EqualFold(cfg.Environment, "development") && !cfg.Debug))
	return c
}

// SetEnabled toggles tracking for future calls.
func (c *Client) SetEnabled(enabled bool) {
	c.enabled.Store(enabled)
}

// IsTrackingEnabled reports whether events are currently transmitted.
func (c *Client) IsTrackingEnabled() bool {
	return c.enabled.Load()
}

// Track sends one event to the tracking endpoint and reports whether the
// network call succeeded. When tracking is disabled the event is only logged
// locally and the call reports success.
func (c *Client) Track(ctx context.Context, eventName string, data EventData) bool {
	if !c.enabled.Load() {
		c.logger.Debug("analytics disabled, event suppressed", "event", eventName, "data", data)
		return true
	}

	eventType := MapEventType(eventName)
	payload := map[string]any{
		"eventType": string(eventType),
	}
	// Caller data merges after eventType, so an explicit eventType key in
	// data wins. Context fields merge last and always win.
	for k, v := range data {
		payload[k] = v
	}
	page := c.pageContext()
	payload["timestamp"] = c.nowFunc().UTC().Format(time.RFC3339)
	payload["url"] = page.URL
	payload["referrer"] = page.Referrer
	payload["userAgent"] = page.UserAgent
	payload["screen"] = page.Screen
	payload["viewport"] = page.Viewport

	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("analytics tracking failed", "event", eventName, "error", err)
		c.metrics.ObserveEvent(string(eventType), "error")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.trackingURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("analytics tracking failed", "event", eventName, "error", err)
		c.metrics.ObserveEvent(string(eventType), "error")
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("analytics tracking failed", "event", eventName, "error", err)
		c.metrics.ObserveEvent(string(eventType), "error")
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("analytics endpoint rejected event", "event", eventName, "status", resp.StatusCode)
		c.metrics.ObserveEvent(string(eventType), "rejected")
		return false
	}

	if c.debug {
		c.logger.Debug("analytics event tracked", "event", eventName, "type", eventType)
	}
	c.metrics.ObserveEvent(string(eventType), "sent")
	return true
}

// TrackPageView tracks a page view. An empty page falls back to the current
// context path.
func (c *Client) TrackPageView(ctx context.Context, page string) bool {
	pc := c.pageContext()
	if page == "" {
		page = pc.Path
	}
	return c.Track(ctx, "page_view", EventData{
		"page":  page,
		"title": pc.Title,
	})
}

// TrackClick tracks a user interaction with a named element.
func (c *Client) TrackClick(ctx context.Context, element string, data EventData) bool {
	return c.Track(ctx, "click", merge(EventData{"element": element}, data))
}

// TrackFormSubmit tracks a form submission.
func (c *Client) TrackFormSubmit(ctx context.Context, formName string, data EventData) bool {
	return c.Track(ctx, "form_submit", merge(EventData{"form": formName}, data))
}

// TrackButton tracks a button click.
func (c *Client) TrackButton(ctx context.Context, buttonName string, data EventData) bool {
	return c.Track(ctx, "button_click", merge(EventData{"button": buttonName}, data))
}

// TrackCTA tracks a call-to-action interaction.
func (c *Client) TrackCTA(ctx context.Context, ctaName string, data EventData) bool {
	return c.Track(ctx, "cta_click", merge(EventData{"cta": ctaName}, data))
}

// TrackConversion tracks a conversion of the given type.
func (c *Client) TrackConversion(ctx context.Context, conversionType string, data EventData) bool {
	return c.Track(ctx, "conversion", merge(EventData{"type": conversionType}, data))
}

// TrackError tracks a client-side error.
func (c *Client) TrackError(ctx context.Context, err error, data EventData) bool {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return c.Track(ctx, "error", merge(EventData{"message": message}, data))
}

// merge overlays data on top of base; caller data wins on key collisions.
func merge(base, data EventData) EventData {
	for k, v := range data {
		base[k] = v
	}
	return base
}
