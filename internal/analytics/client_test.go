package analytics

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/turbopyme/landing-telemetry/pkg/logging"
)

func testContext() ContextFunc {
	return func() PageContext {
		return PageContext{
			URL:       "https://turbopyme.com/#pricing",
			Path:      "/",
			Title:     "TurboPyme - Facturación Electrónica",
			Referrer:  "https://google.com/",
			UserAgent: "test-agent/1.0",
			Screen:    Dimensions{Width: 1920, Height: 1080},
			Viewport:  Dimensions{Width: 1440, Height: 900},
		}
	}
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c := New(Config{
		TrackingURL: url,
		Environment: "production",
		Logger:      logging.New("error"),
		Context:     testContext(),
	})
	c.nowFunc = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestTrackSendsEnvelope(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type %q", ct)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ok := client.Track(context.Background(), "cta_click", EventData{"cta": "hero_signup"})
	if !ok {
		t.Fatal("expected track to succeed")
	}

	if got["eventType"] != "click" {
		t.Errorf("expected mapped type click, got %v", got["eventType"])
	}
	if got["cta"] != "hero_signup" {
		t.Errorf("expected caller data merged, got %v", got["cta"])
	}
	if got["timestamp"] != "2025-06-01T12:00:00Z" {
		t.Errorf("unexpected timestamp %v", got["timestamp"])
	}
	if got["url"] != "https://turbopyme.com/#pricing" {
		t.Errorf("unexpected url %v", got["url"])
	}
	if got["referrer"] != "https://google.com/" {
		t.Errorf("unexpected referrer %v", got["referrer"])
	}
	if got["userAgent"] != "test-agent/1.0" {
		t.Errorf("unexpected user agent %v", got["userAgent"])
	}
	screen, ok := got["screen"].(map[string]any)
	if !ok || screen["width"] != float64(1920) || screen["height"] != float64(1080) {
		t.Errorf("unexpected screen %v", got["screen"])
	}
	viewport, ok := got["viewport"].(map[string]any)
	if !ok || viewport["width"] != float64(1440) || viewport["height"] != float64(900) {
		t.Errorf("unexpected viewport %v", got["viewport"])
	}
}

func TestTrackCallerDataMayOverrideEventType(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.Track(context.Background(), "page_view", EventData{"eventType": "click"})

	if got["eventType"] != "click" {
		t.Fatalf("expected caller eventType to win, got %v", got["eventType"])
	}
}

func TestTrackNonOKStatusReturnsFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	if client.Track(context.Background(), "page_view", nil) {
		t.Fatal("expected track to report failure on 500")
	}
}

func TestTrackNetworkErrorReturnsFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := newTestClient(t, server.URL)
	if client.Track(context.Background(), "page_view", nil) {
		t.Fatal("expected track to report failure when endpoint is unreachable")
	}
}

func TestTrackDisabledIsNoOp(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := New(Config{
		TrackingURL: server.URL,
		Environment: "development",
		Logger:      logging.New("error"),
	})
	if client.IsTrackingEnabled() {
		t.Fatal("expected tracking disabled in development without debug")
	}
	if !client.Track(context.Background(), "page_view", nil) {
		t.Fatal("expected suppressed track to report success")
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no network calls, got %d", calls.Load())
	}
}

func TestDebugKeepsTrackingEnabledInDevelopment(t *testing.T) {
	client := New(Config{
		TrackingURL: "http://127.0.0.1:0",
		Environment: "development",
		Debug:       true,
		Logger:      logging.New("error"),
	})
	if !client.IsTrackingEnabled() {
		t.Fatal("expected debug override to keep tracking enabled")
	}
}

func TestSetEnabledTogglesFutureCalls(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.SetEnabled(false)
	client.Track(context.Background(), "page_view", nil)
	if calls.Load() != 0 {
		t.Fatalf("expected no calls while disabled, got %d", calls.Load())
	}

	client.SetEnabled(true)
	client.Track(context.Background(), "page_view", nil)
	if calls.Load() != 1 {
		t.Fatalf("expected one call after re-enabling, got %d", calls.Load())
	}
}

func TestWrappersShapePayloads(t *testing.T) {
	payloads := make(chan map[string]any, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got map[string]any
		json.NewDecoder(r.Body).Decode(&got)
		payloads <- got
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	client.TrackPageView(ctx, "")
	got := <-payloads
	if got["eventType"] != "view" || got["page"] != "/" || got["title"] == "" {
		t.Fatalf("unexpected page_view payload %v", got)
	}

	client.TrackButton(ctx, "start_trial", EventData{"section": "hero"})
	got = <-payloads
	if got["eventType"] != "click" || got["button"] != "start_trial" || got["section"] != "hero" {
		t.Fatalf("unexpected button payload %v", got)
	}

	client.TrackConversion(ctx, "plan_selected", nil)
	got = <-payloads
	// conversions deliberately map to click, see events.go
	if got["eventType"] != "click" || got["type"] != "plan_selected" {
		t.Fatalf("unexpected conversion payload %v", got)
	}

	client.TrackError(ctx, io.ErrUnexpectedEOF, nil)
	got = <-payloads
	if got["eventType"] != "view" || got["message"] != io.ErrUnexpectedEOF.Error() {
		t.Fatalf("unexpected error payload %v", got)
	}
}
