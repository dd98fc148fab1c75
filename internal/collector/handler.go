package collector

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/turbopyme/landing-telemetry/internal/observability/metrics"
	"github.com/turbopyme/landing-telemetry/pkg/logging"
)

var tracer = otel.Tracer("turbopyme.internal.collector")

const notifyTimeout = 10 * time.Second

// Notifier forwards a captured lead to the sales team.
type Notifier interface {
	NotifyNewLead(ctx context.Context, lead *StoredLead) error
}

// Handler serves the two public collector endpoints.
type Handler struct {
	leads    LeadStore
	events   EventStore
	notifier Notifier
	metrics  *metrics.CollectorMetrics
	logger   *logging.Logger
}

// NewHandler creates a collector handler. notifier and m may be nil.
func NewHandler(leads LeadStore, events EventStore, notifier Notifier, m *metrics.CollectorMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		leads:    leads,
		events:   events,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

type trackEventRequest struct {
	EventType string `json:"eventType"`
}

// TrackEvent handles POST /api/analytics/track/{site}. The full envelope is
// stored as-is; only eventType is inspected.
func (h *Handler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "collector.TrackEvent")
	defer span.End()

	site := chi.URLParam(r, "site")
	span.SetAttributes(attribute.String("site", site))

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	var req trackEventRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.EventType == "" {
		writeError(w, http.StatusBadRequest, "eventType is required")
		return
	}

	evt, err := h.events.Append(ctx, site, req.EventType, raw)
	if err != nil {
		if errors.Is(err, ErrInvalidEventType) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to store event", "error", err, "site", site)
		writeError(w, http.StatusInternalServerError, "failed to store event")
		return
	}

	span.SetAttributes(attribute.String("event_type", evt.EventType))
	h.metrics.ObserveEvent(site, evt.EventType)
	h.metrics.ObserveLatency("events", time.Since(start).Seconds())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "accepted", "id": evt.ID})
}

// CreateLead handles POST /api/leads/contact/{site}. The response message is
// surfaced verbatim by the landing SDK.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "collector.CreateLead")
	defer span.End()

	site := chi.URLParam(r, "site")
	span.SetAttributes(attribute.String("site", site))

	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode lead request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	lead, err := h.leads.Create(ctx, site, &req)
	if err != nil {
		h.metrics.ObserveLead(site, "rejected")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("lead captured", "id", lead.ID, "site", site, "name", lead.Name)
	h.metrics.ObserveLead(site, "created")
	h.metrics.ObserveLatency("leads", time.Since(start).Seconds())

	if h.notifier != nil {
		// Detached: notification latency must not delay the form response.
		go func(lead *StoredLead) {
			nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := h.notifier.NotifyNewLead(nctx, lead); err != nil {
				h.logger.Error("lead notification failed", "error", err, "lead_id", lead.ID)
			}
		}(lead)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Lead received",
		"id":      lead.ID,
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
