package metrics

import "github.com/prometheus/client_golang/prometheus"

// ClientMetrics exposes counters for the landing SDK clients.
type ClientMetrics struct {
	eventsTotal *prometheus.CounterVec
	leadsTotal  *prometheus.CounterVec
}

func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	m := &ClientMetrics{
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "turbopyme",
			Subsystem: "landing_sdk",
			Name:      "events_total",
			Help:      "Analytics events emitted by the SDK",
		}, []string{"event_type", "outcome"}),
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "turbopyme",
			Subsystem: "landing_sdk",
			Name:      "lead_submissions_total",
			Help:      "Lead submissions attempted by the SDK",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.eventsTotal, m.leadsTotal)
	return m
}

func (m *ClientMetrics) ObserveEvent(eventType, outcome string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(eventType, outcome).Inc()
}

func (m *ClientMetrics) ObserveLeadSubmission(outcome string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(outcome).Inc()
}

// CollectorMetrics exposes counters/histograms for the collector endpoints.
type CollectorMetrics struct {
	leadsTotal     *prometheus.CounterVec
	eventsTotal    *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewCollectorMetrics(reg prometheus.Registerer) *CollectorMetrics {
	m := &CollectorMetrics{
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "turbopyme",
			Subsystem: "collector",
			Name:      "leads_total",
			Help:      "Lead submissions received",
		}, []string{"site", "status"}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "turbopyme",
			Subsystem: "collector",
			Name:      "events_total",
			Help:      "Analytics events received",
		}, []string{"site", "event_type"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "turbopyme",
			Subsystem: "collector",
			Name:      "request_latency_seconds",
			Help:      "Latency of collector endpoint handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.leadsTotal, m.eventsTotal, m.requestLatency)
	return m
}

func (m *CollectorMetrics) ObserveLead(site, status string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(site, status).Inc()
}

func (m *CollectorMetrics) ObserveEvent(site, eventType string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(site, eventType).Inc()
}

func (m *CollectorMetrics) ObserveLatency(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(endpoint).Observe(seconds)
}
