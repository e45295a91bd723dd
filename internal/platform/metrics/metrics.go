package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for outbound API calls and gate decisions.
type Metrics struct {
	APIRequests        *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	GateDecisions      *prometheus.CounterVec
	SessionResolutions *prometheus.CounterVec
	CacheInvalidations *prometheus.CounterVec
}

// New registers and returns collectors on reg. Passing a fresh registry keeps
// tests isolated from the default one.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "uwevents_api_requests_total",
			Help: "Outbound API requests by operation and outcome",
		}, []string{"operation", "outcome"}),
		APIRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "uwevents_api_request_duration_seconds",
			Help:    "Latency of outbound API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		GateDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "uwevents_gate_decisions_total",
			Help: "Route gate decisions by outcome",
		}, []string{"outcome"}),
		SessionResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "uwevents_session_resolutions_total",
			Help: "Session status resolutions by resulting status",
		}, []string{"status"}),
		CacheInvalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "uwevents_cache_invalidations_total",
			Help: "Read-cache scope invalidations",
		}, []string{"scope"}),
	}
}

// ObserveRequest records one outbound call. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.APIRequests.WithLabelValues(operation, outcome).Inc()
	m.APIRequestDuration.WithLabelValues(operation).Observe(seconds)
}

// IncGateDecision records a gate outcome. Safe on a nil receiver.
func (m *Metrics) IncGateDecision(outcome string) {
	if m == nil {
		return
	}
	m.GateDecisions.WithLabelValues(outcome).Inc()
}

// IncSessionResolution records the status a resolution settled on. Safe on a nil receiver.
func (m *Metrics) IncSessionResolution(status string) {
	if m == nil {
		return
	}
	m.SessionResolutions.WithLabelValues(status).Inc()
}

// IncCacheInvalidation records a scope invalidation. Safe on a nil receiver.
func (m *Metrics) IncCacheInvalidation(scope string) {
	if m == nil {
		return
	}
	m.CacheInvalidations.WithLabelValues(scope).Inc()
}
