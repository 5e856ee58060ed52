package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "logigraph_console"

// Metrics is safe to use through a nil pointer; every method is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	guardDecisions   *prometheus.CounterVec
	sessionEvents    *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	invalidations    *prometheus.CounterVec
	liveSubscribers  prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_decisions_total",
			Help:      "Route guard outcomes by decision.",
		}, []string{"decision"}),
		sessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_events_total",
			Help:      "Session transitions (restored, expired, login, logout, invalidated).",
		}, []string{"event"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Backend calls by target and status code.",
		}, []string{"target", "code"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_session_invalidations_total",
			Help:      "Sessions cleared because a backend answered 401.",
		}, []string{"target"}),
		liveSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracking_live_subscribers",
			Help:      "Open live tracking sockets.",
		}),
	}

	m.registry.MustRegister(
		m.guardDecisions,
		m.sessionEvents,
		m.upstreamRequests,
		m.invalidations,
		m.liveSubscribers,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) GuardDecision(decision string) {
	if m == nil {
		return
	}
	m.guardDecisions.WithLabelValues(decision).Inc()
}

// SessionEvent satisfies session.Observer.
func (m *Metrics) SessionEvent(event string) {
	if m == nil {
		return
	}
	m.sessionEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) UpstreamResponse(target string, status int) {
	if m == nil {
		return
	}
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.upstreamRequests.WithLabelValues(target, code).Inc()
}

func (m *Metrics) SessionInvalidated(target string) {
	if m == nil {
		return
	}
	m.invalidations.WithLabelValues(target).Inc()
}

func (m *Metrics) LiveSubscriberDelta(delta float64) {
	if m == nil {
		return
	}
	m.liveSubscribers.Add(delta)
}
