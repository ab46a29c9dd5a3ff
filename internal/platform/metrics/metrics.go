// Package metrics agrupa los contadores de sincronización expuestos en /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "petcare"

type Metrics struct {
	registry *prometheus.Registry

	WriteFailures    *prometheus.CounterVec // collection, op
	ListenFailures   *prometheus.CounterVec // collection
	SnapshotsApplied *prometheus.CounterVec // collection
	ActiveSessions   prometheus.Gauge
	UpstreamLatency  *prometheus.HistogramVec // service, status
}

// New usa un registry propio para que los tests no choquen con el global.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		WriteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_write_failures_total",
			Help:      "Remote set/delete calls that failed (optimistic state kept).",
		}, []string{"collection", "op"}),
		ListenFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listen_failures_total",
			Help:      "Live listener errors; the affected list stops updating.",
		}, []string{"collection"}),
		SnapshotsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_applied_total",
			Help:      "Remote snapshots mirrored into local state.",
		}, []string{"collection"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Signed-in sessions with running subscriptions.",
		}),
		UpstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Calls to external services (token verification).",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "status"}),
	}
	reg.MustRegister(
		m.WriteFailures,
		m.ListenFailures,
		m.SnapshotsApplied,
		m.ActiveSessions,
		m.UpstreamLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Los helpers toleran m == nil para que los componentes funcionen sin métricas.

func (m *Metrics) WriteFailed(collection, op string) {
	if m == nil {
		return
	}
	m.WriteFailures.WithLabelValues(collection, op).Inc()
}

func (m *Metrics) ListenFailed(collection string) {
	if m == nil {
		return
	}
	m.ListenFailures.WithLabelValues(collection).Inc()
}

func (m *Metrics) SnapshotApplied(collection string) {
	if m == nil {
		return
	}
	m.SnapshotsApplied.WithLabelValues(collection).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}

// UpstreamObserver sirve como httpclient.Observer. status "0" = sin respuesta.
func (m *Metrics) UpstreamObserver(service string) func(method, path string, status int, elapsed time.Duration) {
	return func(_, _ string, status int, elapsed time.Duration) {
		if m == nil {
			return
		}
		m.UpstreamLatency.WithLabelValues(service, strconv.Itoa(status)).Observe(elapsed.Seconds())
	}
}
