// Package metrics exposes Prometheus instrumentation for the coordinator.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for switchboard.
type Metrics struct {
	registry *prometheus.Registry

	// Engine-side events routed through the coordinator.
	EngineEventsTotal *prometheus.CounterVec

	// Bus activity
	NotificationsTotal    prometheus.Counter
	SubscriberPanicsTotal prometheus.Counter

	// Coordinator state
	ViewsRegistered   prometheus.Gauge
	StreamingSessions prometheus.Gauge
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		EngineEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "switchboard_engine_events_total",
				Help: "Total number of engine events routed, by event type",
			},
			[]string{"type"},
		),
		NotificationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "switchboard_notifications_total",
				Help: "Total number of notifications published on the bus",
			},
		),
		SubscriberPanicsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "switchboard_subscriber_panics_total",
				Help: "Total number of subscriber callbacks that panicked",
			},
		),
		ViewsRegistered: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "switchboard_views_registered",
				Help: "Number of currently registered display surfaces",
			},
		),
		StreamingSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "switchboard_streaming_sessions",
				Help: "Number of sessions currently streaming",
			},
		),
	}

	registry.MustRegister(
		m.EngineEventsTotal,
		m.NotificationsTotal,
		m.SubscriberPanicsTotal,
		m.ViewsRegistered,
		m.StreamingSessions,
	)

	return m
}

// Handler returns an HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
