// Tracks simulation-wide counters and distributions in a per-run Prometheus registry.

package sim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates statistics about a simulation run for final reporting.
// Each Simulator gets its own registry so that runs never share counters.
type Metrics struct {
	Registry *prometheus.Registry

	// EventsProcessed counts dispatched events by kind ("arrival", "departure").
	EventsProcessed *prometheus.CounterVec
	// PackagesDelivered counts packages that reached their destination.
	PackagesDelivered prometheus.Counter
	// PackagesRestored counts packages pushed back into a section after a departure.
	PackagesRestored prometheus.Counter
	// EmptyDepartures counts departure attempts that found an empty section.
	EmptyDepartures prometheus.Counter
	// BatchSize records the number of packages put on each transport.
	BatchSize prometheus.Histogram
	// DeliveryLatency records delivery clock minus post time, in ticks.
	DeliveryLatency prometheus.Histogram
	// PendingEvents tracks the scheduler size after each dispatched event.
	PendingEvents prometheus.Gauge
	// Clock tracks the simulation clock.
	Clock prometheus.Gauge
}

// NewMetrics creates a Metrics backed by a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		EventsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "warehouse_sim_events_processed_total",
				Help: "Total number of dispatched simulation events",
			},
			[]string{"kind"},
		),
		PackagesDelivered: factory.NewCounter(prometheus.CounterOpts{
			Name: "warehouse_sim_packages_delivered_total",
			Help: "Total number of delivered packages",
		}),
		PackagesRestored: factory.NewCounter(prometheus.CounterOpts{
			Name: "warehouse_sim_packages_restored_total",
			Help: "Total number of packages returned to a section after a departure",
		}),
		EmptyDepartures: factory.NewCounter(prometheus.CounterOpts{
			Name: "warehouse_sim_empty_departures_total",
			Help: "Total number of departures that found an empty section",
		}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "warehouse_sim_transport_batch_size",
			Help:    "Packages loaded per transport",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
		DeliveryLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "warehouse_sim_delivery_latency_ticks",
			Help:    "Ticks between posting and delivery",
			Buckets: prometheus.ExponentialBuckets(1, 2, 20),
		}),
		PendingEvents: factory.NewGauge(prometheus.GaugeOpts{
			Name: "warehouse_sim_pending_events",
			Help: "Events waiting in the scheduler",
		}),
		Clock: factory.NewGauge(prometheus.GaugeOpts{
			Name: "warehouse_sim_clock_ticks",
			Help: "Current simulation clock",
		}),
	}
}

// WriteToTextfile exports the registry in the Prometheus text format.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
