package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for a project
type Registry struct {
	// Topology metrics
	NetworkPoresTotal      prometheus.Gauge
	NetworkThroatsTotal    prometheus.Gauge
	IncidenceRebuildsTotal prometheus.Counter

	// Model execution metrics
	RegenerationsTotal  *prometheus.CounterVec
	ModelDuration       *prometheus.HistogramVec
	ModelFailuresTotal  *prometheus.CounterVec
	PropertyWritesTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a metrics registry backed by its own Prometheus registry
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.NetworkPoresTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pnm_network_pores_total",
			Help: "Total number of pores in the network",
		},
	)

	r.NetworkThroatsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pnm_network_throats_total",
			Help: "Total number of throats in the network",
		},
	)

	r.IncidenceRebuildsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pnm_incidence_rebuilds_total",
			Help: "Number of times the pore-throat incidence matrix was rebuilt",
		},
	)

	r.RegenerationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pnm_regenerations_total",
			Help: "Total number of model regeneration passes",
		},
		[]string{"object", "status"},
	)

	r.ModelDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pnm_model_duration_seconds",
			Help:    "Model execution duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"model"},
	)

	r.ModelFailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pnm_model_failures_total",
			Help: "Total number of failed model executions",
		},
		[]string{"model"},
	)

	r.PropertyWritesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pnm_property_writes_total",
			Help: "Total number of property array writes",
		},
		[]string{"kind"},
	)

	return r
}

// RecordModel records a single model execution with its duration
func (r *Registry) RecordModel(model string, duration time.Duration, err error) {
	r.ModelDuration.WithLabelValues(model).Observe(duration.Seconds())
	if err != nil {
		r.ModelFailuresTotal.WithLabelValues(model).Inc()
	}
}

// RecordRegeneration records a full regeneration pass for an object
func (r *Registry) RecordRegeneration(object, status string) {
	r.RegenerationsTotal.WithLabelValues(object, status).Inc()
}

// RecordPropertyWrite records a write into a property store
func (r *Registry) RecordPropertyWrite(kind string) {
	r.PropertyWritesTotal.WithLabelValues(kind).Inc()
}

// UpdateTopology updates the element-count gauges
func (r *Registry) UpdateTopology(pores, throats int) {
	r.NetworkPoresTotal.Set(float64(pores))
	r.NetworkThroatsTotal.Set(float64(throats))
}

// Gatherer exposes the underlying Prometheus gatherer for scraping or inspection
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
