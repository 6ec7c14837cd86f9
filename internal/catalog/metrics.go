package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// loadsTotal counts Load calls by outcome: ok, partial, failed, rejected.
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_loads_total",
		Help: "Total number of catalog loads by outcome",
	}, []string{"outcome"})

	// loadDuration tracks the wall time of a whole Load.
	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Help:    "Time taken to load the catalog",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	})

	// fetchDuration tracks the time taken to fetch each entity.
	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Time taken to fetch a catalog entity",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"entity"})

	// fetchErrors counts failed entity fetches.
	fetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_errors_total",
		Help: "Total number of failed catalog entity fetches",
	}, []string{"entity"})

	// entityRecords tracks the number of records per entity in the live snapshot.
	entityRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalog_entity_records",
		Help: "Number of records per entity in the published snapshot",
	}, []string{"entity"})

	// snapshotVersion tracks the version of the published snapshot.
	snapshotVersion = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_snapshot_version",
		Help: "Version of the published catalog snapshot",
	})

	// snapshotAge tracks the age of the published snapshot.
	snapshotAge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_snapshot_age_seconds",
		Help: "Age of the published catalog snapshot in seconds",
	})

	// circuitState tracks the circuit breaker state (0 closed, 1 open, 2 half-open).
	circuitState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalog_circuit_breaker_state",
		Help: "Circuit breaker state: 0 closed, 1 open, 2 half-open",
	}, []string{"breaker"})
)

// MetricsRecorder records catalog metrics. A nil recorder is a no-op.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordLoad records a finished Load.
func (m *MetricsRecorder) RecordLoad(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	loadsTotal.WithLabelValues(outcome).Inc()
	loadDuration.Observe(d.Seconds())
}

// RecordFetch records one entity fetch.
func (m *MetricsRecorder) RecordFetch(e Entity, d time.Duration, err error) {
	if m == nil {
		return
	}
	fetchDuration.WithLabelValues(e.String()).Observe(d.Seconds())
	if err != nil {
		fetchErrors.WithLabelValues(e.String()).Inc()
	}
}

// RecordSnapshot records the shape of a newly published snapshot.
func (m *MetricsRecorder) RecordSnapshot(s *Snapshot) {
	if m == nil {
		return
	}
	for _, e := range Entities() {
		entityRecords.WithLabelValues(e.String()).Set(float64(s.Len(e)))
	}
	snapshotVersion.Set(float64(s.Version()))
	snapshotAge.Set(0)
}

// RecordSnapshotAge records how old the published snapshot is.
func (m *MetricsRecorder) RecordSnapshotAge(age time.Duration) {
	if m == nil {
		return
	}
	snapshotAge.Set(age.Seconds())
}

// RecordCircuitState records a circuit breaker transition.
func (m *MetricsRecorder) RecordCircuitState(name string, state CircuitBreakerState) {
	if m == nil {
		return
	}
	circuitState.WithLabelValues(name).Set(float64(state))
}
