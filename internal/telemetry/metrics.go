package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for benchmark runs.
// Each instance owns its registry so repeated runs in one process do not clash.
type Metrics struct {
	registry *prometheus.Registry

	Repetitions       *prometheus.CounterVec
	RepetitionSeconds *prometheus.HistogramVec
	Failures          *prometheus.CounterVec
	SampleElements    prometheus.Gauge
}

// NewMetrics creates and registers all collectors
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Repetitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speedtests_repetitions_total",
			Help: "Total number of completed benchmark repetitions",
		},
		[]string{"variant"},
	)

	m.RepetitionSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "speedtests_repetition_seconds",
			Help:    "Wall-clock duration of a benchmark repetition in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
		[]string{"variant"},
	)

	m.Failures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speedtests_failures_total",
			Help: "Total number of benchmark runs aborted by an error",
		},
		[]string{"variant"},
	)

	m.SampleElements = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "speedtests_sample_elements",
			Help: "Number of elements in the loaded sample",
		},
	)

	m.registry.MustRegister(
		m.Repetitions,
		m.RepetitionSeconds,
		m.Failures,
		m.SampleElements,
	)

	return m
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetSampleElements records the size of the loaded sample.
func (m *Metrics) SetSampleElements(n int) {
	m.SampleElements.Set(float64(n))
}

// TrackFailure counts an aborted run.
func (m *Metrics) TrackFailure(variant string) {
	m.Failures.WithLabelValues(variant).Inc()
}

// Observer returns a benchmark observer recording repetitions of variant.
func (m *Metrics) Observer(variant string) *RepetitionObserver {
	return &RepetitionObserver{
		count:    m.Repetitions.WithLabelValues(variant),
		duration: m.RepetitionSeconds.WithLabelValues(variant),
	}
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// RepetitionObserver feeds repetition timings into the collectors.
type RepetitionObserver struct {
	count    prometheus.Counter
	duration prometheus.Observer
}

func (o *RepetitionObserver) Observe(repetition int, elapsed time.Duration) {
	o.count.Inc()
	o.duration.Observe(elapsed.Seconds())
	LogDebug("repetition finished", "repetition", repetition, "seconds", elapsed.Seconds())
}
