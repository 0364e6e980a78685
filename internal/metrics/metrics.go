// Package metrics records functional boxplot runs as prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fbplot"

// Recorder holds the run metrics of one process.
type Recorder struct {
	registry     *prometheus.Registry
	runs         *prometheus.CounterVec
	failures     prometheus.Counter
	duration     prometheus.Histogram
	outlierShare prometheus.Histogram
	functions    prometheus.Gauge
	evaluations  prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "The number of completed boxplot computations by depth measure.",
		}, []string{"measure"}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_failures_total",
			Help:      "The number of boxplot computations that returned an error.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_duration_seconds",
			Help:      "Wall time of boxplot computations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		outlierShare: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "outlier_ratio",
			Help:      "Share of input functions reported as outliers.",
			Buckets:   prometheus.LinearBuckets(0, 0.05, 11),
		}),
		functions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_functions",
			Help:      "The number of input functions of the last run.",
		}),
		evaluations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_depth_evaluations",
			Help:      "The number of depth measure evaluations of the last run.",
		}),
	}
}

// Run describes one completed computation.
type Run struct {
	Measure     string
	Functions   int
	Outliers    int
	Evaluations int64
	Elapsed     time.Duration
}

// Observe records a completed computation.
func (r *Recorder) Observe(run Run) {
	r.runs.WithLabelValues(run.Measure).Inc()
	r.duration.Observe(run.Elapsed.Seconds())
	r.functions.Set(float64(run.Functions))
	r.evaluations.Set(float64(run.Evaluations))

	if run.Functions > 0 {
		r.outlierShare.Observe(float64(run.Outliers) / float64(run.Functions))
	}
}

// Fail records a failed computation.
func (r *Recorder) Fail() {
	r.failures.Inc()
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics in the text exposition format, suitable
// for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
