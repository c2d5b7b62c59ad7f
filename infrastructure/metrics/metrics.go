// Package metrics records batch and model-call counters in a private Prometheus registry.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "listingllm"

// Recorder collects the counters of one process.
type Recorder struct {
	registry       *prometheus.Registry
	processed      prometheus.Counter
	failed         prometheus.Counter
	ratingsSkipped prometheus.Counter
	attempts       *prometheus.CounterVec
	attemptLatency *prometheus.HistogramVec
	lastRun        prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		processed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_processed_total",
			Help:      "Total number of listings enriched and committed",
		}),
		failed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_failed_total",
			Help:      "Total number of listings whose enrichment was rolled back",
		}),
		ratingsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ratings_skipped_total",
			Help:      "Total number of rating responses that could not be parsed",
		}),
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_attempts_total",
			Help:      "Total number of model endpoint attempts by outcome",
		}, []string{"outcome"}),
		attemptLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_attempt_duration_seconds",
			Help:      "Duration of model endpoint attempts in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
		}, []string{"outcome"}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "batch_last_completed_timestamp_seconds",
			Help:      "Unix time the last batch finished",
		}),
	}
}

// Registry returns the registry holding every metric.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ListingProcessed counts a committed listing.
func (r *Recorder) ListingProcessed() { r.processed.Inc() }

// ListingFailed counts a rolled back listing.
func (r *Recorder) ListingFailed() { r.failed.Inc() }

// RatingSkipped counts an unparseable rating response.
func (r *Recorder) RatingSkipped() { r.ratingsSkipped.Inc() }

// BatchCompleted stamps the end of a batch.
func (r *Recorder) BatchCompleted(at time.Time) { r.lastRun.Set(float64(at.Unix())) }

// ObserveAttempt records one model endpoint attempt.
func (r *Recorder) ObserveAttempt(outcome string, duration time.Duration) {
	r.attempts.WithLabelValues(outcome).Inc()
	r.attemptLatency.WithLabelValues(outcome).Observe(duration.Seconds())
}

// WriteTextfile writes every metric to path in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
