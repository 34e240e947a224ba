// Package observability exposes prometheus instrumentation for the energy
// manager service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	baselineScoredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "energy_manager",
		Subsystem: "scoring",
		Name:      "baseline_requests_total",
		Help:      "Number of baseline score computations served.",
	})
	activityScoredCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "energy_manager",
		Subsystem: "scoring",
		Name:      "activity_requests_total",
		Help:      "Number of activity delta computations served, by primary category.",
	}, []string{"category"})
	auditFailureCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "energy_manager",
		Subsystem: "audit",
		Name:      "append_failures_total",
		Help:      "Number of best-effort audit writes that failed.",
	})
	lastScoredGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "energy_manager",
		Subsystem: "scoring",
		Name:      "last_scored_timestamp_seconds",
		Help:      "Unix timestamp of the most recent score computation.",
	})
)

func init() {
	prometheus.MustRegister(baselineScoredCounter, activityScoredCounter, auditFailureCounter, lastScoredGauge)
}

// RecordBaselineScored counts a served baseline computation.
func RecordBaselineScored() {
	baselineScoredCounter.Inc()
	lastScoredGauge.Set(float64(time.Now().Unix()))
}

// RecordActivityScored counts a served activity computation by category.
func RecordActivityScored(category string) {
	activityScoredCounter.WithLabelValues(category).Inc()
	lastScoredGauge.Set(float64(time.Now().Unix()))
}

// RecordAuditFailure counts a swallowed audit write error.
func RecordAuditFailure() {
	auditFailureCounter.Inc()
}
