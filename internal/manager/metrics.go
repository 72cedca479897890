package manager

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"lingod/internal/host"
)

var (
	sessionsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lingod",
			Subsystem: "manager",
			Name:      "sessions_created_total",
			Help:      "Host sessions created",
		},
		[]string{"feature"},
	)

	ensureFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lingod",
			Subsystem: "manager",
			Name:      "ensure_failures_total",
			Help:      "Failed session ensures and admissions",
		},
		[]string{"feature", "reason"},
	)

	downloadProgressRatio = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "lingod",
			Subsystem: "manager",
			Name:      "download_progress_ratio",
			Help:      "Model download progress per feature (0..1)",
		},
		[]string{"feature"},
	)

	invocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lingod",
			Subsystem: "manager",
			Name:      "invocation_duration_seconds",
			Help:      "Duration of host invocations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"feature", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(sessionsCreatedTotal, ensureFailuresTotal, downloadProgressRatio, invocationDuration)
}

func observeInvocation(f host.Feature, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	invocationDuration.WithLabelValues(string(f), outcome).Observe(time.Since(start).Seconds())
}
