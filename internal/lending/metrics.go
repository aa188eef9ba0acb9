package lending

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lendingindexor_events_applied_total",
			Help: "Total number of events projected by event type",
		},
		[]string{"event"},
	)

	eventsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lendingindexor_events_skipped_total",
			Help: "Total number of events ignored because a referenced entity is unknown",
		},
		[]string{"event", "reason"},
	)

	marketRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lendingindexor_market_refreshes_total",
			Help: "Total number of market refreshes by outcome",
		},
		[]string{"outcome"},
	)

	marketRefreshTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lendingindexor_market_refresh_duration_seconds",
			Help:    "Duration of market refreshes that read contract state",
			Buckets: prometheus.DefBuckets,
		},
	)

	toleratedReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lendingindexor_tolerated_read_failures_total",
			Help: "Total number of contract reads that failed and were replaced by a default",
		},
		[]string{"call"},
	)

	auditWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lendingindexor_transfer_audit_warnings_total",
			Help: "Total number of events seen without the pool token transfer that should accompany them",
		},
		[]string{"event"},
	)
)

func eventAppliedInc(event string) {
	eventsApplied.WithLabelValues(event).Inc()
}

func eventSkippedInc(event, reason string) {
	eventsSkipped.WithLabelValues(event, reason).Inc()
}

func marketRefreshInc(outcome string) {
	marketRefreshes.WithLabelValues(outcome).Inc()
}

func marketRefreshDuration(d time.Duration) {
	marketRefreshTime.Observe(d.Seconds())
}

func toleratedReadInc(call string) {
	toleratedReads.WithLabelValues(call).Inc()
}

func auditWarningInc(event string) {
	auditWarnings.WithLabelValues(event).Inc()
}
