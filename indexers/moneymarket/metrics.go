package moneymarket

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lendingindexor_moneymarket_batches_applied_total",
		Help: "Total number of log batches committed by money market indexers",
	})

	eventsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lendingindexor_moneymarket_events_applied_total",
		Help: "Total number of decoded events applied by money market indexers",
	})

	unknownLogs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lendingindexor_moneymarket_unknown_logs_total",
		Help: "Total number of logs dropped because their event is not recognized",
	})
)

func batchApplied(events int) {
	batchesApplied.Inc()
	eventsApplied.Add(float64(events))
}
