package sqlstore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lendingindexor_store_cache_lookups_total",
		Help: "Total number of reverse lookup cache lookups by table and result",
	},
	[]string{"table", "result"},
)

func cacheLookupInc(table string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(table, result).Inc()
}
