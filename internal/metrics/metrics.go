package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Indexing metrics
	LastIndexedBlock = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lendingindexor_last_indexed_block",
			Help: "Last block handed to an indexer",
		},
		[]string{"indexer"},
	)

	BlocksProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lendingindexor_blocks_processed_total",
			Help: "Total number of blocks processed per indexer",
		},
		[]string{"indexer"},
	)

	LogsIndexed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lendingindexor_logs_indexed_total",
			Help: "Total number of logs handled per indexer",
		},
		[]string{"indexer"},
	)

	BlockProcessingTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lendingindexor_block_processing_duration_seconds",
			Help:    "Time spent by an indexer on one batch of logs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"indexer"},
	)

	IndexingRate = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lendingindexor_indexing_rate_blocks_per_second",
			Help: "Blocks processed per second in the last batch",
		},
		[]string{"indexer"},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lendingindexor_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lendingindexor_errors_total",
			Help: "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lendingindexor_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lendingindexor_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lendingindexor_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()

	healthMu sync.RWMutex
	health   = make(map[string]bool)
)

func BlockProcessingTimeLog(indexer string, duration time.Duration) {
	BlockProcessingTime.WithLabelValues(indexer).Observe(duration.Seconds())
}

func LastIndexedBlockSet(indexer string, blockNum uint64) {
	LastIndexedBlock.WithLabelValues(indexer).Set(float64(blockNum))
}

func BlocksProcessedInc(indexer string, count uint64) {
	BlocksProcessed.WithLabelValues(indexer).Add(float64(count))
}

func LogsIndexedInc(indexer string, count int) {
	LogsIndexed.WithLabelValues(indexer).Add(float64(count))
}

func IndexingRateLog(indexer string, rate float64) {
	IndexingRate.WithLabelValues(indexer).Set(rate)
}

func ErrorsInc(component, severity string) {
	Errors.WithLabelValues(component, severity).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	ComponentHealth.WithLabelValues(component).Set(boolAsFloat)

	healthMu.Lock()
	health[component] = healthy
	healthMu.Unlock()
}

// UnhealthyComponents returns the components last reported as unhealthy.
func UnhealthyComponents() []string {
	healthMu.RLock()
	defer healthMu.RUnlock()

	var out []string
	for component, ok := range health {
		if !ok {
			out = append(out, component)
		}
	}
	return out
}

// UpdateSystemMetrics updates runtime system metrics.
// This should be called periodically (e.g., every 15 seconds).
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())

	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
