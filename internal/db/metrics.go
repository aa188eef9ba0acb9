package db

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	migrationsApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lendingindexor_db_migrations_applied_total",
			Help: "Total number of schema migrations applied",
		},
	)

	dbSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lendingindexor_db_size_bytes",
			Help: "Database file size in bytes, WAL and shared memory files included",
		},
		[]string{"db"},
	)

	maintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lendingindexor_db_maintenance_runs_total",
			Help: "Total number of maintenance runs by outcome",
		},
		[]string{"db", "status"},
	)

	maintenanceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lendingindexor_db_maintenance_duration_seconds",
			Help:    "Time spent holding the maintenance lock",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"db"},
	)

	maintenanceLastRun = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lendingindexor_db_maintenance_last_run_timestamp_seconds",
			Help: "Unix time of the last maintenance run",
		},
		[]string{"db"},
	)

	maintenanceReclaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lendingindexor_db_maintenance_reclaimed_bytes_total",
			Help: "Bytes of database files reclaimed by maintenance",
		},
		[]string{"db"},
	)

	walCheckpoints = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lendingindexor_db_wal_checkpoints_total",
			Help: "Total number of WAL checkpoints by mode",
		},
		[]string{"db", "mode"},
	)
)

func MigrationsAppliedAdd(n int) {
	migrationsApplied.Add(float64(n))
}

func DBSizeLog(name string, sizeBytes int64) {
	dbSize.WithLabelValues(name).Set(float64(sizeBytes))
}

func MaintenanceRunLog(name string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	maintenanceRuns.WithLabelValues(name, status).Inc()
	maintenanceDuration.WithLabelValues(name).Observe(d.Seconds())
	maintenanceLastRun.WithLabelValues(name).SetToCurrentTime()
}

func MaintenanceReclaimedAdd(name string, bytes int64) {
	maintenanceReclaimed.WithLabelValues(name).Add(float64(bytes))
}

func WALCheckpointInc(name, mode string) {
	walCheckpoints.WithLabelValues(name, mode).Inc()
}
