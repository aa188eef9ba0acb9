package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	internalcommon "github.com/goran-ethernal/LendingIndexor/internal/common"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/pkg/config"
)

// Maintenance compacts a database between the writes made to it.
type Maintenance interface {
	// Start runs maintenance every check interval until ctx is done or Stop
	// is called. It does nothing when maintenance is disabled.
	Start(ctx context.Context) error
	// Stop ends background maintenance and waits for a running pass.
	Stop() error
	// AcquireOperationLock holds off maintenance until the returned func is
	// called. Writers of the database take it around each transaction.
	AcquireOperationLock() func()
	// RunMaintenance checkpoints the WAL and vacuums the database once.
	RunMaintenance(ctx context.Context) error
	// Stats reports the outcome of past runs.
	Stats() MaintenanceStats
}

// MaintenanceStats summarizes the maintenance runs of a database.
type MaintenanceStats struct {
	Runs           uint64
	LastRun        time.Time
	LastError      error
	LastReclaimed  int64
	LastSizeOnDisk int64
}

// NoOpMaintenance is used for databases without a maintenance section.
type NoOpMaintenance struct{}

var _ Maintenance = (*NoOpMaintenance)(nil)

func (*NoOpMaintenance) Start(context.Context) error          { return nil }
func (*NoOpMaintenance) Stop() error                          { return nil }
func (*NoOpMaintenance) AcquireOperationLock() func()         { return func() {} }
func (*NoOpMaintenance) RunMaintenance(context.Context) error { return nil }
func (*NoOpMaintenance) Stats() MaintenanceStats              { return MaintenanceStats{} }

// MaintenanceCoordinator runs WAL checkpoints and VACUUM on one database.
// Writers share opLock for reading, a maintenance pass holds it exclusively.
type MaintenanceCoordinator struct {
	name string
	path string
	db   *sql.DB
	cfg  config.MaintenanceConfig
	log  *logger.Logger

	opLock sync.RWMutex

	cancel context.CancelFunc
	wg     sync.WaitGroup

	statsMu sync.Mutex
	stats   MaintenanceStats
}

var _ Maintenance = (*MaintenanceCoordinator)(nil)

// NewMaintenanceCoordinator returns the maintenance of the database at path,
// reported under name. A nil cfg yields a NoOpMaintenance.
func NewMaintenanceCoordinator(name, path string, database *sql.DB, cfg *config.MaintenanceConfig,
	log *logger.Logger) Maintenance {
	if cfg == nil {
		return &NoOpMaintenance{}
	}
	return newMaintenanceCoordinator(name, path, database, *cfg, log)
}

func newMaintenanceCoordinator(name, path string, database *sql.DB, cfg config.MaintenanceConfig,
	log *logger.Logger) *MaintenanceCoordinator {
	cfg.ApplyDefaults()

	if log.GetComponent() != internalcommon.ComponentDBMaintenance {
		log = log.WithComponent(internalcommon.ComponentDBMaintenance)
	}

	return &MaintenanceCoordinator{
		name: name,
		path: path,
		db:   database,
		cfg:  cfg,
		log:  log,
	}
}

// Start implements Maintenance.
func (m *MaintenanceCoordinator) Start(ctx context.Context) error {
	if !m.cfg.Enabled {
		m.log.Debugw("background maintenance disabled", "db", m.name)
		return nil
	}
	if m.cancel != nil {
		return fmt.Errorf("maintenance of %s already started", m.name)
	}

	ctx, m.cancel = context.WithCancel(ctx)

	if m.cfg.VacuumOnStartup {
		if err := m.RunMaintenance(ctx); err != nil {
			m.log.Warnf("startup maintenance of %s failed: %v", m.name, err)
		}
	}

	m.wg.Go(func() { m.loop(ctx) })

	m.log.Infow("background maintenance started",
		"db", m.name,
		"interval", m.cfg.CheckInterval.Duration,
		"checkpoint_mode", m.cfg.WALCheckpointMode,
	)

	return nil
}

// Stop implements Maintenance.
func (m *MaintenanceCoordinator) Stop() error {
	if m.cancel == nil {
		return nil
	}

	m.cancel()
	m.wg.Wait()
	m.log.Debugw("background maintenance stopped", "db", m.name)

	return nil
}

func (m *MaintenanceCoordinator) loop(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.CheckInterval.Duration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.RunMaintenance(ctx); err != nil && ctx.Err() == nil {
				m.log.Warnf("maintenance of %s failed: %v", m.name, err)
			}
		}
	}
}

// AcquireOperationLock implements Maintenance.
func (m *MaintenanceCoordinator) AcquireOperationLock() func() {
	m.opLock.RLock()
	return m.opLock.RUnlock
}

// RunMaintenance implements Maintenance. VACUUM goes first so the checkpoint
// that follows also moves the rewritten pages out of the WAL.
func (m *MaintenanceCoordinator) RunMaintenance(ctx context.Context) error {
	m.opLock.Lock()
	defer m.opLock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()

	before, sizeErr := DBTotalSize(m.path)
	if sizeErr != nil {
		m.log.Warnf("failed to size %s before maintenance: %v", m.name, sizeErr)
	}

	runErr := errors.Join(m.vacuum(ctx), m.checkpoint(ctx))

	after, err := DBTotalSize(m.path)
	if err != nil {
		m.log.Warnf("failed to size %s after maintenance: %v", m.name, err)
		sizeErr = err
	}

	var reclaimed int64
	if sizeErr == nil && before > after {
		reclaimed = before - after
	}

	elapsed := time.Since(start)
	MaintenanceRunLog(m.name, elapsed, runErr)

	m.statsMu.Lock()
	m.stats.Runs++
	m.stats.LastRun = time.Now().UTC()
	m.stats.LastError = runErr
	m.stats.LastReclaimed = reclaimed
	m.stats.LastSizeOnDisk = after
	m.statsMu.Unlock()

	if runErr != nil {
		return fmt.Errorf("maintenance of %s: %w", m.name, runErr)
	}

	if reclaimed > 0 {
		MaintenanceReclaimedAdd(m.name, reclaimed)
	}
	if sizeErr == nil {
		DBSizeLog(m.name, after)
	}

	m.log.Infow("maintenance completed",
		"db", m.name,
		"duration", elapsed,
		"reclaimed_bytes", reclaimed,
		"size_bytes", after,
	)

	return nil
}

func (m *MaintenanceCoordinator) vacuum(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("vacuum failed: %w", err)
	}
	return nil
}

// checkpoint folds the WAL back into the database file. Databases in another
// journal mode have nothing to checkpoint.
func (m *MaintenanceCoordinator) checkpoint(ctx context.Context) error {
	var journal string
	if err := m.db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journal); err != nil {
		return fmt.Errorf("failed to read journal mode: %w", err)
	}
	if !strings.EqualFold(journal, "wal") {
		return nil
	}

	var busy, logFrames, checkpointed int
	query := fmt.Sprintf("PRAGMA wal_checkpoint(%s)", m.cfg.WALCheckpointMode)
	if err := m.db.QueryRowContext(ctx, query).Scan(&busy, &logFrames, &checkpointed); err != nil {
		return fmt.Errorf("wal checkpoint failed: %w", err)
	}

	WALCheckpointInc(m.name, strings.ToLower(m.cfg.WALCheckpointMode))

	if busy != 0 {
		m.log.Warnw("wal checkpoint could not complete, readers or writers were active",
			"db", m.name,
			"log_frames", logFrames,
			"checkpointed", checkpointed,
		)
	}

	return nil
}

// Stats implements Maintenance.
func (m *MaintenanceCoordinator) Stats() MaintenanceStats {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()

	return m.stats
}
