package downloader

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/LendingIndexor/internal/db"
	"github.com/goran-ethernal/LendingIndexor/internal/downloader/migrations"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/pkg/config"
	"github.com/goran-ethernal/LendingIndexor/pkg/fetcher"
	"github.com/stretchr/testify/require"
)

func newSyncDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "downloader.db")}
	cfg.ApplyDefaults()
	require.NoError(t, migrations.RunMigrations(cfg))

	database, err := db.NewSQLiteDBFromConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func TestNewSyncManager_RequiresDB(t *testing.T) {
	_, err := NewSyncManager(nil, logger.NewNopLogger(), nil)
	require.Error(t, err)
}

func TestSyncManager_StateTransitions(t *testing.T) {
	sm, err := NewSyncManager(newSyncDB(t), logger.NewNopLogger(), nil)
	require.NoError(t, err)

	hashA := common.HexToHash("0xa1")
	hashB := common.HexToHash("0xb2")

	steps := []struct {
		name      string
		apply     func() error
		wantBlock uint64
		wantHash  common.Hash
		wantMode  fetcher.FetchMode
	}{
		{
			name:     "fresh database",
			apply:    func() error { return nil },
			wantMode: fetcher.ModeBackfill,
		},
		{
			name:      "backfill checkpoint",
			apply:     func() error { return sm.SaveCheckpoint(11800100, hashA, fetcher.ModeBackfill) },
			wantBlock: 11800100,
			wantHash:  hashA,
			wantMode:  fetcher.ModeBackfill,
		},
		{
			name:      "caught up",
			apply:     func() error { return sm.SaveCheckpoint(11800250, hashB, fetcher.ModeLive) },
			wantBlock: 11800250,
			wantHash:  hashB,
			wantMode:  fetcher.ModeLive,
		},
		{
			name:      "reset clears hash",
			apply:     func() error { return sm.Reset(11799999) },
			wantBlock: 11799999,
			wantMode:  fetcher.ModeBackfill,
		},
	}

	for _, step := range steps {
		require.NoError(t, step.apply(), step.name)

		state, err := sm.GetState()
		require.NoError(t, err, step.name)
		require.Equal(t, step.wantBlock, state.LastIndexedBlock, step.name)
		require.Equal(t, step.wantHash, state.LastIndexedBlockHash, step.name)
		require.Equal(t, step.wantMode, state.GetMode(), step.name)

		last, err := sm.GetLastIndexedBlock()
		require.NoError(t, err, step.name)
		require.Equal(t, step.wantBlock, last, step.name)
	}
}

func TestSyncManager_Persists(t *testing.T) {
	database := newSyncDB(t)

	first, err := NewSyncManager(database, logger.NewNopLogger(), nil)
	require.NoError(t, err)
	require.NoError(t, first.SaveCheckpoint(500, common.HexToHash("0x123abc"), fetcher.ModeLive))

	second, err := NewSyncManager(database, logger.NewNopLogger(), nil)
	require.NoError(t, err)

	state, err := second.GetState()
	require.NoError(t, err)
	require.Equal(t, uint64(500), state.LastIndexedBlock)
	require.Equal(t, common.HexToHash("0x123abc"), state.LastIndexedBlockHash)
	require.Equal(t, fetcher.ModeLive, state.GetMode())
	require.Positive(t, state.LastIndexedTimestamp)
}

func TestSyncManager_CheckpointWaitsForMaintenance(t *testing.T) {
	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "downloader.db")}
	cfg.ApplyDefaults()
	require.NoError(t, migrations.RunMigrations(cfg))

	database, err := db.NewSQLiteDBFromConfig(cfg)
	require.NoError(t, err)

	maintenance := db.NewMaintenanceCoordinator("downloader", cfg.Path, database,
		&config.MaintenanceConfig{WALCheckpointMode: "PASSIVE"}, logger.NewNopLogger())
	sm, err := NewSyncManager(database, logger.NewNopLogger(), maintenance)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, sm.Close()) })

	// a writer in flight keeps the maintenance pass queued
	unlock := maintenance.AcquireOperationLock()

	maintained := make(chan error, 1)
	go func() { maintained <- maintenance.RunMaintenance(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	saved := make(chan error, 1)
	go func() { saved <- sm.SaveCheckpoint(42, common.HexToHash("0x42"), fetcher.ModeLive) }()

	require.Never(t, func() bool { return len(saved) > 0 }, 100*time.Millisecond, 10*time.Millisecond,
		"a checkpoint must not overtake queued maintenance")

	unlock()
	require.NoError(t, <-maintained)
	require.NoError(t, <-saved)

	last, err := sm.GetLastIndexedBlock()
	require.NoError(t, err)
	require.Equal(t, uint64(42), last)
	require.Equal(t, uint64(1), maintenance.Stats().Runs)
}
