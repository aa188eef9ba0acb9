package migrations

import (
	_ "embed"
	"fmt"

	"github.com/goran-ethernal/LendingIndexor/internal/db"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	"github.com/goran-ethernal/LendingIndexor/pkg/config"
)

//go:embed 001_sync_state.sql
var mig0001 string

var migrations = []db.Migration{
	{
		ID:  "001_sync_state.sql",
		SQL: mig0001,
	},
}

// RunMigrations runs all migrations for the downloader database.
func RunMigrations(cfg config.DatabaseConfig) error {
	database, err := db.NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to open downloader database: %w", err)
	}
	defer database.Close()

	return db.RunMigrationsDB(logger.GetDefaultLogger(), database, migrations)
}
