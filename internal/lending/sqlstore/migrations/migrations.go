package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/goran-ethernal/LendingIndexor/internal/db"
	"github.com/goran-ethernal/LendingIndexor/internal/logger"
)

//go:embed 001_lending.sql
var mig0001 string

//go:embed 002_progress.sql
var mig0002 string

var migrations = []db.Migration{
	{
		ID:  "001_lending.sql",
		SQL: mig0001,
	},
	{
		ID:  "002_progress.sql",
		SQL: mig0002,
	},
}

// RunMigrations runs all migrations for the lending database.
func RunMigrations(dbPath string) error {
	return db.RunMigrations(dbPath, migrations)
}

// RunMigrationsDB runs all migrations for the lending database on an open connection.
func RunMigrationsDB(log *logger.Logger, database *sql.DB) error {
	return db.RunMigrationsDB(log, database, migrations)
}
