package db

import (
	"database/sql"
	"fmt"
	"net/url"

	"github.com/goran-ethernal/LendingIndexor/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

func dsn(path string, params url.Values) string {
	// immediate locking keeps concurrent writers from deadlocking on upgrade
	params.Set("_txlock", "immediate")
	return "file:" + path + "?" + params.Encode()
}

// NewSQLiteDB opens path with WAL journaling and foreign keys on.
func NewSQLiteDB(path string) (*sql.DB, error) {
	return sql.Open(driverName, dsn(path, url.Values{
		"_foreign_keys": {"on"},
		"_journal_mode": {"WAL"},
		"_busy_timeout": {"30000"},
	}))
}

// NewSQLiteDBFromConfig opens the database described by cfg and applies its
// pool limits and pragmas. cfg is expected to have its defaults applied.
func NewSQLiteDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	foreignKeys := "off"
	if cfg.EnableForeignKeys {
		foreignKeys = "on"
	}

	database, err := sql.Open(driverName, dsn(cfg.Path, url.Values{
		"_foreign_keys": {foreignKeys},
		"_journal_mode": {cfg.JournalMode},
		"_busy_timeout": {fmt.Sprint(cfg.BusyTimeout)},
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	database.SetMaxOpenConns(cfg.MaxOpenConnections)
	database.SetMaxIdleConns(cfg.MaxIdleConnections)

	for _, pragma := range []string{
		"PRAGMA synchronous = " + cfg.Synchronous,
		fmt.Sprintf("PRAGMA cache_size = %d", cfg.CacheSize),
	} {
		if _, err := database.Exec(pragma); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return database, nil
}
