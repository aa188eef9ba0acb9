package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/LendingIndexor/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	downMarker = "-- +migrate Down"
	upMarker   = "-- +migrate Up"
)

// Migration is one embedded SQL file. The Down section comes first and is
// separated from the Up section by an "-- +migrate Up" line.
type Migration struct {
	ID  string
	SQL string
}

func (m Migration) parse() (*migrate.Migration, error) {
	down, up, ok := strings.Cut(m.SQL, upMarker)
	if !ok {
		return nil, fmt.Errorf("migration %s missing %q separator", m.ID, upMarker)
	}

	down = strings.TrimSpace(strings.Replace(down, downMarker, "", 1))

	return &migrate.Migration{
		Id:   m.ID,
		Up:   []string{strings.TrimSpace(up)},
		Down: []string{down},
	}, nil
}

// RunMigrations opens the database at dbPath and applies all pending migrations.
func RunMigrations(dbPath string, migrations []Migration) error {
	database, err := NewSQLiteDB(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	defer database.Close()

	return RunMigrationsDB(logger.GetDefaultLogger(), database, migrations)
}

// RunMigrationsDB applies all pending migrations on an open database.
func RunMigrationsDB(log *logger.Logger, database *sql.DB, migrations []Migration) error {
	source := &migrate.MemoryMigrationSource{}
	ids := make([]string, 0, len(migrations))

	for _, m := range migrations {
		parsed, err := m.parse()
		if err != nil {
			return err
		}
		source.Migrations = append(source.Migrations, parsed)
		ids = append(ids, m.ID)
	}

	applied, err := migrate.Exec(database, driverName, source, migrate.Up)
	if err != nil {
		return fmt.Errorf("failed to apply migrations [%s]: %w", strings.Join(ids, ", "), err)
	}

	MigrationsAppliedAdd(applied)
	if applied > 0 {
		log.Infof("applied %d migrations of [%s]", applied, strings.Join(ids, ", "))
	} else {
		log.Debugf("schema up to date [%s]", strings.Join(ids, ", "))
	}

	return nil
}
