package db

import (
	"database/sql"
	"fmt"
)

// Migration is one versioned schema change.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations lists all migrations in order. Fresh installs get the full
// SchemaSQL and then every migration is recorded as applied by version.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_case_number_match_index",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_archive_message_index",
		Up:      migrationV2,
	},
}

// Migrate applies pending migrations to the database.
func Migrate(conn *sql.DB) error {
	var current int
	err := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := m.Up(conn); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := conn.Exec(
			"INSERT INTO schema_version (version, name) VALUES (?, ?)", m.Version, m.Name,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// migrationV1 backfills the case-number match index for installs created
// before the match key became configurable.
func migrationV1(conn *sql.DB) error {
	_, err := conn.Exec("CREATE INDEX IF NOT EXISTS idx_lots_case_lot ON lots(case_number, lot_number)")
	return err
}

// migrationV2 indexes the archive by message number for lineage lookups.
func migrationV2(conn *sql.DB) error {
	_, err := conn.Exec("CREATE INDEX IF NOT EXISTS idx_archive_message ON lots_archive(message_number)")
	return err
}
