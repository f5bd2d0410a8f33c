package migrations

import (
	"database/sql"
	"fmt"
)

// Migration is one versioned schema change of the history database.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations lists the schema changes in ascending version order.
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add history lookup indices",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_history_method ON history(method);
			CREATE INDEX IF NOT EXISTS idx_history_url ON history(url);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_history_method;
			DROP INDEX IF EXISTS idx_history_url;
		`,
	},
	{
		Version: 2,
		Name:    "Add composite index for newest-first listing",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_history_timestamp_id ON history(timestamp DESC, id DESC);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_history_timestamp_id;
		`,
	},
	{
		Version: 3,
		Name:    "Drop entries without a request URL",
		Up: `
			DELETE FROM history WHERE url = '';
		`,
		Down: `
			-- Cannot restore deleted data
		`,
	},
}

// InitSchema creates the base history table. Run calls it before applying
// migrations.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		request_id TEXT NOT NULL,
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		headers TEXT NOT NULL,
		query TEXT NOT NULL,
		body TEXT,
		response_status INTEGER NOT NULL DEFAULT 0,
		response_status_text TEXT NOT NULL DEFAULT '',
		response_headers TEXT NOT NULL DEFAULT '{}',
		response_body TEXT NOT NULL DEFAULT '',
		response_cookies TEXT NOT NULL DEFAULT '[]',
		duration_ms INTEGER NOT NULL DEFAULT 0,
		request_size INTEGER,
		response_size INTEGER,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp DESC);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run applies every migration newer than the recorded version, each in its
// own transaction.
func Run(db *sql.DB) error {
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}
		if _, err := tx.Exec(migration.Up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the highest applied migration, 0 when none.
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}

// Latest returns the highest version in AllMigrations.
func Latest() int {
	latest := 0
	for _, m := range AllMigrations {
		latest = max(latest, m.Version)
	}
	return latest
}

// Rollback reverts applied migrations, newest first, until the schema is at
// version target.
func Rollback(db *sql.DB, target int) error {
	current, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if target < 0 || target > current {
		return fmt.Errorf("cannot roll back from version %d to %d", current, target)
	}

	for i := len(AllMigrations) - 1; i >= 0; i-- {
		m := AllMigrations[i]
		if m.Version > current || m.Version <= target {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin rollback %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.Down); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to revert migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec("DELETE FROM schema_migrations WHERE version = ?", m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to unrecord migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit rollback %d: %w", m.Version, err)
		}
	}
	return nil
}
