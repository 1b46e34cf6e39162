package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// credentials holds exactly one row (id = 1): the Rovas API key pair.
	`CREATE TABLE IF NOT EXISTS credentials (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		api_key TEXT NOT NULL DEFAULT '',
		token TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	)`,

	// report_log is the local audit trail of pipeline outcomes.
	`CREATE TABLE IF NOT EXISTS report_log (
		id TEXT PRIMARY KEY,
		work_unit_id TEXT NOT NULL,
		report_id INTEGER,
		hours REAL NOT NULL,
		usage_fee REAL NOT NULL,
		outcome TEXT NOT NULL CHECK (outcome IN ('submitted', 'degraded', 'cancelled', 'discarded', 'failed')),
		detail TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_report_log_created_at ON report_log(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_report_log_work_unit ON report_log(work_unit_id)`,
}
