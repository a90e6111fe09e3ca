package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are executed in order on every open. Statements must stay
// idempotent because the whole list re-runs against existing databases.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS forest_snapshots (
		domain_id     TEXT PRIMARY KEY,
		domain_title  TEXT NOT NULL,
		forest_json   TEXT NOT NULL,
		fetched_at    TEXT NOT NULL
	)`,
}

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
