package db

import (
	"database/sql"
	"fmt"
)

// Base schema. Row IDs come from the snowflake generator, so there is no
// AUTOINCREMENT anywhere.
const baseSchema = `
CREATE TABLE IF NOT EXISTS folders (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_folders_name ON folders(name);

CREATE TABLE IF NOT EXISTS subscriptions (
  id INTEGER PRIMARY KEY,
  folder_id INTEGER,
  title TEXT NOT NULL,
  url TEXT NOT NULL UNIQUE,
  site_url TEXT,
  description TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (folder_id) REFERENCES folders(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_subscriptions_folder_id ON subscriptions(folder_id);
`

// Migrate applies the base schema and any incremental migrations. Every
// step is safe to re-run.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}
	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: track when a subscription's metadata was last refreshed.
	exists, err := hasColumn(db, "subscriptions", "last_refreshed_at")
	if err != nil {
		return fmt.Errorf("check last_refreshed_at column: %w", err)
	}
	if !exists {
		if _, err := db.Exec(`ALTER TABLE subscriptions ADD COLUMN last_refreshed_at TEXT`); err != nil {
			return fmt.Errorf("add last_refreshed_at column: %w", err)
		}
	}

	return nil
}

func hasColumn(db *sql.DB, table string, column string) (bool, error) {
	var count int
	if err := db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(*) FROM pragma_table_info('%s') WHERE name = ?`, table),
		column,
	).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
