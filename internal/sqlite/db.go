// Package sqlite implements the persistence layer over SQLite, using
// FTS5 for work-log full-text search.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Statements are idempotent so the
// server can run them on every startup.
func (db *DB) RunMigrations() error {
	migration := `
-- Work logs, one row per date
CREATE TABLE IF NOT EXISTS work_logs (
    date TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_work_logs_updated ON work_logs(updated_at);

-- Full-text search over work-log content (SQLite FTS5)
CREATE VIRTUAL TABLE IF NOT EXISTS work_logs_fts USING fts5(
    content,
    content='work_logs',
    content_rowid='rowid'
);

-- Triggers to keep FTS index synchronized
CREATE TRIGGER IF NOT EXISTS work_logs_ai AFTER INSERT ON work_logs BEGIN
    INSERT INTO work_logs_fts(rowid, content)
    VALUES (new.rowid, new.content);
END;

CREATE TRIGGER IF NOT EXISTS work_logs_ad AFTER DELETE ON work_logs BEGIN
    INSERT INTO work_logs_fts(work_logs_fts, rowid, content)
    VALUES('delete', old.rowid, old.content);
END;

CREATE TRIGGER IF NOT EXISTS work_logs_au AFTER UPDATE ON work_logs BEGIN
    INSERT INTO work_logs_fts(work_logs_fts, rowid, content)
    VALUES('delete', old.rowid, old.content);
    INSERT INTO work_logs_fts(rowid, content)
    VALUES (new.rowid, new.content);
END;

-- Generated summaries
CREATE TABLE IF NOT EXISTS summaries (
    id TEXT PRIMARY KEY,
    summary_text TEXT NOT NULL,
    key_points TEXT NOT NULL DEFAULT '[]',
    word_count INTEGER NOT NULL DEFAULT 0,
    original_count INTEGER NOT NULL DEFAULT 0,
    compression_ratio REAL NOT NULL DEFAULT 0,
    method TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    edited_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_summaries_created ON summaries(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
