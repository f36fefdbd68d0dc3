package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the history database and ensures the schema is up to date.
// With an empty primaryURL, dbPath is a local SQLite file (":memory:" works
// for tests); otherwise the remote Turso database at primaryURL is used.
func InitDB(dbPath string, primaryURL string, authToken string) (*sql.DB, error) {
	if primaryURL == "" {
		log.Debug("Initializing local SQLite database", "path", dbPath)
		db, err := sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open local database: %w", err)
		}
		if dbPath == ":memory:" {
			// every pooled connection would otherwise get its own empty database
			db.SetMaxOpenConns(1)
		}
		if err = createTables(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables for local db: %w", err)
		}
		return db, nil
	}

	log.Debug("Initializing Turso database", "url", primaryURL)
	db, err := sql.Open("libsql", primaryURL+"?authToken="+authToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
	}
	if err = createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables for remote db: %w", err)
	}
	return db, nil
}

func createTables(db *sql.DB) error {
	// Foreign key support is not enabled by default in SQLite
	_, err := db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		log.Error("Error enabling foreign keys:", "error", err)
		return err
	}

	createRunsTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		club TEXT NOT NULL,
		input_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		names INTEGER NOT NULL DEFAULT 0,
		lookups INTEGER NOT NULL DEFAULT 0,
		failed_lookups INTEGER NOT NULL DEFAULT 0,
		matches INTEGER NOT NULL DEFAULT 0,
		written INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);`

	createRunMembersTable := `
	CREATE TABLE IF NOT EXISTS run_members (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		user_id TEXT NOT NULL,
		club TEXT NOT NULL,
		PRIMARY KEY (run_id, position),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);`

	for _, stmt := range []string{createRunsTable, createRunMembersTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	log.Debug("Database initialized successfully")
	return nil
}
