package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// CreateToolCountsDB creates a SQLite file holding a tool_counts table seeded with counts
func CreateToolCountsDB(t *testing.T, dbPath string, counts map[string]int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS tool_counts (
		session_id TEXT PRIMARY KEY,
		count      INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create tool_counts table: %v", err)
	}

	for sessionID, count := range counts {
		if _, err := db.Exec("INSERT INTO tool_counts (session_id, count, updated_at) VALUES (?, ?, ?)", sessionID, count, time.Now().UTC()); err != nil {
			t.Fatalf("Failed to seed %s: %v", sessionID, err)
		}
	}
}
