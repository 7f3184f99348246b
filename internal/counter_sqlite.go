package internal

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const createToolCountsTable = `CREATE TABLE IF NOT EXISTS tool_counts (
	session_id TEXT PRIMARY KEY,
	count      INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMP NOT NULL
)`

// SQLiteCounter stores tool-call counts in a local SQLite database. It suits
// hosts that keep the hook binary warm or want one file for all sessions.
type SQLiteCounter struct {
	db   *sqlx.DB
	path string
}

// OpenDatabase opens or creates the SQLite database at path with WAL enabled
func OpenDatabase(ctx context.Context, path string) (*sqlx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database ping failed")
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "failed to execute pragma: %s", pragma)
		}
	}
	db.SetMaxOpenConns(1)

	return db, nil
}

// NewSQLiteCounter opens the database at path and creates the counter table
func NewSQLiteCounter(ctx context.Context, path string) (*SQLiteCounter, error) {
	db, err := OpenDatabase(ctx, path)
	if err != nil {
		return nil, &CounterError{Backend: "sqlite", Key: path, Err: err}
	}
	if _, err := db.ExecContext(ctx, createToolCountsTable); err != nil {
		db.Close()
		return nil, &CounterError{Backend: "sqlite", Key: path, Err: errors.Wrap(err, "failed to create tool_counts table")}
	}
	return &SQLiteCounter{db: db, path: path}, nil
}

// Path returns the database file path
func (c *SQLiteCounter) Path() string {
	return c.path
}

// IncrementAndGet upserts the row for key and returns the new count
func (c *SQLiteCounter) IncrementAndGet(ctx context.Context, key string) (int, error) {
	var count int
	err := c.db.GetContext(ctx, &count, `INSERT INTO tool_counts (session_id, count, updated_at)
		VALUES (?, 1, ?)
		ON CONFLICT(session_id) DO UPDATE SET count = count + 1, updated_at = excluded.updated_at
		RETURNING count`, key, time.Now().UTC())
	if err != nil {
		return 0, &CounterError{Backend: "sqlite", Key: key, Err: errors.Wrap(err, "increment failed")}
	}
	return count, nil
}

// Get returns the stored count, zero when absent
func (c *SQLiteCounter) Get(ctx context.Context, key string) (int, error) {
	var counts []int
	if err := c.db.SelectContext(ctx, &counts, "SELECT count FROM tool_counts WHERE session_id = ?", key); err != nil {
		return 0, &CounterError{Backend: "sqlite", Key: key, Err: errors.Wrap(err, "query failed")}
	}
	if len(counts) == 0 {
		return 0, nil
	}
	return counts[0], nil
}

// Reset deletes the row for key
func (c *SQLiteCounter) Reset(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM tool_counts WHERE session_id = ?", key); err != nil {
		return &CounterError{Backend: "sqlite", Key: key, Err: errors.Wrap(err, "delete failed")}
	}
	return nil
}

// Close closes the database
func (c *SQLiteCounter) Close() error {
	return c.db.Close()
}
