// Package history provides SQLite-backed storage for past cq runs.
// The database is stored in .cq/history.db and keeps a bounded log of
// coverage analyses and split proposals for later inspection.
package history

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// History manages the .cq/history.db SQLite database.
type History struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the history database in the specified .cq directory.
// It initializes the schema if the database is new.
func Open(cqDir string) (*History, error) {
	dbPath := filepath.Join(cqDir, "history.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	h := &History{db: db, dbPath: dbPath}

	// Initialize schema
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return h, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Clear removes all recorded runs from both tables.
func (h *History) Clear() error {
	_, err := h.db.Exec("DELETE FROM coverage_runs; DELETE FROM split_runs;")
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Prune keeps only the newest limit rows in each table.
func (h *History) Prune(limit int) error {
	if limit <= 0 {
		return nil
	}

	for _, table := range []string{"coverage_runs", "split_runs"} {
		query := fmt.Sprintf(
			"DELETE FROM %s WHERE id NOT IN (SELECT id FROM %s ORDER BY id DESC LIMIT ?)",
			table, table)
		if _, err := h.db.Exec(query, limit); err != nil {
			return fmt.Errorf("prune %s: %w", table, err)
		}
	}
	return nil
}

// Path returns the database file path.
func (h *History) Path() string {
	return h.dbPath
}

// DB returns the underlying database connection for advanced operations.
func (h *History) DB() *sql.DB {
	return h.db
}

// Stats returns history statistics.
type Stats struct {
	CoverageRunCount int64
	SplitRunCount    int64
}

// GetStats returns statistics about the history contents.
func (h *History) GetStats() (*Stats, error) {
	var stats Stats

	err := h.db.QueryRow("SELECT COUNT(*) FROM coverage_runs").Scan(&stats.CoverageRunCount)
	if err != nil {
		return nil, fmt.Errorf("count coverage runs: %w", err)
	}

	err = h.db.QueryRow("SELECT COUNT(*) FROM split_runs").Scan(&stats.SplitRunCount)
	if err != nil {
		return nil, fmt.Errorf("count split runs: %w", err)
	}

	return &stats, nil
}
