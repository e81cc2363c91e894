package history

// schemaSQL defines the SQLite schema for the history database.
// Tables:
//   - coverage_runs: one row per coverage report analysis
//   - split_runs: one row per staged-change split proposal
const schemaSQL = `
CREATE TABLE IF NOT EXISTS coverage_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    report_title TEXT NOT NULL DEFAULT '',
    files_analyzed INTEGER NOT NULL DEFAULT 0,
    missed_branches INTEGER NOT NULL DEFAULT 0,
    uncovered_lines INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS split_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    total_files INTEGER NOT NULL DEFAULT 0,
    total_lines INTEGER NOT NULL DEFAULT 0,
    complexity_score INTEGER NOT NULL DEFAULT 0,
    should_split INTEGER NOT NULL DEFAULT 0,
    commit_groups INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_coverage_runs_created ON coverage_runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_split_runs_created ON split_runs(created_at DESC);
`

// initSchema creates the database tables and indexes if they don't exist.
func (h *History) initSchema() error {
	_, err := h.db.Exec(schemaSQL)
	return err
}
