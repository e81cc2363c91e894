package history

import (
	"fmt"
	"time"
)

// CoverageRun records one coverage report analysis.
type CoverageRun struct {
	ID             int64     `yaml:"id" json:"id"`
	Source         string    `yaml:"source" json:"source"`
	ReportTitle    string    `yaml:"report_title,omitempty" json:"report_title,omitempty"`
	FilesAnalyzed  int       `yaml:"files_analyzed" json:"files_analyzed"`
	MissedBranches int       `yaml:"missed_branches" json:"missed_branches"`
	UncoveredLines int       `yaml:"uncovered_lines" json:"uncovered_lines"`
	CreatedAt      time.Time `yaml:"created_at" json:"created_at"`
}

// SplitRun records one staged-change split proposal.
type SplitRun struct {
	ID              int64     `yaml:"id" json:"id"`
	TotalFiles      int       `yaml:"total_files" json:"total_files"`
	TotalLines      int       `yaml:"total_lines" json:"total_lines"`
	ComplexityScore int       `yaml:"complexity_score" json:"complexity_score"`
	ShouldSplit     bool      `yaml:"should_split" json:"should_split"`
	Groups          int       `yaml:"groups" json:"groups"`
	CreatedAt       time.Time `yaml:"created_at" json:"created_at"`
}

// RecordCoverageRun inserts a coverage run and assigns its ID.
func (h *History) RecordCoverageRun(run *CoverageRun) error {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := h.db.Exec(`
		INSERT INTO coverage_runs (source, report_title, files_analyzed, missed_branches, uncovered_lines, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.Source, run.ReportTitle, run.FilesAnalyzed, run.MissedBranches, run.UncoveredLines,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record coverage run: %w", err)
	}

	run.CreatedAt = createdAt
	run.ID, _ = res.LastInsertId()
	return nil
}

// RecordSplitRun inserts a split run and assigns its ID.
func (h *History) RecordSplitRun(run *SplitRun) error {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := h.db.Exec(`
		INSERT INTO split_runs (total_files, total_lines, complexity_score, should_split, commit_groups, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.TotalFiles, run.TotalLines, run.ComplexityScore, run.ShouldSplit, run.Groups,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record split run: %w", err)
	}

	run.CreatedAt = createdAt
	run.ID, _ = res.LastInsertId()
	return nil
}

// CoverageRuns returns recorded coverage runs, newest first.
// A non-positive limit returns all runs.
func (h *History) CoverageRuns(limit int) ([]CoverageRun, error) {
	// SQLite treats LIMIT -1 as no limit
	if limit <= 0 {
		limit = -1
	}

	rows, err := h.db.Query(`
		SELECT id, source, report_title, files_analyzed, missed_branches, uncovered_lines, created_at
		FROM coverage_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query coverage runs: %w", err)
	}
	defer rows.Close()

	var runs []CoverageRun
	for rows.Next() {
		var run CoverageRun
		var createdAt string
		err := rows.Scan(&run.ID, &run.Source, &run.ReportTitle, &run.FilesAnalyzed,
			&run.MissedBranches, &run.UncoveredLines, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// SplitRuns returns recorded split runs, newest first.
// A non-positive limit returns all runs.
func (h *History) SplitRuns(limit int) ([]SplitRun, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := h.db.Query(`
		SELECT id, total_files, total_lines, complexity_score, should_split, commit_groups, created_at
		FROM split_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query split runs: %w", err)
	}
	defer rows.Close()

	var runs []SplitRun
	for rows.Next() {
		var run SplitRun
		var createdAt string
		err := rows.Scan(&run.ID, &run.TotalFiles, &run.TotalLines, &run.ComplexityScore,
			&run.ShouldSplit, &run.Groups, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}
