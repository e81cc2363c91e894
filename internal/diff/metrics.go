package diff

import (
	"path/filepath"
	"strings"
)

// ChangeMetrics summarizes the size and shape of staged changes.
type ChangeMetrics struct {
	// TotalLinesChanged is additions plus deletions across all files.
	TotalLinesChanged int `yaml:"total_lines_changed" json:"total_lines_changed"`
	// TotalFiles is the number of staged files.
	TotalFiles int `yaml:"total_files" json:"total_files"`
	// FilesAdded counts files with status A.
	FilesAdded int `yaml:"files_added" json:"files_added"`
	// FilesModified counts files with status M.
	FilesModified int `yaml:"files_modified" json:"files_modified"`
	// FilesDeleted counts files with status D.
	FilesDeleted int `yaml:"files_deleted" json:"files_deleted"`
	// FilesRenamed counts files with status R.
	FilesRenamed int `yaml:"files_renamed" json:"files_renamed"`
	// DirectoriesAffected is the number of distinct directories touched.
	DirectoriesAffected int `yaml:"directories_affected" json:"directories_affected"`
	// FileTypes counts files per extension. Files without an extension are
	// counted under "no_extension".
	FileTypes map[string]int `yaml:"file_types" json:"file_types"`
	// ComplexityScore is a heuristic score; higher means the change is a
	// better candidate for splitting.
	ComplexityScore int `yaml:"complexity_score" json:"complexity_score"`
}

// ComputeMetrics measures staged changes.
func ComputeMetrics(staged *StagedChanges) *ChangeMetrics {
	m := &ChangeMetrics{
		TotalLinesChanged: staged.TotalAdditions + staged.TotalDeletions,
		TotalFiles:        len(staged.Files),
		FileTypes:         make(map[string]int),
	}

	directories := make(map[string]bool)
	for _, f := range staged.Files {
		switch f.Status {
		case "A":
			m.FilesAdded++
		case "M":
			m.FilesModified++
		case "D":
			m.FilesDeleted++
		case "R":
			m.FilesRenamed++
		}

		if dir := filepath.Dir(f.Path); dir != "." && dir != "" {
			directories[dir] = true
		}

		m.FileTypes[fileType(f.Path)]++
	}
	m.DirectoriesAffected = len(directories)

	m.ComplexityScore = complexityScore(
		m.TotalLinesChanged, m.TotalFiles, m.DirectoriesAffected, len(m.FileTypes))

	return m
}

// fileType returns the lowercased extension of path, or "no_extension".
// Dotfiles like .gitignore count as having no extension.
func fileType(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return "no_extension"
	}
	return strings.ToLower(ext)
}

// complexityScore converts change measurements into a single score. Each
// dimension contributes on a fixed bucket scale.
func complexityScore(lines, files, dirs, types int) int {
	score := 0

	switch {
	case lines > 500:
		score += 50
	case lines > 200:
		score += 30
	case lines > 100:
		score += 15
	case lines > 50:
		score += 5
	}

	switch {
	case files > 20:
		score += 30
	case files > 10:
		score += 20
	case files > 5:
		score += 10
	case files > 2:
		score += 5
	}

	switch {
	case dirs > 10:
		score += 20
	case dirs > 5:
		score += 10
	case dirs > 2:
		score += 5
	}

	switch {
	case types > 5:
		score += 15
	case types > 3:
		score += 10
	case types > 1:
		score += 5
	}

	return score
}
