// Package changeset groups staged changes into logical commits.
//
// Files are categorized by purpose (source, test, docs, ...), grouped by
// category and component, and the groups are ordered into a safe commit
// sequence. The Splitter decides whether the staged changes are worth
// splitting at all.
package changeset

import (
	"github.com/covtools/cq/internal/conventional"
	"github.com/covtools/cq/internal/diff"
)

// FileCategory classifies a file by its purpose within a repository.
type FileCategory string

const (
	// CategorySource is production code.
	CategorySource FileCategory = "source"
	// CategoryTest is test code and fixtures.
	CategoryTest FileCategory = "test"
	// CategoryDocs is documentation.
	CategoryDocs FileCategory = "docs"
	// CategoryConfig is configuration files.
	CategoryConfig FileCategory = "config"
	// CategoryBuild is build and CI definitions.
	CategoryBuild FileCategory = "build"
	// CategoryStyle is stylesheets.
	CategoryStyle FileCategory = "style"
	// CategoryOther is everything else.
	CategoryOther FileCategory = "other"
)

// SplitGroup is a set of related files that should land in one commit.
type SplitGroup struct {
	// Name is a short label for the group.
	Name string `yaml:"name" json:"name"`

	// Description is a one-line human readable summary.
	Description string `yaml:"description" json:"description"`

	// Files are the staged changes belonging to this group.
	Files []diff.FileChange `yaml:"files" json:"files"`

	// Category is the file category shared by the group.
	Category FileCategory `yaml:"category" json:"category"`

	// SuggestedType is the conventional commit type inferred for the group.
	SuggestedType conventional.CommitType `yaml:"suggested_type" json:"suggested_type"`

	// TotalAdditions is the number of added lines across the group.
	TotalAdditions int `yaml:"total_additions" json:"total_additions"`

	// TotalDeletions is the number of deleted lines across the group.
	TotalDeletions int `yaml:"total_deletions" json:"total_deletions"`

	// Rationale explains why this group stands alone.
	Rationale string `yaml:"rationale" json:"rationale"`
}

// TotalLines returns the lines changed across the group.
func (g *SplitGroup) TotalLines() int {
	return g.TotalAdditions + g.TotalDeletions
}

// FileCount returns the number of files in the group.
func (g *SplitGroup) FileCount() int {
	return len(g.Files)
}

// SplitProposal recommends whether and how staged changes should be split.
type SplitProposal struct {
	// ShouldSplit reports whether splitting is recommended.
	ShouldSplit bool `yaml:"should_split" json:"should_split"`

	// Groups are the proposed commits in recommended order. Empty when
	// ShouldSplit is false.
	Groups []SplitGroup `yaml:"groups,omitempty" json:"groups,omitempty"`

	// Rationale explains the recommendation.
	Rationale string `yaml:"rationale" json:"rationale"`

	// OriginalMetrics are the metrics of the unsplit change.
	OriginalMetrics diff.ChangeMetrics `yaml:"original_metrics" json:"original_metrics"`
}

// TotalCommits returns the number of commits the proposal produces.
func (p *SplitProposal) TotalCommits() int {
	if !p.ShouldSplit {
		return 1
	}
	return len(p.Groups)
}
