package changeset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/covtools/cq/internal/conventional"
	"github.com/covtools/cq/internal/diff"
)

// Default thresholds for proposing a split.
const (
	DefaultMaxCommitSize       = 200
	DefaultComplexityThreshold = 50
)

// Splitter analyzes staged changes and proposes commit splits.
type Splitter struct {
	// MaxCommitSize is the lines-changed ceiling before a split is suggested.
	MaxCommitSize int

	// ComplexityThreshold is the complexity score ceiling before a split
	// is suggested.
	ComplexityThreshold int
}

// NewSplitter returns a Splitter with default thresholds.
func NewSplitter() *Splitter {
	return &Splitter{
		MaxCommitSize:       DefaultMaxCommitSize,
		ComplexityThreshold: DefaultComplexityThreshold,
	}
}

// Analyze inspects staged changes and recommends whether to split them.
// A proposal with fewer than two groups never recommends splitting.
func (s *Splitter) Analyze(staged *diff.StagedChanges, metrics *diff.ChangeMetrics) *SplitProposal {
	if !s.shouldSplit(staged, metrics) {
		return &SplitProposal{
			ShouldSplit:     false,
			Rationale:       "Changes are small enough for a single commit.",
			OriginalMetrics: *metrics,
		}
	}

	groups := s.generateGroups(staged)

	if len(groups) <= 1 {
		return &SplitProposal{
			ShouldSplit:     false,
			Rationale:       "All changes belong to a single logical group.",
			OriginalMetrics: *metrics,
		}
	}

	return &SplitProposal{
		ShouldSplit:     true,
		Groups:          groups,
		Rationale:       s.splitRationale(metrics, groups),
		OriginalMetrics: *metrics,
	}
}

func (s *Splitter) shouldSplit(staged *diff.StagedChanges, metrics *diff.ChangeMetrics) bool {
	if staged.TotalAdditions+staged.TotalDeletions > s.MaxCommitSize {
		return true
	}

	if metrics.ComplexityScore > s.ComplexityThreshold {
		return true
	}

	// Source, test and docs changes rarely belong in one commit.
	categories := make(map[FileCategory]bool)
	for _, f := range staged.Files {
		categories[Categorize(f.Path)] = true
	}

	unrelated := 0
	for _, c := range []FileCategory{CategorySource, CategoryTest, CategoryDocs} {
		if categories[c] {
			unrelated++
		}
	}

	return unrelated >= 2
}

func (s *Splitter) generateGroups(staged *diff.StagedChanges) []SplitGroup {
	byCategory := make(map[FileCategory][]diff.FileChange)
	var order []FileCategory
	for _, f := range staged.Files {
		c := Categorize(f.Path)
		if _, ok := byCategory[c]; !ok {
			order = append(order, c)
		}
		byCategory[c] = append(byCategory[c], f)
	}

	var groups []SplitGroup
	for _, category := range order {
		files := byCategory[category]
		if len(files) == 0 {
			continue
		}

		// Large source groups are split further by component.
		if category == CategorySource && len(files) > 5 {
			groups = append(groups, s.splitByComponent(files, category)...)
		} else {
			groups = append(groups, s.newGroup(files, category, ""))
		}
	}

	sortGroups(groups)
	return groups
}

func (s *Splitter) splitByComponent(files []diff.FileChange, category FileCategory) []SplitGroup {
	paths := make([]string, len(files))
	byPath := make(map[string]diff.FileChange, len(files))
	for i, f := range files {
		paths[i] = f.Path
		byPath[f.Path] = f
	}

	order, components := DetectComponents(paths)

	groups := make([]SplitGroup, 0, len(order))
	for _, component := range order {
		componentFiles := make([]diff.FileChange, 0, len(components[component]))
		for _, p := range components[component] {
			componentFiles = append(componentFiles, byPath[p])
		}
		groups = append(groups, s.newGroup(componentFiles, category, component))
	}

	return groups
}

func (s *Splitter) newGroup(files []diff.FileChange, category FileCategory, component string) SplitGroup {
	var additions, deletions int
	paths := make([]string, len(files))
	for i, f := range files {
		additions += f.Additions
		deletions += f.Deletions
		paths[i] = f.Path
	}

	var name, description string
	if component != "" {
		name = fmt.Sprintf("%s: %s", category, component)
		description = fmt.Sprintf("Changes to %s (%s)", component, category)
	} else {
		name = string(category)
		description = fmt.Sprintf("%s changes", titleCase(string(category)))
	}

	return SplitGroup{
		Name:           name,
		Description:    description,
		Files:          files,
		Category:       category,
		SuggestedType:  conventional.DetectType(paths, ""),
		TotalAdditions: additions,
		TotalDeletions: deletions,
		Rationale:      groupRationale(category),
	}
}

func groupRationale(category FileCategory) string {
	switch category {
	case CategoryTest:
		return "Test files should be committed separately to clearly identify test changes."
	case CategoryDocs:
		return "Documentation changes should be in their own commit for clear history."
	case CategoryConfig:
		return "Configuration changes may need separate review and rollback capability."
	case CategoryBuild:
		return "Build/CI changes should be isolated for easier debugging of build issues."
	default:
		return fmt.Sprintf("Group of related %s changes.", category)
	}
}

// categoryPriority orders groups into a recommended commit sequence: build
// and config land before the source they support, docs land last.
var categoryPriority = map[FileCategory]int{
	CategoryBuild:  0,
	CategoryConfig: 1,
	CategorySource: 2,
	CategoryStyle:  3,
	CategoryTest:   4,
	CategoryDocs:   5,
	CategoryOther:  6,
}

func sortGroups(groups []SplitGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		return priorityOf(groups[i].Category) < priorityOf(groups[j].Category)
	})
}

func priorityOf(c FileCategory) int {
	if p, ok := categoryPriority[c]; ok {
		return p
	}
	return 99
}

func (s *Splitter) splitRationale(metrics *diff.ChangeMetrics, groups []SplitGroup) string {
	var reasons []string

	if metrics.TotalLinesChanged > s.MaxCommitSize {
		reasons = append(reasons, fmt.Sprintf(
			"Total changes (%d lines) exceed recommended maximum (%d lines)",
			metrics.TotalLinesChanged, s.MaxCommitSize))
	}

	if metrics.ComplexityScore > s.ComplexityThreshold {
		reasons = append(reasons, fmt.Sprintf(
			"Complexity score (%d) exceeds threshold (%d)",
			metrics.ComplexityScore, s.ComplexityThreshold))
	}

	if len(groups) > 2 {
		seen := make(map[FileCategory]bool)
		var categories []string
		for _, g := range groups {
			if !seen[g.Category] {
				seen[g.Category] = true
				categories = append(categories, string(g.Category))
			}
		}
		reasons = append(reasons, "Changes span multiple categories: "+strings.Join(categories, ", "))
	}

	if metrics.DirectoriesAffected > 5 {
		reasons = append(reasons, fmt.Sprintf(
			"Changes affect %d directories", metrics.DirectoriesAffected))
	}

	var b strings.Builder
	b.WriteString("Suggested split because:\n")
	for i, r := range reasons {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  - ")
		b.WriteString(r)
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
