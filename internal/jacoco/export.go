package jacoco

// Export is the serializable form of a Result. Field names and nesting are
// a stable contract consumed by downstream tooling.
type Export struct {
	Summary        ExportSummary          `yaml:"summary" json:"summary"`
	MissedBranches []MissedBranch         `yaml:"missed_branches" json:"missed_branches"`
	UncoveredLines []UncoveredLine        `yaml:"uncovered_lines" json:"uncovered_lines"`
	ByFile         map[string]*FileIssues `yaml:"by_file" json:"by_file"`
}

// ExportSummary carries the top-level counts.
type ExportSummary struct {
	TotalFilesAnalyzed  int `yaml:"total_files_analyzed" json:"total_files_analyzed"`
	TotalMissedBranches int `yaml:"total_missed_branches" json:"total_missed_branches"`
	TotalUncoveredLines int `yaml:"total_uncovered_lines" json:"total_uncovered_lines"`
}

// FileIssues groups the findings of one file.
type FileIssues struct {
	MissedBranches []BranchIssue `yaml:"missed_branches" json:"missed_branches"`
	UncoveredLines []LineIssue   `yaml:"uncovered_lines" json:"uncovered_lines"`
}

// BranchIssue is a missed branch without the file context.
type BranchIssue struct {
	Line       int    `yaml:"line" json:"line"`
	BranchInfo string `yaml:"branch_info" json:"branch_info"`
	Source     string `yaml:"source" json:"source"`
}

// LineIssue is an uncovered line without the file context.
type LineIssue struct {
	Line   int    `yaml:"line" json:"line"`
	Source string `yaml:"source" json:"source"`
}

// BuildExport converts a Result into its export form. Empty finding lists
// serialize as empty arrays, not null.
func BuildExport(result *Result) *Export {
	export := &Export{
		Summary: ExportSummary{
			TotalFilesAnalyzed:  result.TotalFilesAnalyzed,
			TotalMissedBranches: len(result.MissedBranches),
			TotalUncoveredLines: len(result.UncoveredLines),
		},
		MissedBranches: make([]MissedBranch, 0, len(result.MissedBranches)),
		UncoveredLines: make([]UncoveredLine, 0, len(result.UncoveredLines)),
		ByFile:         make(map[string]*FileIssues),
	}

	export.MissedBranches = append(export.MissedBranches, result.MissedBranches...)
	export.UncoveredLines = append(export.UncoveredLines, result.UncoveredLines...)

	for _, mb := range result.MissedBranches {
		issues := export.fileIssues(mb.File)
		issues.MissedBranches = append(issues.MissedBranches, BranchIssue{
			Line:       mb.Line,
			BranchInfo: mb.BranchInfo,
			Source:     mb.Source,
		})
	}

	for _, ul := range result.UncoveredLines {
		issues := export.fileIssues(ul.File)
		issues.UncoveredLines = append(issues.UncoveredLines, LineIssue{
			Line:   ul.Line,
			Source: ul.Source,
		})
	}

	return export
}

func (e *Export) fileIssues(path string) *FileIssues {
	issues, ok := e.ByFile[path]
	if !ok {
		issues = &FileIssues{
			MissedBranches: make([]BranchIssue, 0),
			UncoveredLines: make([]LineIssue, 0),
		}
		e.ByFile[path] = issues
	}
	return issues
}
