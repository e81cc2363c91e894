package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/covtools/cq/internal/changeset"
	"github.com/covtools/cq/internal/conventional"
	"github.com/covtools/cq/internal/history"
	"github.com/covtools/cq/internal/jacoco"
	"github.com/fatih/color"
)

// Text renderers for the default --format text output. Structured formats
// bypass these and go through the output package.

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	headerColor  = color.New(color.FgCyan, color.Bold)
	dimColor     = color.New(color.Faint)
)

// renderAnalyzeText prints a coverage result for humans.
func renderAnalyzeText(w io.Writer, result *jacoco.Result) {
	title := result.ReportTitle
	if title == "" {
		title = result.SourceDirectory
	}
	headerColor.Fprintf(w, "Coverage report: %s\n", title)
	fmt.Fprintf(w, "Files analyzed: %d\n", result.TotalFilesAnalyzed)
	if len(result.Packages) > 0 {
		fmt.Fprintf(w, "Packages: %s\n", strings.Join(result.Packages, ", "))
	}
	fmt.Fprintln(w)

	if len(result.MissedBranches) == 0 && len(result.UncoveredLines) == 0 {
		successColor.Fprintln(w, "No coverage gaps found.")
		return
	}

	if len(result.MissedBranches) > 0 {
		warningColor.Fprintf(w, "Missed branches (%d):\n", len(result.MissedBranches))
		for _, mb := range result.MissedBranches {
			fmt.Fprintf(w, "  %s:%d  [%s]\n", mb.File, mb.Line, mb.BranchInfo)
			if mb.Source != "" {
				dimColor.Fprintf(w, "      %s\n", mb.Source)
			}
		}
		fmt.Fprintln(w)
	}

	if len(result.UncoveredLines) > 0 {
		errorColor.Fprintf(w, "Uncovered lines (%d):\n", len(result.UncoveredLines))
		for _, ul := range result.UncoveredLines {
			fmt.Fprintf(w, "  %s:%d\n", ul.File, ul.Line)
			if ul.Source != "" {
				dimColor.Fprintf(w, "      %s\n", ul.Source)
			}
		}
	}
}

// renderSplitText prints a split proposal for humans.
func renderSplitText(w io.Writer, proposal *changeset.SplitProposal) {
	m := proposal.OriginalMetrics
	headerColor.Fprintln(w, "Staged changes")
	fmt.Fprintf(w, "  Files: %d  Lines: %d  Directories: %d  Complexity: %d\n",
		m.TotalFiles, m.TotalLinesChanged, m.DirectoriesAffected, m.ComplexityScore)
	fmt.Fprintln(w)

	if !proposal.ShouldSplit {
		successColor.Fprintln(w, "No split needed.")
		fmt.Fprintf(w, "%s\n", proposal.Rationale)
		return
	}

	warningColor.Fprintf(w, "Split recommended: %d commits\n", len(proposal.Groups))
	fmt.Fprintf(w, "%s\n\n", proposal.Rationale)

	for i, g := range proposal.Groups {
		headerColor.Fprintf(w, "Commit %d: %s\n", i+1, g.Name)
		fmt.Fprintf(w, "  %s\n", g.Description)
		fmt.Fprintf(w, "  Suggested type: %s  (+%d/-%d)\n", g.SuggestedType, g.TotalAdditions, g.TotalDeletions)
		for _, f := range g.Files {
			fmt.Fprintf(w, "    %s %s\n", f.Status, f.Path)
		}
		if g.Rationale != "" {
			dimColor.Fprintf(w, "  %s\n", g.Rationale)
		}
		fmt.Fprintln(w)
	}
}

// renderCheckText prints a validation verdict for humans.
func renderCheckText(w io.Writer, commit *conventional.Commit, valid bool, problems []string) {
	if valid {
		successColor.Fprint(w, "Valid conventional commit")
		if commit != nil {
			detail := string(commit.Type)
			if commit.Scope != "" {
				detail += "(" + commit.Scope + ")"
			}
			fmt.Fprintf(w, " [%s]", detail)
		}
		fmt.Fprintln(w)
		return
	}

	errorColor.Fprintf(w, "Invalid commit message (%d problem(s)):\n", len(problems))
	for _, p := range problems {
		fmt.Fprintf(w, "  - %s\n", p)
	}
}

// renderCoverageRunsText prints recorded coverage runs, newest first.
func renderCoverageRunsText(w io.Writer, runs []history.CoverageRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No coverage runs recorded.")
		return
	}

	headerColor.Fprintf(w, "Coverage runs (%d):\n", len(runs))
	for _, r := range runs {
		fmt.Fprintf(w, "  #%-4d %s  %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Source)
		dimColor.Fprintf(w, "        files=%d missed_branches=%d uncovered_lines=%d\n",
			r.FilesAnalyzed, r.MissedBranches, r.UncoveredLines)
	}
}

// renderSplitRunsText prints recorded split runs, newest first.
func renderSplitRunsText(w io.Writer, runs []history.SplitRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No split runs recorded.")
		return
	}

	headerColor.Fprintf(w, "Split runs (%d):\n", len(runs))
	for _, r := range runs {
		verdict := "keep as one commit"
		if r.ShouldSplit {
			verdict = fmt.Sprintf("split into %d commits", r.Groups)
		}
		fmt.Fprintf(w, "  #%-4d %s  %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), verdict)
		dimColor.Fprintf(w, "        files=%d lines=%d complexity=%d\n",
			r.TotalFiles, r.TotalLines, r.ComplexityScore)
	}
}
