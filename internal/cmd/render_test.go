package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/covtools/cq/internal/changeset"
	"github.com/covtools/cq/internal/conventional"
	"github.com/covtools/cq/internal/diff"
	"github.com/covtools/cq/internal/history"
	"github.com/covtools/cq/internal/jacoco"
	"github.com/fatih/color"
)

func init() {
	// Deterministic output in tests
	color.NoColor = true
}

func TestRenderAnalyzeText(t *testing.T) {
	result := &jacoco.Result{
		TotalFilesAnalyzed: 2,
		ReportTitle:        "Demo Project",
		Packages:           []string{"com.example"},
		MissedBranches: []jacoco.MissedBranch{
			{File: "com.example/Foo.java.html", Class: "Foo.java", Line: 4, BranchInfo: "1 of 2 branches missed.", Source: "if (ready) {"},
		},
		UncoveredLines: []jacoco.UncoveredLine{
			{File: "com.example/Foo.java.html", Class: "Foo.java", Line: 6, Source: "return null;"},
		},
	}

	var sb strings.Builder
	renderAnalyzeText(&sb, result)
	out := sb.String()

	for _, want := range []string{
		"Coverage report: Demo Project",
		"Files analyzed: 2",
		"Packages: com.example",
		"Missed branches (1):",
		"com.example/Foo.java.html:4  [1 of 2 branches missed.]",
		"if (ready) {",
		"Uncovered lines (1):",
		"com.example/Foo.java.html:6",
		"return null;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderAnalyzeTextClean(t *testing.T) {
	result := &jacoco.Result{
		TotalFilesAnalyzed: 5,
		SourceDirectory:    "target/site/jacoco",
	}

	var sb strings.Builder
	renderAnalyzeText(&sb, result)
	out := sb.String()

	if !strings.Contains(out, "No coverage gaps found.") {
		t.Errorf("expected clean report message, got:\n%s", out)
	}
	// Falls back to the source directory when the index had no title
	if !strings.Contains(out, "Coverage report: target/site/jacoco") {
		t.Errorf("expected source directory header, got:\n%s", out)
	}
}

func TestRenderSplitTextNoSplit(t *testing.T) {
	proposal := &changeset.SplitProposal{
		ShouldSplit: false,
		Rationale:   "Changes are small and cohesive. A single commit is fine.",
		OriginalMetrics: diff.ChangeMetrics{
			TotalFiles:        2,
			TotalLinesChanged: 14,
		},
	}

	var sb strings.Builder
	renderSplitText(&sb, proposal)
	out := sb.String()

	if !strings.Contains(out, "No split needed.") {
		t.Errorf("expected no-split verdict, got:\n%s", out)
	}
	if !strings.Contains(out, "single commit is fine") {
		t.Errorf("expected rationale, got:\n%s", out)
	}
}

func TestRenderSplitTextWithGroups(t *testing.T) {
	proposal := &changeset.SplitProposal{
		ShouldSplit: true,
		Rationale:   "Large change spanning multiple categories.",
		Groups: []changeset.SplitGroup{
			{
				Name:          "source",
				Description:   "Production code changes",
				Category:      changeset.CategorySource,
				SuggestedType: conventional.TypeFeat,
				Files: []diff.FileChange{
					{Path: "internal/parser/parser.go", Status: "M", Additions: 120, Deletions: 30},
				},
				TotalAdditions: 120,
				TotalDeletions: 30,
			},
			{
				Name:          "test",
				Description:   "Test changes",
				Category:      changeset.CategoryTest,
				SuggestedType: conventional.TypeTest,
				Files: []diff.FileChange{
					{Path: "internal/parser/parser_test.go", Status: "A", Additions: 80},
				},
				TotalAdditions: 80,
			},
		},
		OriginalMetrics: diff.ChangeMetrics{TotalFiles: 2, TotalLinesChanged: 230, ComplexityScore: 60},
	}

	var sb strings.Builder
	renderSplitText(&sb, proposal)
	out := sb.String()

	for _, want := range []string{
		"Split recommended: 2 commits",
		"Commit 1: source",
		"Suggested type: feat  (+120/-30)",
		"M internal/parser/parser.go",
		"Commit 2: test",
		"A internal/parser/parser_test.go",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderCheckText(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		commit := &conventional.Commit{Type: conventional.TypeFix, Scope: "parser", Subject: "handle empty lines"}

		var sb strings.Builder
		renderCheckText(&sb, commit, true, nil)

		if !strings.Contains(sb.String(), "Valid conventional commit [fix(parser)]") {
			t.Errorf("unexpected output: %s", sb.String())
		}
	})

	t.Run("invalid", func(t *testing.T) {
		var sb strings.Builder
		renderCheckText(&sb, nil, false, []string{
			"Subject should start with lowercase letter.",
		})
		out := sb.String()

		if !strings.Contains(out, "Invalid commit message (1 problem(s)):") {
			t.Errorf("unexpected output: %s", out)
		}
		if !strings.Contains(out, "Subject should start with lowercase letter.") {
			t.Errorf("missing problem line: %s", out)
		}
	})
}

func TestRenderHistoryText(t *testing.T) {
	created := time.Date(2026, 8, 25, 14, 3, 0, 0, time.UTC)

	t.Run("coverage runs", func(t *testing.T) {
		runs := []history.CoverageRun{
			{ID: 12, Source: "target/site/jacoco", FilesAnalyzed: 34, MissedBranches: 5, UncoveredLines: 12, CreatedAt: created},
		}

		var sb strings.Builder
		renderCoverageRunsText(&sb, runs)
		out := sb.String()

		for _, want := range []string{"Coverage runs (1):", "#12", "2026-08-25 14:03", "target/site/jacoco", "files=34 missed_branches=5 uncovered_lines=12"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q\n%s", want, out)
			}
		}
	})

	t.Run("split runs", func(t *testing.T) {
		runs := []history.SplitRun{
			{ID: 3, TotalFiles: 9, TotalLines: 400, ComplexityScore: 75, ShouldSplit: true, Groups: 3, CreatedAt: created},
		}

		var sb strings.Builder
		renderSplitRunsText(&sb, runs)
		out := sb.String()

		for _, want := range []string{"Split runs (1):", "split into 3 commits", "files=9 lines=400 complexity=75"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q\n%s", want, out)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		var sb strings.Builder
		renderCoverageRunsText(&sb, nil)
		if !strings.Contains(sb.String(), "No coverage runs recorded.") {
			t.Errorf("unexpected output: %s", sb.String())
		}
	})
}
