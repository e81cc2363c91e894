package jacoco

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestBuildExport(t *testing.T) {
	result := &Result{
		MissedBranches: []MissedBranch{
			{File: "a/Foo.java.html", Class: "Foo.java", Line: 4, BranchInfo: "1 of 2 branches missed.", Source: "if (ready) {"},
			{File: "a/Foo.java.html", Class: "Foo.java", Line: 9, BranchInfo: "2 of 4 branches missed.", Source: "while (more) {"},
		},
		UncoveredLines: []UncoveredLine{
			{File: "a/Foo.java.html", Class: "Foo.java", Line: 6, Source: "return null;"},
			{File: "b/Bar.java.html", Class: "Bar.java", Line: 12, Source: "throw err;"},
		},
		TotalFilesAnalyzed: 3,
	}

	export := BuildExport(result)

	if export.Summary.TotalFilesAnalyzed != 3 {
		t.Errorf("expected 3 files analyzed, got %d", export.Summary.TotalFilesAnalyzed)
	}
	if export.Summary.TotalMissedBranches != 2 {
		t.Errorf("expected 2 missed branches, got %d", export.Summary.TotalMissedBranches)
	}
	if export.Summary.TotalUncoveredLines != 2 {
		t.Errorf("expected 2 uncovered lines, got %d", export.Summary.TotalUncoveredLines)
	}

	if len(export.ByFile) != 2 {
		t.Fatalf("expected 2 files in by_file, got %d", len(export.ByFile))
	}
	foo := export.ByFile["a/Foo.java.html"]
	if foo == nil {
		t.Fatal("expected by_file entry for a/Foo.java.html")
	}
	if len(foo.MissedBranches) != 2 || len(foo.UncoveredLines) != 1 {
		t.Errorf("unexpected grouping for Foo.java.html: %d branches, %d lines",
			len(foo.MissedBranches), len(foo.UncoveredLines))
	}
	if foo.MissedBranches[0].Line != 4 || foo.MissedBranches[1].Line != 9 {
		t.Errorf("branch order lost: %+v", foo.MissedBranches)
	}

	bar := export.ByFile["b/Bar.java.html"]
	if bar == nil {
		t.Fatal("expected by_file entry for b/Bar.java.html")
	}
	if len(bar.MissedBranches) != 0 || bar.MissedBranches == nil {
		t.Errorf("expected empty non-nil branch list, got %+v", bar.MissedBranches)
	}
	if len(bar.UncoveredLines) != 1 || bar.UncoveredLines[0].Line != 12 {
		t.Errorf("unexpected lines for Bar.java.html: %+v", bar.UncoveredLines)
	}
}

func TestBuildExportEmptyResult(t *testing.T) {
	export := BuildExport(&Result{})

	data, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	out := string(data)

	// Consumers rely on empty arrays rather than null.
	if !strings.Contains(out, `"missed_branches":[]`) {
		t.Errorf("missed_branches not an empty array: %s", out)
	}
	if !strings.Contains(out, `"uncovered_lines":[]`) {
		t.Errorf("uncovered_lines not an empty array: %s", out)
	}
	if !strings.Contains(out, `"by_file":{}`) {
		t.Errorf("by_file not an empty object: %s", out)
	}
}

func TestExportJSONShape(t *testing.T) {
	result := &Result{
		MissedBranches: []MissedBranch{
			{File: "com.example/Foo.java.html", Class: "Foo.java", Line: 4, BranchInfo: "1 of 2 branches missed.", Source: "if (ready) {"},
		},
		UncoveredLines: []UncoveredLine{
			{File: "com.example/Foo.java.html", Class: "Foo.java", Line: 6, Source: "return null;"},
		},
		TotalFilesAnalyzed: 1,
	}

	data, err := json.MarshalIndent(BuildExport(result), "", "  ")
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	expected := `{
  "summary": {
    "total_files_analyzed": 1,
    "total_missed_branches": 1,
    "total_uncovered_lines": 1
  },
  "missed_branches": [
    {
      "file": "com.example/Foo.java.html",
      "class": "Foo.java",
      "line": 4,
      "branch_info": "1 of 2 branches missed.",
      "source": "if (ready) {"
    }
  ],
  "uncovered_lines": [
    {
      "file": "com.example/Foo.java.html",
      "class": "Foo.java",
      "line": 6,
      "source": "return null;"
    }
  ],
  "by_file": {
    "com.example/Foo.java.html": {
      "missed_branches": [
        {
          "line": 4,
          "branch_info": "1 of 2 branches missed.",
          "source": "if (ready) {"
        }
      ],
      "uncovered_lines": [
        {
          "line": 6,
          "source": "return null;"
        }
      ]
    }
  }
}`
	if string(data) != expected {
		t.Errorf("unexpected JSON:\n%s\nexpected:\n%s", string(data), expected)
	}
}

func TestExportYAMLTags(t *testing.T) {
	export := BuildExport(&Result{
		UncoveredLines:     []UncoveredLine{{File: "Foo.java.html", Class: "Foo.java", Line: 2, Source: "x++;"}},
		TotalFilesAnalyzed: 1,
	})

	data, err := yaml.Marshal(export)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"total_uncovered_lines: 1",
		"uncovered_lines:",
		"by_file:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q:\n%s", want, out)
		}
	}
}
