// Package jacoco analyzes JaCoCo HTML coverage reports.
//
// A report is either a zip/7z archive or an extracted directory tree. The
// analyzer locates the report root, scans every per-class source page for
// coverage markers and aggregates missed branches and uncovered lines into
// a single result.
package jacoco

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// MissedBranch is a source line with partial branch coverage.
type MissedBranch struct {
	// File is the page path relative to the report root.
	File string `yaml:"file" json:"file"`
	// Class is the class display name.
	Class string `yaml:"class" json:"class"`
	// Line is the 1-based source line number.
	Line int `yaml:"line" json:"line"`
	// BranchInfo describes the missed branches, e.g. "1 of 2 branches missed.".
	BranchInfo string `yaml:"branch_info" json:"branch_info"`
	// Source is the trimmed source line text.
	Source string `yaml:"source" json:"source"`
}

// UncoveredLine is a source line that never executed.
type UncoveredLine struct {
	// File is the page path relative to the report root.
	File string `yaml:"file" json:"file"`
	// Class is the class display name.
	Class string `yaml:"class" json:"class"`
	// Line is the 1-based source line number.
	Line int `yaml:"line" json:"line"`
	// Source is the trimmed source line text.
	Source string `yaml:"source" json:"source"`
}

// Result aggregates coverage findings across a whole report.
type Result struct {
	// MissedBranches lists partially covered lines in page enumeration order.
	MissedBranches []MissedBranch `yaml:"missed_branches" json:"missed_branches"`
	// UncoveredLines lists never-executed lines in page enumeration order.
	UncoveredLines []UncoveredLine `yaml:"uncovered_lines" json:"uncovered_lines"`
	// TotalFilesAnalyzed counts every enumerated page, including pages
	// without findings.
	TotalFilesAnalyzed int `yaml:"total_files_analyzed" json:"total_files_analyzed"`
	// SourceDirectory is the report root that was scanned.
	SourceDirectory string `yaml:"source_directory" json:"source_directory"`
	// ReportTitle is the title of the index page, usually the project name.
	ReportTitle string `yaml:"report_title,omitempty" json:"report_title,omitempty"`
	// Packages lists the package names linked from the index page.
	Packages []string `yaml:"packages,omitempty" json:"packages,omitempty"`
}

// Analyzer runs a coverage report analysis.
type Analyzer struct {
	// ArchivePath is a zip or 7z archive containing the report. Takes
	// precedence over ReportDir.
	ArchivePath string
	// ReportDir is an already extracted report directory.
	ReportDir string
	// SevenZipPath optionally names an external 7z executable.
	SevenZipPath string
	// Workers caps concurrent page scans. Zero means one per CPU.
	Workers int
	// ShowProgress renders a progress bar on stderr while scanning.
	ShowProgress bool
	// Verbose logs skipped pages to stderr.
	Verbose bool
}

type sourcePage struct {
	path  string
	class string
	rel   string
}

type pageResult struct {
	branches []MissedBranch
	lines    []UncoveredLine
}

// Analyze extracts the report if needed, locates its root and scans every
// per-class page. Pages are scanned concurrently but results keep
// enumeration order. Scratch directories for archive extraction are always
// removed before returning.
func (a *Analyzer) Analyze(ctx context.Context) (*Result, error) {
	var baseDir string

	switch {
	case a.ArchivePath != "":
		tempDir, err := os.MkdirTemp("", "jacoco-")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(tempDir)

		if err := ExtractArchive(expandPath(a.ArchivePath), tempDir, a.SevenZipPath); err != nil {
			return nil, err
		}
		baseDir = tempDir

	case a.ReportDir != "":
		baseDir = expandPath(a.ReportDir)

	default:
		return nil, errors.New("either an archive path or a report directory is required")
	}

	indexPath, err := FindReportIndex(baseDir)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(indexPath)

	result := &Result{SourceDirectory: root}

	if f, err := os.Open(indexPath); err == nil {
		idx := ParseIndex(f)
		f.Close()
		result.ReportTitle = idx.Title
		for _, e := range idx.Entries {
			result.Packages = append(result.Packages, e.Name)
		}
	}

	pages := findSourcePages(root)
	result.TotalFilesAnalyzed = len(pages)

	var bar *progressbar.ProgressBar
	if a.ShowProgress && len(pages) > 0 {
		bar = progressbar.NewOptions(len(pages),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("scanning pages"),
			progressbar.OptionSetWidth(18),
			progressbar.OptionShowCount(),
		)
	}

	workers := a.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	slots := make([]pageResult, len(pages))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			f, err := os.Open(p.path)
			if err != nil {
				// Unreadable page: counted, contributes nothing.
				if a.Verbose {
					fmt.Fprintf(os.Stderr, "skipping %s: %v\n", p.rel, err)
				}
				if bar != nil {
					_ = bar.Add(1)
				}
				return nil
			}
			branches, lines := ScanPage(f, p.class)
			f.Close()

			for j := range branches {
				branches[j].File = p.rel
			}
			for j := range lines {
				lines[j].File = p.rel
			}
			slots[i] = pageResult{branches: branches, lines: lines}

			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
		os.Stderr.WriteString("\n")
	}

	for _, s := range slots {
		result.MissedBranches = append(result.MissedBranches, s.branches...)
		result.UncoveredLines = append(result.UncoveredLines, s.lines...)
	}

	return result, nil
}

// findSourcePages enumerates the per-class pages under the report root in
// lexical walk order. Index pages are excluded; every other HTML page
// counts, even when it yields no findings.
func findSourcePages(root string) []sourcePage {
	var pages []sourcePage

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}

		name := d.Name()
		if !strings.HasSuffix(name, ".html") || name == "index.html" || name == "index.source.html" {
			return nil
		}

		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			rel = path
		}

		pages = append(pages, sourcePage{
			path:  path,
			class: strings.TrimSuffix(name, ".html"),
			rel:   rel,
		})
		return nil
	})

	return pages
}

// expandPath expands environment variables and a leading ~ in path.
func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
