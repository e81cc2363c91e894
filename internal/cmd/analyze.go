package cmd

import (
	"fmt"
	"os"

	"github.com/covtools/cq/internal/history"
	"github.com/covtools/cq/internal/jacoco"
	"github.com/covtools/cq/internal/output"
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <report-dir | archive>",
	Short: "Analyze a JaCoCo HTML coverage report",
	Long: `Analyze a JaCoCo HTML coverage report for missed branches and uncovered lines.

The report can be an extracted directory or a zip/7z archive. cq locates the
report index, scans every per-class source page concurrently, and lists each
partially covered branch and each never-executed line together with its
source text.

Results are rendered as text by default; use --format yaml|json for the
structured export consumed by other tools. Runs are recorded in .cq/history.db
when history is enabled.

Examples:
  cq analyze target/site/jacoco          # Extracted report directory
  cq analyze build/reports/coverage.zip  # Zipped report
  cq analyze report.7z --7z /usr/bin/7z  # 7z archive via external tool
  cq analyze target --workers 8          # More concurrent page scans
  cq analyze target --format json        # Structured export`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeWorkers int
	analyzeSave    bool
	analyze7z      string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Concurrent page scanners (default: one per CPU)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Record the run in history even when history is disabled")
	analyzeCmd.Flags().StringVar(&analyze7z, "7z", "", "Path to an external 7z executable for .7z archives")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := parseOutputFormat()
	if err != nil {
		return err
	}

	workers := analyzeWorkers
	if workers <= 0 {
		workers = cfg.Analysis.Workers
	}
	sevenZip := analyze7z
	if sevenZip == "" {
		sevenZip = cfg.Analysis.SevenZipPath
	}

	analyzer := &jacoco.Analyzer{
		SevenZipPath: sevenZip,
		Workers:      workers,
		ShowProgress: format == output.FormatText,
		Verbose:      verbose,
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		analyzer.ReportDir = path
	} else {
		analyzer.ArchivePath = path
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "cq: analyzing %s\n", path)
	}

	result, err := analyzer.Analyze(cmd.Context())
	if err != nil {
		return fmt.Errorf("coverage analysis failed: %w", err)
	}

	if analyzeSave || cfg.History.Enabled {
		recordCoverageRun(cfg, &history.CoverageRun{
			Source:         path,
			ReportTitle:    result.ReportTitle,
			FilesAnalyzed:  result.TotalFilesAnalyzed,
			MissedBranches: len(result.MissedBranches),
			UncoveredLines: len(result.UncoveredLines),
		})
	}

	if format.IsStructured() {
		return writeStructured(cmd.OutOrStdout(), format, jacoco.BuildExport(result))
	}

	renderAnalyzeText(cmd.OutOrStdout(), result)
	return nil
}
