package cmd

import (
	"fmt"
	"os"

	"github.com/covtools/cq/internal/changeset"
	"github.com/covtools/cq/internal/diff"
	"github.com/covtools/cq/internal/history"
	"github.com/spf13/cobra"
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Propose splitting the staged changes into focused commits",
	Long: `Analyze the staged changes and propose how to split them into commits.

Files are categorized by purpose (source, test, docs, config, build, style)
and grouped by category and component. When the change exceeds the size or
complexity thresholds, cq proposes an ordered sequence of commits, each with
a suggested conventional commit type.

The proposal is advisory: cq never stages or commits on your behalf here.

Examples:
  cq split                          # Use thresholds from .cq/config.yaml
  cq split --max-size 100           # Stricter size threshold
  cq split --complexity-threshold 30
  cq split --format json            # Structured proposal for tooling`,
	RunE: runSplit,
}

var (
	splitMaxSize    int
	splitComplexity int
	splitSave       bool
)

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().IntVar(&splitMaxSize, "max-size", 0, "Maximum lines per commit before a split is suggested (default: from config)")
	splitCmd.Flags().IntVar(&splitComplexity, "complexity-threshold", 0, "Complexity score threshold before a split is suggested (default: from config)")
	splitCmd.Flags().BoolVar(&splitSave, "save", false, "Record the run in history even when history is disabled")
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := parseOutputFormat()
	if err != nil {
		return err
	}

	gd, err := diff.NewGitDiff(".")
	if err != nil {
		return err
	}

	staged, err := gd.GetStagedChanges()
	if err != nil {
		return fmt.Errorf("failed to read staged changes: %w", err)
	}
	if staged.IsEmpty() {
		return fmt.Errorf("no staged changes: stage files with 'git add' first")
	}

	splitter := changeset.NewSplitter()
	splitter.MaxCommitSize = cfg.Split.MaxCommitSize
	splitter.ComplexityThreshold = cfg.Split.ComplexityThreshold
	if splitMaxSize > 0 {
		splitter.MaxCommitSize = splitMaxSize
	}
	if splitComplexity > 0 {
		splitter.ComplexityThreshold = splitComplexity
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "cq: %d staged files, thresholds size=%d complexity=%d\n",
			staged.TotalFiles, splitter.MaxCommitSize, splitter.ComplexityThreshold)
	}

	metrics := diff.ComputeMetrics(staged)
	proposal := splitter.Analyze(staged, metrics)

	if splitSave || cfg.History.Enabled {
		recordSplitRun(cfg, &history.SplitRun{
			TotalFiles:      metrics.TotalFiles,
			TotalLines:      metrics.TotalLinesChanged,
			ComplexityScore: metrics.ComplexityScore,
			ShouldSplit:     proposal.ShouldSplit,
			Groups:          len(proposal.Groups),
		})
	}

	if format.IsStructured() {
		return writeStructured(cmd.OutOrStdout(), format, proposal)
	}

	renderSplitText(cmd.OutOrStdout(), proposal)
	return nil
}
