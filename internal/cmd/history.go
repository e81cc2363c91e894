package cmd

import (
	"fmt"

	"github.com/covtools/cq/internal/history"
	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded analysis runs",
	Long: `Display the recorded coverage and split runs from .cq/history.db.

Coverage runs are shown by default; use --splits for split runs. Runs are
recorded automatically by 'cq analyze' and 'cq split' while history is
enabled in the config.

Examples:
  cq history                 # Last coverage runs
  cq history --limit 20      # More of them
  cq history --splits        # Split runs instead
  cq history --format json   # Structured output
  cq history --clear         # Wipe the recorded history`,
	RunE: runHistory,
}

var (
	historyLimit  int
	historySplits bool
	historyClear  bool
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Number of runs to show (default: from config)")
	historyCmd.Flags().BoolVar(&historySplits, "splits", false, "Show split runs instead of coverage runs")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded runs")
}

// historyOutput is the structured form of the history listing.
type historyOutput struct {
	CoverageRuns []history.CoverageRun `yaml:"coverage_runs,omitempty" json:"coverage_runs,omitempty"`
	SplitRuns    []history.SplitRun    `yaml:"split_runs,omitempty" json:"split_runs,omitempty"`
	Total        int                   `yaml:"total" json:"total"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	h, err := openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	if historyClear {
		if err := h.Clear(); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	format, err := parseOutputFormat()
	if err != nil {
		return err
	}

	limit := historyLimit
	if limit <= 0 {
		limit = cfg.History.Limit
	}

	if historySplits {
		runs, err := h.SplitRuns(limit)
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		if format.IsStructured() {
			return writeStructured(cmd.OutOrStdout(), format, historyOutput{
				SplitRuns: runs,
				Total:     len(runs),
			})
		}
		renderSplitRunsText(cmd.OutOrStdout(), runs)
		return nil
	}

	runs, err := h.CoverageRuns(limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if format.IsStructured() {
		return writeStructured(cmd.OutOrStdout(), format, historyOutput{
			CoverageRuns: runs,
			Total:        len(runs),
		})
	}
	renderCoverageRunsText(cmd.OutOrStdout(), runs)
	return nil
}
