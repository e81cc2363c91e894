package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/covtools/cq/internal/config"
	"github.com/covtools/cq/internal/history"
	"github.com/covtools/cq/internal/output"
)

// Shared helpers for command implementations

// loadConfig loads the effective configuration, honoring the global
// --config flag.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load(".")
}

// parseOutputFormat parses the global --format flag.
func parseOutputFormat() (output.Format, error) {
	return output.ParseFormat(outputFormat)
}

// writeStructured renders v with the formatter for the global format.
// Callers must only reach this for yaml and json.
func writeStructured(w io.Writer, format output.Format, v interface{}) error {
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return err
	}
	return formatter.FormatToWriter(w, v)
}

// openHistory opens the run history under the nearest .cq directory.
func openHistory() (*history.History, error) {
	cqDir, err := config.FindConfigDir(".")
	if err != nil {
		return nil, fmt.Errorf("cq not initialized: run 'cq init' first")
	}
	return history.Open(cqDir)
}

// recordCoverageRun appends a coverage run to the history database.
// Recording is best-effort: without an initialized .cq directory it does
// nothing, with a warning in verbose mode only.
func recordCoverageRun(cfg *config.Config, run *history.CoverageRun) {
	recordRun(cfg, func(h *history.History) error {
		return h.RecordCoverageRun(run)
	})
}

// recordSplitRun appends a split run to the history database, best-effort.
func recordSplitRun(cfg *config.Config, run *history.SplitRun) {
	recordRun(cfg, func(h *history.History) error {
		return h.RecordSplitRun(run)
	})
}

func recordRun(cfg *config.Config, record func(*history.History) error) {
	cqDir, err := config.FindConfigDir(".")
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "cq: history not recorded: %v\n", err)
		}
		return
	}

	h, err := history.Open(cqDir)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "cq: history not recorded: %v\n", err)
		}
		return
	}
	defer h.Close()

	if err := record(h); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "cq: history not recorded: %v\n", err)
		}
		return
	}

	// Keep the database bounded by the configured limit.
	if err := h.Prune(cfg.History.Limit); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "cq: history prune failed: %v\n", err)
	}
}
