package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/covtools/cq/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the .cq directory and default config",
	Long: `Initialize the .cq directory with a default config.yaml in the current
directory.

The config holds analysis, split, commit and history settings; the history
database is created next to it on first use.

Examples:
  cq init          # Initialize in current directory
  cq init --force  # Rewrite config.yaml with defaults`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Rewrite config.yaml even if it already exists")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfgPath := filepath.Join(cwd, config.ConfigDirName, config.ConfigFileName)

	_, err = os.Stat(cfgPath)
	if err == nil {
		if !initForce {
			relPath, _ := filepath.Rel(cwd, cfgPath)
			fmt.Printf("Already initialized at %s\n", relPath)
			return nil
		}
		if err := os.Remove(cfgPath); err != nil {
			return fmt.Errorf("removing existing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking config path: %w", err)
	}

	written, err := config.SaveDefault(cwd)
	if err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	relPath, _ := filepath.Rel(cwd, written)
	fmt.Printf("Initialized cq at %s\n", relPath)

	return nil
}
