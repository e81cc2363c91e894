package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cq version",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionOutput is the structured form of the version report.
type versionOutput struct {
	Version   string `yaml:"version" json:"version"`
	GoVersion string `yaml:"go_version" json:"go_version"`
	Platform  string `yaml:"platform" json:"platform"`
}

func runVersion(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat()
	if err != nil {
		return err
	}

	out := versionOutput{
		Version:   Version,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if format.IsStructured() {
		return writeStructured(cmd.OutOrStdout(), format, out)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "cq %s (%s, %s)\n", out.Version, out.GoVersion, out.Platform)
	return nil
}
