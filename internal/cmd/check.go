package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/covtools/cq/internal/conventional"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [MESSAGE|-]",
	Short: "Validate a commit message",
	Long: `Validate a commit message against the conventional commit format.

The message comes from the argument, from stdin when the argument is "-",
or from a file with --file. The command exits non-zero when the message is
invalid, so it works as a commit-msg hook:

  cq check --file "$1"

Examples:
  cq check "feat(parser): handle empty lines"
  git log -1 --format=%B | cq check -
  cq check --file .git/COMMIT_EDITMSG
  cq check "feat: x" --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var checkFile string

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkFile, "file", "", "Read the message from a file")
}

// checkOutput is the structured form of a validation verdict.
type checkOutput struct {
	Valid  bool                 `yaml:"valid" json:"valid"`
	Errors []string             `yaml:"errors" json:"errors"`
	Commit *conventional.Commit `yaml:"commit,omitempty" json:"commit,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	message, err := resolveCheckMessage(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	format, err := parseOutputFormat()
	if err != nil {
		return err
	}

	commit, parseErr := conventional.Parse(message)

	var valid bool
	var problems []string
	if parseErr != nil {
		valid = false
		problems = []string{parseErr.Error()}
	} else {
		valid, problems = commit.Validate()
	}
	if problems == nil {
		problems = []string{}
	}

	if format.IsStructured() {
		out := checkOutput{Valid: valid, Errors: problems, Commit: commit}
		if err := writeStructured(cmd.OutOrStdout(), format, out); err != nil {
			return err
		}
	} else {
		renderCheckText(cmd.OutOrStdout(), commit, valid, problems)
	}

	if !valid {
		return fmt.Errorf("message is not a valid conventional commit")
	}
	return nil
}

// resolveCheckMessage picks the message source: --file, a literal argument,
// or stdin for "-".
func resolveCheckMessage(args []string, stdin io.Reader) (string, error) {
	if checkFile != "" {
		data, err := os.ReadFile(checkFile)
		if err != nil {
			return "", fmt.Errorf("reading message file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if len(args) == 0 {
		return "", fmt.Errorf("message required: pass MESSAGE, '-' for stdin, or --file")
	}

	if args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	return args[0], nil
}
