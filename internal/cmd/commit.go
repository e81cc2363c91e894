package cmd

import (
	"fmt"
	"os"

	"github.com/covtools/cq/internal/conventional"
	"github.com/covtools/cq/internal/diff"
	"github.com/spf13/cobra"
)

// commitCmd represents the commit command
var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Assemble a commit message and create the commit",
	Long: `Assemble a conventional commit message and commit the staged changes.

Runs the same assembly as 'cq message', validates the result, and creates
the commit. Validation failures block the commit unless --no-verify is set.
Use --dry-run to see the message without committing.

Examples:
  cq commit --subject "add branch scanner"
  cq commit --type fix --scope parser --subject "handle empty lines"
  cq commit --subject "restructure internals" --body-files --dry-run
  cq commit --subject "WIP everything" --no-verify`,
	RunE: runCommit,
}

var (
	commitDryRun   bool
	commitNoVerify bool
)

func init() {
	rootCmd.AddCommand(commitCmd)
	addMessageFlags(commitCmd)

	commitCmd.Flags().BoolVar(&commitDryRun, "dry-run", false, "Print the message without creating a commit")
	commitCmd.Flags().BoolVar(&commitNoVerify, "no-verify", false, "Commit even when validation fails")
}

// commitOutput is the structured form of a created commit.
type commitOutput struct {
	Committed bool   `yaml:"committed" json:"committed"`
	SHA       string `yaml:"sha,omitempty" json:"sha,omitempty"`
	Branch    string `yaml:"branch,omitempty" json:"branch,omitempty"`
	Summary   string `yaml:"summary,omitempty" json:"summary,omitempty"`
	Message   string `yaml:"message" json:"message"`
}

func runCommit(cmd *cobra.Command, args []string) error {
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

	message, err := assembleMessage()
	if err != nil {
		return err
	}

	if !commitNoVerify {
		commit, err := conventional.Parse(message)
		if err != nil {
			return fmt.Errorf("assembled message is not a conventional commit: %w", err)
		}
		if valid, problems := commit.Validate(); !valid {
			renderCheckText(os.Stderr, commit, false, problems)
			return fmt.Errorf("commit message failed validation (use --no-verify to commit anyway)")
		}
	}

	if commitDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), message)
		fmt.Fprintln(os.Stderr, "cq: dry run, no commit created")
		return nil
	}

	sha, err := gd.CreateCommit(message)
	if err != nil {
		return fmt.Errorf("failed to create commit: %w", err)
	}

	branch, _ := gd.CurrentBranch()
	summary, _ := gd.LastCommitSummary()

	if format.IsStructured() {
		return writeStructured(cmd.OutOrStdout(), format, commitOutput{
			Committed: true,
			SHA:       sha,
			Branch:    branch,
			Summary:   summary,
			Message:   message,
		})
	}

	short := sha
	if len(short) > 7 {
		short = short[:7]
	}
	successColor.Fprintf(cmd.OutOrStdout(), "Created commit %s on %s\n", short, branch)
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", summary)
	return nil
}
