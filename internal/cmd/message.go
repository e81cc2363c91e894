package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/covtools/cq/internal/conventional"
	"github.com/covtools/cq/internal/diff"
	"github.com/spf13/cobra"
)

// messageCmd represents the message command
var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Assemble a conventional commit message",
	Long: `Assemble a conventional commit message from flags and the staging area.

The message is built mechanically. Type, scope and subject come from flags;
when a flag is missing the staged changes fill the gap: the type is detected
from the changed paths and diff, the scope from the common path component,
and the subject from a summary of the staged files. With nothing staged the
subject flag is required.

The formatted message is printed to stdout so it can be piped straight to
git:

  cq message --subject "add branch scanner" | git commit -F -

Examples:
  cq message --subject "add branch scanner"
  cq message --type fix --scope parser --subject "handle empty lines"
  cq message --subject "drop v1 endpoints" --breaking --breaking-description "v1 API removed"
  cq message --subject "restructure internals" --body-files
  cq message --subject "add scanner" --format json`,
	RunE: runMessage,
}

var (
	messageType         string
	messageScope        string
	messageSubject      string
	messageBody         string
	messageBodyFiles    bool
	messageBreaking     bool
	messageBreakingDesc string
	messageFooter       string
)

// addMessageFlags registers the message assembly flags on a command.
// Shared with the commit command.
func addMessageFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&messageType, "type", "t", "", "Commit type (feat, fix, docs, ...; default: detected from staged changes)")
	cmd.Flags().StringVarP(&messageScope, "scope", "s", "", "Commit scope (default: extracted from staged paths)")
	cmd.Flags().StringVarP(&messageSubject, "subject", "m", "", "Subject line (default: summarized from staged files)")
	cmd.Flags().StringVar(&messageBody, "body", "", "Body text, wrapped at 72 columns")
	cmd.Flags().BoolVar(&messageBodyFiles, "body-files", false, "Append a bullet list of staged paths to the body")
	cmd.Flags().BoolVar(&messageBreaking, "breaking", false, "Mark the commit as a breaking change")
	cmd.Flags().StringVar(&messageBreakingDesc, "breaking-description", "", "Text for the BREAKING CHANGE paragraph")
	cmd.Flags().StringVar(&messageFooter, "footer", "", "Footer text, e.g. issue references")
}

func init() {
	rootCmd.AddCommand(messageCmd)
	addMessageFlags(messageCmd)
}

// messageOutput is the structured form of an assembled message.
type messageOutput struct {
	Message string               `yaml:"message" json:"message"`
	Commit  *conventional.Commit `yaml:"commit" json:"commit"`
}

func runMessage(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat()
	if err != nil {
		return err
	}

	message, err := assembleMessage()
	if err != nil {
		return err
	}

	if format.IsStructured() {
		commit, err := conventional.Parse(message)
		if err != nil {
			return fmt.Errorf("assembled message failed to parse: %w", err)
		}
		return writeStructured(cmd.OutOrStdout(), format, messageOutput{
			Message: message,
			Commit:  commit,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

// assembleMessage builds the commit message from the message flags, filling
// missing parts from the staging area.
func assembleMessage() (string, error) {
	staged := stagedChangesIfAny()

	commitType := conventional.TypeFeat
	switch {
	case messageType != "":
		parsed, err := conventional.ParseCommitType(messageType)
		if err != nil {
			return "", err
		}
		commitType = parsed
	case staged != nil:
		commitType = conventional.DetectType(staged.Paths(), staged.DiffContent)
	}

	scope := messageScope
	if scope == "" && staged != nil {
		scope = conventional.ExtractScope(staged.Paths())
	}

	subject := messageSubject
	if subject == "" {
		if staged == nil {
			return "", fmt.Errorf("subject required: pass --subject or stage changes first")
		}
		subject = summarizeStagedFiles(staged)
	}

	body := messageBody
	if messageBodyFiles {
		if staged == nil {
			return "", fmt.Errorf("--body-files requires staged changes")
		}
		bullets := conventional.FormatBulletList(staged.Paths())
		if body != "" {
			body += "\n\n" + bullets
		} else {
			body = bullets
		}
	}

	return conventional.CreateMessage(commitType, subject, conventional.MessageOptions{
		Scope:               scope,
		Body:                body,
		Footer:              messageFooter,
		Breaking:            messageBreaking,
		BreakingDescription: messageBreakingDesc,
	}), nil
}

// stagedChangesIfAny returns the staged changes, or nil when the working
// directory is not a repository or nothing is staged.
func stagedChangesIfAny() *diff.StagedChanges {
	gd, err := diff.NewGitDiff(".")
	if err != nil {
		return nil
	}
	staged, err := gd.GetStagedChanges()
	if err != nil || staged.IsEmpty() {
		return nil
	}
	return staged
}

// summarizeStagedFiles derives a mechanical subject line from the staged
// files: a verb from the dominant change status plus the file name or count.
func summarizeStagedFiles(staged *diff.StagedChanges) string {
	verb := "update"
	allAdded := true
	allDeleted := true
	for _, f := range staged.Files {
		if f.Status != "A" {
			allAdded = false
		}
		if f.Status != "D" {
			allDeleted = false
		}
	}
	if allAdded {
		verb = "add"
	} else if allDeleted {
		verb = "remove"
	}

	if len(staged.Files) == 1 {
		return fmt.Sprintf("%s %s", verb, filepath.Base(staged.Files[0].Path))
	}
	return fmt.Sprintf("%s %d files", verb, len(staged.Files))
}
