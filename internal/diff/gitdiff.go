// Package diff inspects the git staging area and measures staged changes.
package diff

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNotARepository is returned when the given path is not inside a git
// repository work tree.
var ErrNotARepository = errors.New("not a git repository")

// ErrNoStagedChanges is returned when a commit is requested with an empty
// staging area.
var ErrNoStagedChanges = errors.New("no staged changes")

// FileChange represents a single staged file.
type FileChange struct {
	// Path is the relative file path.
	Path string `yaml:"path" json:"path"`
	// Status is the change type: A (added), M (modified), D (deleted), R (renamed).
	Status string `yaml:"status" json:"status"`
	// Additions is the number of added lines.
	Additions int `yaml:"additions" json:"additions"`
	// Deletions is the number of deleted lines.
	Deletions int `yaml:"deletions" json:"deletions"`
	// IsBinary reports whether git considers the file binary.
	IsBinary bool `yaml:"is_binary,omitempty" json:"is_binary,omitempty"`
	// OldPath is set for renamed files.
	OldPath string `yaml:"old_path,omitempty" json:"old_path,omitempty"`
}

// StagedChanges holds everything staged for the next commit.
type StagedChanges struct {
	// Files are the staged file changes.
	Files []FileChange `yaml:"files" json:"files"`
	// TotalAdditions is the number of added lines across all files.
	TotalAdditions int `yaml:"total_additions" json:"total_additions"`
	// TotalDeletions is the number of deleted lines across all files.
	TotalDeletions int `yaml:"total_deletions" json:"total_deletions"`
	// TotalFiles is the number of staged files.
	TotalFiles int `yaml:"total_files" json:"total_files"`
	// DiffContent is the full unified diff of the staging area.
	DiffContent string `yaml:"-" json:"-"`
}

// IsEmpty reports whether nothing is staged.
func (sc *StagedChanges) IsEmpty() bool {
	return len(sc.Files) == 0
}

// Paths returns the staged file paths in diff order.
func (sc *StagedChanges) Paths() []string {
	paths := make([]string, len(sc.Files))
	for i, f := range sc.Files {
		paths[i] = f.Path
	}
	return paths
}

// GitDiff inspects the staging area of a git repository.
type GitDiff struct {
	projectRoot string
}

// NewGitDiff creates a GitDiff rooted at the repository containing path.
// Returns ErrNotARepository when path is not inside a git work tree.
func NewGitDiff(path string) (*GitDiff, error) {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, path)
	}

	return &GitDiff{projectRoot: strings.TrimSpace(string(out))}, nil
}

// Root returns the resolved repository root.
func (gd *GitDiff) Root() string {
	return gd.projectRoot
}

func (gd *GitDiff) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = gd.projectRoot
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}

// GetStagedChanges returns the staged files with line counts and the full
// diff content.
func (gd *GitDiff) GetStagedChanges() (*StagedChanges, error) {
	nameStatus, err := gd.git("diff", "--cached", "--name-status", "-M")
	if err != nil {
		return nil, err
	}

	numstat, err := gd.git("diff", "--cached", "--numstat", "-M")
	if err != nil {
		return nil, err
	}

	diffContent, err := gd.git("diff", "--cached", "--no-color")
	if err != nil {
		return nil, err
	}

	files := parseNameStatus(nameStatus)
	counts := parseNumstat(numstat)

	staged := &StagedChanges{DiffContent: diffContent}
	for _, fc := range files {
		if c, ok := counts[fc.Path]; ok {
			fc.Additions = c.additions
			fc.Deletions = c.deletions
			fc.IsBinary = c.binary
		}
		staged.Files = append(staged.Files, fc)
		staged.TotalAdditions += fc.Additions
		staged.TotalDeletions += fc.Deletions
	}
	staged.TotalFiles = len(staged.Files)

	return staged, nil
}

// HasStagedChanges reports whether anything is staged.
func (gd *GitDiff) HasStagedChanges() (bool, error) {
	out, err := gd.git("diff", "--cached", "--name-only")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// CreateCommit commits the staged changes with the given message and
// returns the new commit SHA. Returns ErrNoStagedChanges when the staging
// area is empty.
func (gd *GitDiff) CreateCommit(message string) (string, error) {
	ok, err := gd.HasStagedChanges()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoStagedChanges
	}

	if _, err := gd.git("commit", "-m", message); err != nil {
		return "", fmt.Errorf("commit failed: %w", err)
	}

	sha, err := gd.git("rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sha), nil
}

// LastCommitSummary returns the most recent commit with its stat block.
func (gd *GitDiff) LastCommitSummary() (string, error) {
	out, err := gd.git("log", "-1", "--stat", "--no-color")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CurrentBranch returns the checked-out branch name.
func (gd *GitDiff) CurrentBranch() (string, error) {
	out, err := gd.git("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// parseNameStatus parses git diff --name-status output. Fields are tab
// separated; renames carry the old and new path.
func parseNameStatus(output string) []FileChange {
	var changes []FileChange

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}

		status := parts[0]
		fc := FileChange{
			Path:   parts[1],
			Status: status[:1],
		}

		// Renames and copies (R100 old new) name both paths.
		if (strings.HasPrefix(status, "R") || strings.HasPrefix(status, "C")) && len(parts) >= 3 {
			fc.OldPath = parts[1]
			fc.Path = parts[2]
		}

		changes = append(changes, fc)
	}

	return changes
}

type lineCount struct {
	additions int
	deletions int
	binary    bool
}

// parseNumstat parses git diff --numstat output into per-path line counts.
// Binary files report "-" for both counts.
func parseNumstat(output string) map[string]lineCount {
	counts := make(map[string]lineCount)

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}

		path := normalizeRenamePath(parts[2])

		var c lineCount
		if parts[0] == "-" || parts[1] == "-" {
			c.binary = true
		} else {
			c.additions, _ = strconv.Atoi(parts[0])
			c.deletions, _ = strconv.Atoi(parts[1])
		}

		counts[path] = c
	}

	return counts
}

// normalizeRenamePath resolves the numstat rename notation to the new path.
// Git emits either "old => new" or the brace form "pre{old => new}post".
func normalizeRenamePath(path string) string {
	if !strings.Contains(path, " => ") {
		return path
	}

	if open := strings.Index(path, "{"); open != -1 {
		if end := strings.Index(path, "}"); end > open {
			inner := path[open+1 : end]
			if _, after, ok := strings.Cut(inner, " => "); ok {
				return path[:open] + after + path[end+1:]
			}
		}
	}

	if _, after, ok := strings.Cut(path, " => "); ok {
		return after
	}
	return path
}

// StatusDescription returns a human-readable description of a status code.
func StatusDescription(status string) string {
	switch status {
	case "A":
		return "added"
	case "M":
		return "modified"
	case "D":
		return "deleted"
	case "R":
		return "renamed"
	case "C":
		return "copied"
	case "U":
		return "unmerged"
	default:
		return "changed"
	}
}
