// Package conventional implements the Conventional Commits v1.0.0 message
// format: a typed model, a formatter that renders it to wire text, a parser
// that is the formatter's inverse, and style-rule validation.
// https://www.conventionalcommits.org/en/v1.0.0/
package conventional

import (
	"fmt"
	"strings"
)

// CommitType represents a commit type keyword.
type CommitType string

const (
	// TypeFeat marks a new feature
	TypeFeat CommitType = "feat"

	// TypeFix marks a bug fix
	TypeFix CommitType = "fix"

	// TypeDocs marks documentation-only changes
	TypeDocs CommitType = "docs"

	// TypeStyle marks changes that do not affect code meaning
	TypeStyle CommitType = "style"

	// TypeRefactor marks a change that neither fixes a bug nor adds a feature
	TypeRefactor CommitType = "refactor"

	// TypeTest marks added or corrected tests
	TypeTest CommitType = "test"

	// TypeChore marks changes outside src and test files
	TypeChore CommitType = "chore"

	// TypePerf marks a performance improvement
	TypePerf CommitType = "perf"

	// TypeCI marks CI configuration changes
	TypeCI CommitType = "ci"

	// TypeBuild marks build-system or dependency changes
	TypeBuild CommitType = "build"

	// TypeRevert marks a revert of a previous commit
	TypeRevert CommitType = "revert"
)

// typeMeta is the fixed metadata carried by each commit type. The color is a
// terminal hint used by text renderers; neither field affects behavior beyond
// display.
type typeMeta struct {
	description string
	color       string
}

var commitTypeMeta = map[CommitType]typeMeta{
	TypeFeat:     {"A new feature", "green"},
	TypeFix:      {"A bug fix", "red"},
	TypeDocs:     {"Documentation only changes", "blue"},
	TypeStyle:    {"Changes that do not affect the meaning of the code", "magenta"},
	TypeRefactor: {"A code change that neither fixes a bug nor adds a feature", "yellow"},
	TypeTest:     {"Adding missing tests or correcting existing tests", "cyan"},
	TypeChore:    {"Other changes that don't modify src or test files", "dim"},
	TypePerf:     {"A code change that improves performance", "green"},
	TypeCI:       {"Changes to CI configuration files and scripts", "blue"},
	TypeBuild:    {"Changes that affect the build system or external dependencies", "yellow"},
	TypeRevert:   {"Reverts a previous commit", "red"},
}

// allTypes lists every commit type in canonical display order.
var allTypes = []CommitType{
	TypeFeat, TypeFix, TypeDocs, TypeStyle, TypeRefactor,
	TypeTest, TypeChore, TypePerf, TypeCI, TypeBuild, TypeRevert,
}

// ParseCommitType parses a type keyword into a CommitType.
// Accepts any casing; returns an error for unknown keywords.
func ParseCommitType(s string) (CommitType, error) {
	t := CommitType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := commitTypeMeta[t]; !ok {
		return "", fmt.Errorf("invalid commit type: %q (expected one of %s)", s, strings.Join(AllTypes(), ", "))
	}
	return t, nil
}

// String returns the type keyword.
func (t CommitType) String() string {
	return string(t)
}

// Valid reports whether the type is one of the eleven known keywords.
func (t CommitType) Valid() bool {
	_, ok := commitTypeMeta[t]
	return ok
}

// Description returns the fixed human description for the type.
func (t CommitType) Description() string {
	return commitTypeMeta[t].description
}

// Color returns the terminal color hint for the type ("green", "red", ...,
// "dim"). Empty for unknown types.
func (t CommitType) Color() string {
	return commitTypeMeta[t].color
}

// AllTypes returns every valid type keyword in canonical order.
func AllTypes() []string {
	names := make([]string, len(allTypes))
	for i, t := range allTypes {
		names[i] = string(t)
	}
	return names
}
