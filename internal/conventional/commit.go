package conventional

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxSubjectLength is the style limit for the subject line.
	MaxSubjectLength = 50

	// MaxBodyLineLength is the style limit for each body line.
	MaxBodyLineLength = 72
)

// Commit is the canonical representation of a conventional commit message.
type Commit struct {
	// Type is the commit type keyword (feat, fix, ...)
	Type CommitType `yaml:"type" json:"type"`

	// Scope is the optional scope; empty means no scope
	Scope string `yaml:"scope,omitempty" json:"scope,omitempty"`

	// Subject is the one-line summary after the colon
	Subject string `yaml:"subject" json:"subject"`

	// Body is the optional long description
	Body string `yaml:"body,omitempty" json:"body,omitempty"`

	// Footer holds trailing reference lines (Fixes #1, Signed-off-by, ...)
	Footer string `yaml:"footer,omitempty" json:"footer,omitempty"`

	// Breaking marks a breaking change (the "!" header marker)
	Breaking bool `yaml:"breaking,omitempty" json:"breaking,omitempty"`

	// BreakingDescription is the text after "BREAKING CHANGE:"
	BreakingDescription string `yaml:"breaking_description,omitempty" json:"breaking_description,omitempty"`
}

// Format renders the commit to wire text: a header line
// "type(scope)!: subject" followed by blank-line-separated body,
// BREAKING CHANGE paragraph, and footer.
func (c *Commit) Format() string {
	header := string(c.Type)
	if c.Scope != "" {
		header += "(" + c.Scope + ")"
	}
	if c.Breaking {
		header += "!"
	}
	header += ": " + c.Subject

	parts := []string{header}

	if c.Body != "" {
		parts = append(parts, "", c.Body)
	}
	if c.Breaking && c.BreakingDescription != "" {
		parts = append(parts, "", "BREAKING CHANGE: "+c.BreakingDescription)
	}
	if c.Footer != "" {
		parts = append(parts, "", c.Footer)
	}

	return strings.Join(parts, "\n")
}

var scopePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Validate checks the commit against conventional-commit style rules.
// It returns whether the commit is valid and a human-readable message for
// each violation. It never panics and never returns an error value;
// violations are data for the caller to act on.
func (c *Commit) Validate() (bool, []string) {
	var errs []string

	if utf8.RuneCountInString(c.Subject) > MaxSubjectLength {
		errs = append(errs, fmt.Sprintf("Subject line too long (%d chars). Maximum is %d characters.",
			utf8.RuneCountInString(c.Subject), MaxSubjectLength))
	}

	if c.Subject != "" {
		first, _ := utf8.DecodeRuneInString(c.Subject)
		if unicode.IsUpper(first) {
			errs = append(errs, "Subject should start with lowercase letter.")
		}
		if strings.HasSuffix(c.Subject, ".") {
			errs = append(errs, "Subject should not end with a period.")
		}
	}

	if c.Body != "" {
		for i, line := range strings.Split(c.Body, "\n") {
			if utf8.RuneCountInString(line) > MaxBodyLineLength {
				errs = append(errs, fmt.Sprintf("Body line %d too long (%d chars). Maximum is %d characters.",
					i+1, utf8.RuneCountInString(line), MaxBodyLineLength))
			}
		}
	}

	if c.Scope != "" && !scopePattern.MatchString(c.Scope) {
		errs = append(errs, "Scope should be lowercase alphanumeric with hyphens.")
	}

	return len(errs) == 0, errs
}
