package conventional

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNotConventional indicates the header line does not match the
	// "type(scope)!: subject" shape.
	ErrNotConventional = errors.New("message does not follow conventional commit format")

	// ErrUnknownType indicates a well-formed header with an unrecognized
	// type keyword.
	ErrUnknownType = errors.New("unknown commit type")
)

// headerPattern matches the conventional commit header line:
// type, optional (scope), optional breaking "!", colon, subject.
var headerPattern = regexp.MustCompile(`^(\w+)(?:\(([^)]+)\))?(!)?:\s*(.+)$`)

// breakingMarker introduces the breaking-change paragraph.
const breakingMarker = "BREAKING CHANGE:"

var (
	footerTokenPattern = regexp.MustCompile(`(?i)^[\w-]+(-by)?:\s`)
	footerIssuePattern = regexp.MustCompile(`(?i)^(Fixes|Closes|Resolves)\s+#\d+`)
)

// Parse parses a commit message into a Commit. It is the inverse of
// Commit.Format for any message the formatter produces: type, scope,
// subject, breaking flag, and breaking description survive the round trip.
//
// Lines after the header that contain a BREAKING CHANGE marker are split
// into body (before the marker), breaking description (rest of that line),
// and footer (following lines). Otherwise the first footer-like line
// ("Token: value" or an issue reference) and everything after it become the
// footer and the rest becomes the body.
func Parse(message string) (*Commit, error) {
	lines := strings.Split(strings.TrimSpace(message), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, ErrNotConventional
	}

	m := headerPattern.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, ErrNotConventional
	}

	commitType, err := ParseCommitType(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, m[1])
	}

	c := &Commit{
		Type:     commitType,
		Scope:    m[2],
		Breaking: m[3] == "!",
		Subject:  strings.TrimSpace(m[4]),
	}

	if len(lines) > 1 {
		rest := lines[1:]
		if rest[0] == "" {
			rest = rest[1:]
		}
		parseTrailer(c, strings.Join(rest, "\n"))
	}

	return c, nil
}

// parseTrailer fills body, footer, and breaking fields from the text after
// the header line.
func parseTrailer(c *Commit, remaining string) {
	if remaining == "" {
		return
	}

	if idx := strings.Index(remaining, breakingMarker); idx >= 0 {
		c.Body = strings.TrimSpace(remaining[:idx])
		after := strings.TrimSpace(remaining[idx+len(breakingMarker):])
		desc, footer, hasFooter := strings.Cut(after, "\n")
		c.BreakingDescription = strings.TrimSpace(desc)
		if hasFooter {
			c.Footer = strings.TrimSpace(footer)
		}
		c.Breaking = true
		return
	}

	var bodyLines, footerLines []string
	inFooter := false
	for _, line := range strings.Split(remaining, "\n") {
		switch {
		case footerTokenPattern.MatchString(line) || footerIssuePattern.MatchString(line):
			inFooter = true
			footerLines = append(footerLines, line)
		case inFooter:
			footerLines = append(footerLines, line)
		default:
			bodyLines = append(bodyLines, line)
		}
	}
	c.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	c.Footer = strings.TrimSpace(strings.Join(footerLines, "\n"))
}
