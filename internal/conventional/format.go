package conventional

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MessageOptions carries the optional parts of a commit message built by
// CreateMessage.
type MessageOptions struct {
	// Scope is the optional commit scope
	Scope string

	// Body is the optional long description (formatted before use)
	Body string

	// Footer holds trailing reference lines, passed through verbatim
	Footer string

	// Breaking marks the commit as a breaking change
	Breaking bool

	// BreakingDescription is the BREAKING CHANGE paragraph text
	BreakingDescription string
}

// CreateMessage builds a fully formatted conventional commit message.
// The subject is normalized with FormatSubject and the body wrapped with
// FormatBody, so the result always parses back to an equivalent model and
// never trips the subject-length validation rule.
func CreateMessage(commitType CommitType, subject string, opts MessageOptions) string {
	c := &Commit{
		Type:                commitType,
		Scope:               opts.Scope,
		Subject:             FormatSubject(subject),
		Footer:              opts.Footer,
		Breaking:            opts.Breaking,
		BreakingDescription: opts.BreakingDescription,
	}
	if opts.Body != "" {
		c.Body = FormatBody(opts.Body)
	}
	return c.Format()
}

// FormatSubject normalizes a subject line: lowercase first letter, trailing
// periods stripped, truncated with "..." past MaxSubjectLength.
func FormatSubject(subject string) string {
	if subject == "" {
		return subject
	}

	first, size := utf8.DecodeRuneInString(subject)
	subject = string(unicode.ToLower(first)) + subject[size:]
	subject = strings.TrimRight(subject, ".")

	if utf8.RuneCountInString(subject) > MaxSubjectLength {
		runes := []rune(subject)
		subject = string(runes[:MaxSubjectLength-3]) + "..."
	}

	return subject
}

// FormatBody wraps body lines at MaxBodyLineLength. Lines that begin with a
// code fence, indentation, or a bullet marker pass through unwrapped.
func FormatBody(body string) string {
	if body == "" {
		return body
	}

	var formatted []string
	for _, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(line, "```"),
			strings.HasPrefix(line, "  "),
			strings.HasPrefix(line, "- "),
			strings.HasPrefix(line, "* "):
			formatted = append(formatted, line)
		case utf8.RuneCountInString(line) > MaxBodyLineLength:
			formatted = append(formatted, wrapLine(line)...)
		default:
			formatted = append(formatted, line)
		}
	}
	return strings.Join(formatted, "\n")
}

// wrapLine greedily wraps one line at word boundaries.
func wrapLine(line string) []string {
	var lines []string
	var current []string
	length := 0

	for _, word := range strings.Fields(line) {
		sep := 0
		if len(current) > 0 {
			sep = 1
		}
		if length+sep+len(word) <= MaxBodyLineLength {
			current = append(current, word)
			length += sep + len(word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
		length = len(word)
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// FormatBulletList renders items as "- item" lines.
func FormatBulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
