package conventional

import (
	"regexp"
	"strings"
)

// typeRule pairs a commit type with the path patterns that suggest it.
// Rules are checked in order; on equal match counts the earlier type wins.
type typeRule struct {
	commitType CommitType
	patterns   []*regexp.Regexp
}

var typeRules = []typeRule{
	{TypeDocs, compilePatterns(
		`\.md$`, `\.rst$`, `\.txt$`, `^docs?/`, `README`, `LICENSE`, `CHANGELOG`,
	)},
	{TypeTest, compilePatterns(
		`test[s_]?/`, `_test\.`, `\.test\.`, `\.spec\.`, `__tests__/`,
	)},
	{TypeCI, compilePatterns(
		`\.github/`, `\.gitlab-ci`, `Jenkinsfile`, `\.travis`, `\.circleci/`, `azure-pipelines`,
	)},
	{TypeBuild, compilePatterns(
		`package\.json$`, `package-lock\.json$`, `yarn\.lock$`, `requirements\.txt$`,
		`setup\.py$`, `pyproject\.toml$`, `Makefile$`, `Dockerfile`, `docker-compose`,
		`\.gradle`, `pom\.xml$`,
	)},
	{TypeStyle, compilePatterns(
		`\.css$`, `\.scss$`, `\.less$`, `\.styled\.`,
	)},
	{TypeChore, compilePatterns(
		`\.gitignore$`, `\.editorconfig$`, `\.prettierrc`, `\.eslintrc`, `tsconfig\.json$`,
	)},
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(`(?i)` + p)
	}
	return compiled
}

// DetectType picks the most appropriate commit type for a set of changed
// paths. Each path counts once toward the first rule whose patterns match
// it; the type with the most matching paths wins. When no path matches any
// rule, diffContent is sniffed for fix/feature/refactor/perf keywords, and
// failing that the choice falls to feat (mostly new-looking files) or
// refactor. An empty path list yields chore.
func DetectType(paths []string, diffContent string) CommitType {
	if len(paths) == 0 {
		return TypeChore
	}

	counts := make(map[CommitType]int)
	for _, path := range paths {
		for _, rule := range typeRules {
			if matchesRule(rule, path) {
				counts[rule.commitType]++
				break
			}
		}
	}
	if len(counts) > 0 {
		var best CommitType
		for _, rule := range typeRules {
			n, ok := counts[rule.commitType]
			if !ok {
				continue
			}
			if best == "" || n > counts[best] {
				best = rule.commitType
			}
		}
		return best
	}

	if diffContent != "" {
		lower := strings.ToLower(diffContent)
		switch {
		case containsAny(lower, "fix", "bug", "issue", "error", "crash"):
			return TypeFix
		case containsAny(lower, "add", "new", "feature", "implement"):
			return TypeFeat
		case containsAny(lower, "refactor", "rename", "move", "restructure"):
			return TypeRefactor
		case containsAny(lower, "performance", "optimize", "speed", "cache"):
			return TypePerf
		}
	}

	newFiles := 0
	for _, path := range paths {
		if strings.Contains(strings.ToLower(path), "new") || !matchesAnyTypeRule(path) {
			newFiles++
		}
	}
	if newFiles*2 > len(paths) {
		return TypeFeat
	}
	return TypeRefactor
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func matchesRule(rule typeRule, path string) bool {
	for _, pattern := range rule.patterns {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}

func matchesAnyTypeRule(path string) bool {
	for _, rule := range typeRules {
		if matchesRule(rule, path) {
			return true
		}
	}
	return false
}
