package changeset

import (
	"path/filepath"
	"regexp"
	"strings"
)

// categoryRule pairs a category with the path patterns that select it.
type categoryRule struct {
	category FileCategory
	patterns []*regexp.Regexp
}

// categoryRules are checked in order and the first matching pattern wins.
// Test patterns come first so that a path like tests/test_config.json is a
// test fixture, not configuration.
var categoryRules = []categoryRule{
	{CategoryTest, compileCategoryPatterns(
		`test[s]?/`,
		`__tests__/`,
		`_test\.`,
		`\.test\.`,
		`\.spec\.`,
		`test_`,
	)},
	{CategoryDocs, compileCategoryPatterns(
		`\.md$`,
		`\.rst$`,
		`\.txt$`,
		`^docs?/`,
		`README`,
		`CHANGELOG`,
		`LICENSE`,
		`CONTRIBUTING`,
	)},
	{CategoryConfig, compileCategoryPatterns(
		`\.json$`,
		`\.ya?ml$`,
		`\.toml$`,
		`\.ini$`,
		`\.cfg$`,
		`\.conf$`,
		`\.env`,
		`\.gitignore$`,
		`\.editorconfig$`,
		`\.prettierrc`,
		`\.eslintrc`,
		`tsconfig`,
		`jest\.config`,
		`webpack\.config`,
		`babel\.config`,
	)},
	{CategoryBuild, compileCategoryPatterns(
		`Dockerfile`,
		`docker-compose`,
		`Makefile$`,
		`\.github/`,
		`\.gitlab-ci`,
		`\.travis`,
		`\.circleci/`,
		`azure-pipelines`,
		`Jenkinsfile`,
		`package\.json$`,
		`requirements\.txt$`,
		`setup\.py$`,
		`pyproject\.toml$`,
		`go\.mod$`,
		`Cargo\.toml$`,
		`pom\.xml$`,
		`build\.gradle`,
	)},
	{CategoryStyle, compileCategoryPatterns(
		`\.css$`,
		`\.scss$`,
		`\.sass$`,
		`\.less$`,
		`\.styled\.`,
	)},
}

func compileCategoryPatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(`(?i)` + p)
	}
	return compiled
}

// sourceExtensions are the extensions treated as source code when no
// category pattern matches.
var sourceExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".java": true, ".go": true, ".rs": true, ".c": true, ".cpp": true,
	".h": true, ".hpp": true, ".cs": true, ".rb": true, ".php": true,
	".swift": true, ".kt": true, ".scala": true, ".clj": true, ".ex": true,
	".exs": true, ".erl": true, ".hs": true,
}

// Categorize assigns a category to a file path.
func Categorize(path string) FileCategory {
	for _, rule := range categoryRules {
		for _, p := range rule.patterns {
			if p.MatchString(path) {
				return rule.category
			}
		}
	}

	if sourceExtensions[strings.ToLower(filepath.Ext(path))] {
		return CategorySource
	}

	return CategoryOther
}
