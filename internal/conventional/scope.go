package conventional

import (
	"regexp"
	"strings"
)

// scopeRule maps an anchored path pattern to a scope name. Rules are checked
// in order; the first match wins.
type scopeRule struct {
	pattern *regexp.Regexp
	scope   string
}

var scopeRules = []scopeRule{
	{regexp.MustCompile(`^src/components/`), "components"},
	{regexp.MustCompile(`^src/api/`), "api"},
	{regexp.MustCompile(`^src/services/`), "services"},
	{regexp.MustCompile(`^src/utils/`), "utils"},
	{regexp.MustCompile(`^src/hooks/`), "hooks"},
	{regexp.MustCompile(`^src/store/`), "store"},
	{regexp.MustCompile(`^src/models/`), "models"},
	{regexp.MustCompile(`^src/views/`), "views"},
	{regexp.MustCompile(`^src/pages/`), "pages"},
	{regexp.MustCompile(`^src/lib/`), "lib"},
	{regexp.MustCompile(`^tests?/`), "tests"},
	{regexp.MustCompile(`^docs?/`), "docs"},
	{regexp.MustCompile(`^config/`), "config"},
	{regexp.MustCompile(`^scripts/`), "scripts"},
	{regexp.MustCompile(`^\.github/`), "ci"},
	{regexp.MustCompile(`^\.`), "config"},
}

// ExtractScope derives a common scope from a set of changed paths. Each path
// maps to a scope through the rule table (with a first-directory fallback);
// the most frequent non-empty scope is returned only when it covers at least
// half of all input paths. Returns "" when no scope qualifies.
func ExtractScope(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	if len(paths) == 1 {
		return scopeFromPath(paths[0])
	}

	counts := make(map[string]int)
	var order []string
	for _, path := range paths {
		scope := scopeFromPath(path)
		if scope == "" {
			continue
		}
		if _, seen := counts[scope]; !seen {
			order = append(order, scope)
		}
		counts[scope]++
	}
	if len(order) == 0 {
		return ""
	}

	// Ties go to the scope seen first.
	best := order[0]
	for _, scope := range order[1:] {
		if counts[scope] > counts[best] {
			best = scope
		}
	}

	if float64(counts[best]) >= float64(len(paths))/2 {
		return best
	}
	return ""
}

// scopeFromPath maps one path to a scope: rule table first, then the first
// directory (skipping one level under src/lib/pkg).
func scopeFromPath(path string) string {
	for _, rule := range scopeRules {
		if rule.pattern.MatchString(path) {
			return rule.scope
		}
	}

	parts := strings.Split(path, "/")
	if len(parts) > 1 {
		first := strings.ToLower(parts[0])
		switch {
		case first == "src" || first == "lib" || first == "pkg":
			if len(parts) > 2 {
				return strings.ToLower(parts[1])
			}
		case first != "." && first != "..":
			return first
		}
	}
	return ""
}
