package changeset

import (
	"path/filepath"
	"strings"
)

// componentSkipDirs are layout directories that carry no component meaning
// of their own.
var componentSkipDirs = map[string]bool{
	"src":      true,
	"lib":      true,
	"pkg":      true,
	"app":      true,
	"internal": true,
	"cmd":      true,
}

// ExtractComponent derives a logical component name from a file path. The
// first meaningful directory wins; layout directories like src/ or cmd/ are
// skipped in favor of the directory below them. Paths with no meaningful
// directory fall back to the file name without its extension.
func ExtractComponent(path string) string {
	parts := strings.Split(path, "/")

	for i, part := range parts {
		if componentSkipDirs[strings.ToLower(part)] {
			if i+1 < len(parts)-1 {
				return parts[i+1]
			}
		} else if part != "." && part != ".." && i < len(parts)-1 {
			return part
		}
	}

	if len(parts) > 0 {
		name := parts[len(parts)-1]
		if ext := filepath.Ext(name); ext != name {
			name = strings.TrimSuffix(name, ext)
		}
		return name
	}

	return "root"
}

// DetectComponents groups paths by component. The returned slice lists the
// components in first-encounter order so callers iterate deterministically.
func DetectComponents(paths []string) ([]string, map[string][]string) {
	components := make(map[string][]string)
	var order []string

	for _, p := range paths {
		c := ExtractComponent(p)
		if _, ok := components[c]; !ok {
			order = append(order, c)
		}
		components[c] = append(components[c], p)
	}

	return order, components
}
