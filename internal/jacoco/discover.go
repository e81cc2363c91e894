package jacoco

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrReportNotFound is returned when no JaCoCo index.html can be located
// under the given directory.
var ErrReportNotFound = errors.New("no JaCoCo report found")

// conventionalIndexPaths are the report locations produced by common Maven
// and Gradle setups, tried before any recursive search.
var conventionalIndexPaths = []string{
	"index.html",
	filepath.Join("jacoco", "index.html"),
	filepath.Join("site", "jacoco", "index.html"),
	filepath.Join("target", "site", "jacoco", "index.html"),
	filepath.Join("build", "reports", "jacoco", "test", "html", "index.html"),
}

// FindReportIndex locates the JaCoCo index.html under dir. Conventional
// report locations are tried first; otherwise the tree is walked for any
// index.html whose leading content mentions jacoco or coverage.
func FindReportIndex(dir string) (string, error) {
	for _, rel := range conventionalIndexPaths {
		p := filepath.Join(dir, rel)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}

	var found string
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == "index.html" && looksLikeCoverageReport(path) {
			found = path
			return fs.SkipAll
		}
		return nil
	})

	if found == "" {
		return "", fmt.Errorf("%w: no index.html under %s", ErrReportNotFound, dir)
	}
	return found, nil
}

// looksLikeCoverageReport sniffs the leading bytes of an HTML file for
// coverage report markers, guarding against unrelated index.html files.
func looksLikeCoverageReport(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 1000)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false
	}

	content := strings.ToLower(string(head[:n]))
	return strings.Contains(content, "jacoco") || strings.Contains(content, "coverage")
}
