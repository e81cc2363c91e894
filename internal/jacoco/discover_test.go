package jacoco

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestFindReportIndexConventionalPaths(t *testing.T) {
	tests := []struct {
		name string
		rel  string
	}{
		{"root", "index.html"},
		{"jacoco dir", "jacoco/index.html"},
		{"maven site", "site/jacoco/index.html"},
		{"maven target", "target/site/jacoco/index.html"},
		{"gradle", "build/reports/jacoco/test/html/index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			expected := filepath.Join(dir, filepath.FromSlash(tt.rel))
			// Conventional locations are trusted without a content sniff.
			writeFile(t, expected, "<html></html>")

			found, err := FindReportIndex(dir)
			if err != nil {
				t.Fatalf("FindReportIndex failed: %v", err)
			}
			if found != expected {
				t.Errorf("expected %q, got %q", expected, found)
			}
		})
	}
}

func TestFindReportIndexRecursiveSearch(t *testing.T) {
	dir := t.TempDir()
	expected := filepath.Join(dir, "nested", "deep", "index.html")
	writeFile(t, expected, "<html><head><title>JaCoCo Coverage Report</title></head></html>")

	found, err := FindReportIndex(dir)
	if err != nil {
		t.Fatalf("FindReportIndex failed: %v", err)
	}
	if found != expected {
		t.Errorf("expected %q, got %q", expected, found)
	}
}

func TestFindReportIndexSniffRejectsUnrelatedHTML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "website", "index.html"),
		"<html><head><title>Company Homepage</title></head></html>")

	_, err := FindReportIndex(dir)
	if !errors.Is(err, ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got %v", err)
	}
}

func TestFindReportIndexEmptyDirectory(t *testing.T) {
	_, err := FindReportIndex(t.TempDir())
	if !errors.Is(err, ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got %v", err)
	}
}

func TestLooksLikeCoverageReport(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		expected bool
	}{
		{"jacoco marker", "<html>JaCoCo report</html>", true},
		{"coverage marker", "<html>Coverage Summary</html>", true},
		{"case insensitive", "<html>COVERAGE</html>", true},
		{"unrelated", "<html>hello world</html>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".html")
			writeFile(t, path, tt.content)

			if got := looksLikeCoverageReport(path); got != tt.expected {
				t.Errorf("looksLikeCoverageReport = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestLooksLikeCoverageReportSniffsLeadingBytesOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "late.html")

	// The marker sits past the sniff window, so the file is rejected.
	padding := make([]byte, 2000)
	for i := range padding {
		padding[i] = 'x'
	}
	writeFile(t, path, string(padding)+"jacoco")

	if looksLikeCoverageReport(path) {
		t.Error("expected marker past 1000 bytes to be ignored")
	}
}
