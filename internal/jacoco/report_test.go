package jacoco

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const demoIndexPage = `<!DOCTYPE html>
<html lang="en">
<head><title>Demo Project</title></head>
<body>
<h1>Demo Project</h1>
<table class="coverage" cellspacing="0" id="coveragetable">
<thead><tr><td class="sortable" id="a">Element</td><td class="sortable bar" id="b">Missed Instructions</td></tr></thead>
<tfoot><tr><td>Total</td><td class="bar">120 of 640</td></tr></tfoot>
<tbody>
<tr><td id="a0"><a href="com.example/index.html" class="el_package">com.example</a></td><td class="bar" id="b0">120 of 640</td></tr>
</tbody>
</table>
</body>
</html>`

const demoClassPage = `<!DOCTYPE html>
<html lang="en">
<head><title>Foo</title></head>
<body>
<h1>Foo</h1>
<table class="coverage"><tbody>
<tr><td><a href="Foo.java.html#L4" class="el_method">run()</a></td><td>1 of 2</td></tr>
</tbody></table>
</body>
</html>`

const demoSourcePage = `<!DOCTYPE html>
<html lang="en">
<head><title>Foo.java</title></head>
<body>
<h1>Foo.java</h1>
<pre class="source lang-java linenums">package com.example;

<span class="fc" id="L3">public class Foo {</span>
<span class="pc bpc" id="L4" title="1 of 2 branches missed.">	if (ready) {</span>
<span class="fc" id="L5">		run();</span>
<span class="nc" id="L6">	return null;</span>
}
</pre>
</body>
</html>`

func writeDemoReport(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "index.html"), demoIndexPage)
	writeFile(t, filepath.Join(dir, "jacoco-resources", "report.css"), "body { margin: 0; }")
	writeFile(t, filepath.Join(dir, "com.example", "index.html"), demoClassPage)
	writeFile(t, filepath.Join(dir, "com.example", "index.source.html"), demoSourcePage)
	writeFile(t, filepath.Join(dir, "com.example", "Foo.html"), demoClassPage)
	writeFile(t, filepath.Join(dir, "com.example", "Foo.java.html"), demoSourcePage)
}

func checkDemoResult(t *testing.T, result *Result) {
	t.Helper()

	// Foo.html and Foo.java.html; both index pages and the css are skipped.
	if result.TotalFilesAnalyzed != 2 {
		t.Errorf("expected 2 files analyzed, got %d", result.TotalFilesAnalyzed)
	}
	if result.ReportTitle != "Demo Project" {
		t.Errorf("expected report title %q, got %q", "Demo Project", result.ReportTitle)
	}
	if len(result.Packages) != 1 || result.Packages[0] != "com.example" {
		t.Errorf("expected packages [com.example], got %v", result.Packages)
	}

	if len(result.MissedBranches) != 1 {
		t.Fatalf("expected 1 missed branch, got %d", len(result.MissedBranches))
	}
	br := result.MissedBranches[0]
	if br.File != filepath.Join("com.example", "Foo.java.html") {
		t.Errorf("unexpected branch file %q", br.File)
	}
	if br.Class != "Foo.java" {
		t.Errorf("expected class %q, got %q", "Foo.java", br.Class)
	}
	if br.Line != 4 {
		t.Errorf("expected line 4, got %d", br.Line)
	}
	if br.BranchInfo != "1 of 2 branches missed." {
		t.Errorf("unexpected branch info %q", br.BranchInfo)
	}
	if br.Source != "if (ready) {" {
		t.Errorf("unexpected branch source %q", br.Source)
	}

	if len(result.UncoveredLines) != 1 {
		t.Fatalf("expected 1 uncovered line, got %d", len(result.UncoveredLines))
	}
	ln := result.UncoveredLines[0]
	if ln.File != filepath.Join("com.example", "Foo.java.html") {
		t.Errorf("unexpected line file %q", ln.File)
	}
	if ln.Line != 6 {
		t.Errorf("expected line 6, got %d", ln.Line)
	}
	if ln.Source != "return null;" {
		t.Errorf("unexpected line source %q", ln.Source)
	}
}

func TestAnalyzeReportDirectory(t *testing.T) {
	dir := t.TempDir()
	writeDemoReport(t, dir)

	a := &Analyzer{ReportDir: dir, Workers: 2}
	result, err := a.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.SourceDirectory != dir {
		t.Errorf("expected source directory %q, got %q", dir, result.SourceDirectory)
	}
	checkDemoResult(t, result)
}

func TestAnalyzeNestedReportDirectory(t *testing.T) {
	dir := t.TempDir()
	writeDemoReport(t, filepath.Join(dir, "target", "site", "jacoco"))

	a := &Analyzer{ReportDir: dir}
	result, err := a.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	expected := filepath.Join(dir, "target", "site", "jacoco")
	if result.SourceDirectory != expected {
		t.Errorf("expected source directory %q, got %q", expected, result.SourceDirectory)
	}
	checkDemoResult(t, result)
}

func TestAnalyzeArchive(t *testing.T) {
	reportDir := t.TempDir()
	writeDemoReport(t, reportDir)

	entries := map[string]string{}
	err := filepath.Walk(reportDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(reportDir, path)
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return rerr
		}
		entries[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("collecting entries failed: %v", err)
	}

	a := &Analyzer{ArchivePath: buildZip(t, entries)}
	result, aerr := a.Analyze(context.Background())
	if aerr != nil {
		t.Fatalf("Analyze failed: %v", aerr)
	}

	if result.SourceDirectory == "" || result.SourceDirectory == reportDir {
		t.Errorf("expected extraction directory, got %q", result.SourceDirectory)
	}
	checkDemoResult(t, result)
}

func TestAnalyzeRequiresInput(t *testing.T) {
	a := &Analyzer{}
	if _, err := a.Analyze(context.Background()); err == nil {
		t.Error("expected error when neither archive nor directory is set")
	}
}

func TestAnalyzeMissingReport(t *testing.T) {
	a := &Analyzer{ReportDir: t.TempDir()}
	_, err := a.Analyze(context.Background())
	if err == nil {
		t.Fatal("expected error for directory without a report")
	}
}

func TestAnalyzeCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeDemoReport(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &Analyzer{ReportDir: dir}
	if _, err := a.Analyze(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}
