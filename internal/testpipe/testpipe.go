// Package testpipe runs the full Parser→IR Builder→Analyzer→Emitter
// pipeline over an in-memory source string, so package tests don't each
// re-implement temp-file plumbing. Grounded on the pack's
// internal/harness package (roach88-nysm/brutalist): a small non-test
// package under internal/ that sibling packages' test files import
// directly, including a "testing" import in a non-_test.go file (see
// harness/golden.go's RunWithGolden).
package testpipe

import (
	"os"
	"path/filepath"
	"testing"

	"ferroc/analyze"
	"ferroc/diag"
	"ferroc/emit"
	"ferroc/ir"
	"ferroc/stubs"
	"ferroc/syntax"
)

// Result bundles one source file's pipeline output for assertions.
type Result struct {
	Module *ir.Module
	Notes  *analyze.Annotations
	File   *emit.File
	Report *diag.Report
}

// Parse writes src to a temp file and parses+lowers it to TIR, without
// running the analyzer or emitter.
func Parse(t *testing.T, src string) (*ir.Module, *diag.Report) {
	t.Helper()
	path := writeSource(t, src)
	report := diag.NewReport(t.Name())
	f, ok := syntax.ParseFile(path, report)
	if !ok {
		return nil, report
	}
	return ir.BuildModule(path, f, report), report
}

// Run carries src through the full pipeline using the builtin stub
// registry. Callers must check Report.HasErrors() before trusting Notes
// or File, since either may be nil/partial on a fatal diagnostic.
func Run(t *testing.T, src string) *Result {
	t.Helper()
	module, report := Parse(t, src)
	if report.HasErrors() || module == nil {
		return &Result{Module: module, Report: report}
	}

	reg := stubs.Builtin()
	notes := analyze.New(module, reg, report).Run()
	if report.HasErrors() {
		return &Result{Module: module, Notes: notes, Report: report}
	}

	file := emit.New(module, notes, reg).Emit()
	return &Result{Module: module, Notes: notes, File: file, Report: report}
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.py")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("testpipe: writing source: %v", err)
	}
	return path
}
