package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ferroc/diag"
)

func TestInferProjectName(t *testing.T) {
	cases := []struct{ input, want string }{
		{"greeter.py", "greeter"},
		{"/a/b/widgets.py", "widgets"},
		{"/a/b/project/", "project"},
		{".", "ferroc_project"},
		{"/", "ferroc_project"},
	}
	for _, c := range cases {
		if got := inferProjectName(c.input); got != c.want {
			t.Errorf("inferProjectName(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestDiscoverSources_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.py")
	if err := os.WriteFile(path, []byte("def main() -> None:\n    pass\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := discoverSources(path)
	if err != nil {
		t.Fatalf("discoverSources: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("expected [%s], got %v", path, files)
	}
}

func TestDiscoverSources_DirectoryFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"), "def main() -> None:\n    pass\n")
	writeFile(t, filepath.Join(dir, "b.py"), "def helper() -> None:\n    pass\n")
	writeFile(t, filepath.Join(dir, "README.md"), "not source")

	files, err := discoverSources(dir)
	if err != nil {
		t.Fatalf("discoverSources: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 .py files, got %v", files)
	}
}

// buildModules/analyzeModules/emitModules/entryModulePath wired end to end
// over a two-file input, exercising the same sequence cli/execute.go's
// transpile command runs.
func TestPipelineHelpers_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "greeter.py"),
		"def greet(name: str) -> str:\n"+
			"    return f\"Hello, {name}!\"\n"+
			"\n"+
			"def main() -> None:\n"+
			"    message: str = greet(\"World\")\n"+
			"    print(message)\n")
	writeFile(t, filepath.Join(dir, "helpers.py"),
		"def double(x: int) -> int:\n"+
			"    return x + x\n")

	files, err := discoverSources(dir)
	if err != nil {
		t.Fatalf("discoverSources: %v", err)
	}

	report := diag.NewReport("pipeline-test")
	modules := buildModules(files, report)
	if report.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %+v", report.Diagnostics())
	}
	if len(modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(modules))
	}

	entry := entryModulePath(modules)
	if !strings.HasSuffix(entry, "greeter.py") {
		t.Errorf("expected the entry module to be greeter.py, got %s", entry)
	}

	reg := newRegistry(report)
	analyzed := analyzeModules(modules, reg, report)
	if report.HasErrors() {
		t.Fatalf("unexpected analysis diagnostics: %+v", report.Diagnostics())
	}

	emitted := emitModules(analyzed, reg)
	if len(emitted) != 2 {
		t.Fatalf("expected 2 emitted files, got %d", len(emitted))
	}

	dump := dumpTIR(modules)
	if !strings.Contains(dump, "func greet(1 params)") {
		t.Errorf("expected dumpTIR to describe greet's arity, got:\n%s", dump)
	}
	if !strings.Contains(dump, "func main(0 params)") {
		t.Errorf("expected dumpTIR to describe main's arity, got:\n%s", dump)
	}
	if !strings.Contains(dump, "entry=true") {
		t.Errorf("expected dumpTIR to mark the entry module, got:\n%s", dump)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
