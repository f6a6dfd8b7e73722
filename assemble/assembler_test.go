package assemble_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml"

	"ferroc/assemble"
	"ferroc/emit"
	"ferroc/stubs"
)

// Property 3 from spec.md §8: the manifest's dependency set is the
// de-duplicated union of every emitted file's stub-resolved dependencies.
func TestAssemble_SingleModuleEntry(t *testing.T) {
	out := filepath.Join(t.TempDir(), "greeter")
	asm := assemble.New(out, "greeter")

	files := []*emit.File{
		{
			Path:   "greeter.py",
			Source: "fn main() {\n    println!(\"hi\");\n}\n",
			Deps: []stubs.Dependency{
				{Name: "serde_json", Version: "1.0", Features: []string{"derive"}},
			},
		},
	}

	if err := asm.Assemble(files, "greeter.py"); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	mainSrc, err := os.ReadFile(filepath.Join(out, "src", "main.rs"))
	if err != nil {
		t.Fatalf("reading main.rs: %v", err)
	}
	if !strings.Contains(string(mainSrc), "println!") {
		t.Errorf("expected main.rs to carry the emitted source, got:\n%s", mainSrc)
	}

	if _, err := os.Stat(filepath.Join(out, "src", "lib.rs")); !os.IsNotExist(err) {
		t.Error("expected no lib.rs for a single-module project")
	}

	manifest := readManifest(t, filepath.Join(out, "Cargo.toml"))
	dep, ok := manifest.Dependencies["serde_json"]
	if !ok {
		t.Fatal("expected serde_json in the written manifest")
	}
	if dep.Version != "1.0" || len(dep.Features) != 1 || dep.Features[0] != "derive" {
		t.Errorf("unexpected dependency spec: %+v", dep)
	}
	if manifest.Package.Name != "greeter" {
		t.Errorf("expected package name greeter, got %s", manifest.Package.Name)
	}
}

// Multi-module projects get a sorted lib.rs declaring every non-entry
// module, and the dependency set de-duplicates by name across files
// (first-seen version/features win).
func TestAssemble_MultiModuleLibRootAndDedupedDeps(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app")
	asm := assemble.New(out, "app")

	files := []*emit.File{
		{
			Path:   "app.py",
			Source: "fn main() {}\n",
			Deps:   []stubs.Dependency{{Name: "tokio", Version: "1", Features: []string{"full"}}},
		},
		{
			Path:   "widgets.py",
			Source: "pub struct Widget;\n",
			Deps:   []stubs.Dependency{{Name: "tokio", Version: "999", Features: []string{"ignored"}}},
		},
		{
			Path:   "aardvark.py",
			Source: "pub struct Aardvark;\n",
		},
	}

	if err := asm.Assemble(files, "app.py"); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	libSrc, err := os.ReadFile(filepath.Join(out, "src", "lib.rs"))
	if err != nil {
		t.Fatalf("reading lib.rs: %v", err)
	}
	wantOrder := []string{"pub mod aardvark;", "pub mod widgets;"}
	lines := strings.Split(strings.TrimRight(string(libSrc), "\n"), "\n")
	if len(lines) != len(wantOrder) {
		t.Fatalf("expected %d module declarations, got %v", len(wantOrder), lines)
	}
	for i, want := range wantOrder {
		if lines[i] != want {
			t.Errorf("lib.rs line %d: got %q, want %q (sorted order)", i, lines[i], want)
		}
	}

	manifest := readManifest(t, filepath.Join(out, "Cargo.toml"))
	dep, ok := manifest.Dependencies["tokio"]
	if !ok {
		t.Fatal("expected tokio in the written manifest")
	}
	if dep.Version != "1" {
		t.Errorf("expected the first-seen tokio version \"1\" to win, got %q", dep.Version)
	}
}

// Re-assembling into the same output directory replaces it wholesale
// rather than merging with stale files from a prior run.
func TestAssemble_ReassemblyReplacesStaleOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "proj")
	asm := assemble.New(out, "proj")

	if err := os.MkdirAll(filepath.Join(out, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(out, "src", "leftover.rs")
	if err := os.WriteFile(stale, []byte("// stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	files := []*emit.File{{Path: "proj.py", Source: "fn main() {}\n"}}
	if err := asm.Assemble(files, "proj.py"); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("expected the stale file from a prior run to be gone")
	}
}

type manifestFixture struct {
	Package      struct{ Name, Version, Edition string } `toml:"package"`
	Dependencies map[string]struct {
		Version  string   `toml:"version"`
		Features []string `toml:"features"`
	} `toml:"dependencies"`
}

func readManifest(t *testing.T, path string) manifestFixture {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var m manifestFixture
	if err := toml.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshaling manifest: %v", err)
	}
	return m
}
