package stubs_test

import (
	"os"
	"path/filepath"
	"testing"

	"ferroc/diag"
	"ferroc/stubs"
)

func TestBuiltin_ResolvesStandardLibraryCalls(t *testing.T) {
	reg := stubs.Builtin()

	mapping, ok := reg.LookupFunction("time.sleep")
	if !ok {
		t.Fatal("expected time.sleep to resolve")
	}
	if mapping.Template == "" {
		t.Error("expected a non-empty template")
	}

	pkg, mapping, ok := reg.FunctionOwner("json.dumps")
	if !ok {
		t.Fatal("expected json.dumps to resolve via FunctionOwner")
	}
	if !mapping.NeedsResult {
		t.Error("expected json.dumps to be tagged needs_result")
	}
	if pkg.Crate != "serde_json" {
		t.Errorf("expected owning package crate serde_json, got %s", pkg.Crate)
	}

	if _, ok := reg.LookupFunction("nonexistent.call"); ok {
		t.Error("expected an unknown call to not resolve")
	}
}

func TestDiscover_LoadsStubFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "_ferroc.toml")
	writeStub(t, good, `
[package]
name = "widgets"
crate = "widgets"
version = "1.0"
src_module = "widgets"

[[mappings.functions]]
src = "widgets.make"
template = "widgets::make({args})"

[[mappings.methods]]
src = "Widget.spin"
template = "{self}.spin()"

[[mappings.types]]
src = "Widget"
dst = "widgets::Widget"

[cargo.dependencies]
widgets = "1.0"
`)

	report := diag.NewReport("discover-good")
	reg := stubs.Discover(report, dir)
	if report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", report.Diagnostics())
	}

	if _, ok := reg.LookupFunction("widgets.make"); !ok {
		t.Error("expected widgets.make to resolve")
	}
	if _, ok := reg.LookupMethod("Widget", "spin"); !ok {
		t.Error("expected Widget.spin to resolve")
	}
	if tm, ok := reg.LookupType("Widget"); !ok || tm.DstName != "widgets::Widget" {
		t.Errorf("expected Widget to map to widgets::Widget, got %+v ok=%v", tm, ok)
	}
	deps := reg.CollectRequirements("widgets")
	if len(deps) != 1 || deps[0].Name != "widgets" {
		t.Errorf("expected one widgets dependency, got %+v", deps)
	}
}

func TestDiscover_MalformedStubIsNotFatalToDiscoveryItself(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "_ferroc.toml")
	writeStub(t, bad, "this is not valid toml [[[")

	report := diag.NewReport("discover-bad")
	reg := stubs.Discover(report, dir)

	if !report.HasErrors() {
		t.Fatal("expected an E_STUB_LOAD diagnostic for malformed TOML")
	}
	found := false
	for _, d := range report.Diagnostics() {
		if d.Kind == diag.EStubLoad {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an E_STUB_LOAD diagnostic, got %+v", report.Diagnostics())
	}
	if len(reg.Packages()) != 0 {
		t.Error("expected no packages to load from a malformed stub file")
	}
}

func TestMerge_EarlierRegistryWinsOnConflict(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, filepath.Join(dir, "_ferroc.toml"), `
[package]
name = "override-time"
crate = "custom_time"
version = "1.0"
src_module = "time"

[[mappings.functions]]
src = "time.sleep"
template = "custom_time::sleep({args})"
`)

	report := diag.NewReport("merge")
	discovered := stubs.Discover(report, dir)
	merged := stubs.Merge(stubs.Builtin(), discovered)

	mapping, ok := merged.LookupFunction("time.sleep")
	if !ok {
		t.Fatal("expected time.sleep to resolve from the merged registry")
	}
	if mapping.Template != "std::thread::sleep(std::time::Duration::from_secs_f64({args}))" {
		t.Errorf("expected the builtin registry (merged first) to win, got template %q", mapping.Template)
	}
}

func writeStub(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing stub file: %v", err)
	}
}
