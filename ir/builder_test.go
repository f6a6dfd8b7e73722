package ir_test

import (
	"testing"

	"ferroc/internal/testpipe"
	"ferroc/ir"
)

func TestBuildModule_EntryDetection(t *testing.T) {
	src := "def greet(name: str) -> str:\n" +
		"    return f\"Hello, {name}!\"\n" +
		"\n" +
		"def main() -> None:\n" +
		"    message: str = greet(\"World\")\n" +
		"    print(message)\n"

	module, report := testpipe.Parse(t, src)
	if report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", report.Diagnostics())
	}
	if !module.Entry {
		t.Error("expected module.Entry to be true when it defines main")
	}
	fn, ok := module.MainFunc()
	if !ok {
		t.Fatal("expected MainFunc to find main")
	}
	if fn.IsAsync {
		t.Error("expected a synchronous main")
	}
}

func TestBuildModule_NoEntryWithoutMain(t *testing.T) {
	src := "def helper(x: int) -> int:\n" +
		"    return x + 1\n"

	module, report := testpipe.Parse(t, src)
	if report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", report.Diagnostics())
	}
	if module.Entry {
		t.Error("expected module.Entry to be false without a main function")
	}
	if _, ok := module.MainFunc(); ok {
		t.Error("expected MainFunc to report not-found")
	}
}

func TestBuildModule_TagsAsyncFunctions(t *testing.T) {
	src := "async def fetch(url: str) -> str:\n" +
		"    return url\n"

	module, report := testpipe.Parse(t, src)
	if report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", report.Diagnostics())
	}
	if len(module.Defs) != 1 {
		t.Fatalf("expected exactly one def, got %d", len(module.Defs))
	}
	fn, ok := module.Defs[0].(*ir.DefFunc)
	if !ok {
		t.Fatalf("expected a DefFunc, got %T", module.Defs[0])
	}
	if !fn.IsAsync {
		t.Error("expected fetch to be tagged async")
	}
}

func TestBuildModule_DataclassSyntheticConstructorFields(t *testing.T) {
	src := "@dataclass\n" +
		"class Point:\n" +
		"    x: int\n" +
		"    y: int\n"

	module, report := testpipe.Parse(t, src)
	if report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", report.Diagnostics())
	}
	if len(module.Defs) != 1 {
		t.Fatalf("expected exactly one def, got %d", len(module.Defs))
	}
	cls, ok := module.Defs[0].(*ir.DefClass)
	if !ok {
		t.Fatalf("expected a DefClass, got %T", module.Defs[0])
	}
	if !cls.IsDataclass {
		t.Error("expected the dataclass marker to be recognized")
	}
	if len(cls.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(cls.Fields))
	}
}

func TestBuildModule_AugmentedAssignRewrite(t *testing.T) {
	// spec.md §4.2: augmented assignments rewrite to a plain assignment of
	// a binary operation, so the surface `+=` never survives into TIR.
	src := "def increment() -> int:\n" +
		"    x: int = 0\n" +
		"    x += 1\n" +
		"    return x\n"

	module, report := testpipe.Parse(t, src)
	if report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", report.Diagnostics())
	}
	fn := module.Defs[0].(*ir.DefFunc)
	var found bool
	for _, stmt := range fn.Body {
		assign, ok := stmt.(*ir.StmtAssign)
		if !ok {
			continue
		}
		if _, ok := assign.Value.(*ir.ExprBinary); ok {
			found = true
		}
	}
	if !found {
		t.Error("expected the augmented assignment to lower to a plain assignment of a binary expression")
	}
}
