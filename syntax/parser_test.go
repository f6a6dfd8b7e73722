package syntax_test

import (
	"testing"

	"ferroc/diag"
	"ferroc/internal/testpipe"
	"ferroc/syntax"
)

func TestParseFile_AcceptsSubsetGrammar(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "function with return",
			src: "def greet(name: str) -> str:\n" +
				"    return f\"Hello, {name}!\"\n",
		},
		{
			name: "class with fields and a method",
			src: "class Counter:\n" +
				"    value: int\n" +
				"    def increment(self) -> None:\n" +
				"        self.value = self.value + 1\n",
		},
		{
			name: "while loop with index cast site",
			src: "def sum_all(values: list[int]) -> int:\n" +
				"    total: int = 0\n" +
				"    i: int = 0\n" +
				"    while i < len(values):\n" +
				"        total = total + values[i]\n" +
				"        i = i + 1\n" +
				"    return total\n",
		},
		{
			name: "if/elif/else",
			src: "def classify(x: int) -> str:\n" +
				"    if x < 0:\n" +
				"        return \"negative\"\n" +
				"    elif x == 0:\n" +
				"        return \"zero\"\n" +
				"    else:\n" +
				"        return \"positive\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module, report := testpipe.Parse(t, tt.src)
			if report.HasErrors() {
				t.Fatalf("unexpected diagnostics: %+v", report.Diagnostics())
			}
			if module == nil {
				t.Fatal("expected a built module, got nil")
			}
			if len(module.Defs) == 0 {
				t.Error("expected at least one top-level definition")
			}
		})
	}
}

func TestParseFile_RejectsOutOfSubsetConstructs(t *testing.T) {
	// A list comprehension is explicitly out-of-subset (spec.md §4.1).
	src := "def doubled(values: list[int]) -> list[int]:\n" +
		"    return [v * 2 for v in values]\n"

	_, report := testpipe.Parse(t, src)
	if !report.HasErrors() {
		t.Fatal("expected a parse diagnostic for a comprehension, got none")
	}
	found := false
	for _, d := range report.Diagnostics() {
		if d.Kind == diag.EParse {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an E_PARSE diagnostic, got %+v", report.Diagnostics())
	}
}

func TestParseFile_MissingFileIsIOError(t *testing.T) {
	report := diag.NewReport("missing")
	_, ok := syntax.ParseFile("/no/such/file.py", report)
	if ok {
		t.Fatal("expected parsing a nonexistent file to fail")
	}
	if !report.HasErrors() {
		t.Fatal("expected an E_IO diagnostic")
	}
}
