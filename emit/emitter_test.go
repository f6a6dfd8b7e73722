package emit_test

import (
	"strings"
	"testing"

	"ferroc/internal/testpipe"
)

// S1 from spec.md §8.
func TestEmit_Greet(t *testing.T) {
	src := "def greet(name: str) -> str:\n" +
		"    return f\"Hello, {name}!\"\n" +
		"\n" +
		"def main() -> None:\n" +
		"    message: str = greet(\"World\")\n" +
		"    print(message)\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}
	src2 := res.File.Source

	mustContain(t, src2, `pub fn greet(name: String) -> String {`)
	mustContain(t, src2, `format!("Hello, {}!", name)`)
	mustContain(t, src2, `greet("World".to_string())`)
	mustContain(t, src2, `let message: String =`)
	mustContain(t, src2, `println!("{}", message)`)
}

// S2 from spec.md §8.
func TestEmit_MutableCounter(t *testing.T) {
	src := "def increment() -> int:\n" +
		"    x: int = 0\n" +
		"    x = x + 1\n" +
		"    x = x + 1\n" +
		"    return x\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}
	src2 := res.File.Source

	mustContain(t, src2, "let mut x: i64 = 0;")
	mustContain(t, src2, "return x;")
}

// S3 from spec.md §8.
func TestEmit_AsyncEntry(t *testing.T) {
	src := "async def greet(name: str) -> str:\n" +
		"    return f\"Hello, {name}!\"\n" +
		"\n" +
		"async def main() -> None:\n" +
		"    message: str = await greet(\"World\")\n" +
		"    print(message)\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}
	src2 := res.File.Source

	mustContain(t, src2, "#[tokio::main]")
	mustContain(t, src2, "async fn main")
	mustContain(t, src2, `greet("World".to_string()).await`)
}

// S4 from spec.md §8.
func TestEmit_ErrorPropagation(t *testing.T) {
	src := "def might_fail() -> Result[int, str]:\n" +
		"    return Ok(42)\n" +
		"\n" +
		"def caller() -> Result[int, str]:\n" +
		"    value: int = might_fail()\n" +
		"    return Ok(value + 1)\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}
	src2 := res.File.Source

	mustContain(t, src2, "let value: i64 = might_fail()?;")
	mustContain(t, src2, "-> Result<i64, String>")
}

// S5 from spec.md §8.
func TestEmit_IndexCast(t *testing.T) {
	src := "def sum_all(values: list[int]) -> int:\n" +
		"    total: int = 0\n" +
		"    i: int = 0\n" +
		"    while i < len(values):\n" +
		"        print(values[i])\n" +
		"        i = i + 1\n" +
		"    return total\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}
	src2 := res.File.Source

	mustContain(t, src2, "values[(i as usize)]")
}

// Property 2 from spec.md §8: emitting the same annotated TIR twice
// produces byte-identical output.
func TestEmit_IdempotentEmission(t *testing.T) {
	src := "def greet(name: str) -> str:\n" +
		"    return f\"Hello, {name}!\"\n"

	first := testpipe.Run(t, src)
	if first.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", first.Report.Diagnostics())
	}
	second := testpipe.Run(t, src)
	if second.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", second.Report.Diagnostics())
	}
	if first.File.Source != second.File.Source {
		t.Errorf("expected identical output across runs, got:\n---first---\n%s\n---second---\n%s", first.File.Source, second.File.Source)
	}
}

// S6 from spec.md §8: a stub closure over a two-element destructuring.
func TestEmit_ChannelDestructure(t *testing.T) {
	src := "def main() -> None:\n" +
		"    tx, rx = mpsc_channel(10)\n" +
		"    print(tx)\n" +
		"    print(rx)\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}
	src2 := res.File.Source

	mustContain(t, src2, "let (tx, mut rx) = tokio::sync::mpsc::channel(10);")

	if _, ok := res.File.Imports["tokio::sync::mpsc::{self, Sender, Receiver}"]; !ok {
		t.Errorf("expected the channel stub's import in the emitted file, got %+v", res.File.Imports)
	}

	foundDep := false
	for _, d := range res.File.Deps {
		if d.Name == "tokio" {
			foundDep = true
		}
	}
	if !foundDep {
		t.Errorf("expected the channel stub's tokio dependency to be recorded, got %+v", res.File.Deps)
	}
}

// Property 7 from spec.md §8: membership and find-sentinel rewrites.
func TestEmit_MembershipRewrite(t *testing.T) {
	src := "def has_value(values: list[int], target: int) -> bool:\n" +
		"    return target in values\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}
	mustContain(t, res.File.Source, "values.contains(&target)")
}

func mustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
