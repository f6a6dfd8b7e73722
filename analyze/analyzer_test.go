package analyze_test

import (
	"testing"

	"ferroc/internal/testpipe"
	"ferroc/ir"
)

// S2 from spec.md §8: a local reassigned after its declaration is marked
// mutable, and the returned value resolves to the same symbol.
func TestAnalyzer_MutabilityNecessity(t *testing.T) {
	src := "def increment() -> int:\n" +
		"    x: int = 0\n" +
		"    x = x + 1\n" +
		"    x = x + 1\n" +
		"    return x\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}

	fn := res.Module.Defs[0].(*ir.DefFunc)
	decl := fn.Body[0].(*ir.StmtVarDecl)
	if !decl.Sym.IsMutable() {
		t.Error("expected x to be inferred mutable after reassignment")
	}
}

// S6 from spec.md §8: a two-element destructuring of a channel constructor
// implicitly declares both names and marks the receiver-half mutable.
func TestAnalyzer_ChannelDestructureDeclaresAndMarksReceiverMutable(t *testing.T) {
	src := "def main() -> None:\n" +
		"    tx, rx = mpsc_channel(10)\n" +
		"    print(tx)\n" +
		"    print(rx)\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}

	fn := res.Module.Defs[0].(*ir.DefFunc)
	assign := fn.Body[0].(*ir.StmtAssign)
	if len(assign.Declares) != 2 || !assign.Declares[0] || !assign.Declares[1] {
		t.Fatalf("expected both tx and rx to be freshly declared, got %+v", assign.Declares)
	}

	tx := assign.Targets[0].(*ir.ExprIdent)
	rx := assign.Targets[1].(*ir.ExprIdent)
	if tx.Sym == nil || tx.Sym.IsMutable() {
		t.Error("expected tx to remain immutable")
	}
	if rx.Sym == nil || !rx.Sym.IsMutable() {
		t.Error("expected rx to be marked mutable by the channel-destructure rule")
	}
}

func TestAnalyzer_ImmutableLocalNeverReassigned(t *testing.T) {
	src := "def greet(name: str) -> str:\n" +
		"    greeting: str = f\"Hello, {name}!\"\n" +
		"    return greeting\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}

	fn := res.Module.Defs[0].(*ir.DefFunc)
	decl := fn.Body[0].(*ir.StmtVarDecl)
	if decl.Sym.IsMutable() {
		t.Error("expected greeting to remain immutable")
	}
}

// Property 1 from spec.md §8: no node in a well-formed, fully-analyzed
// module is left with type Unknown.
func TestAnalyzer_AnnotationCompleteness(t *testing.T) {
	src := "def add(a: int, b: int) -> int:\n" +
		"    total: int = a + b\n" +
		"    return total\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}

	fn := res.Module.Defs[0].(*ir.DefFunc)
	decl := fn.Body[0].(*ir.StmtVarDecl)
	if got := res.Notes.TypeOf(decl.Value); got.Repr() != "int" {
		t.Errorf("expected the initializer to resolve to int, got %s", got.Repr())
	}
}

func TestAnalyzer_MissingReturnAnnotationIsFatal(t *testing.T) {
	// The parser accepts an absent `-> T`; the IR builder raises
	// E_MISSING_ANNOTATION for it (spec.md §4.4).
	src := "def greet(name: str):\n" +
		"    return name\n"

	res := testpipe.Run(t, src)
	if !res.Report.HasErrors() {
		t.Fatal("expected a missing-annotation diagnostic")
	}
}

// S4 from spec.md §8: a call to a Fallible-returning function whose caller
// also returns a compatible Fallible is tagged as a propagation site.
func TestAnalyzer_FallibleErrorPropagation(t *testing.T) {
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

	caller := res.Module.Defs[1].(*ir.DefFunc)
	decl := caller.Body[0].(*ir.StmtVarDecl)
	call, ok := decl.Value.(*ir.ExprCall)
	if !ok {
		t.Fatalf("expected the initializer to be a call, got %T", decl.Value)
	}
	if !res.Notes.Propagation[call] {
		t.Error("expected the might_fail() call to be tagged as a propagation site")
	}
}

// S3 from spec.md §8: an async call outside an async function is fatal.
func TestAnalyzer_AwaitOutsideAsyncIsFatal(t *testing.T) {
	src := "async def fetch(url: str) -> str:\n" +
		"    return url\n" +
		"\n" +
		"def main() -> None:\n" +
		"    result: str = fetch(\"http://example.com\")\n"

	res := testpipe.Run(t, src)
	if !res.Report.HasErrors() {
		t.Fatal("expected an E_AWAIT_OUTSIDE_ASYNC diagnostic")
	}
}

// Property 8 from spec.md §8: an integer-typed subscript of a sequence is
// tagged for the platform-unsigned-width cast.
func TestAnalyzer_IndexCast(t *testing.T) {
	src := "def sum_all(values: list[int]) -> int:\n" +
		"    total: int = 0\n" +
		"    i: int = 0\n" +
		"    while i < len(values):\n" +
		"        total = total + values[i]\n" +
		"        i = i + 1\n" +
		"    return total\n"

	res := testpipe.Run(t, src)
	if res.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Report.Diagnostics())
	}

	fn := res.Module.Defs[0].(*ir.DefFunc)
	whileStmt := fn.Body[2].(*ir.StmtWhile)
	assign := whileStmt.Body[0].(*ir.StmtAssign)
	binary := assign.Value.(*ir.ExprBinary)
	subscript, ok := binary.Right.(*ir.ExprSubscript)
	if !ok {
		t.Fatalf("expected the right operand to be a subscript, got %T", binary.Right)
	}
	if !res.Notes.IndexCast[subscript.Index] {
		t.Error("expected the integer index expression to be tagged for an index cast")
	}
}
