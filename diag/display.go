package diag

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnColorFG  = pterm.FgYellow
	infoColorFG  = pterm.FgLightGreen
)

// PrintDiagnostic renders a single diagnostic to the console in the
// `path:line:col: KIND: message` form required by spec.md §7 (just
// `KIND: message` when no span is known), with the kind highlighted and,
// when a span is known, followed by a source code frame with caret
// underlines, in the style of the teacher's CompileMessage display.
func PrintDiagnostic(d Diagnostic) {
	fmt.Println()
	if d.Span != nil {
		errorColorFG.Printf("%s:%d:%d", d.Span.File, d.Span.StartLn, d.Span.StartCol)
		fmt.Print(": ")
	}
	errorStyleBG.Print(d.Kind.String())
	fmt.Println(": " + d.Message)
	if d.Span != nil {
		displayCodeFrame(d.Span)
	}

	for _, note := range d.Notes {
		pterm.FgGray.Println("  note: " + note)
	}
}

// PrintReport renders every diagnostic in a report, in order.
func PrintReport(r *Report) {
	for _, d := range r.Diagnostics() {
		PrintDiagnostic(d)
	}
}

// displayCodeFrame prints the offending source lines with caret underlines,
// grounded on logging/display.go's displayCodeSelection.
func displayCodeFrame(span *Span) {
	f, err := os.Open(span.File)
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lines := make([]string, span.EndLn-span.StartLn+1)
	for lineNo := 1; sc.Scan(); lineNo++ {
		if lineNo >= span.StartLn && lineNo <= span.EndLn {
			lines[lineNo-span.StartLn] = sc.Text()
		}
	}

	maxWidth := len(strconv.Itoa(span.EndLn)) + 1
	lineFmt := "%-" + strconv.Itoa(maxWidth) + "v"

	for i, line := range lines {
		infoColorFG.Print(fmt.Sprintf(lineFmt, i+span.StartLn))
		fmt.Print("|  ")
		fmt.Println(line)

		fmt.Print(strings.Repeat(" ", maxWidth), "|  ")
		if i == 0 && i == len(lines)-1 {
			fmt.Print(strings.Repeat(" ", span.StartCol))
			errorColorFG.Println(strings.Repeat("^", atLeastOne(span.EndCol-span.StartCol)))
		} else if i == 0 {
			fmt.Print(strings.Repeat(" ", span.StartCol))
			errorColorFG.Println(strings.Repeat("^", atLeastOne(len(line)-span.StartCol)))
		} else if i == len(lines)-1 {
			errorColorFG.Println(strings.Repeat("^", atLeastOne(span.EndCol)))
		} else {
			errorColorFG.Println(strings.Repeat("^", atLeastOne(len(line))))
		}
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// PrintSummary prints a final pass/fail banner the way the teacher's
// displayCompilationFinished does.
func PrintSummary(r *Report) {
	fmt.Print("\n")
	if r.ShouldEmit() {
		infoColorFG.Print("All done! ")
	} else {
		errorColorFG.Print("Failed. ")
	}

	n := len(r.Diagnostics())
	switch n {
	case 0:
		infoColorFG.Println("(0 diagnostics)")
	case 1:
		warnColorFG.Println("(1 diagnostic)")
	default:
		warnColorFG.Printf("(%d diagnostics)\n", n)
	}
}

// phaseSpinner tracks the currently displayed compile-phase spinner.
var (
	phaseSpinner   *pterm.SpinnerPrinter
	currentPhase   string
	phaseStartedAt time.Time
)

// BeginPhase starts a labeled progress spinner for one pipeline stage
// (parse, analyze, emit, assemble), mirroring displayBeginPhase.
func BeginPhase(name string) {
	currentPhase = name
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(infoColorFG))
	phaseSpinner.Start(name + "...")
	phaseStartedAt = time.Now()
}

// EndPhase stops the current spinner, reporting success or failure and the
// elapsed time, mirroring displayEndPhase.
func EndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}

	elapsed := fmt.Sprintf("(%.3fs)", time.Since(phaseStartedAt).Seconds())
	if success {
		phaseSpinner.Success(currentPhase + " " + elapsed)
	} else {
		phaseSpinner.Fail(currentPhase)
	}
	phaseSpinner = nil
}

// Trace writes a verbose-only decision note, supplementing the teacher's
// phase display with the kind of fine-grained tracing original_source's
// debug_log.py performs for the analyzer/emitter. It is silent unless
// verbose output has been enabled with SetVerbose.
func Trace(format string, args ...any) {
	if !verbose {
		return
	}
	pterm.FgGray.Println("  · " + fmt.Sprintf(format, args...))
}

var verbose bool

// SetVerbose toggles whether Trace emits output, controlled by the CLI's
// `-v` / `--verbose` flag.
func SetVerbose(v bool) {
	verbose = v
}

// ConfigError prints a non-compile configuration error (bad CLI args, I/O
// failure outside a single diagnostic span), mirroring PrintErrorMessage.
func ConfigError(tag string, err error) {
	errorStyleBG.Print(" " + tag + " ")
	errorColorFG.Println(" " + err.Error())
}

// PathBase is a small helper used by callers that want a short display
// name for a diagnostic span's file.
func PathBase(path string) string {
	return filepath.Base(path)
}
