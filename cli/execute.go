package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/ComedicChimera/olive"

	"ferroc/assemble"
	"ferroc/diag"
)

// Execute runs the ferroc CLI: argument parsing, subcommand dispatch, and
// exit-code reporting, grounded on the teacher's cmd.Execute.
func Execute() {
	app := olive.NewCLI("ferroc", "ferroc transpiles a typed SRC subset into idiomatic DST", true)

	transpileCmd := app.AddSubcommand("transpile", "transpile an input file or directory into a DST project", true)
	transpileCmd.AddPrimaryArg("input", "the SRC file or directory to transpile", true)
	transpileCmd.AddStringArg("output", "o", "the output project directory", true)
	transpileCmd.AddStringArg("name", "n", "the DST project name", false)
	transpileCmd.AddFlag("verbose", "v", "enable diag.Trace output (no pipeline stage writes trace lines)")

	parseCmd := app.AddSubcommand("parse", "parse an input and print a TIR dump", true)
	parseCmd.AddPrimaryArg("input", "the SRC file or directory to parse", true)
	parseCmd.AddFlag("verbose", "v", "enable diag.Trace output (no pipeline stage writes trace lines)")

	testCmd := app.AddSubcommand("test", "transpile then invoke the DST build tool", true)
	testCmd.AddPrimaryArg("input", "the SRC file or directory to test", true)
	testCmd.AddFlag("run", "r", "execute the produced binary after a successful build")

	result, err := olive.ParseArgs(app, os.Args)
	if err != nil {
		diag.ConfigError("CLI Usage Error", err)
		os.Exit(2)
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "transpile":
		os.Exit(execTranspile(subResult))
	case "parse":
		os.Exit(execParse(subResult))
	case "test":
		os.Exit(execTest(subResult))
	default:
		diag.ConfigError("CLI Usage Error", fmt.Errorf("no subcommand given"))
		os.Exit(2)
	}
}

func execTranspile(result *olive.ArgParseResult) int {
	input, ok := result.PrimaryArg()
	if !ok {
		diag.ConfigError("CLI Usage Error", fmt.Errorf("missing input path"))
		return 2
	}
	output, _ := result.Arguments["output"].(string)
	projectName, hasName := result.Arguments["name"].(string)
	if !hasName || projectName == "" {
		projectName = inferProjectName(input)
	}
	diag.SetVerbose(result.HasFlag("verbose"))

	report := diag.NewReport(projectName)

	diag.BeginPhase("parse")
	files, err := discoverSources(input)
	if err != nil {
		diag.EndPhase(false)
		diag.ConfigError("Input Error", err)
		return 2
	}
	modules := buildModules(files, report)
	diag.EndPhase(!report.HasErrors())
	if report.HasErrors() {
		diag.PrintReport(report)
		return 1
	}

	diag.BeginPhase("analyze")
	reg := newRegistry(report)
	analyzed := analyzeModules(modules, reg, report)
	diag.EndPhase(!report.HasErrors())
	if report.HasErrors() {
		diag.PrintReport(report)
		return 1
	}

	diag.BeginPhase("emit")
	emitted := emitModules(analyzed, reg)
	diag.EndPhase(true)

	diag.BeginPhase("assemble")
	asm := assemble.New(output, projectName)
	asmErr := asm.Assemble(emitted, entryModulePath(modules))
	diag.EndPhase(asmErr == nil)
	if asmErr != nil {
		diag.ConfigError("Assembly Error", asmErr)
		return 1
	}

	diag.PrintSummary(report)
	return 0
}

func execParse(result *olive.ArgParseResult) int {
	input, ok := result.PrimaryArg()
	if !ok {
		diag.ConfigError("CLI Usage Error", fmt.Errorf("missing input path"))
		return 2
	}
	diag.SetVerbose(result.HasFlag("verbose"))

	report := diag.NewReport("parse")
	files, err := discoverSources(input)
	if err != nil {
		diag.ConfigError("Input Error", err)
		return 2
	}
	modules := buildModules(files, report)
	if report.HasErrors() {
		diag.PrintReport(report)
		return 1
	}

	fmt.Print(dumpTIR(modules))
	return 0
}

func execTest(result *olive.ArgParseResult) int {
	input, ok := result.PrimaryArg()
	if !ok {
		diag.ConfigError("CLI Usage Error", fmt.Errorf("missing input path"))
		return 2
	}

	outDir, err := os.MkdirTemp("", "ferroc-test-*")
	if err != nil {
		diag.ConfigError("Test Error", err)
		return 1
	}

	report := diag.NewReport("test")
	files, err := discoverSources(input)
	if err != nil {
		diag.ConfigError("Input Error", err)
		return 2
	}
	modules := buildModules(files, report)
	if report.HasErrors() {
		diag.PrintReport(report)
		return 1
	}
	reg := newRegistry(report)
	analyzed := analyzeModules(modules, reg, report)
	if report.HasErrors() {
		diag.PrintReport(report)
		return 1
	}
	emitted := emitModules(analyzed, reg)

	asm := assemble.New(outDir, inferProjectName(input))
	if err := asm.Assemble(emitted, entryModulePath(modules)); err != nil {
		diag.ConfigError("Assembly Error", err)
		return 1
	}

	build := exec.Command("cargo", "build")
	build.Dir = outDir
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		diag.ConfigError("Build Error", err)
		return 1
	}

	if result.HasFlag("run") {
		run := exec.Command("cargo", "run", "--quiet")
		run.Dir = outDir
		run.Stdout = os.Stdout
		run.Stderr = os.Stderr
		run.Stdin = os.Stdin
		if err := run.Run(); err != nil {
			diag.ConfigError("Run Error", err)
			return 1
		}
	}

	return 0
}
