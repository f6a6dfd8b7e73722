// Package cli wires the Parser, IR Builder, Stub Registry, Semantic
// Analyzer, Emitter, and Project Assembler into the three external
// commands spec.md §6 names, grounded on the teacher's cmd.Execute
// (olive CLI construction, subcommand dispatch, exit-code handling).
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ferroc/analyze"
	"ferroc/common"
	"ferroc/diag"
	"ferroc/emit"
	"ferroc/ir"
	"ferroc/stubs"
	"ferroc/syntax"
)

// discoverSources finds every SRC file under input: input itself if it is
// a file, or every common.SrcFileExtension file in its tree if it is a
// directory.
func discoverSources(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	var files []string
	err = filepath.WalkDir(input, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == common.SrcFileExtension {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// buildModules parses and lowers every source file into TIR, reporting
// E_PARSE diagnostics for any file that fails to parse. Parsing continues
// across files so a run surfaces every syntax error at once.
func buildModules(files []string, report *diag.Report) []*ir.Module {
	var modules []*ir.Module
	for _, path := range files {
		f, ok := syntax.ParseFile(path, report)
		if !ok {
			continue
		}
		modules = append(modules, ir.BuildModule(path, f, report))
	}
	return modules
}

// newRegistry builds the single merged stub registry shared by both the
// analyzer and the emitter, per assemble's testable-property-3/4
// requirement that a call resolve identically in both passes.
func newRegistry(report *diag.Report, stubDirs ...string) *stubs.Registry {
	return stubs.Merge(stubs.Builtin(), stubs.Discover(report, stubDirs...))
}

// analyzedModule pairs a built module with the annotations the analyzer
// attached to it, threaded into emission.
type analyzedModule struct {
	module *ir.Module
	notes  *analyze.Annotations
}

// analyzeModules runs the semantic analyzer over every module, in order.
// Emission must not run if report.HasErrors() afterward (spec.md §7: "Emission
// does not run if any fatal diagnostic was raised").
func analyzeModules(modules []*ir.Module, reg *stubs.Registry, report *diag.Report) []analyzedModule {
	out := make([]analyzedModule, 0, len(modules))
	for _, m := range modules {
		notes := analyze.New(m, reg, report).Run()
		out = append(out, analyzedModule{module: m, notes: notes})
	}
	return out
}

// emitModules runs the emitter over every analyzed module.
func emitModules(analyzed []analyzedModule, reg *stubs.Registry) []*emit.File {
	files := make([]*emit.File, 0, len(analyzed))
	for _, am := range analyzed {
		files = append(files, emit.New(am.module, am.notes, reg).Emit())
	}
	return files
}

// entryModulePath returns the path of the module that defines `main`, the
// assembler's signal for which emitted file becomes main.rs.
func entryModulePath(modules []*ir.Module) string {
	for _, m := range modules {
		if m.Entry {
			return m.Path
		}
	}
	return ""
}

// inferProjectName derives a default project name from the input path when
// the caller did not supply one with -n.
func inferProjectName(input string) string {
	base := filepath.Base(filepath.Clean(input))
	base = strings.TrimSuffix(base, common.SrcFileExtension)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "ferroc_project"
	}
	return base
}

// dumpTIR renders a short textual summary of each module's top-level
// definitions, for the `parse` command's TIR dump (spec.md §6).
func dumpTIR(modules []*ir.Module) string {
	var b strings.Builder
	for _, m := range modules {
		fmt.Fprintf(&b, "module %s (entry=%v)\n", m.Path, m.Entry)
		for _, imp := range m.Imports {
			fmt.Fprintf(&b, "  import %s\n", imp.ModulePath)
		}
		for _, d := range m.Defs {
			dumpDef(&b, d)
		}
	}
	return b.String()
}

func dumpDef(b *strings.Builder, d ir.Def) {
	switch def := d.(type) {
	case *ir.DefFunc:
		fmt.Fprintf(b, "  func %s(%d params) async=%v\n", def.Name, len(def.Params), def.IsAsync)
	case *ir.DefClass:
		fmt.Fprintf(b, "  class %s (%d fields, %d methods)\n", def.Name, len(def.Fields), len(def.Methods))
	case *ir.DefConst:
		fmt.Fprintf(b, "  const %s\n", def.Name)
	}
}
