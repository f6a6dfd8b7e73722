package stubs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"ferroc/common"
	"ferroc/diag"
)

// Registry aggregates every discovered stub package and answers the
// analyzer's and emitter's lookup questions. Grounded on
// stub_discovery.py's module-level cache of StubPackage objects, rebuilt
// here as an explicit value the caller constructs and threads through
// rather than a package-global cache, since Go has no import-time
// side-effecting module cache idiom to mirror.
type Registry struct {
	packages []*Package
}

// Discover loads every `_ferroc.toml` stub descriptor found by walking the
// directories named in the FERROC_STUB_PATH environment variable
// (colon-separated, like $PATH), plus any explicitly passed extraDirs.
// A directory that does not exist is silently skipped; a malformed TOML
// file inside a directory that does exist raises E_STUB_LOAD.
func Discover(report *diag.Report, extraDirs ...string) *Registry {
	reg := &Registry{}
	dirs := extraDirs
	if env := os.Getenv(common.StubPathEnvVar); env != "" {
		dirs = append(dirs, filepath.SplitList(env)...)
	}
	for _, dir := range dirs {
		reg.scanDir(dir, report)
	}
	return reg
}

func (r *Registry) scanDir(dir string, report *diag.Report) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return // absent stub directories are not an error
	}
	for _, e := range entries {
		var path string
		if e.IsDir() {
			path = filepath.Join(dir, e.Name(), common.StubFileName)
			if _, err := os.Stat(path); err != nil {
				continue
			}
		} else if e.Name() == common.StubFileName {
			path = filepath.Join(dir, e.Name())
		} else {
			continue
		}
		pkg, err := loadStubFile(path)
		if err != nil {
			report.Add(diag.Diagnostic{Kind: diag.EStubLoad, Message: fmt.Sprintf("loading %s: %s", path, err)})
			continue
		}
		r.packages = append(r.packages, pkg)
	}
}

func loadStubFile(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	// A bare version string (`name = "1.0"`) is rewritten into a
	// `{version = "1.0"}` table so it decodes into tomlDependencySpec.
	if deps, ok := tree.Get("cargo.dependencies").(*toml.Tree); ok {
		for _, name := range deps.Keys() {
			if v, ok := deps.GetPath([]string{name}).(string); ok {
				sub, err := toml.TreeFromMap(map[string]interface{}{"version": v})
				if err != nil {
					return nil, err
				}
				deps.SetPath([]string{name}, sub)
			}
		}
	}
	var tf tomlFile
	if err := tree.Unmarshal(&tf); err != nil {
		return nil, err
	}
	if tf.Package.Name == "" || tf.Package.Crate == "" {
		return nil, fmt.Errorf("%s: package.name and package.crate are required", path)
	}
	pkg := &Package{
		Name:      tf.Package.Name,
		Crate:     tf.Package.Crate,
		Version:   tf.Package.Version,
		SrcModule: tf.Package.SrcModule,
		Functions: map[string]FuncMapping{},
		Methods:   map[string]FuncMapping{},
		Types:     map[string]TypeMapping{},
	}
	for _, f := range tf.Mappings.Functions {
		pkg.Functions[f.Src] = FuncMapping{
			SrcName: f.Src, Template: f.Template, Imports: f.Imports,
			NeedsResult: f.NeedsResult, Returns: f.Returns,
		}
	}
	for _, m := range tf.Mappings.Methods {
		pkg.Methods[m.Src] = FuncMapping{
			SrcName: m.Src, Template: m.Template, Imports: m.Imports,
			NeedsResult: m.NeedsResult, Returns: m.Returns,
		}
	}
	for _, t := range tf.Mappings.Types {
		pkg.Types[t.Src] = TypeMapping{SrcName: t.Src, DstName: t.Dst}
	}
	for name, spec := range tf.Cargo.Dependencies {
		pkg.Dependencies = append(pkg.Dependencies, Dependency{Name: name, Version: spec.Version, Features: spec.Features})
	}
	return pkg, nil
}

// LookupFunction finds a free-function call rewrite by its fully
// qualified SRC name, e.g. "requests.get".
func (r *Registry) LookupFunction(name string) (FuncMapping, bool) {
	for _, pkg := range r.packages {
		if m, ok := pkg.Functions[name]; ok {
			return m, true
		}
	}
	return FuncMapping{}, false
}

// LookupMethod finds a method-call rewrite keyed "TypeName.method".
func (r *Registry) LookupMethod(typeName, method string) (FuncMapping, bool) {
	key := typeName + "." + method
	for _, pkg := range r.packages {
		if m, ok := pkg.Methods[key]; ok {
			return m, true
		}
	}
	return FuncMapping{}, false
}

// LookupType finds a SRC-type-to-DST-type rewrite.
func (r *Registry) LookupType(srcName string) (TypeMapping, bool) {
	for _, pkg := range r.packages {
		if t, ok := pkg.Types[srcName]; ok {
			return t, true
		}
	}
	return TypeMapping{}, false
}

// FunctionOwner finds the stub package, if any, declaring a free-function
// rewrite for name — used by the emitter to merge that package's build
// dependencies into the manifest set the moment the rewrite is actually
// used (spec.md §8's "Manifest closure" property).
func (r *Registry) FunctionOwner(name string) (*Package, FuncMapping, bool) {
	for _, pkg := range r.packages {
		if m, ok := pkg.Functions[name]; ok {
			return pkg, m, true
		}
	}
	return nil, FuncMapping{}, false
}

// MethodOwner finds the stub package, if any, declaring a method rewrite
// keyed "TypeName.method".
func (r *Registry) MethodOwner(typeName, method string) (*Package, FuncMapping, bool) {
	key := typeName + "." + method
	for _, pkg := range r.packages {
		if m, ok := pkg.Methods[key]; ok {
			return pkg, m, true
		}
	}
	return nil, FuncMapping{}, false
}

// CollectRequirements returns the declared Cargo dependencies of every
// package whose crate is named in crateNames (of every package when none is
// named), de-duplicated by name with the first seen kept. It does not track
// which mappings emission used and returns no import paths.
func (r *Registry) CollectRequirements(crateNames ...string) []Dependency {
	want := make(map[string]bool, len(crateNames))
	for _, c := range crateNames {
		want[c] = true
	}
	var out []Dependency
	seen := map[string]bool{}
	for _, pkg := range r.packages {
		if len(want) > 0 && !want[pkg.Crate] {
			continue
		}
		for _, d := range pkg.Dependencies {
			if !seen[d.Name] {
				seen[d.Name] = true
				out = append(out, d)
			}
		}
	}
	return out
}

// Packages returns every discovered stub package, for diagnostics/tests.
func (r *Registry) Packages() []*Package { return r.packages }

// Merge combines several registries (typically stubs.Builtin() plus a
// Discover result) into one, consulted identically by both the analyzer
// and the emitter so a call resolves the same way in both passes.
// Earlier registries take priority on lookup, since Packages is scanned
// in order and the first match wins.
func Merge(regs ...*Registry) *Registry {
	merged := &Registry{}
	for _, r := range regs {
		if r == nil {
			continue
		}
		merged.packages = append(merged.packages, r.packages...)
	}
	return merged
}
