// Package stubs implements the Stub Registry: external descriptors of how
// a third-party DST package maps onto SRC standard-library and third-party
// calls, consulted by both the analyzer (to resolve a call's result type)
// and the emitter (to expand its DST source text). Grounded on the
// original `_spicycrab.toml` self-describing stub-package format (see
// original_source/src/spicycrab/codegen/stub_discovery.py) and decoded the
// way the teacher decodes its own module manifest, with go-toml.
package stubs

// tomlFile is the raw decoded shape of a single _ferroc.toml file, from
// which loadStubFile builds a Package.
type tomlFile struct {
	Package  tomlPackage  `toml:"package"`
	Mappings tomlMappings `toml:"mappings"`
	Cargo    tomlCargo    `toml:"cargo"`
}

type tomlPackage struct {
	Name       string `toml:"name"`
	Crate      string `toml:"crate"`
	Version    string `toml:"version"`
	SrcModule  string `toml:"src_module"`
}

type tomlMappings struct {
	Functions []tomlFuncMapping `toml:"functions"`
	Methods   []tomlFuncMapping `toml:"methods"`
	Types     []tomlTypeMapping `toml:"types"`
}

type tomlFuncMapping struct {
	Src         string   `toml:"src"`
	Template    string   `toml:"template"`
	Imports     []string `toml:"imports"`
	NeedsResult bool     `toml:"needs_result"`
	Returns     string   `toml:"returns"`
}

type tomlTypeMapping struct {
	Src  string `toml:"src"`
	Dst  string `toml:"dst"`
}

type tomlCargo struct {
	Dependencies map[string]tomlDependencySpec `toml:"dependencies"`
}

// tomlDependencySpec accepts either a bare version string (`"1.0"`) or a
// table with version/features, mirroring Cargo.toml's own dependency
// shorthand; loadStubFile turns a bare string into a one-field table
// before go-toml decodes it into this struct.
type tomlDependencySpec struct {
	Version  string   `toml:"version"`
	Features []string `toml:"features"`
}

// FuncMapping is a resolved function- or method-call rewrite rule.
type FuncMapping struct {
	SrcName     string // fully qualified SRC name, e.g. "requests.get"
	Template    string // DST expression template, e.g. "{0}.send()?"
	Imports     []string
	NeedsResult bool
	Returns     string // DST type path of the call's result, if fixed
}

// TypeMapping is a resolved SRC-type-to-DST-type rewrite rule.
type TypeMapping struct {
	SrcName string
	DstName string
}

// Dependency is one resolved Cargo.toml dependency requirement.
type Dependency struct {
	Name     string
	Version  string
	Features []string
}

// Package is one discovered stub package.
type Package struct {
	Name      string
	Crate     string
	Version   string
	SrcModule string

	Functions map[string]FuncMapping
	Methods   map[string]FuncMapping
	Types     map[string]TypeMapping

	Dependencies []Dependency
}
