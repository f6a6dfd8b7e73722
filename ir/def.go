package ir

import "ferroc/diag"

// Def is the parent interface for all top-level definitions.
type Def interface {
	Pos() *diag.Span
	DefName() string
	defNode()
}

type defBase struct {
	Span *diag.Span
	Name string
}

func (d *defBase) Pos() *diag.Span { return d.Span }
func (d *defBase) DefName() string { return d.Name }
func (d *defBase) defNode()        {}

// Attribute is a lifted pass-through attribute string (spec.md §4.1's
// `# #[...]` comment form), re-emitted verbatim above its target
// declaration.
type Attribute struct {
	Text string
}

// Param is one function/method parameter.
type Param struct {
	Name       string
	Annotation TypeExpr
	Default    Expr // non-nil for an Optional parameter with a default value
	Sym        *Symbol
}

// DefFunc is a function or method definition.
type DefFunc struct {
	defBase
	Attrs      []Attribute
	Params     []Param
	Return     TypeExpr // nil is an error: spec.md §4.4 requires return annotations
	IsAsync    bool
	IsMethod   bool
	ReceiverOf string // class name this is a method of, empty for free functions
	Mutates    bool   // method mutates `self`; filled by the analyzer
	Body       []Stmt
	Sym        *Symbol
}

// Field is one declared attribute of a class/dataclass.
type Field struct {
	Name       string
	Annotation TypeExpr
	Default    Expr // non-nil if the field has a default value
}

// DefClass is a class or dataclass-marker definition (spec.md §4.1/§4.2).
// Inheritance is rejected at IR-build time (spec.md §9): base-class lists
// never survive into a DefClass.
type DefClass struct {
	defBase
	Attrs      []Attribute
	IsDataclass bool
	Fields      []Field
	Methods     []*DefFunc
	Sym         *Symbol
}

// DefConst is a top-level `NAME[: T] = value` binding. The IR builder
// lowers every such module-level binding to a DefConst; it does not
// reject mutable or non-constant ones.
type DefConst struct {
	defBase
	Annotation TypeExpr
	Value      Expr
	Sym        *Symbol
}

// Import is one `import`/`from ... import ...` statement, resolved either
// to a local module or to a stub package at analysis time.
type Import struct {
	Span       *diag.Span
	ModulePath string
	Names      []string // empty for a bare `import module` statement
	Alias      string   // non-empty for `import module as alias`
}

// Module is a named collection of top-level items lowered from one SRC
// file (spec.md §3's Modules section). Modules are keyed by Path, the file
// path exactly as passed to BuildModule; it is not made relative to the
// input root. Entry is true for the module defining `main`.
type Module struct {
	Path    string // file path as passed to BuildModule
	Imports []Import
	Defs    []Def
	Entry   bool
}

// MainFunc returns the module's `main` function definition, if any.
func (m *Module) MainFunc() (*DefFunc, bool) {
	for _, d := range m.Defs {
		if fn, ok := d.(*DefFunc); ok && fn.Name == "main" {
			return fn, true
		}
	}
	return nil, false
}
