package ir

import (
	"ferroc/diag"
	"ferroc/typing"
)

// DefKind enumerates the kinds of definition that can produce a Symbol.
type DefKind int

const (
	DefKindFunc DefKind = iota
	DefKindMethod
	DefKindType
	DefKindField
	DefKindLocal
	DefKindImportedExternal
	DefKindConst
)

// Mutability enumerates a local symbol's inferred mutability, set by the
// semantic analyzer once every statement in its enclosing scope has been
// walked (spec.md §4.4).
type Mutability int

const (
	MutUnknown Mutability = iota
	MutImmutable
	MutMutable
)

// Symbol represents a named entity: a module, function, method, type
// constructor, field, local binding, or imported external (spec.md §3).
type Symbol struct {
	Name    string
	Kind    DefKind
	Type    typing.DataType
	Span    *diag.Span
	Mutable Mutability

	// Public indicates whether the symbol is exported from its module.
	Public bool
}

// IsMutable reports the resolved mutability, defaulting to false (immutable)
// if the analyzer has not yet visited every use site — callers that need to
// know analysis is complete should check Mutable != MutUnknown first.
func (s *Symbol) IsMutable() bool {
	return s.Mutable == MutMutable
}

// Scope is a lexical symbol table, chained to an optional parent for
// nested blocks (if/while/for bodies, function bodies).
type Scope struct {
	Parent  *Scope
	symbols map[string]*Symbol
}

// NewScope creates a scope nested within parent (nil for the module scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, symbols: make(map[string]*Symbol)}
}

// Define adds a symbol to this scope, returning false if the name already
// exists in this exact scope (shadowing an outer scope is allowed).
func (s *Scope) Define(sym *Symbol) bool {
	if _, exists := s.symbols[sym.Name]; exists {
		return false
	}
	s.symbols[sym.Name] = sym
	return true
}

// Lookup searches this scope and its ancestors for a symbol by name.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym, ok := sc.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal searches only this scope, not its ancestors.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}
