package typing

import "strings"

// Named is a user- or stub-defined nominal type. Path is a qualified
// identifier resolved through the stub registry or the local symbol table;
// Generics holds any type arguments.
type Named struct {
	Path     string
	Generics []DataType
}

func (n Named) equals(other DataType) bool {
	on, ok := other.(Named)
	if !ok || n.Path != on.Path || len(n.Generics) != len(on.Generics) {
		return false
	}
	for i := range n.Generics {
		if !Equals(n.Generics[i], on.Generics[i]) {
			return false
		}
	}
	return true
}

func (n Named) Repr() string {
	if len(n.Generics) == 0 {
		return n.Path
	}
	parts := make([]string, len(n.Generics))
	for i, g := range n.Generics {
		parts[i] = g.Repr()
	}
	return n.Path + "[" + strings.Join(parts, ", ") + "]"
}

// Function is a callable's signature.
type Function struct {
	Params  []DataType
	Return  DataType
	IsAsync bool
}

func (f Function) equals(other DataType) bool {
	of, ok := other.(Function)
	if !ok || f.IsAsync != of.IsAsync || len(f.Params) != len(of.Params) {
		return false
	}
	for i := range f.Params {
		if !Equals(f.Params[i], of.Params[i]) {
			return false
		}
	}
	return Equals(f.Return, of.Return)
}

func (f Function) Repr() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Repr()
	}
	prefix := "fn"
	if f.IsAsync {
		prefix = "async fn"
	}
	return prefix + "(" + strings.Join(parts, ", ") + ") -> " + f.Return.Repr()
}

// Shared is reference-counted shared ownership of Inner (DST Rc<Inner>).
// Clones of a Shared value are reference-count increments, never deep
// copies (spec.md §9).
type Shared struct {
	Inner DataType
}

func (s Shared) equals(other DataType) bool {
	os, ok := other.(Shared)
	return ok && Equals(s.Inner, os.Inner)
}

func (s Shared) Repr() string {
	return "Shared[" + s.Inner.Repr() + "]"
}

// Guarded is mutually-exclusive, async-aware mutable access to Inner (DST
// `tokio::sync::Mutex<Inner>` when composed beneath a Shared).
type Guarded struct {
	Inner DataType
}

func (g Guarded) equals(other DataType) bool {
	og, ok := other.(Guarded)
	return ok && Equals(g.Inner, og.Inner)
}

func (g Guarded) Repr() string {
	return "Guarded[" + g.Inner.Repr() + "]"
}

// Unknown is a placeholder that must not survive semantic analysis
// (spec.md §3 invariant). Label carries context for diagnostics.
type Unknown struct {
	Label string
}

func (u Unknown) equals(other DataType) bool {
	_, ok := other.(Unknown)
	return ok
}

func (u Unknown) Repr() string {
	if u.Label == "" {
		return "Unknown"
	}
	return "Unknown(" + u.Label + ")"
}

// IsUnknown reports whether a type is the Unknown placeholder, recursively
// through container types so e.g. Sequence[Unknown] is also flagged.
func IsUnknown(dt DataType) bool {
	switch t := dt.(type) {
	case Unknown:
		return true
	case Sequence:
		return IsUnknown(t.Elem)
	case Mapping:
		return IsUnknown(t.Key) || IsUnknown(t.Value)
	case UnorderedSet:
		return IsUnknown(t.Elem)
	case Tuple:
		for _, e := range t.Elems {
			if IsUnknown(e) {
				return true
			}
		}
		return false
	case Optional:
		return IsUnknown(t.Inner)
	case Fallible:
		return IsUnknown(t.Ok) || IsUnknown(t.Err)
	case Shared:
		return IsUnknown(t.Inner)
	case Guarded:
		return IsUnknown(t.Inner)
	case Named:
		for _, g := range t.Generics {
			if IsUnknown(g) {
				return true
			}
		}
		return false
	case Function:
		for _, p := range t.Params {
			if IsUnknown(p) {
				return true
			}
		}
		return IsUnknown(t.Return)
	default:
		return false
	}
}
