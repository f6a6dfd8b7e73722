package typing

// PrimitiveKind enumerates the primitive members of spec.md §3's type
// universe: boolean, signed 64-bit integer, 64-bit float, unit, never,
// untyped-string (a borrowed string slice), and owned-string.
type PrimitiveKind uint

const (
	PrimBool PrimitiveKind = iota
	PrimInt
	PrimFloat
	PrimUnit
	PrimNever
	PrimStringSlice // untyped-string: read-only borrow, DST `&str`
	PrimString      // owned-string: DST `String`
)

// Primitive is the primitive member of the type universe.
type Primitive struct {
	Kind PrimitiveKind
}

func (p Primitive) equals(other DataType) bool {
	if op, ok := other.(Primitive); ok {
		return p.Kind == op.Kind
	}
	return false
}

func (p Primitive) Repr() string {
	switch p.Kind {
	case PrimBool:
		return "bool"
	case PrimInt:
		return "int"
	case PrimFloat:
		return "float"
	case PrimUnit:
		return "unit"
	case PrimNever:
		return "never"
	case PrimStringSlice:
		return "str"
	case PrimString:
		return "string"
	default:
		return "<bad-primitive>"
	}
}

// IsNumeric reports whether the primitive participates in arithmetic
// promotion rules (spec.md §4.4: int+int -> int, int+float -> float).
func (p Primitive) IsNumeric() bool {
	return p.Kind == PrimInt || p.Kind == PrimFloat
}

// IsString reports whether the primitive is one of the two string kinds.
func (p Primitive) IsString() bool {
	return p.Kind == PrimString || p.Kind == PrimStringSlice
}

// Convenience constructors, used throughout the IR builder and analyzer.
var (
	Bool        = Primitive{Kind: PrimBool}
	Int         = Primitive{Kind: PrimInt}
	Float       = Primitive{Kind: PrimFloat}
	Unit        = Primitive{Kind: PrimUnit}
	Never       = Primitive{Kind: PrimNever}
	StringSlice = Primitive{Kind: PrimStringSlice}
	String      = Primitive{Kind: PrimString}
)
