// Package typing implements the TIR type universe described in spec.md §3:
// a closed set of type constructors carrying exactly the attributes the
// analyzer and emitter need to lower SRC types into DST types.
package typing

// DataType is the interface implemented by every member of the type
// universe.
type DataType interface {
	// Repr returns a short, human-readable representation used in
	// diagnostics (not the DST rendering, which lives in package emit).
	Repr() string

	// equals returns exact/true equality with no coercion rules applied.
	// It is meant to be called only internally, through Equals.
	equals(other DataType) bool
}

// Equals computes effective equality between two data types.
func Equals(a, b DataType) bool {
	return a.equals(b)
}
