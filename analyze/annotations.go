package analyze

import (
	"ferroc/ir"
	"ferroc/typing"
)

// BorrowMode enumerates how a call argument should be passed in DST, per
// spec.md §4.4's borrow-hints rule.
type BorrowMode int

const (
	ByValue BorrowMode = iota
	BySharedBorrow
	ByExclusiveBorrow
)

// Annotations is the side table the analyzer produces, keyed by TIR node
// identity rather than stored on the nodes themselves (spec.md's Lifecycle
// section: TIR is immutable once built). Every concrete ir.Expr is a
// pointer type, so it is usable directly as a map key here.
type Annotations struct {
	// Types holds the inferred or declared type of every expression the
	// analyzer visited.
	Types map[ir.Expr]typing.DataType

	// Borrow holds the passing mode of a call argument's value expression.
	Borrow map[ir.Expr]BorrowMode

	// IndexCast marks a subscript index expression that must be widened to
	// the platform index type at emission time.
	IndexCast map[ir.Expr]bool

	// Propagation marks a call expression whose result should be lowered
	// through the error-propagation operator rather than bound directly.
	Propagation map[ir.Expr]bool

	// AsyncMain is set when the module's entry point is declared async, so
	// the emitter attaches an async-runtime attribute instead of expecting
	// a synchronous `main`.
	AsyncMain bool
}

func newAnnotations() *Annotations {
	return &Annotations{
		Types:       map[ir.Expr]typing.DataType{},
		Borrow:      map[ir.Expr]BorrowMode{},
		IndexCast:   map[ir.Expr]bool{},
		Propagation: map[ir.Expr]bool{},
	}
}

// TypeOf returns the recorded type of e, or Unknown if the analyzer never
// resolved one (e.g. because an earlier diagnostic aborted the pass).
func (a *Annotations) TypeOf(e ir.Expr) typing.DataType {
	if t, ok := a.Types[e]; ok {
		return t
	}
	return typing.Unknown{Label: "unvisited"}
}
