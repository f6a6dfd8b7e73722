package ir

import "ferroc/diag"

// Expr is the parent interface for all TIR expression nodes, grounded on
// the teacher's HIRExpr (sem/hir_expr.go). Unlike the teacher, TIR nodes do
// not carry a mutable type/category field: per spec.md's Lifecycle section,
// the analyzer attaches inferred type/mutability/borrow information in a
// side annotation table keyed by node identity (see package analyze),
// rather than mutating the node. Every concrete Expr is used as a map key
// there, so all concrete types below are pointer types.
type Expr interface {
	Pos() *diag.Span
	exprNode()
}

type exprBase struct {
	Span *diag.Span
}

func (e *exprBase) Pos() *diag.Span { return e.Span }
func (e *exprBase) exprNode()       {}

// Literal kinds for ExprLiteral.Kind.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitString
	LitNone
)

// ExprLiteral is a literal value (int, float, bool, string, or the
// distinguished none literal).
type ExprLiteral struct {
	exprBase
	Kind LiteralKind
	Text string // verbatim source text, e.g. "42", "3.14", "true"

	// IsSubscriptIndex is tagged by the IR builder (spec.md §4.2) so the
	// analyzer can later insert the index-cast the target indexing type
	// requires.
	IsSubscriptIndex bool
}

// ExprIdent is a bare identifier reference. Sym is resolved by the
// analyzer's scope walk and is nil immediately after IR construction.
type ExprIdent struct {
	exprBase
	Name string
	Sym  *Symbol
}

// ExprAttr is attribute access: Root.Attr.
type ExprAttr struct {
	exprBase
	Root Expr
	Attr string
}

// ExprSubscript is a subscript expression: Root[Index].
type ExprSubscript struct {
	exprBase
	Root  Expr
	Index Expr
}

// UnaryOp enumerates unary operators.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryInvert // bitwise ~
)

// ExprUnary is a unary operator application.
type ExprUnary struct {
	exprBase
	Op      UnaryOp
	Operand Expr
}

// BinaryOp enumerates arithmetic, bitwise, comparison, and boolean binary
// operators. Membership (`in`/`not in`) is modeled separately as
// ExprMembership since its DST lowering is a method call, not an operator.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinFloorDiv
	BinMod
	BinPow
	BinBitAnd
	BinBitOr
	BinBitXor
	BinLShift
	BinRShift
	BinLt
	BinGt
	BinLtEq
	BinGtEq
	BinEq
	BinNotEq
	BinAnd
	BinOr
)

// ExprBinary is a binary operator application.
type ExprBinary struct {
	exprBase
	Op          BinaryOp
	Left, Right Expr
}

// ExprMembership is `x in y` / `x not in y`.
type ExprMembership struct {
	exprBase
	Elem      Expr
	Container Expr
	Negated   bool
}

// ExprConditional is `a if cond else b`.
type ExprConditional struct {
	exprBase
	Cond, Then, Else Expr
}

// FStringSegment is one piece of a formatted string literal: either a
// literal text run or an interpolated expression with an optional format
// specifier (spec.md §4.1/§4.5).
type FStringSegment struct {
	Literal string // set when this segment is plain text
	Value   Expr   // set when this segment is an interpolation
	Spec    string // format spec after ':', verbatim, may be empty
}

// ExprFString is a formatted string literal.
type ExprFString struct {
	exprBase
	Segments []FStringSegment
}

// ExprTuple is a tuple display `(a, b, c)`.
type ExprTuple struct {
	exprBase
	Elems []Expr
}

// ExprSeq is a sequence (list) display `[a, b, c]`.
type ExprSeq struct {
	exprBase
	Elems []Expr
}

// MapEntry is one key/value pair of a mapping display.
type MapEntry struct {
	Key, Value Expr
}

// ExprMap is a mapping (dict) display `{k: v, ...}`.
type ExprMap struct {
	exprBase
	Entries []MapEntry
}

// ExprSet is a set display `{a, b, c}`.
type ExprSet struct {
	exprBase
	Elems []Expr
}

// Arg is one argument to a call, keyword name empty for positional args.
type Arg struct {
	Name  string
	Value Expr
}

// ExprCall is a function or method application. Callee is an ExprIdent
// for a bare function call and an ExprAttr for `Recv.Method(...)` calls.
type ExprCall struct {
	exprBase
	Callee Expr // ExprIdent for a function call, ExprAttr for a method call
	Args   []Arg
}

// ExprAwait is a prefix-await expression as parsed; the emitter lowers it
// to postfix `.await` (spec.md §4.5).
type ExprAwait struct {
	exprBase
	Value Expr
}

// Note: there is no separate "cast" expression node. The index-cast rule
// (spec.md §4.4/§4.5) is recorded purely as an analyzer annotation keyed on
// the ExprSubscript's Index node (see analyze.Annotations.IndexCast),
// exactly as spec.md's Lifecycle section requires: the analyzer attaches
// information, it does not rewrite TIR nodes in place.
