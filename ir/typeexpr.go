package ir

import "ferroc/diag"

// TypeExpr is the syntactic form of a type annotation as written in SRC,
// e.g. `int`, `list[str]`, `Result[int, str]`, `MyClass | None`. The
// analyzer resolves a TypeExpr into a typing.DataType; TypeExpr itself
// carries no resolved type information.
type TypeExpr interface {
	Pos() *diag.Span
	typeExprNode()
}

type typeExprBase struct {
	Span *diag.Span
}

func (t *typeExprBase) Pos() *diag.Span { return t.Span }
func (t *typeExprBase) typeExprNode()   {}

// TypeName is a bare or qualified type name, with optional bracketed
// generic arguments, e.g. `dict`, `list[int]`, `Result[int, str]`.
type TypeName struct {
	typeExprBase
	Name     string
	Generics []TypeExpr
}

// TypeOptional is `T | None` / `Optional[T]`.
type TypeOptional struct {
	typeExprBase
	Inner TypeExpr
}
