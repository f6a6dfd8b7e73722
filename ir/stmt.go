package ir

import "ferroc/diag"

// Stmt is the parent interface for all TIR statement nodes.
type Stmt interface {
	Pos() *diag.Span
	stmtNode()
}

type stmtBase struct {
	Span *diag.Span
}

func (s *stmtBase) Pos() *diag.Span { return s.Span }
func (s *stmtBase) stmtNode()       {}

// StmtVarDecl is a local variable declaration, with an optional explicit
// type annotation (nil if un-annotated, in which case the analyzer must
// infer a type from Value or raise E_UNINFERABLE_LOCAL).
type StmtVarDecl struct {
	stmtBase
	Name       string
	Annotation TypeExpr // nil if not explicitly annotated
	Value      Expr
	Sym        *Symbol // bound by the analyzer
}

// AssignKind enumerates the forms of assignment spec.md §4.2 recognizes.
// Augmented assignment (`x += 1`) is desugared by the IR builder into a
// plain AKEq of a BinaryOp expression, so it never appears here.
type AssignKind int

const (
	AKEq   AssignKind = iota // `=`
	AKBind                   // `<-`, channel bind idiom
)

// StmtAssign is an assignment or tuple-unpacking assignment. Targets holds
// one Expr per assigned name (ExprIdent or ExprSubscript/ExprAttr for
// in-place mutation); len(Targets) > 1 denotes a tuple-unpacking
// assignment `a, b = expr`. Declares parallels Targets and is filled in by
// the analyzer: true at index i means Targets[i] named no prior symbol, so
// this statement is that name's declaring occurrence (SRC has no separate
// destructuring-declaration syntax; first assignment doubles as one).
type StmtAssign struct {
	stmtBase
	Targets  []Expr
	Value    Expr
	Kind     AssignKind
	Declares []bool
}

// StmtExpr wraps an expression evaluated for its side effect alone (a bare
// call statement such as `print(x)`).
type StmtExpr struct {
	stmtBase
	Value Expr
}

// CondBranch is one `if`/`elif` arm.
type CondBranch struct {
	Cond Expr
	Body []Stmt
}

// StmtIf is an if/elif/else chain.
type StmtIf struct {
	stmtBase
	Branches []CondBranch
	Else     []Stmt // nil if there is no else clause
}

// StmtWhile is a while loop.
type StmtWhile struct {
	stmtBase
	Cond Expr
	Body []Stmt
}

// StmtFor is a for-over-iterable loop: `for Name in Iter: Body`.
type StmtFor struct {
	stmtBase
	Name string
	Sym  *Symbol
	Iter Expr
	Body []Stmt
}

// ControlKind enumerates control-flow statement kinds.
type ControlKind int

const (
	CtrlBreak ControlKind = iota
	CtrlContinue
)

// StmtControl is `break` or `continue`.
type StmtControl struct {
	stmtBase
	Kind ControlKind
}

// StmtReturn is a `return` statement; Value is nil for a bare `return`.
type StmtReturn struct {
	stmtBase
	Value Expr
}

// StmtScoped is a lowered scoped-resource acquisition (`with ...:`),
// spec.md §4.4/§9: the leading binding acquires the resource and the
// closing brace of the emitted lexical block is the release point.
type StmtScoped struct {
	stmtBase
	// BindName is the name bound by `as name`, empty if none.
	BindName string
	Sym      *Symbol
	Resource Expr // the resource-constructing call, e.g. TemporaryDirectory()
	Body     []Stmt
}

// MatchCase is one `case` arm of a limited match statement (supplemented
// per SPEC_FULL.md §9: identifier-binding or literal-equality only).
type MatchCase struct {
	// Literal is non-nil for a literal-equality case; BindName is set
	// (Literal nil) for an identifier-binding case that matches anything.
	Literal  Expr
	BindName string
	Sym      *Symbol
	Body     []Stmt
}

// StmtMatch is a limited pattern-matching statement.
type StmtMatch struct {
	stmtBase
	Scrutinee Expr
	Cases     []MatchCase
}
