package analyze

import (
	"ferroc/diag"
	"ferroc/ir"
	"ferroc/typing"
)

// walkScoped validates and binds a lowered `with` statement (spec.md
// §4.4's scoped-resources rule). The resource expression must be a call —
// the only shape a scoped-resource constructor can take in the accepted
// grammar — and its bound name (if any) is scoped to the block body only,
// matching the lexical-block lowering the IR builder already performed.
func (a *Analyzer) walkScoped(st *ir.StmtScoped, retType typing.DataType) {
	if _, ok := st.Resource.(*ir.ExprCall); !ok {
		a.report.Errorf(diag.EUnsupportedConstruct, st.Pos(), "scoped resource must be a constructor call")
	}
	resourceType := a.inferExpr(st.Resource)

	a.withNestedScope(func() {
		if st.BindName != "" {
			st.Sym = &ir.Symbol{Name: st.BindName, Kind: ir.DefKindLocal, Type: resourceType, Span: st.Pos()}
			a.currentScope().Define(st.Sym)
		}
		a.walkBlock(st.Body, retType)
	})
}

// walkMatch type-checks a limited match statement (SPEC_FULL.md §9):
// each case is either a literal-equality test against the scrutinee or an
// identifier binding that matches unconditionally.
func (a *Analyzer) walkMatch(st *ir.StmtMatch, retType typing.DataType) {
	scrutineeType := a.inferExpr(st.Scrutinee)

	for i := range st.Cases {
		c := &st.Cases[i]
		a.withNestedScope(func() {
			if c.Literal != nil {
				litType := a.inferExpr(c.Literal)
				if !typing.IsUnknown(scrutineeType) && !typing.IsUnknown(litType) && !typing.Equals(scrutineeType, litType) {
					a.report.Errorf(diag.ETypeMismatch, st.Pos(), "case literal has type %s, scrutinee has type %s", litType.Repr(), scrutineeType.Repr())
				}
			} else if c.BindName != "" {
				c.Sym = &ir.Symbol{Name: c.BindName, Kind: ir.DefKindLocal, Type: scrutineeType, Span: st.Pos()}
				a.currentScope().Define(c.Sym)
			}
			a.walkBlock(c.Body, retType)
		})
	}
}
