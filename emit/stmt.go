package emit

import (
	"ferroc/ir"
	"ferroc/typing"
)

// emitStmts renders a statement block at the emitter's current indent.
func (e *Emitter) emitStmts(body []ir.Stmt) {
	for _, s := range body {
		e.emitStmt(s)
	}
}

func (e *Emitter) emitStmt(s ir.Stmt) {
	switch st := s.(type) {
	case *ir.StmtVarDecl:
		e.emitVarDecl(st)
	case *ir.StmtAssign:
		e.emitAssign(st)
	case *ir.StmtExpr:
		e.writeln(e.emitExpr(st.Value) + ";")
	case *ir.StmtIf:
		e.emitIf(st)
	case *ir.StmtWhile:
		e.emitWhile(st)
	case *ir.StmtFor:
		e.emitFor(st)
	case *ir.StmtReturn:
		e.emitReturn(st)
	case *ir.StmtScoped:
		e.emitScoped(st)
	case *ir.StmtMatch:
		e.emitMatch(st)
	case *ir.StmtControl:
		if st.Kind == ir.CtrlBreak {
			e.writeln("break;")
		} else {
			e.writeln("continue;")
		}
	}
}

// emitVarDecl lowers a local declaration, applying the mutability
// modifier iff the analyzer marked the bound symbol reassigned or the
// receiver of an exclusive-access method (spec.md §4.5's "Mutability"
// contract / testable property 5).
func (e *Emitter) emitVarDecl(st *ir.StmtVarDecl) {
	mut := ""
	if st.Sym != nil && st.Sym.IsMutable() {
		mut = "mut "
	}
	// An explicit annotation is the declared (post-`?`-unwrap) local type;
	// Notes.TypeOf(st.Value) reflects the initializer expression itself,
	// which for a propagation-tagged call is still the callee's full
	// Fallible/Optional, not what ends up bound to the name.
	var declType typing.DataType
	if st.Annotation != nil {
		declType = e.resolveTypeExpr(st.Annotation)
	} else {
		declType = e.notes.TypeOf(st.Value)
	}
	typeStr := e.renderType(declType)
	e.writeln("let " + mut + st.Name + ": " + typeStr + " = " + e.emitExpr(st.Value) + ";")
}

func (e *Emitter) emitAssign(st *ir.StmtAssign) {
	value := e.emitExpr(st.Value)
	declares := false
	for i := range st.Targets {
		if i < len(st.Declares) && st.Declares[i] {
			declares = true
			break
		}
	}
	if len(st.Targets) == 1 {
		target := e.emitExpr(st.Targets[0])
		if declares {
			target = e.bindingText(st.Targets[0])
		}
		lead := ""
		if declares {
			lead = "let "
		}
		e.writeln(lead + target + " = " + value + ";")
		return
	}
	names := make([]string, len(st.Targets))
	for i, t := range st.Targets {
		if declares {
			names[i] = e.bindingText(t)
		} else {
			names[i] = e.emitExpr(t)
		}
	}
	lead := ""
	if declares {
		lead = "let "
	}
	e.writeln(lead + "(" + joinArgs(names) + ") = " + value + ";")
}

// bindingText renders a first-occurrence assignment target as a fresh `let`
// binding, applying `mut` when the analyzer marked its symbol mutable.
func (e *Emitter) bindingText(target ir.Expr) string {
	id, ok := target.(*ir.ExprIdent)
	if !ok {
		return e.emitExpr(target)
	}
	if id.Sym != nil && id.Sym.IsMutable() {
		return "mut " + id.Name
	}
	return id.Name
}

func (e *Emitter) emitIf(st *ir.StmtIf) {
	for i, br := range st.Branches {
		cond := e.emitExpr(br.Cond)
		if i == 0 {
			e.writeln("if " + cond + " {")
		} else {
			e.closeThenOpen("} else if " + cond + " {")
		}
		e.indent++
		e.emitStmts(br.Body)
		e.indent--
	}
	if st.Else != nil {
		e.closeThenOpen("} else {")
		e.indent++
		e.emitStmts(st.Else)
		e.indent--
	}
	e.writeln("}")
}

// closeThenOpen writes a "} else ... {" continuation line at the current
// indent; callers step the indent back to the opening brace's level
// before calling it.
func (e *Emitter) closeThenOpen(line string) {
	e.writeln(line)
}

func (e *Emitter) emitWhile(st *ir.StmtWhile) {
	e.writeln("while " + e.emitExpr(st.Cond) + " {")
	e.indent++
	e.emitStmts(st.Body)
	e.indent--
	e.writeln("}")
}

func (e *Emitter) emitFor(st *ir.StmtFor) {
	e.writeln("for " + st.Name + " in " + e.emitExpr(st.Iter) + " {")
	e.indent++
	e.emitStmts(st.Body)
	e.indent--
	e.writeln("}")
}

func (e *Emitter) emitReturn(st *ir.StmtReturn) {
	if st.Value == nil {
		e.writeln("return;")
		return
	}
	e.writeln("return " + e.emitReturnValue(st.Value) + ";")
}

// emitReturnValue wraps a bare return value in the success/some
// constructor when the declared return type is Fallible/Optional and the
// value itself was not already one (mirrors analyze.isCompatibleReturn).
func (e *Emitter) emitReturnValue(val ir.Expr) string {
	rendered := e.emitExpr(val)
	actual := e.notes.TypeOf(val)
	switch d := e.currentReturn.(type) {
	case typing.Fallible:
		if !typing.IsUnknown(actual) && typing.Equals(d.Ok, actual) {
			return "Ok(" + rendered + ")"
		}
	case typing.Optional:
		if !typing.IsUnknown(actual) && typing.Equals(d.Inner, actual) {
			return "Some(" + rendered + ")"
		}
	}
	return rendered
}

// emitScoped lowers a scoped-resource acquisition to a nested block whose
// closing brace is the resource's release point (spec.md §4.2/§9).
func (e *Emitter) emitScoped(st *ir.StmtScoped) {
	e.writeln("{")
	e.indent++
	resource := e.emitExpr(st.Resource)
	if st.BindName != "" {
		mut := ""
		if st.Sym != nil && st.Sym.IsMutable() {
			mut = "mut "
		}
		e.writeln("let " + mut + st.BindName + " = " + resource + ";")
	} else {
		e.writeln("let _scope = " + resource + ";")
	}
	e.emitStmts(st.Body)
	e.indent--
	e.writeln("} // drop")
}

func (e *Emitter) emitMatch(st *ir.StmtMatch) {
	scrutineeText := e.emitExpr(st.Scrutinee)
	e.writeln("match " + scrutineeText + " {")
	e.indent++
	for _, c := range st.Cases {
		pattern := e.matchPattern(c, scrutineeText)
		e.writeln(pattern + " => {")
		e.indent++
		e.emitStmts(c.Body)
		e.indent--
		e.writeln("}")
	}
	e.indent--
	e.writeln("}")
}

// matchPattern renders one case's pattern. A literal string case cannot be
// an owned-String match pattern in DST, so it is lowered to a wildcard
// guarded by an equality check against the scrutinee instead; every other
// literal kind is a valid match pattern directly.
func (e *Emitter) matchPattern(c ir.MatchCase, scrutineeText string) string {
	if c.Literal == nil {
		return c.BindName
	}
	if lit, ok := c.Literal.(*ir.ExprLiteral); ok && lit.Kind == ir.LitString {
		return "_ if " + scrutineeText + " == " + e.emitExpr(c.Literal)
	}
	return e.emitExpr(c.Literal)
}
