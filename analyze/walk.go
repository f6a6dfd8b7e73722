package analyze

import "ferroc/ir"

// walkExpr visits e and every expression nested within it, post-order,
// calling visit on each. Shared by the passes that need to inspect
// arbitrary sub-expressions (mutability, borrow, index-cast, async)
// without re-deriving traversal order for every pass.
func walkExpr(e ir.Expr, visit func(ir.Expr)) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ir.ExprAttr:
		walkExpr(n.Root, visit)
	case *ir.ExprSubscript:
		walkExpr(n.Root, visit)
		walkExpr(n.Index, visit)
	case *ir.ExprUnary:
		walkExpr(n.Operand, visit)
	case *ir.ExprBinary:
		walkExpr(n.Left, visit)
		walkExpr(n.Right, visit)
	case *ir.ExprMembership:
		walkExpr(n.Elem, visit)
		walkExpr(n.Container, visit)
	case *ir.ExprConditional:
		walkExpr(n.Cond, visit)
		walkExpr(n.Then, visit)
		walkExpr(n.Else, visit)
	case *ir.ExprTuple:
		for _, el := range n.Elems {
			walkExpr(el, visit)
		}
	case *ir.ExprSeq:
		for _, el := range n.Elems {
			walkExpr(el, visit)
		}
	case *ir.ExprSet:
		for _, el := range n.Elems {
			walkExpr(el, visit)
		}
	case *ir.ExprMap:
		for _, ent := range n.Entries {
			walkExpr(ent.Key, visit)
			walkExpr(ent.Value, visit)
		}
	case *ir.ExprCall:
		walkExpr(n.Callee, visit)
		for _, arg := range n.Args {
			walkExpr(arg.Value, visit)
		}
	case *ir.ExprAwait:
		walkExpr(n.Value, visit)
	case *ir.ExprFString:
		for _, seg := range n.Segments {
			walkExpr(seg.Value, visit)
		}
	}
	visit(e)
}

// walkBody visits every statement in body and every expression transitively
// reachable from it, recursing into nested blocks (if/while/for/with/match
// arms). visitStmt/visitExpr may be nil.
func walkBody(body []ir.Stmt, visitStmt func(ir.Stmt), visitExpr func(ir.Expr)) {
	for _, s := range body {
		if visitStmt != nil {
			visitStmt(s)
		}
		walkStmtExprs(s, visitExpr)
		switch st := s.(type) {
		case *ir.StmtIf:
			for _, br := range st.Branches {
				walkBody(br.Body, visitStmt, visitExpr)
			}
			walkBody(st.Else, visitStmt, visitExpr)
		case *ir.StmtWhile:
			walkBody(st.Body, visitStmt, visitExpr)
		case *ir.StmtFor:
			walkBody(st.Body, visitStmt, visitExpr)
		case *ir.StmtScoped:
			walkBody(st.Body, visitStmt, visitExpr)
		case *ir.StmtMatch:
			for _, c := range st.Cases {
				walkBody(c.Body, visitStmt, visitExpr)
			}
		}
	}
}

func walkStmtExprs(s ir.Stmt, visit func(ir.Expr)) {
	if visit == nil {
		return
	}
	switch st := s.(type) {
	case *ir.StmtVarDecl:
		walkExpr(st.Value, visit)
	case *ir.StmtAssign:
		walkExpr(st.Value, visit)
		for _, t := range st.Targets {
			walkExpr(t, visit)
		}
	case *ir.StmtExpr:
		walkExpr(st.Value, visit)
	case *ir.StmtIf:
		for _, br := range st.Branches {
			walkExpr(br.Cond, visit)
		}
	case *ir.StmtWhile:
		walkExpr(st.Cond, visit)
	case *ir.StmtFor:
		walkExpr(st.Iter, visit)
	case *ir.StmtReturn:
		walkExpr(st.Value, visit)
	case *ir.StmtScoped:
		walkExpr(st.Resource, visit)
	case *ir.StmtMatch:
		walkExpr(st.Scrutinee, visit)
		for _, c := range st.Cases {
			walkExpr(c.Literal, visit)
		}
	}
}
