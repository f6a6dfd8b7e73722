package emit

import "ferroc/ir"

// emitMembership lowers `x in y` / `x not in y` to `y.contains(&x)` /
// `!y.contains(&x)` (spec.md §4.5/testable property 7).
func (e *Emitter) emitMembership(n *ir.ExprMembership) string {
	container := e.emitExpr(n.Container)
	elem := e.emitExpr(n.Elem)
	call := container + ".contains(&" + elem + ")"
	if n.Negated {
		return "!" + call
	}
	return call
}

// rewriteFindSentinel recognizes `y.find(x) >= 0` / `y.find(x) == -1` style
// comparisons of a string/sequence `find` result against a sentinel and
// rewrites them to the boolean `.contains(x)` form (spec.md §4.5/testable
// property 7). Reports ok=false when n is not this shape, leaving ordinary
// binary-op lowering to handle it.
func (e *Emitter) rewriteFindSentinel(n *ir.ExprBinary) (string, bool) {
	findCall, sentinel, swapped, ok := splitFindComparison(n)
	if !ok {
		return "", false
	}
	val, isInt := intLiteralValue(sentinel)
	if !isInt {
		return "", false
	}

	op := n.Op
	if swapped {
		op = flipComparison(op)
	}

	var negate bool
	switch {
	case val == -1 && op == ir.BinEq:
		negate = true
	case val == -1 && op == ir.BinNotEq:
		negate = false
	case val == 0 && (op == ir.BinGtEq || op == ir.BinGt):
		negate = false
	case val == 0 && op == ir.BinLt:
		negate = true
	default:
		return "", false
	}

	recv := e.emitExpr(findCall.Callee.(*ir.ExprAttr).Root)
	needle := e.joinExprs(argValues(findCall.Args))
	call := recv + ".contains(" + needle + ")"
	if negate {
		return "!" + call, true
	}
	return call, true
}

func argValues(args []ir.Arg) []ir.Expr {
	out := make([]ir.Expr, len(args))
	for i, a := range args {
		out[i] = a.Value
	}
	return out
}

// splitFindComparison reports whether n compares the result of a `.find(`
// method call against a literal, returning the call side, the other side,
// and whether the call was the right-hand operand (swapped).
func splitFindComparison(n *ir.ExprBinary) (call *ir.ExprCall, other ir.Expr, swapped, ok bool) {
	if !isComparison(n.Op) {
		return nil, nil, false, false
	}
	if c, match := asFindCall(n.Left); match {
		return c, n.Right, false, true
	}
	if c, match := asFindCall(n.Right); match {
		return c, n.Left, true, true
	}
	return nil, nil, false, false
}

func asFindCall(expr ir.Expr) (*ir.ExprCall, bool) {
	call, ok := expr.(*ir.ExprCall)
	if !ok {
		return nil, false
	}
	attr, ok := call.Callee.(*ir.ExprAttr)
	if !ok || attr.Attr != "find" {
		return nil, false
	}
	return call, true
}

func isComparison(op ir.BinaryOp) bool {
	switch op {
	case ir.BinEq, ir.BinNotEq, ir.BinLt, ir.BinLtEq, ir.BinGt, ir.BinGtEq:
		return true
	default:
		return false
	}
}

func flipComparison(op ir.BinaryOp) ir.BinaryOp {
	switch op {
	case ir.BinLt:
		return ir.BinGt
	case ir.BinGt:
		return ir.BinLt
	case ir.BinLtEq:
		return ir.BinGtEq
	case ir.BinGtEq:
		return ir.BinLtEq
	default:
		return op
	}
}

// stringMethodTranslation is the fixed string-method translation table
// (spec.md §4.5): SRC method name -> DST method-call template using
// {recv} and {args} placeholders, applied by emitCall before falling back
// to ordinary method-call emission.
var stringMethodTranslation = map[string]string{
	"upper":       "{recv}.to_uppercase()",
	"lower":       "{recv}.to_lowercase()",
	"strip":       "{recv}.trim().to_string()",
	"lstrip":      "{recv}.trim_start().to_string()",
	"rstrip":      "{recv}.trim_end().to_string()",
	"startswith":  "{recv}.starts_with({args})",
	"endswith":    "{recv}.ends_with({args})",
	"split":       "{recv}.split({args}).map(|s| s.to_string()).collect::<Vec<String>>()",
	"join":        "{args}.join(&{recv})",
	"isdigit":     "{recv}.chars().all(|c| c.is_ascii_digit())",
	"isalpha":     "{recv}.chars().all(|c| c.is_alphabetic())",
	"isalnum":     "{recv}.chars().all(|c| c.is_alphanumeric())",
	"replace":     "{recv}.replace({args})",
	"capitalize":  "{recv}.chars().next().map(|c| c.to_uppercase().to_string() + &{recv}[1..]).unwrap_or_default()",
}
