package emit

import (
	"fmt"
	"strconv"
	"strings"

	"ferroc/ir"
	"ferroc/typing"
)

// emitExpr renders one TIR expression as DST source text.
func (e *Emitter) emitExpr(expr ir.Expr) string {
	switch n := expr.(type) {
	case *ir.ExprLiteral:
		return e.emitLiteral(n)
	case *ir.ExprIdent:
		return n.Name
	case *ir.ExprAttr:
		return e.emitAttr(n)
	case *ir.ExprSubscript:
		return e.emitSubscript(n)
	case *ir.ExprUnary:
		return e.emitUnary(n)
	case *ir.ExprBinary:
		return e.emitBinary(n)
	case *ir.ExprMembership:
		return e.emitMembership(n)
	case *ir.ExprConditional:
		cond := e.emitExpr(n.Cond)
		then := e.emitExpr(n.Then)
		els := e.emitExpr(n.Else)
		return fmt.Sprintf("if %s { %s } else { %s }", cond, then, els)
	case *ir.ExprTuple:
		return "(" + e.joinExprs(n.Elems) + ")"
	case *ir.ExprSeq:
		return "vec![" + e.joinExprs(n.Elems) + "]"
	case *ir.ExprMap:
		e.addImport("std::collections::HashMap")
		pairs := make([]string, len(n.Entries))
		for i, ent := range n.Entries {
			pairs[i] = "(" + e.emitExpr(ent.Key) + ", " + e.emitExpr(ent.Value) + ")"
		}
		return "HashMap::from([" + strings.Join(pairs, ", ") + "])"
	case *ir.ExprSet:
		e.addImport("std::collections::HashSet")
		return "HashSet::from([" + e.joinExprs(n.Elems) + "])"
	case *ir.ExprFString:
		return e.emitFString(n)
	case *ir.ExprCall:
		return e.emitCall(n)
	case *ir.ExprAwait:
		// Await lowering: prefix-await becomes postfix `.await` (spec.md §4.5).
		return e.emitExpr(n.Value) + ".await"
	default:
		return "/* unsupported expression */"
	}
}

func (e *Emitter) joinExprs(exprs []ir.Expr) string {
	parts := make([]string, len(exprs))
	for i, ex := range exprs {
		parts[i] = e.emitExpr(ex)
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) emitLiteral(n *ir.ExprLiteral) string {
	switch n.Kind {
	case ir.LitNone:
		return "None"
	case ir.LitBool:
		return n.Text
	case ir.LitInt:
		if n.IsSubscriptIndex {
			return n.Text
		}
		return n.Text
	case ir.LitFloat:
		s := n.Text
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case ir.LitString:
		return e.ownedString(n.Text)
	default:
		return n.Text
	}
}

// ownedString renders a SRC string literal as an owned DST string,
// applying the string-boundary rule (spec.md §4.5): literal string values
// are always created owned, with escaping for backslash/quote.
func (e *Emitter) ownedString(raw string) string {
	escaped := strings.ReplaceAll(raw, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
	return `"` + escaped + `".to_string()`
}

func (e *Emitter) emitAttr(n *ir.ExprAttr) string {
	root := e.emitExpr(n.Root)
	return root + "." + n.Attr
}

func (e *Emitter) emitSubscript(n *ir.ExprSubscript) string {
	root := e.emitExpr(n.Root)
	index := e.emitExpr(n.Index)
	if e.notes.IndexCast[n.Index] {
		index = "(" + index + " as usize)"
	}
	return root + "[" + index + "]"
}

func (e *Emitter) emitUnary(n *ir.ExprUnary) string {
	operand := e.emitExpr(n.Operand)
	switch n.Op {
	case ir.UnaryNeg:
		return "-" + operand
	case ir.UnaryNot:
		return "!" + operand
	case ir.UnaryInvert:
		return "!" + operand
	default:
		return operand
	}
}

var binOpText = map[ir.BinaryOp]string{
	ir.BinAdd: "+", ir.BinSub: "-", ir.BinMul: "*", ir.BinDiv: "/", ir.BinMod: "%",
	ir.BinBitAnd: "&", ir.BinBitOr: "|", ir.BinBitXor: "^",
	ir.BinLShift: "<<", ir.BinRShift: ">>",
	ir.BinLt: "<", ir.BinGt: ">", ir.BinLtEq: "<=", ir.BinGtEq: ">=",
	ir.BinEq: "==", ir.BinNotEq: "!=", ir.BinAnd: "&&", ir.BinOr: "||",
}

func (e *Emitter) emitBinary(n *ir.ExprBinary) string {
	// find()-against-sentinel rewrite takes priority over plain comparison
	// lowering (spec.md §4.5/testable property 7).
	if rewritten, ok := e.rewriteFindSentinel(n); ok {
		return rewritten
	}

	left := e.emitExpr(n.Left)
	right := e.emitExpr(n.Right)

	if n.Op == ir.BinFloorDiv {
		return e.parenIfBinary(n.Left, left) + " / " + e.parenIfBinary(n.Right, right)
	}
	if n.Op == ir.BinPow {
		base := left
		if _, ok := n.Left.(*ir.ExprBinary); ok {
			base = "(" + base + ")"
		}
		return "(" + base + " as f64).powf(" + right + " as f64)"
	}
	if n.Op == ir.BinAdd && e.looksLikeOwnedString(n.Left) {
		return fmt.Sprintf(`format!("{}{}", %s, %s)`, left, right)
	}

	op, ok := binOpText[n.Op]
	if !ok {
		op = "+"
	}
	return e.parenIfBinary(n.Left, left) + " " + op + " " + e.parenIfBinary(n.Right, right)
}

func (e *Emitter) parenIfBinary(operand ir.Expr, rendered string) string {
	if _, ok := operand.(*ir.ExprBinary); ok {
		return "(" + rendered + ")"
	}
	return rendered
}

// looksLikeOwnedString reports whether an operand's inferred type is one
// of the string primitives, driving string-concatenation's format! lowering.
func (e *Emitter) looksLikeOwnedString(expr ir.Expr) bool {
	t := e.notes.TypeOf(expr)
	p, ok := t.(typing.Primitive)
	return ok && p.IsString()
}

// intLiteralValue extracts the numeric value of an int literal expression,
// used to recognize the find()-sentinel comparison idiom.
func intLiteralValue(expr ir.Expr) (int64, bool) {
	lit, ok := expr.(*ir.ExprLiteral)
	if !ok || lit.Kind != ir.LitInt {
		return 0, false
	}
	v, err := strconv.ParseInt(lit.Text, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
