package analyze

import (
	"ferroc/ir"
	"ferroc/typing"
)

// analyzeBorrows computes the passing mode of every call argument in the
// module, per spec.md §4.4's borrow-hints policy: primitive scalars and
// Shared(_) pass by value; owned-string arguments to a stub-mapped
// callable are passed by shared borrow (the common `&str` stub signature);
// everything else passed to a user-defined function defaults to by-value
// (the emitter inserts whatever conversion the call site needs); any
// remaining container/named-type argument defaults to a shared borrow,
// since cloning an arbitrary collection at every call site would defeat
// the point of transpiling into an ownership-based target.
func (a *Analyzer) analyzeBorrows() {
	for _, def := range a.module.Defs {
		switch d := def.(type) {
		case *ir.DefFunc:
			a.markBorrows(d.Body)
		case *ir.DefClass:
			for _, m := range d.Methods {
				a.markBorrows(m.Body)
			}
		}
	}
}

func (a *Analyzer) markBorrows(body []ir.Stmt) {
	walkBody(body, nil, func(e ir.Expr) {
		call, ok := e.(*ir.ExprCall)
		if !ok {
			return
		}
		isStub := a.calleeIsStub(call)
		for _, arg := range call.Args {
			a.Notes.Borrow[arg.Value] = a.borrowModeFor(a.Notes.TypeOf(arg.Value), isStub)
		}
	})
}

func (a *Analyzer) calleeIsStub(call *ir.ExprCall) bool {
	switch callee := call.Callee.(type) {
	case *ir.ExprIdent:
		_, ok := a.stubs.LookupFunction(callee.Name)
		return ok
	case *ir.ExprAttr:
		typeName := namedTypePath(a.Notes.TypeOf(callee.Root))
		_, ok := a.stubs.LookupMethod(typeName, callee.Attr)
		return ok
	default:
		return false
	}
}

func (a *Analyzer) borrowModeFor(t typing.DataType, isStub bool) BorrowMode {
	switch p := t.(type) {
	case typing.Primitive:
		if p.IsString() && isStub {
			return BySharedBorrow
		}
		return ByValue
	case typing.Shared:
		return ByValue
	default:
		if !isStub {
			return ByValue
		}
		return BySharedBorrow
	}
}
