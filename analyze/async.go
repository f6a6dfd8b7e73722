package analyze

import (
	"ferroc/diag"
	"ferroc/ir"
	"ferroc/typing"
)

// analyzeAsync walks every function body looking for an await expression,
// or a call to an async function, reached from a non-async function, which
// spec.md §4.4 makes a fatal
// E_AWAIT_OUTSIDE_ASYNC. Async classification of the function itself was
// already settled at parse/IR-build time from the `async def` keyword
// (ir.DefFunc.IsAsync); this pass only validates consistency.
func (a *Analyzer) analyzeAsync() {
	for _, def := range a.module.Defs {
		switch d := def.(type) {
		case *ir.DefFunc:
			a.checkAwaitContext(d)
		case *ir.DefClass:
			for _, m := range d.Methods {
				a.checkAwaitContext(m)
			}
		}
	}
}

func (a *Analyzer) checkAwaitContext(fn *ir.DefFunc) {
	if fn.IsAsync {
		return
	}
	walkBody(fn.Body, nil, func(e ir.Expr) {
		if aw, ok := e.(*ir.ExprAwait); ok {
			a.report.Errorf(diag.EAwaitOutsideAsync, aw.Pos(), "await used inside non-async function %q", fn.Name)
		}
		if call, ok := e.(*ir.ExprCall); ok {
			if id, ok := call.Callee.(*ir.ExprIdent); ok && id.Sym != nil {
				if ft, ok := id.Sym.Type.(typing.Function); ok && ft.IsAsync {
					a.report.Errorf(diag.EAwaitOutsideAsync, call.Pos(), "async function %q called inside non-async function %q", id.Name, fn.Name)
				}
			}
		}
	})
}
