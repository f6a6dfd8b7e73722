package analyze

import (
	"ferroc/ir"
	"ferroc/typing"
)

// analyzeIndexCasts walks every function body and records an IndexCast
// annotation on any subscript index expression whose container is
// sequence- or tuple-shaped: DST indexes those with the platform's
// unsigned index width, while TIR models SRC integers as signed, so the
// emitter needs to know where to insert the widening cast (spec.md §4.4).
func (a *Analyzer) analyzeIndexCasts() {
	for _, def := range a.module.Defs {
		switch d := def.(type) {
		case *ir.DefFunc:
			a.markIndexCasts(d.Body)
		case *ir.DefClass:
			for _, m := range d.Methods {
				a.markIndexCasts(m.Body)
			}
		}
	}
}

func (a *Analyzer) markIndexCasts(body []ir.Stmt) {
	walkBody(body, nil, func(e ir.Expr) {
		sub, ok := e.(*ir.ExprSubscript)
		if !ok {
			return
		}
		rootType := a.Notes.TypeOf(sub.Root)
		idxType := a.Notes.TypeOf(sub.Index)
		needsPositionalIndex := false
		switch rootType.(type) {
		case typing.Sequence, typing.Tuple:
			needsPositionalIndex = true
		}
		if p, ok := idxType.(typing.Primitive); needsPositionalIndex && ok && p.Kind == typing.PrimInt {
			a.Notes.IndexCast[sub.Index] = true
		}
	})
}
