package analyze

import (
	"ferroc/diag"
	"ferroc/ir"
	"ferroc/stubs"
	"ferroc/typing"
)

// resolveTypeExpr turns a syntactic type annotation into its TIR DataType.
// A name that is not a primitive, a known container form or a stub type
// becomes a typing.Named with that name, whether or not a user type of
// that name exists. typing.Unknown results only from a missing annotation,
// an unrecognized type-expression form, or a container annotation without
// its type arguments; resolution never fails the pass.
func (a *Analyzer) resolveTypeExpr(t ir.TypeExpr) typing.DataType {
	return ResolveTypeExpr(t, a.stubs)
}

// ResolveTypeExpr is the package-level form of type-annotation resolution,
// exported so the emitter can render a declared annotation (e.g. a class
// field or parameter) into its DST type without needing a full Analyzer —
// this resolution step needs only the stub registry, never scope state.
func ResolveTypeExpr(t ir.TypeExpr, reg *stubs.Registry) typing.DataType {
	if t == nil {
		return typing.Unknown{Label: "missing"}
	}
	switch n := t.(type) {
	case *ir.TypeOptional:
		return typing.Optional{Inner: ResolveTypeExpr(n.Inner, reg)}
	case *ir.TypeName:
		return resolveTypeName(n, reg)
	default:
		return typing.Unknown{Label: "unrecognized-type-expr"}
	}
}

func resolveTypeName(n *ir.TypeName, reg *stubs.Registry) typing.DataType {
	switch n.Name {
	case "bool":
		return typing.Bool
	case "int":
		return typing.Int
	case "float":
		return typing.Float
	case "str", "string":
		// A surface annotation always denotes an owned string (spec.md
		// §4.2's boundary canonicalization applies to every parameter,
		// return, and local annotation). typing.StringSlice only ever
		// arises from internal inference of a pure-read-site literal
		// (see inferLiteral), never from a written-out type annotation.
		return typing.String
	case "None":
		return typing.Unit
	case "list", "Sequence":
		return typing.Sequence{Elem: genericOrUnknown(n, 0, reg)}
	case "dict", "Mapping":
		return typing.Mapping{Key: genericOrUnknown(n, 0, reg), Value: genericOrUnknown(n, 1, reg)}
	case "set", "Set":
		return typing.UnorderedSet{Elem: genericOrUnknown(n, 0, reg)}
	case "tuple", "Tuple":
		elems := make([]typing.DataType, len(n.Generics))
		for i := range n.Generics {
			elems[i] = ResolveTypeExpr(n.Generics[i], reg)
		}
		return typing.Tuple{Elems: elems}
	case "Result", "Fallible":
		return typing.Fallible{Ok: genericOrUnknown(n, 0, reg), Err: genericOrUnknown(n, 1, reg)}
	case "Shared":
		return typing.Shared{Inner: genericOrUnknown(n, 0, reg)}
	case "Guarded":
		return typing.Guarded{Inner: genericOrUnknown(n, 0, reg)}
	default:
		if reg != nil {
			if mapping, ok := reg.LookupType(n.Name); ok {
				return typing.Named{Path: mapping.DstName}
			}
		}
		generics := make([]typing.DataType, len(n.Generics))
		for i := range n.Generics {
			generics[i] = ResolveTypeExpr(n.Generics[i], reg)
		}
		return typing.Named{Path: n.Name, Generics: generics}
	}
}

func genericOrUnknown(n *ir.TypeName, idx int, reg *stubs.Registry) typing.DataType {
	if idx < len(n.Generics) {
		return ResolveTypeExpr(n.Generics[idx], reg)
	}
	return typing.Unknown{Label: "unparameterized-" + n.Name}
}

// analyzeFunc validates and infers the signature, then walks the body in a
// fresh scope seeded with the function's parameters.
func (a *Analyzer) analyzeFunc(fn *ir.DefFunc) {
	if fn.Return == nil {
		a.report.Errorf(diag.EMissingAnnotation, fn.Pos(), "function %q has no return type annotation", fn.Name)
	}
	retType := a.resolveTypeExpr(fn.Return)

	if fn.Sym != nil && !fn.IsMethod {
		paramTypes := make([]typing.DataType, 0, len(fn.Params))
		for _, p := range fn.Params {
			paramTypes = append(paramTypes, a.resolveTypeExpr(p.Annotation))
		}
		fn.Sym.Type = typing.Function{Params: paramTypes, Return: retType, IsAsync: fn.IsAsync}
	}

	scope := ir.NewScope(a.moduleScope)
	a.pushScope(scope)
	a.enterFunc(fn)
	defer func() {
		a.exitFunc()
		a.popScope()
	}()

	if fn.IsMethod {
		selfType := typing.DataType(typing.Named{Path: fn.ReceiverOf})
		scope.Define(&ir.Symbol{Name: "self", Kind: ir.DefKindLocal, Type: selfType, Span: fn.Pos()})
	}

	for i := range fn.Params {
		p := &fn.Params[i]
		if p.Name == "self" {
			continue
		}
		if p.Annotation == nil && p.Default == nil {
			a.report.Errorf(diag.EMissingAnnotation, fn.Pos(), "parameter %q of %q has no type annotation", p.Name, fn.Name)
		}
		pt := a.resolveTypeExpr(p.Annotation)
		if p.Default != nil {
			a.Notes.Types[p.Default] = a.inferExpr(p.Default)
			if p.Annotation == nil {
				pt = typing.Optional{Inner: a.Notes.Types[p.Default]}
			}
		}
		p.Sym = &ir.Symbol{Name: p.Name, Kind: ir.DefKindLocal, Type: pt, Span: fn.Pos()}
		scope.Define(p.Sym)
	}

	a.walkBlock(fn.Body, retType)
}

func (a *Analyzer) walkBlock(body []ir.Stmt, retType typing.DataType) {
	for _, s := range body {
		a.walkStmt(s, retType)
	}
}

func (a *Analyzer) walkStmt(s ir.Stmt, retType typing.DataType) {
	switch st := s.(type) {
	case *ir.StmtVarDecl:
		a.bindVarDecl(st)
	case *ir.StmtAssign:
		a.walkAssign(st)
	case *ir.StmtExpr:
		a.Notes.Types[st.Value] = a.inferExpr(st.Value)
	case *ir.StmtIf:
		for _, br := range st.Branches {
			a.Notes.Types[br.Cond] = a.inferExpr(br.Cond)
			a.withNestedScope(func() { a.walkBlock(br.Body, retType) })
		}
		if st.Else != nil {
			a.withNestedScope(func() { a.walkBlock(st.Else, retType) })
		}
	case *ir.StmtWhile:
		a.Notes.Types[st.Cond] = a.inferExpr(st.Cond)
		a.withNestedScope(func() { a.walkBlock(st.Body, retType) })
	case *ir.StmtFor:
		elemType := a.iterElemType(st.Iter)
		a.withNestedScope(func() {
			st.Sym = &ir.Symbol{Name: st.Name, Kind: ir.DefKindLocal, Type: elemType, Span: st.Pos()}
			a.currentScope().Define(st.Sym)
			a.walkBlock(st.Body, retType)
		})
	case *ir.StmtReturn:
		if st.Value != nil {
			vt := a.inferExpr(st.Value)
			a.Notes.Types[st.Value] = vt
			if !typing.IsUnknown(retType) && !typing.IsUnknown(vt) && !typing.Equals(retType, vt) && !a.isCompatibleReturn(retType, vt) {
				a.report.Errorf(diag.ETypeMismatch, st.Pos(), "return value has type %s, function declares %s", vt.Repr(), retType.Repr())
			}
		}
	case *ir.StmtScoped:
		a.walkScoped(st, retType)
	case *ir.StmtMatch:
		a.walkMatch(st, retType)
	case *ir.StmtControl:
		// no type information to record
	}
}

// isCompatibleReturn allows a bare value to satisfy a Fallible(Ok, _)
// return type (the emitter wraps it in the success constructor) and an
// Optional(Inner) return type to accept its Inner directly.
func (a *Analyzer) isCompatibleReturn(declared, actual typing.DataType) bool {
	switch d := declared.(type) {
	case typing.Fallible:
		return typing.Equals(d.Ok, actual)
	case typing.Optional:
		return typing.Equals(d.Inner, actual)
	}
	return false
}

func (a *Analyzer) withNestedScope(f func()) {
	a.pushScope(ir.NewScope(a.currentScope()))
	f()
	a.popScope()
}

func (a *Analyzer) bindVarDecl(st *ir.StmtVarDecl) {
	var t typing.DataType
	if st.Annotation != nil {
		t = a.resolveTypeExpr(st.Annotation)
		if st.Value != nil {
			a.Notes.Types[st.Value] = a.inferExpr(st.Value)
		}
	} else if st.Value != nil {
		t = a.inferExpr(st.Value)
		a.Notes.Types[st.Value] = t
		if typing.IsUnknown(t) {
			a.report.Errorf(diag.EUninferableLocal, st.Pos(), "cannot infer a type for %q from its initializer; add an annotation", st.Name)
		}
	} else {
		a.report.Errorf(diag.EUninferableLocal, st.Pos(), "%q has neither a type annotation nor an initializer", st.Name)
		t = typing.Unknown{Label: "uninferable"}
	}
	st.Sym = &ir.Symbol{Name: st.Name, Kind: ir.DefKindLocal, Type: t, Span: st.Pos(), Mutable: ir.MutImmutable}
	a.currentScope().Define(st.Sym)
}

func (a *Analyzer) walkAssign(st *ir.StmtAssign) {
	vt := a.inferExpr(st.Value)
	a.Notes.Types[st.Value] = vt

	elemTypes := destructureTypes(vt, len(st.Targets))
	st.Declares = make([]bool, len(st.Targets))
	for i, target := range st.Targets {
		id, ok := target.(*ir.ExprIdent)
		if !ok {
			a.Notes.Types[target] = a.inferExpr(target)
			continue
		}
		if sym, found := a.currentScope().Lookup(id.Name); found {
			id.Sym = sym
			a.Notes.Types[target] = sym.Type
			sym.Mutable = ir.MutMutable
			continue
		}
		// A target naming no existing symbol implicitly declares a new
		// local (SRC's `tx, rx = mpsc_channel(10)` is itself the
		// introducing statement for both names, mirroring StmtVarDecl's
		// single-name form but split positionally across the RHS's type).
		sym := &ir.Symbol{Name: id.Name, Kind: ir.DefKindLocal, Type: elemTypes[i], Span: id.Pos(), Mutable: ir.MutImmutable}
		a.currentScope().Define(sym)
		id.Sym = sym
		a.Notes.Types[target] = sym.Type
		st.Declares[i] = true
	}
}

// destructureTypes splits vt positionally across n assignment targets. A
// single target simply binds the whole value; multiple targets require vt
// to be a same-arity Tuple, falling back to Unknown per element otherwise.
func destructureTypes(vt typing.DataType, n int) []typing.DataType {
	if n == 1 {
		return []typing.DataType{vt}
	}
	if tup, ok := vt.(typing.Tuple); ok && len(tup.Elems) == n {
		return tup.Elems
	}
	out := make([]typing.DataType, n)
	for i := range out {
		out[i] = typing.Unknown{Label: "tuple-unpack"}
	}
	return out
}

// inferExpr computes and records the type of e, diagnosing E_UNKNOWN_SYMBOL
// and E_TYPE_MISMATCH along the way. Every call also records e's type into
// Notes.Types so later passes (borrow, index-cast, propagation) can read it
// back without re-inferring.
func (a *Analyzer) inferExpr(e ir.Expr) typing.DataType {
	t := a.inferExprKind(e)
	a.Notes.Types[e] = t
	return t
}

func (a *Analyzer) inferExprKind(e ir.Expr) typing.DataType {
	switch n := e.(type) {
	case *ir.ExprLiteral:
		return a.inferLiteral(n)
	case *ir.ExprFString:
		for _, seg := range n.Segments {
			if seg.Value != nil {
				a.inferExpr(seg.Value)
			}
		}
		return typing.String
	case *ir.ExprIdent:
		sym, ok := a.currentScope().Lookup(n.Name)
		if !ok {
			a.report.Errorf(diag.EUnknownSymbol, n.Pos(), "undefined name %q", n.Name)
			return typing.Unknown{Label: n.Name}
		}
		n.Sym = sym
		return sym.Type
	case *ir.ExprAttr:
		a.inferExpr(n.Root)
		return typing.Unknown{Label: "attr:" + n.Attr}
	case *ir.ExprSubscript:
		return a.inferSubscript(n)
	case *ir.ExprUnary:
		return a.inferExpr(n.Operand)
	case *ir.ExprBinary:
		return a.inferBinary(n)
	case *ir.ExprMembership:
		a.inferExpr(n.Elem)
		a.inferExpr(n.Container)
		return typing.Bool
	case *ir.ExprConditional:
		a.inferExpr(n.Cond)
		thenT := a.inferExpr(n.Then)
		elseT := a.inferExpr(n.Else)
		if typing.Equals(thenT, elseT) {
			return thenT
		}
		return typing.Optional{Inner: thenT}
	case *ir.ExprTuple:
		elems := make([]typing.DataType, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = a.inferExpr(el)
		}
		return typing.Tuple{Elems: elems}
	case *ir.ExprSeq:
		return typing.Sequence{Elem: a.inferHomogeneous(n.Elems)}
	case *ir.ExprSet:
		return typing.UnorderedSet{Elem: a.inferHomogeneous(n.Elems)}
	case *ir.ExprMap:
		if len(n.Entries) == 0 {
			return typing.Mapping{Key: typing.Unknown{Label: "empty-map-key"}, Value: typing.Unknown{Label: "empty-map-value"}}
		}
		keys := make([]ir.Expr, len(n.Entries))
		vals := make([]ir.Expr, len(n.Entries))
		for i, ent := range n.Entries {
			keys[i], vals[i] = ent.Key, ent.Value
		}
		return typing.Mapping{Key: a.inferHomogeneous(keys), Value: a.inferHomogeneous(vals)}
	case *ir.ExprCall:
		return a.inferCall(n)
	case *ir.ExprAwait:
		inner := a.inferExpr(n.Value)
		return inner
	default:
		return typing.Unknown{Label: "unhandled-expr"}
	}
}

func (a *Analyzer) inferLiteral(n *ir.ExprLiteral) typing.DataType {
	switch n.Kind {
	case ir.LitInt:
		return typing.Int
	case ir.LitFloat:
		return typing.Float
	case ir.LitBool:
		return typing.Bool
	case ir.LitString:
		return typing.StringSlice
	case ir.LitNone:
		return typing.Unit
	default:
		return typing.Unknown{Label: "literal"}
	}
}

func (a *Analyzer) inferHomogeneous(elems []ir.Expr) typing.DataType {
	if len(elems) == 0 {
		return typing.Unknown{Label: "empty-display"}
	}
	first := a.inferExpr(elems[0])
	for _, el := range elems[1:] {
		a.inferExpr(el)
	}
	return first
}

func (a *Analyzer) inferSubscript(n *ir.ExprSubscript) typing.DataType {
	root := a.inferExpr(n.Root)
	a.inferExpr(n.Index)
	switch r := root.(type) {
	case typing.Sequence:
		return r.Elem
	case typing.Mapping:
		return r.Value
	case typing.Tuple:
		return typing.Unknown{Label: "tuple-index"}
	default:
		return typing.Unknown{Label: "subscript"}
	}
}

func (a *Analyzer) inferBinary(n *ir.ExprBinary) typing.DataType {
	lt := a.inferExpr(n.Left)
	rt := a.inferExpr(n.Right)

	switch n.Op {
	case ir.BinAnd, ir.BinOr:
		return typing.Bool
	case ir.BinLt, ir.BinGt, ir.BinLtEq, ir.BinGtEq, ir.BinEq, ir.BinNotEq:
		return typing.Bool
	case ir.BinAdd:
		lp, lok := lt.(typing.Primitive)
		rp, rok := rt.(typing.Primitive)
		if lok && rok && lp.IsString() && rp.IsString() {
			// Either side may be a bare literal (inferLiteral's
			// StringSlice) or an owned local/parameter; the emitter
			// lowers both combinations to the same format!("{}{}", ...)
			// call, so no internal-representation mismatch exists here.
			return typing.String
		}
		return a.arithmeticResult(n, lt, rt)
	default:
		return a.arithmeticResult(n, lt, rt)
	}
}

func (a *Analyzer) arithmeticResult(n *ir.ExprBinary, lt, rt typing.DataType) typing.DataType {
	lp, lok := lt.(typing.Primitive)
	rp, rok := rt.(typing.Primitive)
	if !lok || !rok || !lp.IsNumeric() || !rp.IsNumeric() {
		if !typing.IsUnknown(lt) && !typing.IsUnknown(rt) && !typing.Equals(lt, rt) {
			a.report.Errorf(diag.ETypeMismatch, n.Pos(), "operands of binary expression have incompatible types %s and %s", lt.Repr(), rt.Repr())
		}
		return lt
	}
	if lp.Kind == typing.PrimFloat || rp.Kind == typing.PrimFloat {
		return typing.Float
	}
	return typing.Int
}

func (a *Analyzer) iterElemType(iter ir.Expr) typing.DataType {
	it := a.inferExpr(iter)
	a.Notes.Types[iter] = it
	switch t := it.(type) {
	case typing.Sequence:
		return t.Elem
	case typing.UnorderedSet:
		return t.Elem
	case typing.Mapping:
		return t.Key
	default:
		return typing.Unknown{Label: "iteration-element"}
	}
}
