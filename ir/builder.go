package ir

import (
	"fmt"

	"ferroc/diag"
	"ferroc/syntax"
)

// BuildModule lowers one parsed SRC file into a TIR Module, grounded on the
// teacher's AST-walk lowering in sem/ (see DESIGN.md). Lowering normalizes
// surface-syntax forms the analyzer should never have to special-case
// again: augmented assignment is desugared into a plain assignment of a
// binary expression, decorators other than `@dataclass` are lifted to
// pass-through Attributes, and subscript index literals are tagged for the
// analyzer's later index-cast annotation.
func BuildModule(path string, f *syntax.File, report *diag.Report) *Module {
	b := &builder{path: path, report: report}
	m := &Module{Path: path}
	for _, imp := range f.Imports {
		m.Imports = append(m.Imports, Import{
			Span:       b.span(imp.Pos_),
			ModulePath: dotted(imp.Module),
			Names:      importedNames(imp.Names),
			Alias:      imp.ModAlias,
		})
	}
	for _, d := range f.Decls {
		if def := b.buildDecl(d); def != nil {
			m.Defs = append(m.Defs, def)
		}
	}
	if _, ok := m.MainFunc(); ok {
		m.Entry = true
	}
	return m
}

func dotted(parts []string) string {
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}

func importedNames(ns []syntax.ImportedName) []string {
	var out []string
	for _, n := range ns {
		if n.Alias != "" {
			out = append(out, n.Name+" as "+n.Alias)
		} else {
			out = append(out, n.Name)
		}
	}
	return out
}

type builder struct {
	path   string
	report *diag.Report
}

func (b *builder) span(p syntax.Pos) *diag.Span {
	return &diag.Span{File: b.path, StartLn: p.StartLn, StartCol: p.StartCol, EndLn: p.EndLn, EndCol: p.EndCol}
}

func (b *builder) errf(p syntax.Pos, kind diag.Kind, format string, args ...any) {
	b.report.Errorf(kind, b.span(p), format, args...)
}

func (b *builder) buildDecl(d syntax.Decl) Def {
	switch n := d.(type) {
	case *syntax.FuncDecl:
		return b.buildFunc(n, "")
	case *syntax.ClassDecl:
		return b.buildClass(n)
	case *syntax.ConstDecl:
		return &DefConst{
			defBase:    defBase{Span: b.span(n.Pos_), Name: n.Name},
			Annotation: b.buildTypeExpr(n.Annotation),
			Value:      b.buildExpr(n.Value),
		}
	default:
		return nil
	}
}

// buildFunc lowers a function or method. receiverOf is the enclosing
// class's name for methods, empty for free functions.
func (b *builder) buildFunc(n *syntax.FuncDecl, receiverOf string) *DefFunc {
	attrs, isStatic := b.liftDecorators(n.Decorators)
	if n.Return == nil {
		b.errf(n.Pos_, diag.EMissingAnnotation, "function %q has no return type annotation", n.Name)
	}
	fn := &DefFunc{
		defBase:    defBase{Span: b.span(n.Pos_), Name: n.Name},
		Attrs:      attrs,
		IsAsync:    n.IsAsync,
		IsMethod:   receiverOf != "" && !isStatic,
		ReceiverOf: receiverOf,
		Return:     b.buildTypeExpr(n.Return),
	}
	for _, p := range n.Params {
		if p.Annotation == nil && p.Name != "self" {
			b.errf(p.Pos_, diag.EMissingAnnotation, "parameter %q has no type annotation", p.Name)
		}
		fn.Params = append(fn.Params, Param{
			Name: p.Name, Annotation: b.buildTypeExpr(p.Annotation), Default: b.buildExpr(p.Default),
		})
	}
	fn.Body = b.buildBlock(n.Body)
	return fn
}

// liftDecorators lifts every decorator other than `@dataclass` /
// `@staticmethod` into a pass-through Attribute re-emitted verbatim above
// the definition (spec.md §4.1's `# #[...]` comment form generalized to
// decorators); `@staticmethod` instead flips a builder-local flag so
// buildFunc can mark the method as not taking `self`.
func (b *builder) liftDecorators(decs []syntax.Decorator) ([]Attribute, bool) {
	var attrs []Attribute
	static := false
	for _, d := range decs {
		if d.Name == "staticmethod" {
			static = true
			continue
		}
		if d.Name == "dataclass" {
			continue // consumed by buildClass, not re-emitted
		}
		attrs = append(attrs, Attribute{Text: d.Name})
	}
	return attrs, static
}

func (b *builder) buildClass(n *syntax.ClassDecl) *DefClass {
	if len(n.Bases) > 0 {
		b.errf(n.Pos_, diag.EUnsupportedConstruct, "class %q: inheritance is not supported", n.Name)
	}
	isDataclass := false
	var attrs []Attribute
	for _, d := range n.Decorators {
		if d.Name == "dataclass" {
			isDataclass = true
			continue
		}
		attrs = append(attrs, Attribute{Text: d.Name})
	}
	c := &DefClass{
		defBase:     defBase{Span: b.span(n.Pos_), Name: n.Name},
		Attrs:       attrs,
		IsDataclass: isDataclass,
	}
	for _, fld := range n.Fields {
		if fld.Annotation == nil {
			b.errf(fld.Pos_, diag.EMissingAnnotation, "field %q of %q has no type annotation", fld.Name, n.Name)
		}
		c.Fields = append(c.Fields, Field{
			Name: fld.Name, Annotation: b.buildTypeExpr(fld.Annotation), Default: b.buildExpr(fld.Default),
		})
	}
	for _, m := range n.Methods {
		c.Methods = append(c.Methods, b.buildFunc(m, n.Name))
	}
	return c
}

func (b *builder) buildTypeExpr(t syntax.TypeExpr) TypeExpr {
	if t == nil {
		return nil
	}
	switch n := t.(type) {
	case *syntax.TypeName:
		te := &TypeName{typeExprBase: typeExprBase{Span: b.span(n.Position())}, Name: n.Name}
		for _, g := range n.Generics {
			te.Generics = append(te.Generics, b.buildTypeExpr(g))
		}
		return te
	case *syntax.TypeUnionNone:
		return &TypeOptional{typeExprBase: typeExprBase{Span: b.span(n.Position())}, Inner: b.buildTypeExpr(n.Inner)}
	default:
		return nil
	}
}

func (b *builder) buildBlock(stmts []syntax.Stmt) []Stmt {
	var out []Stmt
	for _, s := range stmts {
		if st := b.buildStmt(s); st != nil {
			out = append(out, st)
		}
	}
	return out
}

func (b *builder) buildStmt(s syntax.Stmt) Stmt {
	switch n := s.(type) {
	case *syntax.VarDeclStmt:
		return &StmtVarDecl{
			stmtBase: stmtBase{Span: b.span(n.Pos_)}, Name: n.Name,
			Annotation: b.buildTypeExpr(n.Annotation), Value: b.buildExpr(n.Value),
		}
	case *syntax.AssignStmt:
		return b.buildAssign(n)
	case *syntax.ExprStmt:
		return &StmtExpr{stmtBase: stmtBase{Span: b.span(n.Pos_)}, Value: b.buildExpr(n.Value)}
	case *syntax.IfStmt:
		st := &StmtIf{stmtBase: stmtBase{Span: b.span(n.Pos_)}}
		for _, br := range n.Branches {
			st.Branches = append(st.Branches, CondBranch{Cond: b.buildExpr(br.Cond), Body: b.buildBlock(br.Body)})
		}
		st.Else = b.buildBlock(n.Else)
		return st
	case *syntax.WhileStmt:
		return &StmtWhile{stmtBase: stmtBase{Span: b.span(n.Pos_)}, Cond: b.buildExpr(n.Cond), Body: b.buildBlock(n.Body)}
	case *syntax.ForStmt:
		return &StmtFor{
			stmtBase: stmtBase{Span: b.span(n.Pos_)}, Name: n.Name,
			Iter: b.buildExpr(n.Iter), Body: b.buildBlock(n.Body),
		}
	case *syntax.BreakStmt:
		return &StmtControl{stmtBase: stmtBase{Span: b.span(n.Pos_)}, Kind: CtrlBreak}
	case *syntax.ContinueStmt:
		return &StmtControl{stmtBase: stmtBase{Span: b.span(n.Pos_)}, Kind: CtrlContinue}
	case *syntax.PassStmt:
		return nil // pass carries no semantics in TIR; it is simply dropped
	case *syntax.ReturnStmt:
		return &StmtReturn{stmtBase: stmtBase{Span: b.span(n.Pos_)}, Value: b.buildExpr(n.Value)}
	case *syntax.WithStmt:
		return &StmtScoped{
			stmtBase: stmtBase{Span: b.span(n.Pos_)}, BindName: n.AsName,
			Resource: b.buildExpr(n.Resource), Body: b.buildBlock(n.Body),
		}
	case *syntax.MatchStmt:
		st := &StmtMatch{stmtBase: stmtBase{Span: b.span(n.Pos_)}, Scrutinee: b.buildExpr(n.Scrutinee)}
		for _, c := range n.Cases {
			st.Cases = append(st.Cases, MatchCase{
				Literal: b.buildExpr(c.Literal), BindName: c.BindName, Body: b.buildBlock(c.Body),
			})
		}
		return st
	default:
		return nil
	}
}

// buildAssign desugars augmented assignment (`x += 1`) into a plain
// assignment of a synthesized BinaryExpr (spec.md §4.2's normalization
// rule), so every later stage only ever sees StmtAssign with AKEq.
func (b *builder) buildAssign(n *syntax.AssignStmt) Stmt {
	targets := make([]Expr, len(n.Targets))
	for i, t := range n.Targets {
		targets[i] = b.buildExpr(t)
	}
	value := b.buildExpr(n.Value)
	if n.Op == syntax.AssignPlain {
		return &StmtAssign{stmtBase: stmtBase{Span: b.span(n.Pos_)}, Targets: targets, Value: value, Kind: AKEq}
	}
	if len(targets) != 1 {
		b.errf(n.Pos_, diag.EUnsupportedConstruct, "augmented assignment cannot target a tuple")
		return &StmtAssign{stmtBase: stmtBase{Span: b.span(n.Pos_)}, Targets: targets, Value: value, Kind: AKEq}
	}
	op, ok := augBinOp[n.Op]
	if !ok {
		b.errf(n.Pos_, diag.EUnsupportedConstruct, "unsupported augmented assignment operator")
		op = BinAdd
	}
	desugared := &ExprBinary{exprBase: exprBase{Span: b.span(n.Pos_)}, Op: op, Left: targets[0], Right: value}
	return &StmtAssign{stmtBase: stmtBase{Span: b.span(n.Pos_)}, Targets: targets, Value: desugared, Kind: AKEq}
}

var augBinOp = map[syntax.AssignOp]BinaryOp{
	syntax.AugAdd:      BinAdd,
	syntax.AugSub:      BinSub,
	syntax.AugMul:      BinMul,
	syntax.AugDiv:      BinDiv,
	syntax.AugFloorDiv: BinFloorDiv,
	syntax.AugMod:      BinMod,
}

func (b *builder) buildExpr(e syntax.Expr) Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *syntax.Literal:
		lit := &ExprLiteral{exprBase: exprBase{Span: b.span(n.Pos_)}, Kind: LiteralKind(n.Kind), Text: n.Text}
		return lit
	case *syntax.FString:
		fs := &ExprFString{exprBase: exprBase{Span: b.span(n.Pos_)}}
		for _, seg := range n.Segments {
			fs.Segments = append(fs.Segments, FStringSegment{Literal: seg.Literal, Value: b.buildExpr(seg.Value), Spec: seg.Spec})
		}
		return fs
	case *syntax.Ident:
		return &ExprIdent{exprBase: exprBase{Span: b.span(n.Pos_)}, Name: n.Name}
	case *syntax.AttrExpr:
		return &ExprAttr{exprBase: exprBase{Span: b.span(n.Pos_)}, Root: b.buildExpr(n.Root), Attr: n.Attr}
	case *syntax.SubscriptExpr:
		idx := b.buildExpr(n.Index)
		if lit, ok := idx.(*ExprLiteral); ok && lit.Kind == LitInt {
			lit.IsSubscriptIndex = true
		}
		return &ExprSubscript{exprBase: exprBase{Span: b.span(n.Pos_)}, Root: b.buildExpr(n.Root), Index: idx}
	case *syntax.UnaryExpr:
		return &ExprUnary{exprBase: exprBase{Span: b.span(n.Pos_)}, Op: UnaryOp(n.Op), Operand: b.buildExpr(n.Operand)}
	case *syntax.BinExpr:
		return &ExprBinary{exprBase: exprBase{Span: b.span(n.Pos_)}, Op: BinaryOp(n.Op), Left: b.buildExpr(n.Left), Right: b.buildExpr(n.Right)}
	case *syntax.MembershipExpr:
		return &ExprMembership{
			exprBase: exprBase{Span: b.span(n.Pos_)}, Elem: b.buildExpr(n.Elem),
			Container: b.buildExpr(n.Container), Negated: n.Negated,
		}
	case *syntax.CondExpr:
		return &ExprConditional{
			exprBase: exprBase{Span: b.span(n.Pos_)}, Cond: b.buildExpr(n.Cond),
			Then: b.buildExpr(n.Then), Else: b.buildExpr(n.Else),
		}
	case *syntax.TupleExpr:
		ex := &ExprTuple{exprBase: exprBase{Span: b.span(n.Pos_)}}
		for _, el := range n.Elems {
			ex.Elems = append(ex.Elems, b.buildExpr(el))
		}
		return ex
	case *syntax.SeqExpr:
		ex := &ExprSeq{exprBase: exprBase{Span: b.span(n.Pos_)}}
		for _, el := range n.Elems {
			ex.Elems = append(ex.Elems, b.buildExpr(el))
		}
		return ex
	case *syntax.MapExpr:
		ex := &ExprMap{exprBase: exprBase{Span: b.span(n.Pos_)}}
		for _, ent := range n.Entries {
			ex.Entries = append(ex.Entries, MapEntry{Key: b.buildExpr(ent.Key), Value: b.buildExpr(ent.Value)})
		}
		return ex
	case *syntax.SetExpr:
		ex := &ExprSet{exprBase: exprBase{Span: b.span(n.Pos_)}}
		for _, el := range n.Elems {
			ex.Elems = append(ex.Elems, b.buildExpr(el))
		}
		return ex
	case *syntax.CallExpr:
		call := &ExprCall{exprBase: exprBase{Span: b.span(n.Pos_)}, Callee: b.buildExpr(n.Callee)}
		for _, a := range n.Args {
			call.Args = append(call.Args, Arg{Name: a.Name, Value: b.buildExpr(a.Value)})
		}
		return call
	case *syntax.AwaitExpr:
		return &ExprAwait{exprBase: exprBase{Span: b.span(n.Pos_)}, Value: b.buildExpr(n.Value)}
	default:
		panic(fmt.Sprintf("ir.buildExpr: unhandled surface expression %T", e))
	}
}
