package emit

import (
	"strings"

	"ferroc/analyze"
	"ferroc/ir"
	"ferroc/stubs"
	"ferroc/typing"
)

// emitCall renders a function or method application. A bare-name call
// tries, in order, the print special case, class-constructor rewriting,
// stub-template expansion, then an ordinary call; a method-style call
// tries a method stub keyed by receiver type, a free-function stub under
// the dotted name, the built-in string-method translation table, then an
// ordinary method call. It then appends the
// error-propagation operator if the analyzer tagged this call as a
// propagation site (spec.md §4.5).
func (e *Emitter) emitCall(n *ir.ExprCall) string {
	rendered := e.renderCall(n)
	if e.notes.Propagation[n] {
		rendered += "?"
	}
	return rendered
}

func (e *Emitter) renderCall(n *ir.ExprCall) string {
	switch callee := n.Callee.(type) {
	case *ir.ExprIdent:
		if callee.Name == "print" {
			return e.emitPrint(n)
		}
		if e.classNames[callee.Name] {
			return callee.Name + "::new(" + e.emitArgs(n.Args) + ")"
		}
		if pkg, mapping, ok := e.stubs.FunctionOwner(callee.Name); ok {
			return e.expandStub(pkg, mapping, "", n.Args)
		}
		return callee.Name + "(" + e.emitArgs(n.Args) + ")"

	case *ir.ExprAttr:
		rootType := e.notes.TypeOf(callee.Root)
		typeName := renderTypePath(rootType)

		if pkg, mapping, ok := e.stubs.MethodOwner(typeName, callee.Attr); ok {
			self := e.emitExpr(callee.Root)
			return e.expandStub(pkg, mapping, self, n.Args)
		}
		// Qualified stdlib/module-level function call (`time.sleep(...)`):
		// the module name is the "receiver" syntactically but the
		// mapping is registered as a free function under its full
		// dotted name.
		if pkg, mapping, ok := e.stubs.FunctionOwner(typeName + "." + callee.Attr); ok {
			return e.expandStub(pkg, mapping, "", n.Args)
		}
		if tmpl, ok := stringMethodTranslation[callee.Attr]; ok && e.isStringType(rootType) {
			return e.expandStringMethod(tmpl, e.emitExpr(callee.Root), n.Args)
		}

		recv := e.emitExpr(callee.Root)
		return recv + "." + callee.Attr + "(" + e.emitArgs(n.Args) + ")"

	default:
		return e.emitExpr(n.Callee) + "(" + e.emitArgs(n.Args) + ")"
	}
}

// emitArgs renders a call's positional arguments, applying the analyzer's
// borrow-mode annotation to each one (spec.md §4.4's borrow-hint rule).
func (e *Emitter) emitArgs(args []ir.Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = e.emitBorrowedArg(a.Value)
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) emitBorrowedArg(val ir.Expr) string {
	rendered := e.emitExpr(val)
	switch e.notes.Borrow[val] {
	case analyze.BySharedBorrow, analyze.ByExclusiveBorrow:
		return "&" + rendered
	default:
		return rendered
	}
}

// emitPrint lowers a print(...) call to println!, matching spec.md §4.5's
// format-string contract: a single f-string argument becomes its own
// format/args pair; any other argument list is joined with "{} " per value.
func (e *Emitter) emitPrint(n *ir.ExprCall) string {
	if len(n.Args) == 1 {
		if fstr, ok := n.Args[0].Value.(*ir.ExprFString); ok {
			format, args := e.fstringParts(fstr)
			if len(args) == 0 {
				return `println!("` + format + `")`
			}
			return `println!("` + format + `", ` + strings.Join(args, ", ") + `)`
		}
	}
	parts := make([]string, len(n.Args))
	placeholders := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = e.emitExpr(a.Value)
		placeholders[i] = "{}"
	}
	return `println!("` + strings.Join(placeholders, " ") + `", ` + strings.Join(parts, ", ") + `)`
}

// expandStub renders a stub-resolved call by substituting the receiver and
// argument text into the mapping's template, then merges the owning
// package's required imports and build dependencies into this file's
// requirement sets (testable properties 3 and 4: manifest/import closure).
func (e *Emitter) expandStub(pkg *stubs.Package, mapping stubs.FuncMapping, self string, args []ir.Arg) string {
	argTexts := make([]string, len(args))
	for i, a := range args {
		argTexts[i] = e.emitBorrowedArg(a.Value)
	}
	rendered := mapping.Expand(self, argTexts)

	for _, imp := range mapping.Imports {
		e.addImport(imp)
	}
	for _, dep := range pkg.Dependencies {
		e.addDep(dep)
	}

	return rendered
}

func (e *Emitter) expandStringMethod(template, recv string, args []ir.Arg) string {
	argTexts := make([]string, len(args))
	for i, a := range args {
		argTexts[i] = e.emitExpr(a.Value)
	}
	out := strings.ReplaceAll(template, "{recv}", recv)
	out = strings.ReplaceAll(out, "{args}", strings.Join(argTexts, ", "))
	return out
}

func (e *Emitter) isStringType(t typing.DataType) bool {
	p, ok := t.(typing.Primitive)
	return ok && p.IsString()
}

// renderTypePath reduces a resolved TIR type to the lookup key the stub
// registry indexes method/function mappings under — the same scheme
// analyze.namedTypePath uses, so a call resolves identically in both
// passes.
func renderTypePath(t typing.DataType) string {
	switch n := t.(type) {
	case typing.Named:
		return n.Path
	case typing.Primitive:
		return n.Repr()
	case typing.Sequence:
		return "list"
	case typing.Mapping:
		return "dict"
	case typing.UnorderedSet:
		return "set"
	default:
		return t.Repr()
	}
}
