package emit

import (
	"strings"

	"ferroc/analyze"
	"ferroc/ir"
	"ferroc/typing"
)

// emitClass lowers a class/dataclass definition to a record struct plus an
// associated-functions impl block (spec.md §4.5's "Class emission"
// contract).
func (e *Emitter) emitClass(d *ir.DefClass) {
	for _, attr := range d.Attrs {
		e.writeln(attr.Text)
	}
	if !hasDeriveAttr(d.Attrs) {
		e.writeln("#[derive(Debug, Clone)]")
	}
	e.writeln("pub struct " + d.Name + " {")
	e.indent++
	for _, f := range d.Fields {
		e.writeln("pub " + f.Name + ": " + e.renderType(e.resolveTypeExpr(f.Annotation)) + ",")
	}
	e.indent--
	e.writeln("}")
	e.writeln("")

	hasInit := false
	for _, m := range d.Methods {
		if m.Name == "__init__" {
			hasInit = true
		}
	}

	if len(d.Methods) == 0 && !(d.IsDataclass && len(d.Fields) > 0) {
		return
	}

	e.writeln("impl " + d.Name + " {")
	e.indent++
	if d.IsDataclass && !hasInit && len(d.Fields) > 0 {
		e.emitDataclassConstructor(d)
		e.writeln("")
	}
	for _, m := range d.Methods {
		if m.Name == "__enter__" || m.Name == "__exit__" {
			// Drop handles scoped-resource release; see emitScoped.
			continue
		}
		e.emitMethod(m, d)
		e.writeln("")
	}
	e.indent--
	e.writeln("}")
}

func hasDeriveAttr(attrs []ir.Attribute) bool {
	for _, a := range attrs {
		if strings.Contains(a.Text, "derive") {
			return true
		}
	}
	return false
}

// resolveTypeExpr renders a syntactic type annotation (a class field, a
// parameter, or a return type) into its TIR DataType. This needs only the
// stub registry, not scope state, so it is shared with the analyzer via
// analyze.ResolveTypeExpr rather than re-implemented here.
func (e *Emitter) resolveTypeExpr(t ir.TypeExpr) typing.DataType {
	return analyze.ResolveTypeExpr(t, e.stubs)
}

// emitDataclassConstructor synthesizes a `new` associated function from a
// dataclass's field list when the class declares no explicit __init__.
func (e *Emitter) emitDataclassConstructor(d *ir.DefClass) {
	params := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		params[i] = f.Name + ": " + e.renderType(e.resolveTypeExpr(f.Annotation))
	}
	e.writeln("pub fn new(" + strings.Join(params, ", ") + ") -> Self {")
	e.indent++
	e.writeln("Self {")
	e.indent++
	for _, f := range d.Fields {
		e.writeln(f.Name + ",")
	}
	e.indent--
	e.writeln("}")
	e.indent--
	e.writeln("}")
}

// emitMethod lowers one method within cls's impl block. __init__ is
// translated to `new`, with its body's `self.field = value` assignments
// collected into a Self{...} struct literal rather than emitted as
// ordinary statements.
func (e *Emitter) emitMethod(m *ir.DefFunc, cls *ir.DefClass) {
	for _, attr := range m.Attrs {
		e.writeln(attr.Text)
	}
	name := rustMethodName(m.Name)
	isCtor := m.Name == "__init__"

	params := e.renderMethodParams(m, isCtor)
	ret := e.renderMethodReturn(m, isCtor)

	e.writeln("pub fn " + name + "(" + params + ")" + ret + " {")
	e.indent++
	if isCtor {
		e.emitConstructorBody(m)
	} else {
		prevReturn := e.currentReturn
		e.currentReturn = e.resolveTypeExpr(m.Return)
		e.emitStmts(m.Body)
		e.currentReturn = prevReturn
	}
	e.indent--
	e.writeln("}")
}

func (e *Emitter) renderMethodParams(m *ir.DefFunc, isCtor bool) string {
	var parts []string
	if !isCtor && m.IsMethod {
		if m.Mutates {
			parts = append(parts, "&mut self")
		} else {
			parts = append(parts, "&self")
		}
	}
	for _, p := range m.Params {
		if p.Name == "self" {
			continue
		}
		parts = append(parts, p.Name+": "+e.renderType(e.resolveTypeExpr(p.Annotation)))
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) renderMethodReturn(m *ir.DefFunc, isCtor bool) string {
	if isCtor {
		return " -> Self"
	}
	retType := e.resolveTypeExpr(m.Return)
	rendered := e.renderType(retType)
	if rendered == "()" {
		return ""
	}
	return " -> " + rendered
}

// emitConstructorBody extracts `self.field = value` assignments from an
// __init__ body into a Self{...} literal, using field-init shorthand when
// the assigned value is a bare identifier matching the field name.
func (e *Emitter) emitConstructorBody(m *ir.DefFunc) {
	e.writeln("Self {")
	e.indent++
	for _, s := range m.Body {
		assign, ok := s.(*ir.StmtAssign)
		if !ok || len(assign.Targets) != 1 {
			continue
		}
		attr, ok := assign.Targets[0].(*ir.ExprAttr)
		if !ok {
			continue
		}
		if root, ok := attr.Root.(*ir.ExprIdent); !ok || root.Name != "self" {
			continue
		}
		value := e.emitExpr(assign.Value)
		if value == attr.Attr {
			e.writeln(attr.Attr + ",")
		} else {
			e.writeln(attr.Attr + ": " + value + ",")
		}
	}
	e.indent--
	e.writeln("}")
}

var rustKeywords = map[string]bool{
	"use": true, "type": true, "impl": true, "trait": true, "mod": true,
	"pub": true, "fn": true, "let": true, "mut": true, "ref": true,
	"move": true, "self": true, "super": true, "crate": true, "as": true,
	"break": true, "continue": true, "else": true, "for": true, "if": true,
	"in": true, "loop": true, "match": true, "return": true, "while": true,
	"async": true, "await": true, "dyn": true, "struct": true, "enum": true,
	"union": true, "const": true, "static": true, "extern": true,
	"unsafe": true, "where": true,
}

func rustMethodName(name string) string {
	if name == "__init__" {
		return "new"
	}
	if rustKeywords[name] {
		return "r#" + name
	}
	return name
}

// emitFunc lowers a standalone (non-method) function definition.
func (e *Emitter) emitFunc(fn *ir.DefFunc) {
	for _, attr := range fn.Attrs {
		e.writeln(attr.Text)
	}
	if e.isAsyncMain(fn) {
		e.writeln("#[tokio::main]")
	} else if fn.IsAsync {
		e.addImport("tokio")
	}

	asyncPrefix := ""
	if fn.IsAsync {
		asyncPrefix = "async "
	}

	params := e.renderMethodParams(fn, false)
	ret := e.renderMethodReturn(fn, false)
	e.writeln("pub " + asyncPrefix + "fn " + rustMethodName(fn.Name) + "(" + params + ")" + ret + " {")
	e.indent++
	prevReturn := e.currentReturn
	e.currentReturn = e.resolveTypeExpr(fn.Return)
	e.emitStmts(fn.Body)
	e.currentReturn = prevReturn
	e.indent--
	e.writeln("}")
}

// isAsyncMain reports whether fn is the entry module's async main
// function with no pass-through attribute already supplying a runtime
// entry attribute, per spec.md §4.5's "Async main" contract.
func (e *Emitter) isAsyncMain(fn *ir.DefFunc) bool {
	if fn.Name != "main" || !fn.IsAsync || !e.notes.AsyncMain {
		return false
	}
	for _, a := range fn.Attrs {
		if strings.Contains(a.Text, "main") {
			return false
		}
	}
	return true
}
