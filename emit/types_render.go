package emit

import (
	"strings"

	"ferroc/typing"
)

// renderType renders one TIR type to its canonical DST rendering
// (spec.md §4.5's "Type rendering" contract). Each type constructor has
// exactly one DST form; containers recurse into their element types.
func (e *Emitter) renderType(t typing.DataType) string {
	switch dt := t.(type) {
	case typing.Primitive:
		return e.renderPrimitive(dt)
	case typing.Sequence:
		return "Vec<" + e.renderType(dt.Elem) + ">"
	case typing.Mapping:
		e.addImport("std::collections::HashMap")
		return "HashMap<" + e.renderType(dt.Key) + ", " + e.renderType(dt.Value) + ">"
	case typing.UnorderedSet:
		e.addImport("std::collections::HashSet")
		return "HashSet<" + e.renderType(dt.Elem) + ">"
	case typing.Tuple:
		parts := make([]string, len(dt.Elems))
		for i, el := range dt.Elems {
			parts[i] = e.renderType(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case typing.Optional:
		return "Option<" + e.renderType(dt.Inner) + ">"
	case typing.Fallible:
		return "Result<" + e.renderType(dt.Ok) + ", " + e.renderType(dt.Err) + ">"
	case typing.Shared:
		return "Rc<" + e.renderType(dt.Inner) + ">"
	case typing.Guarded:
		e.addImport("tokio::sync::Mutex")
		return "Mutex<" + e.renderType(dt.Inner) + ">"
	case typing.Named:
		return e.renderNamed(dt)
	case typing.Function:
		return "fn(" + e.renderParamTypes(dt.Params) + ") -> " + e.renderType(dt.Return)
	case typing.Unknown:
		// Should not survive analysis (spec.md §3 invariant); render as
		// the DST unit type rather than panic, so a malformed analyzer
		// pass fails at the DST compiler instead of here.
		return "()"
	default:
		return "()"
	}
}

func (e *Emitter) renderParamTypes(params []typing.DataType) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = e.renderType(p)
	}
	return strings.Join(parts, ", ")
}

func (e *Emitter) renderPrimitive(p typing.Primitive) string {
	switch p.Kind {
	case typing.PrimBool:
		return "bool"
	case typing.PrimInt:
		return "i64"
	case typing.PrimFloat:
		return "f64"
	case typing.PrimUnit:
		return "()"
	case typing.PrimNever:
		return "!"
	case typing.PrimStringSlice:
		return "&str"
	case typing.PrimString:
		return "String"
	default:
		return "()"
	}
}

// renderNamed renders a user- or stub-defined nominal type, consulting the
// stub type-rewrite table before falling back to the class's own name.
func (e *Emitter) renderNamed(n typing.Named) string {
	name := n.Path
	if e.stubs != nil {
		if m, ok := e.stubs.LookupType(n.Path); ok {
			name = m.DstName
		}
	}
	if len(n.Generics) == 0 {
		return name
	}
	parts := make([]string, len(n.Generics))
	for i, g := range n.Generics {
		parts[i] = e.renderType(g)
	}
	return name + "<" + strings.Join(parts, ", ") + ">"
}
