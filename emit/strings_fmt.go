package emit

import "ferroc/ir"

// fstringParts renders a formatted string literal's segments into a
// format-macro template and its ordered argument list (spec.md §4.5's
// "Format strings" contract): each interpolation `{expr:spec}` becomes
// `{:spec}` in the template (bare `{}` when spec is empty) with `expr`
// appended to the argument list; literal braces in plain-text segments are
// escaped by doubling, matching Rust's format! escaping convention.
func (e *Emitter) fstringParts(n *ir.ExprFString) (string, []string) {
	format := ""
	var args []string
	for _, seg := range n.Segments {
		if seg.Value == nil {
			format += escapeFormatBraces(seg.Literal)
			continue
		}
		if seg.Spec != "" {
			format += "{:" + seg.Spec + "}"
		} else {
			format += "{}"
		}
		args = append(args, e.emitExpr(seg.Value))
	}
	return format, args
}

func escapeFormatBraces(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '{' || c == '}' {
			out = append(out, c, c)
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

// emitFString lowers a formatted string literal to the DST formatting
// macro for values: format!(...) when it has interpolations, or a plain
// owned-string literal when it turned out to have none.
func (e *Emitter) emitFString(n *ir.ExprFString) string {
	format, args := e.fstringParts(n)
	if len(args) == 0 {
		return `"` + format + `".to_string()`
	}
	return `format!("` + format + `", ` + joinArgs(args) + `)`
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out
}
