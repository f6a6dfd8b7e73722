package syntax

import "ferroc/diag"

// parseFString splits a raw FSTRING token's Value into literal text runs
// and `{expr[:spec]}` interpolations, parsing each interpolation with a
// fresh sub-parser over the bracketed substring. The scanner deliberately
// leaves interpolations unprocessed (see token.go) so this stage can reuse
// the ordinary expression grammar instead of threading format-string state
// through the main token stream.
func (p *Parser) parseFString(t *Token) *FString {
	raw := t.Value
	var segs []FStringSegment
	var lit []rune
	runes := []rune(raw)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == '{' && i+1 < len(runes) && runes[i+1] == '{':
			lit = append(lit, '{')
			i += 2
		case c == '}' && i+1 < len(runes) && runes[i+1] == '}':
			lit = append(lit, '}')
			i += 2
		case c == '{':
			if len(lit) > 0 {
				segs = append(segs, FStringSegment{Literal: string(lit)})
				lit = nil
			}
			j := i + 1
			depth := 1
			for j < len(runes) && depth > 0 {
				switch runes[j] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						goto found
					}
				}
				j++
			}
		found:
			if depth != 0 {
				p.errf(t, "unterminated interpolation in f-string")
				i = len(runes)
				break
			}
			inner := string(runes[i+1 : j])
			exprText, spec := splitFormatSpec(inner)
			segs = append(segs, FStringSegment{Value: p.parseSubExpr(t, exprText), Spec: spec})
			i = j + 1
		default:
			lit = append(lit, c)
			i++
		}
	}
	if len(lit) > 0 {
		segs = append(segs, FStringSegment{Literal: string(lit)})
	}
	return &FString{Pos_: t.Pos, Segments: segs}
}

// splitFormatSpec separates `expr` from `expr:spec`, respecting bracket
// nesting so a spec-looking colon inside e.g. a slice or dict literal isn't
// mistaken for the format-spec separator.
func splitFormatSpec(s string) (expr, spec string) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if depth == 0 {
				return s[:i], s[i+1:]
			}
		}
	}
	return s, ""
}

// parseSubExpr parses a standalone expression string in the context of an
// f-string interpolation, reusing the ordinary expression grammar via a
// throwaway scanner-less sub-parser fed from a child scanner over the
// substring.
func (p *Parser) parseSubExpr(host *Token, text string) Expr {
	sub := &Parser{report: p.report, file: p.file}
	sc := newStringScanner(text, host.Pos)
	sc.report = p.report
	sub.sc = sc
	sub.advance()
	e := sub.parseExpr()
	for sub.at(NEWLINE) {
		sub.advance()
	}
	if !sub.at(EOF) {
		p.report.Add(diag.Diagnostic{
			Kind:    diag.EParse,
			Span:    p.span(host),
			Message: "unexpected trailing content in f-string interpolation",
		})
	}
	return e
}
