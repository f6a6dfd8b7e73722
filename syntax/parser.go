package syntax

import (
	"ferroc/diag"
)

// Parser is a hand-written recursive-descent parser over the token stream
// produced by Scanner. Unlike the teacher's generated LALR(1) parser
// (dropped; see DESIGN.md), the accepted grammar here is small and fixed,
// so a direct recursive-descent implementation is the idiomatic choice: it
// reads like the grammar it implements and needs no generated tables.
type Parser struct {
	sc     *Scanner
	report *diag.Report
	file   string

	tok  *Token // current token
	next *Token // one-token lookahead, filled lazily
}

// ParseFile tokenizes and parses one SRC file into a surface AST.
func ParseFile(fpath string, report *diag.Report) (*File, bool) {
	sc, ok := NewScanner(fpath, report)
	if !ok {
		return nil, false
	}
	defer sc.Close()

	p := &Parser{sc: sc, report: report, file: fpath}
	p.advance()

	f := p.parseFile()
	return f, !report.HasErrors()
}

func (p *Parser) advance() {
	if p.next != nil {
		p.tok = p.next
		p.next = nil
		return
	}
	p.tok = p.sc.ReadToken()
}

func (p *Parser) peek() *Token {
	if p.next == nil {
		p.next = p.sc.ReadToken()
	}
	return p.next
}

func (p *Parser) at(k Kind) bool { return p.tok.Kind == k }

func (p *Parser) span(t *Token) *diag.Span {
	return &diag.Span{File: p.file, StartLn: t.Pos.StartLn, StartCol: t.Pos.StartCol, EndLn: t.Pos.EndLn, EndCol: t.Pos.EndCol}
}

func (p *Parser) errf(t *Token, format string, args ...any) {
	p.report.Errorf(diag.EParse, p.span(t), format, args...)
}

// expect consumes the current token if it has kind k, else records E_PARSE
// and leaves the stream positioned on the offending token (panic-free error
// recovery: callers simply continue, accepting possibly-desynced output,
// since every E_PARSE aborts emission regardless).
func (p *Parser) expect(k Kind) *Token {
	if p.tok.Kind != k {
		p.errf(p.tok, "expected %s, found %s", k, p.tok.Kind)
		return p.tok
	}
	t := p.tok
	p.advance()
	return t
}

func (p *Parser) skipNewlines() {
	for p.at(NEWLINE) {
		p.advance()
	}
}

// -----------------------------------------------------------------------
// File / imports / top-level decls

func (p *Parser) parseFile() *File {
	f := &File{}
	p.skipNewlines()
	for p.at(KwImport) || p.at(KwFrom) {
		f.Imports = append(f.Imports, p.parseImport())
		p.skipNewlines()
	}
	for !p.at(EOF) {
		if d := p.parseDecl(); d != nil {
			f.Decls = append(f.Decls, d)
		}
		p.skipNewlines()
	}
	return f
}

func (p *Parser) parseDottedPath() []string {
	names := []string{p.expect(IDENT).Value}
	for p.at(Dot) {
		p.advance()
		names = append(names, p.expect(IDENT).Value)
	}
	return names
}

func (p *Parser) parseImport() *ImportStmt {
	start := p.tok
	imp := &ImportStmt{}
	if p.at(KwFrom) {
		p.advance()
		imp.Module = p.parseDottedPath()
		p.expect(KwImport)
		for {
			name := p.expect(IDENT).Value
			alias := ""
			if p.at(KwAs) {
				p.advance()
				alias = p.expect(IDENT).Value
			}
			imp.Names = append(imp.Names, ImportedName{Name: name, Alias: alias})
			if p.at(Comma) {
				p.advance()
				continue
			}
			break
		}
	} else {
		p.expect(KwImport)
		imp.Module = p.parseDottedPath()
		if p.at(KwAs) {
			p.advance()
			imp.ModAlias = p.expect(IDENT).Value
		}
	}
	imp.Pos_ = Pos{StartLn: start.Pos.StartLn, StartCol: start.Pos.StartCol, EndLn: p.tok.Pos.EndLn, EndCol: p.tok.Pos.EndCol}
	p.expect(NEWLINE)
	return imp
}

func (p *Parser) parseDecorators() []Decorator {
	var decs []Decorator
	for p.at(At) {
		start := p.tok
		p.advance()
		name := p.expect(IDENT).Value
		var args []Expr
		if p.at(LParen) {
			p.advance()
			for !p.at(RParen) && !p.at(EOF) {
				args = append(args, p.parseExpr())
				if p.at(Comma) {
					p.advance()
				}
			}
			p.expect(RParen)
		}
		p.expect(NEWLINE)
		decs = append(decs, Decorator{Pos_: posRange(start, p.tok), Name: name, Args: args})
	}
	return decs
}

func posRange(start, end *Token) Pos {
	return Pos{StartLn: start.Pos.StartLn, StartCol: start.Pos.StartCol, EndLn: end.Pos.EndLn, EndCol: end.Pos.EndCol}
}

func (p *Parser) parseDecl() Decl {
	decs := p.parseDecorators()
	switch {
	case p.at(KwAsync) || p.at(KwDef):
		return p.parseFuncDecl(decs)
	case p.at(KwClass):
		return p.parseClassDecl(decs)
	case p.at(IDENT):
		return p.parseConstDecl()
	default:
		p.errf(p.tok, "expected a declaration, found %s", p.tok.Kind)
		p.advance()
		return nil
	}
}

func (p *Parser) parseTypeExpr() TypeExpr {
	start := p.tok
	var name string
	if p.at(KwNone) {
		p.advance()
		name = "None"
	} else {
		name = p.expect(IDENT).Value
	}
	var generics []TypeExpr
	if p.at(LBracket) {
		p.advance()
		for !p.at(RBracket) && !p.at(EOF) {
			generics = append(generics, p.parseTypeExpr())
			if p.at(Comma) {
				p.advance()
			}
		}
		p.expect(RBracket)
	}
	var te TypeExpr = &TypeName{Pos_: posRange(start, p.tok), Name: name, Generics: generics}
	for p.at(Pipe) {
		p.advance()
		p.expect(KwNone)
		te = &TypeUnionNone{Pos_: posRange(start, p.tok), Inner: te}
	}
	return te
}

func (p *Parser) parseParams() []Param {
	p.expect(LParen)
	var params []Param
	for !p.at(RParen) && !p.at(EOF) {
		start := p.tok
		name := p.expect(IDENT).Value
		var ann TypeExpr
		if p.at(Colon) {
			p.advance()
			ann = p.parseTypeExpr()
		}
		var def Expr
		if p.at(Assign) {
			p.advance()
			def = p.parseExpr()
		}
		params = append(params, Param{Pos_: posRange(start, p.tok), Name: name, Annotation: ann, Default: def})
		if p.at(Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(RParen)
	return params
}

func (p *Parser) parseFuncDecl(decs []Decorator) *FuncDecl {
	start := p.tok
	isAsync := false
	if p.at(KwAsync) {
		isAsync = true
		p.advance()
	}
	p.expect(KwDef)
	name := p.expect(IDENT).Value
	params := p.parseParams()
	var ret TypeExpr
	if p.at(Arrow) {
		p.advance()
		ret = p.parseTypeExpr()
	}
	p.expect(Colon)
	body := p.parseBlock()
	return &FuncDecl{
		Pos_: posRange(start, p.tok), Decorators: decs, Name: name,
		IsAsync: isAsync, Params: params, Return: ret, Body: body,
	}
}

func (p *Parser) parseClassDecl(decs []Decorator) *ClassDecl {
	start := p.tok
	p.expect(KwClass)
	name := p.expect(IDENT).Value
	var bases []string
	if p.at(LParen) {
		p.advance()
		for !p.at(RParen) && !p.at(EOF) {
			bases = append(bases, p.expect(IDENT).Value)
			if p.at(Comma) {
				p.advance()
			}
		}
		p.expect(RParen)
	}
	p.expect(Colon)
	p.expect(NEWLINE)
	p.expect(INDENT)
	c := &ClassDecl{Decorators: decs, Name: name, Bases: bases}
	for !p.at(DEDENT) && !p.at(EOF) {
		if p.at(KwPass) {
			p.advance()
			p.expect(NEWLINE)
			continue
		}
		innerDecs := p.parseDecorators()
		if p.at(KwAsync) || p.at(KwDef) {
			c.Methods = append(c.Methods, p.parseFuncDecl(innerDecs))
			continue
		}
		fstart := p.tok
		fname := p.expect(IDENT).Value
		var ann TypeExpr
		if p.at(Colon) {
			p.advance()
			ann = p.parseTypeExpr()
		}
		var def Expr
		if p.at(Assign) {
			p.advance()
			def = p.parseExpr()
		}
		p.expect(NEWLINE)
		c.Fields = append(c.Fields, FieldDecl{Pos_: posRange(fstart, p.tok), Name: fname, Annotation: ann, Default: def})
	}
	p.expect(DEDENT)
	c.Pos_ = posRange(start, p.tok)
	return c
}

func (p *Parser) parseConstDecl() *ConstDecl {
	start := p.tok
	name := p.expect(IDENT).Value
	var ann TypeExpr
	if p.at(Colon) {
		p.advance()
		ann = p.parseTypeExpr()
	}
	p.expect(Assign)
	val := p.parseExpr()
	p.expect(NEWLINE)
	return &ConstDecl{Pos_: posRange(start, p.tok), Name: name, Annotation: ann, Value: val}
}

// -----------------------------------------------------------------------
// Statements

func (p *Parser) parseBlock() []Stmt {
	p.expect(NEWLINE)
	p.expect(INDENT)
	var stmts []Stmt
	for !p.at(DEDENT) && !p.at(EOF) {
		if st := p.parseStmt(); st != nil {
			stmts = append(stmts, st)
		}
	}
	p.expect(DEDENT)
	return stmts
}

func (p *Parser) parseStmt() Stmt {
	switch p.tok.Kind {
	case KwIf:
		return p.parseIf()
	case KwWhile:
		return p.parseWhile()
	case KwFor:
		return p.parseFor()
	case KwWith:
		return p.parseWith()
	case KwMatch:
		return p.parseMatch()
	case KwBreak:
		t := p.tok
		p.advance()
		p.expect(NEWLINE)
		return &BreakStmt{Pos_: t.Pos}
	case KwContinue:
		t := p.tok
		p.advance()
		p.expect(NEWLINE)
		return &ContinueStmt{Pos_: t.Pos}
	case KwPass:
		t := p.tok
		p.advance()
		p.expect(NEWLINE)
		return &PassStmt{Pos_: t.Pos}
	case KwReturn:
		start := p.tok
		p.advance()
		var val Expr
		if !p.at(NEWLINE) {
			val = p.parseExpr()
		}
		p.expect(NEWLINE)
		return &ReturnStmt{Pos_: posRange(start, p.tok), Value: val}
	default:
		return p.parseSimpleStmt()
	}
}

func (p *Parser) parseIf() Stmt {
	start := p.tok
	p.expect(KwIf)
	cond := p.parseExpr()
	p.expect(Colon)
	body := p.parseBlock()
	stmt := &IfStmt{Branches: []CondBranch{{Cond: cond, Body: body}}}
	for p.at(KwElif) {
		p.advance()
		c := p.parseExpr()
		p.expect(Colon)
		b := p.parseBlock()
		stmt.Branches = append(stmt.Branches, CondBranch{Cond: c, Body: b})
	}
	if p.at(KwElse) {
		p.advance()
		p.expect(Colon)
		stmt.Else = p.parseBlock()
	}
	stmt.Pos_ = posRange(start, p.tok)
	return stmt
}

func (p *Parser) parseWhile() Stmt {
	start := p.tok
	p.expect(KwWhile)
	cond := p.parseExpr()
	p.expect(Colon)
	body := p.parseBlock()
	return &WhileStmt{Pos_: posRange(start, p.tok), Cond: cond, Body: body}
}

func (p *Parser) parseFor() Stmt {
	start := p.tok
	p.expect(KwFor)
	name := p.expect(IDENT).Value
	p.expect(KwIn)
	iter := p.parseExpr()
	p.expect(Colon)
	body := p.parseBlock()
	return &ForStmt{Pos_: posRange(start, p.tok), Name: name, Iter: iter, Body: body}
}

func (p *Parser) parseWith() Stmt {
	start := p.tok
	p.expect(KwWith)
	res := p.parseExpr()
	asName := ""
	if p.at(KwAs) {
		p.advance()
		asName = p.expect(IDENT).Value
	}
	p.expect(Colon)
	body := p.parseBlock()
	return &WithStmt{Pos_: posRange(start, p.tok), Resource: res, AsName: asName, Body: body}
}

func (p *Parser) parseMatch() Stmt {
	start := p.tok
	p.expect(KwMatch)
	scrut := p.parseExpr()
	p.expect(Colon)
	p.expect(NEWLINE)
	p.expect(INDENT)
	m := &MatchStmt{Scrutinee: scrut}
	for !p.at(DEDENT) && !p.at(EOF) {
		p.expect(KwCase)
		var c MatchCase
		if p.at(IDENT) && (p.peek().Kind == Colon) {
			c.BindName = p.tok.Value
			p.advance()
		} else {
			c.Literal = p.parseExpr()
		}
		p.expect(Colon)
		c.Body = p.parseBlock()
		m.Cases = append(m.Cases, c)
	}
	p.expect(DEDENT)
	m.Pos_ = posRange(start, p.tok)
	return m
}

func (p *Parser) parseSimpleStmt() Stmt {
	start := p.tok

	// `name: Type = value` / `name: Type` first-binding declaration form,
	// distinguished from a plain assignment by the colon following a bare
	// identifier at statement head.
	if p.at(IDENT) && p.peek().Kind == Colon {
		name := p.tok.Value
		p.advance()
		p.advance() // colon
		ann := p.parseTypeExpr()
		var val Expr
		if p.at(Assign) {
			p.advance()
			val = p.parseExpr()
		}
		p.expect(NEWLINE)
		return &VarDeclStmt{Pos_: posRange(start, p.tok), Name: name, Annotation: ann, Value: val}
	}

	first := p.parseExpr()
	targets := []Expr{first}
	for p.at(Comma) {
		p.advance()
		targets = append(targets, p.parseExpr())
	}

	op, isAssign := p.assignOpAtCursor()
	if !isAssign {
		p.expect(NEWLINE)
		return &ExprStmt{Pos_: posRange(start, p.tok), Value: first}
	}
	p.advance()
	val := p.parseExpr()
	p.expect(NEWLINE)
	return &AssignStmt{Pos_: posRange(start, p.tok), Targets: targets, Op: op, Value: val}
}

func (p *Parser) assignOpAtCursor() (AssignOp, bool) {
	switch p.tok.Kind {
	case Assign:
		return AssignPlain, true
	case PlusAssign:
		return AugAdd, true
	case MinusAssign:
		return AugSub, true
	case StarAssign:
		return AugMul, true
	case SlashAssign:
		return AugDiv, true
	case SlashSlashAssign:
		return AugFloorDiv, true
	case PercentAssign:
		return AugMod, true
	default:
		return 0, false
	}
}
