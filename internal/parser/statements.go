package parser

import (
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/lexer"
)

func (p *Parser) parseStatement() ast.Statement {
	if p.curIs(lexer.SEMICOLON) {
		s := &ast.EmptyStatement{BaseNode: p.base()}
		p.next()
		return s
	}
	if p.curIs(lexer.LBRACE) {
		return p.parseBlockStatement()
	}
	if p.curIs(lexer.IDENT) {
		switch p.cur.Literal {
		case "export":
			return p.parseExportStatement()
		case "import":
			return p.parseImportStatement()
		case "const", "let", "var":
			return p.parseVariableDeclaration(false)
		case "function":
			return p.parseFunctionDeclaration(false, false)
		case "async":
			if p.peekIs(lexer.IDENT) && p.peek.Literal == "function" {
				p.next()
				return p.parseFunctionDeclaration(true, false)
			}
		case "class":
			return p.parseClassDeclaration(false)
		case "interface":
			return p.parseInterfaceDeclaration(false)
		case "enum":
			return p.parseEnumDeclaration(false)
		case "type":
			return p.parseTypeAliasDeclaration(false)
		case "if":
			return p.parseIfStatement()
		case "while":
			return p.parseWhileStatement()
		case "do":
			return p.parseDoWhileStatement()
		case "for":
			return p.parseForStatement()
		case "switch":
			return p.parseSwitchStatement()
		case "try":
			return p.parseTryStatement()
		case "throw":
			return p.parseThrowStatement()
		case "return":
			return p.parseReturnStatement()
		case "break":
			s := &ast.BreakStatement{BaseNode: p.base()}
			p.next()
			p.consumeSemicolon()
			return s
		case "continue":
			s := &ast.ContinueStatement{BaseNode: p.base()}
			p.next()
			p.consumeSemicolon()
			return s
		case "with":
			loc := &diag.SourceLocation{File: p.file, Line: p.cur.Pos.Line, Column: p.cur.Pos.Column}
			p.diags.Error(diag.CodeWithStatement, loc, "`with` statements are not supported")
			return p.skipAmbientStatement()
		case "declare", "namespace":
			// Ambient declarations are accepted syntactically and
			// dropped — they describe external shape only, nothing to
			// lower for them in the restricted subset.
			return p.skipAmbientStatement()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) consumeSemicolon() {
	if p.curIs(lexer.SEMICOLON) {
		p.next()
	}
}

func (p *Parser) skipAmbientStatement() ast.Statement {
	base := p.base()
	depth := 0
	for {
		if p.curIs(lexer.LBRACE) {
			depth++
		}
		if p.curIs(lexer.RBRACE) {
			depth--
			if depth <= 0 {
				p.next()
				break
			}
		}
		if depth == 0 && p.curIs(lexer.SEMICOLON) {
			p.next()
			break
		}
		if p.curIs(lexer.EOF) {
			break
		}
		p.next()
	}
	return &ast.EmptyStatement{BaseNode: base}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	base := p.base()
	expr := p.parseExpression(precLowest)
	p.consumeSemicolon()
	return &ast.ExpressionStatement{BaseNode: base, Expr: expr}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	base := p.base()
	p.expect(lexer.LBRACE)
	var stmts []ast.Statement
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(lexer.RBRACE)
	return &ast.BlockStatement{BaseNode: base, Statements: stmts}
}

func (p *Parser) parseExportStatement() ast.Statement {
	p.next() // consume "export"
	if p.curIs(lexer.LBRACE) {
		// re-export list: `export { a, b } from "./mod";` — followed
		// through the export map by internal/modgraph; represented here
		// as an expression statement the IR builder recognizes by shape.
		return p.parseReExportList()
	}
	switch p.cur.Literal {
	case "const", "let", "var":
		return p.parseVariableDeclaration(true)
	case "function":
		return p.parseFunctionDeclaration(false, true)
	case "async":
		p.next()
		return p.parseFunctionDeclaration(true, true)
	case "class":
		return p.parseClassDeclaration(true)
	case "interface":
		return p.parseInterfaceDeclaration(true)
	case "enum":
		return p.parseEnumDeclaration(true)
	case "type":
		return p.parseTypeAliasDeclaration(true)
	}
	return p.parseStatement()
}

func (p *Parser) parseReExportList() ast.Statement {
	base := p.base()
	p.expect(lexer.LBRACE)
	var names []string
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		names = append(names, p.cur.Literal)
		p.next()
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	var from string
	if p.curIsKeyword("from") {
		p.next()
		from = p.cur.Literal
		p.next()
	}
	p.consumeSemicolon()
	return &ast.ReExportStatement{BaseNode: base, Names: names, From: from}
}

func (p *Parser) parseImportStatement() ast.Statement {
	base := p.base()
	p.next() // consume "import"
	imp := &ast.ImportStatement{BaseNode: base}
	if p.curIs(lexer.LBRACE) {
		p.next()
		for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			imp.Names = append(imp.Names, p.cur.Literal)
			p.next()
			if p.curIs(lexer.COMMA) {
				p.next()
			}
		}
		p.expect(lexer.RBRACE)
	} else if p.curIs(lexer.STAR) {
		p.next()
		if p.curIsKeyword("as") {
			p.next()
		}
		imp.NamespaceAlias = p.cur.Literal
		p.next()
	} else {
		imp.DefaultName = p.cur.Literal
		p.next()
	}
	if p.curIsKeyword("from") {
		p.next()
	}
	imp.Specifier = p.cur.Literal
	p.next()
	p.consumeSemicolon()
	return imp
}

func (p *Parser) parseVariableDeclaration(exported bool) ast.Statement {
	base := p.base()
	kind := ast.DeclConst
	switch p.cur.Literal {
	case "let":
		kind = ast.DeclLet
	case "var":
		kind = ast.DeclVar
	}
	p.next()
	var decls []ast.Declarator
	for {
		name := p.cur.Literal
		p.next()
		var typ ast.TypeSyntax
		if p.curIs(lexer.COLON) {
			p.next()
			typ = p.parseTypeSyntax()
		}
		var init ast.Expression
		if p.curIs(lexer.ASSIGN) {
			p.next()
			init = p.parseExpression(precAssign)
		}
		decls = append(decls, ast.Declarator{Name: name, Type: typ, Init: init})
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	p.consumeSemicolon()
	return &ast.VariableDeclaration{BaseNode: base, Kind: kind, Declarators: decls, Exported: exported}
}

func (p *Parser) parseOneParam() ast.Param {
	param := ast.Param{}
	if p.curIs(lexer.DOTDOTDOT) {
		param.Rest = true
		p.next()
	}
	param.Name = p.cur.Literal
	p.next()
	if p.curIs(lexer.QUESTION) {
		param.Optional = true
		p.next()
	}
	if p.curIs(lexer.COLON) {
		p.next()
		param.Type = p.parseTypeSyntax()
		param.Passing, param.Type = unwrapPassingMode(param.Type)
	}
	if p.curIs(lexer.ASSIGN) {
		p.next()
		param.Default = p.parseExpression(precAssign)
	}
	return param
}

// unwrapPassingMode recognizes the ref<T>/out<T>/in<T>/inref<T> parameter
// wrappers and unwraps them to their inner type, recording
// the passing mode separately.
func unwrapPassingMode(t ast.TypeSyntax) (ast.PassingMode, ast.TypeSyntax) {
	ref, ok := t.(*ast.TypeReferenceSyntax)
	if !ok || len(ref.TypeArgs) != 1 {
		return ast.PassByValue, t
	}
	switch ref.Name {
	case "ref":
		return ast.PassRef, ref.TypeArgs[0]
	case "out":
		return ast.PassOut, ref.TypeArgs[0]
	case "in":
		return ast.PassIn, ref.TypeArgs[0]
	case "inref":
		return ast.PassInRef, ref.TypeArgs[0]
	}
	return ast.PassByValue, t
}

func (p *Parser) parseParamList() ([]ast.Param, []ast.TypeParamSyntax) {
	typeParams := p.parseTypeParamList()
	p.expect(lexer.LPAREN)
	var params []ast.Param
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		params = append(params, p.parseOneParam())
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return params, typeParams
}

func (p *Parser) parseFunctionLiteral(isAsync bool) ast.Expression {
	base := p.base()
	p.next() // consume "function"
	isGenerator := false
	if p.curIs(lexer.STAR) {
		isGenerator = true
		p.next()
	}
	name := ""
	if p.curIs(lexer.IDENT) && !p.curIs(lexer.LPAREN) {
		name = p.cur.Literal
		p.next()
	}
	params, typeParams := p.parseParamList()
	var retType ast.TypeSyntax
	if p.curIs(lexer.COLON) {
		p.next()
		retType = p.parseTypeSyntax()
	}
	body := p.parseBlockStatement()
	return &ast.FunctionLiteral{
		BaseNode: base, Name: name, TypeParams: typeParams, Params: params,
		ReturnType: retType, Body: body, IsAsync: isAsync, IsGenerator: isGenerator,
	}
}

func (p *Parser) parseFunctionDeclaration(isAsync, exported bool) ast.Statement {
	base := p.base()
	p.next() // consume "function"
	isGenerator := false
	if p.curIs(lexer.STAR) {
		isGenerator = true
		p.next()
	}
	name := p.cur.Literal
	p.next()
	params, typeParams := p.parseParamList()
	var retType ast.TypeSyntax
	if p.curIs(lexer.COLON) {
		p.next()
		retType = p.parseTypeSyntax()
	}
	body := p.parseBlockStatement()
	return &ast.FunctionDeclaration{
		BaseNode: base, Name: name, TypeParams: typeParams, Params: params,
		ReturnType: retType, Body: body, IsAsync: isAsync, IsGenerator: isGenerator, Exported: exported,
	}
}

func (p *Parser) parseIfStatement() ast.Statement {
	base := p.base()
	p.next()
	p.expect(lexer.LPAREN)
	test := p.parseExpression(precLowest)
	p.expect(lexer.RPAREN)
	then := p.parseStatement()
	var elseStmt ast.Statement
	if p.curIsKeyword("else") {
		p.next()
		elseStmt = p.parseStatement()
	}
	return &ast.IfStatement{BaseNode: base, Test: test, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	base := p.base()
	p.next()
	p.expect(lexer.LPAREN)
	test := p.parseExpression(precLowest)
	p.expect(lexer.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStatement{BaseNode: base, Test: test, Body: body}
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	base := p.base()
	p.next()
	body := p.parseStatement()
	if p.curIsKeyword("while") {
		p.next()
	}
	p.expect(lexer.LPAREN)
	test := p.parseExpression(precLowest)
	p.expect(lexer.RPAREN)
	p.consumeSemicolon()
	return &ast.WhileStatement{BaseNode: base, Test: test, Body: body, DoWhile: true}
}

func (p *Parser) parseForStatement() ast.Statement {
	base := p.base()
	p.next()
	p.expect(lexer.LPAREN)

	declaring := p.curIs(lexer.IDENT) && (p.cur.Literal == "const" || p.cur.Literal == "let" || p.cur.Literal == "var")
	kind := ast.DeclLet
	if declaring {
		switch p.cur.Literal {
		case "const":
			kind = ast.DeclConst
		case "var":
			kind = ast.DeclVar
		}
		p.next()
	}

	if (declaring || p.curIs(lexer.IDENT)) && p.isForOfOrIn() {
		name := p.cur.Literal
		p.next()
		var typ ast.TypeSyntax
		if p.curIs(lexer.COLON) {
			p.next()
			typ = p.parseTypeSyntax()
		}
		if p.curIsKeyword("of") {
			p.next()
			iterable := p.parseExpression(precLowest)
			p.expect(lexer.RPAREN)
			body := p.parseStatement()
			return &ast.ForOfStatement{BaseNode: base, DeclKind: kind, Declaring: declaring, Name: name, Type: typ, Iterable: iterable, Body: body}
		}
		p.next() // consume "in"
		obj := p.parseExpression(precLowest)
		p.expect(lexer.RPAREN)
		body := p.parseStatement()
		return &ast.ForInStatement{BaseNode: base, DeclKind: kind, Declaring: declaring, Name: name, Object: obj, Body: body}
	}

	var init ast.Statement
	if declaring {
		init = p.finishVariableDeclarationHeadless(base, kind)
	} else if !p.curIs(lexer.SEMICOLON) {
		init = p.parseExpressionStatement()
	} else {
		p.next()
	}
	var test ast.Expression
	if !p.curIs(lexer.SEMICOLON) {
		test = p.parseExpression(precLowest)
	}
	p.expect(lexer.SEMICOLON)
	var update ast.Expression
	if !p.curIs(lexer.RPAREN) {
		update = p.parseExpression(precLowest)
	}
	p.expect(lexer.RPAREN)
	body := p.parseStatement()
	return &ast.ForStatement{BaseNode: base, Init: init, Test: test, Update: update, Body: body}
}

// isForOfOrIn looks ahead past one identifier (and an optional `: Type`)
// for `of`/`in`, to distinguish `for (x of xs)` from `for (x = 0; ...)`.
func (p *Parser) isForOfOrIn() bool {
	return p.peekIs(lexer.IDENT) && (p.peek.Literal == "of" || p.peek.Literal == "in") || p.peekIs(lexer.COLON)
}

func (p *Parser) finishVariableDeclarationHeadless(base ast.BaseNode, kind ast.DeclKind) ast.Statement {
	var decls []ast.Declarator
	for {
		name := p.cur.Literal
		p.next()
		var typ ast.TypeSyntax
		if p.curIs(lexer.COLON) {
			p.next()
			typ = p.parseTypeSyntax()
		}
		var init ast.Expression
		if p.curIs(lexer.ASSIGN) {
			p.next()
			init = p.parseExpression(precAssign)
		}
		decls = append(decls, ast.Declarator{Name: name, Type: typ, Init: init})
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	return &ast.VariableDeclaration{BaseNode: base, Kind: kind, Declarators: decls}
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	base := p.base()
	p.next()
	p.expect(lexer.LPAREN)
	disc := p.parseExpression(precLowest)
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)
	var cases []ast.SwitchCase
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		var c ast.SwitchCase
		if p.curIsKeyword("case") {
			p.next()
			c.Test = p.parseExpression(precLowest)
		} else if p.curIsKeyword("default") {
			p.next()
		}
		p.expect(lexer.COLON)
		for !p.curIsKeyword("case") && !p.curIsKeyword("default") && !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			c.Statements = append(c.Statements, p.parseStatement())
		}
		cases = append(cases, c)
	}
	p.expect(lexer.RBRACE)
	return &ast.SwitchStatement{BaseNode: base, Discriminant: disc, Cases: cases}
}

func (p *Parser) parseTryStatement() ast.Statement {
	base := p.base()
	p.next()
	block := p.parseBlockStatement()
	var catch *ast.CatchClause
	var finally *ast.BlockStatement
	if p.curIsKeyword("catch") {
		p.next()
		cc := &ast.CatchClause{}
		if p.curIs(lexer.LPAREN) {
			p.next()
			cc.Param = p.cur.Literal
			p.next()
			if p.curIs(lexer.COLON) {
				p.next()
				cc.Type = p.parseTypeSyntax()
			}
			p.expect(lexer.RPAREN)
		}
		cc.Body = p.parseBlockStatement()
		catch = cc
	}
	if p.curIsKeyword("finally") {
		p.next()
		finally = p.parseBlockStatement()
	}
	return &ast.TryStatement{BaseNode: base, Block: block, Catch: catch, Finally: finally}
}

func (p *Parser) parseThrowStatement() ast.Statement {
	base := p.base()
	p.next()
	arg := p.parseExpression(precLowest)
	p.consumeSemicolon()
	return &ast.ThrowStatement{BaseNode: base, Argument: arg}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	base := p.base()
	p.next()
	var arg ast.Expression
	if !p.curIs(lexer.SEMICOLON) && !p.curIs(lexer.RBRACE) {
		arg = p.parseExpression(precLowest)
	}
	p.consumeSemicolon()
	return &ast.ReturnStatement{BaseNode: base, Argument: arg}
}
