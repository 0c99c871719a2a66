package parser

import (
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/lexer"
)

func (p *Parser) parseClassDeclaration(exported bool) ast.Statement {
	base := p.base()
	p.next() // consume "class"
	name := p.cur.Literal
	p.next()
	typeParams := p.parseTypeParamList()

	decl := &ast.ClassDeclaration{BaseNode: base, Name: name, TypeParams: typeParams, Exported: exported}
	if p.curIsKeyword("extends") {
		p.next()
		if p.curIsKeyword("struct") || p.cur.Literal == "Struct" {
			decl.IsStruct = true
			p.next()
		} else {
			decl.BaseClass = p.parseTypeSyntax()
		}
	}
	if p.curIsKeyword("implements") {
		p.next()
		decl.Implements = append(decl.Implements, p.parseTypeSyntax())
		for p.curIs(lexer.COMMA) {
			p.next()
			decl.Implements = append(decl.Implements, p.parseTypeSyntax())
		}
	}
	decl.Members = p.parseClassBody()
	return decl
}

func (p *Parser) parseInterfaceDeclaration(exported bool) ast.Statement {
	base := p.base()
	p.next() // consume "interface"
	name := p.cur.Literal
	p.next()
	typeParams := p.parseTypeParamList()

	decl := &ast.InterfaceDeclaration{BaseNode: base, Name: name, TypeParams: typeParams, Exported: exported}
	if p.curIsKeyword("extends") {
		p.next()
		if p.curIsKeyword("struct") || p.cur.Literal == "Struct" {
			decl.IsStruct = true
			p.next()
		} else {
			decl.Extends = append(decl.Extends, p.parseTypeSyntax())
			for p.curIs(lexer.COMMA) {
				p.next()
				decl.Extends = append(decl.Extends, p.parseTypeSyntax())
			}
		}
	}
	decl.Members = p.parseClassBody()
	return decl
}

// parseClassBody parses the shared `{ member* }` shape of classes and
// interfaces. Interface method members never carry a Body.
func (p *Parser) parseClassBody() []ast.ClassMember {
	p.expect(lexer.LBRACE)
	var members []ast.ClassMember
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SEMICOLON) {
			p.next()
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.expect(lexer.RBRACE)
	return members
}

func (p *Parser) parseClassMember() ast.ClassMember {
	m := ast.ClassMember{Visibility: ast.VisPublic}
	for {
		switch p.cur.Literal {
		case "public":
			m.Visibility = ast.VisPublic
			p.next()
			continue
		case "private":
			m.Visibility = ast.VisPrivate
			p.next()
			continue
		case "protected":
			m.Visibility = ast.VisProtected
			p.next()
			continue
		case "static":
			m.Static = true
			p.next()
			continue
		case "readonly":
			m.Readonly = true
			p.next()
			continue
		case "abstract":
			m.Abstract = true
			p.next()
			continue
		}
		break
	}

	if p.curIsKeyword("get") && p.peekIs(lexer.IDENT) {
		m.IsGetter = true
		p.next()
	} else if p.curIsKeyword("set") && p.peekIs(lexer.IDENT) {
		m.IsSetter = true
		p.next()
	}

	if p.curIs(lexer.LBRACKET) {
		// index signature: `[key: string]: V`
		p.next()
		p.next() // key name, unchecked
		p.expect(lexer.COLON)
		keyType := p.parseTypeSyntax()
		p.expect(lexer.RBRACKET)
		p.expect(lexer.COLON)
		valType := p.parseTypeSyntax()
		p.consumeSemicolon()
		return ast.ClassMember{Kind: ast.MemberIndexSignature, Type: valType, Initializer: nil, Params: []ast.Param{{Name: "key", Type: keyType}}}
	}

	name := p.cur.Literal
	isCtor := name == "constructor"
	p.next()

	if isCtor {
		m.Name = name
		m.Kind = ast.MemberConstructor
		m.Params, _ = p.parseParamList()
		m.Body = p.parseBlockStatement()
		return m
	}

	if p.curIs(lexer.QUESTION) {
		m.Optional = true
		p.next()
	}

	if p.curIs(lexer.LPAREN) || p.curIs(lexer.LT) {
		m.Name = name
		m.Kind = ast.MemberMethod
		m.Params, _ = p.parseParamList()
		if p.curIs(lexer.COLON) {
			p.next()
			m.ReturnType = p.parseTypeSyntax()
		}
		if p.curIs(lexer.LBRACE) {
			m.Body = p.parseBlockStatement()
		} else {
			p.consumeSemicolon()
		}
		return m
	}

	m.Name = name
	m.Kind = ast.MemberField
	if p.curIs(lexer.COLON) {
		p.next()
		m.Type = p.parseTypeSyntax()
	}
	if p.curIs(lexer.ASSIGN) {
		p.next()
		m.Initializer = p.parseExpression(precAssign)
	}
	p.consumeSemicolon()
	return m
}

func (p *Parser) parseEnumDeclaration(exported bool) ast.Statement {
	base := p.base()
	p.next() // consume "enum"
	name := p.cur.Literal
	p.next()
	p.expect(lexer.LBRACE)
	var members []ast.EnumMember
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		m := ast.EnumMember{Name: p.cur.Literal}
		p.next()
		if p.curIs(lexer.ASSIGN) {
			p.next()
			m.Value = p.parseExpression(precAssign)
		}
		members = append(members, m)
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.EnumDeclaration{BaseNode: base, Name: name, Members: members, Exported: exported}
}

func (p *Parser) parseTypeAliasDeclaration(exported bool) ast.Statement {
	base := p.base()
	p.next() // consume "type"
	name := p.cur.Literal
	p.next()
	typeParams := p.parseTypeParamList()
	p.expect(lexer.ASSIGN)
	typ := p.parseTypeSyntax()
	p.consumeSemicolon()
	return &ast.TypeAliasDeclaration{BaseNode: base, Name: name, TypeParams: typeParams, Type: typ, Exported: exported}
}
