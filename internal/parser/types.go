package parser

import (
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/lexer"
)

// parseTypeSyntax parses one type annotation. Precedence, lowest to
// highest: union (|) binds looser than intersection (&), which binds
// looser than a postfix array suffix ([]).
func (p *Parser) parseTypeSyntax() ast.TypeSyntax {
	return p.parseUnionType()
}

func (p *Parser) parseUnionType() ast.TypeSyntax {
	base := p.base()
	if p.curIs(lexer.PIPE) {
		p.next()
	}
	first := p.parseIntersectionType()
	if !p.curIs(lexer.PIPE) {
		return first
	}
	types := []ast.TypeSyntax{first}
	for p.curIs(lexer.PIPE) {
		p.next()
		types = append(types, p.parseIntersectionType())
	}
	return &ast.UnionTypeSyntax{BaseNode: base, Types: types}
}

func (p *Parser) parseIntersectionType() ast.TypeSyntax {
	base := p.base()
	first := p.parsePostfixType()
	if !p.curIs(lexer.AMP) {
		return first
	}
	types := []ast.TypeSyntax{first}
	for p.curIs(lexer.AMP) {
		p.next()
		types = append(types, p.parsePostfixType())
	}
	return &ast.IntersectionTypeSyntax{BaseNode: base, Types: types}
}

func (p *Parser) parsePostfixType() ast.TypeSyntax {
	t := p.parsePrimaryType()
	for p.curIs(lexer.LBRACKET) && p.peekIs(lexer.RBRACKET) {
		base := p.base()
		p.next()
		p.next()
		t = &ast.ArrayTypeSyntax{BaseNode: base, Element: t}
	}
	return t
}

func (p *Parser) parsePrimaryType() ast.TypeSyntax {
	base := p.base()
	switch p.cur.Type {
	case lexer.LPAREN:
		// Disambiguate `(T)` from a function type `(x: T) => R` by a
		// bounded lookahead: function types always contain `:` or `)`
		// immediately followed by `=>`.
		if p.peekIs(lexer.RPAREN) {
			p.next()
			p.next()
			if p.curIs(lexer.ARROW) {
				p.next()
				ret := p.parseTypeSyntax()
				return &ast.FunctionTypeSyntax{BaseNode: base, ReturnType: ret}
			}
			return &ast.ObjectTypeSyntax{BaseNode: base}
		}
		return p.parseFunctionOrParenType(base)
	case lexer.LBRACKET:
		p.next()
		var elems []ast.TypeSyntax
		for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
			elems = append(elems, p.parseTypeSyntax())
			if p.curIs(lexer.COMMA) {
				p.next()
			}
		}
		p.expect(lexer.RBRACKET)
		return &ast.TupleTypeSyntax{BaseNode: base, Elements: elems}
	case lexer.LBRACE:
		return p.parseObjectTypeSyntax()
	case lexer.STRING:
		lit := p.parseStringLiteral()
		return &ast.LiteralTypeSyntax{BaseNode: base, Literal: lit}
	case lexer.INT:
		lit := p.parseIntegerLiteral()
		return &ast.LiteralTypeSyntax{BaseNode: base, Literal: lit}
	case lexer.IDENT:
		if p.cur.Literal == "true" || p.cur.Literal == "false" {
			lit := p.parseIdentOrKeywordExpr()
			return &ast.LiteralTypeSyntax{BaseNode: base, Literal: lit}
		}
		name := p.cur.Literal
		p.next()
		var args []ast.TypeSyntax
		if p.curIs(lexer.LT) {
			args = p.parseTypeArgList()
		}
		return &ast.TypeReferenceSyntax{BaseNode: base, Name: name, TypeArgs: args}
	}
	p.errorf("expected a type, got %s (%q)", p.cur.Type, p.cur.Literal)
	p.next()
	return &ast.TypeReferenceSyntax{BaseNode: base, Name: "unknown"}
}

// parseFunctionOrParenType handles `(` that is not immediately `)`:
// either a parenthesized-parameter function type `(x: T, y: U) => R` or
// a parenthesized type `(T | U)`. It disambiguates on the first two
// tokens after `(`: an identifier followed by `:` starts a parameter
// list — the input language never allows a bare `:` inside a
// parenthesized type expression.
func (p *Parser) parseFunctionOrParenType(base ast.BaseNode) ast.TypeSyntax {
	p.next()
	if p.peekIs(lexer.COLON) || (p.curIs(lexer.IDENT) && p.peekIs(lexer.COLON)) {
		params, _ := p.parseParamListFromOpenParen()
		p.expect(lexer.ARROW)
		ret := p.parseTypeSyntax()
		return &ast.FunctionTypeSyntax{BaseNode: base, Params: params, ReturnType: ret}
	}
	inner := p.parseTypeSyntax()
	p.expect(lexer.RPAREN)
	if p.curIs(lexer.ARROW) {
		p.next()
		ret := p.parseTypeSyntax()
		return &ast.FunctionTypeSyntax{BaseNode: base, ReturnType: ret}
	}
	return &ast.ParenTypeSyntax{BaseNode: base, Inner: inner}
}

// parseParamListFromOpenParen parses parameters assuming the opening
// `(` has already been consumed by the caller.
func (p *Parser) parseParamListFromOpenParen() ([]ast.Param, []ast.TypeParamSyntax) {
	var params []ast.Param
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		params = append(params, p.parseOneParam())
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return params, nil
}

func (p *Parser) parseObjectTypeSyntax() ast.TypeSyntax {
	base := p.base()
	p.next()
	var members []ast.ObjectMemberSyntax
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		m := ast.ObjectMemberSyntax{}
		if p.curIsKeyword("readonly") {
			m.Readonly = true
			p.next()
		}
		if p.curIs(lexer.LBRACKET) {
			p.next()
			keyName := p.cur.Literal
			_ = keyName
			p.next()
			p.expect(lexer.COLON)
			m.IndexKeyType = p.parseTypeSyntax()
			p.expect(lexer.RBRACKET)
			m.IsIndexSig = true
		} else {
			m.Name = p.cur.Literal
			p.next()
		}
		if p.curIs(lexer.QUESTION) {
			m.Optional = true
			p.next()
		}
		p.expect(lexer.COLON)
		m.Type = p.parseTypeSyntax()
		members = append(members, m)
		if p.curIs(lexer.SEMICOLON) || p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.ObjectTypeSyntax{BaseNode: base, Members: members}
}

func (p *Parser) parseTypeArgList() []ast.TypeSyntax {
	p.next() // consume <
	var args []ast.TypeSyntax
	for !p.curIs(lexer.GT) && !p.curIs(lexer.EOF) {
		args = append(args, p.parseTypeSyntax())
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.GT)
	return args
}

func (p *Parser) parseTypeParamList() []ast.TypeParamSyntax {
	if !p.curIs(lexer.LT) {
		return nil
	}
	p.next()
	var params []ast.TypeParamSyntax
	for !p.curIs(lexer.GT) && !p.curIs(lexer.EOF) {
		tp := ast.TypeParamSyntax{Name: p.cur.Literal}
		p.next()
		if p.curIsKeyword("extends") {
			p.next()
			tp.Constraint = p.parseTypeSyntax()
		}
		if p.curIs(lexer.ASSIGN) {
			p.next()
			tp.Default = p.parseTypeSyntax()
		}
		params = append(params, tp)
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.GT)
	return params
}
