package parser

import (
	"strconv"
	"strings"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/lexer"
)

func (p *Parser) parseExpression(prec int) ast.Expression {
	prefix := p.prefixFns[p.cur.Type]
	if prefix == nil {
		p.errorf("no prefix parse function for %s (%q)", p.cur.Type, p.cur.Literal)
		return nil
	}
	left := prefix()

	for !p.curIs(lexer.SEMICOLON) && prec < p.curPrecedence() {
		infix := p.infixFns[p.cur.Type]
		if infix == nil {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentOrKeywordExpr() ast.Expression {
	switch p.cur.Literal {
	case "true", "false":
		b := &ast.BoolLiteral{BaseNode: p.base(), Value: p.cur.Literal == "true"}
		p.next()
		return b
	case "null":
		n := &ast.NullLiteral{BaseNode: p.base()}
		p.next()
		return n
	case "undefined":
		u := &ast.UndefinedLiteral{BaseNode: p.base()}
		p.next()
		return u
	case "this":
		t := &ast.ThisExpression{BaseNode: p.base()}
		p.next()
		return t
	case "await":
		base := p.base()
		p.next()
		return &ast.AwaitExpression{BaseNode: base, Argument: p.parseExpression(precUnary)}
	case "yield":
		base := p.base()
		p.next()
		delegate := false
		if p.curIs(lexer.STAR) {
			delegate = true
			p.next()
		}
		var arg ast.Expression
		if !p.curIs(lexer.SEMICOLON) && !p.curIs(lexer.RPAREN) && !p.curIs(lexer.RBRACE) && !p.curIs(lexer.COMMA) {
			arg = p.parseExpression(precAssign)
		}
		return &ast.YieldExpression{BaseNode: base, Argument: arg, Delegate: delegate}
	case "new":
		return p.parseNew()
	case "function":
		return p.parseFunctionLiteral(false)
	case "async":
		if p.peekIs(lexer.IDENT) && p.peek.Literal == "function" {
			p.next()
			return p.parseFunctionLiteral(true)
		}
		if isArrowLookahead(p) {
			p.next()
			return p.parseArrowFromAsync()
		}
	case "typeof":
		base := p.base()
		p.next()
		return &ast.UnaryExpression{BaseNode: base, Op: "typeof", Operand: p.parseExpression(precUnary)}
	}

	ident := &ast.Identifier{BaseNode: p.base(), Name: p.cur.Literal}
	if p.peekIs(lexer.ARROW) {
		p.next()
		return p.parseArrowSingleParam(ident)
	}
	p.next()
	return ident
}

func isArrowLookahead(p *Parser) bool {
	return p.peekIs(lexer.LPAREN) || p.peekIs(lexer.IDENT)
}

func (p *Parser) parseArrowFromAsync() ast.Expression {
	fn := p.parseArrowBody()
	fn.IsAsync = true
	return fn
}

func (p *Parser) parseArrowSingleParam(ident *ast.Identifier) ast.Expression {
	base := ident.BaseNode
	p.next() // consume =>
	fn := &ast.FunctionLiteral{BaseNode: base, IsArrow: true, Params: []ast.Param{{Name: ident.Name}}}
	p.finishArrowBody(fn)
	return fn
}

func (p *Parser) parseArrowBody() *ast.FunctionLiteral {
	base := p.base()
	params, typeParams := p.parseParamList()
	var retType ast.TypeSyntax
	if p.curIs(lexer.COLON) {
		p.next()
		retType = p.parseTypeSyntax()
	}
	p.expect(lexer.ARROW)
	fn := &ast.FunctionLiteral{BaseNode: base, IsArrow: true, Params: params, TypeParams: typeParams, ReturnType: retType}
	p.finishArrowBody(fn)
	return fn
}

func (p *Parser) finishArrowBody(fn *ast.FunctionLiteral) {
	if p.curIs(lexer.LBRACE) {
		fn.Body = p.parseBlockStatement()
		return
	}
	fn.ExprBody = p.parseExpression(precAssign)
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := p.cur.Literal
	base := p.base()
	var v int64
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		parsed, err := strconv.ParseInt(lit[2:], 16, 64)
		if err != nil {
			p.errorf("invalid hex integer literal %q", lit)
		}
		v = parsed
	} else {
		parsed, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			p.errorf("invalid integer literal %q", lit)
		}
		v = parsed
	}
	p.next()
	return &ast.IntegerLiteral{BaseNode: base, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	base := p.base()
	v, err := strconv.ParseFloat(p.cur.Literal, 64)
	if err != nil {
		p.errorf("invalid float literal %q", p.cur.Literal)
	}
	p.next()
	return &ast.FloatLiteral{BaseNode: base, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	lit := &ast.StringLiteral{BaseNode: p.base(), Value: p.cur.Literal}
	p.next()
	return lit
}

func (p *Parser) parseTemplateLiteral() ast.Expression {
	base := p.base()
	raw := p.cur.Literal
	p.next()
	return &ast.TemplateLiteral{BaseNode: base, Parts: splitTemplateParts(raw, p, base)}
}

// splitTemplateParts splits a raw template body (already lexed as one
// token) into literal-text and `${...}` interpolation parts, re-lexing
// each interpolation as its own expression.
func splitTemplateParts(raw string, p *Parser, base ast.BaseNode) []ast.TemplatePart {
	var parts []ast.TemplatePart
	i := 0
	for i < len(raw) {
		start := i
		for i < len(raw) && !(raw[i] == '$' && i+1 < len(raw) && raw[i+1] == '{') {
			i++
		}
		if i > start {
			parts = append(parts, ast.TemplatePart{Text: raw[start:i]})
		}
		if i >= len(raw) {
			break
		}
		i += 2
		depth := 1
		exprStart := i
		for i < len(raw) && depth > 0 {
			if raw[i] == '{' {
				depth++
			} else if raw[i] == '}' {
				depth--
				if depth == 0 {
					break
				}
			}
			i++
		}
		exprSrc := raw[exprStart:i]
		i++ // consume closing }
		sub := New(lexer.New(exprSrc), p.file, p.diags)
		expr := sub.parseExpression(precLowest)
		parts = append(parts, ast.TemplatePart{Expr: expr})
	}
	return parts
}

func (p *Parser) parseParenOrArrow() ast.Expression {
	savedCur, savedPeek := p.cur, p.peek
	if looksLikeArrowParams(p) {
		return p.parseArrowBody()
	}
	p.cur, p.peek = savedCur, savedPeek
	base := p.base()
	p.next()
	if p.curIs(lexer.IDENT) && p.peekIs(lexer.COLON) {
		params, _ := p.parseParamListFromOpenParen()
		var retType ast.TypeSyntax
		if p.curIs(lexer.COLON) {
			p.next()
			retType = p.parseTypeSyntax()
		}
		p.expect(lexer.ARROW)
		fn := &ast.FunctionLiteral{BaseNode: base, IsArrow: true, Params: params, ReturnType: retType}
		p.finishArrowBody(fn)
		return fn
	}
	expr := p.parseExpression(precLowest)
	p.expect(lexer.RPAREN)
	return &ast.ParenWrap{BaseNode: base, Inner: expr}
}

// looksLikeArrowParams performs a conservative lookahead: `(` immediately
// followed by `)` (zero-arg arrow) is always an arrow param list. The
// annotated form `(x: T, ...)` is recognized by parseParenOrArrow once
// it has consumed the `(`. Anything else is treated as a parenthesized
// expression.
// This purposefully does not attempt full backtracking — ambiguous inputs
// should prefer the simpler parenthesized-expression parse, matching the
// front end's stance of not guessing intent.
func looksLikeArrowParams(p *Parser) bool {
	return p.peekIs(lexer.RPAREN)
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	base := p.base()
	p.next()
	var elems []ast.Expression
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		elems = append(elems, p.parseExpression(precAssign))
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACKET)
	return &ast.ArrayLiteral{BaseNode: base, Elements: elems}
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	base := p.base()
	p.next()
	var props []ast.ObjectProperty
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.DOTDOTDOT) {
			p.next()
			props = append(props, ast.ObjectProperty{Spread: true, Value: p.parseExpression(precAssign)})
		} else {
			key := p.cur.Literal
			computed := false
			if p.curIs(lexer.LBRACKET) {
				p.next()
				keyExpr := p.parseExpression(precAssign)
				p.expect(lexer.RBRACKET)
				computed = true
				key = keyExpr.String()
			} else {
				p.next()
			}
			if p.curIs(lexer.COLON) {
				p.next()
				val := p.parseExpression(precAssign)
				props = append(props, ast.ObjectProperty{Key: key, Computed: computed, Value: val})
			} else {
				props = append(props, ast.ObjectProperty{Key: key, Value: &ast.Identifier{Name: key}, Shorthand: true})
			}
		}
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.ObjectLiteral{BaseNode: base, Properties: props}
}

func (p *Parser) parseUnary() ast.Expression {
	base := p.base()
	op := p.cur.Literal
	p.next()
	return &ast.UnaryExpression{BaseNode: base, Op: op, Operand: p.parseExpression(precUnary)}
}

func (p *Parser) parsePrefixUpdate() ast.Expression {
	base := p.base()
	op := p.cur.Literal
	p.next()
	return &ast.UpdateExpression{BaseNode: base, Op: op, Operand: p.parseExpression(precUnary), Prefix: true}
}

func (p *Parser) parsePostfixUpdate(left ast.Expression) ast.Expression {
	base := p.base()
	op := p.cur.Literal
	p.next()
	return &ast.UpdateExpression{BaseNode: base, Op: op, Operand: left, Prefix: false}
}

func (p *Parser) parseSpread() ast.Expression {
	base := p.base()
	p.next()
	return &ast.SpreadExpression{BaseNode: base, Argument: p.parseExpression(precAssign)}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	base := p.base()
	op := p.cur.Literal
	prec := p.curPrecedence()
	p.next()
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{BaseNode: base, Op: op, Left: left, Right: right}
}

func (p *Parser) parseLogical(left ast.Expression) ast.Expression {
	base := p.base()
	op := p.cur.Literal
	prec := p.curPrecedence()
	p.next()
	right := p.parseExpression(prec)
	return &ast.LogicalExpression{BaseNode: base, Op: op, Left: left, Right: right}
}

func (p *Parser) parseAssignment(left ast.Expression) ast.Expression {
	base := p.base()
	op := p.cur.Literal
	p.next()
	right := p.parseExpression(precAssign - 1)
	return &ast.AssignmentExpression{BaseNode: base, Op: op, Target: left, Value: right}
}

func (p *Parser) parseConditional(test ast.Expression) ast.Expression {
	base := p.base()
	p.next()
	then := p.parseExpression(precAssign)
	p.expect(lexer.COLON)
	elseExpr := p.parseExpression(precAssign)
	return &ast.ConditionalExpression{BaseNode: base, Test: test, Then: then, Else: elseExpr}
}

func (p *Parser) parseMember(left ast.Expression) ast.Expression {
	base := p.base()
	p.next()
	prop := &ast.Identifier{BaseNode: p.base(), Name: p.cur.Literal}
	p.next()
	return &ast.MemberExpression{BaseNode: base, Object: left, Property: prop}
}

func (p *Parser) parseOptionalMember(left ast.Expression) ast.Expression {
	base := p.base()
	p.next()
	prop := &ast.Identifier{BaseNode: p.base(), Name: p.cur.Literal}
	p.next()
	return &ast.MemberExpression{BaseNode: base, Object: left, Property: prop, Optional: true}
}

func (p *Parser) parseComputedMember(left ast.Expression) ast.Expression {
	base := p.base()
	p.next()
	idx := p.parseExpression(precLowest)
	p.expect(lexer.RBRACKET)
	return &ast.MemberExpression{BaseNode: base, Object: left, Property: idx, Computed: true}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	base := p.base()
	p.next()
	var args []ast.Expression
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		args = append(args, p.parseExpression(precAssign))
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return &ast.CallExpression{BaseNode: base, Callee: callee, Args: args}
}

func (p *Parser) parseNew() ast.Expression {
	base := p.base()
	p.next()
	callee := p.parseExpression(precCall)
	if call, ok := callee.(*ast.CallExpression); ok {
		return &ast.NewExpression{BaseNode: base, Callee: call.Callee, Args: call.Args, TypeArgs: call.TypeArgs}
	}
	return &ast.NewExpression{BaseNode: base, Callee: callee}
}
