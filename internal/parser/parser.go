// Package parser implements a recursive-descent, Pratt-style parser for
// the input language. It follows the
// classic prefix/infix parse-function table shape used throughout the
// teacher corpus rather than a generated parser, trading some grammar
// coverage for a parser that is easy to extend one construct at a time.
package parser

import (
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/lexer"
)

// precedence levels, lowest to highest.
const (
	_ int = iota
	precLowest
	precAssign     // = += -= *= /=
	precNullish    // ??
	precOr         // ||
	precAnd        // &&
	precBitOr      // |
	precBitXor     // ^
	precBitAnd     // &
	precEquality   // == != === !==
	precRelational // < > <= >= instanceof
	precShift      // << >>
	precAdditive   // + -
	precMultiplicative // * / %
	precExponent   // **
	precUnary      // ! - + ~ typeof await
	precPostfix    // ++ -- (postfix)
	precCall       // foo() foo.bar foo[bar] foo?.bar
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN: precAssign, lexer.PLUSEQ: precAssign, lexer.MINUSEQ: precAssign,
	lexer.STAREQ: precAssign, lexer.SLASHEQ: precAssign,
	lexer.NULLISH: precNullish,
	lexer.OR:      precOr,
	lexer.AND:     precAnd,
	lexer.PIPE:    precBitOr,
	lexer.CARET:   precBitXor,
	lexer.AMP:     precBitAnd,
	lexer.EQ: precEquality, lexer.NOTEQ: precEquality, lexer.STRICTEQ: precEquality, lexer.STRICTNEQ: precEquality,
	lexer.LT: precRelational, lexer.GT: precRelational, lexer.LE: precRelational, lexer.GE: precRelational,
	lexer.SHL: precShift, lexer.SHR: precShift,
	lexer.PLUS: precAdditive, lexer.MINUS: precAdditive,
	lexer.STAR: precMultiplicative, lexer.SLASH: precMultiplicative, lexer.PERCENT: precMultiplicative,
	lexer.STAREXP: precExponent,
	lexer.LPAREN:   precCall,
	lexer.LBRACKET: precCall,
	lexer.DOT:      precCall,
	lexer.QUESTIONDOT: precCall,
	lexer.PLUSPLUS: precPostfix, lexer.MINUSMINUS: precPostfix,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser converts a token stream into an *ast.Program, accumulating
// parse errors as diagnostics instead of
// failing fast — later stages skip any file with parse errors.
type Parser struct {
	l      *lexer.Lexer
	file   string
	diags  *diag.Collector

	cur   lexer.Token
	peek  lexer.Token

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New constructs a Parser reading from l, reporting into diags, with
// file used for diagnostic locations.
func New(l *lexer.Lexer, file string, diags *diag.Collector) *Parser {
	p := &Parser{l: l, file: file, diags: diags}
	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdentOrKeywordExpr,
		lexer.INT:      p.parseIntegerLiteral,
		lexer.FLOAT:    p.parseFloatLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.TEMPLATE_STRING: p.parseTemplateLiteral,
		lexer.LPAREN:   p.parseParenOrArrow,
		lexer.LBRACKET: p.parseArrayLiteral,
		lexer.LBRACE:   p.parseObjectLiteral,
		lexer.BANG:     p.parseUnary,
		lexer.MINUS:    p.parseUnary,
		lexer.PLUS:     p.parseUnary,
		lexer.TILDE:    p.parseUnary,
		lexer.DOTDOTDOT: p.parseSpread,
		lexer.PLUSPLUS:  p.parsePrefixUpdate,
		lexer.MINUSMINUS: p.parsePrefixUpdate,
	}
	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS: p.parseBinary, lexer.MINUS: p.parseBinary, lexer.STAR: p.parseBinary,
		lexer.SLASH: p.parseBinary, lexer.PERCENT: p.parseBinary, lexer.STAREXP: p.parseBinary,
		lexer.EQ: p.parseBinary, lexer.NOTEQ: p.parseBinary, lexer.STRICTEQ: p.parseBinary, lexer.STRICTNEQ: p.parseBinary,
		lexer.LT: p.parseBinary, lexer.GT: p.parseBinary, lexer.LE: p.parseBinary, lexer.GE: p.parseBinary,
		lexer.SHL: p.parseBinary, lexer.SHR: p.parseBinary,
		lexer.PIPE: p.parseBinary, lexer.CARET: p.parseBinary, lexer.AMP: p.parseBinary,
		lexer.AND: p.parseLogical, lexer.OR: p.parseLogical, lexer.NULLISH: p.parseLogical,
		lexer.ASSIGN: p.parseAssignment, lexer.PLUSEQ: p.parseAssignment, lexer.MINUSEQ: p.parseAssignment,
		lexer.STAREQ: p.parseAssignment, lexer.SLASHEQ: p.parseAssignment,
		lexer.LPAREN: p.parseCall, lexer.DOT: p.parseMember, lexer.LBRACKET: p.parseComputedMember,
		lexer.QUESTIONDOT: p.parseOptionalMember,
		lexer.QUESTION: p.parseConditional,
		lexer.PLUSPLUS: p.parsePostfixUpdate, lexer.MINUSMINUS: p.parsePostfixUpdate,
	}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peek.Type == tt }
func (p *Parser) curIsKeyword(lit string) bool {
	return p.cur.Type == lexer.IDENT && p.cur.Literal == lit
}

func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curIs(tt) {
		p.next()
		return true
	}
	p.errorf("expected %s, got %s (%q)", tt, p.cur.Type, p.cur.Literal)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	loc := &diag.SourceLocation{File: p.file, Line: p.cur.Pos.Line, Column: p.cur.Pos.Column}
	p.diags.Error(diag.CodeParseError, loc, format, args...)
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return precLowest
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return precLowest
}

// ParseProgram parses one complete source file.
func ParseProgram(src, file string, diags *diag.Collector) *ast.Program {
	l := lexer.New(src)
	p := New(l, file, diags)
	prog := &ast.Program{Path: file}
	for !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			p.next()
		}
	}
	for _, e := range l.Errors() {
		p.diags.Error(diag.CodeParseError, &diag.SourceLocation{File: file, Line: e.Pos.Line, Column: e.Pos.Column}, "%s", e.Message)
	}
	return prog
}

func (p *Parser) tok() lexer.Token { return p.cur }

func (p *Parser) base() ast.BaseNode { return ast.BaseNode{Token: p.cur} }
