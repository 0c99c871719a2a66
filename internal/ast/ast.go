// Package ast defines the abstract syntax tree produced by the front
// end for the input language: a TypeScript-shaped structural language
// restricted to the subset tsonic compiles. AST nodes are
// produced once by the parser and never mutated afterward —
// later stages read them and attach side-tables
// (binding info, captured type-syntax handles) rather than editing them
// in place.
package ast

import "github.com/tsoniclang/tsonic/internal/lexer"

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// TypeSyntax is a parsed type annotation, kept as syntax (not yet
// resolved to an IrType). The binding layer's captureTypeSyntax produces
// an opaque handle over one of these; the type system resolves the
// handle to an IrType lazily, during IR construction.
type TypeSyntax interface {
	Node
	typeSyntaxNode()
}

// BaseNode carries the token and position shared by every concrete node.
type BaseNode struct {
	Token lexer.Token
}

func (b BaseNode) TokenLiteral() string   { return b.Token.Literal }
func (b BaseNode) Pos() lexer.Position    { return b.Token.Pos }

// Program is the root of one parsed source file.
type Program struct {
	Statements []Statement
	Path       string // source file path, used to derive the module's namespace/container
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}
