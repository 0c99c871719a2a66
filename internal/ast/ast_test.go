package ast

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/lexer"
)

func TestProgram_PosFallsBackToFirstStatement(t *testing.T) {
	tok := lexer.Token{Pos: lexer.Position{Line: 3, Column: 4}}
	ident := &Identifier{BaseNode: BaseNode{Token: tok}, Name: "x"}
	p := &Program{Statements: []Statement{&ExpressionStatement{BaseNode: BaseNode{Token: tok}, Expr: ident}}}
	if got := p.Pos(); got.Line != 3 || got.Column != 4 {
		t.Errorf("Pos() = %+v, want {3 4 ...}", got)
	}
}

func TestProgram_EmptyPosDefaultsToOrigin(t *testing.T) {
	p := &Program{}
	if got := p.Pos(); got.Line != 1 || got.Column != 1 {
		t.Errorf("Pos() = %+v, want {1 1 0}", got)
	}
}

func TestVariableDeclaration_String(t *testing.T) {
	v := &VariableDeclaration{
		Kind:        DeclConst,
		Declarators: []Declarator{{Name: "a"}, {Name: "b"}},
	}
	if got, want := v.String(), "const a, b"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTypeReferenceSyntax_StringWithArgs(t *testing.T) {
	tr := &TypeReferenceSyntax{
		Name:     "Array",
		TypeArgs: []TypeSyntax{&TypeReferenceSyntax{Name: "number"}},
	}
	if got, want := tr.String(), "Array<number>"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMemberExpression_ComputedVsDot(t *testing.T) {
	obj := &Identifier{Name: "arr"}
	idx := &IntegerLiteral{BaseNode: BaseNode{Token: lexer.Token{Literal: "1"}}, Value: 1}
	m := &MemberExpression{Object: obj, Property: idx, Computed: true}
	if got, want := m.String(), "arr[1]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
