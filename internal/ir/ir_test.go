package ir

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/types"
)

func TestModule_StatementsAreIrStatementNodes(t *testing.T) {
	mod := &Module{
		SourcePath:    "widget.ts",
		Namespace:     "App",
		ContainerName: "Widget",
		Statements: []Statement{
			&VarDecl{Kind: DeclConst, Declarators: []VarDeclarator{
				{Name: "width", Type: &types.PrimitiveType{Name: "number"}, Init: &Literal{Value: int64(10)}},
			}},
			&ExprStmt{Expr: &Call{Callee: &Identifier{Name: "render"}}},
		},
	}
	if len(mod.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(mod.Statements))
	}
	varDecl, ok := mod.Statements[0].(*VarDecl)
	if !ok || varDecl.Declarators[0].Name != "width" {
		t.Fatalf("unexpected first statement: %+v", mod.Statements[0])
	}
}

func TestExpression_InferredTypeRoundTrips(t *testing.T) {
	expr := &Literal{exprBase: exprBase{InferredType: &types.PrimitiveType{Name: "number", NumericIntent: types.Int32}}, Value: int64(5)}
	if expr.Inferred() == nil {
		t.Fatalf("expected inferred type to be set")
	}
	if expr.Inferred().StableKey() != (&types.PrimitiveType{Name: "number", NumericIntent: types.Int32}).StableKey() {
		t.Fatalf("unexpected inferred type key: %s", expr.Inferred().StableKey())
	}
}
