package binder

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/parser"
)

func bindSrc(t *testing.T, src string) (*ast.Program, *Result) {
	t.Helper()
	diags := diag.NewCollector()
	prog := parser.ParseProgram(src, "test.tsx", diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", diags.Items())
	}
	return prog, Bind(prog, "test.tsx", diags)
}

func TestBind_ResolvesLocalVariableReference(t *testing.T) {
	prog, res := bindSrc(t, `const x = 1; const y = x + 1;`)
	yDecl := prog.Statements[1].(*ast.VariableDeclaration)
	binExpr := yDecl.Declarators[0].Init.(*ast.BinaryExpression)
	ident := binExpr.Left.(*ast.Identifier)
	if _, ok := res.Resolved[ident]; !ok {
		t.Fatalf("expected identifier %q to resolve to a DeclId", ident.Name)
	}
}

func TestBind_TracksWrittenSymbols(t *testing.T) {
	prog, res := bindSrc(t, `let count = 0; count = count + 1;`)
	letDecl := prog.Statements[0].(*ast.VariableDeclaration)
	declNode := prog.Statements[0]
	var declID DeclId
	for _, d := range res.Decls {
		if d.Node == declNode && d.Name == letDecl.Declarators[0].Name {
			declID = d.Id
		}
	}
	if declID == 0 {
		t.Fatalf("declaration not found")
	}
	if !res.Written[declID] {
		t.Fatalf("expected %q to be marked written", letDecl.Declarators[0].Name)
	}
}

func TestBind_ConstNeverWrittenStaysUnwritten(t *testing.T) {
	_, res := bindSrc(t, `const total = 10;`)
	for _, d := range res.Decls {
		if d.Name == "total" && res.Written[d.Id] {
			t.Fatalf("const %q must never be marked written", d.Name)
		}
	}
}

func TestBind_GenericFunctionValueDetectedThroughAlias(t *testing.T) {
	_, res := bindSrc(t, `
const identity = function<T>(x: T): T { return x; };
const alias = identity;
`)
	var aliasID DeclId
	for _, d := range res.Decls {
		if d.Name == "alias" {
			aliasID = d.Id
		}
	}
	fn, ok := res.IsGenericFunctionValue(aliasID)
	if !ok || fn == nil {
		t.Fatalf("expected alias to resolve to a generic function value")
	}
}

func TestBind_ShadowingInNestedScopeResolvesToInnerDecl(t *testing.T) {
	prog, res := bindSrc(t, `
const x = 1;
function f(): number {
  const x = 2;
  return x;
}`)
	fn := prog.Statements[1].(*ast.FunctionDeclaration)
	retStmt := fn.Body.Statements[1].(*ast.ReturnStatement)
	ident := retStmt.Argument.(*ast.Identifier)
	resolvedID, ok := res.Resolved[ident]
	if !ok {
		t.Fatalf("expected inner x to resolve")
	}
	var innerDeclID DeclId
	for _, d := range res.Decls {
		if d.Name == "x" && d.Node == fn.Body.Statements[0] {
			innerDeclID = d.Id
		}
	}
	if resolvedID != innerDeclID {
		t.Fatalf("expected return to resolve to the inner shadowing declaration")
	}
}
