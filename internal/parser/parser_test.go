package parser

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/diag"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	diags := diag.NewCollector()
	prog := ParseProgram(src, "test.tsx", diags)
	for _, d := range diags.Items() {
		t.Fatalf("unexpected diagnostic: %s", d.Format())
	}
	return prog
}

func TestParse_AsyncFunctionReturningPromiseVoid(t *testing.T) {
	prog := parse(t, `async function run(): Promise<void> { await doWork(); }`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ast.FunctionDeclaration, got %T", prog.Statements[0])
	}
	if !fn.IsAsync || fn.Name != "run" {
		t.Fatalf("unexpected function decl: %+v", fn)
	}
	ret, ok := fn.ReturnType.(*ast.TypeReferenceSyntax)
	if !ok || ret.Name != "Promise" || len(ret.TypeArgs) != 1 {
		t.Fatalf("unexpected return type: %+v", fn.ReturnType)
	}
}

func TestParse_InterfaceWithOptionalMember(t *testing.T) {
	prog := parse(t, `interface Shape { name: string; area?: number; }`)
	decl, ok := prog.Statements[0].(*ast.InterfaceDeclaration)
	if !ok {
		t.Fatalf("expected *ast.InterfaceDeclaration, got %T", prog.Statements[0])
	}
	if len(decl.Members) != 2 || !decl.Members[1].Optional {
		t.Fatalf("unexpected members: %+v", decl.Members)
	}
}

func TestParse_InterfaceExtendsStructMarker(t *testing.T) {
	prog := parse(t, `interface Point extends struct { x: number; y: number; }`)
	decl, ok := prog.Statements[0].(*ast.InterfaceDeclaration)
	if !ok {
		t.Fatalf("expected *ast.InterfaceDeclaration, got %T", prog.Statements[0])
	}
	if !decl.IsStruct {
		t.Fatalf("expected IsStruct=true")
	}
}

func TestParse_ClassWithConstructorAndMethod(t *testing.T) {
	prog := parse(t, `
class Counter {
  private count: number = 0;
  constructor(start: number) { this.count = start; }
  increment(): void { this.count++; }
}`)
	decl, ok := prog.Statements[0].(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("expected *ast.ClassDeclaration, got %T", prog.Statements[0])
	}
	if len(decl.Members) != 3 {
		t.Fatalf("expected 3 members, got %d: %+v", len(decl.Members), decl.Members)
	}
	if decl.Members[1].Kind != ast.MemberConstructor {
		t.Fatalf("expected second member to be constructor, got %+v", decl.Members[1])
	}
}

func TestParse_ArrowFunctionAndUnionType(t *testing.T) {
	prog := parse(t, `const f = (x: number, y: number): number => x + y;
type Id = string | number;`)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	varDecl, ok := prog.Statements[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclaration, got %T", prog.Statements[0])
	}
	fn, ok := varDecl.Declarators[0].Init.(*ast.FunctionLiteral)
	if !ok || !fn.IsArrow || len(fn.Params) != 2 {
		t.Fatalf("unexpected arrow: %+v", varDecl.Declarators[0].Init)
	}
	alias, ok := prog.Statements[1].(*ast.TypeAliasDeclaration)
	if !ok {
		t.Fatalf("expected *ast.TypeAliasDeclaration, got %T", prog.Statements[1])
	}
	if _, ok := alias.Type.(*ast.UnionTypeSyntax); !ok {
		t.Fatalf("expected union type, got %T", alias.Type)
	}
}

func TestParse_ForOfAndTryCatch(t *testing.T) {
	prog := parse(t, `
for (const item of items) {
  try {
    process(item);
  } catch (e) {
    log(e);
  } finally {
    cleanup();
  }
}`)
	forOf, ok := prog.Statements[0].(*ast.ForOfStatement)
	if !ok {
		t.Fatalf("expected *ast.ForOfStatement, got %T", prog.Statements[0])
	}
	block, ok := forOf.Body.(*ast.BlockStatement)
	if !ok || len(block.Statements) != 1 {
		t.Fatalf("unexpected for-of body: %+v", forOf.Body)
	}
	tryStmt, ok := block.Statements[0].(*ast.TryStatement)
	if !ok || tryStmt.Catch == nil || tryStmt.Finally == nil {
		t.Fatalf("unexpected try statement: %+v", block.Statements[0])
	}
}

func TestParse_TemplateLiteralInterpolation(t *testing.T) {
	prog := parse(t, "const greeting = `hello ${name}!`;")
	varDecl := prog.Statements[0].(*ast.VariableDeclaration)
	tmpl, ok := varDecl.Declarators[0].Init.(*ast.TemplateLiteral)
	if !ok || len(tmpl.Parts) != 3 {
		t.Fatalf("unexpected template: %+v", varDecl.Declarators[0].Init)
	}
	if tmpl.Parts[1].Expr == nil {
		t.Fatalf("expected interpolated part at index 1")
	}
}

func TestParse_ImportAndExport(t *testing.T) {
	prog := parse(t, `
import { Widget } from "./widget.ts";
export function build(): Widget { return new Widget(); }`)
	imp, ok := prog.Statements[0].(*ast.ImportStatement)
	if !ok || len(imp.Names) != 1 || imp.Names[0] != "Widget" {
		t.Fatalf("unexpected import: %+v", prog.Statements[0])
	}
	fn, ok := prog.Statements[1].(*ast.FunctionDeclaration)
	if !ok || !fn.Exported {
		t.Fatalf("unexpected export: %+v", prog.Statements[1])
	}
}
