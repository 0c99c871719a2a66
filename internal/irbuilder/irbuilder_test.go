package irbuilder

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/binder"
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/parser"
	"github.com/tsoniclang/tsonic/internal/types"
)

func build(t *testing.T, src string) (*ast.Program, *ir.Module, *diag.Collector) {
	t.Helper()
	diags := diag.NewCollector()
	prog := parser.ParseProgram(src, "test.tsx", diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", diags.Items())
	}
	bindRes := binder.Bind(prog, "test.tsx", diags)
	mod := Build(prog, bindRes, "test.tsx", "App", "Test", diags)
	return prog, mod, diags
}

func TestBuild_ConvertsVariableDeclarationWithPrimitiveType(t *testing.T) {
	_, mod, _ := build(t, `const width: number = 10;`)
	if len(mod.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Statements))
	}
	vd, ok := mod.Statements[0].(*ir.VarDecl)
	if !ok {
		t.Fatalf("expected *ir.VarDecl, got %T", mod.Statements[0])
	}
	prim, ok := vd.Declarators[0].Type.(*types.PrimitiveType)
	if !ok || prim.Name != "number" || prim.NumericIntent != types.Double {
		t.Fatalf("unexpected declared type: %+v", vd.Declarators[0].Type)
	}
}

func TestBuild_AnonymousObjectLiteralSynthesizesInterface(t *testing.T) {
	_, mod, _ := build(t, `const p = { x: 1, y: 2 };`)
	if len(mod.AnonymousTypes) != 1 {
		t.Fatalf("expected 1 synthesized anonymous interface, got %d", len(mod.AnonymousTypes))
	}
	synth := mod.AnonymousTypes[0]
	if len(synth.Members) != 2 {
		t.Fatalf("unexpected synthesized members: %+v", synth.Members)
	}
}

func TestBuild_AnonymousObjectLiteralsWithSameShapeReuseSynthesis(t *testing.T) {
	_, mod, _ := build(t, `const a = { x: 1 }; const b = { x: 2 };`)
	if len(mod.AnonymousTypes) != 1 {
		t.Fatalf("expected shapes to be deduplicated, got %d synthesized types", len(mod.AnonymousTypes))
	}
}

func TestBuild_UnionOfObjectLiteralArmsPromotedToInterfaces(t *testing.T) {
	_, mod, _ := build(t, `type Shape = { kind: "circle", r: number } | { kind: "square", s: number };`)
	var ifaces int
	var alias *ir.TypeAliasDecl
	for _, s := range mod.Statements {
		switch st := s.(type) {
		case *ir.InterfaceDecl:
			ifaces++
		case *ir.TypeAliasDecl:
			alias = st
		}
	}
	if ifaces != 2 {
		t.Fatalf("expected 2 synthesized arm interfaces, got %d", ifaces)
	}
	if alias == nil {
		t.Fatalf("expected a type alias statement")
	}
	union, ok := alias.Type.(*types.UnionType)
	if !ok || len(union.Types) != 2 {
		t.Fatalf("expected alias type to be a 2-member union, got %+v", alias.Type)
	}
}

func TestBuild_MarkerInterfaceFilteredAndStructFlagSet(t *testing.T) {
	_, mod, _ := build(t, `
		interface Struct { __brand: never; }
		class Point extends Struct { x: number; y: number; }
	`)
	for _, s := range mod.Statements {
		if _, ok := s.(*ir.InterfaceDecl); ok {
			t.Fatalf("marker interface should not be emitted, got %+v", s)
		}
	}
	cls, ok := mod.Statements[0].(*ir.ClassDecl)
	if !ok {
		t.Fatalf("expected *ir.ClassDecl, got %T", mod.Statements[0])
	}
	if !cls.IsStruct {
		t.Fatalf("expected IsStruct=true on class extending the struct marker")
	}
}

func TestBuild_RefWrapperUnwrapsParamAndSetsPassingMode(t *testing.T) {
	_, mod, _ := build(t, `function swap(a: ref<number>, b: ref<number>): void {}`)
	fn, ok := mod.Statements[0].(*ir.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ir.FunctionDecl, got %T", mod.Statements[0])
	}
	if fn.Params[0].Passing != ir.PassRef {
		t.Fatalf("expected PassRef, got %v", fn.Params[0].Passing)
	}
	if _, ok := fn.Params[0].Type.(*types.PrimitiveType); !ok {
		t.Fatalf("expected ref<number> to unwrap to a primitive number, got %+v", fn.Params[0].Type)
	}
}

func TestBuild_IndexSignatureOnlyInterfaceLoweredToDictionaryAlias(t *testing.T) {
	_, mod, _ := build(t, `interface StringMap { [key: string]: number; }`)
	alias, ok := mod.Statements[0].(*ir.TypeAliasDecl)
	if !ok {
		t.Fatalf("expected *ir.TypeAliasDecl, got %T", mod.Statements[0])
	}
	dict, ok := alias.Type.(*types.DictionaryType)
	if !ok || !dict.KeyIsString {
		t.Fatalf("expected a string-keyed DictionaryType, got %+v", alias.Type)
	}
}

func TestBuild_GenericFunctionValueLoweredToFunctionDecl(t *testing.T) {
	_, mod, _ := build(t, `const identity = function<T>(x: T): T { return x; };`)
	fn, ok := mod.Statements[0].(*ir.FunctionDecl)
	if !ok {
		t.Fatalf("expected the generic const to lower to *ir.FunctionDecl, got %T", mod.Statements[0])
	}
	if fn.Name != "identity" || len(fn.TypeParams) != 1 {
		t.Fatalf("unexpected generic function decl: %+v", fn)
	}
}

func TestBuild_InstanceofNarrowsIdentifierTypeInThenBranch(t *testing.T) {
	_, mod, _ := build(t, `
		function describe(x: unknown): void {
			if (x instanceof Widget) {
				log(x);
			}
		}
	`)
	fn := mod.Statements[0].(*ir.FunctionDecl)
	ifStmt := fn.Body.Statements[0].(*ir.IfStmt)
	call := ifStmt.Then.(*ir.BlockStmt).Statements[0].(*ir.ExprStmt).Expr.(*ir.Call)
	arg := call.Args[0].(*ir.Identifier)
	ref, ok := arg.Inferred().(*types.ReferenceType)
	if !ok || ref.Name != "Widget" {
		t.Fatalf("expected x to be narrowed to Widget inside the guard, got %+v", arg.Inferred())
	}
}

func TestBuild_PromiseOfStringResolvesClrTaskGeneric(t *testing.T) {
	_, mod, _ := build(t, `async function load(): Promise<string> { return ""; }`)
	fn := mod.Statements[0].(*ir.FunctionDecl)
	ref, ok := fn.ReturnType.(*types.ReferenceType)
	if !ok || ref.ResolvedClrType != "System.Threading.Tasks.Task<System.String>" {
		t.Fatalf("unexpected Promise<string> resolution: %+v", fn.ReturnType)
	}
}
