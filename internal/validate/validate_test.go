package validate

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/binder"
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/irbuilder"
	"github.com/tsoniclang/tsonic/internal/parser"
)

func buildModule(t *testing.T, src string) (*ir.Module, *diag.Collector) {
	t.Helper()
	diags := diag.NewCollector()
	prog := parser.ParseProgram(src, "test.tsx", diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", diags.Items())
	}
	bindRes := binder.Bind(prog, "test.tsx", diags)
	mod := irbuilder.Build(prog, bindRes, "test.tsx", "App", "Test", diags)
	return mod, diags
}

func TestNumericProofPass_RejectsNonInt32Index(t *testing.T) {
	mod, _ := buildModule(t, `
		const arr: number[] = [1, 2, 3];
		const x = arr[1.5 as int];
	`)
	diags := diag.NewCollector()
	(&NumericProofPass{}).Run(mod, NewContext(""), diags)
	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.CodeIndexNotInt32 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected TSN5107, got %v", diags.Items())
	}
}

func TestNumericProofPass_AcceptsProvenInt32Literal(t *testing.T) {
	mod, _ := buildModule(t, `
		const arr: number[] = [1, 2, 3];
		const x = arr[1];
	`)
	diags := diag.NewCollector()
	(&NumericProofPass{}).Run(mod, NewContext(""), diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}
}

func TestNumericProofPass_AcceptsProvenInt32Identifier(t *testing.T) {
	mod, _ := buildModule(t, `
		function at(arr: number[], i: int): number {
			return arr[i];
		}
	`)
	diags := diag.NewCollector()
	(&NumericProofPass{}).Run(mod, NewContext(""), diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}
}

func TestCoreProvenancePass_RejectsRedeclarationOutsideCore(t *testing.T) {
	mod, _ := buildModule(t, `function sbyte(): void {}`)
	mod.Namespace = "App.Feature"
	diags := diag.NewCollector()
	(&CoreProvenancePass{}).Run(mod, NewContext("App.Core"), diags)
	if !diags.HasErrors() {
		t.Fatalf("expected TSN7440, got none")
	}
}

func TestCoreProvenancePass_AllowsDeclarationInsideCore(t *testing.T) {
	mod, _ := buildModule(t, `function sbyte(): void {}`)
	mod.Namespace = "App.Core"
	diags := diag.NewCollector()
	(&CoreProvenancePass{}).Run(mod, NewContext("App.Core"), diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}
}

func TestAttributeCollectionPass_AttachesAttributeAndRemovesMarker(t *testing.T) {
	mod, _ := buildModule(t, `
		function handler(): void {}
		A.on(handler).type(Route, "/ping", 200);
	`)
	diags := diag.NewCollector()
	(&AttributeCollectionPass{}).Run(mod, NewContext(""), diags)

	var fn *ir.FunctionDecl
	for _, s := range mod.Statements {
		if f, ok := s.(*ir.FunctionDecl); ok {
			fn = f
		}
		if _, ok := s.(*ir.ExprStmt); ok {
			t.Fatalf("expected marker statement to be removed, found %+v", s)
		}
	}
	if fn == nil || len(fn.Attributes) != 1 || fn.Attributes[0].AttrType != "Route" {
		t.Fatalf("expected Route attribute attached to handler, got %+v", fn)
	}
}

func TestAttributeCollectionPass_WarnsOnUnmatchedTarget(t *testing.T) {
	mod, _ := buildModule(t, `A.on(missing).type(Route, "/ping");`)
	diags := diag.NewCollector()
	(&AttributeCollectionPass{}).Run(mod, NewContext(""), diags)
	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.CodeUnmatchedAttribute {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected TSN5002 warning, got %v", diags.Items())
	}
}

func TestSynthesisFinalizationPass_AppendsAnonymousInterfaces(t *testing.T) {
	mod, _ := buildModule(t, `const p = { x: 1, y: 2 };`)
	diags := diag.NewCollector()
	before := len(mod.Statements)
	(&SynthesisFinalizationPass{}).Run(mod, NewContext(""), diags)
	if len(mod.Statements) != before+1 {
		t.Fatalf("expected one synthesized interface appended, got %d new statements", len(mod.Statements)-before)
	}
	last, ok := mod.Statements[len(mod.Statements)-1].(*ir.InterfaceDecl)
	if !ok || len(last.Members) != 2 {
		t.Fatalf("unexpected appended declaration: %+v", mod.Statements[len(mod.Statements)-1])
	}
}

func TestNamingCollisionPass_DetectsPascalCaseCollision(t *testing.T) {
	mod, _ := buildModule(t, `
		class fooBar {}
		class FooBar {}
	`)
	diags := diag.NewCollector()
	(&NamingCollisionPass{}).Run(mod, NewContext(""), diags)
	found := false
	for _, d := range diags.Items() {
		if d.Code == diag.CodeNamingCollision {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected TSN3003, got %v", diags.Items())
	}
}

func TestNamingCollisionPass_RenamesContainerOnCollision(t *testing.T) {
	mod, _ := buildModule(t, `class Test {}`)
	mod.ContainerName = "Test"
	diags := diag.NewCollector()
	(&NamingCollisionPass{}).Run(mod, NewContext(""), diags)
	if mod.ContainerName != "Test__Module" {
		t.Fatalf("expected container renamed to Test__Module, got %q", mod.ContainerName)
	}
}

func TestArrowReturnFinalizationPass_CopiesBodyTypeIntoReturnType(t *testing.T) {
	mod, _ := buildModule(t, `const double = (x: number) => x * 2;`)
	diags := diag.NewCollector()
	(&NumericProofPass{}).Run(mod, NewContext(""), diags)
	(&ArrowReturnFinalizationPass{}).Run(mod, NewContext(""), diags)

	vd, ok := mod.Statements[0].(*ir.VarDecl)
	if !ok {
		t.Fatalf("expected VarDecl, got %T", mod.Statements[0])
	}
	lit, ok := vd.Declarators[0].Init.(*ir.FunctionLit)
	if !ok {
		t.Fatalf("expected FunctionLit initializer, got %T", vd.Declarators[0].Init)
	}
	if isUnannotatedAny(lit.ReturnType) {
		t.Fatalf("expected arrow return type to be finalized from body, still any")
	}
}

func TestApplyCase_PascalAndSnake(t *testing.T) {
	if got := ApplyCase(CasePascal, "fooBar"); got != "FooBar" {
		t.Fatalf("expected FooBar, got %q", got)
	}
	if got := ApplyCase(CaseSnake, "fooBar"); got != "foo_bar" {
		t.Fatalf("expected foo_bar, got %q", got)
	}
	if got := ApplyCase(CaseNone, "fooBar"); got != "fooBar" {
		t.Fatalf("expected unchanged fooBar, got %q", got)
	}
}

func TestDefault_RunsAllSevenPassesInOrder(t *testing.T) {
	pm := Default()
	if len(pm.passes) != 7 {
		t.Fatalf("expected 7 passes, got %d", len(pm.passes))
	}
	want := []string{
		"unsupported-features",
		"core-intrinsic-provenance",
		"attribute-collection",
		"numeric-proof",
		"arrow-return-finalization",
		"anonymous-union-synthesis-finalization",
		"naming-policy-collision-check",
	}
	for i, p := range pm.passes {
		if p.Name() != want[i] {
			t.Errorf("pass %d = %q, want %q", i, p.Name(), want[i])
		}
	}
}
