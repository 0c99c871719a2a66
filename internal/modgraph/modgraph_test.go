package modgraph

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/diag"
)

func TestDeriveNamespace(t *testing.T) {
	got := DeriveNamespace("App", "/src", "/src/widgets/button.ts")
	if got != "App.widgets" {
		t.Fatalf("DeriveNamespace = %q, want %q", got, "App.widgets")
	}
}

func TestDeriveContainerName_StripsHyphens(t *testing.T) {
	got := DeriveContainerName("/src/my-widget.ts")
	if got != "mywidget" {
		t.Fatalf("DeriveContainerName = %q, want %q", got, "mywidget")
	}
}

func TestClassifyImport(t *testing.T) {
	if ClassifyImport("./widget.ts", nil) != ImportLocal {
		t.Fatalf("expected local import")
	}
	if ClassifyImport("System", nil) != ImportClrNamespace {
		t.Fatalf("expected CLR namespace import")
	}
}

type fakeRegistry map[string]bool

func (r fakeRegistry) IsBoundPackage(name string) bool { return r[name] }

func TestClassifyImport_BoundAssembly(t *testing.T) {
	reg := fakeRegistry{"SomePackage": true}
	if ClassifyImport("SomePackage", reg) != ImportBoundAssembly {
		t.Fatalf("expected bound assembly import")
	}
}

func TestBuildGraph_DetectsCircularDependency(t *testing.T) {
	a := &ModuleInfo{Path: "/src/a.ts", Imports: []ResolvedImport{{Kind: ImportLocal, ResolvedTo: "/src/b.ts"}}}
	b := &ModuleInfo{Path: "/src/b.ts", Imports: []ResolvedImport{{Kind: ImportLocal, ResolvedTo: "/src/a.ts"}}}
	diags := diag.NewCollector()
	BuildGraph([]*ModuleInfo{a, b}, diags)
	if !diags.HasErrors() {
		t.Fatalf("expected a circular-dependency diagnostic")
	}
}

func TestBuildGraph_AcyclicProducesNoErrors(t *testing.T) {
	a := &ModuleInfo{Path: "/src/a.ts", Imports: []ResolvedImport{{Kind: ImportLocal, ResolvedTo: "/src/b.ts"}}}
	b := &ModuleInfo{Path: "/src/b.ts"}
	diags := diag.NewCollector()
	BuildGraph([]*ModuleInfo{a, b}, diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}
}

func TestIndependentGroups_SeparatesUnrelatedTrees(t *testing.T) {
	a := &ModuleInfo{Path: "/src/a.ts", Imports: []ResolvedImport{{Kind: ImportLocal, ResolvedTo: "/src/b.ts"}}}
	b := &ModuleInfo{Path: "/src/b.ts"}
	c := &ModuleInfo{Path: "/src/c.ts"}
	diags := diag.NewCollector()
	g := BuildGraph([]*ModuleInfo{a, b, c}, diags)
	groups := g.IndependentGroups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 independent groups, got %d", len(groups))
	}
}

func TestBuildModuleInfo_DetectsTopLevelCode(t *testing.T) {
	prog := &ast.Program{
		Path: "/src/entry.ts",
		Statements: []ast.Statement{
			&ast.ExpressionStatement{Expr: &ast.CallExpression{Callee: &ast.Identifier{Name: "main"}}},
		},
	}
	mi := BuildModuleInfo("App", "/src", prog, nil)
	if !mi.HasTopLevelCode {
		t.Fatalf("expected HasTopLevelCode=true")
	}
}

func TestBuildModuleInfo_DeclarationsOnlyIsStaticContainer(t *testing.T) {
	prog := &ast.Program{
		Path: "/src/lib.ts",
		Statements: []ast.Statement{
			&ast.FunctionDeclaration{Name: "helper", Exported: true},
		},
	}
	mi := BuildModuleInfo("App", "/src", prog, nil)
	if mi.HasTopLevelCode {
		t.Fatalf("expected HasTopLevelCode=false")
	}
	if len(mi.Exports) != 1 || mi.Exports[0] != "helper" {
		t.Fatalf("unexpected exports: %v", mi.Exports)
	}
}
