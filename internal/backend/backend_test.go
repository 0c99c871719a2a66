package backend

import (
	"strings"
	"testing"

	"github.com/tsoniclang/tsonic/internal/binder"
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/irbuilder"
	"github.com/tsoniclang/tsonic/internal/parser"
	"github.com/tsoniclang/tsonic/internal/types"
	"github.com/tsoniclang/tsonic/internal/validate"
)

func unsynthesizedObjectType() *types.ObjectType {
	return &types.ObjectType{Members: []types.ObjectMember{{Name: "x", Type: &types.PrimitiveType{Name: "number"}}}}
}

// emit runs a source snippet through the full front end, validation, and
// emission pipeline, the way internal/compiler wires the same stages
// together, so these tests exercise the backend against real IR instead
// of hand-built literals.
func emit(t *testing.T, src string) (string, *diag.Collector) {
	t.Helper()
	diags := diag.NewCollector()
	prog := parser.ParseProgram(src, "test.ts", diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", diags.Items())
	}
	bindRes := binder.Bind(prog, "test.ts", diags)
	mod := irbuilder.Build(prog, bindRes, "test.ts", "App", "Test", diags)
	mod, err := validate.Default().RunAll(mod, validate.NewContext(""), diags)
	if err != nil {
		t.Fatalf("validation returned error: %v", err)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected validation errors: %v", diags.Items())
	}
	return Emit(mod, validate.RuntimeDotnet, validate.DefaultNamingPolicy()), diags
}

func TestEmit_AsyncPromiseVoidFunction(t *testing.T) {
	src, _ := emit(t, `export async function processAsync(): Promise<void> {}`)
	if !strings.Contains(src, "async Task ProcessAsync()") {
		t.Errorf("expected async Task ProcessAsync(), got:\n%s", src)
	}
	if strings.Contains(src, "Task<void>") {
		t.Errorf("emitted Task<void>, which is not valid C#:\n%s", src)
	}
}

func TestEmit_NumberArrayUsesNativeArrayOnDotnet(t *testing.T) {
	src, _ := emit(t, `export function make(): number[] { return [1, 2, 3]; }`)
	if !strings.Contains(src, "int[]") && !strings.Contains(src, "double[]") {
		t.Errorf("expected a native C# array type for number[], got:\n%s", src)
	}
}

func TestEmit_ClassDeclarationEmitsClassName(t *testing.T) {
	src, _ := emit(t, `
		export class Point {
			x: number;
			y: number;
			constructor(x: number, y: number) {
				this.x = x;
				this.y = y;
			}
		}
	`)
	if !strings.Contains(src, "class Point") {
		t.Errorf("expected class Point, got:\n%s", src)
	}
}

func TestEmit_EnumMembersApplyNamingPolicy(t *testing.T) {
	src, _ := emit(t, `
		export enum Color { red, green, blue }
	`)
	if !strings.Contains(src, "public enum Color") {
		t.Errorf("expected public enum Color, got:\n%s", src)
	}
	if !strings.Contains(src, "Red") || !strings.Contains(src, "Green") || !strings.Contains(src, "Blue") {
		t.Errorf("expected pascal-cased enum members, got:\n%s", src)
	}
}

func TestEmit_ContainerWrapsTopLevelCodeInGeneratedMethod(t *testing.T) {
	src, _ := emit(t, `console.log("hi");`)
	if !strings.Contains(src, "__TopLevel") {
		t.Errorf("expected a generated __TopLevel method for executable top-level code, got:\n%s", src)
	}
}

func TestEmit_UsingsAreSortedRuntimeFirst(t *testing.T) {
	src, _ := emit(t, `export function f(): number { return 1; }`)
	lines := strings.Split(src, "\n")
	var usings []string
	for _, l := range lines {
		if strings.HasPrefix(l, "using ") {
			usings = append(usings, l)
		}
	}
	if len(usings) == 0 {
		t.Fatal("expected at least one using directive")
	}
	if usings[0] != "using Tsonic.Runtime;" {
		t.Errorf("expected Tsonic.Runtime as the first using, got %v", usings)
	}
}

func TestEmitType_ICEOnUnsynthesizedObjectType(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected EmitType to panic with an ICE for a bare object type")
		}
		if _, ok := r.(*diag.ICE); !ok {
			t.Fatalf("expected *diag.ICE panic, got %T: %v", r, r)
		}
	}()
	ctx := NewEmitterContext("Test", validate.RuntimeDotnet, validate.DefaultNamingPolicy())
	EmitType(unsynthesizedObjectType(), ctx)
}

func TestEmitExpression_SpreadOutsideLoweringIsICE(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected EmitExpression to panic on a raw Spread node")
		}
		if _, ok := r.(*diag.ICE); !ok {
			t.Fatalf("expected *diag.ICE panic, got %T: %v", r, r)
		}
	}()
	ctx := NewEmitterContext("Test", validate.RuntimeDotnet, validate.DefaultNamingPolicy())
	EmitExpression(&ir.Spread{}, ctx)
}
