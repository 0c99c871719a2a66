package compiler

import (
	"strings"
	"testing"

	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/validate"
)

func baseOptions() CompilerOptions {
	return CompilerOptions{
		SourceRoot:    "/src",
		RootNamespace: "App",
		Runtime:       validate.RuntimeDotnet,
		Naming:        validate.DefaultNamingPolicy(),
	}
}

func TestCompile_SingleFileEmitsCSharp(t *testing.T) {
	files := []InputFile{
		{Path: "/src/math.ts", Source: "export function add(a: number, b: number): number { return a + b; }"},
	}
	res, err := Compile(files, baseOptions())
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	for _, d := range res.Diagnostics {
		if d.Severity == diag.SeverityError {
			t.Fatalf("unexpected error diagnostic: %s", d.Format())
		}
	}
	if len(res.Outputs) != 1 {
		t.Fatalf("expected 1 output file, got %d: %v", len(res.Outputs), res.Outputs)
	}
	src, ok := res.Outputs["/src/math.cs"]
	if !ok {
		t.Fatalf("expected /src/math.cs in outputs, got keys %v", outputKeys(res.Outputs))
	}
	if !strings.Contains(src, "Add") {
		t.Errorf("emitted C# missing expected method name:\n%s", src)
	}
}

func TestCheck_DoesNotEmitOutputs(t *testing.T) {
	files := []InputFile{
		{Path: "/src/math.ts", Source: "export function add(a: number, b: number): number { return a + b; }"},
	}
	res, err := Check(files, baseOptions())
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if len(res.Outputs) != 0 {
		t.Fatalf("Check wrote %d output(s), want 0", len(res.Outputs))
	}
}

func TestCompile_TwoIndependentModulesBothEmit(t *testing.T) {
	files := []InputFile{
		{Path: "/src/a.ts", Source: "export function f(): number { return 1; }"},
		{Path: "/src/b.ts", Source: "export function g(): number { return 2; }"},
	}
	res, err := Compile(files, baseOptions())
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if len(res.Outputs) != 2 {
		t.Fatalf("expected 2 outputs, got %d: %v", len(res.Outputs), outputKeys(res.Outputs))
	}
}

func TestCompile_ParseErrorSurfacesAsDiagnostic(t *testing.T) {
	files := []InputFile{
		{Path: "/src/broken.ts", Source: "const x: = ;"},
	}
	res, err := Compile(files, baseOptions())
	if err != nil {
		t.Fatalf("Compile returned a Go error instead of a diagnostic: %v", err)
	}
	if !diagsHaveError(res.Diagnostics) {
		t.Fatal("expected at least one error diagnostic for malformed source")
	}
	if len(res.Outputs) != 0 {
		t.Fatalf("expected no emitted output for a file that failed to parse, got %v", outputKeys(res.Outputs))
	}
}

func TestCompile_LocalImportResolvesFqContainer(t *testing.T) {
	files := []InputFile{
		{Path: "/src/util.ts", Source: "export function helper(): number { return 42; }"},
		{Path: "/src/main.ts", Source: "import { helper } from './util.ts';\nexport function run(): number { return helper(); }"},
	}
	res, err := Compile(files, baseOptions())
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if diagsHaveError(res.Diagnostics) {
		t.Fatalf("unexpected error diagnostics: %v", res.Diagnostics)
	}
	mainSrc, ok := res.Outputs["/src/main.cs"]
	if !ok {
		t.Fatalf("expected /src/main.cs in outputs, got %v", outputKeys(res.Outputs))
	}
	if !strings.Contains(mainSrc, "Helper") {
		t.Errorf("main.cs does not reference the imported helper:\n%s", mainSrc)
	}
}

func diagsHaveError(items []diag.Diagnostic) bool {
	for _, d := range items {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

func outputKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
