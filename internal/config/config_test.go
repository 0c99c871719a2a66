package config

import (
	"testing"

	"github.com/tsoniclang/tsonic/internal/validate"
)

func TestParse_ValidMinimalConfig(t *testing.T) {
	raw := []byte(`
sourceRoot: src
rootNamespace: App
runtime: dotnet
`)
	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.SourceRoot != "src" {
		t.Errorf("SourceRoot = %q, want %q", cfg.SourceRoot, "src")
	}
	if cfg.RuntimeMode() != validate.RuntimeDotnet {
		t.Errorf("RuntimeMode() = %v, want dotnet", cfg.RuntimeMode())
	}
}

func TestParse_RejectsMissingRequiredFields(t *testing.T) {
	raw := []byte(`
runtime: dotnet
`)
	if _, err := Parse(raw); err == nil {
		t.Fatal("Parse accepted a config missing sourceRoot/rootNamespace")
	}
}

func TestParse_RejectsUnknownRuntime(t *testing.T) {
	raw := []byte(`
sourceRoot: src
rootNamespace: App
runtime: cobol
`)
	if _, err := Parse(raw); err == nil {
		t.Fatal("Parse accepted an unsupported runtime value")
	}
}

func TestParse_RequiresEntryPointWhenIsEntryPoint(t *testing.T) {
	raw := []byte(`
sourceRoot: src
rootNamespace: App
runtime: dotnet
isEntryPoint: true
`)
	if _, err := Parse(raw); err == nil {
		t.Fatal("Parse accepted isEntryPoint: true without an entryPoint")
	}
}

func TestNamingPolicy_ToValidate_DefaultsBlankBuckets(t *testing.T) {
	n := NamingPolicy{Classes: "snake"}
	got := n.ToValidate()
	def := validate.DefaultNamingPolicy()

	if got.Classes != validate.CaseSnake {
		t.Errorf("Classes = %v, want snake (explicit override)", got.Classes)
	}
	if got.Methods != def.Methods {
		t.Errorf("Methods = %v, want default %v (blank bucket)", got.Methods, def.Methods)
	}
}

func TestParse_NugetPackagesDive(t *testing.T) {
	raw := []byte(`
sourceRoot: src
rootNamespace: App
runtime: dotnet
nugetPackages:
  - name: Newtonsoft.Json
    version: 13.0.3
  - name: ""
    version: ""
`)
	if _, err := Parse(raw); err == nil {
		t.Fatal("Parse accepted a nugetPackages entry with blank name/version")
	}
}
