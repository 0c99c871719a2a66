package compiler

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"golang.org/x/tools/txtar"

	"github.com/tsoniclang/tsonic/internal/diag"
)

// scenarioFixture is the parsed shape of one testdata/scenarios/*.txtar
// file: an input.ts plus one or more
// "expect.*" assertion files.
type scenarioFixture struct {
	input       string
	contains    []string
	rejects     []string
	diagnostic  string
	noOutput    bool
}

func loadScenario(t *testing.T, name string) scenarioFixture {
	t.Helper()
	path := filepath.Join("..", "..", "testdata", "scenarios", name)
	arc, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	var fx scenarioFixture
	for _, f := range arc.Files {
		content := strings.TrimSuffix(string(f.Data), "\n")
		switch f.Name {
		case "input.ts":
			fx.input = string(f.Data)
		case "expect.contains":
			fx.contains = strings.Split(content, "\n")
		case "expect.rejects":
			fx.rejects = strings.Split(content, "\n")
		case "expect.diagnostic":
			fx.diagnostic = content
		case "expect.no_output":
			fx.noOutput = content == "true"
		}
	}
	if fx.input == "" {
		t.Fatalf("%s: no input.ts section found", path)
	}
	return fx
}

func runScenario(t *testing.T, name string) (*Result, scenarioFixture) {
	t.Helper()
	fx := loadScenario(t, name)
	res, err := Compile([]InputFile{{Path: "/src/scenario.ts", Source: fx.input}}, baseOptions())
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	return res, fx
}

func allEmitted(res *Result) string {
	var sb strings.Builder
	for _, k := range outputKeys(res.Outputs) {
		sb.WriteString(res.Outputs[k])
	}
	return sb.String()
}

func TestScenarioA_PromiseVoidFunction(t *testing.T) {
	res, fx := runScenario(t, "a_promise_void.txtar")
	out := allEmitted(res)
	for _, want := range fx.contains {
		if !strings.Contains(out, want) {
			t.Errorf("expected emission to contain %q, got:\n%s", want, out)
		}
	}
	for _, bad := range fx.rejects {
		if strings.Contains(out, bad) {
			t.Errorf("emission unexpectedly contains %q:\n%s", bad, out)
		}
	}
}

func TestScenarioB_ClrIndexerProof(t *testing.T) {
	res, fx := runScenario(t, "b_clr_indexer_proof.txtar")
	if !diagsHaveCode(res.Diagnostics, fx.diagnostic) {
		t.Fatalf("expected diagnostic %s, got %v", fx.diagnostic, res.Diagnostics)
	}
	if fx.noOutput && len(res.Outputs) != 0 {
		t.Fatalf("expected no emitted output, got %v", outputKeys(res.Outputs))
	}
}

func TestScenarioC_InterfaceAutoProperties(t *testing.T) {
	res, fx := runScenario(t, "c_interface_auto_properties.txtar")
	out := allEmitted(res)
	for _, want := range fx.contains {
		if !strings.Contains(out, want) {
			t.Errorf("expected emission to contain %q, got:\n%s", want, out)
		}
	}
}

func TestScenarioD_StructMarker(t *testing.T) {
	res, fx := runScenario(t, "d_struct_marker.txtar")
	out := allEmitted(res)
	for _, want := range fx.contains {
		if !strings.Contains(out, want) {
			t.Errorf("expected emission to contain %q, got:\n%s", want, out)
		}
	}
	for _, bad := range fx.rejects {
		if strings.Contains(out, bad) {
			t.Errorf("emission unexpectedly contains %q:\n%s", bad, out)
		}
	}
}

func TestScenarioG_TupleArityNesting(t *testing.T) {
	res, fx := runScenario(t, "g_tuple_arity_nesting.txtar")
	out := allEmitted(res)
	for _, want := range fx.contains {
		if !strings.Contains(out, want) {
			t.Errorf("expected emission to contain %q, got:\n%s", want, out)
		}
	}
}

func TestScenarioH_NamingCollision(t *testing.T) {
	res, fx := runScenario(t, "h_naming_collision.txtar")
	if !diagsHaveCode(res.Diagnostics, fx.diagnostic) {
		t.Fatalf("expected diagnostic %s, got %v", fx.diagnostic, res.Diagnostics)
	}
}

func TestScenarioE_AnonymousLiteralDedup(t *testing.T) {
	res, _ := runScenario(t, "e_anonymous_literal_dedup.txtar")
	out := allEmitted(res)
	count := strings.Count(out, "public class __Anon_")
	if count != 1 {
		t.Errorf("expected exactly 1 synthesized anonymous interface, found %d occurrences in:\n%s", count, out)
	}
}

func TestScenarioF_UnionOfObjectLiterals(t *testing.T) {
	res, fx := runScenario(t, "f_union_of_object_literals.txtar")
	out := allEmitted(res)
	for _, want := range fx.contains {
		if !strings.Contains(out, want) {
			t.Errorf("expected emission to contain %q, got:\n%s", want, out)
		}
	}
}

// TestScenarioSnapshots pins the full emission of each contains-style
// scenario against a committed snapshot, so an unintended shift in the
// emitted C# (spacing, using order, member order) shows up as a diff
// even when it still happens to satisfy expect.contains.
func TestScenarioSnapshots(t *testing.T) {
	for _, name := range []string{
		"a_promise_void.txtar",
		"c_interface_auto_properties.txtar",
		"d_struct_marker.txtar",
		"g_tuple_arity_nesting.txtar",
	} {
		t.Run(name, func(t *testing.T) {
			res, _ := runScenario(t, name)
			snaps.MatchSnapshot(t, allEmitted(res))
		})
	}
}

func diagsHaveCode(items []diag.Diagnostic, code string) bool {
	for _, d := range items {
		if string(d.Code) == code {
			return true
		}
	}
	return false
}
