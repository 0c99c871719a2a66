package diag

import (
	"strings"
	"testing"
)

func TestCollector_HasErrors(t *testing.T) {
	tests := []struct {
		name string
		add  []Diagnostic
		want bool
	}{
		{"empty", nil, false},
		{"only warnings", []Diagnostic{{Severity: SeverityWarning}}, false},
		{"one error", []Diagnostic{{Severity: SeverityInfo}, {Severity: SeverityError}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector()
			for _, d := range tt.add {
				c.Add(d)
			}
			if got := c.HasErrors(); got != tt.want {
				t.Errorf("HasErrors() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollector_Items_NaturalSortByFile(t *testing.T) {
	c := NewCollector()
	c.Error(CodeIndexNotInt32, &SourceLocation{File: "module10.ts", Line: 1, Column: 1}, "x")
	c.Error(CodeIndexNotInt32, &SourceLocation{File: "module2.ts", Line: 1, Column: 1}, "y")

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Location.File != "module2.ts" || items[1].Location.File != "module10.ts" {
		t.Errorf("expected natural order module2 < module10, got %v then %v",
			items[0].Location.File, items[1].Location.File)
	}
}

func TestCollector_Merge(t *testing.T) {
	a := NewCollector()
	a.Error(CodeParseError, nil, "a")
	b := NewCollector()
	b.Error(CodeParseError, nil, "b")

	a.Merge(b)
	if len(a.Items()) != 2 {
		t.Fatalf("len(a.Items()) = %d, want 2", len(a.Items()))
	}
}

func TestDiagnostic_Format(t *testing.T) {
	d := Diagnostic{
		Code:     CodeIndexNotInt32,
		Severity: SeverityError,
		Message:  "index not provably Int32",
		Location: &SourceLocation{File: "a.ts", Line: 3, Column: 12},
		Hint:     "cast with `as int` only proves Int32 for literal expressions",
	}
	got := d.Format()
	for _, want := range []string{"TSN5107", "index not provably Int32", "a.ts:3:12", "hint:"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() = %q, missing %q", got, want)
		}
	}
}

func TestMarshalJSONL_RedactHints_CountBySeverity(t *testing.T) {
	items := []Diagnostic{
		{Code: CodeIndexNotInt32, Severity: SeverityError, Message: "m1", Hint: "h1"},
		{Code: CodeUnmatchedAttribute, Severity: SeverityWarning, Message: "m2"},
	}
	jsonl, err := MarshalJSONL(items)
	if err != nil {
		t.Fatalf("MarshalJSONL: %v", err)
	}
	if n := CountBySeverity(jsonl, SeverityError); n != 1 {
		t.Errorf("CountBySeverity(Error) = %d, want 1", n)
	}

	redacted, err := RedactHints(jsonl)
	if err != nil {
		t.Fatalf("RedactHints: %v", err)
	}
	if strings.Contains(string(redacted), "h1") {
		t.Errorf("RedactHints left hint in output: %s", redacted)
	}
}
