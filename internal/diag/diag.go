// Package diag provides the diagnostic collection and formatting used
// across every stage of the compiler pipeline. Every pass that can fail
// on user input reports through a *Collector instead of returning a Go
// error, so the pipeline can accumulate many diagnostics from one run
// (see , "Error Handling Design").
package diag

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
)

// Severity classifies a Diagnostic. Only Error severity fails a
// compilation; Warning and Info never stop the pipeline.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Code is a stable diagnostic code string of the form "TSN<NNNN>".
type Code string

// Stable diagnostic codes. New codes should be appended; existing codes
// must never be renumbered once released, since downstream tooling keys
// on them.
const (
	CodeWithStatement        Code = "TSN2001" // `with` statement unsupported
	CodeDynamicImportNonLocal Code = "TSN2001" // dynamic import() of a non-local specifier (shares TSN2001: both are unsupported-feature rejections)
	CodeSymbolIndexSignature Code = "TSN7203" // symbol index signature unsupported
	CodeCoreProvenance       Code = "TSN7440" // reserved core intrinsic redeclared/reimported outside core package
	CodeUnmatchedAttribute   Code = "TSN5002" // A.on(Target).type(...) marker whose target could not be resolved
	CodeIndexNotInt32        Code = "TSN5107" // indexer/array/string-char index not provably Int32
	CodeNamingCollision      Code = "TSN3003" // two emitted identifiers collide under the naming policy
	CodeCircularDependency   Code = "TSN1001" // import graph contains a cycle
	CodeParseError           Code = "TSN1000" // front-end parse failure
	CodeUnresolvedReference  Code = "TSN4001" // reference type could not be resolved to any binding
	CodeUnsupportedGeneric   Code = "TSN7301" // generic function value cannot be lowered (would require a generic delegate)
	CodeInvalidDictionaryKey Code = "TSN4050" // index-signature-only interface with a non-string/number key
)

// SourceLocation pinpoints a diagnostic in an input file.
type SourceLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Length int    `json:"length"`
}

func (l SourceLocation) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Diagnostic is one reported finding: a user error, a warning, or an
// informational note. It never represents an internal compiler error —
// those are raised as an ICE (see ice.go) because they indicate a
// compiler bug, not a problem with the user's program.
type Diagnostic struct {
	Code     Code            `json:"code"`
	Severity Severity        `json:"severity"`
	Message  string          `json:"message"`
	Location *SourceLocation `json:"location,omitempty"`
	Hint     string          `json:"hint,omitempty"`
}

// Format renders "code: message (file:line:column)" plus a hint line
// when present, matching the CLI failure format requires.
func (d Diagnostic) Format() string {
	s := fmt.Sprintf("%s: %s", d.Code, d.Message)
	if d.Location != nil {
		s += fmt.Sprintf(" (%s)", d.Location.String())
	}
	if d.Hint != "" {
		s += "\n  hint: " + d.Hint
	}
	return s
}

// Collector accumulates diagnostics across passes. It is not safe for
// concurrent use by multiple goroutines without external locking; the
// group-level parallelism in internal/compiler gives each independent
// module group its own Collector and merges them after the fact.
type Collector struct {
	items []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.items = append(c.items, d)
}

// Error is a convenience for the common case of reporting a user error.
func (c *Collector) Error(code Code, loc *SourceLocation, format string, args ...any) {
	c.Add(Diagnostic{Code: code, Severity: SeverityError, Message: fmt.Sprintf(format, args...), Location: loc})
}

// Warning is a convenience for reporting a non-fatal finding.
func (c *Collector) Warning(code Code, loc *SourceLocation, format string, args ...any) {
	c.Add(Diagnostic{Code: code, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Location: loc})
}

// HasErrors reports whether any accumulated diagnostic is error-severity.
// A pipeline must stop before any stage whose invariants that error would
// violate.
func (c *Collector) HasErrors() bool {
	for _, d := range c.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Items returns all collected diagnostics, sorted for deterministic,
// human-friendly output: by file (natural order, so "file2" sorts before
// "file10"), then by line, then by column.
func (c *Collector) Items() []Diagnostic {
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := out[i].Location, out[j].Location
		if li == nil || lj == nil {
			return lj != nil
		}
		if li.File != lj.File {
			return natural.Less(li.File, lj.File)
		}
		if li.Line != lj.Line {
			return li.Line < lj.Line
		}
		return li.Column < lj.Column
	})
	return out
}

// Merge appends another Collector's diagnostics into this one. Used to
// fold per-group collectors (populated in parallel, see
// internal/compiler) into a single compilation-wide result.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.items = append(c.items, other.items...)
}
