// Package validate implements the fixed-order validation passes that run
// between IR construction and backend emission. Each pass
// takes (Module, Context), updates the Module in place and returns it,
// and reports through a diagnostics Collector; later
// passes rely on invariants earlier passes establish, so PassManager
// always runs them in registration order and stops if a pass's failure
// would invalidate what comes after it.
package validate

import (
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// Pass is one validation stage.
type Pass interface {
	// Name identifies the pass; the compiler's timing output does not
	// include it (it reports all passes together as "validate").
	Name() string

	// Run transforms mod in place (or returns a replacement) and reports
	// any user-facing diagnostics through diags. A non-nil error means an
	// internal compiler error, not a user mistake; see internal/diag/ice.go.
	Run(mod *ir.Module, ctx *Context, diags *diag.Collector) (*ir.Module, error)

	// StopsPipelineOnError reports whether an error-severity diagnostic
	// from this pass invalidates invariants later passes depend on
	// — only numeric proof does.
	StopsPipelineOnError() bool
}

// PassManager runs a fixed, ordered list of passes over one module.
type PassManager struct {
	passes []Pass
}

// NewPassManager builds a manager from passes in the order they must run.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// Default returns the seven passes in the order fixes.
func Default() *PassManager {
	return NewPassManager(
		&UnsupportedFeaturesPass{},
		&CoreProvenancePass{},
		&AttributeCollectionPass{},
		&NumericProofPass{},
		&ArrowReturnFinalizationPass{},
		&SynthesisFinalizationPass{},
		&NamingCollisionPass{},
	)
}

// RunAll runs every pass over mod in order, stopping early only when a
// pass produced error-severity diagnostics that would invalidate the
// invariants a later pass depends on:
// numeric proof failing stops the pipeline, since arrow-return
// finalization and the backend both assume proven numericIntent.
func (pm *PassManager) RunAll(mod *ir.Module, ctx *Context, diags *diag.Collector) (*ir.Module, error) {
	for _, pass := range pm.passes {
		before := errorCount(diags)
		next, err := pass.Run(mod, ctx, diags)
		if err != nil {
			return mod, err
		}
		mod = next
		if pass.StopsPipelineOnError() && errorCount(diags) > before {
			break
		}
	}
	return mod, nil
}

// errorCount counts error-severity diagnostics. Items() is sorted by
// location, so a position in it does not separate old diagnostics from
// new ones; a count does.
func errorCount(diags *diag.Collector) int {
	n := 0
	for _, d := range diags.Items() {
		if d.Severity == diag.SeverityError {
			n++
		}
	}
	return n
}
