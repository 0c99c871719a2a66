package diag

import "fmt"

// ICE is an internal compiler error: a violated invariant that validation
// was supposed to have caught. Every ICE indicates a compiler bug, never
// a problem with the user's program. The backend is the
// most common source — it trusts that validation already rejected
// anything it cannot emit.
type ICE struct {
	Node    string // the IR node kind that triggered the failure, e.g. "IrExpression.reference"
	Message string
}

func (e *ICE) Error() string {
	return fmt.Sprintf("ICE: %s: %s", e.Node, e.Message)
}

// NewICE constructs an ICE for the given IR node kind.
func NewICE(nodeKind, format string, args ...any) *ICE {
	return &ICE{Node: nodeKind, Message: fmt.Sprintf(format, args...)}
}

// Panic raises an ICE as a panic. Backend emitters call this instead of
// returning an error for invariant violations, since an ICE is never
// expected to be recovered from mid-pass — the caller (internal/compiler)
// recovers at the pipeline boundary and reports it distinctly from user
// diagnostics.
func Panic(nodeKind, format string, args ...any) {
	panic(NewICE(nodeKind, format, args...))
}
