// Package ir defines the intermediate representation every later stage
// reads and writes: modules, statements, and expressions, each carrying
// an optional inferred IrType and source span. IR nodes are produced
// once by internal/irbuilder and then
// transformed by internal/validate's passes, which update the Module they
// are given in place and return that same Module; no persistent copy of
// the earlier IR is kept.
package ir

import (
	"github.com/tsoniclang/tsonic/internal/types"
)

// SourceSpan locates an IR node in its originating source file.
type SourceSpan struct {
	File        string
	Line, Column int
}

// undefinedSentinel is the Literal.Value a `undefined` expression
// carries, distinct from Go's untyped nil (which represents `null`).
type undefinedSentinel struct{}

// Undefined is the sentinel value Literal.Value holds for `undefined`,
// kept distinct from `null` (represented as a plain nil).
var Undefined = undefinedSentinel{}

// Statement is any of the tagged IR statement variants.
type Statement interface {
	irStatementNode()
}

// Expression is any of the tagged IR expression variants. Every
// expression carries an optional InferredType, filled in during IR
// construction and refined by later passes (numeric proof, arrow-return
// finalization).
type Expression interface {
	irStatementNode() // expressions are never statements themselves, but sharing one marker name keeps both interfaces symmetric for visitors
	Inferred() types.IrType
}

// Module is one compiled source file: a namespace, a container class
// name, its imports, an ordered body, and an export list.
type Module struct {
	SourcePath     string
	Namespace      string
	ContainerName  string
	Imports        []Import
	Statements     []Statement
	Exports        []string
	HasTopLevelCode bool // true when the module has executable statements outside any declaration
	AnonymousTypes []*SyntheticInterface // registered during IR construction, appended at finalization
}

// ImportKind classifies how an Import was resolved.
type ImportKind int

const (
	ImportClrNamespace ImportKind = iota
	ImportBoundAssembly
	ImportLocal
	ImportDynamic
)

// Import is one resolved import edge out of a module.
type Import struct {
	Kind            ImportKind
	Specifier       string
	Names           []string // named bindings imported
	NamespaceAlias  string
	FqContainer     string // resolved fully-qualified container: the target's namespace.container for ImportLocal, the namespace itself for ImportClrNamespace; empty otherwise
}

// SyntheticInterface is a nominal interface synthesized for an anonymous
// object literal or a union-of-object-literals arm.
type SyntheticInterface struct {
	Name       string
	TypeParams []string
	Members    []types.ObjectMember
	Exported   bool
}
