package ir

import "github.com/tsoniclang/tsonic/internal/types"

// exprBase carries the fields every expression variant shares: the
// inferred type slot later passes narrow and finalize, and the source
// span diagnostics point at.
type exprBase struct {
	InferredType types.IrType
	Span         SourceSpan
}

func (e exprBase) irStatementNode()          {}
func (e exprBase) Inferred() types.IrType    { return e.InferredType }

type Literal struct {
	exprBase
	Value any // string, int64, float64, bool, nil (null), or the undefined sentinel
}

type Identifier struct {
	exprBase
	Name   string
	DeclId int // the binder.DeclId this identifier resolved to, 0 if unresolved (external reference)
}

// MemberAccessKind classifies a MemberAccess expression's indexing
// semantics, resolved during IR construction.
type MemberAccessKind int

const (
	AccessUnknown MemberAccessKind = iota
	AccessClrIndexer
	AccessJsRuntimeArray
	AccessStringChar
	AccessDictionary
)

type MemberAccess struct {
	exprBase
	Object     Expression
	Property   Expression // Identifier for `.prop`, any Expression for `[expr]`
	Computed   bool
	Optional   bool
	AccessKind MemberAccessKind
}

type Call struct {
	exprBase
	Callee   Expression
	Args     []Expression
	TypeArgs []types.IrType
	Optional bool
}

type New struct {
	exprBase
	Callee   Expression
	Args     []Expression
	TypeArgs []types.IrType
}

type Binary struct {
	exprBase
	Op          string
	Left, Right Expression
}

type Logical struct {
	exprBase
	Op          string // "&&", "||", "??"
	Left, Right Expression
}

type Unary struct {
	exprBase
	Op      string
	Operand Expression
}

type Update struct {
	exprBase
	Op      string
	Operand Expression
	Prefix  bool
}

type Conditional struct {
	exprBase
	Test, Then, Else Expression
}

type Assignment struct {
	exprBase
	Op     string
	Target Expression
	Value  Expression
}

type ArrayLit struct {
	exprBase
	Elements []Expression
}

type ObjectProperty struct {
	Key   string
	Value Expression
}

type ObjectLit struct {
	exprBase
	Properties []ObjectProperty
}

type FunctionLit struct {
	exprBase
	Name        string
	TypeParams  []string
	Params      []Param
	ReturnType  types.IrType
	Body        *BlockStmt
	ExprBody    Expression
	IsArrow     bool
	IsAsync     bool
	IsGenerator bool
}

type TemplatePart struct {
	Text string
	Expr Expression
}

type TemplateLit struct {
	exprBase
	Parts []TemplatePart
}

type Spread struct {
	exprBase
	Argument Expression
}

type This struct{ exprBase }

type Await struct {
	exprBase
	Argument Expression
}

type Yield struct {
	exprBase
	Argument Expression
	Delegate bool
}

type TypeAssertion struct {
	exprBase
	Expr Expression
	Type types.IrType
}

type Trycast struct {
	exprBase
	Expr Expression
	Type types.IrType
}

type Stackalloc struct {
	exprBase
	ElementType types.IrType
	Length      Expression
}

// NumericNarrowing pins an expression to an explicit NumericKind (// §3, "Expressions"). No stage of this compiler constructs one; the
// numeric-proof pass treats a narrowing to Int32 as proven and pins its
// inferred type, and the backend emits it.
type NumericNarrowing struct {
	exprBase
	Inner      Expression
	TargetKind types.NumericKind
}
