package validate

import (
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/types"
)

// NumericProofPass implements item 4. It does two things in
// one walk: resolves each computed MemberAccess's AccessKind from its
// object's inferred type (array/string/dictionary), and proves whether
// every clrIndexer/jsRuntimeArray/stringChar index is provably Int32,
// reporting TSN5107 when it is not. A proven index's InferredType is
// pinned to an Int32-intent primitive so the backend never has to
// re-derive it.
type NumericProofPass struct{}

func (p *NumericProofPass) Name() string { return "numeric-proof" }
func (p *NumericProofPass) StopsPipelineOnError() bool { return true }

func (p *NumericProofPass) Run(mod *ir.Module, ctx *Context, diags *diag.Collector) (*ir.Module, error) {
	w := &numericWalker{ctx: ctx, diags: diags, declaredType: map[string]types.IrType{}}
	for _, s := range mod.Statements {
		w.stmt(s)
	}
	return mod, nil
}

// numericWalker proves numericIntent and resolves computed-access
// AccessKind in one pass. declaredType tracks each declared identifier's
// type by name; it is a module-wide approximation rather than a proper
// per-scope table (no scope identity survives into the IR — see
// DESIGN.md), so two same-named bindings with different declared types
// in different scopes would shadow each other here. Source in this
// corpus does not do that in practice. The IR builder only fills
// InferredType on narrowed identifier references (internal/irbuilder's
// flow narrowing), so this walker also back-fills every other bare
// identifier reference's InferredType from this table — otherwise
// downstream passes (and this one's own accessKindOf) would see a nil
// inferred type for every ordinary variable reference.
type numericWalker struct {
	ctx          *Context
	diags        *diag.Collector
	declaredType map[string]types.IrType
}

func (w *numericWalker) declare(name string, t types.IrType) {
	if t == nil {
		return
	}
	w.declaredType[name] = t
}

func (w *numericWalker) declaredNumericKind(name string) (types.NumericKind, bool) {
	t, ok := w.declaredType[name]
	if !ok {
		return types.NumericUnknown, false
	}
	prim, ok := t.(*types.PrimitiveType)
	if !ok || prim.NumericIntent == types.NumericUnknown {
		return types.NumericUnknown, false
	}
	return prim.NumericIntent, true
}

func (w *numericWalker) stmt(s ir.Statement) {
	switch st := s.(type) {
	case *ir.VarDecl:
		for i := range st.Declarators {
			d := &st.Declarators[i]
			w.declare(d.Name, d.Type)
			w.expr(d.Init)
		}
	case *ir.FunctionDecl:
		for _, p := range st.Params {
			w.declare(p.Name, p.Type)
			w.expr(p.Default)
		}
		w.block(st.Body)
	case *ir.ClassDecl:
		for i := range st.Members {
			w.member(&st.Members[i])
		}
	case *ir.InterfaceDecl:
		for i := range st.Members {
			w.member(&st.Members[i])
		}
	case *ir.IfStmt:
		w.expr(st.Test)
		w.stmt(st.Then)
		if st.Else != nil {
			w.stmt(st.Else)
		}
	case *ir.WhileStmt:
		w.expr(st.Test)
		w.stmt(st.Body)
	case *ir.ForStmt:
		if st.Init != nil {
			w.stmt(st.Init)
		}
		w.expr(st.Test)
		w.expr(st.Update)
		w.stmt(st.Body)
	case *ir.ForOfStmt:
		w.expr(st.Iterable)
		w.stmt(st.Body)
	case *ir.ForInStmt:
		w.expr(st.Object)
		w.stmt(st.Body)
	case *ir.SwitchStmt:
		w.expr(st.Discriminant)
		for _, c := range st.Cases {
			w.expr(c.Test)
			for _, inner := range c.Statements {
				w.stmt(inner)
			}
		}
	case *ir.TryStmt:
		w.block(st.Block)
		if st.Catch != nil {
			w.block(st.Catch.Body)
		}
		w.block(st.Finally)
	case *ir.ThrowStmt:
		w.expr(st.Argument)
	case *ir.ReturnStmt:
		w.expr(st.Argument)
	case *ir.ExprStmt:
		w.expr(st.Expr)
	case *ir.BlockStmt:
		w.block(st)
	}
}

func (w *numericWalker) block(b *ir.BlockStmt) {
	if b == nil {
		return
	}
	for _, s := range b.Statements {
		w.stmt(s)
	}
}

func (w *numericWalker) member(m *ir.ClassMember) {
	if m.Kind == ir.MemberField {
		w.declare(m.Name, m.Type)
	}
	for _, p := range m.Params {
		w.declare(p.Name, p.Type)
		w.expr(p.Default)
	}
	w.expr(m.Initializer)
	w.block(m.Body)
}

func (w *numericWalker) expr(e ir.Expression) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case *ir.Identifier:
		if ex.InferredType == nil {
			ex.InferredType = w.declaredType[ex.Name]
		}
	case *ir.MemberAccess:
		w.expr(ex.Object)
		if ex.Computed {
			ex.AccessKind = accessKindOf(ex.Object, w.ctx.Runtime)
			w.expr(ex.Property)
			w.requireProvenIndex(ex)
		} else {
			w.expr(ex.Property)
		}
	case *ir.Call:
		w.expr(ex.Callee)
		for _, a := range ex.Args {
			w.expr(a)
		}
	case *ir.New:
		w.expr(ex.Callee)
		for _, a := range ex.Args {
			w.expr(a)
		}
	case *ir.Binary:
		w.expr(ex.Left)
		w.expr(ex.Right)
	case *ir.Logical:
		w.expr(ex.Left)
		w.expr(ex.Right)
	case *ir.Unary:
		w.expr(ex.Operand)
	case *ir.Update:
		w.expr(ex.Operand)
	case *ir.Conditional:
		w.expr(ex.Test)
		w.expr(ex.Then)
		w.expr(ex.Else)
	case *ir.Assignment:
		w.expr(ex.Target)
		w.expr(ex.Value)
	case *ir.ArrayLit:
		for _, el := range ex.Elements {
			w.expr(el)
		}
	case *ir.ObjectLit:
		for _, p := range ex.Properties {
			w.expr(p.Value)
		}
	case *ir.FunctionLit:
		for _, p := range ex.Params {
			w.expr(p.Default)
		}
		w.block(ex.Body)
		w.expr(ex.ExprBody)
	case *ir.TemplateLit:
		for _, part := range ex.Parts {
			w.expr(part.Expr)
		}
	case *ir.Spread:
		w.expr(ex.Argument)
	case *ir.Await:
		w.expr(ex.Argument)
	case *ir.Yield:
		w.expr(ex.Argument)
	case *ir.TypeAssertion:
		w.expr(ex.Expr)
	case *ir.Trycast:
		w.expr(ex.Expr)
	case *ir.Stackalloc:
		w.expr(ex.Length)
	}
}

// accessKindOf classifies a computed member access from its object's
// inferred type; Dictionary and unresolved
// objects never require Int32 proof. Js runtime mode always treats
// arrays as jsRuntimeArray.
func accessKindOf(obj ir.Expression, runtime RuntimeMode) ir.MemberAccessKind {
	if obj == nil || obj.Inferred() == nil {
		return ir.AccessUnknown
	}
	switch t := obj.Inferred().(type) {
	case *types.ArrayType:
		if runtime == RuntimeDotnet && t.Origin == types.ArrayExplicit {
			return ir.AccessClrIndexer
		}
		return ir.AccessJsRuntimeArray
	case *types.PrimitiveType:
		if t.Name == "string" {
			return ir.AccessStringChar
		}
	case *types.DictionaryType:
		return ir.AccessDictionary
	}
	return ir.AccessUnknown
}

func (w *numericWalker) requireProvenIndex(ma *ir.MemberAccess) {
	switch ma.AccessKind {
	case ir.AccessClrIndexer, ir.AccessJsRuntimeArray, ir.AccessStringChar:
	default:
		return
	}
	if !w.isProvenInt32(ma.Property) {
		w.diags.Error(diag.CodeIndexNotInt32, nil, "index expression is not provably Int32")
		return
	}
	pinInt32(ma.Property)
}

// isProvenInt32 implements item 4's proof rule.
func (w *numericWalker) isProvenInt32(e ir.Expression) bool {
	switch ex := e.(type) {
	case *ir.Literal:
		v, ok := ex.Value.(int64)
		return ok && types.FitsInt32(v)
	case *ir.Identifier:
		kind, ok := w.declaredNumericKind(ex.Name)
		return ok && kind == types.Int32
	case *ir.Binary:
		if !isArithmeticOp(ex.Op) {
			return false
		}
		return w.isProvenInt32(ex.Left) && w.isProvenInt32(ex.Right)
	case *ir.TypeAssertion:
		prim, ok := ex.Type.(*types.PrimitiveType)
		return ok && prim.NumericIntent == types.Int32
	case *ir.Trycast:
		prim, ok := ex.Type.(*types.PrimitiveType)
		return ok && prim.NumericIntent == types.Int32
	case *ir.NumericNarrowing:
		return ex.TargetKind == types.Int32
	default:
		return false
	}
}

func isArithmeticOp(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%":
		return true
	default:
		return false
	}
}

// pinInt32 sets the proven index's InferredType to an Int32-intent
// primitive (item 4: "every surviving index carries
// numericIntent: Int32 on its inferredType").
func pinInt32(e ir.Expression) {
	switch ex := e.(type) {
	case *ir.Literal:
		ex.InferredType = &types.PrimitiveType{Name: "int", NumericIntent: types.Int32}
	case *ir.Identifier:
		ex.InferredType = &types.PrimitiveType{Name: "int", NumericIntent: types.Int32}
	case *ir.Binary:
		ex.InferredType = &types.PrimitiveType{Name: "int", NumericIntent: types.Int32}
	case *ir.TypeAssertion:
		ex.InferredType = &types.PrimitiveType{Name: "int", NumericIntent: types.Int32}
	case *ir.Trycast:
		ex.InferredType = &types.PrimitiveType{Name: "int", NumericIntent: types.Int32}
	case *ir.NumericNarrowing:
		ex.InferredType = &types.PrimitiveType{Name: "int", NumericIntent: types.Int32}
	}
}
