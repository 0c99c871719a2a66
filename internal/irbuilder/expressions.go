package irbuilder

import (
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/types"
)

func (b *Builder) convertExpr(e ast.Expression) ir.Expression {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *ast.ParenWrap:
		return b.convertExpr(ex.Inner)

	case *ast.Identifier:
		return b.convertIdentifier(ex)

	case *ast.IntegerLiteral:
		return &ir.Literal{Value: ex.Value}

	case *ast.FloatLiteral:
		return &ir.Literal{Value: ex.Value}

	case *ast.StringLiteral:
		return &ir.Literal{Value: ex.Value}

	case *ast.BoolLiteral:
		return &ir.Literal{Value: ex.Value}

	case *ast.NullLiteral:
		return &ir.Literal{Value: nil}

	case *ast.UndefinedLiteral:
		return &ir.Literal{Value: ir.Undefined}

	case *ast.TemplateLiteral:
		parts := make([]ir.TemplatePart, len(ex.Parts))
		for i, p := range ex.Parts {
			parts[i] = ir.TemplatePart{Text: p.Text, Expr: b.convertOptionalExpr(p.Expr)}
		}
		return &ir.TemplateLit{Parts: parts}

	case *ast.ArrayLiteral:
		elems := make([]ir.Expression, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = b.convertExpr(el)
		}
		return &ir.ArrayLit{Elements: elems}

	case *ast.ObjectLiteral:
		return b.convertObjectLiteral(ex)

	case *ast.FunctionLiteral:
		return b.convertFunctionLiteral(ex)

	case *ast.MemberExpression:
		return &ir.MemberAccess{
			Object:     b.convertExpr(ex.Object),
			Property:   b.convertExpr(ex.Property),
			Computed:   ex.Computed,
			Optional:   ex.Optional,
			AccessKind: ir.AccessUnknown,
		}

	case *ast.CallExpression:
		args := make([]ir.Expression, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = b.convertExpr(a)
		}
		return &ir.Call{Callee: b.convertExpr(ex.Callee), Args: args, TypeArgs: b.resolveAllTypes(ex.TypeArgs), Optional: ex.Optional}

	case *ast.NewExpression:
		args := make([]ir.Expression, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = b.convertExpr(a)
		}
		return &ir.New{Callee: b.convertExpr(ex.Callee), Args: args, TypeArgs: b.resolveAllTypes(ex.TypeArgs)}

	case *ast.BinaryExpression:
		return &ir.Binary{Op: ex.Op, Left: b.convertExpr(ex.Left), Right: b.convertExpr(ex.Right)}

	case *ast.LogicalExpression:
		return &ir.Logical{Op: ex.Op, Left: b.convertExpr(ex.Left), Right: b.convertExpr(ex.Right)}

	case *ast.UnaryExpression:
		return &ir.Unary{Op: ex.Op, Operand: b.convertExpr(ex.Operand)}

	case *ast.UpdateExpression:
		return &ir.Update{Op: ex.Op, Operand: b.convertExpr(ex.Operand), Prefix: ex.Prefix}

	case *ast.ConditionalExpression:
		return &ir.Conditional{Test: b.convertExpr(ex.Test), Then: b.convertExpr(ex.Then), Else: b.convertExpr(ex.Else)}

	case *ast.AssignmentExpression:
		return &ir.Assignment{Op: ex.Op, Target: b.convertExpr(ex.Target), Value: b.convertExpr(ex.Value)}

	case *ast.SpreadExpression:
		return &ir.Spread{Argument: b.convertExpr(ex.Argument)}

	case *ast.ThisExpression:
		return &ir.This{}

	case *ast.AwaitExpression:
		return &ir.Await{Argument: b.convertExpr(ex.Argument)}

	case *ast.YieldExpression:
		return &ir.Yield{Argument: b.convertOptionalExpr(ex.Argument), Delegate: ex.Delegate}

	case *ast.TypeAssertionExpression:
		return &ir.TypeAssertion{Expr: b.convertExpr(ex.Expr), Type: b.resolveType(ex.Type)}

	case *ast.TrycastExpression:
		return &ir.Trycast{Expr: b.convertExpr(ex.Expr), Type: b.resolveType(ex.Type)}

	case *ast.StackallocExpression:
		return &ir.Stackalloc{ElementType: b.resolveType(ex.ElementType), Length: b.convertExpr(ex.Length)}

	default:
		return &ir.Literal{Value: nil}
	}
}

// convertIdentifier applies any flow-narrowed type the current typeEnv
// holds for this identifier's DeclId.
func (b *Builder) convertIdentifier(id *ast.Identifier) ir.Expression {
	ident := &ir.Identifier{Name: id.Name}
	declID, ok := b.identDeclId(id)
	if !ok {
		return ident
	}
	ident.DeclId = int(declID)
	if narrowed, ok := b.narrowing.lookup(declID); ok {
		ident.InferredType = narrowed
	}
	return ident
}

func (b *Builder) convertFunctionLiteral(fn *ast.FunctionLiteral) ir.Expression {
	lit := &ir.FunctionLit{
		Name:        fn.Name,
		TypeParams:  typeParamNames(fn.TypeParams),
		Params:      b.convertParams(fn.Params),
		ReturnType:  b.resolveType(fn.ReturnType),
		IsArrow:     fn.IsArrow,
		IsAsync:     fn.IsAsync,
		IsGenerator: fn.IsGenerator,
	}
	if fn.Body != nil {
		lit.Body = b.convertBlock(fn.Body)
	} else if fn.ExprBody != nil {
		lit.ExprBody = b.convertExpr(fn.ExprBody)
	}
	return lit
}

// convertObjectLiteral synthesizes a nominal interface for the literal's
// shape when eligible, tagging the ObjectLit's
// InferredType with the resulting reference so the backend knows which
// class to construct.
func (b *Builder) convertObjectLiteral(lit *ast.ObjectLiteral) ir.Expression {
	props := make([]ir.ObjectProperty, 0, len(lit.Properties))
	for _, p := range lit.Properties {
		if p.Spread {
			props = append(props, ir.ObjectProperty{Key: "", Value: &ir.Spread{Argument: b.convertExpr(p.Value)}})
			continue
		}
		props = append(props, ir.ObjectProperty{Key: p.Key, Value: b.convertExpr(p.Value)})
	}
	out := &ir.ObjectLit{Properties: props}
	out.InferredType = b.synthesize(lit, func(v ast.Expression) types.IrType { return b.inferLiteralMemberType(v) })
	return out
}

// inferLiteralMemberType is a best-effort, checker-free approximation of
// an object-literal member's type: literals and `new`/function-typed
// initializers get a concrete type, everything else defers to `any`
// (the full inference "TypeScript-inferred type" describes
// would require the TypeScript checker this front end does not embed).
func (b *Builder) inferLiteralMemberType(v ast.Expression) types.IrType {
	switch val := v.(type) {
	case *ast.StringLiteral:
		return &types.PrimitiveType{Name: "string"}
	case *ast.IntegerLiteral:
		return &types.PrimitiveType{Name: "number", NumericIntent: types.Int32}
	case *ast.FloatLiteral:
		return &types.PrimitiveType{Name: "number", NumericIntent: types.Double}
	case *ast.BoolLiteral:
		return &types.PrimitiveType{Name: "boolean"}
	case *ast.ObjectLiteral:
		return b.synthesize(val, b.inferLiteralMemberType)
	case *ast.ArrayLiteral:
		if len(val.Elements) > 0 {
			return &types.ArrayType{Element: b.inferLiteralMemberType(val.Elements[0]), Origin: types.ArrayInferred}
		}
		return &types.ArrayType{Element: &types.PrimitiveType{Name: "any"}, Origin: types.ArrayInferred}
	default:
		return &types.PrimitiveType{Name: "any"}
	}
}
