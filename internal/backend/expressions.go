package backend

import (
	"strings"

	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/types"
)

// EmitExpression renders one IR expression as a C# expression fragment.
// It never emits a trailing semicolon or indentation — callers in
// statements.go own statement-level formatting.
func EmitExpression(e ir.Expression, ctx *EmitterContext) string {
	switch ex := e.(type) {
	case nil:
		return ""
	case *ir.Literal:
		return emitLiteralExpr(ex)
	case *ir.Identifier:
		return ex.Name
	case *ir.This:
		return "this"
	case *ir.MemberAccess:
		return emitMemberAccess(ex, ctx)
	case *ir.Call:
		return emitCall(ex, ctx)
	case *ir.New:
		return emitNew(ex, ctx)
	case *ir.Binary:
		return EmitExpression(ex.Left, ctx) + " " + csOperator(ex.Op) + " " + EmitExpression(ex.Right, ctx)
	case *ir.Logical:
		return EmitExpression(ex.Left, ctx) + " " + csOperator(ex.Op) + " " + EmitExpression(ex.Right, ctx)
	case *ir.Unary:
		if ex.Op == "typeof" {
			return EmitExpression(ex.Operand, ctx) + ".GetType()"
		}
		return ex.Op + EmitExpression(ex.Operand, ctx)
	case *ir.Update:
		if ex.Prefix {
			return ex.Op + EmitExpression(ex.Operand, ctx)
		}
		return EmitExpression(ex.Operand, ctx) + ex.Op
	case *ir.Conditional:
		return EmitExpression(ex.Test, ctx) + " ? " + EmitExpression(ex.Then, ctx) + " : " + EmitExpression(ex.Else, ctx)
	case *ir.Assignment:
		return EmitExpression(ex.Target, ctx) + " " + ex.Op + " " + EmitExpression(ex.Value, ctx)
	case *ir.ArrayLit:
		return emitArrayLit(ex, ctx)
	case *ir.ObjectLit:
		return emitObjectLit(ex, ctx)
	case *ir.FunctionLit:
		return emitFunctionLit(ex, ctx)
	case *ir.TemplateLit:
		return emitTemplateLit(ex, ctx)
	case *ir.Spread:
		diag.Panic("IrExpression.Spread", "spread expression reached the backend unlowered")
		return ""
	case *ir.Await:
		return "await " + EmitExpression(ex.Argument, ctx)
	case *ir.Yield:
		diag.Panic("IrExpression.Yield", "yield expression reached the backend outside generator lowering")
		return ""
	case *ir.TypeAssertion:
		return "(" + EmitType(ex.Type, ctx) + ")" + EmitExpression(ex.Expr, ctx)
	case *ir.Trycast:
		return EmitExpression(ex.Expr, ctx) + " as " + EmitType(ex.Type, ctx)
	case *ir.Stackalloc:
		return "stackalloc " + EmitType(ex.ElementType, ctx) + "[" + EmitExpression(ex.Length, ctx) + "]"
	case *ir.NumericNarrowing:
		return "(" + EmitType(narrowedPrimitive(ex), ctx) + ")" + EmitExpression(ex.Inner, ctx)
	default:
		diag.Panic("IrExpression", "unhandled expression kind %T reached the backend", e)
		return ""
	}
}

func emitLiteralExpr(l *ir.Literal) string {
	if l.Value == ir.Undefined {
		return "default"
	}
	return EmitLiteralValue(l.Value)
}

// emitMemberAccess implements the three computed-access kinds' C# shape
//: clrIndexer/jsRuntimeArray/stringChar all use `[]`
// in C#, dictionary access also uses `[]`, non-computed access is `.`.
func emitMemberAccess(ex *ir.MemberAccess, ctx *EmitterContext) string {
	obj := EmitExpression(ex.Object, ctx)
	if !ex.Computed {
		prop, ok := ex.Property.(*ir.Identifier)
		if !ok {
			diag.Panic("IrExpression.MemberAccess", "non-computed access with non-identifier property")
		}
		op := "."
		if ex.Optional {
			op = "?."
		}
		return obj + op + prop.Name
	}
	idx := EmitExpression(ex.Property, ctx)
	if ex.Optional {
		return obj + "?[" + idx + "]"
	}
	return obj + "[" + idx + "]"
}

func emitCall(ex *ir.Call, ctx *EmitterContext) string {
	callee := EmitExpression(ex.Callee, ctx)
	if ex.Optional {
		callee += "?."
	}
	args := make([]string, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = EmitExpression(a, ctx)
	}
	typeArgs := ""
	if len(ex.TypeArgs) > 0 {
		parts := make([]string, len(ex.TypeArgs))
		for i, t := range ex.TypeArgs {
			parts[i] = EmitType(t, ctx)
		}
		typeArgs = "<" + strings.Join(parts, ", ") + ">"
	}
	return callee + typeArgs + "(" + strings.Join(args, ", ") + ")"
}

func emitNew(ex *ir.New, ctx *EmitterContext) string {
	callee := EmitExpression(ex.Callee, ctx)
	args := make([]string, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = EmitExpression(a, ctx)
	}
	typeArgs := ""
	if len(ex.TypeArgs) > 0 {
		parts := make([]string, len(ex.TypeArgs))
		for i, t := range ex.TypeArgs {
			parts[i] = EmitType(t, ctx)
		}
		typeArgs = "<" + strings.Join(parts, ", ") + ">"
	}
	return "new " + callee + typeArgs + "(" + strings.Join(args, ", ") + ")"
}

func emitArrayLit(ex *ir.ArrayLit, ctx *EmitterContext) string {
	elemType := "global::System.Object"
	if ex.InferredType != nil {
		elemType = EmitType(ex.InferredType, ctx)
	}
	elems := make([]string, len(ex.Elements))
	for i, e := range ex.Elements {
		elems[i] = EmitExpression(e, ctx)
	}
	if ctx.Runtime != "dotnet" {
		return "new global::System.Collections.Generic.List<object>{ " + strings.Join(elems, ", ") + " }"
	}
	_ = elemType
	return "new[] { " + strings.Join(elems, ", ") + " }"
}

func emitObjectLit(ex *ir.ObjectLit, ctx *EmitterContext) string {
	typeName := "global::System.Object"
	if ex.InferredType != nil {
		typeName = EmitType(ex.InferredType, ctx)
	}
	if len(ex.Properties) == 0 {
		return "new " + typeName + "()"
	}
	parts := make([]string, len(ex.Properties))
	for i, p := range ex.Properties {
		parts[i] = p.Key + " = " + EmitExpression(p.Value, ctx)
	}
	return "new " + typeName + " { " + strings.Join(parts, ", ") + " }"
}

func emitFunctionLit(ex *ir.FunctionLit, ctx *EmitterContext) string {
	params := make([]string, len(ex.Params))
	for i, p := range ex.Params {
		params[i] = p.Name
	}
	prefix := ""
	if ex.IsAsync {
		prefix = "async "
	}
	sig := "(" + strings.Join(params, ", ") + ")"
	if ex.ExprBody != nil {
		return prefix + sig + " => " + EmitExpression(ex.ExprBody, ctx)
	}
	inner := ctx.WithIndent(1)
	return prefix + sig + " => " + emitBlock(ex.Body, inner)
}

func emitTemplateLit(ex *ir.TemplateLit, ctx *EmitterContext) string {
	var sb strings.Builder
	sb.WriteString("$\"")
	for _, part := range ex.Parts {
		if part.Expr == nil {
			sb.WriteString(escapeInterpolated(part.Text))
			continue
		}
		sb.WriteString("{")
		sb.WriteString(EmitExpression(part.Expr, ctx))
		sb.WriteString("}")
	}
	sb.WriteString("\"")
	return sb.String()
}

func escapeInterpolated(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "{", "{{")
	s = strings.ReplaceAll(s, "}", "}}")
	return s
}

func narrowedPrimitive(ex *ir.NumericNarrowing) *types.PrimitiveType {
	return &types.PrimitiveType{Name: "int", NumericIntent: ex.TargetKind}
}

func csOperator(op string) string {
	switch op {
	case "===":
		return "=="
	case "!==":
		return "!="
	case "??":
		return "??"
	default:
		return op
	}
}
