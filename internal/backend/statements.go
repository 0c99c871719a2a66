package backend

import (
	"strings"

	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// EmitStatement renders one IR statement, indented per ctx.Indent, with
// a trailing newline.
func EmitStatement(s ir.Statement, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	switch st := s.(type) {
	case *ir.VarDecl:
		return ind + emitVarDecl(st, ctx) + "\n"
	case *ir.ExprStmt:
		return ind + EmitExpression(st.Expr, ctx) + ";\n"
	case *ir.IfStmt:
		return emitIf(st, ctx)
	case *ir.WhileStmt:
		return emitWhile(st, ctx)
	case *ir.ForStmt:
		return emitFor(st, ctx)
	case *ir.ForOfStmt:
		return emitForOf(st, ctx)
	case *ir.ForInStmt:
		return emitForIn(st, ctx)
	case *ir.SwitchStmt:
		return emitSwitch(st, ctx)
	case *ir.TryStmt:
		return emitTry(st, ctx)
	case *ir.ThrowStmt:
		return ind + "throw " + EmitExpression(st.Argument, ctx) + ";\n"
	case *ir.ReturnStmt:
		if st.Argument == nil {
			return ind + "return;\n"
		}
		return ind + "return " + EmitExpression(st.Argument, ctx) + ";\n"
	case *ir.BreakStmt:
		return ind + "break;\n"
	case *ir.ContinueStmt:
		return ind + "continue;\n"
	case *ir.EmptyStmt:
		return ind + ";\n"
	case *ir.BlockStmt:
		return ind + emitBlock(st, ctx) + "\n"
	case *ir.YieldStmt:
		diag.Panic("IrStatement.YieldStmt", "yield statement reached emission outside generator lowering")
		return ""
	case *ir.GeneratorReturnStmt:
		diag.Panic("IrStatement.GeneratorReturnStmt", "generator-return statement reached emission outside generator lowering")
		return ""
	case *ir.FunctionDecl, *ir.ClassDecl, *ir.InterfaceDecl, *ir.EnumDecl, *ir.TypeAliasDecl:
		// nested declarations inside a block are emitted by declarations.go
		return EmitLocalDeclaration(st, ctx)
	default:
		diag.Panic("IrStatement", "unhandled statement kind %T reached the backend", s)
		return ""
	}
}

func emitVarDecl(d *ir.VarDecl, ctx *EmitterContext) string {
	parts := make([]string, len(d.Declarators))
	for i, decl := range d.Declarators {
		typeName := "var"
		if decl.Type != nil {
			typeName = EmitType(decl.Type, ctx)
		}
		if decl.Init == nil {
			parts[i] = typeName + " " + decl.Name + ";"
			continue
		}
		parts[i] = typeName + " " + decl.Name + " = " + EmitExpression(decl.Init, ctx) + ";"
	}
	return strings.Join(parts, " ")
}

func emitBlock(b *ir.BlockStmt, ctx *EmitterContext) string {
	if b == nil {
		return "{\n" + ctx.indentStr() + "}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	inner := ctx.WithIndent(1)
	for _, s := range b.Statements {
		sb.WriteString(EmitStatement(s, inner))
	}
	sb.WriteString(ctx.indentStr())
	sb.WriteString("}")
	return sb.String()
}

func emitBodyAsBlock(s ir.Statement, ctx *EmitterContext) string {
	if block, ok := s.(*ir.BlockStmt); ok {
		return emitBlock(block, ctx)
	}
	if s == nil {
		return emitBlock(nil, ctx)
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	inner := ctx.WithIndent(1)
	sb.WriteString(EmitStatement(s, inner))
	sb.WriteString(ctx.indentStr())
	sb.WriteString("}")
	return sb.String()
}

func emitIf(st *ir.IfStmt, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("if (")
	sb.WriteString(EmitExpression(st.Test, ctx))
	sb.WriteString(") ")
	sb.WriteString(emitBodyAsBlock(st.Then, ctx))
	if st.Else != nil {
		sb.WriteString("\n")
		sb.WriteString(ind)
		if elseIf, ok := st.Else.(*ir.IfStmt); ok {
			sb.WriteString("else ")
			sb.WriteString(strings.TrimPrefix(emitIf(elseIf, ctx), ind))
			return sb.String()
		}
		sb.WriteString("else ")
		sb.WriteString(emitBodyAsBlock(st.Else, ctx))
	}
	sb.WriteString("\n")
	return sb.String()
}

func emitWhile(st *ir.WhileStmt, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	if st.DoWhile {
		return ind + "do " + emitBodyAsBlock(st.Body, ctx) + " while (" + EmitExpression(st.Test, ctx) + ");\n"
	}
	return ind + "while (" + EmitExpression(st.Test, ctx) + ") " + emitBodyAsBlock(st.Body, ctx) + "\n"
}

func emitFor(st *ir.ForStmt, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	initStr := ""
	if st.Init != nil {
		if vd, ok := st.Init.(*ir.VarDecl); ok {
			initStr = emitVarDecl(vd, ctx)
			initStr = strings.TrimSuffix(initStr, ";")
		} else if es, ok := st.Init.(*ir.ExprStmt); ok {
			initStr = EmitExpression(es.Expr, ctx)
		}
	}
	testStr := ""
	if st.Test != nil {
		testStr = EmitExpression(st.Test, ctx)
	}
	updateStr := ""
	if st.Update != nil {
		updateStr = EmitExpression(st.Update, ctx)
	}
	return ind + "for (" + initStr + "; " + testStr + "; " + updateStr + ") " + emitBodyAsBlock(st.Body, ctx) + "\n"
}

// emitForOf lowers a `for..of` loop to C#'s `foreach` (// ForOfStmt carries the same shape foreach needs directly).
func emitForOf(st *ir.ForOfStmt, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	typeName := "var"
	if st.Type != nil {
		typeName = EmitType(st.Type, ctx)
	}
	await := ""
	if st.IsAwaitOf {
		await = "await "
	}
	return ind + "foreach " + await + "(" + typeName + " " + st.Name + " in " + EmitExpression(st.Iterable, ctx) + ") " + emitBodyAsBlock(st.Body, ctx) + "\n"
}

// emitForIn lowers `for..in` to iteration over the runtime object's key
// set through Tsonic.Runtime's KeysOf helper, for every object value
// including a Dictionary (no direct `.Keys` iteration is emitted).
func emitForIn(st *ir.ForInStmt, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	return ind + "foreach (var " + st.Name + " in global::Tsonic.Runtime.Interop.KeysOf(" + EmitExpression(st.Object, ctx) + ")) " + emitBodyAsBlock(st.Body, ctx) + "\n"
}

func emitSwitch(st *ir.SwitchStmt, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("switch (")
	sb.WriteString(EmitExpression(st.Discriminant, ctx))
	sb.WriteString(") {\n")
	inner := ctx.WithIndent(1)
	for _, c := range st.Cases {
		if c.Test == nil {
			sb.WriteString(inner.indentStr())
			sb.WriteString("default:\n")
		} else {
			sb.WriteString(inner.indentStr())
			sb.WriteString("case ")
			sb.WriteString(EmitExpression(c.Test, ctx))
			sb.WriteString(":\n")
		}
		caseBody := inner.WithIndent(1)
		for _, s := range c.Statements {
			sb.WriteString(EmitStatement(s, caseBody))
		}
	}
	sb.WriteString(ind)
	sb.WriteString("}\n")
	return sb.String()
}

func emitTry(st *ir.TryStmt, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("try ")
	sb.WriteString(emitBlock(st.Block, ctx))
	if st.Catch != nil {
		sb.WriteString("\n")
		sb.WriteString(ind)
		typeName := "global::System.Exception"
		if st.Catch.Type != nil {
			typeName = EmitType(st.Catch.Type, ctx)
		}
		sb.WriteString("catch (" + typeName + " " + st.Catch.Param + ") ")
		sb.WriteString(emitBlock(st.Catch.Body, ctx))
	}
	if st.Finally != nil {
		sb.WriteString("\n")
		sb.WriteString(ind)
		sb.WriteString("finally ")
		sb.WriteString(emitBlock(st.Finally, ctx))
	}
	sb.WriteString("\n")
	return sb.String()
}
