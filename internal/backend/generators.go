package backend

import (
	"strings"

	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// EmitGeneratorWrapper emits the wrapper class that accompanies a
// generator function: a private C#
// iterator method backs the enumerator itself, reusing C#'s own
// `yield return`/`yield break` and its compiler-generated closure rather
// than hand-rolling a state machine, and a public class exposes that
// enumerator as next()/return()/throw() returning IteratorResult<T>
// from the runtime package.
func EmitGeneratorWrapper(fn *ir.FunctionDecl, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	elemType := "global::System.Object"
	if fn.ReturnType != nil {
		elemType = EmitType(fn.ReturnType, ctx)
	}
	wrapperName := fn.Name + "Generator"
	iterMethodName := fn.Name + "__Iterator"

	var sb strings.Builder

	sb.WriteString(ind)
	sb.WriteString("private static global::System.Collections.Generic.IEnumerable<")
	sb.WriteString(elemType)
	sb.WriteString("> ")
	sb.WriteString(iterMethodName)
	sb.WriteString("(")
	sb.WriteString(emitParamList(fn.Params, ctx))
	sb.WriteString(") ")
	sb.WriteString(emitGeneratorBody(fn.Body, ctx))
	sb.WriteString("\n")

	sb.WriteString(ind)
	sb.WriteString("public sealed class ")
	sb.WriteString(wrapperName)
	sb.WriteString(" {\n")
	inner := ctx.WithIndent(1)

	sb.WriteString(inner.indentStr())
	sb.WriteString("private readonly global::System.Collections.Generic.IEnumerator<")
	sb.WriteString(elemType)
	sb.WriteString("> _inner;\n")

	sb.WriteString(inner.indentStr())
	sb.WriteString("public ")
	sb.WriteString(wrapperName)
	sb.WriteString("(global::System.Collections.Generic.IEnumerable<")
	sb.WriteString(elemType)
	sb.WriteString("> source) { _inner = source.GetEnumerator(); }\n")

	resultType := "global::Tsonic.Runtime.IteratorResult<" + elemType + ">"

	sb.WriteString(inner.indentStr())
	sb.WriteString("public " + resultType + " Next() {\n")
	body := inner.WithIndent(1)
	sb.WriteString(body.indentStr())
	sb.WriteString("if (!_inner.MoveNext()) return " + resultType + ".Done();\n")
	sb.WriteString(body.indentStr())
	sb.WriteString("return " + resultType + ".Yielded(_inner.Current);\n")
	sb.WriteString(inner.indentStr())
	sb.WriteString("}\n")

	sb.WriteString(inner.indentStr())
	sb.WriteString("public " + resultType + " Return() { _inner.Dispose(); return " + resultType + ".Done(); }\n")

	sb.WriteString(inner.indentStr())
	sb.WriteString("public " + resultType + " Throw(global::System.Exception ex) { _inner.Dispose(); throw ex; }\n")

	sb.WriteString(ind)
	sb.WriteString("}\n")
	return sb.String()
}

// emitGeneratorBody is emitBlock's counterpart for an iterator method's
// body: every nested statement still needs to route through
// emitGeneratorStatement, since a yield can appear inside an if/while/
// for/switch/try nested arbitrarily deep in the original body.
func emitGeneratorBody(b *ir.BlockStmt, ctx *EmitterContext) string {
	if b == nil {
		return "{\n" + ctx.indentStr() + "}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	inner := ctx.WithIndent(1)
	for _, s := range b.Statements {
		sb.WriteString(emitGeneratorStatement(s, inner))
	}
	sb.WriteString(ctx.indentStr())
	sb.WriteString("}")
	return sb.String()
}

func emitGeneratorBodyAsBlock(s ir.Statement, ctx *EmitterContext) string {
	if block, ok := s.(*ir.BlockStmt); ok {
		return emitGeneratorBody(block, ctx)
	}
	if s == nil {
		return emitGeneratorBody(nil, ctx)
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	inner := ctx.WithIndent(1)
	sb.WriteString(emitGeneratorStatement(s, inner))
	sb.WriteString(ctx.indentStr())
	sb.WriteString("}")
	return sb.String()
}

// emitGeneratorStatement renders one statement inside a generator's
// iterator-method body. YieldStmt/GeneratorReturnStmt (produced only by
// the generator-lowering pass ahead of the backend) become
// `yield return`/`yield break`; every other control-flow form recurses
// through this function instead of EmitStatement so a nested yield is
// never lost, and leaf statements (no nested block) fall back to the
// ordinary EmitStatement.
func emitGeneratorStatement(s ir.Statement, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	switch st := s.(type) {
	case *ir.YieldStmt:
		switch {
		case st.Delegate:
			return ind + "foreach (var __item in " + EmitExpression(st.Argument, ctx) + ") yield return __item;\n"
		case st.Argument == nil:
			return ind + "yield return default;\n"
		default:
			return ind + "yield return " + EmitExpression(st.Argument, ctx) + ";\n"
		}
	case *ir.GeneratorReturnStmt:
		return ind + "yield break;\n"
	case *ir.BlockStmt:
		return ind + emitGeneratorBody(st, ctx) + "\n"
	case *ir.IfStmt:
		return emitGeneratorIf(st, ctx)
	case *ir.WhileStmt:
		if st.DoWhile {
			return ind + "do " + emitGeneratorBodyAsBlock(st.Body, ctx) + " while (" + EmitExpression(st.Test, ctx) + ");\n"
		}
		return ind + "while (" + EmitExpression(st.Test, ctx) + ") " + emitGeneratorBodyAsBlock(st.Body, ctx) + "\n"
	case *ir.ForStmt:
		return emitGeneratorFor(st, ctx)
	case *ir.ForOfStmt:
		typeName := "var"
		if st.Type != nil {
			typeName = EmitType(st.Type, ctx)
		}
		await := ""
		if st.IsAwaitOf {
			await = "await "
		}
		return ind + "foreach " + await + "(" + typeName + " " + st.Name + " in " + EmitExpression(st.Iterable, ctx) + ") " + emitGeneratorBodyAsBlock(st.Body, ctx) + "\n"
	case *ir.ForInStmt:
		return ind + "foreach (var " + st.Name + " in global::Tsonic.Runtime.Interop.KeysOf(" + EmitExpression(st.Object, ctx) + ")) " + emitGeneratorBodyAsBlock(st.Body, ctx) + "\n"
	case *ir.SwitchStmt:
		return emitGeneratorSwitch(st, ctx)
	case *ir.TryStmt:
		return emitGeneratorTry(st, ctx)
	case *ir.FunctionDecl, *ir.ClassDecl, *ir.InterfaceDecl, *ir.EnumDecl, *ir.TypeAliasDecl:
		diag.Panic("IrStatement", "nested declaration inside a generator body reached the backend unlowered")
		return ""
	default:
		return EmitStatement(s, ctx)
	}
}

func emitGeneratorIf(st *ir.IfStmt, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("if (")
	sb.WriteString(EmitExpression(st.Test, ctx))
	sb.WriteString(") ")
	sb.WriteString(emitGeneratorBodyAsBlock(st.Then, ctx))
	if st.Else != nil {
		sb.WriteString("\n")
		sb.WriteString(ind)
		if elseIf, ok := st.Else.(*ir.IfStmt); ok {
			sb.WriteString("else ")
			sb.WriteString(strings.TrimPrefix(emitGeneratorIf(elseIf, ctx), ind))
			return sb.String()
		}
		sb.WriteString("else ")
		sb.WriteString(emitGeneratorBodyAsBlock(st.Else, ctx))
	}
	sb.WriteString("\n")
	return sb.String()
}

func emitGeneratorFor(st *ir.ForStmt, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	initStr := ""
	if st.Init != nil {
		if vd, ok := st.Init.(*ir.VarDecl); ok {
			initStr = strings.TrimSuffix(emitVarDecl(vd, ctx), ";")
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
	return ind + "for (" + initStr + "; " + testStr + "; " + updateStr + ") " + emitGeneratorBodyAsBlock(st.Body, ctx) + "\n"
}

func emitGeneratorSwitch(st *ir.SwitchStmt, ctx *EmitterContext) string {
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
			sb.WriteString(emitGeneratorStatement(s, caseBody))
		}
	}
	sb.WriteString(ind)
	sb.WriteString("}\n")
	return sb.String()
}

func emitGeneratorTry(st *ir.TryStmt, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("try ")
	sb.WriteString(emitGeneratorBody(st.Block, ctx))
	if st.Catch != nil {
		sb.WriteString("\n")
		sb.WriteString(ind)
		typeName := "global::System.Exception"
		if st.Catch.Type != nil {
			typeName = EmitType(st.Catch.Type, ctx)
		}
		sb.WriteString("catch (" + typeName + " " + st.Catch.Param + ") ")
		sb.WriteString(emitGeneratorBody(st.Catch.Body, ctx))
	}
	if st.Finally != nil {
		sb.WriteString("\n")
		sb.WriteString(ind)
		sb.WriteString("finally ")
		sb.WriteString(emitGeneratorBody(st.Finally, ctx))
	}
	sb.WriteString("\n")
	return sb.String()
}
