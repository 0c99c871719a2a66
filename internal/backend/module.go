package backend

import (
	"strings"

	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/types"
	"github.com/tsoniclang/tsonic/internal/validate"
)

// Emit renders a validated module as one C# source file: a stable file
// header, a sorted using block, the
// namespace, and one static container class holding every top-level
// declaration plus, when the module has executable top-level statements,
// a generated __TopLevel() entry method. NamingCollisionPass already
// resolved mod.ContainerName against any member/type collision upstream
// (internal/validate/naming.go's resolveContainerCollision), so this
// function trusts it as final rather than re-deriving the rename.
func Emit(mod *ir.Module, runtime validate.RuntimeMode, naming validate.NamingPolicy) string {
	ctx := NewEmitterContext(mod.ContainerName, runtime, naming)
	ctx = ctx.WithLocalTypes(collectLocalTypes(mod))
	ctx = ctx.WithImportBindings(collectImportBindings(mod))

	var decls []ir.Statement
	var topLevel []ir.Statement
	for _, s := range mod.Statements {
		switch s.(type) {
		case *ir.FunctionDecl, *ir.ClassDecl, *ir.InterfaceDecl, *ir.EnumDecl, *ir.TypeAliasDecl:
			decls = append(decls, s)
		default:
			topLevel = append(topLevel, s)
		}
	}

	bodyCtx := ctx.WithIndent(2)
	var body strings.Builder
	for _, d := range decls {
		body.WriteString(emitTopLevelDeclaration(d, bodyCtx))
	}
	for _, iface := range mod.AnonymousTypes {
		body.WriteString(emitSyntheticInterface(iface, bodyCtx))
	}
	if mod.HasTopLevelCode {
		body.WriteString(emitTopLevelMethod(topLevel, bodyCtx))
	}

	var sb strings.Builder
	sb.WriteString("// <auto-generated>\n")
	sb.WriteString("// source: ")
	sb.WriteString(mod.SourcePath)
	sb.WriteString("\n")
	sb.WriteString("// </auto-generated>\n\n")

	for _, using := range ctx.SortedUsings() {
		sb.WriteString("using ")
		sb.WriteString(using)
		sb.WriteString(";\n")
	}
	sb.WriteString("\n")

	if mod.Namespace != "" {
		sb.WriteString("namespace ")
		sb.WriteString(mod.Namespace)
		sb.WriteString(" {\n\n")
	}

	sb.WriteString("public static class ")
	sb.WriteString(mod.ContainerName)
	sb.WriteString(" {\n")
	sb.WriteString(body.String())
	sb.WriteString("}\n")

	if mod.Namespace != "" {
		sb.WriteString("\n}\n")
	}

	return sb.String()
}

func emitTopLevelDeclaration(s ir.Statement, ctx *EmitterContext) string {
	switch st := s.(type) {
	case *ir.FunctionDecl:
		return EmitFunctionDecl(st, ctx)
	case *ir.ClassDecl:
		return EmitClassDecl(st, ctx)
	case *ir.InterfaceDecl:
		return EmitInterfaceDecl(st, ctx)
	case *ir.EnumDecl:
		return EmitEnumDecl(st, ctx)
	case *ir.TypeAliasDecl:
		return ""
	default:
		return EmitLocalDeclaration(s, ctx)
	}
}

// emitSyntheticInterface emits a nominal class for one anonymous object
// literal or union arm synthesized during IR construction;
// auto-properties mirror emitInterfaceAsClass's shape since a synthetic
// interface exists precisely so object literals can instantiate it.
func emitSyntheticInterface(iface *ir.SyntheticInterface, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	inner := ctx.WithTypeParams(iface.TypeParams, "")
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("public class ")
	sb.WriteString(iface.Name)
	sb.WriteString(typeParamList(iface.TypeParams))
	sb.WriteString(" {\n")
	memberCtx := inner.WithIndent(1)
	for _, m := range iface.Members {
		sb.WriteString(emitSyntheticMember(m, memberCtx))
	}
	sb.WriteString(ind)
	sb.WriteString("}\n")
	return sb.String()
}

func emitSyntheticMember(m types.ObjectMember, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("public ")
	if !m.Optional {
		sb.WriteString("required ")
	}
	typeName := EmitType(m.Type, ctx)
	if m.Optional {
		typeName += "?"
	}
	sb.WriteString(typeName)
	sb.WriteString(" ")
	sb.WriteString(validate.ApplyCase(ctx.Naming.Properties, m.Name))
	if m.Readonly {
		sb.WriteString(" { get; init; }\n")
	} else {
		sb.WriteString(" { get; set; }\n")
	}
	return sb.String()
}

// emitTopLevelMethod wraps a module's executable top-level statements in
// a generated entry method; the CLI/runtime host calls
// this to run a module compiled as an executable.
func emitTopLevelMethod(stmts []ir.Statement, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("public static void __TopLevel() {\n")
	inner := ctx.WithIndent(1)
	for _, s := range stmts {
		sb.WriteString(EmitStatement(s, inner))
	}
	sb.WriteString(ind)
	sb.WriteString("}\n")
	return sb.String()
}

// collectLocalTypes walks a module's own declarations once before
// emission so every reference resolves against every sibling
// declaration regardless of source order (// EmitterContext.LocalTypes, populated once per module).
func collectLocalTypes(mod *ir.Module) map[string]LocalType {
	out := map[string]LocalType{}
	for _, s := range mod.Statements {
		switch st := s.(type) {
		case *ir.ClassDecl:
			out[st.Name] = LocalType{Name: st.Name}
		case *ir.InterfaceDecl:
			out[st.Name] = LocalType{Name: st.Name}
		case *ir.EnumDecl:
			out[st.Name] = LocalType{Name: st.Name}
		case *ir.TypeAliasDecl:
			_, isObject := st.Type.(*types.ObjectType)
			out[st.Name] = LocalType{Name: st.Name, IsAlias: true, AliasObjectType: isObject}
		}
	}
	for _, iface := range mod.AnonymousTypes {
		out[iface.Name] = LocalType{Name: iface.Name}
	}
	return out
}

// collectImportBindings turns a module's resolved imports into the
// lookup table emitReferenceType consults (resolution
// order places ImportBindings ahead of the built-in generic specials and
// the local-type table).
func collectImportBindings(mod *ir.Module) map[string]ImportBinding {
	out := map[string]ImportBinding{}
	for _, imp := range mod.Imports {
		if imp.FqContainer == "" {
			continue
		}
		for _, name := range imp.Names {
			out[name] = ImportBinding{FqContainer: imp.FqContainer, ExportName: name}
		}
	}
	return out
}
