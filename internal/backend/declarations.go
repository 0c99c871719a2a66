package backend

import (
	"strings"

	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/validate"
)

// EmitLocalDeclaration emits a declaration statement that appears nested
// inside a function body (a local function or, rarely, a local class).
func EmitLocalDeclaration(s ir.Statement, ctx *EmitterContext) string {
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
		return "" // type aliases have no runtime representation; only their referents are emitted
	default:
		diag.Panic("IrStatement", "unhandled declaration kind %T", s)
		return ""
	}
}

func visibilityKeyword(v ir.Visibility) string {
	switch v {
	case ir.VisPublic:
		return "public"
	case ir.VisProtected:
		return "protected"
	case ir.VisPrivate:
		return "private"
	default:
		return "public"
	}
}

func emitAttributes(attrs []ir.Attribute, ctx *EmitterContext, ind string) string {
	if len(attrs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, a := range attrs {
		sb.WriteString(ind)
		sb.WriteString("[")
		sb.WriteString(a.AttrType)
		if len(a.Args) > 0 {
			parts := make([]string, len(a.Args))
			for i, arg := range a.Args {
				parts[i] = EmitLiteralValue(arg)
			}
			sb.WriteString("(")
			sb.WriteString(strings.Join(parts, ", "))
			sb.WriteString(")")
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

func typeParamList(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "<" + strings.Join(names, ", ") + ">"
}

// EmitFunctionDecl emits a top-level or nested function as a static C#
// method on the enclosing container.
// The method name goes through the naming policy's "methods" bucket
// — NamingCollisionPass already checked
// this same transform for collisions upstream, so applying it here at
// emission time, rather than mutating declaration names during
// validation, keeps the one case-policy implementation backend owns as
// the single source of truth for what a name actually renders as.
func EmitFunctionDecl(fn *ir.FunctionDecl, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	var sb strings.Builder
	sb.WriteString(emitAttributes(fn.Attributes, ctx, ind))
	sb.WriteString(ind)
	sb.WriteString("public static ")
	if fn.IsAsync {
		sb.WriteString("async ")
	}
	inner := ctx.WithTypeParams(fn.TypeParams, "")
	returnType := "void"
	if fn.ReturnType != nil {
		returnType = EmitType(fn.ReturnType, inner)
	}
	if fn.IsAsync && returnType == "global::System.Void" {
		returnType = "global::System.Threading.Tasks.Task"
	}
	sb.WriteString(returnType)
	sb.WriteString(" ")
	sb.WriteString(validate.ApplyCase(ctx.Naming.Methods, fn.Name))
	sb.WriteString(typeParamList(fn.TypeParams))
	sb.WriteString("(")
	sb.WriteString(emitParamList(fn.Params, inner))
	sb.WriteString(") ")
	sb.WriteString(emitBlock(fn.Body, inner))
	sb.WriteString("\n")
	if fn.IsGenerator {
		return sb.String() + EmitGeneratorWrapper(fn, ctx)
	}
	return sb.String()
}

func emitParamList(params []ir.Param, ctx *EmitterContext) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = emitParam(p, ctx)
	}
	return strings.Join(parts, ", ")
}

func emitParam(p ir.Param, ctx *EmitterContext) string {
	var sb strings.Builder
	switch p.Passing {
	case ir.PassRef:
		sb.WriteString("ref ")
	case ir.PassOut:
		sb.WriteString("out ")
	case ir.PassIn, ir.PassInRef:
		sb.WriteString("in ")
	}
	if p.Rest {
		sb.WriteString("params ")
	}
	typeName := "object"
	if p.Type != nil {
		typeName = EmitType(p.Type, ctx)
	}
	if p.Optional && p.Default == nil {
		typeName += "?"
	}
	sb.WriteString(typeName)
	sb.WriteString(" ")
	sb.WriteString(p.Name)
	if p.Default != nil {
		sb.WriteString(" = ")
		sb.WriteString(EmitExpression(p.Default, ctx))
	} else if p.Optional {
		sb.WriteString(" = default")
	}
	return sb.String()
}

// EmitClassDecl emits a source class or struct declaration (// §4.6's struct/interface emission rules).
func EmitClassDecl(cls *ir.ClassDecl, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	inner := ctx.WithTypeParams(cls.TypeParams, "")
	var sb strings.Builder
	sb.WriteString(emitAttributes(cls.TypeAttributes, ctx, ind))
	sb.WriteString(ind)
	sb.WriteString("public ")
	kind := "class"
	if cls.IsStruct {
		kind = "struct"
	}
	sb.WriteString(kind)
	sb.WriteString(" ")
	className := validate.ApplyCase(ctx.Naming.Classes, cls.Name)
	sb.WriteString(className)
	sb.WriteString(typeParamList(cls.TypeParams))

	var heritage []string
	if cls.BaseClass != nil {
		heritage = append(heritage, EmitType(cls.BaseClass, inner))
	}
	for _, iface := range cls.Implements {
		heritage = append(heritage, EmitType(iface, inner))
	}
	if len(heritage) > 0 {
		sb.WriteString(" : ")
		sb.WriteString(strings.Join(heritage, ", "))
	}
	sb.WriteString(" {\n")

	memberCtx := inner.WithIndent(1)
	sb.WriteString(emitClassMembers(cls.Members, className, memberCtx))
	sb.WriteString(ind)
	sb.WriteString("}\n")
	return sb.String()
}

// EmitInterfaceDecl implements : any member-bearing method
// signature promotes the whole declaration to a C# interface; otherwise
// it emits as a class with auto-properties so object literals can
// instantiate it directly.
func EmitInterfaceDecl(iface *ir.InterfaceDecl, ctx *EmitterContext) string {
	if iface.IsStruct {
		return emitInterfaceAsStruct(iface, ctx)
	}
	if hasMethodMember(iface.Members) {
		return emitInterfaceAsInterface(iface, ctx)
	}
	return emitInterfaceAsClass(iface, ctx)
}

func hasMethodMember(members []ir.ClassMember) bool {
	for _, m := range members {
		if m.Kind == ir.MemberMethod {
			return true
		}
	}
	return false
}

func emitInterfaceAsInterface(iface *ir.InterfaceDecl, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	inner := ctx.WithTypeParams(iface.TypeParams, "")
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("public interface ")
	sb.WriteString(validate.ApplyCase(ctx.Naming.Classes, iface.Name))
	sb.WriteString(typeParamList(iface.TypeParams))
	if len(iface.Extends) > 0 {
		parts := make([]string, len(iface.Extends))
		for i, e := range iface.Extends {
			parts[i] = EmitType(e, inner)
		}
		sb.WriteString(" : ")
		sb.WriteString(strings.Join(parts, ", "))
	}
	sb.WriteString(" {\n")
	memberCtx := inner.WithIndent(1)
	for _, m := range iface.Members {
		sb.WriteString(memberCtx.indentStr())
		switch m.Kind {
		case ir.MemberMethod:
			sb.WriteString(EmitType(m.ReturnType, memberCtx))
			sb.WriteString(" ")
			sb.WriteString(validate.ApplyCase(ctx.Naming.Methods, m.Name))
			sb.WriteString("(")
			sb.WriteString(emitParamList(m.Params, memberCtx))
			sb.WriteString(");\n")
		default:
			sb.WriteString(EmitType(m.Type, memberCtx))
			sb.WriteString(" ")
			sb.WriteString(validate.ApplyCase(ctx.Naming.Properties, m.Name))
			sb.WriteString(" { get; set; }\n")
		}
	}
	sb.WriteString(ind)
	sb.WriteString("}\n")
	return sb.String()
}

func emitInterfaceAsClass(iface *ir.InterfaceDecl, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	inner := ctx.WithTypeParams(iface.TypeParams, "")
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("public class ")
	sb.WriteString(validate.ApplyCase(ctx.Naming.Classes, iface.Name))
	sb.WriteString(typeParamList(iface.TypeParams))
	if len(iface.Extends) > 0 {
		parts := make([]string, len(iface.Extends))
		for i, e := range iface.Extends {
			parts[i] = EmitType(e, inner)
		}
		sb.WriteString(" : ")
		sb.WriteString(strings.Join(parts, ", "))
	}
	sb.WriteString(" {\n")
	memberCtx := inner.WithIndent(1)
	for _, m := range iface.Members {
		sb.WriteString(emitAutoProperty(m, memberCtx))
	}
	sb.WriteString(ind)
	sb.WriteString("}\n")
	return sb.String()
}

func emitInterfaceAsStruct(iface *ir.InterfaceDecl, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	inner := ctx.WithTypeParams(iface.TypeParams, "struct")
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("public struct ")
	sb.WriteString(validate.ApplyCase(ctx.Naming.Classes, iface.Name))
	sb.WriteString(typeParamList(iface.TypeParams))
	sb.WriteString(" {\n")
	memberCtx := inner.WithIndent(1)
	for _, m := range iface.Members {
		sb.WriteString(emitAutoProperty(m, memberCtx))
	}
	sb.WriteString(ind)
	sb.WriteString("}\n")
	return sb.String()
}

// emitAutoProperty implements optional->nullable, readonly->init-only,
// required-for-non-optional.
func emitAutoProperty(m ir.ClassMember, ctx *EmitterContext) string {
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
		sb.WriteString(" { get; init; }")
	} else {
		sb.WriteString(" { get; set; }")
	}
	if m.Initializer != nil {
		sb.WriteString(" = ")
		sb.WriteString(EmitExpression(m.Initializer, ctx))
		sb.WriteString(";")
	}
	sb.WriteString("\n")
	return sb.String()
}

// emitClassMembers emits every member, merging a getter/setter pair that
// share a name into one C# property block (a class with independent
// getter/setter ClassMembers has no single-property emission otherwise,
// and two separate same-named member declarations would not compile).
func emitClassMembers(members []ir.ClassMember, className string, ctx *EmitterContext) string {
	var sb strings.Builder
	emitted := map[string]bool{}
	for i := range members {
		m := &members[i]
		if m.Kind == ir.MemberGetter || m.Kind == ir.MemberSetter {
			if emitted[m.Name] {
				continue
			}
			emitted[m.Name] = true
			sb.WriteString(emitPropertyAccessors(members, m.Name, ctx))
			continue
		}
		sb.WriteString(emitClassMember(m, className, ctx))
	}
	return sb.String()
}

// emitPropertyAccessors finds the getter and/or setter in members named
// name and emits them as one C# property. A setter's single parameter
// is bound to the original name via a local `var` aliasing the
// contextual `value` keyword, so the setter body can keep referencing
// its declared parameter name unchanged.
func emitPropertyAccessors(members []ir.ClassMember, name string, ctx *EmitterContext) string {
	var getter, setter *ir.ClassMember
	for i := range members {
		switch {
		case members[i].Name != name:
			continue
		case members[i].Kind == ir.MemberGetter:
			getter = &members[i]
		case members[i].Kind == ir.MemberSetter:
			setter = &members[i]
		}
	}

	ind := ctx.indentStr()
	var sb strings.Builder
	sb.WriteString(ind)

	vis := ir.VisPublic
	isStatic := false
	returnType := "global::System.Object"
	switch {
	case getter != nil:
		vis = getter.Visibility
		isStatic = getter.Static
		returnType = EmitType(getter.ReturnType, ctx)
	case setter != nil:
		vis = setter.Visibility
		isStatic = setter.Static
		if len(setter.Params) > 0 {
			returnType = EmitType(setter.Params[0].Type, ctx)
		}
	}

	sb.WriteString(visibilityKeyword(vis))
	sb.WriteString(" ")
	if isStatic {
		sb.WriteString("static ")
	}
	sb.WriteString(returnType)
	sb.WriteString(" ")
	sb.WriteString(validate.ApplyCase(ctx.Naming.Properties, name))
	sb.WriteString(" {\n")
	inner := ctx.WithIndent(1)
	if getter != nil {
		sb.WriteString(inner.indentStr())
		sb.WriteString("get ")
		sb.WriteString(emitBlock(getter.Body, inner))
		sb.WriteString("\n")
	}
	if setter != nil {
		sb.WriteString(inner.indentStr())
		sb.WriteString("set {\n")
		setterInner := inner.WithIndent(1)
		if len(setter.Params) == 1 {
			sb.WriteString(setterInner.indentStr())
			sb.WriteString("var " + setter.Params[0].Name + " = value;\n")
		}
		if setter.Body != nil {
			for _, s := range setter.Body.Statements {
				sb.WriteString(EmitStatement(s, setterInner))
			}
		}
		sb.WriteString(inner.indentStr())
		sb.WriteString("}\n")
	}
	sb.WriteString(ind)
	sb.WriteString("}\n")
	return sb.String()
}

func emitClassMember(m *ir.ClassMember, className string, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	var sb strings.Builder
	staticKw := ""
	if m.Static {
		staticKw = "static "
	}
	switch m.Kind {
	case ir.MemberField:
		sb.WriteString(ind)
		sb.WriteString(visibilityKeyword(m.Visibility))
		sb.WriteString(" ")
		sb.WriteString(staticKw)
		typeName := EmitType(m.Type, ctx)
		if m.Optional {
			typeName += "?"
		}
		sb.WriteString(typeName)
		sb.WriteString(" ")
		sb.WriteString(validate.ApplyCase(ctx.Naming.Fields, m.Name))
		if m.Readonly {
			sb.WriteString(" { get; init; }")
		}
		if m.Initializer != nil {
			sb.WriteString(" = ")
			sb.WriteString(EmitExpression(m.Initializer, ctx))
		}
		sb.WriteString(";\n")
	case ir.MemberConstructor:
		sb.WriteString(ind)
		sb.WriteString("public ")
		sb.WriteString(staticKw)
		sb.WriteString(className)
		sb.WriteString("(")
		sb.WriteString(emitParamList(m.Params, ctx))
		sb.WriteString(") ")
		sb.WriteString(emitBlock(m.Body, ctx))
		sb.WriteString("\n")
	case ir.MemberMethod:
		sb.WriteString(ind)
		sb.WriteString(visibilityKeyword(m.Visibility))
		sb.WriteString(" ")
		sb.WriteString(staticKw)
		if m.Abstract {
			sb.WriteString("abstract ")
		}
		returnType := "void"
		if m.ReturnType != nil {
			returnType = EmitType(m.ReturnType, ctx)
		}
		sb.WriteString(returnType)
		sb.WriteString(" ")
		sb.WriteString(validate.ApplyCase(ctx.Naming.Methods, m.Name))
		sb.WriteString("(")
		sb.WriteString(emitParamList(m.Params, ctx))
		sb.WriteString(")")
		if m.Abstract || m.Body == nil {
			sb.WriteString(";\n")
		} else {
			sb.WriteString(" ")
			sb.WriteString(emitBlock(m.Body, ctx))
			sb.WriteString("\n")
		}
	case ir.MemberGetter, ir.MemberSetter:
		// emitted as a merged property by emitClassMembers/emitPropertyAccessors
	}
	return sb.String()
}

func EmitEnumDecl(en *ir.EnumDecl, ctx *EmitterContext) string {
	ind := ctx.indentStr()
	var sb strings.Builder
	sb.WriteString(ind)
	sb.WriteString("public enum ")
	sb.WriteString(validate.ApplyCase(ctx.Naming.Classes, en.Name))
	sb.WriteString(" {\n")
	inner := ctx.WithIndent(1)
	parts := make([]string, len(en.Members))
	for i, m := range en.Members {
		name := validate.ApplyCase(ctx.Naming.EnumMembers, m.Name)
		if m.Value == nil {
			parts[i] = inner.indentStr() + name
			continue
		}
		parts[i] = inner.indentStr() + name + " = " + EmitExpression(m.Value, inner)
	}
	sb.WriteString(strings.Join(parts, ",\n"))
	sb.WriteString("\n")
	sb.WriteString(ind)
	sb.WriteString("}\n")
	return sb.String()
}
