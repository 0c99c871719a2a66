package backend

import (
	"strconv"
	"strings"

	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/types"
	"github.com/tsoniclang/tsonic/internal/validate"
)

// EmitType renders an IrType as a C# type reference (// type emission rules). An unresolved reference, a raw ObjectType that
// should have been synthesized away by SynthesisFinalizationPass, or any
// other invariant validation was supposed to guarantee is an ICE.
func EmitType(t types.IrType, ctx *EmitterContext) string {
	switch tt := t.(type) {
	case *types.PrimitiveType:
		return emitPrimitive(tt)
	case *types.LiteralType:
		return emitLiteralUnderlyingType(tt)
	case *types.ArrayType:
		return emitArrayType(tt, ctx)
	case *types.TupleType:
		return emitTupleType(tt, ctx)
	case *types.DictionaryType:
		return emitDictionaryType(tt, ctx)
	case *types.FunctionType:
		return emitFunctionType(tt, ctx)
	case *types.ReferenceType:
		return emitReferenceType(tt, ctx)
	case *types.TypeParameterType:
		return tt.Name
	case *types.UnionType:
		return emitUnionType(tt, ctx)
	case *types.IntersectionType:
		return emitIntersectionType(tt, ctx)
	case *types.ObjectType:
		diag.Panic("IrType.ObjectType", "anonymous object type reached the backend unsynthesized")
		return ""
	default:
		diag.Panic("IrType", "unhandled IrType %T reached the backend", t)
		return ""
	}
}

func emitPrimitive(t *types.PrimitiveType) string {
	if t.NumericIntent != types.NumericUnknown {
		return "global::" + types.NumericClrName[t.NumericIntent]
	}
	if clr, ok := types.GlobalClrName[t.Name]; ok {
		return "global::" + clr
	}
	if t.Name == "never" {
		return "global::System.Object"
	}
	diag.Panic("IrType.PrimitiveType", "unmapped primitive %q", t.Name)
	return ""
}

func emitLiteralUnderlyingType(t *types.LiteralType) string {
	switch t.Value.(type) {
	case string:
		return "global::System.String"
	case int64:
		return "global::System.Int32"
	case float64:
		return "global::System.Double"
	case bool:
		return "global::System.Boolean"
	default:
		diag.Panic("IrType.LiteralType", "unhandled literal value %v", t.Value)
		return ""
	}
}

// emitArrayType implements : native `T[]` only for a dotnet-
// runtime, explicit-origin array; everything else (js runtime, or an
// array type inferred from a literal) emits `List<T>`.
func emitArrayType(t *types.ArrayType, ctx *EmitterContext) string {
	elem := EmitType(t.Element, ctx)
	if ctx.Runtime == validate.RuntimeDotnet && t.Origin == types.ArrayExplicit {
		return elem + "[]"
	}
	return "global::System.Collections.Generic.List<" + elem + ">"
}

// emitTupleType nests ≥8-arity tuples as ValueTuple<T1..T7, ValueTuple<rest>>
//; the empty tuple is the non-generic ValueTuple.
func emitTupleType(t *types.TupleType, ctx *EmitterContext) string {
	if len(t.Elements) == 0 {
		return "global::System.ValueTuple"
	}
	return emitTupleArity(t.Elements, ctx)
}

func emitTupleArity(elems []types.IrType, ctx *EmitterContext) string {
	if len(elems) <= 7 {
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = EmitType(e, ctx)
		}
		return "global::System.ValueTuple<" + strings.Join(parts, ", ") + ">"
	}
	head := elems[:7]
	rest := elems[7:]
	parts := make([]string, 0, 8)
	for _, e := range head {
		parts = append(parts, EmitType(e, ctx))
	}
	parts = append(parts, emitTupleArity(rest, ctx))
	return "global::System.ValueTuple<" + strings.Join(parts, ", ") + ">"
}

// emitDictionaryType implements : only string and number
// keys are allowed, with number lowered to double; anything else is an
// ICE because IR construction already reported it (TSN4050).
func emitDictionaryType(t *types.DictionaryType, ctx *EmitterContext) string {
	key := "global::System.String"
	if !t.KeyIsString {
		if t.KeyKind != types.Double {
			diag.Panic("IrType.DictionaryType", "dictionary key kind %v is neither string nor number", t.KeyKind)
		}
		key = "global::System.Double"
	}
	return "global::System.Collections.Generic.Dictionary<" + key + ", " + EmitType(t.Value, ctx) + ">"
}

// emitFunctionType maps a function type to System.Func<...> (or
// System.Action<...> for a void return), the idiomatic C# delegate for
// a value-position function signature.
func emitFunctionType(t *types.FunctionType, ctx *EmitterContext) string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = EmitType(p, ctx)
	}
	isVoid := t.ReturnType == nil
	if prim, ok := t.ReturnType.(*types.PrimitiveType); ok && prim.Name == "void" {
		isVoid = true
	}
	if isVoid {
		if len(params) == 0 {
			return "global::System.Action"
		}
		return "global::System.Action<" + strings.Join(params, ", ") + ">"
	}
	args := append(params, EmitType(t.ReturnType, ctx))
	return "global::System.Func<" + strings.Join(args, ", ") + ">"
}

// emitUnionType has no direct C# equivalent; validation never rejects a
// surviving union (unions are a structural tool for anonymous-literal
// synthesis), so a union that reaches the backend already
// failed to synthesize into a single interface. Falling back to the
// shared ancestor (`object`) keeps emission total rather than an ICE,
// documented as an open design point (DESIGN.md).
func emitUnionType(t *types.UnionType, ctx *EmitterContext) string {
	if len(t.Types) == 1 {
		return EmitType(t.Types[0], ctx)
	}
	return "global::System.Object"
}

// emitIntersectionType has no direct C# equivalent either; C# has no
// structural intersection type, so this emits the first constituent and
// relies on validation/binder-level contracts to have already ensured
// the constituents are compatible (documented in DESIGN.md).
func emitIntersectionType(t *types.IntersectionType, ctx *EmitterContext) string {
	if len(t.Types) == 0 {
		diag.Panic("IrType.IntersectionType", "empty intersection type")
	}
	return EmitType(t.Types[0], ctx)
}

// emitReferenceType implements resolution order:
// resolvedClrType, then importBindings, then built-in specials (Array,
// Promise, PromiseLike, Span, ptr), then local types (Outer$Inner ->
// Outer.Inner, __Alias suffix), then the external binding registry.
func emitReferenceType(t *types.ReferenceType, ctx *EmitterContext) string {
	if ctx.InTypeParamScope(t.Name) {
		return t.Name
	}

	if t.ResolvedClrType != "" {
		return "global::" + stripArityAndNesting(t.ResolvedClrType) + typeArgsSuffix(t.TypeArguments, ctx)
	}

	if binding, ok := ctx.ImportBindings[t.Name]; ok {
		return "global::" + binding.FqContainer + "." + binding.ExportName + typeArgsSuffix(t.TypeArguments, ctx)
	}

	if t.Name == "ptr" && len(t.TypeArguments) == 1 {
		return EmitType(t.TypeArguments[0], ctx) + "*"
	}

	if clr := builtinGenericClrName(t.Name); clr != "" {
		return "global::" + clr + typeArgsSuffix(t.TypeArguments, ctx)
	}

	if local, ok := ctx.LocalTypes[t.Name]; ok {
		name := strings.ReplaceAll(local.Name, "$", ".")
		if local.IsAlias && local.AliasObjectType {
			name += "__Alias"
		}
		return name + typeArgsSuffix(t.TypeArguments, ctx)
	}

	if t.Name != "" {
		// An external binding the registry didn't pre-resolve; emit the
		// bare name qualified by nested-type syntax only, trusting the
		// compiler's binding-cache lookup ran before the backend did.
		return strings.ReplaceAll(t.Name, "$", ".") + typeArgsSuffix(t.TypeArguments, ctx)
	}

	diag.Panic("IrType.ReferenceType", "unresolved reference type reached the backend")
	return ""
}

// builtinGenericClrName maps built-in generic specials
// that require a type argument the caller supplies (Promise's void case
// is handled by PromiseClrName directly in irbuilder/validate, so by the
// time the backend sees a bare ReferenceType it always has exactly one
// type argument here).
func builtinGenericClrName(name string) string {
	switch name {
	case "Array":
		return "System.Collections.Generic.List"
	case "Promise", "PromiseLike":
		return "System.Threading.Tasks.Task"
	case "Span":
		return "System.Span"
	case "ptr":
		return ""
	default:
		return ""
	}
}

func typeArgsSuffix(args []types.IrType, ctx *EmitterContext) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = EmitType(a, ctx)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// stripArityAndNesting removes `N generic-arity markers and + nested-type
// separators from an external binding's CLR name (: "clrName
// may include `N arity markers and + nested separators; both are
// stripped in emission").
func stripArityAndNesting(clrName string) string {
	name := clrName
	for idx := strings.Index(name, "`"); idx >= 0; idx = strings.Index(name, "`") {
		end := idx + 1
		for end < len(name) && name[end] >= '0' && name[end] <= '9' {
			end++
		}
		name = name[:idx] + name[end:]
	}
	return strings.ReplaceAll(name, "+", ".")
}

// EmitLiteralValue renders a Go literal value (from ir.Literal.Value) as
// a C# literal expression.
func EmitLiteralValue(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64) + "d"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return "null"
	default:
		return "default"
	}
}
