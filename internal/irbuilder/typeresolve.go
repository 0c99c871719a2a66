package irbuilder

import (
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/types"
)

// resolveType converts a parsed TypeSyntax into an IrType.
// Reference types that name a local declaration or an import binding are
// left with only Name set; internal/compiler resolves TypeId/ResolvedClrType
// once the cross-module catalogue exists.
func (b *Builder) resolveType(ts ast.TypeSyntax) types.IrType {
	if ts == nil {
		return &types.PrimitiveType{Name: "any"}
	}
	switch t := ts.(type) {
	case *ast.ParenTypeSyntax:
		return b.resolveType(t.Inner)

	case *ast.TypeReferenceSyntax:
		return b.resolveTypeReference(t)

	case *ast.ArrayTypeSyntax:
		return &types.ArrayType{Element: b.resolveType(t.Element), Origin: types.ArrayExplicit}

	case *ast.TupleTypeSyntax:
		elems := make([]types.IrType, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = b.resolveType(e)
		}
		return &types.TupleType{Elements: elems}

	case *ast.FunctionTypeSyntax:
		params := make([]types.IrType, len(t.Params))
		for i, p := range t.Params {
			params[i] = b.resolveType(p.Type)
		}
		tp := make([]string, len(t.TypeParams))
		for i, p := range t.TypeParams {
			tp[i] = p.Name
		}
		return &types.FunctionType{TypeParams: tp, Params: params, ReturnType: b.resolveType(t.ReturnType)}

	case *ast.ObjectTypeSyntax:
		return b.resolveObjectTypeSyntax(t)

	case *ast.UnionTypeSyntax:
		members := make([]types.IrType, len(t.Types))
		for i, m := range t.Types {
			members[i] = b.resolveType(m)
		}
		return types.NewUnionType(members)

	case *ast.IntersectionTypeSyntax:
		members := make([]types.IrType, len(t.Types))
		for i, m := range t.Types {
			members[i] = b.resolveType(m)
		}
		return &types.IntersectionType{Types: members}

	case *ast.LiteralTypeSyntax:
		return &types.LiteralType{Value: literalValue(t.Literal)}

	default:
		return &types.PrimitiveType{Name: "any"}
	}
}

// resolveObjectTypeSyntax lowers an index-signature-only object type to
// a DictionaryType; any other shape becomes an ObjectType.
func (b *Builder) resolveObjectTypeSyntax(t *ast.ObjectTypeSyntax) types.IrType {
	if len(t.Members) == 1 && t.Members[0].IsIndexSig {
		return b.dictionaryTypeFor(t.Members[0])
	}
	members := make([]types.ObjectMember, len(t.Members))
	for i, m := range t.Members {
		members[i] = types.ObjectMember{Name: m.Name, Type: b.resolveType(m.Type), Optional: m.Optional, Readonly: m.Readonly}
	}
	return &types.ObjectType{Members: members}
}

// dictionaryTypeFor converts a single index signature member to a
// DictionaryType, reporting an unsupported key type here
// (CodeInvalidDictionaryKey) — the builder still produces a best-effort
// string-keyed DictionaryType so later passes can walk the IR.
func (b *Builder) dictionaryTypeFor(m ast.ObjectMemberSyntax) types.IrType {
	valueType := b.resolveType(m.Type)
	keyName := ""
	if ref, ok := m.IndexKeyType.(*ast.TypeReferenceSyntax); ok {
		keyName = ref.Name
	}
	switch keyName {
	case "string":
		return &types.DictionaryType{KeyIsString: true, Value: valueType}
	case "number":
		return &types.DictionaryType{KeyIsString: false, KeyKind: types.Double, Value: valueType}
	default:
		b.diags.Error(diag.CodeInvalidDictionaryKey, b.loc(m.Type), "index signature key must be string or number, got %q", keyName)
		return &types.DictionaryType{KeyIsString: true, Value: valueType}
	}
}

func (b *Builder) resolveTypeReference(t *ast.TypeReferenceSyntax) types.IrType {
	name := t.Name

	if _, ok := types.GlobalClrName[name]; ok {
		if name == "number" {
			return &types.PrimitiveType{Name: name, NumericIntent: types.Double}
		}
		return &types.PrimitiveType{Name: name}
	}
	if kind, ok := types.NumericAliases[name]; ok {
		return &types.PrimitiveType{Name: name, NumericIntent: kind}
	}

	switch name {
	case "Array":
		elem := types.IrType(&types.PrimitiveType{Name: "any"})
		if len(t.TypeArgs) == 1 {
			elem = b.resolveType(t.TypeArgs[0])
		}
		return &types.ArrayType{Element: elem, Origin: types.ArrayExplicit}

	case "Promise", "PromiseLike":
		elemClr := "System.Void"
		isVoid := true
		if len(t.TypeArgs) == 1 {
			elemType := b.resolveType(t.TypeArgs[0])
			if p, ok := elemType.(*types.PrimitiveType); !ok || p.Name != "void" {
				isVoid = false
				elemClr = clrNameOf(elemType)
			}
		}
		return &types.ReferenceType{Name: name, ResolvedClrType: types.PromiseClrName(elemClr, isVoid), TypeArguments: resolveAll(b, t.TypeArgs)}

	case "Span", "ptr":
		args := resolveAll(b, t.TypeArgs)
		return &types.ReferenceType{Name: name, TypeArguments: args}

	case "ref", "out", "in", "inref":
		// Encountered outside a parameter position (e.g. a field type); the
		// wrapper carries no meaning there, so unwrap transparently.
		if len(t.TypeArgs) == 1 {
			return b.resolveType(t.TypeArgs[0])
		}
		return &types.PrimitiveType{Name: "any"}

	default:
		args := resolveAll(b, t.TypeArgs)
		return &types.ReferenceType{Name: name, TypeArguments: args}
	}
}

func resolveAll(b *Builder, ts []ast.TypeSyntax) []types.IrType {
	if len(ts) == 0 {
		return nil
	}
	out := make([]types.IrType, len(ts))
	for i, t := range ts {
		out[i] = b.resolveType(t)
	}
	return out
}

func clrNameOf(t types.IrType) string {
	switch v := t.(type) {
	case *types.PrimitiveType:
		if v.NumericIntent != types.NumericUnknown {
			return types.NumericClrName[v.NumericIntent]
		}
		if clr, ok := types.GlobalClrName[v.Name]; ok {
			return clr
		}
		return "System.Object"
	case *types.ReferenceType:
		if v.ResolvedClrType != "" {
			return v.ResolvedClrType
		}
		return v.Name
	default:
		return "System.Object"
	}
}

func literalValue(e ast.Expression) any {
	switch v := e.(type) {
	case *ast.StringLiteral:
		return v.Value
	case *ast.IntegerLiteral:
		return v.Value
	case *ast.FloatLiteral:
		return v.Value
	case *ast.BoolLiteral:
		return v.Value
	default:
		return nil
	}
}
