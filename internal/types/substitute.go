package types

// Substitute applies subst (type-parameter name -> concrete IrType)
// recursively to t, rebuilding every container variant with substituted
// children and re-canonicalizing through the stable-key constructors so
// identity-by-value keeps holding afterward.
func Substitute(t IrType, subst map[string]IrType) IrType {
	switch v := t.(type) {
	case *TypeParameterType:
		if r, ok := subst[v.Name]; ok {
			return r
		}
		return v

	case *PrimitiveType, *LiteralType:
		return v

	case *ReferenceType:
		if len(v.TypeArguments) == 0 && len(v.Members) == 0 {
			return v
		}
		out := &ReferenceType{Name: v.Name, TypeId: v.TypeId, ResolvedClrType: v.ResolvedClrType}
		for _, a := range v.TypeArguments {
			out.TypeArguments = append(out.TypeArguments, Substitute(a, subst))
		}
		if v.Members != nil {
			out.Members = make(map[string]IrType, len(v.Members))
			for name, m := range v.Members {
				out.Members[name] = Substitute(m, subst)
			}
		}
		return out

	case *ArrayType:
		return &ArrayType{Element: Substitute(v.Element, subst), Origin: v.Origin}

	case *TupleType:
		elems := make([]IrType, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = Substitute(e, subst)
		}
		return &TupleType{Elements: elems}

	case *DictionaryType:
		return &DictionaryType{KeyKind: v.KeyKind, KeyIsString: v.KeyIsString, Value: Substitute(v.Value, subst)}

	case *FunctionType:
		params := make([]IrType, len(v.Params))
		for i, p := range v.Params {
			params[i] = Substitute(p, subst)
		}
		var ret IrType
		if v.ReturnType != nil {
			ret = Substitute(v.ReturnType, subst)
		}
		return &FunctionType{TypeParams: v.TypeParams, Params: params, ReturnType: ret}

	case *ObjectType:
		members := make([]ObjectMember, len(v.Members))
		for i, m := range v.Members {
			members[i] = ObjectMember{Name: m.Name, Type: Substitute(m.Type, subst), Optional: m.Optional, Readonly: m.Readonly}
		}
		return &ObjectType{Members: members}

	case *UnionType:
		members := make([]IrType, len(v.Types))
		for i, m := range v.Types {
			members[i] = Substitute(m, subst)
		}
		return NewUnionType(members)

	case *IntersectionType:
		members := make([]IrType, len(v.Types))
		for i, m := range v.Types {
			members[i] = Substitute(m, subst)
		}
		return &IntersectionType{Types: members}

	default:
		return t
	}
}
