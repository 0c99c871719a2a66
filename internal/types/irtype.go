package types

import (
	"sort"
	"strconv"
	"strings"
)

// IrType is any of the tagged type variants the IR carries a type as.
// StableKey yields the canonical string identity two
// structurally-equal types always share, regardless of how they were
// constructed — equality throughout the type system is key equality.
type IrType interface {
	StableKey() string
	irTypeNode()
}

func (*PrimitiveType) irTypeNode()     {}
func (*LiteralType) irTypeNode()       {}
func (*ReferenceType) irTypeNode()     {}
func (*ArrayType) irTypeNode()         {}
func (*TupleType) irTypeNode()         {}
func (*DictionaryType) irTypeNode()    {}
func (*FunctionType) irTypeNode()      {}
func (*ObjectType) irTypeNode()        {}
func (*UnionType) irTypeNode()         {}
func (*IntersectionType) irTypeNode()  {}
func (*TypeParameterType) irTypeNode() {}

// PrimitiveType is a built-in scalar: string, boolean, or a numeric
// primitive (carrying the NumericKind it was declared or inferred as).
type PrimitiveType struct {
	Name          string // "string", "boolean", "void", "any", "unknown", "never", "object", or a numeric alias
	NumericIntent NumericKind
}

func (t *PrimitiveType) StableKey() string {
	if t.NumericIntent != NumericUnknown {
		return "prim:" + t.Name + ":" + t.NumericIntent.String()
	}
	return "prim:" + t.Name
}

// LiteralType is a literal type like "ok", 42, true.
type LiteralType struct {
	Value any // string, int64, float64, or bool
}

func (t *LiteralType) StableKey() string {
	switch v := t.Value.(type) {
	case string:
		return "lit:s:" + v
	case int64:
		return "lit:i:" + strconv.FormatInt(v, 10)
	case float64:
		return "lit:f:" + strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return "lit:b:" + strconv.FormatBool(v)
	default:
		return "lit:?"
	}
}

// ReferenceType names a nominal type (class/interface/enum/type-alias or
// a type parameter's nominal use), optionally already resolved to a CLR
// type or member-bearing structural type.
type ReferenceType struct {
	Name            string
	TypeId          string // stable catalogue id, empty until resolved
	ResolvedClrType string // fully-qualified CLR name, empty unless resolved to a built-in/bound type
	TypeArguments   []IrType
	Members         map[string]IrType // structural members, populated for anonymous/synthetic references
}

func (t *ReferenceType) StableKey() string {
	var sb strings.Builder
	sb.WriteString("ref:")
	if t.TypeId != "" {
		sb.WriteString(t.TypeId)
	} else {
		sb.WriteString(t.Name)
	}
	if len(t.TypeArguments) > 0 {
		sb.WriteString("<")
		for i, a := range t.TypeArguments {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(a.StableKey())
		}
		sb.WriteString(">")
	}
	return sb.String()
}

// ArrayOrigin distinguishes an array type the user wrote explicitly
// (`T[]`) from one inferred from an array-literal expression, since
// dotnet-mode emission treats them differently.
type ArrayOrigin int

const (
	ArrayExplicit ArrayOrigin = iota
	ArrayInferred
)

type ArrayType struct {
	Element IrType
	Origin  ArrayOrigin
}

func (t *ArrayType) StableKey() string { return "arr:" + t.Element.StableKey() }

type TupleType struct {
	Elements []IrType
}

func (t *TupleType) StableKey() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.StableKey()
	}
	return "tuple:[" + strings.Join(parts, ",") + "]"
}

// DictionaryType is the lowering target of an index-signature-only
// interface; KeyKind constrains the allowed key types to
// string or number (→ double).
type DictionaryType struct {
	KeyKind NumericKind // NumericUnknown means the key is string, not numeric
	KeyIsString bool
	Value   IrType
}

func (t *DictionaryType) StableKey() string {
	key := "string"
	if !t.KeyIsString {
		key = t.KeyKind.String()
	}
	return "dict:" + key + ":" + t.Value.StableKey()
}

type FunctionType struct {
	TypeParams []string
	Params     []IrType
	ReturnType IrType
}

func (t *FunctionType) StableKey() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.StableKey()
	}
	ret := "void"
	if t.ReturnType != nil {
		ret = t.ReturnType.StableKey()
	}
	return "fn:(" + strings.Join(parts, ",") + ")->" + ret
}

// ObjectMember is one member of an ObjectType (anonymous object type).
type ObjectMember struct {
	Name     string
	Type     IrType
	Optional bool
	Readonly bool
}

// ObjectType is an anonymous (non-nominal) object type, the input to
// anonymous-literal synthesis.
type ObjectType struct {
	Members []ObjectMember
}

func (t *ObjectType) StableKey() string {
	sorted := make([]ObjectMember, len(t.Members))
	copy(sorted, t.Members)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	var sb strings.Builder
	sb.WriteString("obj:{")
	for i, m := range sorted {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(m.Name)
		if m.Optional {
			sb.WriteString("?")
		}
		if m.Readonly {
			sb.WriteString("#ro")
		}
		sb.WriteString(":")
		sb.WriteString(m.Type.StableKey())
	}
	sb.WriteString("}")
	return sb.String()
}

// UnionType is always normalized: flattened, deduped by StableKey,
// sorted — so two structurally-equal unions built in different orders
// produce the same key.
type UnionType struct {
	Types []IrType
}

// NewUnionType flattens nested unions, dedupes by stable key, and sorts
// — the single constructor every caller must use to keep the "always
// normalized" invariant.
func NewUnionType(members []IrType) *UnionType {
	var flat []IrType
	var flatten func(IrType)
	flatten = func(t IrType) {
		if u, ok := t.(*UnionType); ok {
			for _, m := range u.Types {
				flatten(m)
			}
			return
		}
		flat = append(flat, t)
	}
	for _, m := range members {
		flatten(m)
	}
	seen := map[string]bool{}
	var deduped []IrType
	for _, t := range flat {
		k := t.StableKey()
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, t)
	}
	sort.Slice(deduped, func(i, j int) bool { return deduped[i].StableKey() < deduped[j].StableKey() })
	return &UnionType{Types: deduped}
}

func (t *UnionType) StableKey() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = m.StableKey()
	}
	return "union:[" + strings.Join(parts, "|") + "]"
}

type IntersectionType struct {
	Types []IrType
}

func (t *IntersectionType) StableKey() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = m.StableKey()
	}
	sort.Strings(parts)
	return "inter:[" + strings.Join(parts, "&") + "]"
}

// TypeParameterType is a reference to a generic type parameter by name,
// resolved to a concrete IrType only by substitution.
type TypeParameterType struct {
	Name string
}

func (t *TypeParameterType) StableKey() string { return "typaram:" + t.Name }
