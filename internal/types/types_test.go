package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// irTypeByStableKey lets cmp.Diff compare IrType values structurally
// without needing to know every concrete variant: two IrTypes are equal
// for diffing purposes exactly when their StableKey agrees.
var irTypeByStableKey = cmp.Comparer(func(a, b IrType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.StableKey() == b.StableKey()
})

func TestPromote_WidensSmallIntegralToInt32(t *testing.T) {
	if got := Promote(SByte, Byte); got != Int32 {
		t.Fatalf("Promote(SByte, Byte) = %s, want Int32", got)
	}
}

func TestPromote_FloatingWinsOverIntegral(t *testing.T) {
	if got := Promote(Int64, Single); got != Single {
		t.Fatalf("Promote(Int64, Single) = %s, want Single", got)
	}
}

func TestFitsInt32(t *testing.T) {
	if !FitsInt32(2147483647) {
		t.Fatalf("expected Int32.Max to fit")
	}
	if FitsInt32(2147483648) {
		t.Fatalf("expected Int32.Max+1 to not fit")
	}
}

func TestUnionType_NormalizationIsIdempotent(t *testing.T) {
	a := &PrimitiveType{Name: "string"}
	b := &PrimitiveType{Name: "boolean"}
	u1 := NewUnionType([]IrType{b, a, a})
	u2 := NewUnionType(u1.Types)
	if u1.StableKey() != u2.StableKey() {
		t.Fatalf("expected idempotent normalization, got %q vs %q", u1.StableKey(), u2.StableKey())
	}
	if len(u1.Types) != 2 {
		t.Fatalf("expected deduped union of 2 members, got %d", len(u1.Types))
	}
}

func TestUnionType_FlattensNestedUnions(t *testing.T) {
	a := &PrimitiveType{Name: "string"}
	b := &PrimitiveType{Name: "boolean"}
	c := &PrimitiveType{Name: "number"}
	inner := NewUnionType([]IrType{a, b})
	outer := NewUnionType([]IrType{inner, c})
	if len(outer.Types) != 3 {
		t.Fatalf("expected flattened union of 3, got %d: %v", len(outer.Types), outer.Types)
	}
}

func TestStableKey_StructurallyEqualTypesMatch(t *testing.T) {
	t1 := &ArrayType{Element: &PrimitiveType{Name: "number"}}
	t2 := &ArrayType{Element: &PrimitiveType{Name: "number"}}
	if t1.StableKey() != t2.StableKey() {
		t.Fatalf("expected equal stable keys, got %q vs %q", t1.StableKey(), t2.StableKey())
	}
}

func buildDiamondCatalog() *UnifiedTypeCatalog {
	c := NewUnifiedTypeCatalog()
	c.Register(&NominalType{
		Id: TypeId{"Base"}, Name: "Base", TypeParams: []string{"T"},
		Members: map[string]IrType{"value": &TypeParameterType{Name: "T"}},
	})
	c.Register(&NominalType{
		Id: TypeId{"Mid"}, Name: "Mid", TypeParams: []string{"U"},
		Members: map[string]IrType{"extra": &PrimitiveType{Name: "string"}},
		Heritage: []HeritageEdge{
			{TargetStableId: "Base", TypeArguments: []IrType{&TypeParameterType{Name: "U"}}, Kind: HeritageExtends},
		},
	})
	c.Register(&NominalType{
		Id: TypeId{"Leaf"}, Name: "Leaf",
		Heritage: []HeritageEdge{
			{TargetStableId: "Mid", TypeArguments: []IrType{&PrimitiveType{Name: "number"}}, Kind: HeritageExtends},
		},
	})
	return c
}

func TestNominalEnv_InheritanceChainOrdersExtendsBeforeImplements(t *testing.T) {
	c := NewUnifiedTypeCatalog()
	c.Register(&NominalType{Id: TypeId{"IFoo"}, Name: "IFoo"})
	c.Register(&NominalType{Id: TypeId{"IBar"}, Name: "IBar"})
	c.Register(&NominalType{Id: TypeId{"Base"}, Name: "Base"})
	c.Register(&NominalType{
		Id: TypeId{"Child"}, Name: "Child",
		Heritage: []HeritageEdge{
			{TargetStableId: "IBar", Kind: HeritageImplements},
			{TargetStableId: "Base", Kind: HeritageExtends},
			{TargetStableId: "IFoo", Kind: HeritageImplements},
		},
	})
	env := NewNominalEnv(c)
	chain := env.GetInheritanceChain("Child")
	want := []string{"Child", "Base", "IBar", "IFoo"}
	if len(chain) != len(want) {
		t.Fatalf("chain = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("chain = %v, want %v", chain, want)
		}
	}
}

func TestNominalEnv_GetInstantiationComposesSubstitutions(t *testing.T) {
	env := NewNominalEnv(buildDiamondCatalog())
	subst := env.GetInstantiation("Leaf", nil, "Base")
	if subst == nil {
		t.Fatalf("expected Base to be reachable from Leaf")
	}
	got, ok := subst["T"]
	if !ok {
		t.Fatalf("expected substitution for T, got %v", subst)
	}
	if got.StableKey() != (&PrimitiveType{Name: "number"}).StableKey() {
		t.Fatalf("expected T bound to number, got %s", got.StableKey())
	}
}

func TestNominalEnv_FindMemberDeclaringTypeWalksChain(t *testing.T) {
	env := NewNominalEnv(buildDiamondCatalog())
	declaring, subst, found := env.FindMemberDeclaringType("Leaf", nil, "value")
	if !found || declaring != "Base" {
		t.Fatalf("expected to find 'value' declared on Base, got %q found=%v", declaring, found)
	}
	if subst["T"].StableKey() != (&PrimitiveType{Name: "number"}).StableKey() {
		t.Fatalf("expected composed substitution T=number, got %v", subst)
	}
}

func TestSubstitute_RebuildsNestedContainers(t *testing.T) {
	tp := &TypeParameterType{Name: "T"}
	arr := &ArrayType{Element: tp}
	result := Substitute(arr, map[string]IrType{"T": &PrimitiveType{Name: "string"}})
	rebuilt, ok := result.(*ArrayType)
	if !ok {
		t.Fatalf("expected *ArrayType, got %T", result)
	}
	if rebuilt.Element.StableKey() != (&PrimitiveType{Name: "string"}).StableKey() {
		t.Fatalf("expected substituted element to be string, got %s", rebuilt.Element.StableKey())
	}
}

func TestSubstitute_ObjectTypePreservesMemberShape(t *testing.T) {
	obj := &ObjectType{Members: []ObjectMember{
		{Name: "value", Type: &TypeParameterType{Name: "T"}, Optional: false, Readonly: true},
		{Name: "label", Type: &PrimitiveType{Name: "string"}, Optional: true, Readonly: false},
	}}
	result := Substitute(obj, map[string]IrType{"T": &PrimitiveType{Name: "number"}})
	rebuilt, ok := result.(*ObjectType)
	if !ok {
		t.Fatalf("expected *ObjectType, got %T", result)
	}

	want := &ObjectType{Members: []ObjectMember{
		{Name: "value", Type: &PrimitiveType{Name: "number"}, Optional: false, Readonly: true},
		{Name: "label", Type: &PrimitiveType{Name: "string"}, Optional: true, Readonly: false},
	}}

	if diff := cmp.Diff(want.Members, rebuilt.Members, irTypeByStableKey); diff != "" {
		t.Fatalf("substituted members mismatch (-want +got):\n%s", diff)
	}
}
