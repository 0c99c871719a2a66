package ast

import "strings"

func (TypeReferenceSyntax) typeSyntaxNode()  {}
func (ArrayTypeSyntax) typeSyntaxNode()      {}
func (TupleTypeSyntax) typeSyntaxNode()      {}
func (FunctionTypeSyntax) typeSyntaxNode()   {}
func (ObjectTypeSyntax) typeSyntaxNode()     {}
func (UnionTypeSyntax) typeSyntaxNode()      {}
func (IntersectionTypeSyntax) typeSyntaxNode() {}
func (LiteralTypeSyntax) typeSyntaxNode()    {}
func (ParenTypeSyntax) typeSyntaxNode()      {}

// TypeReferenceSyntax is a named type reference, possibly with type
// arguments: `Foo<Bar, Baz>`. Primitive/global names (string, number,
// int, Array<T>, Promise<T>, ptr<T>, ...) are ordinary TypeReferenceSyntax
// values — the mapping to IrType happens in internal/types.
type TypeReferenceSyntax struct {
	BaseNode
	Name     string
	TypeArgs []TypeSyntax
}

func (t *TypeReferenceSyntax) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		parts[i] = a.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

type ArrayTypeSyntax struct {
	BaseNode
	Element TypeSyntax
}

func (t *ArrayTypeSyntax) String() string { return t.Element.String() + "[]" }

type TupleTypeSyntax struct {
	BaseNode
	Elements []TypeSyntax
}

func (t *TupleTypeSyntax) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type FunctionTypeSyntax struct {
	BaseNode
	TypeParams []TypeParamSyntax
	Params     []Param
	ReturnType TypeSyntax
}

func (t *FunctionTypeSyntax) String() string { return "(...) => " + t.ReturnType.String() }

// ObjectMemberSyntax is one member of an inline object-type literal, or
// of an interface/class body before IR conversion classifies it.
type ObjectMemberSyntax struct {
	Name       string
	Type       TypeSyntax
	Optional   bool
	Readonly   bool
	IsIndexSig bool // `[key: string]: V` — the sole-member shape is lowered to a dictionary type
	IndexKeyType TypeSyntax
}

type ObjectTypeSyntax struct {
	BaseNode
	Members []ObjectMemberSyntax
}

func (t *ObjectTypeSyntax) String() string { return "{ ... }" }

type UnionTypeSyntax struct {
	BaseNode
	Types []TypeSyntax
}

func (t *UnionTypeSyntax) String() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

type IntersectionTypeSyntax struct {
	BaseNode
	Types []TypeSyntax
}

func (t *IntersectionTypeSyntax) String() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = m.String()
	}
	return strings.Join(parts, " & ")
}

// LiteralTypeSyntax is a literal type like `"ok"`, `42`, `true`.
type LiteralTypeSyntax struct {
	BaseNode
	Literal Expression
}

func (t *LiteralTypeSyntax) String() string { return t.Literal.String() }

// ParenTypeSyntax is a parenthesized type, kept distinct only to
// preserve source fidelity for error messages; it carries no semantic
// weight once resolved.
type ParenTypeSyntax struct {
	BaseNode
	Inner TypeSyntax
}

func (t *ParenTypeSyntax) String() string { return "(" + t.Inner.String() + ")" }
