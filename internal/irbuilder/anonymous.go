package irbuilder

import (
	"strconv"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/types"
)

// anonRegistry is the module-scoped registry of synthetic interfaces
// produced for anonymous object literals. Literals with
// the same shape signature reuse the same synthetic type, so the
// registry is keyed by that signature rather than by call site.
type anonRegistry struct {
	byShape     map[string]*ir.SyntheticInterface
	synthesized []*ir.SyntheticInterface
}

func newAnonRegistry() *anonRegistry {
	return &anonRegistry{byShape: map[string]*ir.SyntheticInterface{}}
}

// shapeEligible rejects object literals that cannot be given a stable
// structural shape: any computed key (string-literal computed keys
// included), private (`#`-prefixed) keys, spread members, or
// function-valued members (eligibility list; getters/setters never appear on an
// ast.ObjectLiteral at all, since the front end only allows them on
// class/interface bodies).
func shapeEligible(lit *ast.ObjectLiteral) bool {
	for _, p := range lit.Properties {
		if p.Spread {
			return false
		}
		if p.Computed {
			return false
		}
		if len(p.Key) > 0 && p.Key[0] == '#' {
			return false
		}
		if _, isFn := p.Value.(*ast.FunctionLiteral); isFn {
			// any member whose value is a function literal is
			// excluded from shape-signature eligibility.
			return false
		}
	}
	return true
}

// synthesize registers (or reuses) a synthetic interface for lit and
// returns a ReferenceType naming it. inferMemberType supplies each
// property's IrType from whatever best-effort inference the caller can
// do without a full checker ("TypeScript-inferred type" is
// approximated here; see DESIGN.md).
func (b *Builder) synthesize(lit *ast.ObjectLiteral, inferMemberType func(ast.Expression) types.IrType) types.IrType {
	if !shapeEligible(lit) {
		return &types.PrimitiveType{Name: "any"}
	}

	members := make([]types.ObjectMember, 0, len(lit.Properties))
	for _, p := range lit.Properties {
		members = append(members, types.ObjectMember{Name: p.Key, Type: inferMemberType(p.Value)})
	}
	shape := (&types.ObjectType{Members: members}).StableKey()

	if existing, ok := b.anon.byShape[shape]; ok {
		return &types.ReferenceType{Name: existing.Name}
	}

	pos := lit.Pos()
	name := fmtAnonName(b.fileStem, pos.Line, pos.Column)
	synth := &ir.SyntheticInterface{Name: name, Members: members, Exported: false}
	b.anon.byShape[shape] = synth
	b.anon.synthesized = append(b.anon.synthesized, synth)
	return &types.ReferenceType{Name: name}
}

// promoteUnionObjectArms implements "union-of-object-literals type
// aliases": each object-literal arm of a `type X = {a} |
// {b} | S` alias becomes a synthetic interface X__0, X__1, ... reusing
// the alias's own type parameters and export status; the alias is
// rewritten to reference those interfaces instead of the inline shapes.
func (b *Builder) promoteUnionObjectArms(decl *ast.TypeAliasDeclaration, union *ast.UnionTypeSyntax) types.IrType {
	typeParams := make([]string, len(decl.TypeParams))
	for i, tp := range decl.TypeParams {
		typeParams[i] = tp.Name
	}

	members := make([]types.IrType, len(union.Types))
	arm := 0
	for i, t := range union.Types {
		obj, ok := t.(*ast.ObjectTypeSyntax)
		if !ok {
			members[i] = b.resolveType(t)
			continue
		}
		name := decl.Name + "__" + strconv.Itoa(arm)
		arm++
		ifaceMembers := make([]types.ObjectMember, len(obj.Members))
		for j, m := range obj.Members {
			ifaceMembers[j] = types.ObjectMember{Name: m.Name, Type: b.resolveType(m.Type), Optional: m.Optional, Readonly: m.Readonly}
		}
		b.extraDecls = append(b.extraDecls, &ir.InterfaceDecl{
			Name:       name,
			TypeParams: typeParams,
			Members:    ifaceMembers,
			Exported:   decl.Exported,
			Span:       b.span(obj),
		})
		tpRefs := make([]types.IrType, len(typeParams))
		for k, p := range typeParams {
			tpRefs[k] = &types.TypeParameterType{Name: p}
		}
		members[i] = &types.ReferenceType{Name: name, TypeArguments: tpRefs}
	}
	return types.NewUnionType(members)
}
