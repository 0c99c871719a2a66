package validate

import (
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// AttributeCollectionPass detects `A.on(Target).type(AttrType, …args)`
// marker call statements, attaches the resulting
// Attribute to Target's declaration in the same module, and always
// removes the marker statement from the body — whether or not Target
// resolved, since it has no other runtime meaning.
type AttributeCollectionPass struct{}

func (p *AttributeCollectionPass) Name() string { return "attribute-collection" }
func (p *AttributeCollectionPass) StopsPipelineOnError() bool { return false }

func (p *AttributeCollectionPass) Run(mod *ir.Module, ctx *Context, diags *diag.Collector) (*ir.Module, error) {
	decls := map[string]ir.Statement{}
	for _, s := range mod.Statements {
		if name, ok := declaredName(s); ok {
			decls[name] = s
		}
	}

	kept := make([]ir.Statement, 0, len(mod.Statements))
	for _, s := range mod.Statements {
		marker, attr, target, isMarker := asAttributeMarker(s)
		if !isMarker {
			kept = append(kept, s)
			continue
		}
		_ = marker
		targetStmt, ok := decls[target]
		if !ok {
			diags.Warning(diag.CodeUnmatchedAttribute, nil,
				"attribute target %q could not be resolved in this module", target)
			continue
		}
		attachAttribute(targetStmt, attr)
		// the marker call statement is never kept.
	}
	mod.Statements = kept
	return mod, nil
}

// asAttributeMarker recognizes an ExprStmt of the shape
// `A.on(Target).type(AttrType, args...)` and extracts the attribute it
// describes plus the target identifier name.
func asAttributeMarker(s ir.Statement) (ir.Statement, ir.Attribute, string, bool) {
	exprStmt, ok := s.(*ir.ExprStmt)
	if !ok {
		return nil, ir.Attribute{}, "", false
	}
	outer, ok := exprStmt.Expr.(*ir.Call)
	if !ok {
		return nil, ir.Attribute{}, "", false
	}
	typeMember, ok := outer.Callee.(*ir.MemberAccess)
	if !ok || typeMember.Computed {
		return nil, ir.Attribute{}, "", false
	}
	typeProp, ok := typeMember.Property.(*ir.Identifier)
	if !ok || typeProp.Name != "type" {
		return nil, ir.Attribute{}, "", false
	}

	onCall, ok := typeMember.Object.(*ir.Call)
	if !ok {
		return nil, ir.Attribute{}, "", false
	}
	onMember, ok := onCall.Callee.(*ir.MemberAccess)
	if !ok || onMember.Computed {
		return nil, ir.Attribute{}, "", false
	}
	onProp, ok := onMember.Property.(*ir.Identifier)
	if !ok || onProp.Name != "on" {
		return nil, ir.Attribute{}, "", false
	}
	root, ok := onMember.Object.(*ir.Identifier)
	if !ok || root.Name != "A" {
		return nil, ir.Attribute{}, "", false
	}
	if len(onCall.Args) != 1 {
		return nil, ir.Attribute{}, "", false
	}
	targetIdent, ok := onCall.Args[0].(*ir.Identifier)
	if !ok {
		return nil, ir.Attribute{}, "", false
	}

	if len(outer.Args) == 0 {
		return nil, ir.Attribute{}, "", false
	}
	attrTypeIdent, ok := outer.Args[0].(*ir.Identifier)
	if !ok {
		return nil, ir.Attribute{}, "", false
	}
	args := make([]any, 0, len(outer.Args)-1)
	for _, a := range outer.Args[1:] {
		lit, ok := a.(*ir.Literal)
		if !ok {
			continue
		}
		args = append(args, lit.Value)
	}

	return s, ir.Attribute{AttrType: attrTypeIdent.Name, Args: args}, targetIdent.Name, true
}

func attachAttribute(target ir.Statement, attr ir.Attribute) {
	switch t := target.(type) {
	case *ir.FunctionDecl:
		t.Attributes = append(t.Attributes, attr)
	case *ir.ClassDecl:
		t.TypeAttributes = append(t.TypeAttributes, attr)
	}
}
