package validate

import (
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/types"
)

// SynthesisFinalizationPass implements item 6: anonymous
// object-literal interfaces synthesized during IR construction
// (internal/irbuilder's anonRegistry) are collected on
// Module.AnonymousTypes (union-arm interfaces are not; the builder
// places those in the module body itself); this pass appends them to the module body as
// ordinary InterfaceDecls so the backend emits them like any other
// declared type, deterministically ordered by synthesis order (the
// order internal/irbuilder discovered them in, which is itself source
// order since the builder walks the AST linearly).
type SynthesisFinalizationPass struct{}

func (p *SynthesisFinalizationPass) Name() string { return "anonymous-union-synthesis-finalization" }
func (p *SynthesisFinalizationPass) StopsPipelineOnError() bool { return false }

func (p *SynthesisFinalizationPass) Run(mod *ir.Module, ctx *Context, diags *diag.Collector) (*ir.Module, error) {
	for _, synth := range mod.AnonymousTypes {
		mod.Statements = append(mod.Statements, &ir.InterfaceDecl{
			Name:       synth.Name,
			TypeParams: synth.TypeParams,
			Members:    toClassMembers(synth.Members),
			Exported:   synth.Exported,
		})
	}
	return mod, nil
}

// toClassMembers converts a synthesized interface's structural members
// to the field-shaped ClassMembers an InterfaceDecl carries (// §4.6: a synthesized shape never has methods, so every member is a
// plain auto-property field).
func toClassMembers(members []types.ObjectMember) []ir.ClassMember {
	out := make([]ir.ClassMember, len(members))
	for i, m := range members {
		out[i] = ir.ClassMember{
			Name:       m.Name,
			Kind:       ir.MemberField,
			Visibility: ir.VisPublic,
			Readonly:   m.Readonly,
			Optional:   m.Optional,
			Type:       m.Type,
		}
	}
	return out
}
