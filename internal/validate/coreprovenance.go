package validate

import (
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
)

// CoreProvenancePass enforces TSN7440: reserved
// core-intrinsic names (sbyte, int, ptr, out, ref, stackalloc, trycast,
// istype, nameof, sizeof, defaultof, asinterface, thisarg, …) may only be
// declared or re-exported by the well-known core package. Any other
// module declaring, or re-exporting under an import alias, one of these
// names is rejected.
type CoreProvenancePass struct{}

func (p *CoreProvenancePass) Name() string { return "core-intrinsic-provenance" }
func (p *CoreProvenancePass) StopsPipelineOnError() bool { return false }

func (p *CoreProvenancePass) Run(mod *ir.Module, ctx *Context, diags *diag.Collector) (*ir.Module, error) {
	if ctx.CorePackageName == "" || mod.Namespace == ctx.CorePackageName {
		return mod, nil
	}

	for _, stmt := range mod.Statements {
		name, ok := declaredName(stmt)
		if !ok {
			continue
		}
		if CoreIntrinsicNames[name] {
			diags.Error(diag.CodeCoreProvenance, nil,
				"%q is a reserved core intrinsic and cannot be redeclared outside %s", name, ctx.CorePackageName)
		}
	}

	for _, imp := range mod.Imports {
		for _, n := range imp.Names {
			if CoreIntrinsicNames[n] && imp.Kind == ir.ImportLocal {
				diags.Error(diag.CodeCoreProvenance, nil,
					"%q is a reserved core intrinsic and cannot be re-exported from %q", n, imp.Specifier)
			}
		}
	}

	return mod, nil
}

func declaredName(stmt ir.Statement) (string, bool) {
	switch s := stmt.(type) {
	case *ir.FunctionDecl:
		return s.Name, true
	case *ir.ClassDecl:
		return s.Name, true
	case *ir.InterfaceDecl:
		return s.Name, true
	case *ir.EnumDecl:
		return s.Name, true
	case *ir.TypeAliasDecl:
		return s.Name, true
	default:
		return "", false
	}
}
