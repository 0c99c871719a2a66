package validate

import (
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/types"
)

// UnsupportedFeaturesPass rejects constructs the IR can represent
// syntactically but that have no defined C# mapping: symbol index
// signatures and dynamic `import()` outside a local
// specifier. `with`-statements never reach the IR at all — the parser
// rejects them at the syntax level, so there is nothing to walk here for
// TSN2001's `with` case; this pass only re-checks the cases the parser
// cannot detect on its own (an index signature's key type, which
// resolveType only learns after building the full IrType).
type UnsupportedFeaturesPass struct{}

func (p *UnsupportedFeaturesPass) Name() string { return "unsupported-features" }
func (p *UnsupportedFeaturesPass) StopsPipelineOnError() bool { return false }

func (p *UnsupportedFeaturesPass) Run(mod *ir.Module, ctx *Context, diags *diag.Collector) (*ir.Module, error) {
	for _, imp := range mod.Imports {
		if imp.Kind == ir.ImportDynamic && imp.FqContainer == "" {
			diags.Error(diag.CodeDynamicImportNonLocal, nil,
				"dynamic import() of %q is only supported for local specifiers", imp.Specifier)
		}
	}
	for _, stmt := range mod.Statements {
		walkSymbolIndexSignatures(stmt, diags)
	}
	return mod, nil
}

func walkSymbolIndexSignatures(stmt ir.Statement, diags *diag.Collector) {
	switch s := stmt.(type) {
	case *ir.TypeAliasDecl:
		checkSymbolIndexKey(s.Type, diags)
	case *ir.InterfaceDecl:
		for _, m := range s.Members {
			checkSymbolIndexKey(m.Type, diags)
		}
	case *ir.ClassDecl:
		for _, m := range s.Members {
			checkSymbolIndexKey(m.Type, diags)
		}
	}
}

// checkSymbolIndexKey flags a dictionary whose key resolution fell
// through to neither string nor a numeric kind in a way that indicates
// the source used `[key: symbol]` — DictionaryType itself cannot carry
// that distinction (dictionaryTypeFor already reports CodeInvalidDictionaryKey
// for it), so this is a defensive re-check over the synthesized type
// shape for completeness: a DictionaryType with a nil Value means the
// builder could not resolve a value type at all, which only happens for
// a symbol-keyed signature slipping past the builder's own check.
func checkSymbolIndexKey(t types.IrType, diags *diag.Collector) {
	dict, ok := t.(*types.DictionaryType)
	if !ok {
		return
	}
	if dict.Value == nil {
		diags.Error(diag.CodeSymbolIndexSignature, nil, "symbol index signatures are not supported")
	}
}
