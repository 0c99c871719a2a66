// Package irbuilder converts a parsed, bound AST into the persistent IR
// the rest of the pipeline operates on. It resolves type
// syntax to IrType, synthesizes nominal types for anonymous object
// literals and union-of-object-literal arms, narrows identifier types
// across instanceof/istype<T> guards, consumes the struct/Struct marker
// interface and the ref/out/in/inref parameter wrappers, lowers
// index-signature-only interfaces to dictionary aliases, and lowers
// supported generic function values to top-level generic methods.
package irbuilder

import (
	"fmt"
	"strings"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/binder"
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/types"
)

// Builder holds the per-file state needed to walk one bound AST into IR.
type Builder struct {
	diags    *diag.Collector
	file     string
	fileStem string
	bind     *binder.Result

	anon      *anonRegistry
	narrowing *narrowEnv

	// extraDecls accumulates synthetic declarations (anonymous-literal
	// interfaces, union-arm interfaces) produced while converting
	// whatever statement is in flight; flushed into the module's
	// statement list immediately before the statement that triggered
	// their synthesis.
	extraDecls []ir.Statement
}

// Build converts prog into one ir.Module. bind must be the Result of
// binder.Bind over the very same *ast.Program (identifier resolution
// relies on AST node identity).
func Build(prog *ast.Program, bind *binder.Result, file, namespace, containerName string, diags *diag.Collector) *ir.Module {
	b := &Builder{
		diags:    diags,
		file:     file,
		fileStem: fileStem(file),
		bind:     bind,
		anon:     newAnonRegistry(),
		narrowing: newNarrowEnv(),
	}

	mod := &ir.Module{
		SourcePath:    file,
		Namespace:     namespace,
		ContainerName: containerName,
	}

	for _, s := range prog.Statements {
		b.extraDecls = nil
		converted := b.convertStatement(s)
		mod.Statements = append(mod.Statements, b.extraDecls...)
		if converted != nil {
			mod.Statements = append(mod.Statements, converted)
		}
	}
	mod.AnonymousTypes = b.anon.synthesized
	return mod
}

func fileStem(path string) string {
	p := strings.TrimSuffix(path, ".ts")
	if idx := strings.LastIndexAny(p, "/\\"); idx >= 0 {
		p = p[idx+1:]
	}
	return strings.ReplaceAll(p, "-", "")
}

func (b *Builder) loc(node ast.Node) *diag.SourceLocation {
	if node == nil {
		return nil
	}
	pos := node.Pos()
	return &diag.SourceLocation{File: b.file, Line: pos.Line, Column: pos.Column}
}

func (b *Builder) span(node ast.Node) ir.SourceSpan {
	if node == nil {
		return ir.SourceSpan{File: b.file}
	}
	pos := node.Pos()
	return ir.SourceSpan{File: b.file, Line: pos.Line, Column: pos.Column}
}

// declIdFor returns the DeclId the binder recorded for one declarator
// within a (possibly multi-declarator) VariableDeclaration, matched
// positionally since the binder records one Decl per declarator in
// source order but keys them all by the shared statement node.
func (b *Builder) declIdFor(stmt *ast.VariableDeclaration, index int) (binder.DeclId, bool) {
	seen := 0
	for _, d := range b.bind.Decls {
		if d.Node != ast.Node(stmt) {
			continue
		}
		if seen == index {
			return d.Id, true
		}
		seen++
	}
	return 0, false
}

func (b *Builder) identDeclId(id *ast.Identifier) (binder.DeclId, bool) {
	declID, ok := b.bind.Resolved[id]
	return declID, ok
}

// markerInterface reports whether decl is the struct/Struct brand marker
//: named struct/Struct with exactly one member, `__brand`.
// It is consumed, never emitted.
func markerInterface(decl *ast.InterfaceDeclaration) bool {
	if decl.Name != "struct" && decl.Name != "Struct" {
		return false
	}
	return len(decl.Members) == 1 && decl.Members[0].Name == "__brand"
}

// indexSignatureOnly reports whether decl has exactly one member and it
// is an index signature.
func indexSignatureOnly(members []ast.ClassMember) bool {
	return len(members) == 1 && members[0].Kind == ast.MemberIndexSignature
}

func fmtAnonName(stem string, line, col int) string {
	return fmt.Sprintf("__Anon_%s_%d_%d", stem, line, col)
}
