// Package binder resolves identifier use-sites to stable declaration
// identifiers by lexical scope, tracks which declarations are ever
// written to, and captures opaque type-syntax handles for later
// resolution by the type system.
package binder

import (
	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/diag"
)

// DeclId uniquely names a lexical declaration site, assigned in visit
// order so that two runs over the same source produce identical ids.
type DeclId int

// DeclKind classifies what kind of thing a Decl names.
type DeclKind int

const (
	DeclVariable DeclKind = iota
	DeclParameter
	DeclFunction
	DeclClass
	DeclInterface
	DeclEnum
	DeclTypeAlias
	DeclCatchParam
	DeclLoopVar
)

// TypeHandle is the opaque handle captureTypeSyntax produces: a pointer
// to the raw syntax plus the lexical scope it was captured in, so the
// type system can later resolve type-parameter names visible at that
// point.
type TypeHandle struct {
	Syntax ast.TypeSyntax
	Scope  *Scope
}

// Decl is one resolved declaration site.
type Decl struct {
	Id       DeclId
	Name     string
	Kind     DeclKind
	Node     ast.Node
	Type     *TypeHandle // declared type annotation, nil when absent/inferred
	Mutable  bool        // true for let/var, false for const
	Scope    *Scope
}

// Result is everything the binder produced for one file.
type Result struct {
	Decls      []*Decl
	Resolved   map[ast.Node]DeclId // Identifier node -> the DeclId it refers to
	Written    map[DeclId]bool     // declarations that are ever an assignment/update target
	TypeHandles map[ast.Node]*TypeHandle // arbitrary nodes (params, fields, aliases) -> their captured type syntax
	aliasOf    map[DeclId]DeclId   // `const x = y` simple-identifier aliasing, for generic-value fixed point
	genericFn  map[DeclId]*ast.FunctionLiteral // decls whose initializer is a generic function/arrow literal
}

// IsGenericFunctionValue reports whether id, after following simple
// identifier-to-identifier aliasing to a fixed point, ultimately denotes
// a generic arrow/function literal: the binding layer identifies which
// function values are "supported" generics rather than requiring a C#
// generic delegate.
func (r *Result) IsGenericFunctionValue(id DeclId) (*ast.FunctionLiteral, bool) {
	seen := map[DeclId]bool{}
	cur := id
	for {
		if seen[cur] {
			return nil, false // alias cycle; never supported
		}
		seen[cur] = true
		if fn, ok := r.genericFn[cur]; ok {
			return fn, true
		}
		next, ok := r.aliasOf[cur]
		if !ok {
			return nil, false
		}
		cur = next
	}
}

type binder struct {
	diags   *diag.Collector
	file    string
	nextID  int
	result  *Result
	scope   *Scope
}

// Bind walks prog and produces a Result. Parse-error diagnostics are
// expected to already be in diags; Bind only adds its own (currently
// none — unresolved external references are left to the type system,
// which has the binding-registry context to tell a CLR reference from a
// genuine typo).
func Bind(prog *ast.Program, file string, diags *diag.Collector) *Result {
	b := &binder{
		diags: diags,
		file:  file,
		result: &Result{
			Resolved:    map[ast.Node]DeclId{},
			Written:     map[DeclId]bool{},
			TypeHandles: map[ast.Node]*TypeHandle{},
			aliasOf:     map[DeclId]DeclId{},
			genericFn:   map[DeclId]*ast.FunctionLiteral{},
		},
		scope: NewScope(nil),
	}
	b.bindStatements(prog.Statements)
	return b.result
}

func (b *binder) declare(name string, kind DeclKind, node ast.Node, mutable bool, typ ast.TypeSyntax) *Decl {
	b.nextID++
	id := DeclId(b.nextID)
	var th *TypeHandle
	if typ != nil {
		th = &TypeHandle{Syntax: typ, Scope: b.scope}
		b.result.TypeHandles[node] = th
	}
	d := &Decl{Id: id, Name: name, Kind: kind, Node: node, Type: th, Mutable: mutable, Scope: b.scope}
	b.result.Decls = append(b.result.Decls, d)
	b.scope.Define(name, id)
	return d
}

func (b *binder) captureType(node ast.Node, typ ast.TypeSyntax) {
	if typ == nil {
		return
	}
	b.result.TypeHandles[node] = &TypeHandle{Syntax: typ, Scope: b.scope}
}

func (b *binder) markWritten(expr ast.Expression) {
	ident, ok := expr.(*ast.Identifier)
	if !ok {
		return
	}
	if id, ok := b.result.Resolved[ident]; ok {
		b.result.Written[id] = true
	}
}

func (b *binder) resolveIdentExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		if id, ok := b.scope.Resolve(e.Name); ok {
			b.result.Resolved[e] = id
		}
	}
}
