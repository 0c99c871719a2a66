// Package backend emits validated IR as C# 11 source text. Each emitter
// is a pure function of (node, *EmitterContext)
// returning a text fragment; the context itself is never mutated in
// place — every With* method returns a modified copy, so two branches of
// a tree walk that diverge (e.g. a generic method inside a generic
// class) never see each other's scope additions. This mirrors the way
// internal/validate threads its own Context through validation passes.
package backend

import (
	"sort"
	"strings"

	"github.com/tsoniclang/tsonic/internal/validate"
)

// ImportBinding is one name an import brought into scope:
// its resolved fully-qualified container, the export it binds, and
// whether it names a value or a type.
type ImportBinding struct {
	FqContainer string
	ExportName  string
	IsType      bool
}

// LocalType records one of the module's own declarations so reference
// resolution recognizes a local name before ever falling back to the
// external binding registry (: "local names win over
// same-named CLR types"). AliasObjectType marks a type alias whose
// underlying type is an object type, which emits with an `__Alias`
// suffix.
type LocalType struct {
	Name            string
	IsAlias         bool
	AliasObjectType bool
}

// TypeParamScope is one generic type parameter in scope and the C#
// constraint kind it must emit a `where` clause for.
type TypeParamScope struct {
	Name       string
	Constraint string // "class", "struct", or "" for unconstrained
}

// EmitterContext is "immutable, updated functionally"
// context threaded through every emit function.
type EmitterContext struct {
	Indent int

	Usings map[string]bool

	TypeParams []TypeParamScope

	LocalTypes     map[string]LocalType
	ImportBindings map[string]ImportBinding

	ContainerName string

	IsStatic     bool
	IsAsync      bool
	IsArrayIndex bool

	Runtime validate.RuntimeMode
	Naming  validate.NamingPolicy
}

// NewEmitterContext builds the root context for one module's emission.
func NewEmitterContext(containerName string, runtime validate.RuntimeMode, naming validate.NamingPolicy) *EmitterContext {
	return &EmitterContext{
		Usings:         map[string]bool{"Tsonic.Runtime": true},
		LocalTypes:     map[string]LocalType{},
		ImportBindings: map[string]ImportBinding{},
		ContainerName:  containerName,
		Runtime:        runtime,
		Naming:         naming,
	}
}

func (c *EmitterContext) clone() *EmitterContext {
	cp := *c
	return &cp
}

// WithIndent returns a copy indented by delta levels (delta may be negative).
func (c *EmitterContext) WithIndent(delta int) *EmitterContext {
	cp := c.clone()
	cp.Indent += delta
	return cp
}

func (c *EmitterContext) WithStatic(v bool) *EmitterContext {
	cp := c.clone()
	cp.IsStatic = v
	return cp
}

func (c *EmitterContext) WithAsync(v bool) *EmitterContext {
	cp := c.clone()
	cp.IsAsync = v
	return cp
}

func (c *EmitterContext) WithArrayIndex(v bool) *EmitterContext {
	cp := c.clone()
	cp.IsArrayIndex = v
	return cp
}

// WithTypeParams appends type parameters to the current generic scope
// (nested generics accumulate rather than replace, since an inner
// method's type parameters must still see the outer class's).
func (c *EmitterContext) WithTypeParams(names []string, constraint string) *EmitterContext {
	cp := c.clone()
	scopes := make([]TypeParamScope, 0, len(c.TypeParams)+len(names))
	scopes = append(scopes, c.TypeParams...)
	for _, n := range names {
		scopes = append(scopes, TypeParamScope{Name: n, Constraint: constraint})
	}
	cp.TypeParams = scopes
	return cp
}

// InTypeParamScope reports whether name is a type parameter currently in
// scope, so reference resolution knows to emit it bare rather than
// consulting local types or the binding registry.
func (c *EmitterContext) InTypeParamScope(name string) bool {
	for _, tp := range c.TypeParams {
		if tp.Name == name {
			return true
		}
	}
	return false
}

// WithLocalTypes returns a copy whose local-type table additionally
// knows about the given declarations (used once per module, before
// walking its statements, so every reference sees every sibling
// declaration regardless of source order).
func (c *EmitterContext) WithLocalTypes(types map[string]LocalType) *EmitterContext {
	cp := c.clone()
	merged := make(map[string]LocalType, len(c.LocalTypes)+len(types))
	for k, v := range c.LocalTypes {
		merged[k] = v
	}
	for k, v := range types {
		merged[k] = v
	}
	cp.LocalTypes = merged
	return cp
}

// WithImportBindings returns a copy whose import-binding table
// additionally knows about the given bindings.
func (c *EmitterContext) WithImportBindings(bindings map[string]ImportBinding) *EmitterContext {
	cp := c.clone()
	merged := make(map[string]ImportBinding, len(c.ImportBindings)+len(bindings))
	for k, v := range c.ImportBindings {
		merged[k] = v
	}
	for k, v := range bindings {
		merged[k] = v
	}
	cp.ImportBindings = merged
	return cp
}

// RequireUsing returns a copy whose using-directive set additionally
// contains ns.
func (c *EmitterContext) RequireUsing(ns string) *EmitterContext {
	if c.Usings[ns] {
		return c
	}
	cp := c.clone()
	next := make(map[string]bool, len(c.Usings)+1)
	for k, v := range c.Usings {
		next[k] = v
	}
	next[ns] = true
	cp.Usings = next
	return cp
}

func (c *EmitterContext) indentStr() string {
	return strings.Repeat("    ", c.Indent)
}

// SortedUsings orders using directives : Tsonic.Runtime
// first, then System*, then Microsoft*, then alphabetical.
func (c *EmitterContext) SortedUsings() []string {
	names := make([]string, 0, len(c.Usings))
	for n := range c.Usings {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := usingRank(names[i]), usingRank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

func usingRank(ns string) int {
	switch {
	case ns == "Tsonic.Runtime":
		return 0
	case strings.HasPrefix(ns, "System"):
		return 1
	case strings.HasPrefix(ns, "Microsoft"):
		return 2
	default:
		return 3
	}
}
