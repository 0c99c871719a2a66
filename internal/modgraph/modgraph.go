// Package modgraph builds the per-module namespace/container derivation
// and the cross-module dependency graph from a parsed file list
//.
package modgraph

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsoniclang/tsonic/internal/ast"
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/maruel/natural"
)

// ModuleInfo is the per-file derivation describes:
// namespace, container class name, imports, explicit exports, and
// whether the module has executable top-level code.
type ModuleInfo struct {
	Path            string
	Namespace       string
	ContainerName   string
	Program         *ast.Program
	Imports         []ResolvedImport
	Exports         []string
	HasTopLevelCode bool
}

// ImportKind classifies an import by how its specifier resolves
//.
type ImportKind int

const (
	ImportClrNamespace ImportKind = iota
	ImportBoundAssembly
	ImportLocal
	ImportDynamic
)

// ResolvedImport is one import edge, classified and (for local imports)
// resolved to a file path.
type ResolvedImport struct {
	Kind       ImportKind
	Specifier  string
	Names      []string
	ResolvedTo string // resolved local file path, set only for ImportLocal
}

// BindingRegistry answers whether a bare specifier names a bound
// assembly package. The caller
// supplies the concrete registry; modgraph only consults it.
type BindingRegistry interface {
	IsBoundPackage(name string) bool
}

// DeriveNamespace computes root-namespace + path-parts-after-source-root
// for path relative to sourceRoot, the way describes.
func DeriveNamespace(rootNamespace, sourceRoot, path string) string {
	rel, err := filepath.Rel(sourceRoot, filepath.Dir(path))
	if err != nil || rel == "." {
		return rootNamespace
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	segs := append([]string{rootNamespace}, parts...)
	return strings.Join(segs, ".")
}

// DeriveContainerName computes the container class name: the file stem
// with hyphens stripped.
func DeriveContainerName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.ReplaceAll(stem, "-", "")
}

// ClassifyImport determines an ImportStatement's kind.
// Anything starting with "./" or "../" is a local import; any other
// specifier is a bound assembly import if the binding registry claims
// it, and a CLR import otherwise (its shape is not checked).
func ClassifyImport(specifier string, registry BindingRegistry) ImportKind {
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		return ImportLocal
	}
	if registry != nil && registry.IsBoundPackage(specifier) {
		return ImportBoundAssembly
	}
	return ImportClrNamespace
}

// hasExecutableTopLevel reports whether prog contains any statement
// that is not a declaration: a module is a static
// container exactly when it has no executable top-level statement.
func hasExecutableTopLevel(prog *ast.Program) bool {
	for _, s := range prog.Statements {
		switch s.(type) {
		case *ast.FunctionDeclaration, *ast.ClassDeclaration, *ast.InterfaceDeclaration,
			*ast.EnumDeclaration, *ast.TypeAliasDeclaration, *ast.ImportStatement, *ast.ReExportStatement,
			*ast.EmptyStatement:
			continue
		case *ast.VariableDeclaration:
			continue
		default:
			return true
		}
	}
	return false
}

// collectExports gathers the names exported by prog.
func collectExports(prog *ast.Program) []string {
	var names []string
	for _, s := range prog.Statements {
		switch st := s.(type) {
		case *ast.FunctionDeclaration:
			if st.Exported {
				names = append(names, st.Name)
			}
		case *ast.ClassDeclaration:
			if st.Exported {
				names = append(names, st.Name)
			}
		case *ast.InterfaceDeclaration:
			if st.Exported {
				names = append(names, st.Name)
			}
		case *ast.EnumDeclaration:
			if st.Exported {
				names = append(names, st.Name)
			}
		case *ast.TypeAliasDeclaration:
			if st.Exported {
				names = append(names, st.Name)
			}
		case *ast.VariableDeclaration:
			if st.Exported {
				for _, d := range st.Declarators {
					names = append(names, d.Name)
				}
			}
		case *ast.ReExportStatement:
			names = append(names, st.Names...)
		}
	}
	return names
}

// BuildModuleInfo derives one file's ModuleInfo.
func BuildModuleInfo(rootNamespace, sourceRoot string, prog *ast.Program, registry BindingRegistry) *ModuleInfo {
	mi := &ModuleInfo{
		Path:            prog.Path,
		Namespace:       DeriveNamespace(rootNamespace, sourceRoot, prog.Path),
		ContainerName:   DeriveContainerName(prog.Path),
		Program:         prog,
		HasTopLevelCode: hasExecutableTopLevel(prog),
		Exports:         collectExports(prog),
	}
	for _, s := range prog.Statements {
		switch st := s.(type) {
		case *ast.ImportStatement:
			kind := ImportDynamic
			if st.Specifier != "" {
				kind = ClassifyImport(st.Specifier, registry)
			}
			ri := ResolvedImport{Kind: kind, Specifier: st.Specifier, Names: st.Names}
			if kind == ImportLocal {
				ri.ResolvedTo = resolveLocalPath(prog.Path, st.Specifier)
			}
			mi.Imports = append(mi.Imports, ri)
		case *ast.ReExportStatement:
			ri := ResolvedImport{Kind: ImportLocal, Specifier: st.From, Names: st.Names}
			ri.ResolvedTo = resolveLocalPath(prog.Path, st.From)
			mi.Imports = append(mi.Imports, ri)
		}
	}
	return mi
}

func resolveLocalPath(fromPath, specifier string) string {
	return filepath.Clean(filepath.Join(filepath.Dir(fromPath), specifier))
}

// Graph is the cross-module dependency graph.
type Graph struct {
	Modules map[string]*ModuleInfo // keyed by resolved file path
	forward map[string][]string
	reverse map[string][]string
}

// BuildGraph assembles a Graph from modules and reports a circular
// dependency (if any) as a hard error via diags, with the cycle's
// member files listed in traversal order.
func BuildGraph(modules []*ModuleInfo, diags *diag.Collector) *Graph {
	g := &Graph{
		Modules: make(map[string]*ModuleInfo, len(modules)),
		forward: map[string][]string{},
		reverse: map[string][]string{},
	}
	for _, m := range modules {
		g.Modules[m.Path] = m
	}
	for _, m := range modules {
		for _, imp := range m.Imports {
			if imp.Kind != ImportLocal || imp.ResolvedTo == "" {
				continue
			}
			if _, ok := g.Modules[imp.ResolvedTo]; !ok {
				continue // unresolvable target; the type system reports the unresolved reference
			}
			g.forward[m.Path] = append(g.forward[m.Path], imp.ResolvedTo)
			g.reverse[imp.ResolvedTo] = append(g.reverse[imp.ResolvedTo], m.Path)
		}
	}
	if cycle := g.findCycle(); cycle != nil {
		diags.Error(diag.CodeCircularDependency, nil, "circular import dependency: %s", strings.Join(cycle, " -> "))
	}
	return g
}

func (g *Graph) findCycle() []string {
	const (
		white = iota
		gray
		black
	)
	color := map[string]int{}
	var path []string
	var cycle []string

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		path = append(path, node)
		for _, next := range sortedNeighbors(g.forward[node]) {
			switch color[next] {
			case white:
				if visit(next) {
					return true
				}
			case gray:
				// close the cycle at next
				idx := indexOf(path, next)
				cycle = append([]string{}, path[idx:]...)
				cycle = append(cycle, next)
				return true
			}
		}
		path = path[:len(path)-1]
		color[node] = black
		return false
	}

	for _, node := range sortedModulePaths(g.Modules) {
		if color[node] == white {
			if visit(node) {
				return cycle
			}
		}
	}
	return nil
}

func sortedModulePaths(modules map[string]*ModuleInfo) []string {
	paths := make([]string, 0, len(modules))
	for p := range modules {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool { return natural.Less(paths[i], paths[j]) })
	return paths
}

func sortedNeighbors(neighbors []string) []string {
	out := append([]string{}, neighbors...)
	sort.Slice(out, func(i, j int) bool { return natural.Less(out[i], out[j]) })
	return out
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// IndependentGroups partitions the graph's modules into groups with no
// dependency edges between groups (weakly connected components of the
// undirected closure of forward+reverse edges), suitable for the
// errgroup-based coarse parallelism allows across independent
// dependency trees.
func (g *Graph) IndependentGroups() [][]*ModuleInfo {
	visited := map[string]bool{}
	var groups [][]*ModuleInfo
	for _, path := range sortedModulePaths(g.Modules) {
		if visited[path] {
			continue
		}
		var group []*ModuleInfo
		queue := []string{path}
		visited[path] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			group = append(group, g.Modules[cur])
			for _, n := range append(append([]string{}, g.forward[cur]...), g.reverse[cur]...) {
				if !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}
