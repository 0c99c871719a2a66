// Package compiler orchestrates the full pipeline: parsing, binding, IR
// construction, validation, and backend emission, across every file in
// a compilation unit. It is the one place that sequences
// internal/parser, internal/binder, internal/irbuilder,
// internal/modgraph, internal/validate, and internal/backend together,
// packaged as a library entry point instead of living inline in a
// cobra RunE.
package compiler

import (
	"context"
	"fmt"
	"time"

	"github.com/tsoniclang/tsonic/internal/backend"
	"github.com/tsoniclang/tsonic/internal/binder"
	"github.com/tsoniclang/tsonic/internal/diag"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/irbuilder"
	"github.com/tsoniclang/tsonic/internal/modgraph"
	"github.com/tsoniclang/tsonic/internal/parser"
	"github.com/tsoniclang/tsonic/internal/validate"
)

// InputFile is one source file handed to the compiler (// "list of input file paths" contract).
type InputFile struct {
	Path   string
	Source string
}

// CompilerOptions is `options` bag, the external contract's
// input half, expressed as a plain Go value so a caller never needs to
// go through internal/config's file-backed loader.
type CompilerOptions struct {
	SourceRoot      string
	RootNamespace   string
	Runtime         validate.RuntimeMode
	Naming          validate.NamingPolicy
	IsEntryPoint    bool
	EntryPointPath  string
	CorePackageName string
	BindingRegistry modgraph.BindingRegistry

	// Verbose enables per-pass timing output.
	Verbose bool

	// OnPassTiming, when set, receives one call per file when Verbose is
	// true, with pass "validate" and the time all validation passes took
	// together; nil discards timing entirely.
	OnPassTiming func(file, pass string, d time.Duration)
}

// Result is the compiler's output contract: a map from output relative
// path to emitted C# source text, plus every diagnostic collected across
// the whole compilation.
type Result struct {
	Outputs     map[string]string
	Diagnostics []diag.Diagnostic
}

// Compile runs the full pipeline over every input file and returns the
// emitted C# for each, or the diagnostics explaining why it couldn't.
func Compile(files []InputFile, opts CompilerOptions) (*Result, error) {
	return run(files, opts, true)
}

// Check runs the front end, binding, module graph, and validation passes
// without invoking the backend: a fast way to surface diagnostics
// without writing any C#, sharing one pipeline entry point with Compile
// instead of duplicating the parser/binder/validate wiring per caller.
func Check(files []InputFile, opts CompilerOptions) (*Result, error) {
	return run(files, opts, false)
}

func run(files []InputFile, opts CompilerOptions, emit bool) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ice, ok := r.(*diag.ICE); ok {
				err = ice
				return
			}
			panic(r)
		}
	}()

	diags := diag.NewCollector()
	registry := opts.BindingRegistry
	if registry == nil {
		registry = nopRegistry{}
	}

	type parsed struct {
		info *modgraph.ModuleInfo
		bind *binder.Result
	}

	parsedByPath := make(map[string]*parsed, len(files))
	var infos []*modgraph.ModuleInfo

	for _, f := range files {
		prog := parser.ParseProgram(f.Source, f.Path, diags)
		bind := binder.Bind(prog, f.Path, diags)
		info := modgraph.BuildModuleInfo(opts.RootNamespace, opts.SourceRoot, prog, registry)
		parsedByPath[f.Path] = &parsed{info: info, bind: bind}
		infos = append(infos, info)
	}

	graph := modgraph.BuildGraph(infos, diags)
	if diags.HasErrors() {
		return &Result{Diagnostics: diags.Items()}, nil
	}

	outputs := make(map[string]string, len(files))
	vctx := &validate.Context{
		CorePackageName: opts.CorePackageName,
		Naming:          opts.Naming,
		Runtime:         opts.Runtime,
	}
	passes := validate.Default()

	// Local imports resolve to their target's namespace.container, which
	// is only known once every file's ModuleInfo has been derived — so
	// this table is built from the full set before any module is emitted.
	fqContainerByPath := make(map[string]string, len(infos))
	for _, info := range infos {
		fqContainerByPath[info.Path] = info.Namespace + "." + info.ContainerName
	}

	// Each independent dependency-tree group compiles on its own goroutine
	// ("coarse parallelism by module across independent
	// dependency trees"), but diag.Collector documents itself as unsafe
	// for concurrent writers, and outputs is a shared map — so every group
	// gets its own Collector and output map, written only from that
	// group's goroutine, merged into the shared diags/outputs once
	// CompileGroupsConcurrently's errgroup has joined (as diag.Collector's
	// own doc comment describes).
	groups := graph.IndependentGroups()
	groupOutputs := make([]map[string]string, len(groups))
	groupDiags := make([]*diag.Collector, len(groups))

	// fn only receives the group slice, not its index, so lookup goes by
	// the first module's own address (stable across the copy a slice
	// range makes), not by the slice header itself.
	indexByFirstInfo := make(map[*modgraph.ModuleInfo]int, len(groups))
	for i, g := range groups {
		if len(g) > 0 {
			indexByFirstInfo[g[0]] = i
		}
	}

	runErr := modgraph.CompileGroupsConcurrently(context.Background(), groups, func(group []*modgraph.ModuleInfo) error {
		idx := 0
		if len(group) > 0 {
			idx = indexByFirstInfo[group[0]]
		}
		localDiags := diag.NewCollector()
		localOutputs := make(map[string]string, len(group))

		for _, info := range group {
			p := parsedByPath[info.Path]
			mod := irbuilder.Build(info.Program, p.bind, info.Path, info.Namespace, info.ContainerName, localDiags)
			populateModuleEdges(mod, info, fqContainerByPath)

			start := time.Now()
			mod, perr := passes.RunAll(mod, vctx, localDiags)
			if opts.Verbose && opts.OnPassTiming != nil {
				opts.OnPassTiming(info.Path, "validate", time.Since(start))
			}
			if perr != nil {
				return perr
			}
			if localDiags.HasErrors() || !emit {
				continue
			}

			outPath := csOutputPath(info.Path)
			localOutputs[outPath] = backend.Emit(mod, opts.Runtime, opts.Naming)
		}

		groupOutputs[idx] = localOutputs
		groupDiags[idx] = localDiags
		return nil
	})
	if runErr != nil {
		return nil, runErr
	}

	for i := range groups {
		for path, src := range groupOutputs[i] {
			outputs[path] = src
		}
		diags.Merge(groupDiags[i])
	}

	return &Result{Outputs: outputs, Diagnostics: diags.Items()}, nil
}

// populateModuleEdges copies modgraph's per-file derivation (imports,
// exports, top-level-code flag) onto the IR module irbuilder.Build
// produced, since irbuilder only converts statement/expression syntax
// and has no notion of the cross-module import graph. fqContainerByPath
// resolves a local import's target file to the namespace.container
// backend.EmitType's ImportBindings table needs.
func populateModuleEdges(mod *ir.Module, info *modgraph.ModuleInfo, fqContainerByPath map[string]string) {
	mod.Exports = info.Exports
	mod.HasTopLevelCode = info.HasTopLevelCode
	mod.Imports = make([]ir.Import, len(info.Imports))
	for i, imp := range info.Imports {
		mod.Imports[i] = ir.Import{
			Kind:        ir.ImportKind(imp.Kind),
			Specifier:   imp.Specifier,
			Names:       imp.Names,
			FqContainer: resolveFqContainer(imp, fqContainerByPath),
		}
	}
}

func resolveFqContainer(imp modgraph.ResolvedImport, fqContainerByPath map[string]string) string {
	switch imp.Kind {
	case modgraph.ImportClrNamespace:
		return imp.Specifier
	case modgraph.ImportLocal:
		return fqContainerByPath[imp.ResolvedTo]
	default:
		return ""
	}
}

func csOutputPath(sourcePath string) string {
	return fmt.Sprintf("%s.cs", trimExt(sourcePath))
}

func trimExt(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/' && path[i] != '\\'; i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}

type nopRegistry struct{}

func (nopRegistry) IsBoundPackage(string) bool { return false }
