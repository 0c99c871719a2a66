package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsoniclang/tsonic/internal/bindingcache"
	"github.com/tsoniclang/tsonic/internal/compiler"
	"github.com/tsoniclang/tsonic/internal/config"
)

// loadProject reads a workspace config (defaulting to tsonic.config.yaml
// in projectDir, or the path configPath names directly) and walks
// its sourceRoot for input files.
func loadProject(projectDir, configPath string) (*config.Config, []compiler.InputFile, error) {
	if configPath == "" {
		configPath = filepath.Join(projectDir, "tsonic.config.yaml")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading project config: %w", err)
	}

	root := cfg.SourceRoot
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(configPath), root)
	}

	var files []compiler.InputFile
	err = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() || !strings.HasSuffix(path, ".ts") {
			return nil
		}
		src, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", path, readErr)
		}
		files = append(files, compiler.InputFile{Path: path, Source: string(src)})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking source root %s: %w", root, err)
	}

	return cfg, files, nil
}

// compilerOptions converts a loaded config into internal/compiler's plain
// option bag, resolving each declared NuGet package's bindings through a
// sqlite-backed cache: a (name, version) hit skips re-reading the
// package's bindings sidecar entirely, and a miss reads the sidecar once
// and populates the cache so the next invocation in this workspace hits.
func compilerOptions(cfg *config.Config, projectDir, cachePath string) (compiler.CompilerOptions, func(), error) {
	opts := compiler.CompilerOptions{
		SourceRoot:     cfg.SourceRoot,
		RootNamespace:  cfg.RootNamespace,
		Runtime:        cfg.RuntimeMode(),
		Naming:         cfg.NamingPolicy.ToValidate(),
		IsEntryPoint:   cfg.IsEntryPoint,
		EntryPointPath: cfg.EntryPoint,
		Verbose:        verbose,
	}

	if len(cfg.NugetPackages) == 0 {
		return opts, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return opts, func() {}, fmt.Errorf("creating binding cache directory: %w", err)
	}
	cache, err := bindingcache.Open(cachePath)
	if err != nil {
		return opts, func() {}, fmt.Errorf("opening binding cache: %w", err)
	}

	names := make([]string, 0, len(cfg.NugetPackages))
	for _, p := range cfg.NugetPackages {
		if _, hit, err := cache.Get(p.Name, p.Version); err != nil {
			cache.Close()
			return opts, func() {}, fmt.Errorf("reading binding cache for %s@%s: %w", p.Name, p.Version, err)
		} else if !hit {
			bindings, err := loadBindingsSidecar(projectDir, p.Name)
			if err != nil {
				cache.Close()
				return opts, func() {}, fmt.Errorf("resolving bindings for %s@%s: %w", p.Name, p.Version, err)
			}
			if err := cache.Put(p.Name, p.Version, bindings); err != nil {
				cache.Close()
				return opts, func() {}, fmt.Errorf("populating binding cache for %s@%s: %w", p.Name, p.Version, err)
			}
		}
		names = append(names, p.Name)
	}
	opts.BindingRegistry = bindingcache.NewRegistry(names)

	return opts, func() { cache.Close() }, nil
}

// loadBindingsSidecar reads the external toolchain's resolved-bindings
// file for one package, conventionally dropped at
// .tsonic/bindings/<name>.json. A package with no sidecar present is
// still bound (declared in tsonic.config.yaml is enough to classify its
// imports as a bound-assembly import), just with no resolved member
// detail cached yet.
func loadBindingsSidecar(projectDir, name string) ([]bindingcache.Binding, error) {
	path := filepath.Join(projectDir, ".tsonic", "bindings", name+".json")
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading bindings sidecar %s: %w", path, err)
	}
	var bindings []bindingcache.Binding
	if err := json.Unmarshal(raw, &bindings); err != nil {
		return nil, fmt.Errorf("parsing bindings sidecar %s: %w", path, err)
	}
	return bindings, nil
}

func defaultCachePath(projectDir string) string {
	return filepath.Join(projectDir, ".tsonic", "bindings.db")
}
