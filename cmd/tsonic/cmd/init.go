package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/tsoniclang/tsonic/internal/config"
)

var (
	initJS       bool
	initNodejs   bool
	initPure     bool
	initSkipTypes bool
)

var initCmd = &cobra.Command{
	Use:   "init [--js|--nodejs|--pure] [--skip-types]",
	Short: "Scaffold a new tsonic project",
	Long: `Write a starter tsonic.config.yaml and a src/ directory holding a
starter src/main.ts (kept if it already exists) in the current directory. --js and --nodejs target the js runtime;
--pure (the default) targets dotnet; --skip-types omits the nugetPackages
scaffold entry a fresh dotnet project would otherwise carry.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initJS, "js", false, "target the js runtime")
	initCmd.Flags().BoolVar(&initNodejs, "nodejs", false, "target the js runtime (Node.js)")
	initCmd.Flags().BoolVar(&initPure, "pure", false, "target the dotnet runtime (default)")
	initCmd.Flags().BoolVar(&initSkipTypes, "skip-types", false, "skip scaffolding a nugetPackages entry")
}

func runInit(_ *cobra.Command, _ []string) error {
	runtime := "dotnet"
	if initJS || initNodejs {
		runtime = "js"
	}

	cfg := &config.Config{
		SourceRoot:    "src",
		RootNamespace: "App",
		Runtime:       runtime,
		NamingPolicy: config.NamingPolicy{
			Classes:     "pascal",
			Methods:     "pascal",
			Properties:  "pascal",
			Fields:      "camel",
			EnumMembers: "pascal",
		},
		IsEntryPoint: true,
		EntryPoint:   "src/main.ts",
	}
	if !initSkipTypes && runtime == "dotnet" {
		cfg.NugetPackages = []config.Package{{Name: "System.Runtime", Version: "8.0.0"}}
	}

	if err := os.MkdirAll(cfg.SourceRoot, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", cfg.SourceRoot, err)
	}

	entryPath := filepath.Join(cfg.SourceRoot, "main.ts")
	if _, err := os.Stat(entryPath); os.IsNotExist(err) {
		if err := os.WriteFile(entryPath, []byte("export function main(): void {\n}\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", entryPath, err)
		}
	}

	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile("tsonic.config.yaml", raw, 0o644); err != nil {
		return fmt.Errorf("writing tsonic.config.yaml: %w", err)
	}

	fmt.Println("Created tsonic.config.yaml and src/main.ts")
	return nil
}
