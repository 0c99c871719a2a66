package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/tsoniclang/tsonic/internal/config"
)

var addProjectDir string

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a dependency to the project config",
}

var addNugetCmd = &cobra.Command{
	Use:   "nuget <id> <version> [typesPkg]",
	Short: "Record a bound NuGet package in tsonic.config.yaml",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(_ *cobra.Command, args []string) error {
		configPath := filepath.Join(addProjectDir, "tsonic.config.yaml")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg.NugetPackages = append(cfg.NugetPackages, config.Package{Name: args[0], Version: args[1]})
		return writeConfig(configPath, cfg)
	},
}

var addNpmCmd = &cobra.Command{
	Use:   "npm <pkg>",
	Short: "Switch the project to the js runtime (the package name is not recorded)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return switchRuntime(addProjectDir, "js")
	},
}

var addNodejsCmd = &cobra.Command{
	Use:   "nodejs",
	Short: "Switch the project to the js runtime, targeting Node.js",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, args []string) error {
		return switchRuntime(addProjectDir, "js")
	},
}

var addJsCmd = &cobra.Command{
	Use:   "js",
	Short: "Switch the project to the js runtime",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, args []string) error {
		return switchRuntime(addProjectDir, "js")
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.PersistentFlags().StringVar(&addProjectDir, "project", ".", "project directory")
	addCmd.AddCommand(addNugetCmd, addNpmCmd, addNodejsCmd, addJsCmd)
}

func switchRuntime(projectDir, runtime string) error {
	configPath := filepath.Join(projectDir, "tsonic.config.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Runtime = runtime
	return writeConfig(configPath, cfg)
}

func writeConfig(path string, cfg *config.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
