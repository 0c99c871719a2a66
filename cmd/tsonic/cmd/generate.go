package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tsoniclang/tsonic/internal/compiler"
	"github.com/tsoniclang/tsonic/internal/validate"
)

var generateStdout bool

var generateCmd = &cobra.Command{
	Use:   "generate [file...]",
	Short: "Emit C# for one or more source files without a project config",
	Long: `Compile the given source files directly, bypassing
tsonic.config.yaml, and print or write the emitted C#. Useful for
one-off translation of a single file instead of a whole project tree.

Examples:
  # Print emitted C# to stdout
  tsonic generate --stdout math.ts

  # Write math.cs next to math.ts
  tsonic generate math.ts`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "print emitted C# to stdout instead of writing files")
}

func runGenerate(_ *cobra.Command, args []string) error {
	files := make([]compiler.InputFile, len(args))
	for i, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		files[i] = compiler.InputFile{Path: path, Source: string(src)}
	}

	opts := compiler.CompilerOptions{
		RootNamespace: "Generated",
		Runtime:       validate.RuntimeDotnet,
		Naming:        validate.DefaultNamingPolicy(),
		Verbose:       verbose,
	}

	res, err := compiler.Compile(files, opts)
	if err != nil {
		exitWithError("%s", err)
	}

	printDiagnostics(res.Diagnostics, false)
	if countErrors(res.Diagnostics) > 0 {
		return fmt.Errorf("generate failed with %d error(s)", countErrors(res.Diagnostics))
	}

	if generateStdout {
		for _, path := range sortedKeys(res.Outputs) {
			fmt.Println(res.Outputs[path])
		}
		return nil
	}
	return writeOutputs(res.Outputs)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
