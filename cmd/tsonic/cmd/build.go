package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tsoniclang/tsonic/internal/compiler"
	"github.com/tsoniclang/tsonic/internal/diag"
)

var (
	buildProjectDir string
	buildConfigPath string
	buildNoGenerate bool
	buildQuiet      bool
	buildJSON       bool
)

var buildCmd = &cobra.Command{
	Use:   "build [--no-generate] [--project P] [--config C] [--quiet] [--json]",
	Short: "Compile a tsonic project to C#",
	Long: `Parse, bind, validate, and emit every source file under the
project's sourceRoot, writing one .cs file per input module next to its
source.

Examples:
  # Build the project in the current directory
  tsonic build

  # Validate only, without writing any C#
  tsonic build --no-generate

  # Build a project in another directory
  tsonic build --project ./my-app

  # Emit diagnostics as newline-delimited JSON for CI annotation steps
  tsonic build --json --quiet`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildProjectDir, "project", ".", "project directory")
	buildCmd.Flags().StringVar(&buildConfigPath, "config", "", "path to tsonic.config.yaml (default: <project>/tsonic.config.yaml)")
	buildCmd.Flags().BoolVar(&buildNoGenerate, "no-generate", false, "validate only, skip writing C# output")
	buildCmd.Flags().BoolVar(&buildQuiet, "quiet", false, "suppress diagnostic hints")
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "emit diagnostics as newline-delimited JSON instead of formatted text")
}

func runBuild(_ *cobra.Command, _ []string) error {
	cfg, files, err := loadProject(buildProjectDir, buildConfigPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .ts source files found under %s", cfg.SourceRoot)
	}

	opts, closeCache, err := compilerOptions(cfg, buildProjectDir, defaultCachePath(buildProjectDir))
	if err != nil {
		return err
	}
	defer closeCache()

	var res *compiler.Result
	if buildNoGenerate {
		res, err = compiler.Check(files, opts)
	} else {
		res, err = compiler.Compile(files, opts)
	}
	if err != nil {
		exitWithError("%s", err)
	}

	if buildJSON {
		if err := printDiagnosticsJSON(res.Diagnostics, buildQuiet); err != nil {
			return err
		}
	} else {
		printDiagnostics(res.Diagnostics, buildQuiet)
	}

	failed := false
	for _, d := range res.Diagnostics {
		if d.Severity == diag.SeverityError {
			failed = true
			break
		}
	}
	if failed {
		return fmt.Errorf("build failed with %d error(s)", countErrors(res.Diagnostics))
	}

	if buildNoGenerate {
		fmt.Println("Checked, no C# written (--no-generate)")
		return nil
	}
	return writeOutputs(res.Outputs)
}

func writeOutputs(outputs map[string]string) error {
	var totalBytes int64
	paths := make([]string, 0, len(outputs))
	for path := range outputs {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		src := outputs[path]
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating output directory for %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		totalBytes += int64(len(src))
	}

	fmt.Printf("Emitted %d file(s), %s\n", len(paths), humanize.Bytes(uint64(totalBytes)))
	return nil
}

func printDiagnostics(items []diag.Diagnostic, quiet bool) {
	useColor := isatty.IsTerminal(os.Stdout.Fd())
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow)
	hintColor := color.New(color.FgCyan)

	for _, d := range items {
		if quiet {
			d.Hint = ""
		}
		line := d.Format()
		if !useColor {
			fmt.Println(line)
			continue
		}
		switch d.Severity {
		case diag.SeverityError:
			errColor.Println(line)
		case diag.SeverityWarning:
			warnColor.Println(line)
		default:
			hintColor.Println(line)
		}
	}
}

// printDiagnosticsJSON renders diagnostics as the JSONL wire format for
// editor integrations and CI annotation steps, patching hints out with
// RedactHints when --quiet is also set instead of re-marshaling with
// hints already cleared, so the two flags share one serialization path.
func printDiagnosticsJSON(items []diag.Diagnostic, quiet bool) error {
	jsonl, err := diag.MarshalJSONL(items)
	if err != nil {
		return fmt.Errorf("marshaling diagnostics: %w", err)
	}
	if quiet {
		jsonl, err = diag.RedactHints(jsonl)
		if err != nil {
			return fmt.Errorf("redacting diagnostic hints: %w", err)
		}
	}
	os.Stdout.Write(jsonl)

	errCount := diag.CountBySeverity(jsonl, diag.SeverityError)
	warnCount := diag.CountBySeverity(jsonl, diag.SeverityWarning)
	fmt.Fprintf(os.Stderr, "%d error(s), %d warning(s)\n", errCount, warnCount)
	return nil
}

func countErrors(items []diag.Diagnostic) int {
	n := 0
	for _, d := range items {
		if d.Severity == diag.SeverityError {
			n++
		}
	}
	return n
}
