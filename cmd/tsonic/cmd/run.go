package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

var runProjectDir string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build a project and run its compiled C# with dotnet",
	Long: `Build the project the same as "tsonic build", then hand off to
"dotnet run" against the project directory, so a round trip from
TypeScript-shaped source to a running .NET process is one command.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runProjectDir, "project", ".", "project directory")
}

func runRun(c *cobra.Command, args []string) error {
	buildProjectDir = runProjectDir
	buildConfigPath = ""
	buildNoGenerate = false
	buildQuiet = false
	if err := runBuild(c, args); err != nil {
		return err
	}

	dotnet, err := exec.LookPath("dotnet")
	if err != nil {
		return fmt.Errorf("dotnet not found on PATH: %w", err)
	}

	cmd := exec.Command(dotnet, "run", "--project", runProjectDir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}
