package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"qakit/internal/config"
	"qakit/internal/generate"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var (
	runOut          string
	runDelta        bool
	runVerbose      bool
	runSkipGenerate bool
	runConfigPath   string
)

// goTestCommand builds the go test invocation. Variable so tests can
// intercept the exec.
var goTestCommand = func(dir string, verbose bool) *exec.Cmd {
	args := []string{"test"}
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, "./...")
	cmd := exec.Command("go", args...)
	cmd.Dir = dir
	return cmd
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <spec-file-or-directory>",
	Short: "Generate tests from specs and execute them",
	Long: `The run command regenerates test files from the given specs and then
executes the generated suite with go test.

Environment toggles such as QAKIT_SSL_VERIFY are read at generation
time and baked into the generated files, so they take effect on the
next run.

Example usage:
  qakit run specs/                  # Regenerate everything, then test
  qakit run specs/ --delta          # Regenerate only changed specs
  qakit run specs/ --skip-generate  # Test whatever is already generated`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "Output directory holding the generated test files (default from config)")
	runCmd.Flags().BoolVar(&runDelta, "delta", false, "Skip regenerating specs whose content is unchanged")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Verbose generation output and go test -v")
	runCmd.Flags().BoolVar(&runSkipGenerate, "skip-generate", false, "Execute the existing generated files without regenerating")
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "Path to a qakit.yaml config file (default: ./qakit.yaml)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return err
	}
	if runOut != "" {
		cfg.OutputDir = runOut
	}

	if !runSkipGenerate {
		orch, err := generate.NewOrchestrator(cfg, generate.Options{
			Delta:   runDelta,
			Verbose: runVerbose,
		})
		if err != nil {
			return err
		}
		if _, err := orch.Run(cmd.Context(), args[0]); err != nil {
			return err
		}
	}

	if _, err := os.Stat(cfg.OutputDir); err != nil {
		return fmt.Errorf("output directory %s does not exist, generate first", cfg.OutputDir)
	}

	testCmd := goTestCommand(cfg.OutputDir, runVerbose)
	testCmd.Stdout = os.Stdout
	testCmd.Stderr = os.Stderr
	testCmd.Env = os.Environ()

	var s *spinner.Spinner
	if !runVerbose {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Running generated tests..."
		s.Start()
	}

	err = testCmd.Run()

	if s != nil {
		s.Stop()
	}

	if err != nil {
		return fmt.Errorf("generated tests failed: %w", err)
	}
	fmt.Println("✅ Generated tests passed")
	return nil
}
