package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"qakit/internal/config"
	"qakit/internal/generate"
	"qakit/internal/watch"

	"github.com/spf13/cobra"
)

var (
	generateOut          string
	generateDry          bool
	generateDelta        bool
	generateCleanRemoved bool
	generateVerbose      bool
	generateParallel     int
	generateWatch        bool
	generateReportPath   string
	generateConfigPath   string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <spec-file-or-directory>",
	Short: "Generate test files from JSON API-test specs",
	Long: `The generate command reads one spec file or a directory tree of
*.json spec files and renders an executable Go test file per spec into
the output directory.

Generation is deterministic: the same spec always produces the same
bytes. With --delta, a state file in the output directory records each
spec's content fingerprint and unchanged specs are skipped on the next
run. With --clean-removed, generated files whose spec no longer exists
are deleted.

Example usage:
  qakit generate specs/                     # Generate all specs
  qakit generate specs/orders.json          # Generate one spec
  qakit generate specs/ --delta             # Skip unchanged specs
  qakit generate specs/ --delta --watch     # Regenerate on file changes
  qakit generate specs/ --dry --verbose     # Show decisions, write nothing
  qakit generate specs/ --clean-removed     # Also delete stale outputs
  qakit generate specs/ --report=run.json   # Write a JSON run report`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output directory for generated test files (default from config)")
	generateCmd.Flags().BoolVar(&generateDry, "dry", false, "Compute and report decisions without writing any file")
	generateCmd.Flags().BoolVar(&generateDelta, "delta", false, "Skip specs whose content is unchanged since the last run")
	generateCmd.Flags().BoolVar(&generateCleanRemoved, "clean-removed", false, "Delete generated files whose spec no longer exists")
	generateCmd.Flags().BoolVar(&generateVerbose, "verbose", false, "Emit a decision line per spec file")
	generateCmd.Flags().IntVar(&generateParallel, "parallel", 1, "Number of parallel render workers")
	generateCmd.Flags().BoolVar(&generateWatch, "watch", false, "Keep running and regenerate when spec files change")
	generateCmd.Flags().StringVar(&generateReportPath, "report", "", "Path to save a JSON run report (default: stdout summary only)")
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to a qakit.yaml config file (default: ./qakit.yaml)")

	generateCmd.MarkFlagsMutuallyExclusive("dry", "watch")
	generateCmd.MarkFlagsMutuallyExclusive("dry", "clean-removed")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	specPath := args[0]

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		if generateWatch {
			fmt.Println("\nReceived interrupt signal, stopping watch mode...")
		}
		cancel()
	}()

	cfg, err := config.Load(generateConfigPath)
	if err != nil {
		return err
	}
	if generateOut != "" {
		cfg.OutputDir = generateOut
	}

	opts := generate.Options{
		Dry:          generateDry,
		Delta:        generateDelta,
		CleanRemoved: generateCleanRemoved,
		Verbose:      generateVerbose,
		Parallel:     generateParallel,
		ReportPath:   generateReportPath,
	}

	orch, err := generate.NewOrchestrator(cfg, opts)
	if err != nil {
		return err
	}

	if !generateWatch {
		_, err := orch.Run(ctx, specPath)
		return err
	}

	// Watch mode: one full pass up front, then regenerate on changes.
	// Pass failures keep the watcher alive so a spec can be fixed and
	// saved again.
	if _, err := orch.Run(ctx, specPath); err != nil {
		fmt.Fprintf(os.Stderr, "generation pass failed: %v\n", err)
	}

	watcher := watch.NewWatcher(specPath, 0, func(ctx context.Context) {
		if _, err := orch.Run(ctx, specPath); err != nil {
			fmt.Fprintf(os.Stderr, "generation pass failed: %v\n", err)
		}
	})
	return watcher.Run(ctx)
}
