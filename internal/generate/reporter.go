package generate

import (
	"encoding/json"
	"fmt"

	"qakit/internal/formatting"
)

// Reporter prints per-file decisions and the end-of-run summary.
type Reporter struct {
	verbose bool
}

// NewReporter creates a reporter; per-file decision lines are only
// emitted when verbose is set.
func NewReporter(verbose bool) *Reporter {
	return &Reporter{verbose: verbose}
}

// ReportSpecResult is called once per processed spec, in discovery order.
func (r *Reporter) ReportSpecResult(res SpecResult) {
	if !r.verbose {
		return
	}

	switch res.Action {
	case ActionGenerated:
		fmt.Printf("✅ %s → %s\n", res.SpecPath, res.Output)
	case ActionSkipped:
		fmt.Printf("⏭️  %s (unchanged, skipped)\n", res.SpecPath)
	case ActionNoTests:
		fmt.Printf("⚙️  %s (no test cases, nothing to generate)\n", res.SpecPath)
	case ActionFailed:
		fmt.Printf("❌ %s: %s\n", res.SpecPath, res.Error)
	}
}

// ReportRemoved is called for each stale output deleted by clean-removed.
func (r *Reporter) ReportRemoved(specPath, output string) {
	if r.verbose {
		fmt.Printf("🧹 %s (spec %s removed)\n", output, specPath)
	}
}

// ReportSummary prints the end-of-run summary table.
func (r *Reporter) ReportSummary(report *Report) {
	if report.Dry {
		fmt.Println("👀 Dry-run mode: no files were written")
	}
	fmt.Println(formatting.SummaryTable(formatting.Summary{
		Generated: report.Generated,
		Skipped:   report.Skipped,
		Failed:    report.Failed,
		NoTests:   report.NoTests,
		Removed:   len(report.Removed),
		Duration:  report.Duration,
	}))
}

func marshalReport(report *Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run report: %w", err)
	}
	return append(data, '\n'), nil
}
