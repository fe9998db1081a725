package generate

import "time"

// Action is the per-spec outcome the orchestrator reports.
type Action string

const (
	// ActionGenerated means the spec was rendered and (unless dry) written
	ActionGenerated Action = "generated"
	// ActionSkipped means delta mode found the spec unchanged
	ActionSkipped Action = "skipped"
	// ActionNoTests means the spec was valid but has zero test cases
	ActionNoTests Action = "no-tests"
	// ActionFailed means the spec could not be processed
	ActionFailed Action = "failed"
)

// Options are the mode flags driving one orchestrator run.
type Options struct {
	// Dry computes decisions without writing generated files or delta
	// state; an explicitly requested report file is still written
	Dry bool
	// Delta enables fingerprint-based skipping of unchanged specs
	Delta bool
	// CleanRemoved deletes outputs recorded for specs no longer present
	CleanRemoved bool
	// Verbose emits per-file decision lines
	Verbose bool
	// Parallel is the number of concurrent render workers; values below
	// 2 mean sequential processing
	Parallel int
	// ReportPath, when set, is where the JSON run report is written
	ReportPath string
}

// SpecResult records the outcome for one spec file.
type SpecResult struct {
	// SpecPath is the source spec file
	SpecPath string `json:"spec_path"`
	// Action is what happened to it
	Action Action `json:"action"`
	// Output is the generated file path, when one was produced
	Output string `json:"output,omitempty"`
	// Fingerprint is the spec's content hash
	Fingerprint string `json:"fingerprint,omitempty"`
	// Error is the failure message for ActionFailed
	Error string `json:"error,omitempty"`

	// caseFingerprints carries the per-case hashes from rendering to
	// the delta-record commit at the end of the run
	caseFingerprints map[string]string
}

// Report is the overall result of one generation run.
type Report struct {
	// RunID uniquely identifies this run
	RunID string `json:"run_id"`
	// StartTime when the run began
	StartTime time.Time `json:"start_time"`
	// EndTime when the run completed
	EndTime time.Time `json:"end_time"`
	// Duration of the run
	Duration time.Duration `json:"duration"`
	// Dry indicates nothing was written
	Dry bool `json:"dry"`
	// Results holds one entry per discovered spec, in discovery order
	Results []SpecResult `json:"results"`
	// Removed lists generated files deleted by clean-removed
	Removed []string `json:"removed,omitempty"`
	// Generated, Skipped, Failed and NoTests are the per-action counts
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	NoTests   int `json:"no_tests"`
}
