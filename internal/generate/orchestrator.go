package generate

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"qakit/internal/config"
	"qakit/internal/delta"
	"qakit/internal/spec"
	"qakit/pkg/logging"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Orchestrator drives the generation pipeline: it discovers spec files,
// applies delta logic, invokes the renderer, writes output files and
// maintains the delta state. One spec failing does not abort the run;
// the aggregate outcome is surfaced through the returned report and
// error.
type Orchestrator struct {
	cfg      config.Config
	opts     Options
	renderer *Renderer
	reporter *Reporter
}

// NewOrchestrator creates an orchestrator for the given configuration
// and mode flags.
func NewOrchestrator(cfg config.Config, opts Options) (*Orchestrator, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		cfg:      cfg,
		opts:     opts,
		renderer: renderer,
		reporter: NewReporter(opts.Verbose),
	}, nil
}

// Run processes one spec file or a directory of spec files. It returns
// the run report plus a non-nil error when any spec failed or the delta
// state could not be persisted.
func (o *Orchestrator) Run(ctx context.Context, specPath string) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
		Dry:       o.opts.Dry,
	}

	specs, err := DiscoverSpecs(specPath)
	if err != nil {
		return nil, err
	}
	logging.Debug("Generator", "Discovered %d spec file(s) under %s", len(specs), specPath)

	root, err := specRoot(specPath)
	if err != nil {
		return nil, err
	}

	// Output prefixes are derived from the root-relative spec path and
	// namespace file names and function identifiers alike. Sanitization
	// can still map two distinct paths to one prefix; such specs would
	// clobber each other's output, so all but the first are failed here.
	prefixes := make([]string, len(specs))
	firstForPrefix := make(map[string]string, len(specs))
	conflictsWith := make([]string, len(specs))
	for i, path := range specs {
		prefixes[i] = OutputIdent(root, path)
		if first, ok := firstForPrefix[prefixes[i]]; ok {
			conflictsWith[i] = first
		} else {
			firstForPrefix[prefixes[i]] = path
		}
	}

	store := delta.Open(o.cfg.OutputDir)

	results := make([]SpecResult, len(specs))
	if o.opts.Parallel > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.opts.Parallel)
		for i, path := range specs {
			if conflictsWith[i] != "" {
				results[i] = failedConflict(path, prefixes[i], conflictsWith[i])
				continue
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = o.processSpec(path, prefixes[i], store)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, path := range specs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if conflictsWith[i] != "" {
				results[i] = failedConflict(path, prefixes[i], conflictsWith[i])
				continue
			}
			results[i] = o.processSpec(path, prefixes[i], store)
		}
	}

	// Delta records are collected above and committed here in one place,
	// keeping the store single-writer even with parallel workers.
	for _, res := range results {
		o.reporter.ReportSpecResult(res)
		switch res.Action {
		case ActionGenerated:
			report.Generated++
			if !o.opts.Dry {
				o.recordSpec(store, res)
			}
		case ActionSkipped:
			report.Skipped++
		case ActionNoTests:
			report.NoTests++
			if !o.opts.Dry {
				store.Record(res.SpecPath, res.Fingerprint, nil, nil)
			}
		case ActionFailed:
			report.Failed++
		}
	}
	report.Results = results

	if o.opts.CleanRemoved {
		report.Removed = o.cleanRemoved(store, specs)
	}

	if !o.opts.Dry {
		if err := store.Persist(); err != nil {
			return nil, fmt.Errorf("failed to persist delta state: %w", err)
		}
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	// The report file is written even in dry mode: an explicit --report
	// is the way to capture what a dry run decided.
	if o.opts.ReportPath != "" {
		if err := writeReport(o.opts.ReportPath, report); err != nil {
			logging.Warn("Generator", "Could not write run report: %v", err)
		}
	}

	o.reporter.ReportSummary(report)

	if report.Failed > 0 {
		return report, fmt.Errorf("%d spec file(s) failed", report.Failed)
	}
	return report, nil
}

// processSpec runs one spec through the load -> delta gate -> normalize
// -> render -> write pipeline. All failures are captured in the result;
// they never escape to abort the run.
func (o *Orchestrator) processSpec(path, prefix string, store *delta.Store) SpecResult {
	res := SpecResult{SpecPath: path}

	suite, raw, err := spec.Load(path)
	if err != nil {
		return failed(res, err)
	}

	res.Fingerprint = delta.Fingerprint(raw)

	if o.opts.Delta {
		if store.Decide(path, res.Fingerprint) == delta.DecisionUnchanged {
			res.Action = ActionSkipped
			return res
		}
	}

	if err := spec.Normalize(suite, o.cfg); err != nil {
		return failed(res, err)
	}

	file, err := o.renderer.Render(suite, o.cfg, prefix)
	if err != nil {
		return failed(res, err)
	}
	if file == nil {
		res.Action = ActionNoTests
		return res
	}

	res.caseFingerprints = make(map[string]string, len(suite.Tests))
	for _, tc := range suite.Tests {
		res.caseFingerprints[tc.ID] = delta.CaseFingerprint(tc)
	}

	outPath := filepath.Join(o.cfg.OutputDir, file.Name)
	res.Output = outPath
	res.Action = ActionGenerated

	if o.opts.Dry {
		return res
	}

	if err := os.MkdirAll(o.cfg.OutputDir, 0755); err != nil {
		return failed(res, &WriteError{Path: outPath, Err: err})
	}
	if err := os.WriteFile(outPath, file.Content, 0644); err != nil {
		return failed(res, &WriteError{Path: outPath, Err: err})
	}

	logging.Info("Generator", "Generated %s from %s", outPath, path)
	return res
}

// recordSpec upserts the delta record for a successfully generated
// spec, including the per-case fingerprints collected during rendering.
func (o *Orchestrator) recordSpec(store *delta.Store, res SpecResult) {
	store.Record(res.SpecPath, res.Fingerprint, res.caseFingerprints, []string{res.Output})
}

// cleanRemoved deletes the recorded outputs of specs that no longer
// exist and drops their records. Only invoked under --clean-removed;
// the conservative default leaves stale outputs in place.
func (o *Orchestrator) cleanRemoved(store *delta.Store, current []string) []string {
	currentSet := make(map[string]bool, len(current))
	for _, p := range current {
		currentSet[p] = true
	}

	var removed []string
	for _, specPath := range store.RemovedSpecs(currentSet) {
		rec, _ := store.Get(specPath)
		for _, out := range rec.Outputs {
			if o.opts.Dry {
				removed = append(removed, out)
				continue
			}
			if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
				logging.Warn("Generator", "Could not remove stale output %s: %v", out, err)
				continue
			}
			removed = append(removed, out)
			o.reporter.ReportRemoved(specPath, out)
		}
		if !o.opts.Dry {
			store.Drop(specPath)
		}
	}
	return removed
}

// DiscoverSpecs returns the JSON spec files under path in sorted order.
// A single .json file is returned as-is. Hidden files are never specs:
// the delta-state file is itself a dotted .json file and must not be
// picked up when the output directory doubles as the spec directory.
func DiscoverSpecs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("spec path %s: %w", path, err)
	}

	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil, fmt.Errorf("spec file %s is not a .json file", path)
		}
		return []string{path}, nil
	}

	var specs []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".json") {
			specs = append(specs, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk spec directory %s: %w", path, err)
	}

	sort.Strings(specs)
	return specs, nil
}

// specRoot is the directory output prefixes are computed relative to:
// the spec directory itself, or the parent for a single-file run.
func specRoot(specPath string) (string, error) {
	info, err := os.Stat(specPath)
	if err != nil {
		return "", fmt.Errorf("spec path %s: %w", specPath, err)
	}
	if info.IsDir() {
		return specPath, nil
	}
	return filepath.Dir(specPath), nil
}

func failedConflict(path, prefix, firstPath string) SpecResult {
	return failed(SpecResult{SpecPath: path},
		fmt.Errorf("output file %s_gen_test.go already produced by spec %s", prefix, firstPath))
}

func failed(res SpecResult, err error) SpecResult {
	res.Action = ActionFailed
	res.Error = err.Error()
	logging.Error("Generator", err, "Spec %s failed", res.SpecPath)
	return res
}

func writeReport(path string, report *Report) error {
	data, err := marshalReport(report)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
