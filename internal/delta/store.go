package delta

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"qakit/pkg/logging"
)

// StateFileName is the name of the delta-state file inside the output
// directory.
const StateFileName = ".qakit-state.json"

// Decision is the outcome of comparing a spec's fingerprint against the
// persisted state.
type Decision string

const (
	// DecisionUnchanged means a record exists with an identical fingerprint
	DecisionUnchanged Decision = "UNCHANGED"
	// DecisionChanged means a record exists with a different fingerprint
	DecisionChanged Decision = "CHANGED"
	// DecisionNew means no record exists for the spec path
	DecisionNew Decision = "NEW"
)

// Record is the persisted per-spec delta state.
type Record struct {
	// SpecPath is the source spec file path (also the state map key)
	SpecPath string `json:"spec_path"`
	// Fingerprint is the whole-file content hash at last generation
	Fingerprint string `json:"fingerprint"`
	// CaseFingerprints maps test case id to its per-case hash
	CaseFingerprints map[string]string `json:"case_fingerprints,omitempty"`
	// Outputs are the generated file paths recorded for this spec
	Outputs []string `json:"outputs"`
}

// stateFile is the on-disk shape of the delta-state file.
type stateFile struct {
	Records map[string]Record `json:"records"`
}

// Store persists the last-seen fingerprint per spec file across runs.
//
// A Store is read once at orchestrator start and written once at the end
// of the run. Concurrent invocations against the same state file are not
// supported: the store is a single-writer resource and implements no
// locking.
type Store struct {
	path    string
	records map[string]Record
}

// Open loads the delta state from dir. A missing or corrupt state file
// is non-fatal: it is logged and treated as "no prior state", which
// forces full regeneration.
func Open(dir string) *Store {
	s := &Store{
		path:    filepath.Join(dir, StateFileName),
		records: make(map[string]Record),
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("Delta", "Cannot read state file %s: %v - treating as no prior state", s.path, err)
		}
		return s
	}

	var sf stateFile
	if err := json.Unmarshal(data, &sf); err != nil {
		logging.Warn("Delta", "State file %s is corrupt: %v - treating as no prior state", s.path, err)
		return s
	}
	if sf.Records != nil {
		s.records = sf.Records
	}

	logging.Debug("Delta", "Loaded %d delta records from %s", len(s.records), s.path)
	return s
}

// Decide classifies a spec against the persisted state.
func (s *Store) Decide(specPath, fingerprint string) Decision {
	rec, ok := s.records[specPath]
	if !ok {
		return DecisionNew
	}
	if rec.Fingerprint == fingerprint {
		return DecisionUnchanged
	}
	return DecisionChanged
}

// Record upserts the delta record for a spec.
func (s *Store) Record(specPath, fingerprint string, caseFingerprints map[string]string, outputs []string) {
	s.records[specPath] = Record{
		SpecPath:         specPath,
		Fingerprint:      fingerprint,
		CaseFingerprints: caseFingerprints,
		Outputs:          outputs,
	}
}

// Get returns the record for a spec path, if any.
func (s *Store) Get(specPath string) (Record, bool) {
	rec, ok := s.records[specPath]
	return rec, ok
}

// Drop removes the record for a spec path.
func (s *Store) Drop(specPath string) {
	delete(s.records, specPath)
}

// RemovedSpecs returns the recorded spec paths that are absent from the
// current set, sorted for deterministic processing order.
func (s *Store) RemovedSpecs(current map[string]bool) []string {
	var removed []string
	for path := range s.records {
		if !current[path] {
			removed = append(removed, path)
		}
	}
	sort.Strings(removed)
	return removed
}

// Persist atomically writes the full state back to disk using the
// write-to-temp-then-rename discipline, so a crash mid-write never
// leaves a partial state file behind.
func (s *Store) Persist() error {
	data, err := json.MarshalIndent(stateFile{Records: s.records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal delta state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, StateFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace state file %s: %w", s.path, err)
	}

	logging.Debug("Delta", "Persisted %d delta records to %s", len(s.records), s.path)
	return nil
}

// Len returns the number of records currently held.
func (s *Store) Len() int {
	return len(s.records)
}
