// Package generate contains the back half of the pipeline: the code
// renderer that turns a normalized suite into one Go test file, and the
// orchestrator that walks a spec directory, applies delta decisions,
// writes outputs and maintains the persisted delta state.
//
// The renderer's output is a pure function of the suite and the run
// configuration - no timestamps, sorted map rendering - so identical
// specs produce byte-identical files and fingerprint-based skipping
// stays sound.
//
// The orchestrator implements partial-failure semantics: a spec that
// fails to parse, validate or write is reported with its file identity
// and skipped, the remaining specs are still processed, and the run's
// aggregate outcome is reflected in the returned report and error.
package generate
