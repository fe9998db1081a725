// Package spec implements the loading, validation and normalization of
// JSON API-test specification files.
//
// A specification file describes one Suite: a name, a base URL and an
// ordered list of TestCases. Load parses and schema-validates a single
// file, returning structured errors (*ParseError, *SchemaError) that
// carry the file identity so the orchestrator can report and skip the
// offending spec without aborting the run.
//
// Normalize prepares a loaded suite for rendering: it fills defaults
// (empty body/params/ignore sets, global wildcard and ignore-assert
// toggles), rejects duplicate test case ids, and derives a unique,
// deterministic Go identifier for every case. Identifier derivation is
// a pure function of the suite content - the same input always yields
// the same generated function names, which is what makes delta-based
// regeneration safe.
//
// Unknown JSON fields are ignored so newer spec files remain loadable
// by older generators.
package spec
