// Package delta implements incremental regeneration support: content
// fingerprinting of spec files and the persisted state that decides
// which specs are unchanged, changed, new or removed between runs.
//
// Fingerprints are 64-bit xxhash digests over whitespace-normalized
// spec bytes, so identical content always yields identical fingerprints
// and any content change is overwhelmingly likely to change the digest.
//
// The Store persists one Record per spec path in a JSON state file kept
// next to the generated output. It is read once at the start of a run
// and written once, atomically, at the end. A missing or corrupt state
// file degrades to "no prior state" and is never fatal. The store is a
// single-writer resource: concurrent generator runs against the same
// output directory are not supported.
package delta
