// Package match implements the partial recursive JSON comparison used
// by generated test files at execution time.
//
// The comparison is partial: only keys present in the expected value
// are checked against the actual value, so extra fields in a response
// never fail a test. Objects recurse key by key, arrays compare
// element-wise up to the expected length (the actual array must be at
// least that long), and leaves compare by value with numeric types
// unified.
//
// Key paths listed in Options.IgnorePaths are excluded from the
// comparison. Without wildcard mode a path must match at its exact
// location (subtrees included); with wildcard mode a bare key name is
// excluded at every nesting depth it appears.
//
// Generated code calls AssertPartial, which aggregates every mismatch
// into one failure report, and AssertStatus, which keeps status-code
// failures separate from body failures.
package match
