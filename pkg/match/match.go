package match

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Options controls how ignore paths are applied during the comparison.
type Options struct {
	// IgnorePaths lists key paths excluded from comparison. Without
	// wildcard mode a path matches exactly (or as a subtree prefix:
	// "a.b" also excludes everything under a.b). In wildcard mode a
	// bare key name additionally matches that key at any nesting depth.
	IgnorePaths []string
	// Wildcard enables depth-independent matching of bare key names.
	Wildcard bool
}

// Mismatch describes one difference between expected and actual values.
type Mismatch struct {
	// Path is the dotted/bracketed key path of the difference
	Path string
	// Expected is the expected value at the path
	Expected interface{}
	// Actual is the actual value at the path (nil when missing)
	Actual interface{}
	// Reason is a human-readable classification of the difference
	Reason string
}

// String formats the mismatch for assertion failure output.
func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s (expected=%v, actual=%v)", m.Path, m.Reason, m.Expected, m.Actual)
}

// Match performs a partial recursive comparison of actual against
// expected: every key present in expected must exist in actual with an
// equal value, recursively; keys present only in actual never fail.
// Arrays are compared element-wise up to the expected length, and actual
// must have at least that many elements.
//
// All mismatches are aggregated. Traversal is depth-first with object
// keys visited in sorted order, so the result is deterministic for a
// given pair of values.
func Match(expected, actual interface{}, opts Options) []Mismatch {
	var mismatches []Mismatch
	walk(expected, actual, "", opts, &mismatches)
	return mismatches
}

func walk(expected, actual interface{}, path string, opts Options, out *[]Mismatch) {
	switch exp := expected.(type) {
	case map[string]interface{}:
		act, ok := actual.(map[string]interface{})
		if !ok {
			*out = append(*out, Mismatch{Path: displayPath(path), Expected: expected, Actual: actual,
				Reason: fmt.Sprintf("type mismatch: expected object, got %s", typeName(actual))})
			return
		}

		keys := make([]string, 0, len(exp))
		for k := range exp {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			childPath := joinPath(path, k)
			if ignored(childPath, opts) {
				continue
			}
			actVal, present := act[k]
			if !present {
				*out = append(*out, Mismatch{Path: childPath, Expected: exp[k], Actual: nil, Reason: "missing key"})
				continue
			}
			walk(exp[k], actVal, childPath, opts, out)
		}

	case []interface{}:
		act, ok := actual.([]interface{})
		if !ok {
			*out = append(*out, Mismatch{Path: displayPath(path), Expected: expected, Actual: actual,
				Reason: fmt.Sprintf("type mismatch: expected array, got %s", typeName(actual))})
			return
		}
		if len(act) < len(exp) {
			*out = append(*out, Mismatch{Path: displayPath(path), Expected: expected, Actual: actual,
				Reason: fmt.Sprintf("array too short: expected at least %d elements, got %d", len(exp), len(act))})
			return
		}
		for i, expItem := range exp {
			walk(expItem, act[i], fmt.Sprintf("%s[%d]", path, i), opts, out)
		}

	default:
		if ignored(path, opts) {
			return
		}
		if !equalScalar(expected, actual) {
			*out = append(*out, Mismatch{Path: displayPath(path), Expected: expected, Actual: actual, Reason: "value mismatch"})
		}
	}
}

// ignored reports whether a key path is excluded from comparison.
//
// Exact mode: a pattern matches its own path and every path beneath it.
// Wildcard mode additionally lets a bare key name (no dots) match that
// key at any nesting depth, with array indices stripped from the final
// segment.
func ignored(path string, opts Options) bool {
	if path == "" {
		return false
	}
	for _, pat := range opts.IgnorePaths {
		if pat == "" {
			continue
		}
		if path == pat || strings.HasPrefix(path, pat+".") || strings.HasPrefix(path, pat+"[") {
			return true
		}
		if opts.Wildcard && !strings.Contains(pat, ".") && finalSegment(path) == pat {
			return true
		}
	}
	return false
}

// finalSegment returns the last dotted segment of a path with any array
// index suffix removed: "a.b[2]" -> "b".
func finalSegment(path string) string {
	seg := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		seg = path[i+1:]
	}
	if i := strings.Index(seg, "["); i >= 0 {
		seg = seg[:i]
	}
	return seg
}

// equalScalar compares two leaf values. Numbers are compared by value
// regardless of how they were decoded (json.Number, float64, int), so
// expected values embedded by the generator and actual values decoded
// from a live response compare cleanly.
func equalScalar(expected, actual interface{}) bool {
	if expected == nil || actual == nil {
		return expected == nil && actual == nil
	}

	expNum, expOK := toFloat(expected)
	actNum, actOK := toFloat(actual)
	if expOK && actOK {
		return expNum == actNum
	}
	if expOK != actOK {
		return false
	}

	return expected == actual
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		if _, ok := toFloat(v); ok {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// displayPath substitutes "$" for the document root in failure output.
func displayPath(path string) string {
	if path == "" {
		return "$"
	}
	return path
}

// MustJSON parses a JSON document embedded by the generator. Numbers
// are decoded as json.Number to keep comparisons exact. It panics on
// invalid input, which can only happen if a generated file was edited
// by hand.
func MustJSON(s string) interface{} {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		panic(fmt.Sprintf("match.MustJSON: invalid embedded JSON: %v", err))
	}
	return v
}

// TestingT is the subset of *testing.T the assertion helpers need.
type TestingT interface {
	Helper()
	Errorf(format string, args ...interface{})
}

// AssertPartial runs Match and reports every mismatch as a single
// aggregated test failure. It returns true when the actual value
// partially matches the expected one. This is the entry point generated
// test files call.
func AssertPartial(t TestingT, expected, actual interface{}, opts Options) bool {
	t.Helper()

	mismatches := Match(expected, actual, opts)
	if len(mismatches) == 0 {
		return true
	}

	lines := make([]string, 0, len(mismatches))
	for _, m := range mismatches {
		lines = append(lines, "  "+m.String())
	}
	t.Errorf("response body does not match expected JSON (%s):\n%s",
		plural(len(mismatches), "mismatch", "mismatches"), strings.Join(lines, "\n"))
	return false
}

// AssertStatus reports a status-code mismatch separately from JSON
// mismatches.
func AssertStatus(t TestingT, expected, actual int) bool {
	t.Helper()
	if expected == actual {
		return true
	}
	t.Errorf("unexpected status code: expected %d, got %d", expected, actual)
	return false
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + pluralForm
}
