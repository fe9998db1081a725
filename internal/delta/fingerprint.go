package delta

import (
	"encoding/json"
	"fmt"

	"qakit/internal/spec"

	"github.com/cespare/xxhash/v2"
	"github.com/tidwall/pretty"
)

// Fingerprint computes the content hash of one spec file. The raw bytes
// are whitespace-normalized (compacted) before hashing so reformatting
// a spec without changing its content does not force regeneration,
// while any semantic byte change produces a different digest.
// Pure function, no error conditions.
func Fingerprint(raw []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(pretty.Ugly(raw)))
}

// CaseFingerprint computes a secondary digest for a single test case
// over its canonical serialization (compact JSON with sorted object
// keys, which encoding/json produces for struct and map values).
// Case fingerprints are recorded in the delta state for observability;
// regeneration gating stays file-granular.
func CaseFingerprint(tc spec.TestCase) string {
	canonical, err := json.Marshal(tc)
	if err != nil {
		// A loaded test case always marshals; fall back to the name so
		// the fingerprint stays deterministic if it ever does not.
		canonical = []byte(tc.ID + "/" + tc.Name)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(canonical))
}
