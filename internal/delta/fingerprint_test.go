package delta

import (
	"testing"

	"qakit/internal/spec"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintStable(t *testing.T) {
	raw := []byte(`{"name":"S","base_url":"http://x","tests":[]}`)

	assert.Equal(t, Fingerprint(raw), Fingerprint(raw))
	assert.Len(t, Fingerprint(raw), 16)
}

func TestFingerprintIgnoresWhitespace(t *testing.T) {
	compact := []byte(`{"name":"S","tests":[1,2]}`)
	formatted := []byte("{\n  \"name\": \"S\",\n  \"tests\": [1, 2]\n}\n")

	assert.Equal(t, Fingerprint(compact), Fingerprint(formatted),
		"reformatting must not change the fingerprint")
}

func TestFingerprintDetectsContentChange(t *testing.T) {
	a := []byte(`{"name":"S","tests":[{"id":"t1"}]}`)
	b := []byte(`{"name":"S","tests":[{"id":"t2"}]}`)

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestCaseFingerprintDeterministic(t *testing.T) {
	tc := spec.TestCase{
		ID:       "t1",
		Name:     "get root",
		Method:   "GET",
		Path:     "/",
		Expected: spec.Expectation{StatusCode: 200},
	}

	assert.Equal(t, CaseFingerprint(tc), CaseFingerprint(tc))

	tc.Path = "/other"
	first := CaseFingerprint(spec.TestCase{ID: "t1", Name: "get root", Method: "GET", Path: "/", Expected: spec.Expectation{StatusCode: 200}})
	assert.NotEqual(t, first, CaseFingerprint(tc))
}
