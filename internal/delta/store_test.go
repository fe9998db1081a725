package delta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingStateFile(t *testing.T) {
	s := Open(t.TempDir())
	assert.Equal(t, 0, s.Len())
}

func TestOpenCorruptStateFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, StateFileName), []byte("{not json"), 0644))

	s := Open(dir)
	assert.Equal(t, 0, s.Len(), "corrupt state must degrade to no prior state")
	assert.Equal(t, DecisionNew, s.Decide("a.json", "ff"))
}

func TestDecideLifecycle(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)

	// First sighting
	assert.Equal(t, DecisionNew, s.Decide("specs/a.json", "aaaa"))

	s.Record("specs/a.json", "aaaa", nil, []string{"out/a_gen_test.go"})
	require.NoError(t, s.Persist())

	// Second run, no byte changes
	s2 := Open(dir)
	assert.Equal(t, DecisionUnchanged, s2.Decide("specs/a.json", "aaaa"))

	// After a byte change
	assert.Equal(t, DecisionChanged, s2.Decide("specs/a.json", "bbbb"))

	// Identical run after re-recording
	s2.Record("specs/a.json", "bbbb", nil, []string{"out/a_gen_test.go"})
	require.NoError(t, s2.Persist())
	s3 := Open(dir)
	assert.Equal(t, DecisionUnchanged, s3.Decide("specs/a.json", "bbbb"))
}

func TestPersistRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := Open(dir)
	s.Record("a.json", "1111", map[string]string{"t1": "aa"}, []string{"a_gen_test.go"})
	s.Record("b.json", "2222", nil, []string{"b_gen_test.go"})
	require.NoError(t, s.Persist())

	loaded := Open(dir)
	assert.Equal(t, 2, loaded.Len())

	rec, ok := loaded.Get("a.json")
	require.True(t, ok)
	assert.Equal(t, "1111", rec.Fingerprint)
	assert.Equal(t, []string{"a_gen_test.go"}, rec.Outputs)
	assert.Equal(t, map[string]string{"t1": "aa"}, rec.CaseFingerprints)
}

func TestRemovedSpecs(t *testing.T) {
	s := Open(t.TempDir())
	s.Record("a.json", "1", nil, nil)
	s.Record("b.json", "2", nil, nil)
	s.Record("c.json", "3", nil, nil)

	removed := s.RemovedSpecs(map[string]bool{"b.json": true})
	assert.Equal(t, []string{"a.json", "c.json"}, removed, "sorted, excluding current specs")

	s.Drop("a.json")
	_, ok := s.Get("a.json")
	assert.False(t, ok)
}

func TestPersistLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir)
	s.Record("a.json", "1", nil, nil)
	require.NoError(t, s.Persist())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, StateFileName, entries[0].Name())
}
