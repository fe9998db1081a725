package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string, count *atomic.Int64) context.CancelFunc {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(path, 50*time.Millisecond, func(context.Context) {
		count.Add(1)
	})

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop after cancellation")
		}
	})

	// Give the watcher a moment to register its watches
	time.Sleep(100 * time.Millisecond)
	return cancel
}

func TestWatcherTriggersOnSpecWrite(t *testing.T) {
	dir := t.TempDir()
	var count atomic.Int64
	startWatcher(t, dir, &count)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0644))

	assert.Eventually(t, func() bool {
		return count.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond, "write to a spec file should trigger a pass")
}

func TestWatcherIgnoresNonSpecFiles(t *testing.T) {
	dir := t.TempDir()
	var count atomic.Int64
	startWatcher(t, dir, &count)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int64(0), count.Load())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0644))
	assert.Eventually(t, func() bool {
		return count.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	var count atomic.Int64
	startWatcher(t, dir, &count)

	path := filepath.Join(dir, "a.json")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return count.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)

	// The burst happened well inside one debounce window
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int64(1), count.Load(), "rapid writes should coalesce into one pass")
}

func TestWatcherSingleFileFiltersSiblings(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0644))

	var count atomic.Int64
	startWatcher(t, target, &count)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int64(0), count.Load(), "sibling spec files are not watched in single-file mode")

	require.NoError(t, os.WriteFile(target, []byte(`{"name":"s"}`), 0644))
	assert.Eventually(t, func() bool {
		return count.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherPicksUpNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	var count atomic.Int64
	startWatcher(t, dir, &count)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))
	// Allow the new directory watch to be registered
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "a.json"), []byte("{}"), 0644))
	assert.Eventually(t, func() bool {
		return count.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherMissingPath(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "absent"), 0, func(context.Context) {})
	err := w.Run(context.Background())
	require.Error(t, err)
}
