package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"qakit/pkg/logging"
)

// DefaultDebounce is how long the watcher waits for further filesystem
// events before triggering a regeneration pass. Editors commonly emit
// several events per save; the debounce collapses them into one pass.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a spec file or directory tree and invokes a callback
// after changes settle. Passes never overlap: events arriving while the
// callback runs are coalesced into one follow-up pass.
type Watcher struct {
	mu sync.Mutex

	// specPath is the file or directory being watched
	specPath string

	// debounce is how long to wait for additional changes
	debounce time.Duration

	// onChange runs one regeneration pass
	onChange func(ctx context.Context)

	// timer is the pending debounce timer, nil when idle
	timer *time.Timer

	// triggerCh hands fired timers over to the Run goroutine
	triggerCh chan struct{}
}

// NewWatcher creates a watcher over specPath. A zero debounce selects
// DefaultDebounce.
func NewWatcher(specPath string, debounce time.Duration, onChange func(ctx context.Context)) *Watcher {
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		specPath:  specPath,
		debounce:  debounce,
		onChange:  onChange,
		triggerCh: make(chan struct{}, 1),
	}
}

// Run blocks watching for changes until ctx is cancelled. It returns
// the watcher setup error, or nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	root, singleFile, err := w.watchRoot()
	if err != nil {
		return err
	}
	if err := addWatchTree(fsw, root); err != nil {
		return err
	}

	logging.Info("Watcher", "Watching %s for spec changes", w.specPath)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, event, singleFile)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logging.Error("Watcher", err, "Filesystem watcher error")

		case <-w.triggerCh:
			logging.Debug("Watcher", "Changes settled, running regeneration pass")
			w.onChange(ctx)
		}
	}
}

// watchRoot resolves the directory to watch. For a single spec file the
// parent directory is watched and events are filtered to that file.
func (w *Watcher) watchRoot() (root string, singleFile bool, err error) {
	info, err := os.Stat(w.specPath)
	if err != nil {
		return "", false, err
	}
	if info.IsDir() {
		return w.specPath, false, nil
	}
	return filepath.Dir(w.specPath), true, nil
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event, singleFile bool) {
	// New subdirectories join the watch so nested specs are picked up
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !singleFile {
			if err := addWatchTree(fsw, event.Name); err != nil {
				logging.Warn("Watcher", "Could not watch new directory %s: %v", event.Name, err)
			}
			return
		}
	}

	if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
		return
	}
	if singleFile && event.Name != w.specPath {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	logging.Debug("Watcher", "Spec change detected: %s %s", event.Op, event.Name)
	w.bump()
}

// bump resets the debounce timer. When it fires, a trigger is queued;
// the one-slot channel coalesces triggers raised during a running pass.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.triggerCh <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// addWatchTree registers path and all its subdirectories with the
// fsnotify watcher.
func addWatchTree(fsw *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(p); err != nil {
			return err
		}
		logging.Debug("Watcher", "Watching directory: %s", p)
		return nil
	})
}
