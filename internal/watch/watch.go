// Package watch re-runs an action when a file changes on disk.
package watch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when a zero debounce is configured.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches one file. The parent directory is watched rather than
// the file so that editors which save by renaming a temp file over the
// original are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// OnError receives action and watcher errors; watching continues.
	OnError func(error)

	mu       sync.Mutex
	lastHash []byte
	closed   bool
}

// New creates a watcher for path. The file must exist.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching parent directory: %w", err)
	}

	w := &Watcher{path: abs, debounce: debounce, watcher: fw}
	// Seed the hash so an unchanged save does not trigger the action.
	w.lastHash, _ = fileHash(abs)
	return w, nil
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is done, calling action after each burst of changes
// to the file has been quiet for the debounce interval. The action is
// skipped when the content hash did not change.
func (w *Watcher) Run(ctx context.Context, action func(context.Context) error) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.report(fmt.Errorf("watcher error: %w", err))
		case <-timer.C:
			if !w.changed() {
				continue
			}
			if err := action(ctx); err != nil {
				w.report(err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// changed reports whether the file content differs from the last run.
func (w *Watcher) changed() bool {
	sum, err := fileHash(w.path)
	if err != nil {
		// Mid-rename; the Create that follows re-arms the timer.
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if bytes.Equal(sum, w.lastHash) {
		return false
	}
	w.lastHash = sum
	return true
}

func (w *Watcher) report(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}

// Close stops the underlying watcher. Run returns once its channels close.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

func fileHash(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	return sum[:], nil
}
