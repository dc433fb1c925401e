// Package watch provides change notification for manifest files. fsnotify
// watches directories, not files, so the watcher registers each target's
// parent directory and filters events down to the targets; editors that
// replace files on save (rename + create) are still observed that way.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/hooktools/hookman/logging"
)

// DefaultDebounce is the window during which repeated changes to the same
// file collapse into one notification.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a fixed set of files and invokes a callback when one of
// them changes.
type Watcher struct {
	watcher    *fsnotify.Watcher
	targets    map[string]string // resolved event path -> display path
	debounce   time.Duration
	lastChange map[string]time.Time
	mu         sync.Mutex
	logger     *logrus.Entry
	onChange   func(path string)
}

// New creates a Watcher for the given files. Paths are made absolute and
// symlinks are resolved so changes to a link target are reported under the
// path the caller asked for. The onChange callback runs on the watcher
// goroutine; it must not block for long.
func New(paths []string, debounce time.Duration, onChange func(string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger("watch")

	targets := make(map[string]string, len(paths))
	watchedDirs := make(map[string]bool)

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, err
		}

		resolved := abs
		if target, err := filepath.EvalSymlinks(abs); err == nil {
			resolved = target
		}
		targets[resolved] = abs
		if resolved != abs {
			// The un-resolved path still receives events when the file is
			// replaced rather than rewritten in place.
			targets[abs] = abs
		}

		for _, dir := range []string{filepath.Dir(abs), filepath.Dir(resolved)} {
			if watchedDirs[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				watcher.Close()
				return nil, err
			}
			watchedDirs[dir] = true
			logger.Debugf("Watching directory: %s", dir)
		}
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:    watcher,
		targets:    targets,
		debounce:   debounce,
		lastChange: make(map[string]time.Time),
		logger:     logger,
		onChange:   onChange,
	}, nil
}

// Start begins delivering change notifications. It blocks until the context
// is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			display, ok := w.targets[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			w.handleChange(display)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.watcher.Close()
			return
		}
	}
}

// handleChange delivers one notification per debounce window per file.
func (w *Watcher) handleChange(path string) {
	w.mu.Lock()
	elapsed := time.Since(w.lastChange[path])
	if elapsed < w.debounce {
		w.mu.Unlock()
		w.logger.Debugf("Debounced: %s (only %v since last change)", filepath.Base(path), elapsed)
		return
	}
	w.lastChange[path] = time.Now()
	w.mu.Unlock()

	w.logger.Infof("Manifest changed: %s", filepath.Base(path))

	if w.onChange != nil {
		w.onChange(path)
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
