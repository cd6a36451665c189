// ABOUTME: Polling file watcher that reloads settings while the editor runs
// ABOUTME: Compares file mtimes each tick; a file appearing or disappearing also counts as a change

package config

import (
	"context"
	"os"
	"sync"
	"time"
)

const defaultWatchInterval = 2 * time.Second

// Watcher reports changes to a fixed set of files by polling their mtimes.
type Watcher struct {
	paths    []string
	onChange func()

	mu       sync.Mutex
	interval time.Duration
	mtimes   map[string]time.Time
}

// NewWatcher creates a watcher that calls onChange when any of paths changes.
// Paths that do not exist yet are watched for creation.
func NewWatcher(paths []string, onChange func()) *Watcher {
	w := &Watcher{
		paths:    paths,
		onChange: onChange,
		interval: defaultWatchInterval,
		mtimes:   make(map[string]time.Time),
	}
	w.snapshotLocked()
	return w
}

// SetInterval overrides the polling interval.
func (w *Watcher) SetInterval(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval = d
}

// Run polls until ctx is done. onChange runs on the polling goroutine.
func (w *Watcher) Run(ctx context.Context) {
	w.mu.Lock()
	interval := w.interval
	w.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check compares the files against the last snapshot and calls onChange
// once if anything differs. It reports whether a change was seen.
func (w *Watcher) Check() bool {
	w.mu.Lock()
	changed := w.changedLocked()
	if changed {
		w.snapshotLocked()
	}
	w.mu.Unlock()

	if changed {
		w.onChange()
	}
	return changed
}

// changedLocked compares current mtimes with the snapshot. Must hold mu.
func (w *Watcher) changedLocked() bool {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		prev, seen := w.mtimes[path]
		if err != nil {
			if seen {
				return true
			}
			continue
		}
		if !seen || !info.ModTime().Equal(prev) {
			return true
		}
	}
	return false
}

// snapshotLocked records current mtimes. Must hold mu.
func (w *Watcher) snapshotLocked() {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.mtimes, path)
			continue
		}
		w.mtimes[path] = info.ModTime()
	}
}
