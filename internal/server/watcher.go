// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must stay quiet before a reload.
const DefaultDebounce = 300 * time.Millisecond

// ReloadFunc reloads the served document.
type ReloadFunc func(ctx context.Context) error

// Watcher reloads the document when its source file changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors and export jobs that replace the file (write temp, rename) are
// still seen.
type Watcher struct {
	path     string
	reload   ReloadFunc
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	pending time.Time // last change not yet reloaded; zero when idle
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string, reload ReloadFunc, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		path:     abs,
		reload:   reload,
		watcher:  fsw,
		debounce: DefaultDebounce,
		logger:   logger,
	}, nil
}

// SetDebounce overrides the quiet period. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	interval := w.debounce / 3
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Printf("WATCH_START | path=%s", w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.mu.Lock()
				w.pending = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("WATCH_ERROR | path=%s err=%v", w.path, err)

		case <-ticker.C:
			if w.due() {
				w.logger.Printf("WATCH_CHANGE | path=%s", w.path)
				// Reload logs its own outcome; a bad file keeps the old document.
				_ = w.reload(ctx)
			}
		}
	}
}

// relevant reports whether event touches the watched file with content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// due clears and reports a pending change that has been quiet long enough.
func (w *Watcher) due() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}
