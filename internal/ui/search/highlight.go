// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"sync"
)

// highlightTimer tracks the most recently started row highlight.
// Earlier timers are not tracked and run to completion on their own.
// It must be used as a pointer so Bubble Tea model copies share the mutex.
type highlightTimer struct {
	mu     sync.Mutex
	nextID int
	id     int
	cancel context.CancelFunc
}

func newHighlightTimer() *highlightTimer {
	return &highlightTimer{}
}

// start derives a context for a new timer and makes it the tracked one.
// The returned cancel must be called by the timer when it finishes.
func (h *highlightTimer) start(parent context.Context) (context.Context, context.CancelFunc, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithCancel(parent)
	h.nextID++
	h.id = h.nextID
	h.cancel = cancel
	return ctx, cancel, h.id
}

// current returns the ID of the tracked timer, 0 when none.
func (h *highlightTimer) current() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.id
}

// stop cancels the tracked timer, if any. Safe to call repeatedly.
func (h *highlightTimer) stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.id = 0
}
