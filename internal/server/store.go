// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/jeranaias/vicas-tui/internal/vi"
)

// snapshot is one immutable version of the served document. The encoded
// body is kept so GET /vi/cas never re-marshals the table.
type snapshot struct {
	doc      *vi.Document
	body     []byte
	etag     string
	loadedAt time.Time
}

// documentStore holds the current snapshot. Readers take the pointer under
// a read lock and never see a half-swapped document.
type documentStore struct {
	mu      sync.RWMutex
	current *snapshot
}

func newDocumentStore() *documentStore {
	return &documentStore{}
}

// Swap validates and encodes doc, then replaces the current snapshot.
// On error the previous snapshot stays in place.
func (s *documentStore) Swap(doc *vi.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid reference document: %w", err)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode reference document: %w", err)
	}

	snap := &snapshot{
		doc:      doc,
		body:     body,
		etag:     computeETag(body),
		loadedAt: time.Now(),
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
	return nil
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *documentStore) Snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// computeETag returns a strong ETag over the encoded document.
func computeETag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
