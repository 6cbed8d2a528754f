// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/jeranaias/vicas-tui/internal/vi"
)

// FileRepository reads the reference document from a JSON file on every
// Load, so edits to the file are picked up without a restart.
type FileRepository struct {
	path string
}

// NewFileRepository creates a repository reading path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path returns the file being read.
func (r *FileRepository) Path() string {
	return r.path
}

// Describe returns the file path.
func (r *FileRepository) Describe() string {
	return "file://" + r.path
}

// Load reads and decodes the document.
func (r *FileRepository) Load(ctx context.Context) (*vi.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Type: ErrTypeTimeout, Message: "load cancelled", Cause: err}
	}
	return ReadDocument(r.path)
}

// Record reads the document and returns one record.
func (r *FileRepository) Record(ctx context.Context, cas string) (vi.Record, error) {
	doc, err := r.Load(ctx)
	if err != nil {
		return vi.Record{}, err
	}
	return recordFromDocument(doc, cas)
}

// ReadDocument decodes a reference document from a JSON file.
func ReadDocument(path string) (*vi.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FetchError{Type: ErrTypeUnavailable, Message: "reference file not found", Cause: err}
		}
		return nil, &FetchError{Type: ErrTypeUnavailable, Message: "failed to read reference file", Cause: err}
	}
	return DecodeDocument(data)
}

// DecodeDocument parses and validates a reference document.
func DecodeDocument(data []byte) (*vi.Document, error) {
	var doc vi.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FetchError{Type: ErrTypeInvalidResponse, Message: "failed to decode reference document", Cause: err}
	}
	if err := doc.Validate(); err != nil {
		return nil, &FetchError{Type: ErrTypeInvalidResponse, Message: "invalid reference document", Cause: err}
	}
	return &doc, nil
}
