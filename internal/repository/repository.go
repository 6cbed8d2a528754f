// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package repository loads the VI reference document from its sources.
//
// Three sources are supported:
//   - HTTPRepository fetches {base}/vi/cas from the reference data service
//   - FileRepository reads a local JSON document
//   - SQLiteRepository reads a read-only SQLite snapshot
//
// All of them return *FetchError values. When the service answered with its
// error envelope the *vi.APIError is available through errors.As.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/vicas-tui/internal/config"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// Repository provides the reference document and single-record lookups.
type Repository interface {
	// Load returns the whole reference document.
	Load(ctx context.Context) (*vi.Document, error)

	// Record returns the record for one CAS number, or an ErrTypeNotFound
	// error when it does not exist.
	Record(ctx context.Context, cas string) (vi.Record, error)

	// Describe names the source for logs and status lines.
	Describe() string
}

// Source kinds accepted by New.
const (
	KindHTTP   = "http"
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// New builds the repository selected by the source configuration.
func New(cfg config.SourceConfig) (Repository, error) {
	switch cfg.Kind {
	case KindHTTP, "":
		return NewHTTPRepository(&HTTPConfig{
			BaseURL:    cfg.Endpoint,
			Path:       cfg.Path,
			Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
			MaxRetries: cfg.MaxRetries,
		}), nil
	case KindFile:
		if cfg.File == "" {
			return nil, fmt.Errorf("source.file is required for kind %q", cfg.Kind)
		}
		return NewFileRepository(cfg.File), nil
	case KindSQLite:
		if cfg.SQLite == "" {
			return nil, fmt.Errorf("source.sqlite is required for kind %q", cfg.Kind)
		}
		return OpenSQLite(cfg.SQLite)
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}

// recordFromDocument serves single lookups for sources that hold the whole
// document.
func recordFromDocument(doc *vi.Document, cas string) (vi.Record, error) {
	rec, ok := doc.Lookup(cas)
	if !ok {
		return vi.Record{}, &FetchError{
			Type:    ErrTypeNotFound,
			Message: "CAS " + cas + " not found",
		}
	}
	return rec, nil
}
