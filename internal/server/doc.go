// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server serves the VI reference document over HTTP.
//
// It is the small service the TUI and lookup commands read from when the
// source kind is "http". The document comes from a JSON file or a SQLite
// snapshot and is held in memory; a refreshed file is picked up by the
// watcher and swapped in atomically.
//
// # Endpoints
//
//   - GET /vi/cas        - the whole reference document (ETag, If-None-Match)
//   - GET /vi/cas/{cas}  - a single record, 404 envelope when unknown
//   - GET /health        - liveness, entry count and lastUpdated
//
// Every error is written as the service envelope
// {statusCode, errorMessage, timestamp, path}.
//
// # Usage
//
//	repo := repository.NewFileRepository("vi.json")
//	srv := server.New(cfg.Server, repo)
//	if err := srv.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
package server
