// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/vicas-tui/internal/vi"
)

// =============================================================================
// SCHEMA
// =============================================================================

// Schema is the layout of a reference snapshot. Columns mirror the JSON
// keys of vi.Record; NULL means no regulated value.
const Schema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS vi (
	cas             TEXT PRIMARY KEY,
	vrq             REAL,
	vp              REAL,
	agricola        REAL,
	residencial     REAL,
	industrial      REAL,
	vi              REAL,
	resident_soil   REAL,
	industrial_soil REAL,
	tap_water       REAL
);
`

const selectColumns = `cas, vrq, vp, agricola, residencial, industrial, vi, resident_soil, industrial_soil, tap_water`

// =============================================================================
// SQLITE REPOSITORY
// =============================================================================

// SQLiteRepository reads a snapshot database opened read-only.
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens the snapshot at path in read-only mode.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &FetchError{Type: ErrTypeUnavailable, Message: "snapshot not found", Cause: err}
	}

	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &FetchError{Type: ErrTypeUnavailable, Message: "failed to open snapshot", Cause: err}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &FetchError{Type: ErrTypeUnavailable, Message: "failed to open snapshot", Cause: err}
	}

	return &SQLiteRepository{db: db, path: path}, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Describe returns the snapshot path.
func (r *SQLiteRepository) Describe() string {
	return "sqlite://" + r.path
}

// Load reads every row of the snapshot.
func (r *SQLiteRepository) Load(ctx context.Context) (*vi.Document, error) {
	doc := &vi.Document{VI: vi.Dictionary{}}

	err := r.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'lastUpdated'`).Scan(&doc.LastUpdated)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, queryError(err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM vi ORDER BY cas`)
	if err != nil {
		return nil, queryError(err)
	}
	defer rows.Close()

	for rows.Next() {
		cas, rec, err := scanRecord(rows)
		if err != nil {
			return nil, queryError(err)
		}
		doc.VI[cas] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(err)
	}

	return doc, nil
}

// Record reads a single row.
func (r *SQLiteRepository) Record(ctx context.Context, cas string) (vi.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM vi WHERE cas = ?`, cas)
	_, rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return vi.Record{}, &FetchError{Type: ErrTypeNotFound, Message: "CAS " + cas + " not found"}
	}
	if err != nil {
		return vi.Record{}, queryError(err)
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (string, vi.Record, error) {
	var cas string
	var vals [9]sql.NullFloat64
	dest := []any{&cas}
	for i := range vals {
		dest = append(dest, &vals[i])
	}
	if err := s.Scan(dest...); err != nil {
		return "", vi.Record{}, err
	}

	var rec vi.Record
	for i, c := range vi.Columns() {
		if vals[i].Valid {
			rec.Set(c, vals[i].Float64)
		}
	}
	return cas, rec, nil
}

func queryError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &FetchError{Type: ErrTypeTimeout, Message: "snapshot query cancelled", Cause: err}
	}
	return &FetchError{Type: ErrTypeUnavailable, Message: "snapshot query failed", Cause: err}
}

// =============================================================================
// SNAPSHOT EXPORT
// =============================================================================

// WriteSQLite writes doc into a fresh snapshot at path, replacing any file
// already there.
func WriteSQLite(ctx context.Context, path string, doc *vi.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('lastUpdated', ?)`, doc.LastUpdated); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO vi (`+selectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for cas, rec := range doc.VI {
		args := []any{cas}
		for _, c := range vi.Columns() {
			if v, ok := rec.Value(c); ok {
				args = append(args, v)
			} else {
				args = append(args, nil)
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert %s: %w", cas, err)
		}
	}

	return tx.Commit()
}
