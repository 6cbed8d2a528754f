// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jeranaias/vicas-tui/internal/repository"
	"github.com/jeranaias/vicas-tui/internal/util"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// isSnapshotPath reports whether path names a SQLite snapshot by extension.
func isSnapshotPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// HandleConvert handles "vicas convert <in> <out>". A snapshot input is
// written out as JSON; anything else is read as JSON and written as a
// snapshot.
func HandleConvert(args Args) error {
	p := NewArgParser(args.Raw)
	in, out := p.Positional(0), p.Positional(1)
	if in == "" || out == "" {
		return ErrMissingArgument("input/output", "vicas convert vi.json vi.db")
	}

	n, err := convertDocument(context.Background(), in, out)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("convert", map[string]interface{}{
			"input":   in,
			"output":  out,
			"records": n,
		}).Print()
	}
	fmt.Fprintf(stdout, "%s %s -> %s (%d registros)\n", SuccessStyle.Render("[OK]"), in, out, n)
	return nil
}

// convertDocument converts in to out and returns the number of records.
func convertDocument(ctx context.Context, in, out string) (int, error) {
	var (
		doc *vi.Document
		err error
	)

	if isSnapshotPath(in) {
		repo, openErr := repository.OpenSQLite(in)
		if openErr != nil {
			return 0, NewCommandError("convert", "open", in, openErr)
		}
		defer repo.Close()
		doc, err = repo.Load(ctx)
	} else {
		doc, err = repository.ReadDocument(in)
	}
	if err != nil {
		return 0, NewCommandError("convert", "read", in, err)
	}

	if isSnapshotPath(out) || !isSnapshotPath(in) {
		if err := repository.WriteSQLite(ctx, out, doc); err != nil {
			return 0, NewCommandError("convert", "write", out, err)
		}
		return doc.Len(), nil
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, NewCommandError("convert", "encode", out, err)
	}
	if err := util.AtomicWriteFile(out, append(data, '\n'), 0644); err != nil {
		return 0, NewCommandError("convert", "write", out, err)
	}
	return doc.Len(), nil
}
