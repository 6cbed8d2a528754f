// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"log"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vicas-tui/internal/cas"
	"github.com/jeranaias/vicas-tui/internal/repository"
	"github.com/jeranaias/vicas-tui/internal/ui/styles"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// clipboardWrite and clipboardRead are replaced in tests.
var (
	clipboardWrite = clipboard.WriteAll
	clipboardRead  = clipboard.ReadAll
)

// loadCmd fetches the reference document from repo.
func loadCmd(ctx context.Context, repo repository.Repository) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		doc, err := repo.Load(ctx)
		if err != nil {
			log.Printf("LOAD_FAILED | source=%s elapsed=%s err=%v", repo.Describe(), time.Since(start), err)
			return DocumentFailedMsg{Err: err}
		}
		log.Printf("LOAD_OK | source=%s entries=%d elapsed=%s", repo.Describe(), doc.Len(), time.Since(start))
		return DocumentLoadedMsg{Doc: doc}
	}
}

// copyColumnCmd writes column c of results to the clipboard. The export
// text is built before the command runs, so later state changes do not
// affect it.
func copyColumnCmd(results cas.Results, c vi.Column) tea.Cmd {
	text := cas.ExportColumn(results, c)
	lines := results.Len()
	return func() tea.Msg {
		if err := clipboardWrite(text); err != nil {
			log.Printf("COPY_FAILED | column=%s err=%v", c.Key(), err)
			return CopyFailedMsg{Column: c, Err: err}
		}
		log.Printf("COPY_OK | column=%s lines=%d", c.Key(), lines)
		return ColumnCopiedMsg{Column: c, Lines: lines}
	}
}

// pasteCmd reads the clipboard for the input field. A failed read pastes
// nothing.
func pasteCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := clipboardRead()
		if err != nil {
			log.Printf("PASTE_FAILED | err=%v", err)
			return nil
		}
		return ClipboardPastedMsg{Text: text}
	}
}

// scrollFrameCmd schedules the next frame of smooth scroll seq.
func scrollFrameCmd(seq int) tea.Cmd {
	return tea.Tick(styles.ScrollFrameInterval, func(time.Time) tea.Msg {
		return ScrollFrameMsg{Seq: seq}
	})
}

// highlightCmd waits d and then ends the highlight of row. A cancelled
// context ends the wait without a message.
func highlightCmd(ctx context.Context, cancel context.CancelFunc, id, row int, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		defer cancel()

		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			return HighlightExpiredMsg{ID: id, Row: row}
		}
	}
}
