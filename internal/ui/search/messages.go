// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import "github.com/jeranaias/vicas-tui/internal/vi"

// DocumentLoadedMsg carries the reference document once the source answered.
type DocumentLoadedMsg struct {
	Doc *vi.Document
}

// DocumentFailedMsg reports that the reference document could not be loaded.
type DocumentFailedMsg struct {
	Err error
}

// ColumnCopiedMsg reports a finished clipboard write. Column is the column
// clicked, captured when the copy started.
type ColumnCopiedMsg struct {
	Column vi.Column
	Lines  int
}

// CopyFailedMsg reports a clipboard write that failed.
type CopyFailedMsg struct {
	Column vi.Column
	Err    error
}

// ClipboardPastedMsg carries the clipboard text read for ctrl+v.
type ClipboardPastedMsg struct {
	Text string
}

// ScrollFrameMsg advances a smooth scroll. Frames from a superseded scroll
// carry an old Seq and are dropped.
type ScrollFrameMsg struct {
	Seq int
}

// HighlightExpiredMsg ends the highlight of Row started by timer ID.
type HighlightExpiredMsg struct {
	ID  int
	Row int
}
