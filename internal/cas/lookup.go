// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cas

import (
	"strings"

	"github.com/jeranaias/vicas-tui/internal/vi"
)

// Entry pairs a parsed token with its reference record.
type Entry struct {
	CAS    string
	Record vi.Record
	Found  bool
}

// IsGap reports whether the entry stands for a whitespace group.
func (e Entry) IsGap() bool {
	return e.CAS == Gap
}

// Cell returns the table text of column c for this entry.
func (e Entry) Cell(c vi.Column) string {
	if e.IsGap() {
		return vi.Placeholder
	}
	return vi.Cell(e.CAS, e.Record, c)
}

// Results is the ordered, immutable outcome of a lookup.
type Results struct {
	entries []Entry
}

// Lookup joins every token with dict. Unknown CAS numbers are kept with an
// empty record; duplicates are kept as separate entries.
func Lookup(tokens Tokens, dict vi.Dictionary) Results {
	if !tokens.HasCAS() {
		return Results{}
	}

	entries := make([]Entry, 0, len(tokens))
	for _, t := range tokens {
		code := string(t)
		if t.IsGap() {
			entries = append(entries, Entry{CAS: code})
			continue
		}
		rec, ok := dict[code]
		entries = append(entries, Entry{CAS: code, Record: rec, Found: ok})
	}
	return Results{entries: entries}
}

// Search parses input and looks every token up in dict.
func Search(input string, dict vi.Dictionary) Results {
	return Lookup(Parse(input), dict)
}

// Len returns the number of entries, gap entries included.
func (r Results) Len() int {
	return len(r.entries)
}

// IsEmpty reports whether the lookup produced nothing to show.
func (r Results) IsEmpty() bool {
	return len(r.entries) == 0
}

// At returns entry i.
func (r Results) At(i int) Entry {
	return r.entries[i]
}

// Entries returns a copy of the entries in order.
func (r Results) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// CAS returns the CAS codes of the non-gap entries in order.
func (r Results) CAS() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		if !e.IsGap() {
			out = append(out, e.CAS)
		}
	}
	return out
}

// Missing returns the CAS codes that had no record, in order.
func (r Results) Missing() []string {
	var out []string
	for _, e := range r.entries {
		if !e.IsGap() && !e.Found {
			out = append(out, e.CAS)
		}
	}
	return out
}

// LineBreak separates exported values. Spreadsheets on every platform accept
// CRLF when pasting.
const LineBreak = "\r\n"

// ExportColumn renders column c of every entry, one line per entry, in the
// same order as the table. Values use the decimal comma; absent values and
// gap entries export as "-". The sum marker is display-only and is omitted
// so the text pastes as numbers.
func ExportColumn(r Results, c vi.Column) string {
	lines := make([]string, len(r.entries))
	for i, e := range r.entries {
		v, ok := e.Record.Value(c)
		lines[i] = vi.FormatOptional(v, ok && !e.IsGap())
	}
	return strings.Join(lines, LineBreak)
}
