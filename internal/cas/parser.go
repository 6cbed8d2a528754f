// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cas turns free-form CAS input into ordered lookup results.
//
// The pipeline is Parse -> Lookup -> Results. Results feed the table view,
// the chip strip and the column exporter, which all index entries by
// position so duplicate CAS numbers stay distinct.
package cas

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Gap is the marker token standing for a run of extra whitespace in the
// user's input.
const Gap = " "

// HeaderLabel is the spreadsheet column title users often paste along with
// the numbers. It never produces a result entry.
const HeaderLabel = "CAS No."

// lineBreaks folds CRLF and lone CR into LF. Spreadsheets copy columns
// with CRLF, and a line break must count as a single separator.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeLineBreaks converts CRLF and CR line breaks to LF.
func NormalizeLineBreaks(s string) string {
	return lineBreaks.Replace(s)
}

// Token is one parsed element: either a CAS candidate or the gap marker.
type Token string

// IsGap reports whether t is the gap marker.
func (t Token) IsGap() bool {
	return t == Gap
}

// Tokens is an ordered token list.
type Tokens []Token

// CAS returns the non-gap tokens in order.
func (ts Tokens) CAS() []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		if !t.IsGap() {
			out = append(out, string(t))
		}
	}
	return out
}

// HasCAS reports whether at least one non-gap token is present.
func (ts Tokens) HasCAS() bool {
	for _, t := range ts {
		if !t.IsGap() {
			return true
		}
	}
	return false
}

// Parse splits input into CAS candidates and gap markers.
//
// The input is cut at every whitespace character that is directly followed
// by a non-whitespace character. A fragment that still holds whitespace is
// emitted with the whitespace removed and followed by a gap marker. Empty
// fragments and the "CAS No." header are dropped. CRLF counts as one
// line break.
func Parse(input string) Tokens {
	frags := splitFragments(NormalizeLineBreaks(input))
	tokens := make(Tokens, 0, len(frags))

	for i := 0; i < len(frags); i++ {
		frag := frags[i]
		stripped := stripSpace(frag)

		if isHeader(stripped, frags, i) {
			// The header is typed as two fragments; swallow the second one
			// together with any gap it would have produced.
			if stripped == "CAS" {
				i++
			}
			continue
		}

		if stripped != "" {
			tokens = append(tokens, Token(stripped))
		}
		if hasSpace(frag) {
			tokens = append(tokens, Gap)
		}
	}

	return tokens
}

// splitFragments cuts s before every non-space rune that follows a space
// rune. The space at the cut is consumed; any other whitespace stays with
// the preceding fragment.
func splitFragments(s string) []string {
	if s == "" {
		return nil
	}

	var frags []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		next := i + size
		if unicode.IsSpace(r) && next < len(s) {
			nr, _ := utf8.DecodeRuneInString(s[next:])
			if !unicode.IsSpace(nr) {
				frags = append(frags, s[start:i])
				start = next
			}
		}
		i = next
	}
	return append(frags, s[start:])
}

// isHeader reports whether the fragment at i (already stripped) starts the
// "CAS No." header label.
func isHeader(stripped string, frags []string, i int) bool {
	headerJoined := stripSpace(HeaderLabel)
	if stripped == headerJoined {
		return true
	}
	if stripped != "CAS" || i+1 >= len(frags) {
		return false
	}
	return stripSpace(frags[i+1]) == "No."
}

func stripSpace(s string) string {
	if !hasSpace(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
