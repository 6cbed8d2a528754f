// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vicas-tui/internal/cas"
	"github.com/jeranaias/vicas-tui/internal/ui/styles"
)

// =============================================================================
// CHIP STRIP
// =============================================================================

const (
	chipGapGlyph  = "·"
	chipMoreLeft  = "‹ "
	chipMoreRight = " ›"
	chipSeparator = " "
)

// Chip is one CAS (or gap) in the strip. Index is the entry index in the
// results, which is also the table row.
type Chip struct {
	Index int
	Label string
	Gap   bool
}

// ChipStrip lists the searched CAS numbers in table order. The strip is
// anchored on the right: when it overflows, the initial window shows the
// last chips and the focus starts on the right-most one.
type ChipStrip struct {
	chips  []Chip
	widths []int
	focus  int
	offset int
	end    int
	width  int
	active bool
	theme  *styles.Theme
}

// NewChipStrip creates an empty strip.
func NewChipStrip(theme *styles.Theme) ChipStrip {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	return ChipStrip{theme: theme, focus: -1}
}

// SetEntries rebuilds the strip from results.
func (s *ChipStrip) SetEntries(entries []cas.Entry) {
	s.chips = make([]Chip, len(entries))
	for i, e := range entries {
		s.chips[i] = Chip{Index: i, Label: e.CAS, Gap: e.IsGap()}
	}
	s.measure()

	s.focus = -1
	for i := len(s.chips) - 1; i >= 0; i-- {
		if !s.chips[i].Gap {
			s.focus = i
			break
		}
	}
	s.anchorRight(len(s.chips))
}

// Clear empties the strip.
func (s *ChipStrip) Clear() {
	s.chips = nil
	s.widths = nil
	s.focus = -1
	s.offset, s.end = 0, 0
}

// SetWidth sets the available width and re-anchors the window on the focus.
func (s *ChipStrip) SetWidth(width int) {
	s.width = width
	s.anchorRight(len(s.chips))
	if s.focus >= 0 {
		s.ensureVisible(s.focus)
	}
}

// SetActive toggles the focus ring.
func (s *ChipStrip) SetActive(active bool) {
	s.active = active
}

// Len returns the number of chips, gaps included.
func (s ChipStrip) Len() int {
	return len(s.chips)
}

// Chips returns a copy of the chips.
func (s ChipStrip) Chips() []Chip {
	out := make([]Chip, len(s.chips))
	copy(out, s.chips)
	return out
}

// Focused returns the focused entry index, or -1 when nothing can be focused.
func (s ChipStrip) Focused() int {
	return s.focus
}

// Window returns the half-open range of visible chips.
func (s ChipStrip) Window() (int, int) {
	return s.offset, s.end
}

// Focus moves the focus to entry i. Gap chips cannot take focus.
func (s *ChipStrip) Focus(i int) bool {
	if i < 0 || i >= len(s.chips) || s.chips[i].Gap {
		return false
	}
	s.focus = i
	s.ensureVisible(i)
	return true
}

// Next moves the focus to the next non-gap chip.
func (s *ChipStrip) Next() {
	for i := s.focus + 1; i < len(s.chips); i++ {
		if s.Focus(i) {
			return
		}
	}
}

// Prev moves the focus to the previous non-gap chip.
func (s *ChipStrip) Prev() {
	for i := s.focus - 1; i >= 0; i-- {
		if s.Focus(i) {
			return
		}
	}
}

// ChipAt returns the entry index of the chip drawn at column x of the
// strip line. Gaps and the overflow arrows are not hits.
func (s ChipStrip) ChipAt(x int) (int, bool) {
	pos := 0
	if s.offset > 0 {
		pos = lipgloss.Width(chipMoreLeft)
	}
	for i := s.offset; i < s.end; i++ {
		w := s.widths[i]
		if x >= pos && x < pos+w {
			if s.chips[i].Gap {
				return 0, false
			}
			return s.chips[i].Index, true
		}
		pos += w + lipgloss.Width(chipSeparator)
	}
	return 0, false
}

// View renders the visible window of the strip.
func (s ChipStrip) View() string {
	if len(s.chips) == 0 {
		return ""
	}

	parts := make([]string, 0, s.end-s.offset)
	for i := s.offset; i < s.end; i++ {
		parts = append(parts, s.renderChip(i))
	}

	var b strings.Builder
	if s.offset > 0 {
		b.WriteString(s.theme.ChipMore.Render(chipMoreLeft))
	}
	b.WriteString(strings.Join(parts, chipSeparator))
	if s.end < len(s.chips) {
		b.WriteString(s.theme.ChipMore.Render(chipMoreRight))
	}
	return b.String()
}

func (s ChipStrip) renderChip(i int) string {
	c := s.chips[i]
	if c.Gap {
		return s.theme.ChipGap.Render(chipGapGlyph)
	}
	if s.active && i == s.focus {
		return s.theme.ChipFocused.Render(c.Label)
	}
	return s.theme.Chip.Render(c.Label)
}

func (s *ChipStrip) measure() {
	s.widths = make([]int, len(s.chips))
	for i := range s.chips {
		s.widths[i] = lipgloss.Width(s.renderChip(i))
	}
	// The focused style must not change the chip width.
	for i, c := range s.chips {
		if !c.Gap {
			if w := lipgloss.Width(s.theme.ChipFocused.Render(c.Label)); w > s.widths[i] {
				s.widths[i] = w
			}
		}
	}
}

// avail returns the width left for chips given which arrows are drawn.
func (s ChipStrip) avail(left, right bool) int {
	if s.width <= 0 {
		return 1 << 30
	}
	w := s.width
	if left {
		w -= lipgloss.Width(chipMoreLeft)
	}
	if right {
		w -= lipgloss.Width(chipMoreRight)
	}
	return w
}

// span returns the width of chips [from, to) joined by separators.
func (s ChipStrip) span(from, to int) int {
	total := 0
	for i := from; i < to; i++ {
		if i > from {
			total += lipgloss.Width(chipSeparator)
		}
		total += s.widths[i]
	}
	return total
}

// anchorRight makes end the last visible chip boundary and fits as many
// chips as possible to its left.
func (s *ChipStrip) anchorRight(end int) {
	s.end = end
	s.offset = end
	for s.offset > 0 {
		right := end < len(s.chips)
		left := s.offset-1 > 0
		if s.span(s.offset-1, end) > s.avail(left, right) && s.offset < end {
			break
		}
		s.offset--
	}
}

// anchorLeft makes offset the first visible chip and fits as many chips as
// possible to its right.
func (s *ChipStrip) anchorLeft(offset int) {
	s.offset = offset
	s.end = offset
	for s.end < len(s.chips) {
		left := offset > 0
		right := s.end+1 < len(s.chips)
		if s.span(offset, s.end+1) > s.avail(left, right) && s.end > offset {
			break
		}
		s.end++
	}
}

func (s *ChipStrip) ensureVisible(i int) {
	switch {
	case i < s.offset:
		s.anchorLeft(i)
	case i >= s.end:
		s.anchorRight(i + 1)
	}
}
