// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vicas-tui/internal/cas"
	"github.com/jeranaias/vicas-tui/internal/ui/styles"
	"github.com/jeranaias/vicas-tui/internal/util"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// =============================================================================
// VI TABLE
// =============================================================================

const (
	casHeader     = "CAS"
	cellPadding   = 1
	tableBorder   = "│"
	tableRuleLine = "─"
	tableRuleJoin = "┼"
)

// headerSpan is a header cell covering value columns [from, to].
type headerSpan struct {
	from, to int
	text     string
	style    lipgloss.Style
}

// VITable renders the results as a three-row header plus one body line per
// entry. The header and body are rendered separately so the body can live
// in a scrolling viewport under a fixed header.
type VITable struct {
	entries     []cas.Entry
	lastUpdated string
	theme       *styles.Theme

	// widths[0] is the CAS column, widths[1+c] the value column c.
	widths []int

	// rowLines maps entry index to its body line.
	rowLines   map[int]int
	highlights map[int]bool
	first      int
	hot        vi.Column
	hasHot     bool

	// noGlyph drops the copy glyph from labels where nothing is clickable.
	noGlyph bool
}

// NewVITable creates an empty table.
func NewVITable(theme *styles.Theme) VITable {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	t := VITable{theme: theme, highlights: make(map[int]bool)}
	t.layout()
	return t
}

// SetResults replaces the rows and rebuilds the row registry.
func (t *VITable) SetResults(results cas.Results, lastUpdated string) {
	t.entries = results.Entries()
	t.lastUpdated = lastUpdated
	t.highlights = make(map[int]bool)
	t.first = 0
	t.rowLines = make(map[int]int, len(t.entries))
	for i := range t.entries {
		t.rowLines[i] = i
	}
	t.layout()
}

// Clear removes every row and empties the row registry.
func (t *VITable) Clear() {
	t.entries = nil
	t.rowLines = nil
	t.highlights = make(map[int]bool)
	t.first = 0
	t.hasHot = false
	t.layout()
}

// Len returns the number of body rows.
func (t VITable) Len() int {
	return len(t.entries)
}

// RowLine returns the body line of entry i.
func (t VITable) RowLine(i int) (int, bool) {
	line, ok := t.rowLines[i]
	return line, ok
}

// Highlight marks entry i. Several rows may be marked at once.
func (t *VITable) Highlight(i int) {
	t.highlights[i] = true
}

// Unhighlight removes the mark from entry i.
func (t *VITable) Unhighlight(i int) {
	delete(t.highlights, i)
}

// IsHighlighted reports whether entry i is marked.
func (t VITable) IsHighlighted(i int) bool {
	return t.highlights[i]
}

// HighlightCount returns the number of marked rows.
func (t VITable) HighlightCount() int {
	return len(t.highlights)
}

// FirstColumn returns the first visible value column.
func (t VITable) FirstColumn() vi.Column {
	return vi.Column(t.first)
}

// ScrollColumns moves the first visible value column by delta, keeping at
// least one value column on screen. It reports whether the window moved.
func (t *VITable) ScrollColumns(delta int) bool {
	next := t.first + delta
	if next < 0 {
		next = 0
	}
	if last := len(vi.Columns()) - 1; next > last {
		next = last
	}
	moved := next != t.first
	t.first = next
	return moved
}

// FitsIn reports whether every column is visible within width.
func (t VITable) FitsIn(width int) bool {
	return t.first == 0 && t.Width() <= width
}

// visible returns the value columns drawn, in order.
func (t VITable) visible() []vi.Column {
	return vi.Columns()[t.first:]
}

// SetHotColumn emphasises the label of c, used for the last copied column.
func (t *VITable) SetHotColumn(c vi.Column) {
	t.hot = c
	t.hasHot = true
}

// HeaderHeight is the number of lines HeaderView renders.
func (t VITable) HeaderHeight() int {
	return 4
}

// LabelLine is the header line holding the clickable column labels.
func (t VITable) LabelLine() int {
	return 2
}

// Width returns the rendered width of a table line.
func (t VITable) Width() int {
	total := t.widths[0] + 2*cellPadding
	for _, c := range t.visible() {
		total += t.widths[1+int(c)] + 2*cellPadding + 1
	}
	return total
}

// ColumnAt returns the value column whose label is drawn at column x of the
// label line. The CAS column is not a hit.
func (t VITable) ColumnAt(x int) (vi.Column, bool) {
	pos := t.widths[0] + 2*cellPadding + 1
	for _, c := range t.visible() {
		w := t.widths[1+int(c)] + 2*cellPadding
		if x >= pos && x < pos+w {
			return c, true
		}
		pos += w + 1
	}
	return 0, false
}

// columnLabel is the label text of c including the copy glyph.
func columnLabel(c vi.Column) string {
	return c.Label() + " " + styles.ClipboardGlyph
}

// SetCopyGlyph shows or hides the copy glyph after each label.
func (t *VITable) SetCopyGlyph(show bool) {
	t.noGlyph = !show
	t.layout()
}

func (t VITable) label(c vi.Column) string {
	if t.noGlyph {
		return c.Label()
	}
	return columnLabel(c)
}

func (t VITable) spans() (provenance, medium []headerSpan) {
	provenance = []headerSpan{
		{0, int(vi.ColumnVI), vi.CETESBHeader, t.theme.Provenance},
		{int(vi.ColumnResidentSoil), int(vi.ColumnTapWater), vi.USEPAHeader(t.lastUpdated), t.theme.Provenance},
	}

	cols := vi.Columns()
	for i := 0; i < len(cols); {
		j := i
		for j+1 < len(cols) && cols[j+1].Medium() == cols[i].Medium() && cols[j+1].Agency() == cols[i].Agency() {
			j++
		}
		style := t.theme.SoilHeader
		if cols[i].Medium() == vi.MediumGroundwater {
			style = t.theme.WaterHeader
		}
		medium = append(medium, headerSpan{i, j, cols[i].Medium().Label(), style})
		i = j + 1
	}
	return provenance, medium
}

// layout computes column widths from labels, cells and header spans.
func (t *VITable) layout() {
	t.widths = make([]int, 1+len(vi.Columns()))
	t.widths[0] = util.StringWidth(casHeader)
	for _, c := range vi.Columns() {
		t.widths[1+int(c)] = util.StringWidth(t.label(c))
	}
	for _, e := range t.entries {
		if w := util.StringWidth(e.CAS); w > t.widths[0] {
			t.widths[0] = w
		}
		for _, c := range vi.Columns() {
			if w := util.StringWidth(e.Cell(c)); w > t.widths[1+int(c)] {
				t.widths[1+int(c)] = w
			}
		}
	}

	provenance, medium := t.spans()
	for _, s := range append(provenance, medium...) {
		need := util.StringWidth(s.text) + 2*cellPadding
		if have := t.spanWidth(s.from, s.to); need > have {
			t.widths[1+s.to] += need - have
		}
	}
}

// spanWidth is the drawn width of value columns [from, to] including the
// borders between them.
func (t VITable) spanWidth(from, to int) int {
	total := 0
	for c := from; c <= to; c++ {
		total += t.widths[1+c] + 2*cellPadding
	}
	return total + (to - from)
}

func (t VITable) border() string {
	return t.theme.TableBorder.Render(tableBorder)
}

func (t VITable) cell(text string, width int, style lipgloss.Style) string {
	pad := strings.Repeat(" ", cellPadding)
	return style.Render(pad + util.Center(text, width) + pad)
}

func (t VITable) spanRow(spans []headerSpan) string {
	parts := []string{t.cell("", t.widths[0], lipgloss.NewStyle())}
	for _, s := range spans {
		if s.to < t.first {
			continue
		}
		if s.from < t.first {
			s.from = t.first
		}
		w := t.spanWidth(s.from, s.to)
		parts = append(parts, s.style.Render(util.Center(s.text, w)))
	}
	return strings.Join(parts, t.border())
}

// HeaderView renders the provenance row, the medium row, the label row and
// a rule.
func (t VITable) HeaderView() string {
	provenance, medium := t.spans()

	labels := []string{t.cell(casHeader, t.widths[0], t.theme.ColumnLabel)}
	for _, c := range t.visible() {
		style := t.theme.ColumnLabel
		if t.hasHot && c == t.hot {
			style = t.theme.ColumnLabelHot
		}
		labels = append(labels, t.cell(t.label(c), t.widths[1+int(c)], style))
	}

	rule := []string{strings.Repeat(tableRuleLine, t.widths[0]+2*cellPadding)}
	for _, c := range t.visible() {
		rule = append(rule, strings.Repeat(tableRuleLine, t.widths[1+int(c)]+2*cellPadding))
	}

	return strings.Join([]string{
		t.spanRow(provenance),
		t.spanRow(medium),
		strings.Join(labels, t.border()),
		t.theme.TableBorder.Render(strings.Join(rule, tableRuleJoin)),
	}, "\n")
}

// RowView renders the body line of entry i.
func (t VITable) RowView(i int) string {
	e := t.entries[i]
	hl := t.highlights[i]

	casText := e.CAS
	if e.IsGap() {
		casText = ""
	}
	casStyle := t.theme.CASCell
	if hl {
		casStyle = t.theme.HighlightedCell.Bold(true)
	}
	parts := []string{t.cell(casText, t.widths[0], casStyle)}

	for _, c := range t.visible() {
		text := e.Cell(c)
		style := t.theme.Cell
		switch {
		case hl:
			style = t.theme.HighlightedCell
		case text == vi.Placeholder:
			style = t.theme.MissingCell
		}
		parts = append(parts, t.cell(text, t.widths[1+int(c)], style))
	}

	sep := t.border()
	if hl {
		sep = t.theme.HighlightedCell.Render(tableBorder)
	}
	return strings.Join(parts, sep)
}

// BodyView renders every body line.
func (t VITable) BodyView() string {
	lines := make([]string, len(t.entries))
	for i := range t.entries {
		lines[i] = t.RowView(i)
	}
	return strings.Join(lines, "\n")
}

// View renders header and body together.
func (t VITable) View() string {
	if len(t.entries) == 0 {
		return t.HeaderView()
	}
	return t.HeaderView() + "\n" + t.BodyView()
}
