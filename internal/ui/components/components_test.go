// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vicas-tui/internal/cas"
	"github.com/jeranaias/vicas-tui/internal/ui/styles"
	"github.com/jeranaias/vicas-tui/internal/util"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

func testTheme() *styles.Theme {
	return styles.NewTheme("dark")
}

func testDict() vi.Dictionary {
	return vi.Dictionary{
		"50-00-0": {VRQ: vi.Float(1.5), TapWater: vi.Float(0.19)},
		"87-61-6": {VI: vi.Float(12)},
		"71-43-2": {VP: vi.Float(0.002), VI: vi.Float(5)},
	}
}

// =============================================================================
// TOAST TESTS
// =============================================================================

func TestToastManager_AddOrder(t *testing.T) {
	m := NewToastManager()
	first := m.AddSuccess("Copiado!", "a")
	second := m.AddError("Erro", "b")

	toasts := m.GetToasts()
	if len(toasts) != 2 {
		t.Fatalf("GetToasts() len = %d, want 2", len(toasts))
	}
	if toasts[0].ID != second || toasts[1].ID != first {
		t.Errorf("toasts should be newest first, got IDs %d, %d", toasts[0].ID, toasts[1].ID)
	}
	if toasts[0].Duration != ErrorToastDuration {
		t.Errorf("error toast duration = %v, want %v", toasts[0].Duration, ErrorToastDuration)
	}
}

func TestToastManager_MaxToasts(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 5; i++ {
		m.AddStatus("t", "")
	}
	if got := len(m.GetToasts()); got != 3 {
		t.Errorf("len = %d, want 3", got)
	}
}

func TestToastManager_RemoveAndClear(t *testing.T) {
	m := NewToastManager()
	id := m.AddSuccess("Copiado!", "")
	m.AddSuccess("Copiado!", "")

	m.RemoveToast(id)
	for _, toast := range m.GetToasts() {
		if toast.ID == id {
			t.Errorf("toast %d still present after RemoveToast", id)
		}
	}

	m.Clear()
	if m.HasToasts() {
		t.Error("HasToasts() = true after Clear")
	}
}

func TestToastManager_TickExpires(t *testing.T) {
	m := NewToastManager()
	old := NewToast(ToastKindSuccess, "old", "")
	old.CreatedAt = time.Now().Add(-time.Minute)
	m.AddToast(old)
	m.AddSuccess("fresh", "")

	active := m.TickToasts()
	if len(active) != 1 || active[0].Title != "fresh" {
		t.Errorf("TickToasts() = %+v, want only the fresh toast", active)
	}
}

func TestToastManager_SetDuration(t *testing.T) {
	m := NewToastManager()
	m.SetDuration(time.Second)
	m.AddSuccess("a", "")
	m.AddError("b", "")

	toasts := m.GetToasts()
	if toasts[1].Duration != time.Second {
		t.Errorf("success duration = %v, want 1s", toasts[1].Duration)
	}
	if toasts[0].Duration != ErrorToastDuration {
		t.Errorf("error duration = %v, want unchanged %v", toasts[0].Duration, ErrorToastDuration)
	}
}

func TestRenderToast(t *testing.T) {
	toast := NewToast(ToastKindSuccess, "Copiado!", "Coluna 'VI' copiada com sucesso.")
	out := RenderToast(toast, 80)
	for _, want := range []string{"Copiado!", "Coluna 'VI' copiada com sucesso.", styles.StatusIndicators.Success} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderToast() missing %q:\n%s", want, out)
		}
	}
	if RenderToastStack(nil, 80) != "" {
		t.Error("RenderToastStack(nil) should be empty")
	}
}

// =============================================================================
// ERROR DISPLAY TESTS
// =============================================================================

func TestErrorDisplay_Messages(t *testing.T) {
	tests := []struct {
		name string
		show func(e *ErrorDisplay)
		want string
	}{
		{"plain", func(e *ErrorDisplay) { e.Show("Serviço indisponível") }, "Serviço indisponível"},
		{"empty falls back", func(e *ErrorDisplay) { e.Show("  ") }, vi.FallbackErrorMessage},
		{"nil api error", func(e *ErrorDisplay) { e.ShowAPIError(nil) }, vi.FallbackErrorMessage},
		{"api error", func(e *ErrorDisplay) {
			e.ShowAPIError(&vi.APIError{StatusCode: 503, ErrorMessage: vi.Messages{"Base indisponível"}})
		}, "Base indisponível"},
		{"api error list", func(e *ErrorDisplay) {
			e.ShowAPIError(&vi.APIError{ErrorMessage: vi.Messages{"a", "b"}})
		}, "a; b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewErrorDisplay(testTheme())
			tt.show(&e)
			if !e.IsVisible() {
				t.Fatal("IsVisible() = false after Show")
			}
			if e.Message() != tt.want {
				t.Errorf("Message() = %q, want %q", e.Message(), tt.want)
			}
			view := e.View()
			if !strings.Contains(view, ErrorTitle) {
				t.Errorf("View() missing title %q", ErrorTitle)
			}
		})
	}
}

func TestErrorDisplay_Hidden(t *testing.T) {
	e := NewErrorDisplay(testTheme())
	if e.View() != "" {
		t.Error("hidden ErrorDisplay should render nothing")
	}
	e.Show("x")
	e.Hide()
	if e.IsVisible() {
		t.Error("IsVisible() = true after Hide")
	}
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinner(t *testing.T) {
	s := NewSpinner(testTheme())
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}
	if cmd := s.Start(); cmd == nil {
		t.Error("Start() should return a tick command")
	}
	if !strings.Contains(s.View(), LoadingMessage) {
		t.Errorf("View() = %q, want it to contain %q", s.View(), LoadingMessage)
	}
	s.Stop()
	if s.IsActive() {
		t.Error("IsActive() = true after Stop")
	}
}

func TestSpinner_RetryShowsAttempt(t *testing.T) {
	s := NewSpinner(testTheme())
	s.SetDetail("http://127.0.0.1:8787/vi/cas")

	s.Start()
	if strings.Contains(s.View(), "tentativa") {
		t.Errorf("first attempt should not be numbered: %q", s.View())
	}
	s.Stop()
	s.Start()
	if s.Attempts() != 2 {
		t.Errorf("Attempts() = %d, want 2", s.Attempts())
	}
	if !strings.Contains(s.View(), "http://127.0.0.1:8787/vi/cas (tentativa 2)") {
		t.Errorf("View() = %q, want the numbered source line", s.View())
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{90 * time.Second, "1m 30s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// =============================================================================
// CHIP STRIP TESTS
// =============================================================================

func chipEntries(codes ...string) []cas.Entry {
	tokens := make(cas.Tokens, len(codes))
	for i, c := range codes {
		tokens[i] = cas.Token(c)
	}
	return cas.Lookup(tokens, testDict()).Entries()
}

func TestChipStrip_NoOverflow(t *testing.T) {
	s := NewChipStrip(testTheme())
	s.SetEntries(chipEntries("50-00-0", cas.Gap, "71-43-2"))

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if from, to := s.Window(); from != 0 || to != 3 {
		t.Errorf("Window() = [%d,%d), want [0,3)", from, to)
	}
	if s.Focused() != 2 {
		t.Errorf("Focused() = %d, want the right-most chip 2", s.Focused())
	}

	chips := s.Chips()
	want := []Chip{
		{Index: 0, Label: "50-00-0"},
		{Index: 1, Label: cas.Gap, Gap: true},
		{Index: 2, Label: "71-43-2"},
	}
	for i, c := range chips {
		if c.Index != want[i].Index || c.Gap != want[i].Gap || (!c.Gap && c.Label != want[i].Label) {
			t.Errorf("Chips()[%d] = %+v, want %+v", i, c, want[i])
		}
	}
	chips[0].Label = "changed"
	if s.Chips()[0].Label != "50-00-0" {
		t.Error("Chips() should return a copy")
	}

	view := s.View()
	if strings.Index(view, "50-00-0") > strings.Index(view, "71-43-2") {
		t.Errorf("chips should keep table order, got %q", view)
	}
}

func TestChipStrip_FlippedWindow(t *testing.T) {
	s := NewChipStrip(testTheme())
	s.SetWidth(30)
	s.SetEntries(chipEntries("50-00-0", "50-00-0", "50-00-0", "87-61-6", "71-43-2"))

	// Each chip is 11 columns wide; 30 columns minus the left arrow fit two.
	if from, to := s.Window(); from != 3 || to != 5 {
		t.Fatalf("Window() = [%d,%d), want [3,5)", from, to)
	}
	if s.Focused() != 4 {
		t.Errorf("Focused() = %d, want 4", s.Focused())
	}
	if !strings.HasPrefix(s.View(), chipMoreLeft) {
		t.Errorf("View() should start with the overflow arrow, got %q", s.View())
	}

	s.Prev()
	s.Prev()
	if s.Focused() != 2 {
		t.Fatalf("Focused() = %d, want 2", s.Focused())
	}
	if from, _ := s.Window(); from != 2 {
		t.Errorf("window should follow the focus, starts at %d", from)
	}
}

func TestChipStrip_FocusSkipsGaps(t *testing.T) {
	s := NewChipStrip(testTheme())
	s.SetEntries(chipEntries("50-00-0", cas.Gap, "71-43-2"))

	s.Prev()
	if s.Focused() != 0 {
		t.Errorf("Prev() focus = %d, want 0", s.Focused())
	}
	if s.Focus(1) {
		t.Error("Focus(gap) should be refused")
	}
	s.Next()
	if s.Focused() != 2 {
		t.Errorf("Next() focus = %d, want 2", s.Focused())
	}
}

func TestChipStrip_ChipAt(t *testing.T) {
	s := NewChipStrip(testTheme())
	s.SetEntries(chipEntries("50-00-0", cas.Gap, "71-43-2"))

	chip := lipgloss.Width(testTheme().Chip.Render("50-00-0"))
	tests := []struct {
		x      int
		want   int
		wantOK bool
	}{
		{0, 0, true},
		{chip - 1, 0, true},
		{chip, 0, false},     // separator
		{chip + 1, 0, false}, // gap glyph
		{chip + 3, 2, true},
		{1000, 0, false},
	}
	for _, tt := range tests {
		got, ok := s.ChipAt(tt.x)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ChipAt(%d) = %d, %v; want %d, %v", tt.x, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestChipStrip_Clear(t *testing.T) {
	s := NewChipStrip(testTheme())
	s.SetEntries(chipEntries("50-00-0"))
	s.Clear()
	if s.Len() != 0 || s.Focused() != -1 || s.View() != "" {
		t.Errorf("Clear() left len=%d focus=%d", s.Len(), s.Focused())
	}
}

// =============================================================================
// VI TABLE TESTS
// =============================================================================

func newTestTable(codes ...string) VITable {
	tokens := make(cas.Tokens, len(codes))
	for i, c := range codes {
		tokens[i] = cas.Token(c)
	}
	table := NewVITable(testTheme())
	table.SetResults(cas.Lookup(tokens, testDict()), "Atualizado em maio de 2024")
	return table
}

func TestVITable_Header(t *testing.T) {
	table := newTestTable("50-00-0")
	header := table.HeaderView()

	lines := strings.Split(header, "\n")
	if len(lines) != table.HeaderHeight() {
		t.Fatalf("HeaderView() has %d lines, want %d", len(lines), table.HeaderHeight())
	}
	for _, want := range []string{vi.CETESBHeader, "USEPA, MAIO 2024"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("provenance row missing %q: %q", want, lines[0])
		}
	}
	if !strings.Contains(lines[1], vi.MediumSoil.Label()) || !strings.Contains(lines[1], vi.MediumGroundwater.Label()) {
		t.Errorf("medium row = %q", lines[1])
	}
	for _, c := range vi.Columns() {
		if !strings.Contains(lines[table.LabelLine()], columnLabel(c)) {
			t.Errorf("label row missing %q", columnLabel(c))
		}
	}
}

func TestVITable_LinesShareWidth(t *testing.T) {
	table := newTestTable("50-00-0", cas.Gap, "87-61-6", "999-99-9")
	want := table.Width()
	for i, line := range strings.Split(table.View(), "\n") {
		if got := lipgloss.Width(line); got != want {
			t.Errorf("line %d width = %d, want %d: %q", i, got, want, line)
		}
	}
}

func TestVITable_Rows(t *testing.T) {
	table := newTestTable("50-00-0", cas.Gap, "87-61-6", "999-99-9")

	if table.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", table.Len())
	}
	if row := table.RowView(0); !strings.Contains(row, "1,5") || !strings.Contains(row, "0,19") {
		t.Errorf("row 0 = %q, want 1,5 and 0,19", row)
	}
	if row := table.RowView(2); !strings.Contains(row, "12 *") {
		t.Errorf("row 2 = %q, want the sum marker", row)
	}
	if row := table.RowView(3); strings.Count(row, " "+vi.Placeholder+" ") != len(vi.Columns()) {
		t.Errorf("unknown CAS row = %q, want all placeholders", row)
	}
	if row := table.RowView(1); strings.Contains(row, "50-00-0") || strings.Count(row, " "+vi.Placeholder+" ") != len(vi.Columns()) {
		t.Errorf("gap row = %q, want a blank CAS cell and placeholders", row)
	}
}

func TestVITable_RowRegistry(t *testing.T) {
	table := newTestTable("50-00-0", "71-43-2")

	for i := 0; i < 2; i++ {
		if line, ok := table.RowLine(i); !ok || line != i {
			t.Errorf("RowLine(%d) = %d, %v", i, line, ok)
		}
	}
	if _, ok := table.RowLine(2); ok {
		t.Error("RowLine(2) should be unknown")
	}

	table.Highlight(1)
	table.Highlight(0)
	if !table.IsHighlighted(1) || table.HighlightCount() != 2 {
		t.Errorf("HighlightCount() = %d, want rows 0 and 1 marked", table.HighlightCount())
	}
	table.Unhighlight(0)
	if table.IsHighlighted(0) {
		t.Error("Unhighlight(0) left the mark")
	}

	table.Clear()
	if _, ok := table.RowLine(0); ok {
		t.Error("Clear() should empty the row registry")
	}
	if table.HighlightCount() != 0 {
		t.Error("Clear() should drop the highlights")
	}
}

func TestVITable_ScrollColumns(t *testing.T) {
	table := newTestTable("50-00-0", "87-61-6")
	full := table.Width()

	if !table.ScrollColumns(6) {
		t.Fatal("ScrollColumns(6) should move")
	}
	if table.FirstColumn() != vi.ColumnResidentSoil {
		t.Errorf("FirstColumn() = %v, want residentSoil", table.FirstColumn())
	}
	if table.Width() >= full || table.FitsIn(full) {
		t.Errorf("scrolled width = %d, full = %d", table.Width(), full)
	}

	header := table.HeaderView()
	if strings.Contains(header, vi.CETESBHeader) || !strings.Contains(header, "USEPA, MAIO 2024") {
		t.Errorf("scrolled header should only show the USEPA span:\n%s", header)
	}
	for i, line := range strings.Split(table.View(), "\n") {
		if got := lipgloss.Width(line); got != table.Width() {
			t.Errorf("line %d width = %d, want %d", i, got, table.Width())
		}
	}

	x := table.widths[0] + 2*cellPadding + 1
	if c, ok := table.ColumnAt(x); !ok || c != vi.ColumnResidentSoil {
		t.Errorf("ColumnAt(%d) = %v, %v; want residentSoil", x, c, ok)
	}

	table.ScrollColumns(100)
	if table.FirstColumn() != vi.ColumnTapWater {
		t.Errorf("FirstColumn() = %v, want the last column", table.FirstColumn())
	}
	table.ScrollColumns(-100)
	if table.ScrollColumns(-1) {
		t.Error("ScrollColumns(-1) at the first column should not move")
	}
}

func TestVITable_ColumnAt(t *testing.T) {
	table := newTestTable("50-00-0")
	line := strings.Split(table.HeaderView(), "\n")[table.LabelLine()]

	for _, c := range vi.Columns() {
		idx := strings.Index(line, columnLabel(c))
		if idx < 0 {
			t.Fatalf("label %q not found", columnLabel(c))
		}
		x := util.StringWidth(line[:idx])
		got, ok := table.ColumnAt(x)
		if !ok || got != c {
			t.Errorf("ColumnAt(%d) = %v, %v; want %v", x, got, ok, c)
		}
	}

	if _, ok := table.ColumnAt(0); ok {
		t.Error("ColumnAt(0) is the CAS column and should not be a hit")
	}
	if _, ok := table.ColumnAt(table.Width() + 5); ok {
		t.Error("ColumnAt past the table should not be a hit")
	}
}
