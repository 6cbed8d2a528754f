// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vicas-tui/internal/ui/components"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// View renders the current screen.
func (m Model) View() string {
	switch m.state {
	case StateLoading:
		return m.viewLoading()
	case StateError:
		return m.viewError()
	case StateEntry:
		return m.compose(m.viewEntry())
	default:
		return m.compose(m.viewResults())
	}
}

func (m Model) viewLoading() string {
	if m.height <= 0 {
		return m.spinner.View()
	}
	return lipgloss.Place(m.viewWidth(), m.height, lipgloss.Center, lipgloss.Center, m.spinner.View())
}

func (m Model) viewError() string {
	return m.errDisplay.View() + "\n" + m.helpView()
}

// viewEntry renders the title, the prompt label, the input box and the
// search button. The button sits on entryButtonLine.
func (m Model) viewEntry() string {
	w := m.viewWidth()
	box := m.theme.InputBox.Width(w - 2).Render(m.input.View())
	button := m.theme.InputPrompt.Render(SearchButton) + "  " + m.theme.Help.Render("Enter")

	return strings.Join([]string{
		m.theme.Title.Render(PageTitle),
		"",
		m.theme.Label.Render(InputLabel),
		box,
		button,
	}, "\n")
}

// viewResults renders title, chip strip, the fixed table header and the
// scrolling body. Line positions match the resultsXxx constants.
func (m Model) viewResults() string {
	w := m.viewWidth()

	title := m.theme.Title.Render(PageTitle)
	clearBtn := m.theme.InputPrompt.Render(ClearButton)
	pad := m.clearButtonX() - lipgloss.Width(title)
	titleLine := title + strings.Repeat(" ", pad) + clearBtn

	subtitle := m.theme.Subtitle.Render(ResultsTitle)
	if !m.table.FitsIn(w) {
		hint := m.theme.Help.Render("< > mais colunas")
		if gap := w - lipgloss.Width(subtitle) - lipgloss.Width(hint); gap > 0 {
			subtitle += strings.Repeat(" ", gap) + hint
		}
	}

	header := lipgloss.NewStyle().MaxWidth(w).Render(m.table.HeaderView())

	return strings.Join([]string{
		titleLine,
		subtitle,
		m.chips.View(),
		"",
		header,
		m.viewport.View(),
	}, "\n")
}

func (m Model) footerView() string {
	lastUpdated := ""
	if m.doc != nil {
		lastUpdated = m.doc.LastUpdated
	}
	notes := strings.Join([]string{
		vi.NoteUSEPARefresh,
		vi.NoteUSEPASource,
		vi.NoteLastUpdated(lastUpdated),
		vi.NoteSumLegend,
	}, "\n")
	return m.theme.Footnote.Width(m.viewWidth()).Render(notes)
}

func (m Model) helpView() string {
	h := m.help
	h.ShowAll = m.showHelp
	return h.View(stateKeys{keys: m.keys, state: m.state})
}

// compose stacks top, the footer notes and the help line over the full
// height, then draws the toasts above the help line.
func (m Model) compose(top string) string {
	footer := m.footerView()
	helpText := m.helpView()

	lines := strings.Split(top, "\n")
	gap := 1
	if m.height > 0 {
		used := len(lines) + lipgloss.Height(footer) + lipgloss.Height(helpText)
		if m.height-used > gap {
			gap = m.height - used
		}
	}
	lines = append(lines, make([]string, gap)...)
	lines = append(lines, strings.Split(footer, "\n")...)
	helpStart := len(lines)
	lines = append(lines, strings.Split(helpText, "\n")...)

	toasts := m.toasts.GetToasts()
	if len(toasts) > 0 {
		overlay := strings.Split(components.RenderToastStack(toasts, m.viewWidth()), "\n")
		start := helpStart - len(overlay)
		if start < 0 {
			start = 0
		}
		for i, l := range overlay {
			if start+i < helpStart {
				lines[start+i] = l
			}
		}
	}

	return strings.Join(lines, "\n")
}
