// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vicas-tui/internal/cas"
	"github.com/jeranaias/vicas-tui/internal/repository"
	"github.com/jeranaias/vicas-tui/internal/ui/components"
	"github.com/jeranaias/vicas-tui/internal/ui/styles"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case DocumentLoadedMsg:
		return m.handleLoaded(msg)

	case DocumentFailedMsg:
		return m.handleLoadFailed(msg)

	case ColumnCopiedMsg:
		m.table.SetHotColumn(msg.Column)
		m.toasts.AddSuccess(CopiedTitle,
			fmt.Sprintf("Coluna '%s' copiada com sucesso.", msg.Column.PrettyName()))
		return m, m.startToastTick()

	case ClipboardPastedMsg:
		if m.state != StateEntry {
			return m, nil
		}
		return m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(msg.Text), Paste: true})

	case CopyFailedMsg:
		m.toasts.AddError(CopyErrorTitle,
			fmt.Sprintf("Não foi possível copiar a coluna '%s': %v", msg.Column.PrettyName(), msg.Err))
		return m, m.startToastTick()

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		m.toastTick = false
		return m, nil

	case ScrollFrameMsg:
		return m.handleScrollFrame(msg)

	case HighlightExpiredMsg:
		if id, ok := m.highlights[msg.Row]; ok && id == msg.ID {
			delete(m.highlights, msg.Row)
			m.table.Unhighlight(msg.Row)
			m.refreshBody()
		}
		return m, nil
	}

	if m.state == StateEntry {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// LOADING
// =============================================================================

func (m Model) handleLoaded(msg DocumentLoadedMsg) (tea.Model, tea.Cmd) {
	m.doc = msg.Doc
	m.spinner.Stop()
	m.errDisplay.Hide()
	m.state = StateEntry
	m.layoutViewport()
	return m, m.input.Focus()
}

func (m Model) handleLoadFailed(msg DocumentFailedMsg) (tea.Model, tea.Cmd) {
	m.spinner.Stop()
	m.state = StateError
	m.errDisplay.Show(repository.UserMessage(msg.Err))
	return m, nil
}

func (m Model) retry() (tea.Model, tea.Cmd) {
	log.Printf("LOAD_RETRY | source=%s", m.repo.Describe())
	m.errDisplay.Hide()
	m.state = StateLoading
	return m, tea.Batch(m.spinner.Start(), loadCmd(m.ctx, m.repo))
}

// =============================================================================
// LAYOUT
// =============================================================================

const (
	entryButtonLine  = 6
	resultsTitleLine = 0
	resultsChipLine  = 2
	resultsTableTop  = 4
)

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.input.Width = m.viewWidth() - lipgloss.Width(m.input.Prompt) - 6
	m.chips.SetWidth(m.viewWidth())
	m.help.Width = m.viewWidth()
	m.errDisplay.SetSize(m.viewWidth(), m.height-1)
	m.layoutViewport()
	m.refreshBody()
	return m, nil
}

func (m Model) viewWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// bodyTop is the screen line of the first table body row.
func (m Model) bodyTop() int {
	return resultsTableTop + m.table.HeaderHeight()
}

// layoutViewport sizes the body viewport to what the header, footer and
// help leave free.
func (m *Model) layoutViewport() {
	m.viewport.Width = m.viewWidth()
	if m.height <= 0 {
		m.viewport.Height = m.table.Len()
		return
	}
	h := m.height - m.bodyTop() - 1 - lipgloss.Height(m.footerView()) - lipgloss.Height(m.helpView())
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h
}

// refreshBody re-renders the table body into the viewport.
func (m *Model) refreshBody() {
	body := m.table.BodyView()
	if body != "" {
		body = lipgloss.NewStyle().MaxWidth(m.viewWidth()).Render(body)
	}
	m.viewport.SetContent(body)
}

func (m Model) maxOffset() int {
	if n := m.table.Len() - m.viewport.Height; n > 0 {
		return n
	}
	return 0
}

func (m Model) clearButtonX() int {
	x := m.viewWidth() - lipgloss.Width(ClearButton)
	if lo := lipgloss.Width(PageTitle) + 1; x < lo {
		x = lo
	}
	return x
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}

	switch m.state {
	case StateLoading:
		if key.Matches(msg, m.keys.QuitLetter) {
			return m.quit()
		}
		return m, nil

	case StateError:
		switch {
		case key.Matches(msg, m.keys.Retry):
			return m.retry()
		case key.Matches(msg, m.keys.QuitLetter):
			return m.quit()
		}
		return m, nil

	case StateEntry:
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Paste):
			return m, pasteCmd()
		case msg.Type == tea.KeyRunes:
			msg.Runes = pastedRunes(msg.Runes, msg.Paste)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	default:
		return m.handleResultsKey(msg)
	}
}

// pastedRunes folds CRLF into a single line break before the input turns
// line breaks into spaces. A paste also loses the line break a spreadsheet
// appends after its last cell.
func pastedRunes(runes []rune, paste bool) []rune {
	text := cas.NormalizeLineBreaks(string(runes))
	if paste {
		text = strings.TrimRight(text, "\n")
	}
	return []rune(text)
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Clear):
		return m.clear()

	case key.Matches(msg, m.keys.QuitLetter):
		return m.quit()

	case key.Matches(msg, m.keys.PrevChip):
		m.chips.Prev()

	case key.Matches(msg, m.keys.NextChip):
		m.chips.Next()

	case key.Matches(msg, m.keys.Jump):
		if row := m.chips.Focused(); row >= 0 {
			return m.jumpTo(row)
		}

	case key.Matches(msg, m.keys.Copy):
		c, err := vi.ParseColumn(msg.String())
		if err == nil {
			return m, copyColumnCmd(m.results, c)
		}

	case key.Matches(msg, m.keys.Up):
		m.stopScroll()
		m.viewport.LineUp(1)

	case key.Matches(msg, m.keys.Down):
		m.stopScroll()
		m.viewport.LineDown(1)

	case key.Matches(msg, m.keys.PageUp):
		m.stopScroll()
		m.viewport.ViewUp()

	case key.Matches(msg, m.keys.PageDown):
		m.stopScroll()
		m.viewport.ViewDown()

	case key.Matches(msg, m.keys.Home):
		m.stopScroll()
		m.viewport.GotoTop()

	case key.Matches(msg, m.keys.End):
		m.stopScroll()
		m.viewport.GotoBottom()

	case key.Matches(msg, m.keys.ColsLeft):
		if m.table.ScrollColumns(-1) {
			m.refreshBody()
		}

	case key.Matches(msg, m.keys.ColsRight):
		if m.table.ScrollColumns(1) {
			m.refreshBody()
		}

	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.Clear()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.layoutViewport()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

// =============================================================================
// MOUSE
// =============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse {
		return m, nil
	}

	switch msg.Type {
	case tea.MouseWheelUp:
		if m.state == StateResults {
			m.stopScroll()
			m.viewport.LineUp(3)
		}
	case tea.MouseWheelDown:
		if m.state == StateResults {
			m.stopScroll()
			m.viewport.LineDown(3)
		}
	case tea.MouseLeft:
		return m.handleClick(msg.X, msg.Y)
	}
	return m, nil
}

func (m Model) handleClick(x, y int) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateEntry:
		if y == entryButtonLine && x < lipgloss.Width(SearchButton) {
			return m.submit()
		}

	case StateResults:
		switch y {
		case resultsTitleLine:
			if x >= m.clearButtonX() {
				return m.clear()
			}
		case resultsChipLine:
			if row, ok := m.chips.ChipAt(x); ok {
				return m.jumpTo(row)
			}
		case resultsTableTop + m.table.LabelLine():
			if c, ok := m.table.ColumnAt(x); ok {
				return m, copyColumnCmd(m.results, c)
			}
		}
	}
	return m, nil
}

// =============================================================================
// STATE TRANSITIONS
// =============================================================================

// submit runs the lookup. Input that yields no entries keeps the entry
// screen and the text.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.doc == nil {
		return m, nil
	}

	value := m.input.Value()
	results := cas.Search(value, m.doc.VI)
	log.Printf("SEARCH | entries=%d cas=%d missing=%d", results.Len(), len(results.CAS()), len(results.Missing()))
	if results.IsEmpty() {
		return m, nil
	}

	m.results = results
	m.state = StateResults
	m.input.Blur()

	m.chips.SetEntries(results.Entries())
	m.chips.SetActive(true)
	m.table.SetResults(results, m.doc.LastUpdated)
	m.highlights = make(map[int]int)
	m.stopScroll()

	m.layoutViewport()
	m.refreshBody()
	m.viewport.GotoTop()
	return m, nil
}

// clear returns to the entry screen: input reset, row registry emptied and
// the pending highlight timer cancelled.
func (m Model) clear() (tea.Model, tea.Cmd) {
	log.Printf("CLEAR | entries=%d", m.results.Len())

	m.highlighter.stop()
	m.highlights = make(map[int]int)
	m.stopScroll()

	m.results = cas.Results{}
	m.chips.Clear()
	m.table.Clear()
	m.viewport.SetContent("")
	m.viewport.GotoTop()

	m.input.Reset()
	m.state = StateEntry
	return m, m.input.Focus()
}

// jumpTo scrolls row to the top of the viewport and highlights it.
func (m Model) jumpTo(row int) (tea.Model, tea.Cmd) {
	line, ok := m.table.RowLine(row)
	if !ok {
		return m, nil
	}
	m.chips.Focus(row)

	target := line
	if limit := m.maxOffset(); target > limit {
		target = limit
	}

	var cmds []tea.Cmd
	m.stopScroll()
	if target != m.viewport.YOffset {
		m.scrollFrames = styles.ScrollFrames(m.viewport.YOffset, target, styles.ScrollFrameCount, styles.EaseOutCubic)
		cmds = append(cmds, scrollFrameCmd(m.scrollSeq))
	}

	ctx, cancel, id := m.highlighter.start(m.ctx)
	m.highlights[row] = id
	m.table.Highlight(row)
	m.refreshBody()
	cmds = append(cmds, highlightCmd(ctx, cancel, id, row, m.highlightFor))

	log.Printf("JUMP | row=%d cas=%s offset=%d", row, m.results.At(row).CAS, target)
	return m, tea.Batch(cmds...)
}

func (m Model) handleScrollFrame(msg ScrollFrameMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.scrollSeq || len(m.scrollFrames) == 0 {
		return m, nil
	}

	m.viewport.SetYOffset(m.scrollFrames[0])
	m.scrollFrames = m.scrollFrames[1:]
	if len(m.scrollFrames) > 0 {
		return m, scrollFrameCmd(m.scrollSeq)
	}
	return m, nil
}

// stopScroll abandons a running smooth scroll.
func (m *Model) stopScroll() {
	m.scrollSeq++
	m.scrollFrames = nil
}

func (m *Model) startToastTick() tea.Cmd {
	if m.toastTick {
		return nil
	}
	m.toastTick = true
	return components.ToastTickCmd()
}
