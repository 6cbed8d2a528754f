// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vicas-tui/internal/ui/styles"
)

// =============================================================================
// LOADING INDICATOR
// =============================================================================

// LoadingMessage is shown while the reference table is fetched.
const LoadingMessage = "Carregando valores de referência"

// Spinner is the loading indicator of the reference document. It counts
// load attempts so a retry after an error is visible as such.
type Spinner struct {
	model spinner.Model
	theme *styles.Theme

	source   string
	since    time.Time
	attempts int
	active   bool
}

// NewSpinner creates an inactive spinner with the ASCII line animation.
func NewSpinner(theme *styles.Theme) Spinner {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	m := spinner.New(spinner.WithSpinner(spinner.Spinner{
		Frames: styles.LineSpinner.Frames,
		FPS:    styles.LineSpinner.Duration(),
	}))
	m.Style = theme.Spinner
	return Spinner{model: m, theme: theme}
}

// SetDetail names the source being loaded, shown under the message.
func (s *Spinner) SetDetail(source string) {
	s.source = source
}

// Start begins a load attempt and returns the animation command.
func (s *Spinner) Start() tea.Cmd {
	s.active = true
	s.attempts++
	s.since = time.Now()
	return s.model.Tick
}

// Tick returns the command that drives the animation.
func (s Spinner) Tick() tea.Cmd {
	return s.model.Tick
}

// Stop ends the current attempt.
func (s *Spinner) Stop() {
	s.active = false
}

// IsActive reports whether a load is in progress.
func (s Spinner) IsActive() bool {
	return s.active
}

// Attempts returns how many loads were started.
func (s Spinner) Attempts() int {
	return s.attempts
}

// Update advances the animation while a load is in progress.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return s, cmd
}

// View renders "| Carregando valores de referência... (3s)" and the source.
func (s Spinner) View() string {
	if !s.active {
		return ""
	}

	line := s.model.View() + " " + s.theme.Label.Render(LoadingMessage+"...")
	if !s.since.IsZero() {
		line += s.theme.Help.Render(" (" + formatElapsed(time.Since(s.since)) + ")")
	}

	detail := s.source
	if s.attempts > 1 {
		detail = fmt.Sprintf("%s (tentativa %d)", detail, s.attempts)
	}
	if detail != "" {
		line += "\n" + s.theme.Footnote.PaddingLeft(2).Render(detail)
	}
	return line
}

// formatElapsed renders d as "42s" or "1m 30s".
func formatElapsed(d time.Duration) string {
	sec := int(d.Seconds())
	if sec < 60 {
		return fmt.Sprintf("%ds", sec)
	}
	return fmt.Sprintf("%dm %ds", sec/60, sec%60)
}
