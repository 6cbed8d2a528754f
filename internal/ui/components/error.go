// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vicas-tui/internal/ui/styles"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// =============================================================================
// ERROR DISPLAY MODEL
// =============================================================================

// ErrorTitle is the heading of the error panel.
const ErrorTitle = "Erro"

// ErrorDisplay is the panel that replaces the page when reference data
// fails to load.
type ErrorDisplay struct {
	title   string
	message string
	hint    string

	visible bool
	theme   *styles.Theme

	width  int
	height int
}

// NewErrorDisplay creates a hidden error display.
func NewErrorDisplay(theme *styles.Theme) ErrorDisplay {
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	return ErrorDisplay{
		title: ErrorTitle,
		hint:  "[r] tentar novamente  [q] sair",
		theme: theme,
	}
}

// Show displays message. An empty message shows the generic fallback.
func (e *ErrorDisplay) Show(message string) {
	if strings.TrimSpace(message) == "" {
		message = vi.FallbackErrorMessage
	}
	e.message = message
	e.visible = true
}

// ShowAPIError displays the server supplied message, or the fallback when
// apiErr is nil or carries no text.
func (e *ErrorDisplay) ShowAPIError(apiErr *vi.APIError) {
	e.Show(apiErr.Message())
}

// Hide hides the panel.
func (e *ErrorDisplay) Hide() {
	e.visible = false
}

// SetHint replaces the key hint below the message.
func (e *ErrorDisplay) SetHint(hint string) {
	e.hint = hint
}

// IsVisible returns whether the panel is shown.
func (e ErrorDisplay) IsVisible() bool {
	return e.visible
}

// Message returns the message currently shown.
func (e ErrorDisplay) Message() string {
	return e.message
}

// SetSize sets the available area.
func (e *ErrorDisplay) SetSize(width, height int) {
	e.width = width
	e.height = height
}

// View renders the error panel centred in the available area.
func (e ErrorDisplay) View() string {
	if !e.visible {
		return ""
	}

	width := e.width
	if width == 0 {
		width = 60
	}
	boxWidth := width - 8
	if boxWidth > 72 {
		boxWidth = 72
	}
	if boxWidth < 24 {
		boxWidth = 24
	}

	var b strings.Builder
	b.WriteString(e.theme.ErrorTitle.Render(styles.StatusIndicators.Error + " " + e.title))
	b.WriteString("\n\n")
	b.WriteString(e.theme.ErrorMessage.Width(boxWidth - 6).Render(e.message))
	if e.hint != "" {
		b.WriteString("\n\n")
		b.WriteString(e.theme.ErrorHint.Render(e.hint))
	}

	box := e.theme.ErrorBox.Width(boxWidth).Render(b.String())
	if e.height > 0 {
		return lipgloss.Place(width, e.height, lipgloss.Center, lipgloss.Center, box)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
