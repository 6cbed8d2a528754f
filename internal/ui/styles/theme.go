// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// PAGE STYLES
	// ==========================================================================

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Footnote lipgloss.Style
	Help     lipgloss.Style

	// ==========================================================================
	// INPUT STYLES
	// ==========================================================================

	InputBox     lipgloss.Style
	InputPrompt  lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	// ==========================================================================
	// CHIP STRIP STYLES
	// ==========================================================================

	Chip        lipgloss.Style
	ChipFocused lipgloss.Style
	ChipGap     lipgloss.Style
	ChipMore    lipgloss.Style

	// ==========================================================================
	// TABLE STYLES
	// ==========================================================================

	TableBorder     lipgloss.Style
	Provenance      lipgloss.Style
	SoilHeader      lipgloss.Style
	WaterHeader     lipgloss.Style
	ColumnLabel     lipgloss.Style
	ColumnLabelHot  lipgloss.Style
	Cell            lipgloss.Style
	CASCell         lipgloss.Style
	MissingCell     lipgloss.Style
	HighlightedCell lipgloss.Style

	// ==========================================================================
	// ERROR STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
	ErrorHint    lipgloss.Style

	Spinner lipgloss.Style
}

// NewTheme creates a new theme. mode is "auto", "dark" or "light"; anything
// but "dark" or "light" follows the terminal background.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()
	isDark := termenv.HasDarkBackground()

	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Footnote = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Input
	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Button = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ButtonActive = t.Button.
		BorderForeground(Cyan).
		Foreground(Cyan)

	// Chips
	t.Chip = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextPrimary).
		Padding(0, 2)

	t.ChipFocused = t.Chip.
		Background(SurfaceBright).
		Foreground(Cyan).
		Bold(true)

	t.ChipGap = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ChipMore = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true)

	// Table
	t.TableBorder = lipgloss.NewStyle().
		Foreground(Overlay)

	t.Provenance = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.SoilHeader = lipgloss.NewStyle().
		Background(Orange).
		Foreground(OrangeText)

	t.WaterHeader = lipgloss.NewStyle().
		Background(Sky).
		Foreground(SkyText)

	t.ColumnLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.ColumnLabelHot = t.ColumnLabel.
		Foreground(Cyan).
		Underline(true)

	t.Cell = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.CASCell = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.MissingCell = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.HighlightedCell = lipgloss.NewStyle().
		Background(Orange).
		Foreground(OrangeText)

	// Errors
	t.ErrorBox = lipgloss.NewStyle().
		Background(RoseDeep).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(1, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(Rose)

	t.ErrorHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Cyan)
}

// DefaultTheme returns a theme following the terminal background.
func DefaultTheme() *Theme {
	return NewTheme("auto")
}
