// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the vicas TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// MEDIUM TINTS
// =============================================================================

// Orange - Soil column headers and the jump-to-row highlight
var Orange = lipgloss.AdaptiveColor{Light: "#FFEDD5", Dark: "#7C2D12"}

// OrangeText - Foreground on orange backgrounds
var OrangeText = lipgloss.AdaptiveColor{Light: "#9A3412", Dark: "#FFEDD5"}

// Sky - Groundwater column headers
var Sky = lipgloss.AdaptiveColor{Light: "#E0F2FE", Dark: "#0C4A6E"}

// SkyText - Foreground on sky backgrounds
var SkyText = lipgloss.AdaptiveColor{Light: "#075985", Dark: "#E0F2FE"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Cyan - Brand color, info, focused elements
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states ("Copiado!")
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// RoseDeep - Error panel background
var RoseDeep = lipgloss.AdaptiveColor{Light: "#FEE2E2", Dark: "#4C0519"}

// Amber - Warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#18181B"}

// SurfaceDim - Chips and toasts
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#27272A"}

// SurfaceBright - Focused chip
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#F4F4F5", Dark: "#3F3F46"}

// Overlay - Borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E4E4E7", Dark: "#3F3F46"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#09090B", Dark: "#F4F4F5"}

// TextSecondary - Labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#3F3F46", Dark: "#A1A1AA"}

// TextMuted - Hints and footnotes
var TextMuted = lipgloss.AdaptiveColor{Light: "#71717A", Dark: "#71717A"}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// StatusIndicatorSet contains text/shape indicators for status states.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
}

// StatusIndicators provides ASCII indicators so state never depends on color alone.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
}

// ClipboardGlyph follows every copyable column label.
const ClipboardGlyph = "⧉"

// RenderSuccess renders a success message with its indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Emerald).Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Rose).Bold(true).
		Render(StatusIndicators.Error + " " + message)
}
