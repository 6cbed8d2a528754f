// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the vicas TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection; NewTheme can also force either mode from configuration.

# Color System (colors.go)

The table tints follow the reference tables:

  - Orange - Soil (mg/Kg) headers and the jump-to-row highlight
  - Sky - Groundwater (ug/L) headers
  - Emerald / Rose / Amber - success, error and warning toasts

# Theme (theme.go)

Theme groups the lipgloss styles for the page, the input, the chip strip,
the table and the error panel.

# Animations (animations.go)

The loading spinner and the easing used for smooth row scrolling.
*/
package styles
