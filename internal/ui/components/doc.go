// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the widgets of the vicas lookup screen.

Each component is a plain value configured with a *styles.Theme and rendered
through View. Components do not own Bubble Tea programs; the search model
forwards messages and reads their state.

# Components

ChipStrip (chips.go) - The searched CAS numbers in table order, anchored on
the right when it overflows.

VITable (table.go) - Three header rows (provenance, medium, column labels)
and one body line per entry. Tracks the row registry used for jump-to-row
and hit-tests the clickable column labels.

ToastManager (toast.go) - Bottom-right notifications such as "Copiado!".

ErrorDisplay (error.go) - The "Erro" panel shown when reference data fails
to load.

Spinner (spinner.go) - Loading indicator.

# Usage

	theme := styles.NewTheme("auto")
	table := components.NewVITable(theme)
	table.SetResults(results, doc.LastUpdated)
	header := table.HeaderView()
	body := table.BodyView()

Header and body are rendered separately so the body can scroll in a
viewport under a fixed header.
*/
package components
