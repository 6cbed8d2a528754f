// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the lookup screen.
type KeyMap struct {
	Submit     key.Binding
	Paste      key.Binding
	Clear      key.Binding
	PrevChip   key.Binding
	NextChip   key.Binding
	Jump       key.Binding
	Copy       key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	ColsLeft   key.Binding
	ColsRight  key.Binding
	Dismiss    key.Binding
	Retry      key.Binding
	Help       key.Binding
	Quit       key.Binding
	QuitLetter key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "pesquisar"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("C-v", "colar"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x", "delete"),
			key.WithHelp("C-x/Del", "limpar"),
		),
		PrevChip: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "CAS anterior"),
		),
		NextChip: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "próximo CAS"),
		),
		Jump: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("Enter", "ir para a linha"),
		),
		Copy: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "copiar coluna"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "rolar"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "rolar"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "página acima"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "página abaixo"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "início"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "fim"),
		),
		ColsLeft: key.NewBinding(
			key.WithKeys("<", "shift+left"),
			key.WithHelp("<", "colunas à esquerda"),
		),
		ColsRight: key.NewBinding(
			key.WithKeys(">", "shift+right"),
			key.WithHelp(">", "colunas à direita"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "fechar avisos"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "tentar novamente"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ajuda"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "sair"),
		),
		QuitLetter: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "sair"),
		),
	}
}

// =============================================================================
// CONTEXT HELP
// =============================================================================

// stateKeys adapts the key map to help.KeyMap for one screen state.
type stateKeys struct {
	keys  KeyMap
	state State
}

// ShortHelp returns the bindings shown in the one-line help.
func (s stateKeys) ShortHelp() []key.Binding {
	k := s.keys
	switch s.state {
	case StateEntry:
		return []key.Binding{k.Submit, k.Paste, k.Quit}
	case StateResults:
		return []key.Binding{k.Jump, k.Copy, k.Clear, k.Help, k.QuitLetter}
	case StateError:
		return []key.Binding{k.Retry, k.QuitLetter}
	default:
		return []key.Binding{k.Quit}
	}
}

// FullHelp returns the grouped bindings shown when help is expanded.
func (s stateKeys) FullHelp() [][]key.Binding {
	k := s.keys
	if s.state != StateResults {
		return [][]key.Binding{s.ShortHelp()}
	}
	return [][]key.Binding{
		{k.PrevChip, k.NextChip, k.Jump},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.ColsLeft, k.ColsRight, k.Copy},
		{k.Clear, k.Dismiss, k.Help, k.QuitLetter},
	}
}
