// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search implements the CAS lookup screen: load the reference
// table, read CAS numbers, show the VI table, jump to rows and copy
// columns to the clipboard.
package search

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vicas-tui/internal/cas"
	"github.com/jeranaias/vicas-tui/internal/repository"
	"github.com/jeranaias/vicas-tui/internal/ui/components"
	"github.com/jeranaias/vicas-tui/internal/ui/styles"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// =============================================================================
// SCREEN STATE
// =============================================================================

// State is the current screen.
type State int

const (
	StateLoading State = iota // Reference data in flight
	StateError                // Load failed
	StateEntry                // Waiting for CAS input
	StateResults              // Table shown
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEntry:
		return "entry"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

// Screen text.
const (
	PageTitle      = "VI"
	ResultsTitle   = "CAS encontrados"
	InputLabel     = "Digite um ou vários CAS (separe por espaços)"
	ClearButton    = "[limpar]"
	SearchButton   = "[pesquisar]"
	CopiedTitle    = "Copiado!"
	CopyErrorTitle = "Erro"
)

// DefaultHighlightDuration is how long a jumped-to row stays orange.
const DefaultHighlightDuration = 2500 * time.Millisecond

// =============================================================================
// MODEL
// =============================================================================

// Options configures a Model.
type Options struct {
	Theme             *styles.Theme
	HighlightDuration time.Duration
	ToastDuration     time.Duration
	Mouse             bool
}

// Model is the Bubble Tea model of the lookup screen.
type Model struct {
	state State
	theme *styles.Theme

	width  int
	height int

	repo repository.Repository
	doc  *vi.Document

	results cas.Results

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     KeyMap
	showHelp bool

	spinner    components.Spinner
	errDisplay components.ErrorDisplay
	toasts     *components.ToastManager
	toastTick  bool
	chips      components.ChipStrip
	table      components.VITable

	// Row highlights: row -> timer id that owns it.
	highlights   map[int]int
	highlighter  *highlightTimer
	highlightFor time.Duration

	// Smooth scroll: frames left of the scroll numbered scrollSeq.
	scrollSeq    int
	scrollFrames []int

	mouse bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the lookup screen for repo. Loading starts in Init.
func New(repo repository.Repository, opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.DefaultTheme()
	}
	highlightFor := opts.HighlightDuration
	if highlightFor <= 0 {
		highlightFor = DefaultHighlightDuration
	}

	input := textinput.New()
	input.Placeholder = "71-43-2 108-88-3"
	input.Prompt = "CAS > "
	input.PromptStyle = theme.InputPrompt
	input.CharLimit = 0
	// Pastes go through pastedRunes so CRLF columns keep one separator.
	input.KeyMap.Paste.SetEnabled(false)

	toasts := components.NewToastManager()
	if opts.ToastDuration > 0 {
		toasts.SetDuration(opts.ToastDuration)
	}

	spin := components.NewSpinner(theme)
	if repo != nil {
		spin.SetDetail(repo.Describe())
	}
	spin.Start()

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:        StateLoading,
		theme:        theme,
		repo:         repo,
		input:        input,
		viewport:     viewport.New(0, 0),
		help:         help.New(),
		keys:         DefaultKeyMap(),
		spinner:      spin,
		errDisplay:   components.NewErrorDisplay(theme),
		toasts:       toasts,
		chips:        components.NewChipStrip(theme),
		table:        components.NewVITable(theme),
		highlights:   make(map[int]int),
		highlighter:  newHighlightTimer(),
		highlightFor: highlightFor,
		mouse:        opts.Mouse,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Init starts loading the reference document.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick(), loadCmd(m.ctx, m.repo))
}

// Close cancels pending timers and loads. Call it when the program exits.
func (m Model) Close() {
	m.highlighter.stop()
	m.cancel()
}

// State returns the current screen.
func (m Model) State() State {
	return m.state
}

// Results returns the entries currently shown.
func (m Model) Results() cas.Results {
	return m.results
}

// Document returns the loaded reference document, nil before loading.
func (m Model) Document() *vi.Document {
	return m.doc
}

// InputValue returns the text in the CAS field.
func (m Model) InputValue() string {
	return m.input.Value()
}

// Toasts returns the visible notifications.
func (m Model) Toasts() []components.Toast {
	return m.toasts.GetToasts()
}

// ErrorMessage returns the text of the error panel.
func (m Model) ErrorMessage() string {
	return m.errDisplay.Message()
}

// IsHighlighted reports whether row is currently marked.
func (m Model) IsHighlighted(row int) bool {
	_, ok := m.highlights[row]
	return ok
}

// ScrollOffset returns the table viewport offset.
func (m Model) ScrollOffset() int {
	return m.viewport.YOffset
}
