// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/vicas-tui/internal/cas"
	"github.com/jeranaias/vicas-tui/internal/config"
	"github.com/jeranaias/vicas-tui/internal/repository"
	"github.com/jeranaias/vicas-tui/internal/ui/components"
	"github.com/jeranaias/vicas-tui/internal/ui/styles"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// =============================================================================
// LINE EDITOR
// =============================================================================

// replPrompt is plain text; liner miscounts the width of styled prompts.
const replPrompt = "vicas> "

// LineEditor provides input history and line editing for the REPL.
type LineEditor struct {
	line        *liner.State
	historyFile string
}

// NewLineEditor creates a LineEditor with history loaded from the config
// directory.
func NewLineEditor() *LineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	e := &LineEditor{
		line:        line,
		historyFile: filepath.Join(configDir, "repl_history"),
	}
	e.LoadHistory()
	return e
}

// LoadHistory loads command history from file.
func (e *LineEditor) LoadHistory() {
	if f, err := os.Open(e.historyFile); err == nil {
		e.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line. Non-empty input goes into the history.
func (e *LineEditor) ReadInput(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists the history, readable by the owner only.
func (e *LineEditor) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	e.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (e *LineEditor) Close() {
	e.SaveHistory()
	e.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

const replHelp = `Cole ou digite números CAS para consultar.

  :coluna <K>     Exporta e copia a coluna K da última consulta (chave ou 1-9)
  :recarregar     Recarrega os dados de referência
  :ajuda          Esta ajuda
  :sair           Sai (também :q, exit, Ctrl+D)`

// replSession holds the state of one REPL run.
type replSession struct {
	repo  repository.Repository
	doc   *vi.Document
	theme *styles.Theme
	out   io.Writer

	last    cas.Results
	hasLast bool
}

func newReplSession(repo repository.Repository, doc *vi.Document, theme *styles.Theme, out io.Writer) *replSession {
	return &replSession{repo: repo, doc: doc, theme: theme, out: out}
}

// handleLine executes one line of input and reports whether to quit.
func (s *replSession) handleLine(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":sair", ":q", ":quit", "exit", "quit":
		return true
	case ":ajuda", ":help", ":h", "?":
		fmt.Fprintln(s.out, replHelp)
		return false
	case ":recarregar", ":reload":
		s.reload(ctx)
		return false
	case ":coluna", ":col", ":c":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, WarningStyle.Render("Uso: :coluna <K>"))
			return false
		}
		s.exportColumn(fields[1])
		return false
	}

	s.search(line)
	return false
}

func (s *replSession) search(input string) {
	results := cas.Search(input, s.doc.VI)
	if results.IsEmpty() {
		fmt.Fprintln(s.out, WarningStyle.Render("Nenhum número CAS encontrado."))
		return
	}
	s.last, s.hasLast = results, true

	table := components.NewVITable(s.theme)
	table.SetCopyGlyph(false)
	table.SetResults(results, s.doc.LastUpdated)
	fmt.Fprintln(s.out, table.View())

	if missing := results.Missing(); len(missing) > 0 {
		fmt.Fprintln(s.out, DimStyle.Render("Sem valores para: "+strings.Join(missing, ", ")))
	}
}

func (s *replSession) exportColumn(key string) {
	if !s.hasLast {
		fmt.Fprintln(s.out, WarningStyle.Render("Faça uma consulta antes de exportar."))
		return
	}
	col, err := vi.ParseColumn(key)
	if err != nil {
		fmt.Fprintln(s.out, ErrorStyle.Render(err.Error()))
		return
	}

	text := cas.ExportColumn(s.last, col)
	fmt.Fprintln(s.out, text)
	if err := clipboardWrite(text); err != nil {
		fmt.Fprintln(s.out, WarningStyle.Render("Área de transferência indisponível: "+err.Error()))
		return
	}
	fmt.Fprintln(s.out, SuccessStyle.Render(fmt.Sprintf("Coluna '%s' copiada com sucesso.", col.PrettyName())))
}

func (s *replSession) reload(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	doc, err := s.repo.Load(ctx)
	if err != nil {
		fmt.Fprintln(s.out, styles.RenderError(repository.UserMessage(err)))
		return
	}
	s.doc = doc
	fmt.Fprintln(s.out, styles.RenderSuccess(fmt.Sprintf("%d registros carregados.", doc.Len())))
}

// =============================================================================
// COMMAND
// =============================================================================

// HandleRepl handles "vicas repl".
func HandleRepl(args Args) error {
	p := NewArgParser(args.Raw)

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	repo, err := OpenRepository(cfg, args, p)
	if err != nil {
		return err
	}
	defer closeRepository(repo)

	ctx := context.Background()
	loadCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	doc, err := repo.Load(loadCtx)
	cancel()
	if err != nil {
		return err
	}

	session := newReplSession(repo, doc, styles.NewTheme(cfg.UI.Theme), stdout)
	fmt.Fprintln(stdout, TitleStyle.Render("vicas "+Version))
	fmt.Fprintln(stdout, DimStyle.Render(fmt.Sprintf("%s: %d registros. Digite :ajuda para ajuda.", repo.Describe(), doc.Len())))

	editor := NewLineEditor()
	defer editor.Close()

	for {
		input, err := editor.ReadInput(replPrompt)
		if err != nil {
			// Ctrl+C, Ctrl+D and closed stdin all end the session.
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				fmt.Fprintln(stderr, err)
			}
			fmt.Fprintln(stdout)
			return nil
		}
		if session.handleLine(ctx, input) {
			return nil
		}
	}
}
