// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/vicas-tui/internal/cas"
	"github.com/jeranaias/vicas-tui/internal/ui/components"
	"github.com/jeranaias/vicas-tui/internal/ui/styles"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// lookupTimeout bounds the document load of one-shot commands.
const lookupTimeout = 30 * time.Second

// LookupOptions holds options for the lookup command.
type LookupOptions struct {
	Input    string
	Column   string
	Copy     bool
	JSON     bool
	Markdown bool
}

// LookupEntry is one row of the --json output.
type LookupEntry struct {
	CAS    string             `json:"cas"`
	Found  bool               `json:"found"`
	Gap    bool               `json:"gap,omitempty"`
	Values map[string]float64 `json:"values,omitempty"`
}

// LookupData is the --json payload of `vicas lookup`.
type LookupData struct {
	LastUpdated string        `json:"last_updated"`
	Source      string        `json:"source"`
	Entries     []LookupEntry `json:"entries"`
	Missing     []string      `json:"missing"`
}

// HandleLookup handles "vicas lookup <CAS...>".
func HandleLookup(args Args) error {
	p := NewArgParser(args.Raw, "copy", "markdown", "md")

	opts := LookupOptions{
		Input:    strings.Join(p.PositionalFrom(0), " "),
		Column:   p.FlagAny("column", "c"),
		Copy:     p.BoolFlag("copy"),
		JSON:     args.JSON,
		Markdown: p.BoolFlag("markdown", "md"),
	}

	if opts.Input == "" && !IsTTY() {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return NewCommandError("lookup", "read", "stdin", err)
		}
		// The final newline of a pipe is not a gap.
		opts.Input = strings.TrimRight(string(data), "\r\n")
	}
	if strings.TrimSpace(opts.Input) == "" {
		return ErrMissingArgument("CAS", "vicas lookup 50-00-0 71-43-2")
	}

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	repo, err := OpenRepository(cfg, args, p)
	if err != nil {
		return err
	}
	defer closeRepository(repo)

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()
	doc, err := repo.Load(ctx)
	if err != nil {
		return err
	}

	return runLookup(doc, repo.Describe(), cfg.UI.Theme, opts)
}

// runLookup renders the lookup of opts.Input against doc.
func runLookup(doc *vi.Document, source, theme string, opts LookupOptions) error {
	results := cas.Search(opts.Input, doc.VI)
	if results.IsEmpty() {
		return &ValidationError{
			Field:   "CAS",
			Value:   strings.TrimSpace(opts.Input),
			Reason:  "no CAS number found in input",
			Example: "vicas lookup 50-00-0",
		}
	}

	if opts.Column != "" {
		return exportColumn(results, opts.Column, opts.Copy)
	}
	if opts.JSON {
		return NewJSONResponse("lookup", lookupData(results, doc.LastUpdated, source)).Print()
	}
	if opts.Markdown {
		return printMarkdown(results, doc.LastUpdated)
	}

	table := components.NewVITable(styles.NewTheme(theme))
	table.SetCopyGlyph(false)
	table.SetResults(results, doc.LastUpdated)
	fmt.Fprintln(stdout, table.View())
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, DimStyle.Render(vi.NoteSumLegend))
	fmt.Fprintln(stdout, DimStyle.Render(vi.NoteLastUpdated(doc.LastUpdated)))

	if missing := results.Missing(); len(missing) > 0 {
		fmt.Fprintf(stderr, "%s %s\n", WarningStyle.Render("[AVISO]"),
			"Sem valores para: "+strings.Join(missing, ", "))
	}
	return nil
}

// exportColumn prints one column, one value per line, and optionally copies it.
func exportColumn(results cas.Results, key string, copyOut bool) error {
	col, err := vi.ParseColumn(key)
	if err != nil {
		return &ValidationError{Field: "column", Value: key, Reason: err.Error(), Example: "--column tapWater"}
	}

	text := cas.ExportColumn(results, col)
	fmt.Fprintln(stdout, text)

	if copyOut {
		if err := clipboardWrite(text); err != nil {
			return NewCommandError("lookup", "copy", "clipboard unavailable", err)
		}
		fmt.Fprintln(stderr, SuccessStyle.Render(fmt.Sprintf("Coluna '%s' copiada com sucesso.", col.PrettyName())))
	}
	return nil
}

func lookupData(results cas.Results, lastUpdated, source string) LookupData {
	data := LookupData{
		LastUpdated: lastUpdated,
		Source:      source,
		Entries:     make([]LookupEntry, 0, results.Len()),
		Missing:     results.Missing(),
	}
	if data.Missing == nil {
		data.Missing = []string{}
	}

	for _, e := range results.Entries() {
		entry := LookupEntry{CAS: e.CAS, Found: e.Found, Gap: e.IsGap()}
		if e.Found {
			entry.Values = make(map[string]float64)
			for _, c := range vi.Columns() {
				if v, ok := e.Record.Value(c); ok {
					entry.Values[c.Key()] = v
				}
			}
		}
		data.Entries = append(data.Entries, entry)
	}
	return data
}

// markdownTable builds a GitHub-flavored table of the results.
func markdownTable(results cas.Results, lastUpdated string) string {
	var b strings.Builder
	cols := vi.Columns()

	b.WriteString("| CAS |")
	for _, c := range cols {
		fmt.Fprintf(&b, " %s (%s) |", c.Label(), provenance(c, lastUpdated))
	}
	b.WriteString("\n|---|")
	for range cols {
		b.WriteString("---:|")
	}
	b.WriteString("\n")

	for _, e := range results.Entries() {
		if e.IsGap() {
			b.WriteString("| |")
			for range cols {
				b.WriteString(" |")
			}
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "| %s |", e.CAS)
		for _, c := range cols {
			cell := e.Cell(c)
			// A literal "*" would open emphasis.
			cell = strings.ReplaceAll(cell, "*", `\*`)
			fmt.Fprintf(&b, " %s |", cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(strings.ReplaceAll(vi.NoteSumLegend, "*", `\*`) + "\n\n")
	b.WriteString(strings.ReplaceAll(vi.NoteLastUpdated(lastUpdated), "*", `\*`) + "\n")
	return b.String()
}

func provenance(c vi.Column, lastUpdated string) string {
	if c.Agency() == vi.AgencyUSEPA {
		return vi.USEPAHeader(lastUpdated)
	}
	return vi.CETESBHeader
}

// printMarkdown prints the markdown table, rendered with glamour on a TTY.
func printMarkdown(results cas.Results, lastUpdated string) error {
	md := markdownTable(results, lastUpdated)
	if !IsStdoutTTY() {
		_, err := fmt.Fprint(stdout, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()),
	)
	if err != nil {
		_, err = fmt.Fprint(stdout, md)
		return err
	}
	out, err := renderer.Render(md)
	if err != nil {
		_, err = fmt.Fprint(stdout, md)
		return err
	}
	_, err = fmt.Fprint(stdout, out)
	return err
}
